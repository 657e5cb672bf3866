/*
Package pollster runs a fixed chat survey: each user answers a sequence of
questions by pressing keyboard buttons, shares a contact, and the completed answers
are appended to a record sink.

The conversation logic lives in pkg/survey as a pure state machine over
pkg/domain types. Everything else (session storage, record sinks, chat
transports) is an adapter behind the interfaces in pkg/ports. This package wires
them together from an internal/config.Config.

# Usage

	cfg, err := config.Load("pollster.yaml")
	if err != nil {
		log.Fatal(err)
	}

	app, err := pollster.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	r := app.NewRunner(messenger)
	if err := r.Run(ctx, inbound); err != nil {
		log.Fatal(err)
	}
*/
package pollster
