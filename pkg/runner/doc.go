/*
Package runner delivers inbound chat events to the survey controller and performs
the resulting effects against a Messenger and a RecordSink.

Events are sharded by user onto a fixed set of FIFO workers, so messages from one
user are handled in arrival order while different users proceed concurrently.

# Usage

	r := runner.NewRunner(controller, messenger, sink,
		runner.WithWorkers(8),
		runner.WithSinkRetries(2, 500*time.Millisecond),
	)

	if err := r.Run(ctx, gateway.Updates(ctx)); err != nil {
		log.Fatal(err)
	}
*/
package runner
