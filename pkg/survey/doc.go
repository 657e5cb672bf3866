/*
Package survey implements the conversational core of Pollster.

Validate checks raw input against the choice set of the pending question, Advance
moves a session one step through the fixed question order, and Controller maps the
resulting Outcome to the Effects a host has to perform.

The package never does I/O: sending messages and persisting records are requested
through domain.Effect values and carried out by the runner.
*/
package survey
