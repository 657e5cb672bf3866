/*
Package ports defines the driven ports (interfaces) for the Pollster survey core.

These interfaces decouple the survey state machine from external implementations,
allowing the controller to work with various chat transports and storage backends.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading per-user Sessions.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - Messenger: Sends prompts, keyboards and acknowledgments to a chat user.
  - RecordSink: Durably appends completed survey records.
*/
package ports
