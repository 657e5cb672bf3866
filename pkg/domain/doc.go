/*
Package domain contains the core domain models of the Pollster survey bot.

It defines the closed answer enumerations, the accumulated survey record and the
per-user session. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Answer: A validated value for one question (AgeRange, InvestmentStatus, ...).
  - Question: The identifier of a survey question, with its prompt and choice set.
  - Stage: The pending-question marker of a session (AwaitingAge ... Complete).
  - Record: The five-field answer tuple, filled strictly left-to-right.
  - Session: The per-user container holding the stage and the partial record.
  - Effect: A structural representation of what the host should send or persist.
*/
package domain
