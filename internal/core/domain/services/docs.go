// Package services holds the domain services of the status transition engine.
//
// The package includes:
//   - TransitionResolver: computes candidate next statuses and validates moves
//   - ServiceConfirmationGate: blocks notifying transitions while contracted
//     services are unconfirmed
//   - OrderStateMachine: applies a validated transition to a ServiceOrder and
//     decides whether a client notification is due
//
// None of these services perform I/O. Persistence, notification dispatch and
// event publication happen in the application layer after Apply succeeds.
package services
