// Package order provides the ServiceOrder aggregate: a repair ticket tracked
// through the administrator-defined status lifecycle.
//
// The package includes:
//   - ServiceOrder: the aggregate root owning current status, status history and
//     edit history
//   - OrderNumber: the sequential OS-### number shown to people
//   - Details, Equipment, Collaborator: the editable descriptive fields
//   - ContractedService and Attachment: snapshots and references owned elsewhere
//   - LogEntry and EditLogEntry: append-only history records
//
// Key business rules:
//   - opening an order writes the first log entry (initial -> initial)
//   - every status change appends exactly one log entry; history is never rewritten
//   - detail edits append one edit entry listing every changed field, or nothing
//     when no tracked field differs
//   - analyst is fixed at creation and is not an editable detail
//
// Which transitions are legal is not decided here; see the domain services.
package order
