// Package status models the administrator-defined lifecycle stages of a
// service order.
//
// The package includes:
//   - Status: a named stage with display order, presentation hints, behaviour
//     flags (initial, final, pickup, triggers email) and forward/backward
//     transition allow-lists
//   - Registry: an immutable, sorted snapshot of all statuses used by the
//     transition engine and by read models
//
// Key business rules:
//   - exactly one status is the entry point for new orders; a second initial
//     status is rejected when saved and Registry.Initial fails if the stored
//     configuration is ambiguous
//   - allow-lists reference statuses by id; ids that no longer resolve are
//     ignored rather than treated as corruption
//   - terminal and pickup behaviour is driven by flags only, never by names
package status
