// Package kernel holds the value objects shared by every aggregate in repairdesk:
// identifiers and identifier sets. Statuses, orders and clients all refer to each
// other by kernel.UUID, and allow-lists or confirmed-service lists are kernel.UUIDSet.
package kernel
