package kernel

import (
	"fmt"

	"repairdesk/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for statuses, service orders, clients,
// contracted services and log entries. Status ids stay stable across renames,
// which is what lets historical log entries keep pointing at them.
//
// The zero value is invalid; build one with NewUUID, UUIDFromString or UUIDFromBytes.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (v4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced or urn-prefixed textual form.
//
// Example:
//
//	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
//	if err != nil {
//	    return fmt.Errorf("invalid order ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from 16 raw bytes and rejects the nil UUID.
// Repositories use it when rehydrating DTO columns.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value for DTO mapping.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
