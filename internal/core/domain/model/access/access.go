// Package access defines what an actor may do to service orders and statuses.
// Capabilities are a closed, enumerated set; authorization components outside
// the core decide which actor holds which capability.
package access

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrForbidden is returned when an actor lacks a required capability.
var ErrForbidden = errors.New("actor is not allowed to perform this action")

// Capability is a single permission. The string values match the permission
// claims issued by the identity provider.
type Capability string

const (
	// UnrestrictedTransition bypasses status allow-lists.
	UnrestrictedTransition Capability = "transition:unrestricted"

	// UpdateOrder allows changing an order's confirmed services.
	UpdateOrder Capability = "orders:update"

	// CreateOrder allows opening service orders.
	CreateOrder Capability = "orders:create"

	// ManageStatuses allows creating, editing and deleting statuses.
	ManageStatuses Capability = "statuses:manage"

	// ManageClients allows registering clients.
	ManageClients Capability = "clients:manage"
)

// Capabilities lists every known capability.
func Capabilities() []Capability {
	return []Capability{UnrestrictedTransition, UpdateOrder, CreateOrder, ManageStatuses, ManageClients}
}

// ParseCapability accepts the claim string of a known capability.
func ParseCapability(s string) (Capability, bool) {
	c := Capability(strings.TrimSpace(s))
	return c, slices.Contains(Capabilities(), c)
}

// Actor is whoever performs an operation.
type Actor interface {
	// Name identifies the actor in history records.
	Name() string

	// Can reports whether the actor holds capability c.
	Can(c Capability) bool
}

// Principal is an Actor built from an authenticated identity.
type Principal struct {
	name         string
	capabilities map[Capability]struct{}
}

// NewPrincipal builds a Principal. Unknown permission strings are ignored.
func NewPrincipal(name string, permissions []string) Principal {
	p := Principal{
		name:         strings.TrimSpace(name),
		capabilities: make(map[Capability]struct{}, len(permissions)),
	}
	for _, perm := range permissions {
		if c, ok := ParseCapability(perm); ok {
			p.capabilities[c] = struct{}{}
		}
	}
	return p
}

func (p Principal) Name() string {
	return p.name
}

func (p Principal) Can(c Capability) bool {
	_, ok := p.capabilities[c]
	return ok
}

// Require returns a wrapped ErrForbidden when actor lacks c.
func Require(actor Actor, c Capability) error {
	if actor == nil || !actor.Can(c) {
		return fmt.Errorf("%w: missing %s", ErrForbidden, c)
	}
	return nil
}
