package services

import "repairdesk/internal/core/domain/model/kernel"

// ServiceConfirmationGate guards transitions into statuses that notify the client:
// the client must not be told an order is done while contracted work is unconfirmed.
// Transitions into non-notifying statuses are never blocked by it.
type ServiceConfirmationGate struct{}

// NewServiceConfirmationGate creates a ServiceConfirmationGate.
func NewServiceConfirmationGate() ServiceConfirmationGate {
	return ServiceConfirmationGate{}
}

// CanNotify reports whether every contracted service is confirmed.
func (g ServiceConfirmationGate) CanNotify(contracted, confirmed kernel.UUIDSet) bool {
	return contracted.IsSubsetOf(confirmed)
}

// Check returns a *ServicesNotConfirmedError naming the unconfirmed services, or nil.
func (g ServiceConfirmationGate) Check(contracted, confirmed kernel.UUIDSet) error {
	missing := contracted.Missing(confirmed)
	if len(missing) == 0 {
		return nil
	}
	return &ServicesNotConfirmedError{Missing: missing}
}
