package order

import (
	"strings"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"
)

// ContractedService is a snapshot of a service the client purchased for this order,
// together with whether a technician confirmed it was carried out.
type ContractedService struct {
	id        kernel.UUID
	name      string
	confirmed bool
}

// NewContractedService snapshots a catalogue service. New snapshots start unconfirmed.
func NewContractedService(id kernel.UUID, name string) (ContractedService, error) {
	return RestoreContractedService(id, name, false)
}

// RestoreContractedService rebuilds a snapshot from persistence.
func RestoreContractedService(id kernel.UUID, name string, confirmed bool) (ContractedService, error) {
	if err := id.Validate(); err != nil {
		return ContractedService{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ContractedService{}, errs.NewValueIsRequiredError("service name")
	}
	return ContractedService{id: id, name: name, confirmed: confirmed}, nil
}

func (s ContractedService) ID() kernel.UUID { return s.id }
func (s ContractedService) Name() string    { return s.name }
func (s ContractedService) Confirmed() bool { return s.confirmed }
