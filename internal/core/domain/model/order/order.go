package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"
)

var (
	// ErrServiceOrderIsNotConstructed is returned when a ServiceOrder did not come from
	// NewServiceOrder or RestoreServiceOrder.
	ErrServiceOrderIsNotConstructed = errors.New("ServiceOrder must be created via NewServiceOrder constructor")

	// ErrStatusIsNotInitial is returned when an order is opened in a non-initial status.
	ErrStatusIsNotInitial = errors.New("orders must start in the initial status")

	// ErrUnknownContractedService is returned when a confirmation names a service the
	// client did not contract for this order.
	ErrUnknownContractedService = errors.New("service is not contracted for this order")

	// ErrHistoryIsInconsistent is returned when restored logs do not end in the current status.
	ErrHistoryIsInconsistent = errors.New("order status does not match its last log entry")
)

// Intake carries everything needed to open a service order.
type Intake struct {
	Details     Details
	Analyst     string
	Services    []ContractedService
	Responsible string
	Observation string
	At          time.Time
}

// Transition is a validated request to move an order, as applied by the order
// state machine. Nil optional fields leave the current value unchanged.
type Transition struct {
	To                kernel.UUID
	Responsible       string
	Observation       string
	At                time.Time
	TechnicalSolution *string
	Attachments       []Attachment
	Confirmed         *kernel.UUIDSet
}

// ServiceOrder is the aggregate root of a repair ticket. It owns the current status,
// the status history and the edit history, and keeps both histories append-only.
//
// ServiceOrder follows these invariants:
//   - logs is never empty; opening an order writes initial -> initial
//   - status always equals the toStatus of the last log entry
//   - confirmed services are always a subset of contracted services
//   - analyst never changes after creation
//   - version increases by one on every persisted change and guards concurrent writers
type ServiceOrder struct {
	id                kernel.UUID
	number            OrderNumber
	details           Details
	analyst           string
	statusID          kernel.UUID
	technicalSolution string
	services          []ContractedService
	attachments       []Attachment
	logs              []LogEntry
	editLogs          []EditLogEntry
	createdAt         time.Time

	// version is the value stored in the database when the order was loaded.
	version int64

	// persistedLogs and persistedEditLogs mark where unsaved history starts.
	persistedLogs     int
	persistedEditLogs int

	isConstructed bool
}

// NewServiceOrder opens a service order in the initial status.
//
// Parameters:
//   - id: unique identifier
//   - number: sequential human-facing number from the atomic counter
//   - initial: the registry's initial status; any other status is rejected
//   - intake: descriptive fields, analyst, contracted services and who opened it
//
// Returns:
//   - *ServiceOrder with a first log entry from initial to initial
//   - a joined validation error otherwise
//
// Example:
//
//	initial, _ := registry.Initial()
//	number, _ := order.NewOrderNumber(42)
//	so, err := order.NewServiceOrder(kernel.NewUUID(), number, initial, order.Intake{
//	    Details:     details,
//	    Analyst:     "maria",
//	    Responsible: "maria",
//	    At:          time.Now(),
//	})
func NewServiceOrder(id kernel.UUID, number OrderNumber, initial *status.Status, intake Intake) (*ServiceOrder, error) {
	o := &ServiceOrder{
		isConstructed: true,
		createdAt:     intake.At.UTC(),
	}

	if err := errors.Join(
		o.setID(id),
		number.Validate(),
		o.setDetails(intake.Details),
		o.setAnalyst(intake.Analyst),
		o.setServices(intake.Services),
		checkInitial(initial),
	); err != nil {
		return nil, err
	}
	o.number = number

	responsible, err := normalizeResponsible(intake.Responsible)
	if err != nil {
		return nil, err
	}

	o.statusID = initial.ID()
	o.logs = []LogEntry{{
		seq:         1,
		at:          o.createdAt,
		responsible: responsible,
		from:        initial.ID(),
		to:          initial.ID(),
		observation: strings.TrimSpace(intake.Observation),
	}}

	return o, nil
}

// Snapshot is the persisted state of a ServiceOrder.
type Snapshot struct {
	ID                kernel.UUID
	Number            OrderNumber
	Details           Details
	Analyst           string
	StatusID          kernel.UUID
	TechnicalSolution string
	Services          []ContractedService
	Attachments       []Attachment
	Logs              []LogEntry
	EditLogs          []EditLogEntry
	Version           int64
	CreatedAt         time.Time
}

// RestoreServiceOrder rehydrates an order loaded from persistence and re-checks the
// history invariant.
func RestoreServiceOrder(s Snapshot) (*ServiceOrder, error) {
	o := &ServiceOrder{
		isConstructed:     true,
		number:            s.Number,
		statusID:          s.StatusID,
		technicalSolution: s.TechnicalSolution,
		attachments:       append([]Attachment(nil), s.Attachments...),
		logs:              append([]LogEntry(nil), s.Logs...),
		editLogs:          append([]EditLogEntry(nil), s.EditLogs...),
		version:           s.Version,
		createdAt:         s.CreatedAt.UTC(),
		persistedLogs:     len(s.Logs),
		persistedEditLogs: len(s.EditLogs),
	}

	if err := errors.Join(
		o.setID(s.ID),
		s.Number.Validate(),
		s.StatusID.Validate(),
		o.setServices(s.Services),
	); err != nil {
		return nil, err
	}
	o.details = s.Details.Normalized()
	o.analyst = strings.TrimSpace(s.Analyst)

	if len(o.logs) == 0 || !o.logs[len(o.logs)-1].to.IsEqual(o.statusID) {
		return nil, ErrHistoryIsInconsistent
	}

	return o, nil
}

// Validate ensures the ServiceOrder was built through a constructor.
func (o *ServiceOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrServiceOrderIsNotConstructed
	}
	return nil
}

func (o *ServiceOrder) ID() kernel.UUID           { return o.id }
func (o *ServiceOrder) Number() OrderNumber       { return o.number }
func (o *ServiceOrder) Details() Details          { return o.details }
func (o *ServiceOrder) Analyst() string           { return o.analyst }
func (o *ServiceOrder) StatusID() kernel.UUID     { return o.statusID }
func (o *ServiceOrder) TechnicalSolution() string { return o.technicalSolution }
func (o *ServiceOrder) CreatedAt() time.Time      { return o.createdAt }

// Version is the stored version the order was loaded with.
func (o *ServiceOrder) Version() int64 { return o.version }

// Services returns a copy of the contracted service snapshots.
func (o *ServiceOrder) Services() []ContractedService {
	return append([]ContractedService(nil), o.services...)
}

// Attachments returns a copy of the attachment references.
func (o *ServiceOrder) Attachments() []Attachment {
	return append([]Attachment(nil), o.attachments...)
}

// Logs returns a copy of the status history, oldest first.
func (o *ServiceOrder) Logs() []LogEntry {
	return append([]LogEntry(nil), o.logs...)
}

// EditLogs returns a copy of the edit history, oldest first.
func (o *ServiceOrder) EditLogs() []EditLogEntry {
	return append([]EditLogEntry(nil), o.editLogs...)
}

// LastLog returns the most recent status change.
func (o *ServiceOrder) LastLog() LogEntry {
	return o.logs[len(o.logs)-1]
}

// ContractedServiceIDs returns the ids of every contracted service.
func (o *ServiceOrder) ContractedServiceIDs() kernel.UUIDSet {
	ids := make([]kernel.UUID, 0, len(o.services))
	for _, s := range o.services {
		ids = append(ids, s.id)
	}
	return kernel.NewUUIDSet(ids...)
}

// ConfirmedServiceIDs returns the ids of services confirmed as carried out.
func (o *ServiceOrder) ConfirmedServiceIDs() kernel.UUIDSet {
	ids := make([]kernel.UUID, 0, len(o.services))
	for _, s := range o.services {
		if s.confirmed {
			ids = append(ids, s.id)
		}
	}
	return kernel.NewUUIDSet(ids...)
}

// UnsavedLogs returns status changes appended since the order was loaded or created.
func (o *ServiceOrder) UnsavedLogs() []LogEntry {
	return append([]LogEntry(nil), o.logs[o.persistedLogs:]...)
}

// UnsavedEditLogs returns edit entries appended since the order was loaded or created.
func (o *ServiceOrder) UnsavedEditLogs() []EditLogEntry {
	return append([]EditLogEntry(nil), o.editLogs[o.persistedEditLogs:]...)
}

// MarkPersisted is called by the repository after a successful write. It moves
// the version forward and treats every history entry as saved.
func (o *ServiceOrder) MarkPersisted(version int64) {
	o.version = version
	o.persistedLogs = len(o.logs)
	o.persistedEditLogs = len(o.editLogs)
}

// ApplyTransition appends a log entry and moves the order to t.To, updating the
// technical solution, attachments and confirmed services when provided. Whether
// the move is allowed is decided beforehand by the order state machine; this
// method only guards the aggregate's own invariants.
func (o *ServiceOrder) ApplyTransition(t Transition) (LogEntry, error) {
	responsible, err := normalizeResponsible(t.Responsible)
	if err != nil {
		return LogEntry{}, err
	}
	if err = t.To.Validate(); err != nil {
		return LogEntry{}, err
	}
	if t.Confirmed != nil {
		if unknown := t.Confirmed.Missing(o.ContractedServiceIDs()); len(unknown) > 0 {
			return LogEntry{}, errs.NewValueIsInvalidErrorWithCause(
				"confirmedServiceIds",
				fmt.Errorf("%w: %s", ErrUnknownContractedService, joinIDs(unknown)),
			)
		}
	}

	entry := LogEntry{
		seq:         len(o.logs) + 1,
		at:          t.At.UTC(),
		responsible: responsible,
		from:        o.statusID,
		to:          t.To,
		observation: strings.TrimSpace(t.Observation),
	}
	o.logs = append(o.logs, entry)
	o.statusID = t.To

	if t.TechnicalSolution != nil {
		o.technicalSolution = strings.TrimSpace(*t.TechnicalSolution)
	}
	if t.Attachments != nil {
		o.attachments = append([]Attachment(nil), t.Attachments...)
	}
	if t.Confirmed != nil {
		for i := range o.services {
			o.services[i].confirmed = t.Confirmed.Contains(o.services[i].id)
		}
	}

	return entry, nil
}

// RecordEdit diffs next against the current details and, if anything changed,
// appends one edit log entry holding every change. It never touches the status
// or the status history.
//
// Returns:
//   - the new entry and true when at least one tracked field changed
//   - a zero entry and false when next matches the current details
//   - an error when next is invalid
func (o *ServiceOrder) RecordEdit(next Details, responsible, observation string, at time.Time) (EditLogEntry, bool, error) {
	responsible, err := normalizeResponsible(responsible)
	if err != nil {
		return EditLogEntry{}, false, err
	}
	next = next.Normalized()
	if err = next.Validate(); err != nil {
		return EditLogEntry{}, false, err
	}

	changes := o.details.Diff(next)
	if len(changes) == 0 {
		return EditLogEntry{}, false, nil
	}

	entry := EditLogEntry{
		seq:         len(o.editLogs) + 1,
		at:          at.UTC(),
		responsible: responsible,
		observation: strings.TrimSpace(observation),
		changes:     changes,
	}
	o.editLogs = append(o.editLogs, entry)
	o.details = next

	return entry, true, nil
}

func (o *ServiceOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ServiceOrder) setDetails(details Details) error {
	details = details.Normalized()
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *ServiceOrder) setAnalyst(analyst string) error {
	analyst = strings.TrimSpace(analyst)
	if analyst == "" {
		return errs.NewValueIsRequiredError("analyst")
	}
	o.analyst = analyst
	return nil
}

func (o *ServiceOrder) setServices(services []ContractedService) error {
	seen := make(map[kernel.UUID]struct{}, len(services))
	for _, s := range services {
		if err := s.id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[s.id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("contractedServices", fmt.Errorf("service %s is listed twice", s.id.String()))
		}
		seen[s.id] = struct{}{}
	}
	o.services = append([]ContractedService(nil), services...)
	return nil
}

func checkInitial(initial *status.Status) error {
	if err := initial.Validate(); err != nil {
		return err
	}
	if !initial.IsInitial() {
		return fmt.Errorf("%w: %q", ErrStatusIsNotInitial, initial.Name())
	}
	return nil
}

func joinIDs(ids []kernel.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}
