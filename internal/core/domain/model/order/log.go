package order

import (
	"errors"
	"strings"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"
)

// LogEntry records one status change. Entries are append-only: once written they
// are never edited, reordered or removed.
type LogEntry struct {
	seq         int
	at          time.Time
	responsible string
	from        kernel.UUID
	to          kernel.UUID
	observation string
}

// RestoreLogEntry rebuilds an entry from persistence.
func RestoreLogEntry(seq int, at time.Time, responsible string, from, to kernel.UUID, observation string) (LogEntry, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return LogEntry{}, err
	}
	if seq <= 0 {
		return LogEntry{}, errs.NewValueIsInvalidError("log sequence")
	}
	return LogEntry{seq: seq, at: at.UTC(), responsible: responsible, from: from, to: to, observation: observation}, nil
}

// Seq is the 1-based position of the entry in the order history.
func (e LogEntry) Seq() int                { return e.seq }
func (e LogEntry) At() time.Time           { return e.at }
func (e LogEntry) Responsible() string     { return e.responsible }
func (e LogEntry) FromStatus() kernel.UUID { return e.from }
func (e LogEntry) ToStatus() kernel.UUID   { return e.to }
func (e LogEntry) Observation() string     { return e.observation }

// FieldChange is one audited field modification.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// EditLogEntry groups every field changed by a single detail edit.
type EditLogEntry struct {
	seq         int
	at          time.Time
	responsible string
	observation string
	changes     []FieldChange
}

// RestoreEditLogEntry rebuilds an entry from persistence.
func RestoreEditLogEntry(seq int, at time.Time, responsible, observation string, changes []FieldChange) (EditLogEntry, error) {
	if seq <= 0 {
		return EditLogEntry{}, errs.NewValueIsInvalidError("edit log sequence")
	}
	if len(changes) == 0 {
		return EditLogEntry{}, errs.NewValueIsRequiredError("edit log changes")
	}
	return EditLogEntry{
		seq:         seq,
		at:          at.UTC(),
		responsible: responsible,
		observation: observation,
		changes:     append([]FieldChange(nil), changes...),
	}, nil
}

func (e EditLogEntry) Seq() int            { return e.seq }
func (e EditLogEntry) At() time.Time       { return e.at }
func (e EditLogEntry) Responsible() string { return e.responsible }
func (e EditLogEntry) Observation() string { return e.observation }

// Changes returns a copy of the change records.
func (e EditLogEntry) Changes() []FieldChange {
	return append([]FieldChange(nil), e.changes...)
}

func normalizeResponsible(responsible string) (string, error) {
	responsible = strings.TrimSpace(responsible)
	if responsible == "" {
		return "", errs.NewValueIsRequiredError("responsible")
	}
	return responsible, nil
}
