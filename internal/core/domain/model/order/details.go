package order

import (
	"errors"
	"net/mail"
	"strings"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"
)

// Equipment identifies the device brought in for repair.
type Equipment struct {
	Type         string
	Brand        string
	Model        string
	SerialNumber string
}

// Collaborator is the on-site contact at the client, distinct from the client company.
type Collaborator struct {
	Name  string
	Email string
	Phone string
}

// Details groups the editable descriptive fields of a service order. Edits to any
// of them are audited field by field; the analyst is deliberately not part of it.
type Details struct {
	ClientID        kernel.UUID
	Collaborator    Collaborator
	Equipment       Equipment
	ReportedProblem string
}

// Field keys used in edit log change records.
const (
	FieldClientID          = "clientId"
	FieldCollaboratorName  = "collaborator.name"
	FieldCollaboratorEmail = "collaborator.email"
	FieldCollaboratorPhone = "collaborator.phone"
	FieldEquipmentType     = "equipment.type"
	FieldEquipmentBrand    = "equipment.brand"
	FieldEquipmentModel    = "equipment.model"
	FieldEquipmentSerial   = "equipment.serialNumber"
	FieldReportedProblem   = "reportedProblem"
)

// Normalized returns a copy with every text field trimmed.
func (d Details) Normalized() Details {
	d.Collaborator.Name = strings.TrimSpace(d.Collaborator.Name)
	d.Collaborator.Email = strings.TrimSpace(d.Collaborator.Email)
	d.Collaborator.Phone = strings.TrimSpace(d.Collaborator.Phone)
	d.Equipment.Type = strings.TrimSpace(d.Equipment.Type)
	d.Equipment.Brand = strings.TrimSpace(d.Equipment.Brand)
	d.Equipment.Model = strings.TrimSpace(d.Equipment.Model)
	d.Equipment.SerialNumber = strings.TrimSpace(d.Equipment.SerialNumber)
	d.ReportedProblem = strings.TrimSpace(d.ReportedProblem)
	return d
}

// Validate checks the fields every order must carry.
func (d Details) Validate() error {
	var problems []error
	if err := d.ClientID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("clientId", err))
	}
	if d.Equipment.Type == "" {
		problems = append(problems, errs.NewValueIsRequiredError(FieldEquipmentType))
	}
	if d.ReportedProblem == "" {
		problems = append(problems, errs.NewValueIsRequiredError(FieldReportedProblem))
	}
	if d.Collaborator.Email != "" {
		if _, err := mail.ParseAddress(d.Collaborator.Email); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(FieldCollaboratorEmail, err))
		}
	}
	return errors.Join(problems...)
}

// fields flattens the details into (key, value) pairs in a fixed order so diffs
// are deterministic.
func (d Details) fields() [][2]string {
	return [][2]string{
		{FieldClientID, d.ClientID.String()},
		{FieldCollaboratorName, d.Collaborator.Name},
		{FieldCollaboratorEmail, d.Collaborator.Email},
		{FieldCollaboratorPhone, d.Collaborator.Phone},
		{FieldEquipmentType, d.Equipment.Type},
		{FieldEquipmentBrand, d.Equipment.Brand},
		{FieldEquipmentModel, d.Equipment.Model},
		{FieldEquipmentSerial, d.Equipment.SerialNumber},
		{FieldReportedProblem, d.ReportedProblem},
	}
}

// Diff lists every tracked field whose value differs between d and next.
func (d Details) Diff(next Details) []FieldChange {
	before := d.fields()
	after := next.fields()

	changes := make([]FieldChange, 0)
	for i := range before {
		if before[i][1] == after[i][1] {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    before[i][0],
			OldValue: before[i][1],
			NewValue: after[i][1],
		})
	}
	return changes
}
