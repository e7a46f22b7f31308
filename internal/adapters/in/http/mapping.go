package http

import (
	"fmt"

	"repairdesk/internal/core/application/usecases/queries"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernel(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelSet(ids *[]openapi_types.UUID) (kernel.UUIDSet, error) {
	if ids == nil {
		return kernel.NewUUIDSet(), nil
	}
	out := make([]kernel.UUID, 0, len(*ids))
	for _, id := range *ids {
		k, err := toKernel(id)
		if err != nil {
			return kernel.UUIDSet{}, fmt.Errorf("invalid id %s: %w", id, err)
		}
		out = append(out, k)
	}
	return kernel.NewUUIDSet(out...), nil
}

func toAPIIDs(ids []kernel.UUID) []openapi_types.UUID {
	out := make([]openapi_types.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}

// optional returns nil for empty strings so they are omitted from responses.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toAPIStatus(v queries.StatusView) servers.Status {
	return servers.Status{
		Id:              v.ID.Bytes(),
		Name:            v.Name,
		Order:           v.Order,
		Color:           v.Color,
		Icon:            optional(v.Icon),
		IsInitial:       v.IsInitial,
		IsFinal:         v.IsFinal,
		IsPickupStatus:  v.IsPickup,
		TriggersEmail:   v.TriggersEmail,
		AllowedNext:     toAPIIDs(v.AllowedNext),
		AllowedPrevious: toAPIIDs(v.AllowedPrevious),
	}
}

func toAPIStatusRef(ref queries.StatusRef) servers.StatusRef {
	return servers.StatusRef{
		Id:    ref.ID.Bytes(),
		Name:  ref.Name,
		Color: optional(ref.Color),
	}
}

func toAPIClient(v queries.ClientView) servers.Client {
	return servers.Client{
		Id:    v.ID.Bytes(),
		Name:  v.Name,
		Email: optional(v.Email),
		Phone: optional(v.Phone),
	}
}

func toAPIEquipment(e order.Equipment) servers.Equipment {
	return servers.Equipment{
		Type:         e.Type,
		Brand:        optional(e.Brand),
		Model:        optional(e.Model),
		SerialNumber: optional(e.SerialNumber),
	}
}

func toAPIOrderSummary(v queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		Id:         v.ID.Bytes(),
		Number:     v.Number,
		ClientId:   v.ClientID.Bytes(),
		ClientName: optional(v.ClientName),
		Equipment: toAPIEquipment(order.Equipment{
			Type:  v.EquipmentType,
			Brand: v.EquipmentBrand,
			Model: v.EquipmentModel,
		}),
		Analyst:   optional(v.Analyst),
		Status:    toAPIStatusRef(v.Status),
		CreatedAt: v.CreatedAt,
	}
}

func toAPILogEntry(v queries.LogView) servers.LogEntry {
	return servers.LogEntry{
		Seq:         v.Seq,
		At:          v.At,
		Responsible: v.Responsible,
		From:        toAPIStatusRef(v.From),
		To:          toAPIStatusRef(v.To),
		Observation: optional(v.Observation),
	}
}

func toAPIFieldChanges(changes []order.FieldChange) []servers.FieldChange {
	out := make([]servers.FieldChange, 0, len(changes))
	for _, c := range changes {
		out = append(out, servers.FieldChange{Field: c.Field, OldValue: c.OldValue, NewValue: c.NewValue})
	}
	return out
}

func toAPIOrderDetail(v *queries.OrderDetail) servers.OrderDetail {
	summary := toAPIOrderSummary(v.OrderSummary)

	detail := servers.OrderDetail{
		Id:          summary.Id,
		Number:      summary.Number,
		ClientId:    summary.ClientId,
		ClientName:  summary.ClientName,
		ClientEmail: optional(v.ClientEmail),
		Collaborator: servers.Collaborator{
			Name:  optional(v.Collaborator.Name),
			Email: optional(v.Collaborator.Email),
			Phone: optional(v.Collaborator.Phone),
		},
		Equipment:         toAPIEquipment(v.Equipment),
		Analyst:           summary.Analyst,
		Status:            summary.Status,
		ReportedProblem:   v.ReportedProblem,
		TechnicalSolution: optional(v.TechnicalSolution),
		Attachments:       make([]servers.Attachment, 0, len(v.Attachments)),
		Services:          make([]servers.ContractedService, 0, len(v.Services)),
		Logs:              make([]servers.LogEntry, 0, len(v.Logs)),
		EditLogs:          make([]servers.EditLogEntry, 0, len(v.EditLogs)),
		Version:           v.Version,
		CreatedAt:         summary.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}

	for _, a := range v.Attachments {
		detail.Attachments = append(detail.Attachments, servers.Attachment{Name: a.Name, Url: a.URL})
	}
	for _, s := range v.Services {
		detail.Services = append(detail.Services, servers.ContractedService{
			Id:        s.ID.Bytes(),
			Name:      s.Name,
			Confirmed: s.Confirmed,
		})
	}
	for _, l := range v.Logs {
		detail.Logs = append(detail.Logs, toAPILogEntry(l))
	}
	for _, e := range v.EditLogs {
		detail.EditLogs = append(detail.EditLogs, servers.EditLogEntry{
			Seq:         e.Seq,
			At:          e.At,
			Responsible: e.Responsible,
			Observation: optional(e.Observation),
			Changes:     toAPIFieldChanges(e.Changes),
		})
	}

	return detail
}
