package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrNoRecipient         = errors.New("neither the collaborator nor the client has an email address")
	ErrMailerNotConfigured = errors.New("smtp is not configured")
)

type (
	RecipientFinder interface {
		Find(ctx context.Context, orderID string) (Recipient, error)
	}

	Mailer interface {
		Send(ctx context.Context, to, subject, body string) error
	}

	DeliveryRecorder interface {
		Record(ctx context.Context, d Delivery) error
		ListByOrder(ctx context.Context, orderID string) ([]Delivery, error)
	}
)

// Service emails the recipient of an order and records the attempt.
type Service struct {
	recipients RecipientFinder
	mailer     Mailer
	deliveries DeliveryRecorder
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a Service. deliveries may be nil, in which case attempts
// are only logged.
func NewService(recipients RecipientFinder, mailer Mailer, deliveries DeliveryRecorder, logger *slog.Logger) *Service {
	return &Service{
		recipients: recipients,
		mailer:     mailer,
		deliveries: deliveries,
		logger:     logger.With("component", "notification_service"),
		now:        time.Now,
	}
}

// Notify emails the order's recipient that it entered statusName. Lookup
// failures are returned unrecorded; every attempt with a known order is recorded.
func (s *Service) Notify(ctx context.Context, orderID, statusName string) (Delivery, error) {
	recipient, err := s.recipients.Find(ctx, orderID)
	if err != nil {
		return Delivery{}, err
	}

	d := Delivery{
		OrderID:     orderID,
		OrderNumber: recipient.OrderNumber,
		StatusName:  statusName,
		Recipient:   recipient.Email(),
		At:          s.now().UTC(),
	}

	if d.Recipient == "" {
		err = ErrNoRecipient
	} else {
		subject, body := compose(recipient, statusName)
		err = s.mailer.Send(ctx, d.Recipient, subject, body)
	}

	d.Sent = err == nil
	if err != nil {
		d.Error = err.Error()
	}
	s.record(ctx, d)

	if err != nil {
		return d, err
	}
	s.logger.InfoContext(ctx, "notification sent", "order", d.OrderNumber, "status", statusName, "recipient", d.Recipient)
	return d, nil
}

// History lists recorded attempts for an order.
func (s *Service) History(ctx context.Context, orderID string) ([]Delivery, error) {
	if s.deliveries == nil {
		return []Delivery{}, nil
	}
	return s.deliveries.ListByOrder(ctx, orderID)
}

func (s *Service) record(ctx context.Context, d Delivery) {
	if s.deliveries == nil {
		return
	}
	if err := s.deliveries.Record(ctx, d); err != nil {
		s.logger.WarnContext(ctx, "delivery not recorded", "order", d.OrderNumber, "error", err)
	}
}

func compose(r Recipient, statusName string) (subject, body string) {
	subject = fmt.Sprintf("Service order %s: %s", r.OrderNumber, statusName)
	body = fmt.Sprintf(
		"Hello %s,\n\nService order %s (%s) for %s is now: %s.\n\nThis is an automatic message.\n",
		r.Greeting(), r.OrderNumber, r.EquipmentType, r.ClientName, statusName,
	)
	return subject, body
}
