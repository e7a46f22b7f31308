package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"repairdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrClientNotFound = errors.New("client not found")
)

// Recipient is what the email needs to know about an order.
type Recipient struct {
	OrderNumber      string
	EquipmentType    string
	ClientName       string
	ClientEmail      string
	CollaboratorName string
	CollaboratorMail string
}

// Email picks the collaborator's address, then the client's.
func (r Recipient) Email() string {
	if e := strings.TrimSpace(r.CollaboratorMail); e != "" {
		return e
	}
	return strings.TrimSpace(r.ClientEmail)
}

// Greeting names the collaborator when known, otherwise the client.
func (r Recipient) Greeting() string {
	if n := strings.TrimSpace(r.CollaboratorName); n != "" {
		return n
	}
	return r.ClientName
}

// Directory reads recipients from the orders database.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

type recipientRow struct {
	NumberSeq         int64
	EquipmentType     string
	CollaboratorName  string
	CollaboratorEmail string
	ClientName        sql.NullString
	ClientEmail       sql.NullString
}

// Find loads the order and its client. It returns ErrOrderNotFound or
// ErrClientNotFound when either row is missing.
func (d *Directory) Find(ctx context.Context, orderID string) (Recipient, error) {
	var rows []recipientRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT o.number_seq,
		       o.equipment_type,
		       o.collaborator_name,
		       o.collaborator_email,
		       c.name  AS client_name,
		       c.email AS client_email
		FROM service_orders o
		LEFT JOIN clients c ON c.id = o.client_id
		WHERE o.id = ?`, orderID).Scan(&rows).Error
	if err != nil {
		return Recipient{}, fmt.Errorf("read order %s: %w", orderID, err)
	}
	if len(rows) == 0 {
		return Recipient{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	row := rows[0]
	if !row.ClientName.Valid {
		return Recipient{}, fmt.Errorf("%w: order %s", ErrClientNotFound, orderID)
	}

	number, err := order.NewOrderNumber(row.NumberSeq)
	if err != nil {
		return Recipient{}, err
	}

	return Recipient{
		OrderNumber:      number.String(),
		EquipmentType:    row.EquipmentType,
		ClientName:       row.ClientName.String,
		ClientEmail:      row.ClientEmail.String,
		CollaboratorName: row.CollaboratorName,
		CollaboratorMail: row.CollaboratorEmail,
	}, nil
}
