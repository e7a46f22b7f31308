// Package client holds the minimal client registry used to resolve display names
// and to find a notification recipient when an order has no collaborator email.
package client

import (
	"errors"
	"net/mail"
	"strings"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")

// Client is a company or person that brings equipment in for repair.
type Client struct {
	id    kernel.UUID
	name  string
	email string
	phone string

	isConstructed bool
}

// NewClient creates a client. Name is required; email is optional but must be a
// valid address when present.
//
// Example:
//
//	c, err := client.NewClient(kernel.NewUUID(), "Acme Ltda", "it@acme.test", "+55 11 5555-0100")
func NewClient(id kernel.UUID, name, email, phone string) (*Client, error) {
	c := &Client{
		isConstructed: true,
		phone:         strings.TrimSpace(phone),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Client was built through NewClient.
func (c *Client) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClientIsNotConstructed
	}
	return nil
}

func (c *Client) ID() kernel.UUID { return c.id }
func (c *Client) Name() string    { return c.name }
func (c *Client) Email() string   { return c.email }
func (c *Client) Phone() string   { return c.phone }

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Client) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("email", err)
		}
	}
	c.email = email
	return nil
}
