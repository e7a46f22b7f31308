package client_test

import (
	"testing"

	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("trims and keeps every field", func(t *testing.T) {
		id := kernel.NewUUID()
		c, err := client.NewClient(id, " Acme Ltda ", " it@acme.test", "5555-0100 ")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, id, c.ID())
		assert.Equal(t, "Acme Ltda", c.Name())
		assert.Equal(t, "it@acme.test", c.Email())
		assert.Equal(t, "5555-0100", c.Phone())
	})

	t.Run("email is optional", func(t *testing.T) {
		c, err := client.NewClient(kernel.NewUUID(), "Walk-in", "", "")
		require.NoError(t, err)
		assert.Empty(t, c.Email())
	})

	t.Run("rejects a missing name and a malformed email together", func(t *testing.T) {
		_, err := client.NewClient(kernel.NewUUID(), "", "not-an-address", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, (&client.Client{}).Validate(), client.ErrClientIsNotConstructed)
	})
}
