package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH0_DOMAIN", "repairdesk.eu.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.repairdesk.test")
	t.Setenv("DB_HOST", "")
	t.Setenv("NOTIFIER_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 10*time.Second, cfg.NotifierTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.AMQPURL)
	assert.Contains(t, cfg.DSN(), "dbname=repairdesk")
}

func TestLoadConfig_RequiresAuth0(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH0_DOMAIN", "")
	t.Setenv("AUTH0_AUDIENCE", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH0_DOMAIN", "repairdesk.eu.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.repairdesk.test")
	t.Setenv("NOTIFIER_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}
