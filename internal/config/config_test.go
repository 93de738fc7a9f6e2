package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "./data/chat_history.db", cfg.Database.Path)
	assert.Equal(t, "./faqs.json", cfg.FAQ.Path)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	require.Len(t, cfg.Admins, 3)
	assert.Equal(t, "nelson", cfg.Admins[0].Username)
	assert.Equal(t, "super_admin", cfg.Admins[0].Role)
	assert.Equal(t, "vani", cfg.Admins[1].Username)
	assert.Equal(t, "imran", cfg.Admins[2].Username)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("SMTP_USERNAME", "bot@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.True(t, cfg.SMTP.Configured())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
auth:
  session_ttl: 30m
admins:
  - username: solo
    password: secret
    role: super_admin
    name: Solo
    permissions: [read]
`), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	require.Len(t, cfg.Admins, 1)
	assert.Equal(t, "solo", cfg.Admins[0].Username)
}

func TestDatabaseDSN(t *testing.T) {
	dsn := DatabaseConfig{Path: "./data/chat_history.db"}.DSN()
	assert.Contains(t, dsn, "file:./data/chat_history.db")
	assert.Contains(t, dsn, "journal_mode(WAL)")
	assert.Contains(t, dsn, "busy_timeout(5000)")
}

func TestSMTPConfigured(t *testing.T) {
	assert.False(t, SMTPConfig{}.Configured())
	assert.False(t, SMTPConfig{Username: "u", Password: "p"}.Configured())
	assert.True(t, SMTPConfig{Username: "u", Password: "p", AdminEmail: "a"}.Configured())
}
