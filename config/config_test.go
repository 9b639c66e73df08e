package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tgorders", cfg.App.Name)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 60, cfg.Telegram.PollTimeout)
	assert.Equal(t, 2*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, 24*time.Hour, cfg.Redis.DedupTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  type: mysql
  database: from_file
telegram:
  token: file-token
  admin_ids: [1, 2]
`), 0o600))
	t.Setenv("TGORDERS_TELEGRAM_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "from_file", cfg.Database.Database)
	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, []int64{1, 2}, cfg.Telegram.AdminIDs)
}

func TestLoad_RejectsUnknownDatabase(t *testing.T) {
	t.Setenv("TGORDERS_DATABASE_TYPE", "sqlite")

	_, err := Load("")
	assert.ErrorContains(t, err, "sqlite")
}
