package mysql

import (
	"testing"
	"time"

	"tgorders/config"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := FromAppConfig(config.DatabaseConfig{
		Host:     "db",
		Port:     "3306",
		Username: "bot",
		Password: "secret",
		Database: "tgorders",
	})

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "bot:secret@tcp(db:3306)/tgorders?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{MaxOpenConns: 4, MaxIdleConns: 8}
	cfg.applyDefaults()

	assert.Equal(t, 4, cfg.MaxOpenConns)
	assert.Equal(t, 4, cfg.MaxIdleConns)
	assert.Equal(t, DefaultConnMaxLifetime, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
}
