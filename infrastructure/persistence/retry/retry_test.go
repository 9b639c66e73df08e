package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"tgorders/config"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	cfg.JitterEnabled = false
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig

	assert.False(t, IsRetryableError(nil, cfg))
	assert.True(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
	assert.True(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1205}, cfg))
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1062}, cfg))
	assert.True(t, IsRetryableError(mysqlDriver.ErrInvalidConn, cfg))
	assert.False(t, IsRetryableError(errors.New("boom"), cfg))

	cfg.RetryOnDeadlock = false
	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}
	err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestExecuteWithRetry_Disabled(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false
	calls := 0
	_ = ExecuteWithRetry(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return mysqlDriver.ErrInvalidConn
	})
	assert.Equal(t, 1, calls)
}

func TestExponentialBackoff_CapsAtMaxDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, BackoffFactor: 2}

	assert.Equal(t, time.Duration(0), ExponentialBackoffWithJitter(0, cfg))
	assert.Equal(t, 100*time.Millisecond, ExponentialBackoffWithJitter(1, cfg))
	assert.Equal(t, 200*time.Millisecond, ExponentialBackoffWithJitter(2, cfg))
	assert.Equal(t, 300*time.Millisecond, ExponentialBackoffWithJitter(5, cfg))
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(&config.Config{Database: config.DatabaseConfig{Retry: config.RetryConfig{Enabled: true}}})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultConfig.MaxAttempts, cfg.MaxAttempts)
}
