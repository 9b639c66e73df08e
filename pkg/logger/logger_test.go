package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tgorders/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	t.Cleanup(Replace(nil))

	assert.NotPanics(t, func() {
		Debug("debug")
		Info("info")
		Warn("warn")
		Error("error")
		With(zap.String("key", "value")).Info("with")
		WithRequestID("req-1").Info("request")
	})
	assert.NoError(t, Sync())
}

func TestInit_FileOutput(t *testing.T) {
	t.Cleanup(Replace(nil))
	path := filepath.Join(t.TempDir(), "logs", "tgorders.log")

	require.NoError(t, Init(&config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}, "production"))
	Info("written to file", zap.Int("n", 1))
	Debug("filtered out")
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestUpdateLevel(t *testing.T) {
	t.Cleanup(Replace(nil))
	require.NoError(t, Init(&config.LogConfig{Level: "warn", Output: "stdout"}, "production"))

	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	UpdateLevel("debug")
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestWatermillAdapter(t *testing.T) {
	logs := observe(t)
	adapter := NewWatermillAdapter().With(watermill.LogFields{"topic": "tgorders.events"})

	adapter.Info("published", watermill.LogFields{"uuid": "m-1"})
	adapter.Error("publish failed", errors.New("closed"), nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "published", entries[0].Message)
	assert.Equal(t, map[string]any{"component": "watermill", "topic": "tgorders.events", "uuid": "m-1"}, entries[0].ContextMap())
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "closed", entries[1].ContextMap()["error"])
}
