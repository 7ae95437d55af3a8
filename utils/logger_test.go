package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger_AppendsJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "webhook.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{\"msg\":\"earlier\"}\n"), 0644))

	require.NoError(t, InitLogger(path, "info"))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	LogDebug("hidden %d", 1)
	LogInfo("Webhook stored for paycode_id=%s", "apfel")
	SyncLogger()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"earlier"`)
	assert.Contains(t, string(content), "Webhook stored for paycode_id=apfel")
	assert.NotContains(t, string(content), "hidden")
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	assert.Error(t, InitLogger("", "loud"))
}

func TestLogHelpers_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	LogDebug("payload %s", "{}")
	LogInfo("received")
	LogWarn("mismatch")
	LogError("failed: %v", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "payload {}", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "failed: boom", entries[3].Message)
}
