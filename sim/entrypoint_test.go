package sim

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_File(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "dvsim.log")
	log, closer, err := NewLogger("test ", slog.LevelDebug, logPath)
	require.NoError(t, err)
	log.Info("hello", "node", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "node=3")
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	log, closer, err := NewLogger("", slog.LevelInfo, "")
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.NoError(t, closer.Close())
}
