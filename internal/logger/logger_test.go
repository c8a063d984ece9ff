package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ProductionWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "boardprep.log")

	log, closeLog, err := New(Options{Env: "production", Level: "info", File: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("quiz finished", zap.Int("score", 10))
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "quiz finished", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 10, entry["score"])
}

func TestNew_DevelopmentConsoleEncoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.log")

	log, closeLog, err := New(Options{Env: "development", Level: "debug", File: path})
	require.NoError(t, err)
	log.Debug("tick ignored")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug")
	assert.Contains(t, string(data), "tick ignored")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(string(data)))))
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestDefaultFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "boardprep", "boardprep.log"), DefaultFile("/data/boardprep/boardprep.db"))
}
