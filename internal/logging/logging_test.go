package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "tock.log")

	logger, err := New(logFile, "debug")
	require.NoError(t, err)

	logger.Debug("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestNewRespectsLevel(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tock.log")

	logger, err := New(logFile, "warn")
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", "info")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty")
	assert.Error(t, err)
}
