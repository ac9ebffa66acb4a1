package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewWithCore(core)

	log.Debug("hidden %d", 1)
	log.Info("fetched %d records for master=%s", 3, "M1")
	log.Warn("retry attempt=%d", 2)
	log.Error("failed: %v", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "fetched 3 records for master=M1", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Contains(t, entries[2].Message, assert.AnError.Error())
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")

	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Info("hello %s", "file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
