package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLoggerCapturesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	Info("plan loaded", "file", "whole-bible_1-year_313.csv", "rows", 313)
	Error("render failed", errors.New("boom"), "month", "2024-01")
	Debug("cache purged", "removed", 2)

	entries := logs.All()
	require.Len(t, entries, 3)

	info := entries[0]
	assert.Equal(t, zapcore.InfoLevel, info.Level)
	assert.Equal(t, "plan loaded", info.Message)
	assert.Equal(t, "whole-bible_1-year_313.csv", info.ContextMap()["file"])
	assert.EqualValues(t, 313, info.ContextMap()["rows"])

	failed := entries[1]
	assert.Equal(t, zapcore.ErrorLevel, failed.Level)
	assert.Equal(t, "boom", failed.ContextMap()["err"])
	assert.Equal(t, "2024-01", failed.ContextMap()["month"])

	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init(Options{Level: "chatty"}))
}

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblecal.log")
	require.NoError(t, Init(Options{Level: "info", File: path}))

	Debug("hidden")
	Info("hello", "k", "v")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"timestamp":`)
	assert.NotContains(t, out, "hidden")
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, Init(Options{Level: "info"}))
	SetLevel(LevelError)
	assert.Equal(t, zapcore.ErrorLevel, atomicLvl.Level())
	SetLevel(LevelDebug)
	assert.Equal(t, zapcore.DebugLevel, atomicLvl.Level())
	SetLevel(LevelInfo)
}
