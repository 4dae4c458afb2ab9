package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewFansOutToConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "dpiwatch.log")

	logger, closer, err := New(Options{Level: "info", File: path, MaxSizeMB: 1, MaxFiles: 2, Stderr: &console})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("window adjusted", "factor", 1.5)
	require.NoError(t, closer.Close())

	// A buffer is not a terminal, so console output is JSON too.
	var rec map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &rec))
	assert.Equal(t, "window adjusted", rec["msg"])
	assert.Equal(t, 1.5, rec["factor"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"window adjusted"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewWithoutFile(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := New(Options{Level: "debug", Stderr: &console})
	require.NoError(t, err)

	logger.Debug("dpi changed")
	assert.NoError(t, closer.Close())
	assert.Contains(t, console.String(), "dpi changed")
}

func TestRotatingFileRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dpiwatch.log")
	rf, err := OpenRotatingFile(path, 1, 2)
	require.NoError(t, err)
	rf.maxBytes = 16

	for i := 0; i < 4; i++ {
		_, err := rf.Write([]byte(strings.Repeat("x", 10) + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, rf.Close())

	for _, p := range []string{path, path + ".1", path + ".2"} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))

	_, err = rf.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
