package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/dpiwatch/internal/config"
	"github.com/1broseidon/dpiwatch/internal/dpi"
)

func TestParseInts(t *testing.T) {
	got, err := parseInts("100, 200,-5,7", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200, -5, 7}, got)

	_, err = parseInts("1,2,3", 4)
	assert.Error(t, err)

	_, err = parseInts("1,x", 2)
	assert.Error(t, err)
}

func TestResizeMethod(t *testing.T) {
	assert.Equal(t, dpi.Delayed, resizeMethod(config.ResizeDelayed))
	assert.Equal(t, dpi.Immediate, resizeMethod(config.ResizeImmediate))
}

func TestFormatSource(t *testing.T) {
	assert.Equal(t, "default", formatSource(config.Source{Kind: config.SourceDefault}))
	assert.Equal(t, "file:/tmp/c.yaml:3:5", formatSource(config.Source{Kind: config.SourceFile, File: "/tmp/c.yaml", Line: 3, Column: 5}))
	assert.Equal(t, "file:/tmp/c.yaml", formatSource(config.Source{Kind: config.SourceFile, File: "/tmp/c.yaml"}))
}

func TestRunWatchFailsWithoutExiting(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("resize_mode: delayed\n"), 0o644))
	assert.Equal(t, 1, runWatch([]string{"--config", bad}))

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("resize_method: immediate\n"), 0o644))
	assert.Equal(t, 2, runWatch([]string{"--config", good, "--method", "sideways"}))
}
