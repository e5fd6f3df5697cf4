package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultPath(t *testing.T) {
	tests := []struct {
		src    string
		outDir string
		format string
		want   string
	}{
		{filepath.Join("in", "bracket.step"), "", "json", filepath.Join("in", "bracket.pmi.json")},
		{filepath.Join("in", "bracket.stp"), "out", "yaml", filepath.Join("out", "bracket.pmi.yaml")},
		{"plate.STEP", "", "json", "plate.pmi.json"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, resultPath(tc.src, tc.outDir, tc.format), "resultPath(%q, %q, %q)", tc.src, tc.outDir, tc.format)
	}
}

func TestIsStepFile(t *testing.T) {
	assert.True(t, isStepFile("part.step"))
	assert.True(t, isStepFile("part.stp"))
	assert.True(t, isStepFile("PART.STEP"))
	assert.False(t, isStepFile("part.pmi.json"))
	assert.False(t, isStepFile("readme.txt"))
	assert.False(t, isStepFile("noextension"))
}

func TestShouldExtract(t *testing.T) {
	assert.True(t, shouldExtract(fsnotify.Event{Name: "a.step", Op: fsnotify.Create}))
	assert.True(t, shouldExtract(fsnotify.Event{Name: "a.stp", Op: fsnotify.Write}))
	assert.False(t, shouldExtract(fsnotify.Event{Name: "a.step", Op: fsnotify.Chmod}))
	assert.False(t, shouldExtract(fsnotify.Event{Name: "a.step", Op: fsnotify.Remove}))
	assert.False(t, shouldExtract(fsnotify.Event{Name: "a.json", Op: fsnotify.Create}))
}

func TestWatchDirectory(t *testing.T) {
	watchDir := t.TempDir()
	outDir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watchDirectory(ctx, watchDir, outDir, "json")
	}()

	// Give the watcher a moment to register before producing events.
	time.Sleep(100 * time.Millisecond)

	fixture, err := os.ReadFile(filepath.Join("..", "..", "testdata", "empty.step"))
	require.NoError(t, err)
	src := filepath.Join(watchDir, "part.step")
	require.NoError(t, os.WriteFile(src, fixture, 0o644))

	dest := filepath.Join(outDir, "part.pmi.json")
	require.Eventually(t, func() bool {
		info, err := os.Stat(dest)
		return err == nil && info.Size() > 0
	}, 5*time.Second, 50*time.Millisecond, "result file was not written")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.True(t, json.Valid(data), "result file is not valid JSON: %s", data)
	assert.Contains(t, string(data), `"extraction_id"`)
	assert.Contains(t, string(data), `"format": "AP242"`)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchDirectory_MissingDir(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := watchDirectory(ctx, filepath.Join(t.TempDir(), "does-not-exist"), "", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
