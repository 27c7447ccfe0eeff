package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherAppliesOnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeOverlay(t, path, "click_delay: 300ms\n")

	reg := NewRegistry(nil)
	w, err := NewWatcher(reg, path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	assert.Equal(t, 300*time.Millisecond, reg.ClickDelay())
}

func TestWatcherReappliesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeOverlay(t, path, "click_delay: 300ms\n")

	reg := NewRegistry(nil)
	w, err := NewWatcher(reg, path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	writeOverlay(t, path, "click_delay: 450ms\nimage_quality: 8\n")

	assert.Eventually(t, func() bool {
		return reg.ClickDelay() == 450*time.Millisecond && reg.ImageQuality() == 8
	}, 5*time.Second, 50*time.Millisecond, "overlay change was not reapplied")
}

func TestWatcherStartWithoutFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigFile)

	reg := NewRegistry(nil)
	w, err := NewWatcher(reg, path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Registry keeps defaults until the overlay appears.
	assert.Equal(t, 100*time.Millisecond, reg.ClickDelay())

	writeOverlay(t, path, "click_delay: 600ms\n")
	assert.Eventually(t, func() bool {
		return reg.ClickDelay() == 600*time.Millisecond
	}, 5*time.Second, 50*time.Millisecond, "overlay creation was not picked up")
}
