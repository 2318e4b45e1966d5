package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_DebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doctors.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"doctors":[]}`), 0644))

	fw, err := NewFileWatcher(WatchConfig{DebounceDelay: 100 * time.Millisecond})
	require.NoError(t, err)

	var calls atomic.Int32
	require.NoError(t, fw.Watch(target, func(path string) {
		assert.Equal(t, filepath.Clean(target), path)
		calls.Add(1)
	}))
	require.NoError(t, fw.Start())
	defer fw.Stop()

	// 快速多次写入应合并为一次回调
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte(`{"doctors":[{"name":"Dr. A"}]}`), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "events should be debounced")
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doctors.json")

	fw, err := NewFileWatcher(WatchConfig{DebounceDelay: 50 * time.Millisecond})
	require.NoError(t, err)

	var calls atomic.Int32
	require.NoError(t, fw.Watch(target, func(string) { calls.Add(1) }))
	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "appointments.json"), []byte("{}"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(WatchConfig{})
	require.NoError(t, err)
	require.NoError(t, fw.Start())

	fw.Stop()
	assert.NotPanics(t, fw.Stop)
}
