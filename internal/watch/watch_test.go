package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_FiresOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "taskatlas.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 50*time.Millisecond, func() { fired.Add(1) })
	}()

	// Give the watcher a moment to register, then touch the file
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n# changed\n"), 0644))

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		2*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestFile_IgnoresSiblingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "taskatlas.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	go File(ctx, path, 50*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "other.yml"), []byte("x"), 0644))

	// No callback for unrelated files
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestFile_DebouncesBursts(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "taskatlas.yml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	go File(ctx, path, 200*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	// A save burst: several writes inside one debounce window
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0644))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		2*time.Second, 20*time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "burst should coalesce into one callback")
}

func TestFile_ReturnsOnCancel(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "taskatlas.yml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 0, func() {})
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not return after cancel")
	}
}
