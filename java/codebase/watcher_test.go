package codebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/javahl/java/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher(t *testing.T) {
	root := t.TempDir()
	c := New(symbols.NewProject(), WithQuietPeriod(10*time.Millisecond))
	defer c.Close()
	require.NoError(t, c.AddSourceRoot(context.Background(), root))

	w := NewFileWatcher(c, 20*time.Millisecond)
	batches := make(chan []string, 64)
	w.OnChange(func(paths []string) {
		select {
		case batches <- paths:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	dir := filepath.Join(root, "p")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "Watched.java")

	// Writes are repeated until the watcher has registered the new directory.
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("package p; public class Watched {}"), 0o644); err != nil {
			return false
		}
		return c.Project().Table().Type("Watched") != nil
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		return c.Project().Table().Type("Watched") == nil
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case paths := <-batches:
		assert.NotEmpty(t, paths)
	default:
		t.Fatal("no batch was reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestSkipPath(t *testing.T) {
	assert.True(t, skipPath("/src/.A.java.swp"))
	assert.True(t, skipPath("/src/A.java~"))
	assert.True(t, skipPath("/src/.#A.java"))
	assert.False(t, skipPath("/src/A.java"))
}
