package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates File And Parents", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "chi-siamo", "index.html")

		require.NoError(t, WriteFileAtomic(filename, []byte("<h1>Chi Siamo</h1>"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "<h1>Chi Siamo</h1>", string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		tmpDir := t.TempDir()
		filename := filepath.Join(tmpDir, "routes.json")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0o644))

		require.NoError(t, WriteFileAtomic(filename, []byte("overwritten"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, WriteFileAtomic(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0o644))

		entries, err := os.ReadDir(tmpDir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover temp file %s", e.Name())
		}
	})

	t.Run("Fails When Target Is A Directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "chi-siamo")
		require.NoError(t, os.MkdirAll(filepath.Join(target, "index.html"), 0o755))

		err := WriteFileAtomic(target, []byte("x"), 0o644)
		require.Error(t, err)
		assert.Contains(t, err.Error(), target)

		entries, err := os.ReadDir(tmpDir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover temp file %s", e.Name())
		}
	})
}
