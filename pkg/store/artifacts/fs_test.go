package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSource_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0o644))

	src := NewFSSource()

	t.Run("existing file", func(t *testing.T) {
		data, err := src.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := src.ReadFile(context.Background(), filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, ErrNotExist)
	})
}

func TestFSSource_Stat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	src := NewFSSource()

	info, err := src.Stat(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(4), info.Size)
	assert.False(t, info.ModTime.IsZero())

	_, err = src.Stat(context.Background(), filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, ErrNotExist)
}
