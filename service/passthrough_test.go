package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidshare/storage"
)

func TestPassthroughCopiesAndRemovesRaw(t *testing.T) {
	dirs := storage.NewDirs(t.TempDir())
	require.NoError(t, dirs.Ensure())

	base := storage.NewBaseName()
	rawPath := filepath.Join(dirs.Originals, base+".mp4")
	content := []byte("fake video bytes")
	require.NoError(t, os.WriteFile(rawPath, content, 0644))

	p := &PassthroughProcessor{dirs: dirs}
	res, err := p.Process(context.Background(), rawPath, base)
	require.NoError(t, err)

	assert.Equal(t, base+".mp4", res.ProcessedFilename)
	assert.Empty(t, res.ThumbnailFilename)
	assert.NoFileExists(t, rawPath, "raw file is transient and must be removed")

	copied, err := os.ReadFile(res.ProcessedPath)
	require.NoError(t, err)
	assert.Equal(t, content, copied)
}

func TestPassthroughFailsOnMissingRaw(t *testing.T) {
	dirs := storage.NewDirs(t.TempDir())
	require.NoError(t, dirs.Ensure())

	p := &PassthroughProcessor{dirs: dirs}
	_, err := p.Process(context.Background(), filepath.Join(dirs.Originals, "missing.mp4"), "missing")
	assert.ErrorIs(t, err, ErrProcessing)

	entries, err := os.ReadDir(dirs.Processed)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial output may survive a failure")
}
