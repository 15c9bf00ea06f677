package reports

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "pdfs")
	s, err := NewFSStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "old.pdf", []byte("%PDF-old")))
	require.NoError(t, s.Save(ctx, "new.pdf", []byte("%PDF-new!")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.pdf"), past, past))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "new.pdf", infos[0].Filename)
	assert.Equal(t, int64(9), infos[0].Size)
	assert.Equal(t, "/api/v1/analysis/pdfs/new.pdf", infos[0].Path)

	rc, size, err := s.Open(ctx, "new.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-new!", string(data))
	assert.Equal(t, int64(9), size)

	_, _, err = s.Open(ctx, "missing.pdf")
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, _, err = s.Open(ctx, "../pdfs/new.pdf")
	assert.ErrorIs(t, err, ErrInvalidFilename)

	require.NoError(t, s.Delete(ctx, "old.pdf"))
	assert.ErrorIs(t, s.Delete(ctx, "old.pdf"), ErrReportNotFound)
}

func TestFSStore_SaveRejectsTraversal(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	assert.ErrorIs(t, s.Save(context.Background(), "../escape.pdf", []byte("x")), ErrInvalidFilename)
}
