package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDocumentPathConvention(t *testing.T) {
	clientID := uuid.New()

	got := DocumentPath("acme", clientID, "contract.pdf")
	require.Equal(t, filepath.Join("documents", "acme", clientID.String(), "contract.pdf"), got)

	// Client-supplied paths are reduced to their base name.
	got = DocumentPath("acme", clientID, "../../etc/passwd")
	require.Equal(t, filepath.Join("documents", "acme", clientID.String(), "passwd"), got)

	got = DocumentPath("acme", clientID, "/tmp/upload/report.pdf")
	require.Equal(t, filepath.Join("documents", "acme", clientID.String(), "report.pdf"), got)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	clientID := uuid.New()

	rel, err := store.Save("acme", clientID, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	require.Equal(t, DocumentPath("acme", clientID, "notes.txt"), rel)
	require.True(t, store.Exists(rel))

	f, err := store.Open(rel)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestOpenMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Open("documents/acme/nope/missing.pdf")
	require.ErrorIs(t, err, ErrFileMissing)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	clientID := uuid.New()

	rel, err := store.Save("acme", clientID, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(rel))
	require.False(t, store.Exists(rel))

	// Deleting again, or deleting something never stored, is a no-op.
	require.NoError(t, store.Delete(rel))
	require.NoError(t, store.Delete("documents/acme/ghost/none.pdf"))
}
