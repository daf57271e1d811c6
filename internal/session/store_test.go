// ABOUTME: Tests for the file-backed token store
// ABOUTME: Verifies round-trip, permissions, and idempotent clearing

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	_, ok := store.Token()
	assert.False(t, ok)

	require.NoError(t, store.Save("tok-xyz"))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-xyz", token)

	// A fresh store reads the same token back from disk.
	fresh := NewFileStore(path)
	token, ok = fresh.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-xyz", token)
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)
	require.NoError(t, store.Save("secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreClearIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)
	require.NoError(t, store.Save("tok"))

	require.NoError(t, store.Clear())
	_, ok := store.Token()
	assert.False(t, ok)

	// Clearing again is a no-op, not an error.
	require.NoError(t, store.Clear())
}
