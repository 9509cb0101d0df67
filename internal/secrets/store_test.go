package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("openband", "access_token", "T1"))

	value, err := store.Get("openband", "access_token")
	require.NoError(t, err)
	assert.Equal(t, "T1", value)
}

func TestFileStore_GetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("openband", "access_token")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStore_OverwriteReplacesValue(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("openband", "access_token", "old"))
	require.NoError(t, store.Set("openband", "access_token", "new"))

	value, err := store.Get("openband", "access_token")
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("openband", "authorization_code", "XYZ"))

	// A fresh store over the same directory must see the value.
	store2, err := NewFileStore(dir)
	require.NoError(t, err)

	value, err := store2.Get("openband", "authorization_code")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", value)
}

func TestFileStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("openband", "access_token", "T1"))

	info, err := os.Stat(filepath.Join(dir, "openband.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("openband", "access_token", "T1"))
	require.NoError(t, store.Delete("openband", "access_token"))

	_, err = store.Get("openband", "access_token")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Deleting again is not an error.
	require.NoError(t, store.Delete("openband", "access_token"))
}

func TestFileStore_ServicesAreIsolated(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("app-one", "access_token", "T1"))
	require.NoError(t, store.Set("app-two", "access_token", "T2"))

	v1, err := store.Get("app-one", "access_token")
	require.NoError(t, err)
	v2, err := store.Get("app-two", "access_token")
	require.NoError(t, err)

	assert.Equal(t, "T1", v1)
	assert.Equal(t, "T2", v2)
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	_, err := store.Get("openband", "access_token")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Set("openband", "access_token", "T1"))
	value, err := store.Get("openband", "access_token")
	require.NoError(t, err)
	assert.Equal(t, "T1", value)

	require.NoError(t, store.Delete("openband", "access_token"))
	_, err = store.Get("openband", "access_token")
	assert.True(t, errors.Is(err, ErrNotFound))
}
