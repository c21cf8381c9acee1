package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	// Missing file is not an error.
	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)

	require.NoError(t, store.Save(&Credentials{
		AccessToken: "token-abc",
		Email:       "user@example.com",
	}))

	// Credentials are private to the user.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	creds, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "token-abc", creds.AccessToken)
	assert.Equal(t, "user@example.com", creds.Email)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	// Clearing an empty store is a no-op.
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save(&Credentials{AccessToken: "t"}))
	require.NoError(t, store.Clear())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o600))

	store := NewFileStore(path)
	_, err := store.Load()
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)

	require.NoError(t, store.Save(&Credentials{AccessToken: "t", Email: "e"}))

	creds, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "t", creds.AccessToken)

	// Load returns a copy, not the stored record.
	creds.AccessToken = "mutated"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "t", again.AccessToken)

	require.NoError(t, store.Clear())
	creds, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}
