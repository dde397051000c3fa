package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarama/equipviz/internal/pkg/models"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	// Nothing saved yet.
	state, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, state)

	want := &State{
		Tokens:  &models.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		Profile: &models.UserProfile{ID: "user-1", Email: "mira@example.com", Name: "Jane"},
	}
	require.NoError(t, storage.Save(want))

	state, err = storage.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, want.Tokens, state.Tokens)
	assert.Equal(t, want.Profile, state.Profile)

	require.NoError(t, storage.Clear())
	state, err = storage.Load()
	require.NoError(t, err)
	assert.Nil(t, state)

	// Clearing twice is fine.
	assert.NoError(t, storage.Clear())
}

func TestSessionLifecycle(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(&State{
		Tokens:  &models.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		Profile: &models.UserProfile{ID: "user-1", Email: "mira@example.com"},
	}))

	sess := NewSession(storage)
	require.NoError(t, sess.Init())

	assert.True(t, sess.Authenticated())
	assert.Equal(t, "access-token", sess.AccessToken())
	assert.Equal(t, "refresh-token", sess.RefreshToken())
	require.NotNil(t, sess.Profile())
	assert.Equal(t, "mira@example.com", sess.Profile().Email)

	require.NoError(t, sess.Clear())
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.AccessToken())

	// Storage cleared too.
	state, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSessionUpdatePersists(t *testing.T) {
	storage := NewMemoryStorage()
	sess := NewSession(storage)
	require.NoError(t, sess.Init())
	assert.False(t, sess.Authenticated())

	require.NoError(t, sess.Update(
		&models.TokenPair{Access: "a1", Refresh: "r1"},
		&models.UserProfile{ID: "user-1"},
	))
	assert.True(t, sess.Authenticated())

	// A second session over the same storage sees the update.
	other := NewSession(storage)
	require.NoError(t, other.Init())
	assert.Equal(t, "a1", other.AccessToken())
}

func TestSessionCloseKeepsStorage(t *testing.T) {
	storage := NewMemoryStorage()
	sess := NewSession(storage)
	require.NoError(t, sess.Init())
	require.NoError(t, sess.Update(&models.TokenPair{Access: "a1", Refresh: "r1"}, nil))

	require.NoError(t, sess.Close())
	assert.False(t, sess.Authenticated())

	state, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "a1", state.Tokens.Access)
}
