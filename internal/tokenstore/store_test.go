package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolrent", "credentials.yaml")
	s, err := New(path)
	require.NoError(t, err)
	return s, path
}

func TestStore_Lifecycle(t *testing.T) {
	t.Run("Empty on first use", func(t *testing.T) {
		s, _ := newStore(t)
		assert.Equal(t, "", s.Token())
		assert.False(t, s.HasToken())
	})

	t.Run("Survives restart", func(t *testing.T) {
		s, path := newStore(t)
		require.NoError(t, s.Set("T1"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		reopened, err := New(path)
		require.NoError(t, err)
		assert.Equal(t, "T1", reopened.Token())
	})

	t.Run("Clear removes file", func(t *testing.T) {
		s, path := newStore(t)
		require.NoError(t, s.Set("T1"))
		require.NoError(t, s.Clear())

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		reopened, err := New(path)
		require.NoError(t, err)
		assert.False(t, reopened.HasToken())
	})

	t.Run("Last write wins", func(t *testing.T) {
		s, path := newStore(t)
		require.NoError(t, s.Set("T1"))
		require.NoError(t, s.Set("T2"))

		reopened, err := New(path)
		require.NoError(t, err)
		assert.Equal(t, "T2", reopened.Token())
	})

	t.Run("Clear without credential", func(t *testing.T) {
		s, _ := newStore(t)
		assert.NoError(t, s.Clear())
	})
}

func TestStore_Claims(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, _ := newStore(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserID: "u1",
			Email:  "admin@example.com",
			Role:   "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("server-secret"))
		require.NoError(t, err)
		require.NoError(t, s.Set(signed))

		claims, err := s.Claims()
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("No credential", func(t *testing.T) {
		s, _ := newStore(t)
		_, err := s.Claims()
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("Opaque credential", func(t *testing.T) {
		s, _ := newStore(t)
		require.NoError(t, s.Set("not-a-jwt"))
		_, err := s.Claims()
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, "not-a-jwt", s.Token())
	})
}
