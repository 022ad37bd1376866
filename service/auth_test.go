package service

import (
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	users map[string]*dmn.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*dmn.User)}
}

func (r *memoryUserRepo) Save(user *dmn.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *memoryUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *memoryUserRepo) ByUsername(username string) (*dmn.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

type staticTokenizer struct{}

func (staticTokenizer) Generate(claims map[string]interface{}, exp time.Duration) (string, error) {
	return "token", nil
}

func (staticTokenizer) Decode(token string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func TestAuthService(t *testing.T) {
	repo := newMemoryUserRepo()
	auth, err := NewAuthService(repo, staticTokenizer{}, nopLogger{})
	require.NoError(t, err)

	const password = "horse-staple-battery-correct-17"

	t.Run("register then sign in", func(t *testing.T) {
		require.NoError(t, auth.Register("driver_1", password))

		user, token, err := auth.SignIn("driver_1", password)
		require.NoError(t, err)
		assert.Equal(t, "driver_1", user.Username)
		assert.Equal(t, "token", token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := auth.SignIn("driver_1", "wrong-password")
		assert.Error(t, err)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		_, _, err := auth.SignIn("nobody", password)
		assert.Error(t, err)
	})

	t.Run("weak password fails registration", func(t *testing.T) {
		err := auth.Register("driver_2", "12345")
		assert.ErrorIs(t, err, dmn.ErrWeakPassword)
	})
}
