package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsersRepo struct {
	user *models.User
	err  error
}

func (f *fakeUsersRepo) List(context.Context) ([]models.User, error) { return nil, nil }
func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	return nil, common.ErrorNotFound
}
func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	return u, nil
}
func (f *fakeUsersRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	return u, nil
}
func (f *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || f.user.Username != username {
		return nil, common.ErrorNotFound
	}
	u := *f.user
	return &u, nil
}

func newLoginFixture(t *testing.T, active bool) (*Service, *fakeUsersRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("abcde1!"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUsersRepo{user: &models.User{
		ID:       "u1",
		Username: "john",
		Password: string(hash),
		Roles:    []string{"Manager"},
		Active:   active,
	}}
	return NewService(repo, validation.New(), "secret", time.Minute), repo
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues verifiable token", func(t *testing.T) {
		s, _ := newLoginFixture(t, true)

		token, err := s.Login(ctx, LoginInput{Username: "john", Password: "abcde1!"})
		require.NoError(t, err)

		claims, err := s.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, []string{"Manager"}, claims.Roles)
	})

	tests := []struct {
		name   string
		active bool
		in     LoginInput
		kind   error
	}{
		{"missing password", true, LoginInput{Username: "john"}, common.ErrorValidation},
		{"unknown user", true, LoginInput{Username: "jane", Password: "abcde1!"}, common.ErrorUnauthorized},
		{"wrong password", true, LoginInput{Username: "john", Password: "wrong1!"}, common.ErrorUnauthorized},
		{"inactive user", false, LoginInput{Username: "john", Password: "abcde1!"}, common.ErrorUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newLoginFixture(t, tt.active)
			_, err := s.Login(ctx, tt.in)
			require.ErrorIs(t, err, tt.kind)
		})
	}

	t.Run("store failure is internal", func(t *testing.T) {
		s, repo := newLoginFixture(t, true)
		repo.err = errors.New("db down")

		_, err := s.Login(ctx, LoginInput{Username: "john", Password: "abcde1!"})
		require.ErrorContains(t, err, "db down")
		assert.NotErrorIs(t, err, common.ErrorUnauthorized)
	})
}
