package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/users"
	"github.com/dmitrijs2005/technotes/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const MsgUnauthorized = "Unauthorized"

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service exchanges credentials for access tokens.
type Service struct {
	users            users.Repository
	validator        *validation.Validator
	secretKey        []byte
	validityDuration time.Duration
}

func NewService(repo users.Repository, v *validation.Validator, secretKey string, validity time.Duration) *Service {
	return &Service{users: repo, validator: v, secretKey: []byte(secretKey), validityDuration: validity}
}

// Login checks the credentials of an active user and returns a signed
// access token. Unknown users, wrong passwords and inactive accounts are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := s.validator.Struct(&in, "All fields are required"); err != nil {
		return "", err
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.NewError(common.ErrorUnauthorized, MsgUnauthorized)
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !user.Active {
		return "", common.NewError(common.ErrorUnauthorized, MsgUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", common.NewError(common.ErrorUnauthorized, MsgUnauthorized)
	}

	token, err := GenerateToken(Claims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles,
	}, s.secretKey, s.validityDuration)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify returns the claims of a valid access token.
func (s *Service) Verify(token string) (*Claims, error) {
	return ParseToken(token, s.secretKey)
}
