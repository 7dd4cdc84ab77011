package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/users"
	"github.com/dmitrijs2005/technotes/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const (
	MsgAllFieldsRequired      = "All fields are required"
	MsgAllButPasswordRequired = "All fields except password are required"
	MsgNoUsersFound           = "No users found"
	MsgUserExists             = "User already exist"
	MsgUserNotFound           = "User not found"
	MsgDuplicateUsername      = "Duplicate username"
	MsgUserDeleteUnsupported  = "User deletion is not supported"
)

// CreateUserInput is the body of a create-user request.
type CreateUserInput struct {
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,emailaddr"`
	Password string   `json:"password" validate:"required,password"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,required"`
}

// UpdateUserInput is the body of an update-user request. Password is
// optional; Active must be present.
type UpdateUserInput struct {
	ID       string   `json:"id" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,emailaddr"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,required"`
	Active   *bool    `json:"active" validate:"required"`
	Password string   `json:"password" validate:"omitempty,password"`
}

type UserService struct {
	repo      users.Repository
	validator *validation.Validator
	hashCost  int
}

func NewUserService(repo users.Repository, v *validation.Validator) *UserService {
	return &UserService{repo: repo, validator: v, hashCost: bcrypt.DefaultCost}
}

// List returns every user without password hashes. An empty store is
// reported as common.ErrorNotFound.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(list) == 0 {
		return nil, common.NewError(common.ErrorNotFound, MsgNoUsersFound)
	}
	return list, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := s.validator.Struct(&in, MsgAllFieldsRequired); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, common.NewError(common.ErrorAlreadyExists, MsgUserExists)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Roles:    in.Roles,
		Active:   true,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewError(common.ErrorAlreadyExists, MsgUserExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if err := s.validator.Struct(&in, MsgAllButPasswordRequired); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorNotFound, MsgUserNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	dup, err := s.repo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil && dup.ID != user.ID:
		return nil, common.NewError(common.ErrorAlreadyExists, MsgDuplicateUsername)
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("check username: %w", err)
	}

	user.Username = in.Username
	user.Email = in.Email
	user.Roles = in.Roles
	user.Active = *in.Active

	if in.Password != "" {
		hash, err := s.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.NewError(common.ErrorAlreadyExists, MsgDuplicateUsername)
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.NewError(common.ErrorNotFound, MsgUserNotFound)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return updated, nil
}

// Delete is deliberately unavailable: it touches nothing and always returns
// common.ErrorNotSupported.
func (s *UserService) Delete(_ context.Context, _ string) error {
	return common.NewError(common.ErrorNotSupported, MsgUserDeleteUnsupported)
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
