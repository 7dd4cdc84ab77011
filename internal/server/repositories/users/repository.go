// Package users provides storage access for user records. Implementations
// report a missing or malformed id as common.ErrorNotFound and a username
// collision as common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/technotes/internal/server/models"
)

type Repository interface {
	// List returns every user without password hashes.
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// Update overwrites every mutable field of the user identified by user.ID.
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
