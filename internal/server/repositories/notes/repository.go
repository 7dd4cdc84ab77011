// Package notes provides storage access for note records. Implementations
// report a missing or malformed id as common.ErrorNotFound and a title
// collision as common.ErrorAlreadyExists.
package notes

import (
	"context"

	"github.com/dmitrijs2005/technotes/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	GetByTitle(ctx context.Context, title string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}
