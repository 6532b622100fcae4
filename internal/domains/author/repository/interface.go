package repository

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
)

// RepositoryInterface defines data access for Author.
// Write methods enforce the entity constraints and reject violations with model.ErrValidation.
type RepositoryInterface interface {
	// Create inserts a new author
	// Returns: created author with ID, timestamps, version=0
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// GetByID retrieves author by UUID
	// Returns: model.ErrAuthorNotFound if not exists
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// GetAll retrieves paginated list of authors
	// Returns: authors slice + total count for pagination
	GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update updates an existing author with optimistic locking
	// Errors: model.ErrVersionMismatch if conflict, model.ErrAuthorNotFound if not exists
	Update(ctx context.Context, author *model.Author, currentVersion int) (*model.Author, error)

	// Delete removes author by ID
	// Returns: model.ErrAuthorNotFound if not exists
	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
