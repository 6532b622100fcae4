package service

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
)

// ServiceInterface defines business logic operations for Author domain
type ServiceInterface interface {
	// Create validates the request and persists a new author
	// Errors: model.ErrValidation, model.ErrInvalidDate
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)

	// GetByID retrieves author by UUID
	// Errors: model.ErrAuthorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List retrieves paginated list of authors with filtering
	// Business rules:
	// - Default limit: 20, max: 100
	// - Default sort: family_name ASC
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update applies a partial update guarded by the client's version
	// Errors: model.ErrAuthorNotFound, model.ErrVersionMismatch, model.ErrValidation
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)

	// Delete removes author
	// Errors: model.ErrAuthorNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
