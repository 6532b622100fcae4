package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/repository"
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	newAuthor, err := req.ToEntity()
	if err != nil {
		return nil, err
	}
	if err := newAuthor.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, newAuthor)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	log.Info().
		Str("author_id", created.ID.String()).
		Str("name", created.Name()).
		Msg("author created")

	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	// Repository handles cache + DB
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	return s.repo.GetAll(ctx, filter)
}

// normalizeFilter clamps pagination and whitelists sort parameters
func normalizeFilter(filter model.AuthorFilter) (model.AuthorFilter, error) {
	filter = filter.ClampPage()

	filter.Search = strings.TrimSpace(filter.Search)
	if r := []rune(filter.Search); len(r) > model.MaxNameLength {
		filter.Search = string(r[:model.MaxNameLength])
	}

	if filter.SortBy == "" {
		filter.SortBy = "family_name"
	}
	if !model.SortColumns[filter.SortBy] {
		return filter, fmt.Errorf("%w: %s", model.ErrInvalidSort, filter.SortBy)
	}

	filter.Order = strings.ToUpper(filter.Order)
	if filter.Order != "ASC" && filter.Order != "DESC" {
		filter.Order = "ASC"
	}

	return filter, nil
}

// Update implements ServiceInterface.Update with conflict detection
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The client must send the version it read; a mismatch means someone else wrote first
	if req.Version != current.Version {
		return nil, model.ErrVersionMismatch
	}

	updated := *current
	if err := req.ApplyToEntity(&updated); err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repo.Update(ctx, &updated, current.Version)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("author_id", result.ID.String()).
		Int("version", result.Version).
		Msg("author updated")

	return result, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrAuthorNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("author_id", id.String()).Msg("author deleted")
	return nil
}
