package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/pkg/cache"
)

// DB is the subset of *pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresRepository implements RepositoryInterface
// Uses pgx for PostgreSQL and the injected cache for reads
type postgresRepository struct {
	db    DB
	cache cache.Cache
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(db DB, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		db:    db,
		cache: cache,
	}
}

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "authors:list:"
	cacheTTL             = 15 * time.Minute
)

// PostgreSQL error codes mapped to domain errors
const (
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
	pgStringTooLong    = "22001"
)

const authorColumns = `id, first_name, family_name, date_of_birth, date_of_death, version, created_at, updated_at`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.FirstName,
		&a.FamilyName,
		&a.DateOfBirth,
		&a.DateOfDeath,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

// Create inserts new author with generated ID and timestamps
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	query := `
        INSERT INTO authors (first_name, family_name, date_of_birth, date_of_death, version)
        VALUES ($1, $2, $3, $4, 0)
        RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.db.QueryRow(ctx, query,
		a.FirstName,
		a.FamilyName,
		a.DateOfBirth,
		a.DateOfDeath,
	), &created)
	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	// Invalidate list cache after creation
	r.invalidateListCache(ctx)

	return &created, nil
}

// GetByID retrieves author by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKey(id)

	var a model.Author
	if cached, err := r.cache.Get(ctx, cacheKey, &a); err == nil && cached {
		return &a, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache read failed")
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	if err := scanAuthor(r.db.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache write failed")
	}

	return &a, nil
}

// cachedPage is the list cache payload
type cachedPage struct {
	Authors []model.Author `json:"authors"`
	Total   int64          `json:"total"`
}

// GetAll retrieves paginated list with filtering and sorting
func (r *postgresRepository) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	cacheKey := listCacheKey(filter)

	var page cachedPage
	if cached, err := r.cache.Get(ctx, cacheKey, &page); err == nil && cached {
		return page.Authors, page.Total, nil
	}

	query, args := buildListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	countQuery, countArgs := buildCountQuery(filter)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, cachedPage{Authors: authors, Total: total}, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author list cache write failed")
	}

	return authors, total, nil
}

// Update updates author with optimistic locking
func (r *postgresRepository) Update(ctx context.Context, a *model.Author, currentVersion int) (*model.Author, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	// WHERE clause includes version check
	query := `
        UPDATE authors
        SET
            first_name = $1,
            family_name = $2,
            date_of_birth = $3,
            date_of_death = $4,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $5 AND version = $6
        RETURNING ` + authorColumns

	var updated model.Author
	err := scanAuthor(r.db.QueryRow(ctx, query,
		a.FirstName,
		a.FamilyName,
		a.DateOfBirth,
		a.DateOfDeath,
		a.ID,
		currentVersion,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the author is gone or someone else bumped the version
			exists, checkErr := r.ExistsByID(ctx, a.ID)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, model.ErrAuthorNotFound
			}
			return nil, model.ErrVersionMismatch
		}
		if mapped := mapPgError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateAuthorCache(ctx, a.ID)
	r.invalidateListCache(ctx)

	return &updated, nil
}

// Delete removes author by ID
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateAuthorCache(ctx, id)
	r.invalidateListCache(ctx)

	return nil
}

// ExistsByID checks if author exists (lightweight query)
func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}

	return exists, nil
}

// buildListQuery builds the page query; filter.SortBy must already be whitelisted
func buildListQuery(filter model.AuthorFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + authorColumns + ` FROM authors WHERE 1=1`)

	args := []any{}
	argPos := 1

	if filter.Search != "" {
		sb.WriteString(fmt.Sprintf(" AND (first_name ILIKE $%d OR family_name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argPos++
	}

	sortColumn := "family_name"
	if model.SortColumns[filter.SortBy] {
		sortColumn = filter.SortBy
	}
	sortOrder := "ASC"
	if strings.EqualFold(filter.Order, "desc") {
		sortOrder = "DESC"
	}

	// id makes paging stable when sort values tie
	sb.WriteString(fmt.Sprintf(" ORDER BY %s %s, id ASC", sortColumn, sortOrder))
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, filter.Limit, filter.Offset)

	return sb.String(), args
}

func buildCountQuery(filter model.AuthorFilter) (string, []any) {
	if filter.Search == "" {
		return `SELECT COUNT(*) FROM authors`, nil
	}
	return `SELECT COUNT(*) FROM authors WHERE (first_name ILIKE $1 OR family_name ILIKE $1)`,
		[]any{"%" + escapeLike(filter.Search) + "%"}
}

// escapeLike stops user input from injecting ILIKE wildcards
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// mapPgError turns constraint violations into domain errors; nil means no mapping
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgCheckViolation, pgNotNullViolation, pgStringTooLong:
		return fmt.Errorf("%w: %s", model.ErrValidation, pgErr.Message)
	default:
		return nil
	}
}

// Cache helper methods

func authorCacheKey(id uuid.UUID) string {
	return authorCacheKeyPrefix + id.String()
}

func listCacheKey(f model.AuthorFilter) string {
	return fmt.Sprintf("%s%s|%s|%s|%d|%d",
		authorListKeyPrefix, strings.ToLower(f.Search), f.SortBy, strings.ToUpper(f.Order), f.Limit, f.Offset)
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, authorCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache invalidation failed")
	}
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, authorListKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("author list cache invalidation failed")
	}
}
