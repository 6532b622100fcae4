package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateAuthorRequest - POST /v1/catalog/author/create
// Dates are yyyy-MM-dd strings; empty means unknown
type CreateAuthorRequest struct {
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	DateOfDeath string `json:"date_of_death,omitempty"`
}

// Validate validates CreateAuthorRequest; names are checked after trimming
func (r CreateAuthorRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.FamilyName = strings.TrimSpace(r.FamilyName)

	err := validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.FamilyName,
			validation.Required.Error("family name is required"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.DateOfBirth, validation.Date(time.DateOnly).Error(ErrInvalidDate.Error())),
		validation.Field(&r.DateOfDeath, validation.Date(time.DateOnly).Error(ErrInvalidDate.Error())),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// ToEntity converts CreateAuthorRequest to Author entity
func (r CreateAuthorRequest) ToEntity() (*Author, error) {
	birth, err := parseOptionalDate(r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	death, err := parseOptionalDate(r.DateOfDeath)
	if err != nil {
		return nil, err
	}

	return &Author{
		FirstName:   strings.TrimSpace(r.FirstName),
		FamilyName:  strings.TrimSpace(r.FamilyName),
		DateOfBirth: birth,
		DateOfDeath: death,
		Version:     0, // Initial version
	}, nil
}

// UpdateAuthorRequest - PUT /v1/catalog/author/:id
// All fields optional for partial updates (PATCH behavior).
// An empty date string clears the stored date.
type UpdateAuthorRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	FamilyName  *string `json:"family_name,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	DateOfDeath *string `json:"date_of_death,omitempty"`
	Version     int     `json:"version"` // Required for conflict detection
}

// Validate validates UpdateAuthorRequest; names are checked after trimming
func (r UpdateAuthorRequest) Validate() error {
	r.FirstName = trimmed(r.FirstName)
	r.FamilyName = trimmed(r.FamilyName)

	err := validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.NilOrNotEmpty.Error("first name cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.FamilyName,
			validation.NilOrNotEmpty.Error("family name cannot be blank"),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.DateOfBirth, validation.Date(time.DateOnly).Error(ErrInvalidDate.Error())),
		validation.Field(&r.DateOfDeath, validation.Date(time.DateOnly).Error(ErrInvalidDate.Error())),
		validation.Field(&r.Version, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// ApplyToEntity applies UpdateAuthorRequest to existing Author entity
func (r UpdateAuthorRequest) ApplyToEntity(a *Author) error {
	if r.FirstName != nil {
		a.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.FamilyName != nil {
		a.FamilyName = strings.TrimSpace(*r.FamilyName)
	}
	if r.DateOfBirth != nil {
		birth, err := parseOptionalDate(*r.DateOfBirth)
		if err != nil {
			return err
		}
		a.DateOfBirth = birth
	}
	if r.DateOfDeath != nil {
		death, err := parseOptionalDate(*r.DateOfDeath)
		if err != nil {
			return err
		}
		a.DateOfDeath = death
	}
	return nil
}

// trimmed copies s without surrounding whitespace, leaving the caller's value alone
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

// AuthorResponse - stored fields plus derived display values
type AuthorResponse struct {
	ID                   uuid.UUID  `json:"id"`
	FirstName            string     `json:"first_name"`
	FamilyName           string     `json:"family_name"`
	DateOfBirth          *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath          *time.Time `json:"date_of_death,omitempty"`
	Name                 string     `json:"name"`
	URL                  string     `json:"url"`
	Lifespan             string     `json:"lifespan"`
	DateOfBirthFormatted string     `json:"date_of_birth_formatted"`
	DateOfDeathFormatted string     `json:"date_of_death_formatted"`
	Version              int        `json:"version"` // For client-side conflict detection
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a Author) ToResponse(f DateFormatter) *AuthorResponse {
	return &AuthorResponse{
		ID:                   a.ID,
		FirstName:            a.FirstName,
		FamilyName:           a.FamilyName,
		DateOfBirth:          a.DateOfBirth,
		DateOfDeath:          a.DateOfDeath,
		Name:                 a.Name(),
		URL:                  a.URL(),
		Lifespan:             a.Lifespan(f),
		DateOfBirthFormatted: a.DateOfBirthFormatted(),
		DateOfDeathFormatted: a.DateOfDeathFormatted(),
		Version:              a.Version,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// AuthorListResponse - Paginated list response
type AuthorListResponse struct {
	Data       []AuthorResponse `json:"data"`
	Pagination PaginationMeta   `json:"pagination"`
}

// PaginationMeta - Reusable pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// NewPaginationMeta derives page numbers from limit/offset
func NewPaginationMeta(limit, offset int, total int64) PaginationMeta {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return PaginationMeta{
		CurrentPage: offset/limit + 1,
		PageSize:    limit,
		TotalItems:  total,
		TotalPages:  (int(total) + limit - 1) / limit,
	}
}

// Pagination defaults
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// AuthorFilter - Query parameters for search/filter
type AuthorFilter struct {
	Search string `json:"search" form:"search"`   // Partial name search
	SortBy string `json:"sort_by" form:"sort_by"` // family_name, first_name, date_of_birth, created_at, updated_at
	Order  string `json:"order" form:"order"`     // asc, desc
	Limit  int    `json:"limit" form:"limit"`
	Offset int    `json:"offset" form:"offset"`
}

// ClampPage applies the default and maximum page size and drops negative offsets
func (f AuthorFilter) ClampPage() AuthorFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// SortColumns is the whitelist of columns a list may be ordered by
var SortColumns = map[string]bool{
	"family_name":   true,
	"first_name":    true,
	"date_of_birth": true,
	"created_at":    true,
	"updated_at":    true,
}
