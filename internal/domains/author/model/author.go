package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Constants for validation
const (
	MaxNameLength = 100

	// URLPrefix is the catalog path every author detail page lives under
	URLPrefix = "/catalog/author/"
)

// Author represents the core Author entity
// Name, URL, Lifespan and the formatted dates are derived on demand and never stored
type Author struct {
	ID uuid.UUID `json:"id" db:"id"`

	FirstName  string `json:"first_name" db:"first_name"`   // Required, max 100 chars
	FamilyName string `json:"family_name" db:"family_name"` // Required, max 100 chars

	DateOfBirth *time.Time `json:"date_of_birth" db:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death" db:"date_of_death"`

	// Versioning for Optimistic Locking
	Version int `json:"version" db:"version"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks the write-time constraints of the entity
func (a Author) Validate() error {
	err := validation.ValidateStruct(&a,
		validation.Field(&a.FirstName,
			validation.By(notBlank("first name")),
			validation.RuneLength(0, MaxNameLength).Error(fmt.Sprintf("first name must not exceed %d characters", MaxNameLength)),
		),
		validation.Field(&a.FamilyName,
			validation.By(notBlank("family name")),
			validation.RuneLength(0, MaxNameLength).Error(fmt.Sprintf("family name must not exceed %d characters", MaxNameLength)),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// notBlank rejects strings that are empty after trimming whitespace
func notBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", field+" is required")
		}
		return nil
	}
}

// Name is the "Family, First" display name
func (a Author) Name() string {
	return ComputeName(a.FirstName, a.FamilyName)
}

// URL is the catalog path of the author detail page
func (a Author) URL() string {
	return ComputeURL(a.ID.String())
}

// Lifespan renders the birth/death range with the given formatter
func (a Author) Lifespan(f DateFormatter) string {
	return ComputeLifespan(f, a.DateOfBirth, a.DateOfDeath)
}

func (a Author) DateOfBirthFormatted() string {
	return ComputeFormattedDate(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return ComputeFormattedDate(a.DateOfDeath)
}

// ComputeName returns "{family}, {first}" when both parts are present.
// A missing part yields the empty string instead of a half-built name.
func ComputeName(firstName, familyName string) string {
	if firstName == "" || familyName == "" {
		return ""
	}
	return familyName + ", " + firstName
}

// ComputeURL returns the author detail path; id is used as-is
func ComputeURL(id string) string {
	return URLPrefix + id
}

// ComputeLifespan renders "<birth> - <death>" or "<birth> - present".
// A death date without a birth date renders as "".
func ComputeLifespan(f DateFormatter, birth, death *time.Time) string {
	if f == nil {
		f = DefaultDateFormatter
	}
	switch {
	case birth != nil && death != nil:
		return f.Format(*birth, DateMedium) + " - " + f.Format(*death, DateMedium)
	case birth != nil:
		return f.Format(*birth, DateMedium) + " - present"
	default:
		return ""
	}
}

// ComputeFormattedDate returns yyyy-MM-dd, or "" when the date is absent
func ComputeFormattedDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return DefaultDateFormatter.Format(*date, DateISO)
}
