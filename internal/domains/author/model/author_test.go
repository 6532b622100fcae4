package model

import (
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeName(t *testing.T) {
	tests := []struct {
		first, family, want string
	}{
		{"Jane", "Austen", "Austen, Jane"},
		{"", "Austen", ""},
		{"Jane", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeName(tt.first, tt.family), "first=%q family=%q", tt.first, tt.family)
	}
}

func TestComputeURL(t *testing.T) {
	assert.Equal(t, "/catalog/author/abc123", ComputeURL("abc123"))
	assert.Equal(t, "/catalog/author/", ComputeURL(""))
}

func TestComputeLifespan(t *testing.T) {
	tests := []struct {
		name         string
		birth, death *time.Time
		want         string
	}{
		{"both dates", date(1775, time.December, 16), date(1817, time.July, 18), "Dec 16, 1775 - Jul 18, 1817"},
		{"living author", date(1947, time.September, 21), nil, "Sep 21, 1947 - present"},
		{"no dates", nil, nil, ""},
		{"death without birth", nil, date(1817, time.July, 18), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeLifespan(nil, tt.birth, tt.death))
		})
	}
}

type upperFormatter struct{}

func (upperFormatter) Format(t time.Time, _ DateStyle) string {
	return strings.ToUpper(t.Format("Jan 2006"))
}

func TestComputeLifespan_CustomFormatter(t *testing.T) {
	got := ComputeLifespan(upperFormatter{}, date(1775, time.December, 16), nil)
	assert.Equal(t, "DEC 1775 - present", got)
}

func TestComputeFormattedDate(t *testing.T) {
	assert.Equal(t, "", ComputeFormattedDate(nil))
	assert.Equal(t, "2024-03-05", ComputeFormattedDate(date(2024, time.March, 5)))
	assert.Equal(t, "0800-01-09", ComputeFormattedDate(date(800, time.January, 9)))
}

func TestComputeLifespan_YearBelowOneThousand(t *testing.T) {
	assert.Equal(t, "Jan 9, 800 - present", ComputeLifespan(nil, date(800, time.January, 9), nil))
	assert.Equal(t, "Jan 1, 673 - May 26, 735", ComputeLifespan(nil, date(673, time.January, 1), date(735, time.May, 26)))
}

func TestLayoutFormatter_Styles(t *testing.T) {
	d := *date(1775, time.December, 16)

	assert.Equal(t, "12/16/1775", DefaultDateFormatter.Format(d, DateShort))
	assert.Equal(t, "Dec 16, 1775", DefaultDateFormatter.Format(d, DateMedium))
	assert.Equal(t, "December 16, 1775", DefaultDateFormatter.Format(d, DateLong))
	assert.Equal(t, "1775-12-16", DefaultDateFormatter.Format(d, DateISO))
	assert.Equal(t, "1775-12-16", LayoutFormatter{}.Format(d, DateMedium), "unknown style falls back to ISO")

	early := *date(735, time.May, 26)
	assert.Equal(t, "5/26/735", DefaultDateFormatter.Format(early, DateShort))
	assert.Equal(t, "May 26, 735", DefaultDateFormatter.Format(early, DateMedium))
	assert.Equal(t, "May 26, 735", DefaultDateFormatter.Format(early, DateLong))
	assert.Equal(t, "0735-05-26", DefaultDateFormatter.Format(early, DateISO))
}

func TestAuthor_DerivedFields(t *testing.T) {
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	a := Author{
		ID:          id,
		FirstName:   "Jane",
		FamilyName:  "Austen",
		DateOfBirth: date(1775, time.December, 16),
		DateOfDeath: date(1817, time.July, 18),
	}

	assert.Equal(t, "Austen, Jane", a.Name())
	assert.Equal(t, "/catalog/author/"+id.String(), a.URL())
	assert.Equal(t, "Dec 16, 1775 - Jul 18, 1817", a.Lifespan(nil))
	assert.Equal(t, "1775-12-16", a.DateOfBirthFormatted())
	assert.Equal(t, "1817-07-18", a.DateOfDeathFormatted())

	resp := a.ToResponse(nil)
	assert.Equal(t, a.Name(), resp.Name)
	assert.Equal(t, a.URL(), resp.URL)
	assert.Equal(t, a.Lifespan(nil), resp.Lifespan)
}

func TestAuthor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		author  Author
		wantErr bool
		field   string
	}{
		{"valid", Author{FirstName: "Jane", FamilyName: "Austen"}, false, ""},
		{"missing first name", Author{FamilyName: "Austen"}, true, "first_name"},
		{"blank family name", Author{FirstName: "Jane", FamilyName: " \t"}, true, "family_name"},
		{"exactly max length", Author{FirstName: strings.Repeat("é", MaxNameLength), FamilyName: "Austen"}, false, ""},
		{"too long", Author{FirstName: "Jane", FamilyName: strings.Repeat("a", MaxNameLength+1)}, true, "family_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.author.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)
			var fieldErrs validation.Errors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, fieldErrs, tt.field)
		})
	}
}

func TestCreateAuthorRequest_ToEntity(t *testing.T) {
	req := CreateAuthorRequest{
		FirstName:   "  Jane ",
		FamilyName:  "Austen",
		DateOfBirth: "1775-12-16",
	}
	require.NoError(t, req.Validate())

	a, err := req.ToEntity()

	require.NoError(t, err)
	assert.Equal(t, "Jane", a.FirstName)
	assert.True(t, a.DateOfBirth.Equal(*date(1775, time.December, 16)))
	assert.Nil(t, a.DateOfDeath)
	assert.Equal(t, 0, a.Version)
}

func TestCreateAuthorRequest_Validate(t *testing.T) {
	err := CreateAuthorRequest{FirstName: "Jane", FamilyName: "Austen", DateOfDeath: "July 18 1817"}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	var fieldErrs validation.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "date_of_death")
}

func TestCreateAuthorRequest_Validate_BlankNames(t *testing.T) {
	err := CreateAuthorRequest{FirstName: "   ", FamilyName: "\t"}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	var fieldErrs validation.Errors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "first_name")
	require.Contains(t, fieldErrs, "family_name")
	assert.Equal(t, "first name is required", fieldErrs["first_name"].Error())
	assert.Equal(t, "family name is required", fieldErrs["family_name"].Error())

	padded := strings.Repeat("a", MaxNameLength)
	assert.NoError(t, CreateAuthorRequest{FirstName: " " + padded + " ", FamilyName: "Austen"}.Validate(),
		"surrounding whitespace does not count toward the limit")
}

func TestUpdateAuthorRequest_ApplyToEntity(t *testing.T) {
	s := func(v string) *string { return &v }
	a := Author{FirstName: "Jane", FamilyName: "Austin", DateOfBirth: date(1775, time.December, 16)}

	err := UpdateAuthorRequest{
		FamilyName:  s(" Austen "),
		DateOfBirth: s(""),
		DateOfDeath: s("1817-07-18"),
	}.ApplyToEntity(&a)

	require.NoError(t, err)
	assert.Equal(t, "Jane", a.FirstName)
	assert.Equal(t, "Austen", a.FamilyName)
	assert.Nil(t, a.DateOfBirth)
	require.NotNil(t, a.DateOfDeath)
	assert.Equal(t, "1817-07-18", ComputeFormattedDate(a.DateOfDeath))

	err = UpdateAuthorRequest{DateOfBirth: s("1817/07/18")}.ApplyToEntity(&a)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpdateAuthorRequest_Validate(t *testing.T) {
	s := func(v string) *string { return &v }

	assert.NoError(t, UpdateAuthorRequest{Version: 3}.Validate())
	assert.NoError(t, UpdateAuthorRequest{DateOfBirth: s("")}.Validate(), "empty date clears")
	assert.ErrorIs(t, UpdateAuthorRequest{FirstName: s("")}.Validate(), ErrValidation)
	assert.ErrorIs(t, UpdateAuthorRequest{Version: -1}.Validate(), ErrValidation)

	blank := s("  ")
	err := UpdateAuthorRequest{FamilyName: blank}.Validate()
	require.ErrorIs(t, err, ErrValidation)
	var fieldErrs validation.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "family_name")
	assert.Equal(t, "  ", *blank, "caller's value is not modified")
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		limit, offset int
		total         int64
		want          PaginationMeta
	}{
		{20, 0, 0, PaginationMeta{CurrentPage: 1, PageSize: 20, TotalItems: 0, TotalPages: 0}},
		{20, 0, 20, PaginationMeta{CurrentPage: 1, PageSize: 20, TotalItems: 20, TotalPages: 1}},
		{10, 20, 45, PaginationMeta{CurrentPage: 3, PageSize: 10, TotalItems: 45, TotalPages: 5}},
		{0, 0, 5, PaginationMeta{CurrentPage: 1, PageSize: DefaultLimit, TotalItems: 5, TotalPages: 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewPaginationMeta(tt.limit, tt.offset, tt.total))
	}
}

func TestAuthorFilter_ClampPage(t *testing.T) {
	assert.Equal(t, AuthorFilter{Limit: DefaultLimit}, AuthorFilter{}.ClampPage())
	assert.Equal(t, AuthorFilter{Limit: MaxLimit}, AuthorFilter{Limit: 1000, Offset: -5}.ClampPage())
	assert.Equal(t, AuthorFilter{Limit: 5, Offset: 10}, AuthorFilter{Limit: 5, Offset: 10}.ClampPage())
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrAuthorNotFound, 404, "AUTHOR_NOT_FOUND"},
		{ErrVersionMismatch, 409, "VERSION_CONFLICT"},
		{Author{}.Validate(), 400, "VALIDATION_ERROR"},
		{ErrInvalidSort, 400, "INVALID_SORT"},
		{assert.AnError, 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, ToHTTPStatus(tt.err), tt.err.Error())
		assert.Equal(t, tt.code, ToErrorCode(tt.err), tt.err.Error())
	}
}
