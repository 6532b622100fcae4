package model

import (
	"errors"
	"net/http"
)

var (
	// Validation Errors
	ErrValidation  = errors.New("author validation failed")
	ErrInvalidDate = errors.New("date must be formatted as yyyy-MM-dd")

	// Business Rule Errors
	ErrAuthorNotFound  = errors.New("author not found")
	ErrVersionMismatch = errors.New("author version mismatch - conflict detected")
	ErrInvalidSort     = errors.New("invalid sort column")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrVersionMismatch):
		return "VERSION_CONFLICT"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidDate):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidSort):
		return "INVALID_SORT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrVersionMismatch):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidSort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
