package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrShelfNotFound      = errors.New("shelf not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrForbidden          = errors.New("you do not have permission to modify this resource")
	ErrLikeConflict       = errors.New("like was changed concurrently, please retry")
	ErrNameInUse          = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("please enter a correct username and password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrRateOutOfRange     = errors.New("rate out of range")
)

// ValidationError carries per-field messages back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
