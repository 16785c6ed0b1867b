package domain

import (
	"errors"
	"strings"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageValidationError      = "validation error"
	MessageInternalError        = "internal server error"

	ErrInvalidID      = errors.New("id must be a positive integer")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrStoreFailure   = errors.New("store failure")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

type (
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	// ValidationError carries one entry per rejected request field.
	ValidationError struct {
		Fields []FieldError `json:"errors"`
	}
)

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
