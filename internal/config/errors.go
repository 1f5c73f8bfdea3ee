package config

import (
	"errors"
	"fmt"

	"github.com/dshills/notifycenter/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting holds an unacceptable value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidDuration indicates a duration setting could not be parsed.
	ErrInvalidDuration = errors.New("invalid duration")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError reports an invalid setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "logging.level".
	Path string
	// Value is the rejected value.
	Value any
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
