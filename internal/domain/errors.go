package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSupplier = errors.New("Unknown provider mapping")
	ErrMissingHotelID  = errors.New("Hotel ID is required and cannot be None.")
	ErrInvalidHotelID  = errors.New("hotel id contains invalid characters")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)

// ParseError reports malformed XML or JSON in a supplier payload, an inner
// SOAP document or a static reference file.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError reports a raw-store read or write failure.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsClientError reports whether err is caused by the caller's input rather
// than by the service or an upstream.
func IsClientError(err error) bool {
	var pe *ParseError
	return errors.Is(err, ErrUnknownSupplier) ||
		errors.Is(err, ErrMissingHotelID) ||
		errors.Is(err, ErrInvalidHotelID) ||
		errors.As(err, &pe)
}
