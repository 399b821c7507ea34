package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidSeason is returned when a season label is not one of the
	// recognized values (spring, summer, fall, winter, any).
	ErrInvalidSeason = errors.New("invalid season")

	// ErrInvalidSourceType is returned when a memory source type is not valid.
	ErrInvalidSourceType = errors.New("invalid memory source type")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
