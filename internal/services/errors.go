package services

import "errors"

// Validation errors returned before anything reaches the database.
var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid credentials")
	ErrInvalidName     = errors.New("invalid task name")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("priority out of range")
)
