package entity

import "errors"

// Domain errors
var (
	// Entry errors
	ErrEntryNotFound = errors.New("timesheet entry not found")
	ErrInvalidEntry  = errors.New("invalid timesheet entry")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is not active")
	ErrUserExists         = errors.New("username or email already exists")
	ErrForbidden          = errors.New("operation not permitted for role")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Organization errors
	ErrOrgNotFound = errors.New("organization not found")
	ErrOrgExists   = errors.New("organization already exists")

	// Chat session errors
	ErrChatSessionNotFound = errors.New("chat session not found")

	// File errors
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidFile       = errors.New("invalid file")
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidExtension  = errors.New("invalid file extension")
	ErrTotalSizeTooLarge = errors.New("total file size too large")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
