// Package services defines the business logic for authentication, recipes,
// comments, and favorites. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Validation errors (handlers map these to 400).
var (
	// ErrMissingFields is returned when a required string field is absent
	// or blank after trimming.
	ErrMissingFields = errors.New("required fields are missing")

	// ErrPasswordTooShort is returned when a registration password is
	// shorter than the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials is returned when login email/password do not
	// match a stored account. It deliberately does not say which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateUser is returned when the username or email is already
	// registered (handlers map this to 409).
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrNotOwner is returned when an authenticated user attempts to
	// mutate or delete a resource created by someone else (403).
	ErrNotOwner = errors.New("only the creator may modify this resource")
)

// Resource errors (handlers map these to 404).
var (
	// ErrRecipeNotFound indicates the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrFavoriteNotFound indicates the user has no favorite for the
	// given recipe.
	ErrFavoriteNotFound = errors.New("recipe is not a favorite")
)
