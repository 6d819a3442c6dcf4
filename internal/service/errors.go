package service

import "errors"

var (
	// ErrNotLoggedIn is returned when an operation needs an endpoint and a
	// token but one of them is missing.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidSecretPath is returned when saving to an empty path or to a
	// directory path.
	ErrInvalidSecretPath = errors.New("invalid secret path")
)
