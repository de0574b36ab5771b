package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUser is returned when a username or email is already registered.
	ErrDuplicateUser = errors.New("username or email already exists")
)
