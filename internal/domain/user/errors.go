package user

import "errors"

var (
	// ErrNotFound is returned by the store when no user has the requested id.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned by the store when the email unique index rejects an insert.
	ErrEmailTaken = errors.New("email already exists")
)
