package service

import "errors"

var (
	// ErrConflict means a signup hit an already-used email or username
	ErrConflict = errors.New("user with that email or username already exists")
	// ErrAuthFailed is returned for any bad login credentials. It is kept
	// generic so responses do not reveal whether the username exists.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrUnauthenticated means the request carried no valid token
	ErrUnauthenticated = errors.New("invalid or missing token")
	// ErrForbidden means the authenticated user lacks role or ownership
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the referenced order does not exist
	ErrNotFound = errors.New("order not found")
)
