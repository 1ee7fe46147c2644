// Package common holds the sentinel errors shared by the storage, service and
// HTTP layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// Storage errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")

	// Request errors.
	ErrValidation = errors.New("validation error")

	// Auth errors. ErrInvalidToken never leaves the token layer; the HTTP
	// surface reports every token or subject problem as ErrUnauthenticated.
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
