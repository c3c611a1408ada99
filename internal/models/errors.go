package models

import "errors"

// Sentinel errors shared across services and handlers. Handlers match on
// these with errors.Is to pick the response status.
var (
	ErrDuplicateIdentity  = errors.New("username or email already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotFound           = errors.New("not found")
)
