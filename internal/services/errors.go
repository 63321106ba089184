// internal/services/errors.go
package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Anything
// else surfaces as a 500.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrForbidden = errors.New("forbidden")
)
