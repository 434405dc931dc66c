package models

import "errors"

// Domain error sentinels. Services wrap these with context via fmt.Errorf
// and %w; handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrExternal   = errors.New("external service failed")
)
