package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrParse         = errors.New("parse error")
	ErrFileRead      = errors.New("file read error")
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoStore       = errors.New("no store configured")
)
