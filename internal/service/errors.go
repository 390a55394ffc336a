package service

import "errors"

// Sentinel error classes. Services wrap these so handlers can map any
// failure to an HTTP status without knowing which service produced it.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
