package models

import "errors"

var (
	// ErrNotFound signals that an id or selector matched no entity.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals malformed caller input (bad page window,
	// unparsable filter value).
	ErrValidation = errors.New("validation error")
	// ErrConflict signals a concurrent modification detected at write time.
	ErrConflict = errors.New("conflict")
)
