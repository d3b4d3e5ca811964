// Package model defines the movie record and the errors shared across packages
package model

import "errors"

// Standard errors returned by catalog operations
var (
	// ErrInvalidSelection is returned when a 1-based index is not in [1, len]
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrEmptyCatalog is returned by operations that need at least one record
	ErrEmptyCatalog = errors.New("no movies in database")
)
