package movie

import "errors"

// Common errors
var (
	// ErrNotFound indicates the requested movie exists in neither provider
	ErrNotFound = errors.New("movie details not found")
	// ErrInvalidPrice indicates a provider returned a price that does not parse as a decimal
	ErrInvalidPrice = errors.New("invalid price format")
	// ErrInvalidMovieID indicates a composite movie id with an unknown provider prefix
	ErrInvalidMovieID = errors.New("invalid movie id format")
)
