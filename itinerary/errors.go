package itinerary

import "errors"

var (
	// ErrInvalidRange flags a trip whose dates or budget fail validation.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnauthorized flags an operation on a trip the caller does not own.
	ErrUnauthorized = errors.New("unauthorized")
)
