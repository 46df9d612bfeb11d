package domain

import "errors"

var (
	// ErrProductNotFound is returned when no catalog product matches a lookup
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrProfileNotFound is returned when a user id has no stored profile
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoComparableProducts is returned when a comparison resolves fewer than two products
	ErrNoComparableProducts = errors.New("not enough products to compare")

	// ErrCatalogLoad is returned when the catalog document cannot be read or fails validation
	ErrCatalogLoad = errors.New("catalog load failed")
)
