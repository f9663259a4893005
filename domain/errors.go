package domain

import "errors"

var (
	// ErrProfileNotFound is fatal to a recommendation run: without a skin
	// profile there is nothing to score against.
	ErrProfileNotFound = errors.New("skin profile not found")

	// ErrCatalogUnavailable aborts a run; the caller gets an empty list and
	// nothing is persisted.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	ErrPreferencesNotFound    = errors.New("preferences not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrCatalogItemNotFound    = errors.New("catalog item not found")
)
