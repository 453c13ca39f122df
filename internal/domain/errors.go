package domain

import "errors"

var (
	// ErrCatalogUnavailable means there is no catalog data to recommend from.
	ErrCatalogUnavailable = errors.New("jewelry database not available")

	ErrNoCatalogFile  = errors.New("catalog file not found")
	ErrMissingColumns = errors.New("catalog is missing required columns")
	ErrStoreDisabled  = errors.New("item store is not configured")
)
