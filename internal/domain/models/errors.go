package models

import "errors"

// Provider failure taxonomy. Adapters classify raw transport errors into
// these sentinels; everything else stays a wrapped opaque error and is
// treated as unavailable.
var (
	// ErrRateLimited means the provider rejected the call for quota
	// reasons. This is the only error that triggers the fallback source.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound means the provider answered but has no data for the
	// requested symbol or period.
	ErrNotFound = errors.New("no data")
)
