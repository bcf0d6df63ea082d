package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrConfiguration    = errors.New("invalid configuration")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)
