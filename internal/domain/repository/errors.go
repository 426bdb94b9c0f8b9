package repository

import "errors"

// Provider failure classes. Adapters wrap these so callers can classify
// failures without knowing the provider.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrRateLimited    = errors.New("rate limited by provider")
	ErrNoData         = errors.New("no data returned by provider")
)
