package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrInvalidCategoryCount = errors.New("category count must be positive")
	ErrDuplicateKey         = errors.New("duplicate record key")
	ErrStoreFinalized       = errors.New("store is finalized")
	ErrNotFinalized         = errors.New("ranks not finalized")
	ErrNotFound             = errors.New("record not found")
	ErrInvalidLimit         = errors.New("invalid leaderboard limit")
)
