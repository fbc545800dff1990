// Package repository defines the record store and its errors.
package repository

// Option applies a configuration option to the RecordStore.
type Option func(*RecordStore)

// WithInitialCapacity pre-sizes the store for an expected class size.
func WithInitialCapacity(n int) Option {
	return func(s *RecordStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
