// Package repository defines the record store and its errors.
package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/classrank/classrank/internal/domain/record"
	"github.com/classrank/classrank/pkg/metrics"
)

// In-memory, RWMutex-guarded record store.
//
// Lifecycle: records are appended via Add, ranks are computed once via
// FinalizeRanks, and reads (Lookup, TopN) are served afterwards. The store
// forbids inserts after finalize; callers that need a changed collection
// build a fresh store. No partial insert: a failed Add leaves the store
// exactly as it was.

const defaultInitialCapacity = 64

// RecordStore holds a fixed-arity collection of validated records.
type RecordStore struct {
	mu              sync.RWMutex
	arity           int
	records         []record.Record
	index           map[string]int // lowercased key -> position in records
	finalized       bool
	initialCapacity int
}

// New constructs an empty store with a fixed category count.
func New(categoryCount int, opts ...Option) (*RecordStore, error) {
	if categoryCount <= 0 {
		return nil, ErrInvalidCategoryCount
	}

	s := &RecordStore{
		arity:           categoryCount,
		initialCapacity: defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.records = make([]record.Record, 0, s.initialCapacity)
	s.index = make(map[string]int, s.initialCapacity)
	return s, nil
}

// CategoryCount returns the fixed arity of the collection.
func (s *RecordStore) CategoryCount() int {
	return s.arity
}

// Add validates and inserts a new record. Derived fields (total, score,
// tier) are computed immediately; rank stays unset until FinalizeRanks.
// Keys are unique case-insensitively.
func (s *RecordStore) Add(ctx context.Context, key string, values []int) error {
	start := time.Now()
	defer func() {
		metrics.RecordInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		metrics.RecordInsertError("store_finalized")
		return ErrStoreFinalized
	}

	folded := strings.ToLower(key)
	if _, exists := s.index[folded]; exists {
		metrics.RecordInsertError("duplicate_key")
		return record.NewValidationError(key, ErrDuplicateKey, "")
	}

	r, err := record.New(key, values, s.arity)
	if err != nil {
		metrics.RecordInsertError(insertErrorKind(err))
		return err
	}

	s.records = append(s.records, r)
	s.index[folded] = len(s.records) - 1

	metrics.RecordInsert()
	metrics.UpdateRecordsTotal(len(s.records))
	return nil
}

// FinalizeRanks computes competition ranks across the whole collection:
// a record's rank is one plus the number of records with a strictly
// greater total, so ties share a rank and the next distinct total skips.
// After this call the store rejects further inserts. Idempotent.
func (s *RecordStore) FinalizeRanks(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return
	}

	// Sort positions by total desc, lowercased key asc for determinism,
	// then walk once assigning competition ranks.
	order := make([]int, len(s.records))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ra, rb := s.records[order[a]], s.records[order[b]]
		if ra.Total != rb.Total {
			return ra.Total > rb.Total
		}
		return strings.ToLower(ra.Key) < strings.ToLower(rb.Key)
	})

	rank := 1
	for pos, idx := range order {
		if pos > 0 && s.records[idx].Total < s.records[order[pos-1]].Total {
			rank = pos + 1
		}
		s.records[idx].Rank = rank
	}

	s.finalized = true
	metrics.RecordFinalization()
}

// Finalized reports whether ranks have been computed.
func (s *RecordStore) Finalized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finalized
}

// Lookup returns the record matching key, case-insensitively. It fails
// with ErrNotFinalized before FinalizeRanks so a caller can never observe
// the unset rank sentinel.
func (s *RecordStore) Lookup(ctx context.Context, key string) (record.Record, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.finalized {
		metrics.RecordErrorByComponent("repository", "not_finalized")
		return record.Record{}, ErrNotFinalized
	}

	idx, ok := s.index[strings.ToLower(key)]
	if !ok {
		metrics.RecordLookupMiss()
		return record.Record{}, ErrNotFound
	}

	metrics.RecordLookup()
	return cloneRecord(s.records[idx]), nil
}

// TopN returns up to n records ordered by rank (total desc, key asc).
func (s *RecordStore) TopN(ctx context.Context, n int) ([]record.Record, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.finalized {
		metrics.RecordErrorByComponent("repository", "not_finalized")
		return nil, ErrNotFinalized
	}

	out := make([]record.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Total != out[b].Total {
			return out[a].Total > out[b].Total
		}
		return strings.ToLower(out[a].Key) < strings.ToLower(out[b].Key)
	})
	if n < len(out) {
		out = out[:n]
	}
	for i := range out {
		out[i] = cloneRecord(out[i])
	}
	return out, nil
}

// Size returns the number of records held.
func (s *RecordStore) Size(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// cloneRecord copies a record so callers cannot alias store-owned state.
func cloneRecord(r record.Record) record.Record {
	values := make([]int, len(r.Values))
	copy(values, r.Values)
	r.Values = values
	return r
}

// insertErrorKind maps a validation error to its metrics label.
func insertErrorKind(err error) string {
	switch {
	case errors.Is(err, record.ErrWrongArity):
		return "wrong_arity"
	case errors.Is(err, record.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	default:
		return "unknown"
	}
}
