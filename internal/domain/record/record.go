// Package record contains the domain model for a validated marks record.
package record

import (
	"fmt"

	"github.com/classrank/classrank/internal/domain/grade"
)

// Mark bounds for a single subject value.
const (
	MinValue = 0
	MaxValue = 100
)

// RankUnset is the Rank value before the collection has been finalized.
const RankUnset = -1

// Record is one entrant's key plus its fixed-length marks and derived
// fields. All derived fields are computed at construction; only Rank is
// populated later, in one batch pass over the full collection.
type Record struct {
	Key    string     // unique id, compared case-insensitively
	Values []int      // per-subject marks, fixed arity per collection
	Total  int        // sum of Values
	Score  float64    // Total / len(Values)
	Tier   grade.Tier // letter grade derived from Score
	Rank   int        // competition rank, RankUnset until finalized
}

// New validates values against the collection arity and bounds and returns
// a Record with Total, Score, and Tier computed. Score is the per-subject
// average: Total divided by the subject count, not a percentage of maximum
// marks.
func New(key string, values []int, arity int) (Record, error) {
	if len(values) != arity {
		return Record{}, NewValidationError(key, ErrWrongArity,
			fmt.Sprintf("got %d values, want %d", len(values), arity))
	}
	for i, v := range values {
		if v < MinValue || v > MaxValue {
			return Record{}, NewValidationError(key, ErrOutOfBounds,
				fmt.Sprintf("value %d at position %d outside [%d,%d]", v, i, MinValue, MaxValue))
		}
	}

	total := 0
	for _, v := range values {
		total += v
	}
	score := float64(total) / float64(arity)

	// Copy values so later caller mutation cannot skew the derived fields.
	owned := make([]int, len(values))
	copy(owned, values)

	return Record{
		Key:    key,
		Values: owned,
		Total:  total,
		Score:  score,
		Tier:   grade.FromScore(score),
		Rank:   RankUnset,
	}, nil
}
