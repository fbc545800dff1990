// Package roster loads class rosters from YAML files and builds finalized
// record stores from them.
package roster

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/pkg/metrics"
)

// Roster is the on-disk class description. Fields map 1:1 to the roster
// YAML file.
type Roster struct {
	// Class is a human-readable class name, informational only.
	Class string `yaml:"class"`

	// Subjects is the number of marks every student carries.
	Subjects int `yaml:"subjects"`

	// Students lists the entrants; registration keys must be unique
	// case-insensitively.
	Students []Student `yaml:"students"`
}

// Student is one roster entry.
type Student struct {
	Reg   string `yaml:"reg"`
	Marks []int  `yaml:"marks"`
}

// Load reads and parses a roster file. Shape problems (unreadable file,
// bad YAML, non-positive subject count) are reported here; per-student
// validation is left to the store so its no-partial-insert rules apply.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordRosterLoadFailure()
		return nil, fmt.Errorf("%w: %v", ErrReadRoster, err)
	}

	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		metrics.RecordRosterLoadFailure()
		return nil, fmt.Errorf("%w: %v", ErrParseRoster, err)
	}

	if r.Subjects <= 0 {
		metrics.RecordRosterLoadFailure()
		return nil, fmt.Errorf("%w: subjects must be positive, got %d", ErrInvalidRoster, r.Subjects)
	}
	for i, s := range r.Students {
		if s.Reg == "" {
			metrics.RecordRosterLoadFailure()
			return nil, fmt.Errorf("%w: student %d has an empty reg", ErrInvalidRoster, i)
		}
	}

	metrics.RecordRosterLoad()
	return &r, nil
}

// Build constructs a finalized store from a roster: every student is
// inserted, then ranks are computed in one pass. Any rejected student
// fails the whole build so a half-loaded class is never served.
func Build(ctx context.Context, r *Roster) (*repository.RecordStore, error) {
	store, err := repository.New(r.Subjects, repository.WithInitialCapacity(len(r.Students)))
	if err != nil {
		return nil, err
	}

	for _, s := range r.Students {
		if err := store.Add(ctx, s.Reg, s.Marks); err != nil {
			return nil, fmt.Errorf("roster student %q: %w", s.Reg, err)
		}
	}

	store.FinalizeRanks(ctx)
	return store, nil
}

// Save writes a roster to path as YAML. Used by the generator.
func Save(path string, r *Roster) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	return nil
}
