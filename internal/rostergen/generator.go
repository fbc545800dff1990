// Package rostergen produces randomized class rosters for demos and load
// testing.
package rostergen

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/classrank/classrank/internal/domain/record"
	"github.com/classrank/classrank/internal/roster"
)

// Default generation constants.
const (
	defaultStudents = 30
	defaultSubjects = 5
	defaultSeed     = 42
)

// Student profile cases. Bands keep the generated class realistic: a few
// toppers, a middle bulk, and a tail.
const (
	caseTopper = iota
	caseStrong
	caseAverage
	caseWeak
	caseWideRange
	profileCount
)

// Band bounds per profile, in marks.
const (
	topperMin  = 90
	strongMin  = 75
	strongSpan = 15
	avgMin     = 50
	avgSpan    = 25
	weakMin    = 20
	weakSpan   = 30
)

// Config controls roster generation.
type Config struct {
	Class    string
	Students int
	Subjects int
	Seed     int64
}

// Option applies a configuration option to the Config.
type Option func(*Config)

// WithClass sets the class name.
func WithClass(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Class = name
		}
	}
}

// WithStudents sets the number of students to generate.
func WithStudents(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Students = n
		}
	}
}

// WithSubjects sets the number of subjects per student.
func WithSubjects(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Subjects = n
		}
	}
}

// WithSeed sets the random seed for reproducible rosters.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// Generate builds a roster of random students with UUID registration keys.
// Generation is deterministic for a fixed seed, except for the keys.
func Generate(opts ...Option) *roster.Roster {
	cfg := &Config{
		Class:    "generated",
		Students: defaultStudents,
		Subjects: defaultSubjects,
		Seed:     defaultSeed,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible rosters

	students := make([]roster.Student, cfg.Students)
	for i := range students {
		students[i] = roster.Student{
			Reg:   uuid.New().String(),
			Marks: generateMarks(rng, cfg.Subjects),
		}
	}

	return &roster.Roster{
		Class:    cfg.Class,
		Subjects: cfg.Subjects,
		Students: students,
	}
}

// generateMarks draws one student's marks from a randomly chosen profile.
func generateMarks(rng *rand.Rand, subjects int) []int {
	profile := rng.Intn(profileCount)
	marks := make([]int, subjects)
	for i := range marks {
		marks[i] = markFor(rng, profile)
	}
	return marks
}

func markFor(rng *rand.Rand, profile int) int {
	switch profile {
	case caseTopper:
		return topperMin + rng.Intn(record.MaxValue-topperMin+1)
	case caseStrong:
		return strongMin + rng.Intn(strongSpan+1)
	case caseAverage:
		return avgMin + rng.Intn(avgSpan+1)
	case caseWeak:
		return weakMin + rng.Intn(weakSpan+1)
	default:
		return rng.Intn(record.MaxValue + 1)
	}
}

// Describe returns a short human summary of a generation config.
func Describe(cfg *Config) string {
	return fmt.Sprintf("%d students x %d subjects (seed %d)", cfg.Students, cfg.Subjects, cfg.Seed)
}
