// Package shell implements the interactive marks-entry console: collect a
// class, finalize ranks, then answer lookups until the user exits.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/internal/domain/record"
)

// ExitToken ends the lookup loop (case-insensitive).
const ExitToken = "EXIT"

// ErrAborted reports that input ended before the session completed.
var ErrAborted = errors.New("input ended")

// Shell drives one interactive session over the given reader and writer.
// Malformed numeric input re-prompts rather than aborting; only EOF on the
// input stream ends the session early.
type Shell struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Shell reading from in and writing prompts and reports to out.
func New(in io.Reader, out io.Writer) *Shell {
	return &Shell{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run executes the full session: collect, finalize, lookup loop.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("Welcome to the Marks Analysis System\n")

	store, err := s.collect(ctx)
	if err != nil {
		return err
	}

	store.FinalizeRanks(ctx)
	s.printf("\nData entry complete. You can now look up students by registration number.\n")

	return s.lookupLoop(ctx, store)
}

// collect prompts for the class shape and every student's marks.
func (s *Shell) collect(ctx context.Context) (*repository.RecordStore, error) {
	students, err := s.promptInt("Enter number of students in the class: ", func(n int) error {
		if n < 0 {
			return errors.New("student count must not be negative")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	subjects, err := s.promptInt("Enter number of subjects per student: ", func(n int) error {
		if n <= 0 {
			return errors.New("subject count must be positive")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	store, err := repository.New(subjects, repository.WithInitialCapacity(students))
	if err != nil {
		return nil, err
	}

	for i := 0; i < students; i++ {
		s.printf("\nEntering data for student %d of %d\n", i+1, students)
		if err := s.collectStudent(ctx, store, subjects); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// collectStudent reads one registration number and its marks, retrying the
// whole student when the store rejects the insert (e.g. duplicate key).
func (s *Shell) collectStudent(ctx context.Context, store *repository.RecordStore, subjects int) error {
	for {
		reg, err := s.promptLine("Enter registration number: ")
		if err != nil {
			return err
		}
		if reg == "" {
			s.printf("Registration number must not be empty. Try again.\n")
			continue
		}

		marks := make([]int, subjects)
		for j := 0; j < subjects; j++ {
			m, err := s.promptInt(
				fmt.Sprintf("Enter marks for subject %d (%d-%d): ", j+1, record.MinValue, record.MaxValue),
				func(n int) error {
					if n < record.MinValue || n > record.MaxValue {
						return fmt.Errorf("mark must be between %d and %d", record.MinValue, record.MaxValue)
					}
					return nil
				})
			if err != nil {
				return err
			}
			marks[j] = m
		}

		if err := store.Add(ctx, reg, marks); err != nil {
			var verr *record.ValidationError
			if errors.As(err, &verr) {
				s.printf("Could not add student: %v. Try again.\n", verr)
				continue
			}
			return err
		}
		return nil
	}
}

// lookupLoop answers report queries until ExitToken or EOF.
func (s *Shell) lookupLoop(ctx context.Context, store *repository.RecordStore) error {
	for {
		query, err := s.promptLine(fmt.Sprintf("\nEnter registration number to view results (or type %s to quit): ", ExitToken))
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		if strings.EqualFold(query, ExitToken) {
			s.printf("Exiting. Goodbye!\n")
			return nil
		}

		rec, err := store.Lookup(ctx, query)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.printf("Registration number not found. Try again.\n")
				continue
			}
			return err
		}
		s.renderReport(rec, store.Size(ctx))
	}
}

// renderReport prints one student's full report.
func (s *Shell) renderReport(rec record.Record, classSize int) {
	s.printf("\n--- Student Report ---\n")
	s.printf("Registration: %s\n", rec.Key)
	for i, m := range rec.Values {
		s.printf("Subject %d: %d\n", i+1, m)
	}
	s.printf("Total: %d\n", rec.Total)
	s.printf("Score: %.2f\n", rec.Score)
	s.printf("Grade: %s\n", rec.Tier)
	s.printf("Class Rank: %d out of %d\n", rec.Rank, classSize)
}

// promptInt loops until the user enters a valid integer accepted by check.
func (s *Shell) promptInt(label string, check func(int) error) (int, error) {
	for {
		line, err := s.promptLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			s.printf("Invalid number. Enter an integer.\n")
			continue
		}
		if err := check(n); err != nil {
			s.printf("%s. Try again.\n", capitalize(err.Error()))
			continue
		}
		return n, nil
	}
}

// promptLine prints label and reads one trimmed line.
func (s *Shell) promptLine(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
