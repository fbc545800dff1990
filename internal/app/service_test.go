package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/pkg/logger"
)

func writeRoster(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
}

const testRoster = `
class: "CSE-A"
subjects: 2
students:
  - reg: "S1"
    marks: [80, 70]
  - reg: "S2"
    marks: [95, 95]
`

func TestService_StartAndReads(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	writeRoster(t, path, testRoster)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New(
		WithRosterPath(path),
		WithWatchRoster(false),
		WithMaxLeaderboardLimit(10),
	)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop()

	// Starting twice is a no-op.
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}

	rec, size, err := svc.Report(ctx, "s1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rec.Key != "S1" || rec.Rank != 2 || size != 2 {
		t.Errorf("unexpected report: key=%s rank=%d size=%d", rec.Key, rec.Rank, size)
	}

	if _, _, err := svc.Report(ctx, "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	top, err := svc.TopN(ctx, 1)
	if err != nil {
		t.Fatalf("topn: %v", err)
	}
	if len(top) != 1 || top[0].Key != "S2" {
		t.Errorf("unexpected leaderboard head: %+v", top)
	}

	if got := svc.ClassSize(ctx); got != 2 {
		t.Errorf("expected class size 2, got %d", got)
	}
	if got := svc.MaxLeaderboardLimit(); got != 10 {
		t.Errorf("expected limit 10, got %d", got)
	}

	stats := svc.GetStats()
	if stats["students"] != 2 || stats["finalized"] != true {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestService_StartFailsOnBadRoster(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	writeRoster(t, path, "subjects: 0\nstudents: []\n")

	svc := New(WithRosterPath(path), WithWatchRoster(false))
	if err := svc.Start(context.Background()); err == nil {
		t.Fatal("expected start to fail on invalid roster")
	}
}

func TestService_RosterReloadSwapsStore(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	writeRoster(t, path, testRoster)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New(WithRosterPath(path), WithWatchRoster(true))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer svc.Stop()

	writeRoster(t, path, `
subjects: 2
students:
  - reg: "S1"
    marks: [80, 70]
  - reg: "S2"
    marks: [95, 95]
  - reg: "S3"
    marks: [60, 60]
`)

	// The watcher rebuilds asynchronously; poll briefly.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if svc.ClassSize(ctx) == 3 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if got := svc.ClassSize(ctx); got != 3 {
		t.Fatalf("expected reloaded class size 3, got %d", got)
	}

	rec, _, err := svc.Report(ctx, "S3")
	if err != nil {
		t.Fatalf("report after reload: %v", err)
	}
	if rec.Rank != 3 {
		t.Errorf("expected S3 rank 3, got %d", rec.Rank)
	}
}
