// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/internal/domain/record"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Report returns the record for a key plus the class size, from one
	// consistent store snapshot.
	Report(ctx context.Context, key string) (record.Record, int, error)

	// TopN exposes the ranked leaderboard.
	TopN(ctx context.Context, n int) ([]record.Record, error)
}

// StudentReport mirrors the read shape returned by GET /records/{key}.
type StudentReport struct {
	Key       string  `json:"key"`
	Marks     []int   `json:"marks"`
	Total     int     `json:"total"`
	Score     float64 `json:"score"`
	Tier      string  `json:"tier"`
	Rank      int     `json:"rank"`
	ClassSize int     `json:"class_size"`
}

// Entry is one leaderboard row.
type Entry struct {
	Rank  int     `json:"rank"`
	Key   string  `json:"key"`
	Total int     `json:"total"`
	Score float64 `json:"score"`
	Tier  string  `json:"tier"`
}

// newEntry converts a domain record to its leaderboard row.
func newEntry(r record.Record) Entry {
	return Entry{
		Rank:  r.Rank,
		Key:   r.Key,
		Total: r.Total,
		Score: r.Score,
		Tier:  string(r.Tier),
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	recordHandler      *RecordHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		recordHandler:      NewRecordHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/records/", MetricsMiddleware(s.recordHandler.HandleGetRecord, "records"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
