package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/internal/domain/grade"
	"github.com/classrank/classrank/internal/domain/record"
)

// fakeDeps serves a tiny fixed class.
type fakeDeps struct {
	records map[string]record.Record
	order   []string
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{
		records: map[string]record.Record{
			"s2": {Key: "S2", Values: []int{95, 95}, Total: 190, Score: 95.0, Tier: grade.TierAPlus, Rank: 1},
			"s1": {Key: "S1", Values: []int{80, 70}, Total: 150, Score: 75.0, Tier: grade.TierB, Rank: 2},
		},
		order: []string{"s2", "s1"},
	}
}

func (f *fakeDeps) Report(ctx context.Context, key string) (record.Record, int, error) {
	rec, ok := f.records[keyFold(key)]
	if !ok {
		return record.Record{}, 0, repository.ErrNotFound
	}
	return rec, len(f.records), nil
}

func (f *fakeDeps) TopN(ctx context.Context, n int) ([]record.Record, error) {
	out := make([]record.Record, 0, n)
	for _, k := range f.order {
		if len(out) == n {
			break
		}
		out = append(out, f.records[k])
	}
	return out, nil
}

func (f *fakeDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"students": len(f.records)}
}

func keyFold(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func newTestServer() *httptest.Server {
	deps := newFakeDeps()
	srv := NewServer(deps, deps, 10)
	mux := http.NewServeMux()
	srv.Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestHandleGetRecord(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/records/s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var report StudentReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Key != "S1" || report.Rank != 2 || report.ClassSize != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Total != 150 || report.Score != 75.0 || report.Tier != "B" {
		t.Errorf("unexpected derived fields: %+v", report)
	}
}

func TestHandleGetRecord_CaseInsensitive(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/records/S2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestHandleGetRecord_NotFound(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/records/ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var e struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Code != "not_found" {
		t.Errorf("expected code not_found, got %q", e.Code)
	}
}

func TestHandleGetRecord_BadPath(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/records/a/b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleGetLeaderboard(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/leaderboard?limit=2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "S2" || entries[0].Rank != 1 {
		t.Errorf("unexpected head entry: %+v", entries[0])
	}
}

func TestHandleGetLeaderboard_LimitValidation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	for _, q := range []string{"", "?limit=0", "?limit=abc", "?limit=100"} {
		resp, err := http.Get(ts.URL + "/leaderboard" + q)
		if err != nil {
			t.Fatalf("get %q: %v", q, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestHandleStats(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats["students"] != float64(2) {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
