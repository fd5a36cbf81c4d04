package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/battrack/battrack/pkg/battery"
	"github.com/battrack/battrack/pkg/ptr"
	"github.com/battrack/battrack/pkg/store"
	"github.com/battrack/battrack/pkg/tracker"
)

type fakeExtractor struct {
	m   battery.Metrics
	err error
}

func (f *fakeExtractor) Extract(_ context.Context) (battery.Metrics, error) {
	return f.m, f.err
}

type fakeCollector struct {
	res tracker.Result
}

func (f *fakeCollector) Collect(_ context.Context, _ bool) tracker.Result {
	return f.res
}

type fakeQueryStore struct {
	records []store.Record
	stats   *store.RangeStats
	err     error
}

func (f *fakeQueryStore) Range(_, _ time.Time) ([]store.Record, error) {
	return f.records, f.err
}

func (f *fakeQueryStore) Stats(_, _ time.Time) (*store.RangeStats, error) {
	return f.stats, f.err
}

func serve(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not JSON: %v (%s)", err, w.Body.String())
	}
	return body
}

func sampleMetrics() battery.Metrics {
	return battery.Metrics{
		CycleCount:        ptr.To(120),
		MaxCapacityMAh:    ptr.To(4500),
		DesignCapacityMAh: ptr.To(5000),
		Source:            battery.SourceProfiler,
	}
}

func TestGetCurrent(t *testing.T) {
	s := New(&fakeExtractor{m: sampleMetrics()}, &fakeCollector{}, &fakeQueryStore{})

	w := serve(t, s, http.MethodGet, "/api/current")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if !strings.Contains(w.Body.String(), `"cycle_count":120`) {
		t.Errorf("body missing cycle count: %s", w.Body.String())
	}
}

func TestGetCurrentNoData(t *testing.T) {
	s := New(&fakeExtractor{err: battery.ErrNoData}, &fakeCollector{}, &fakeQueryStore{})

	w := serve(t, s, http.MethodGet, "/api/current")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestGetHistory(t *testing.T) {
	records := []store.Record{
		{ID: 1, Timestamp: time.Now().UTC(), Metrics: sampleMetrics()},
		{ID: 2, Timestamp: time.Now().UTC(), Metrics: sampleMetrics()},
	}
	s := New(&fakeExtractor{}, &fakeCollector{}, &fakeQueryStore{records: records})

	w := serve(t, s, http.MethodGet, "/api/history?days=7")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	if body["days"] != float64(7) {
		t.Errorf("days = %v, want 7", body["days"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 2 {
		t.Errorf("data = %v, want 2 records", body["data"])
	}
}

func TestGetHistoryBadDays(t *testing.T) {
	s := New(&fakeExtractor{}, &fakeCollector{}, &fakeQueryStore{})

	w := serve(t, s, http.MethodGet, "/api/history?days=soon")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetHistoryEmptyIsArray(t *testing.T) {
	s := New(&fakeExtractor{}, &fakeCollector{}, &fakeQueryStore{})

	w := serve(t, s, http.MethodGet, "/api/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("empty history should serialize as [], got %s", w.Body.String())
	}
}

func TestPostRecord(t *testing.T) {
	rec := store.Record{ID: 3, Timestamp: time.Now().UTC(), Metrics: sampleMetrics()}
	s := New(&fakeExtractor{}, &fakeCollector{res: tracker.Result{
		Status: tracker.StatusRecorded,
		Record: &rec,
	}}, &fakeQueryStore{})

	w := serve(t, s, http.MethodPost, "/api/record")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := decodeBody(t, w)
	if body["status"] != string(tracker.StatusRecorded) {
		t.Errorf("status = %v, want %q", body["status"], tracker.StatusRecorded)
	}
}

func TestPostRecordNoData(t *testing.T) {
	s := New(&fakeExtractor{}, &fakeCollector{res: tracker.Result{
		Status: tracker.StatusSkippedNoData,
	}}, &fakeQueryStore{})

	w := serve(t, s, http.MethodPost, "/api/record")
	// Degraded but non-fatal: 200 with the skip marker.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != string(tracker.StatusSkippedNoData) {
		t.Errorf("status = %v, want %q", body["status"], tracker.StatusSkippedNoData)
	}
}

func TestPostRecordStorageFailure(t *testing.T) {
	s := New(&fakeExtractor{}, &fakeCollector{res: tracker.Result{
		Status: tracker.StatusFailed,
		Err:    errors.New("database or disk is full"),
	}}, &fakeQueryStore{})

	w := serve(t, s, http.MethodPost, "/api/record")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestGetStatsEmptyRangeIsNull(t *testing.T) {
	s := New(&fakeExtractor{}, &fakeCollector{}, &fakeQueryStore{stats: nil})

	w := serve(t, s, http.MethodGet, "/api/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"data":null`) {
		t.Errorf("empty stats should serialize as null, got %s", w.Body.String())
	}
}

func TestNoRoute(t *testing.T) {
	s := New(&fakeExtractor{}, &fakeCollector{}, &fakeQueryStore{})

	w := serve(t, s, http.MethodGet, "/api/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeBody(t, w); body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}
