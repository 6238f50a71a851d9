package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestAggregatorMergesByHost(t *testing.T) {
	agg := NewAggregator(zerolog.Nop())
	agg.Update("origin-1", map[string]int{"app1": 2})
	agg.Update("edge-1", map[string]int{"app1": 1, "app2": 0})

	deadline := time.Now().Add(time.Second)
	for {
		snap := agg.Snapshot()
		if len(snap) == 2 && snap["origin-1"]["app1"] == 2 && snap["edge-1"]["app2"] == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("snapshot never converged: %+v", snap)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTaskPollsAndReportsSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/monitor" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]int{"app1": 3})
	}))
	defer srv.Close()

	agg := NewAggregator(zerolog.Nop())
	task := NewTask("origin-1", srv.URL, agg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 1200*time.Millisecond)
	defer cancel()
	go task.Run(ctx)

	deadline := time.Now().Add(1100 * time.Millisecond)
	for {
		snap := agg.Snapshot()
		if snap["origin-1"]["app1"] == 3 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("task never reported a snapshot: %+v", snap)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestServiceServesMergedSnapshotAsJSON(t *testing.T) {
	agg := NewAggregator(zerolog.Nop())
	agg.Update("origin-1", map[string]int{"app1": 5})

	deadline := time.Now().Add(time.Second)
	for agg.Snapshot()["origin-1"] == nil {
		if time.Now().After(deadline) {
			t.Fatal("update never landed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	svc := NewService(agg)
	mux := http.NewServeMux()
	svc.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["origin-1"]["app1"] != 5 {
		t.Fatalf("unexpected body: %+v", body)
	}
}
