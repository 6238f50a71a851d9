// If you are AI: This file is a spider task, grounded on
// original_source/xlive-monitor/src/spider.rs: once a second, GET a host's
// /monitor endpoint and feed the decoded snapshot to the Aggregator.

package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// PollInterval matches the Rust spider's fixed one-second tick.
const PollInterval = 1 * time.Second

// RequestTimeout bounds a single poll so one unreachable host cannot stall
// the others sharing this process's goroutines.
const RequestTimeout = 3 * time.Second

// Task polls one host's /monitor endpoint and reports into an Aggregator.
type Task struct {
	name string
	url  string
	agg  *Aggregator
	log  zerolog.Logger

	client *http.Client
}

// NewTask builds a polling task for a named host at baseURL (no trailing slash).
func NewTask(name, baseURL string, agg *Aggregator, logger zerolog.Logger) *Task {
	return &Task{
		name:   name,
		url:    baseURL + "/monitor",
		agg:    agg,
		log:    logger.With().Str("component", "spider").Str("host", name).Logger(),
		client: &http.Client{Timeout: RequestTimeout},
	}
}

// Run polls until ctx is cancelled.
func (t *Task) Run(ctx context.Context) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			counts, err := t.poll(ctx)
			if err != nil {
				t.log.Warn().Err(err).Msg("poll failed")
				continue
			}
			t.agg.Update(t.name, counts)
		}
	}
}

func (t *Task) poll(ctx context.Context) (map[string]int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("monitor: %s returned %d", t.url, resp.StatusCode)
	}
	var counts map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return nil, fmt.Errorf("monitor: decode %s: %w", t.url, err)
	}
	return counts, nil
}
