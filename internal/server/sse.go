package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/jobsheet-sync/internal/syncer"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	mu      sync.Mutex
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// CompleteEvent is the payload of the final event of a streamed run.
type CompleteEvent struct {
	RunID     string `json:"run_id"`
	Processed int    `json:"processed"`
	Failed    []int  `json:"failed"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}

// WriteComplete sends a completion event summarising report
func (s *SSEWriter) WriteComplete(report *syncer.Report) {
	event := CompleteEvent{
		RunID:     report.RunID.String(),
		Processed: report.Processed,
		Failed:    report.Failed,
		Skipped:   report.Skipped,
	}
	if event.Failed == nil {
		event.Failed = []int{}
	}
	if n := len(report.Lines); n > 0 {
		event.Message = report.Lines[n-1]
	}
	s.WriteEvent("complete", event) //nolint:errcheck
}
