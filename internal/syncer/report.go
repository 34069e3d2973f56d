package syncer

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a progress line.
type EventKind string

const (
	EventStart     EventKind = "start"
	EventWarning   EventKind = "warning"
	EventRowStart  EventKind = "row_start"
	EventRowFailed EventKind = "row_failed"
	EventRowDone   EventKind = "row_done"
	EventWaiting   EventKind = "waiting"
	EventSummary   EventKind = "summary"
	EventError     EventKind = "error"
)

// Event is one progress line, delivered to ProgressCallback as it happens.
type Event struct {
	RunID   string    `json:"run_id"`
	Kind    EventKind `json:"kind"`
	Row     int       `json:"row,omitempty"`
	Message string    `json:"message"`
}

// ProgressCallback receives every event of a run in order.
type ProgressCallback func(event Event)

// Report is the progress log of one run. It is never persisted; the caller
// displays it and drops it.
type Report struct {
	RunID      uuid.UUID
	Lines      []string
	Processed  int
	Failed     []int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time

	onProgress ProgressCallback
}

func newReport(onProgress ProgressCallback) *Report {
	return &Report{
		RunID:      uuid.New(),
		StartedAt:  time.Now(),
		onProgress: onProgress,
	}
}

// add appends a line and forwards it to the progress callback.
func (r *Report) add(kind EventKind, row int, message string) {
	r.Lines = append(r.Lines, message)
	log.Printf("[sync %s] %s", r.RunID.String()[:8], message)

	if r.onProgress != nil {
		r.onProgress(Event{
			RunID:   r.RunID.String(),
			Kind:    kind,
			Row:     row,
			Message: message,
		})
	}
}

func (r *Report) finish() *Report {
	r.FinishedAt = time.Now()
	return r
}

// Text joins the log lines with sep.
func (r *Report) Text(sep string) string {
	return strings.Join(r.Lines, sep)
}

// Duration is how long the run took, or zero if it has not finished.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
