package syncer

import "fmt"

// Stage names the part of a run that failed fatally.
type Stage string

const (
	StageRead      Stage = "read"
	StageWrite     Stage = "write"
	StagePause     Stage = "pause"
	StageCancelled Stage = "cancelled"
	StageInternal  Stage = "internal"
)

// RunError aborts a whole run. Row is the 1-based sheet row being handled
// when the run stopped, or 0 if no row had started.
type RunError struct {
	Stage Stage
	Row   int
	Cause error
}

func (e *RunError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("sync %s failed at row %d: %v", e.Stage, e.Row, e.Cause)
	}
	return fmt.Sprintf("sync %s failed: %v", e.Stage, e.Cause)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}
