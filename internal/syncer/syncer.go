// Package syncer fills the structured columns of the job sheet from each
// row's free-text description.
//
// A run reads the sheet once, then walks the data rows top to bottom. Each
// pending row is extracted, its fields are written cell by cell, and the
// status column is set to DoneMarker last. A row whose extraction fails is
// left untouched and picked up again by the next run. Sheet read and write
// errors end the run.
package syncer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/sheets"
)

const (
	// DefaultDescriptionColumn holds the raw posting text.
	DefaultDescriptionColumn = "Job Description"
	// DefaultStatusColumn holds DoneMarker once a row is synced.
	DefaultStatusColumn = "Auto-Fill"
	// DefaultDelay is the pause after each processed row.
	DefaultDelay = 4 * time.Second
)

// Extractor turns a posting into fields. *extraction.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (extraction.Fields, error)
}

// Options configures a Syncer. Zero values take the defaults above.
type Options struct {
	// DescriptionColumn is the header of the posting text column. If the
	// header lacks it, column A is used.
	DescriptionColumn string
	// StatusColumn is the header of the completion column. If the header
	// lacks it, rows can never be marked done.
	StatusColumn string
	// OutputColumns lists the fields to write, in write order. Fields whose
	// column is missing from the header are skipped.
	OutputColumns []string
	Delay         time.Duration
	Pacer         Pacer
	OnProgress    ProgressCallback
}

func (o Options) withDefaults() Options {
	if o.DescriptionColumn == "" {
		o.DescriptionColumn = DefaultDescriptionColumn
	}
	if o.StatusColumn == "" {
		o.StatusColumn = DefaultStatusColumn
	}
	if len(o.OutputColumns) == 0 {
		o.OutputColumns = extraction.FieldNames
	}
	if o.Delay == 0 {
		o.Delay = DefaultDelay
	}
	if o.Pacer == nil {
		o.Pacer = SleepPacer{}
	}
	return o
}

// Syncer runs the extraction pass over one sheet. Runs are sequential; a
// Syncer must not be shared by concurrent Run calls.
type Syncer struct {
	store     sheets.Store
	extractor Extractor
	opts      Options
}

// New returns a Syncer writing through store.
func New(store sheets.Store, extractor Extractor, opts Options) *Syncer {
	return &Syncer{
		store:     store,
		extractor: extractor,
		opts:      opts.withDefaults(),
	}
}

// WithProgress returns a copy of s that reports events to cb.
func (s *Syncer) WithProgress(cb ProgressCallback) *Syncer {
	next := *s
	next.opts.OnProgress = cb
	return &next
}

// Run performs one full pass. The report is always non-nil and holds every
// line logged so far. A non-nil error is a *RunError: the run stopped and
// the remaining rows were not visited. Extraction failures are not errors;
// they appear in the report and in Report.Failed.
func (s *Syncer) Run(ctx context.Context) (report *Report, err error) {
	report = newReport(s.opts.OnProgress)
	defer func() {
		if r := recover(); r != nil {
			err = s.abort(report, &RunError{Stage: StageInternal, Cause: fmt.Errorf("panic: %v", r)})
		}
		report.finish()
	}()

	report.add(EventStart, 0, "Starting job tracker...")

	table, err := s.store.ReadAll(ctx)
	if err != nil {
		return report, s.abort(report, &RunError{Stage: StageRead, Cause: err})
	}
	if len(table) == 0 {
		report.add(EventSummary, 0, "No data found in sheet")
		return report, nil
	}

	cols := NewColumnIndex(table.Header())
	descCol := cols.IndexOr(s.opts.DescriptionColumn, 0)
	statusCol := cols.IndexOr(s.opts.StatusColumn, -1)
	if statusCol < 0 {
		report.add(EventWarning, 0, fmt.Sprintf("Warning: no %q column, rows cannot be marked done and will be processed again next run", s.opts.StatusColumn))
	}

	for i := 1; i < len(table); i++ {
		row := table[i]
		rowNum := i + 1

		if !IsPending(row, descCol, statusCol) {
			report.Skipped++
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, s.abort(report, &RunError{Stage: StageCancelled, Row: rowNum, Cause: ctxErr})
		}

		report.add(EventRowStart, rowNum, fmt.Sprintf("Processing row %d...", rowNum))

		fields, err := s.extractor.Extract(ctx, cell(row, descCol))
		if err != nil {
			log.Printf("[sync] row %d: %v", rowNum, err)
			report.Failed = append(report.Failed, rowNum)
			report.add(EventRowFailed, rowNum, fmt.Sprintf("Failed to extract data for row %d", rowNum))
			continue
		}

		if err := s.writeRow(ctx, rowNum, cols, statusCol, fields); err != nil {
			return report, s.abort(report, err)
		}

		report.Processed++
		report.add(EventRowDone, rowNum, fmt.Sprintf("Row %d completed!", rowNum))

		report.add(EventWaiting, rowNum, fmt.Sprintf("Waiting %s...", s.opts.Delay))
		if err := s.opts.Pacer.Pause(ctx, s.opts.Delay); err != nil {
			return report, s.abort(report, &RunError{Stage: StagePause, Row: rowNum, Cause: err})
		}
	}

	if report.Processed == 0 {
		report.add(EventSummary, 0, "All rows are already processed!")
	} else {
		report.add(EventSummary, 0, fmt.Sprintf("Processed %d job(s) successfully!", report.Processed))
	}
	return report, nil
}

// writeRow writes every output field with a matching column, then the done
// marker. The marker goes last so a crash part-way leaves the row pending.
func (s *Syncer) writeRow(ctx context.Context, rowNum int, cols ColumnIndex, statusCol int, fields extraction.Fields) *RunError {
	for _, name := range s.opts.OutputColumns {
		col, ok := cols.Index(name)
		if !ok {
			continue
		}
		if err := s.store.WriteCell(ctx, rowNum, col, fields.Get(name)); err != nil {
			return &RunError{Stage: StageWrite, Row: rowNum, Cause: err}
		}
	}

	if statusCol < 0 {
		return nil
	}
	if err := s.store.WriteCell(ctx, rowNum, statusCol, DoneMarker); err != nil {
		return &RunError{Stage: StageWrite, Row: rowNum, Cause: err}
	}
	return nil
}

func (s *Syncer) abort(report *Report, runErr *RunError) error {
	report.add(EventError, runErr.Row, "Error: "+runErr.Error())
	return runErr
}
