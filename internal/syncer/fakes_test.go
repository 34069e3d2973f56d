package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/sheets"
)

// write is one recorded WriteCell call.
type write struct {
	Row   int
	Col   int
	Value string
}

// fakeStore serves a fixed table and records writes in call order.
type fakeStore struct {
	mu      sync.Mutex
	table   sheets.Table
	readErr error
	// failOnWrite makes the Nth write (1-based) fail; 0 never fails.
	failOnWrite int
	writes      []write
	reads       int
}

func (f *fakeStore) ReadAll(_ context.Context) (sheets.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return nil, &sheets.ReadError{Range: "Job_Application_Tracker!A:Z", Cause: f.readErr}
	}
	return f.table, nil
}

func (f *fakeStore) WriteCell(_ context.Context, row, col int, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOnWrite > 0 && len(f.writes)+1 == f.failOnWrite {
		return &sheets.WriteError{Cell: "X1", Cause: errors.New("403 permission denied")}
	}
	f.writes = append(f.writes, write{Row: row, Col: col, Value: value})
	return nil
}

func (f *fakeStore) writesForRow(row int) []write {
	var out []write
	for _, w := range f.writes {
		if w.Row == row {
			out = append(out, w)
		}
	}
	return out
}

func (f *fakeStore) rowsWritten() []int {
	var rows []int
	for _, w := range f.writes {
		if len(rows) == 0 || rows[len(rows)-1] != w.Row {
			rows = append(rows, w.Row)
		}
	}
	return rows
}

// fakeExtractor returns fields keyed by description text.
type fakeExtractor struct {
	results map[string]extraction.Fields
	fail    map[string]bool
	calls   []string
	panicOn string
}

func (f *fakeExtractor) Extract(_ context.Context, rawText string) (extraction.Fields, error) {
	f.calls = append(f.calls, rawText)
	if rawText == f.panicOn {
		panic("boom")
	}
	if f.fail[rawText] {
		return nil, &extraction.Failure{Cause: &extraction.ParseError{Message: "failed to parse JSON response"}}
	}
	if fields, ok := f.results[rawText]; ok {
		return fields, nil
	}
	return extraction.Fields{extraction.FieldCompany: "Acme for " + rawText}, nil
}

// countingPacer records pauses without sleeping.
type countingPacer struct {
	pauses []time.Duration
	err    error
}

func (p *countingPacer) Pause(_ context.Context, d time.Duration) error {
	p.pauses = append(p.pauses, d)
	return p.err
}
