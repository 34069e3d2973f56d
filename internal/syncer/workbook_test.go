package syncer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRun_AgainstWorkbook(t *testing.T) {
	columns := append([]string{"Job Description"}, extraction.FieldNames...)
	columns = append(columns, "Auto-Fill")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &columns))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "Go intern at Acme, Fall 2025"))
	require.NoError(t, f.SetCellStr("Sheet1", "A3", "Already synced"))
	require.NoError(t, f.SetCellStr("Sheet1", "O3", DoneMarker))
	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := sheets.NewWorkbook(path, "Sheet1")
	require.NoError(t, err)

	ext := &fakeExtractor{results: map[string]extraction.Fields{
		"Go intern at Acme, Fall 2025": {
			extraction.FieldCompany: "Acme",
			extraction.FieldTerm:    "Fall 2025",
		},
	}}
	report, err := New(wb, ext, Options{Pacer: &countingPacer{}}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)

	// A second pass sees the marker and does nothing.
	report, err = New(wb, ext, Options{Pacer: &countingPacer{}}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Len(t, ext.calls, 1)

	table, err := wb.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 3)
	row := table[1]
	require.Len(t, row, 15)
	assert.Equal(t, "Acme", row[1])
	assert.Equal(t, extraction.Missing, row[2])
	assert.Equal(t, "Fall 2025", row[13])
	assert.Equal(t, DoneMarker, row[14])
}
