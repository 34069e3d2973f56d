package sheets

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook is a Store backed by a local .xlsx file. Every WriteCell opens,
// updates and saves the file so progress survives a crash mid-run.
type Workbook struct {
	path      string
	sheetName string
	mu        sync.Mutex
}

// NewWorkbook returns a Store for sheetName inside the workbook at path.
// An empty sheetName uses the workbook's first sheet.
func NewWorkbook(path, sheetName string) (*Workbook, error) {
	if path == "" {
		return nil, fmt.Errorf("workbook path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("workbook not found: %w", err)
	}
	return &Workbook{path: path, sheetName: sheetName}, nil
}

// ReadAll returns every row of the sheet.
func (w *Workbook) ReadAll(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Range: w.path, Cause: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, &ReadError{Range: w.path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheet, err := w.resolveSheet(f)
	if err != nil {
		return nil, &ReadError{Range: w.path, Cause: err}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ReadError{Range: qualify(sheet, "A:XFD"), Cause: err}
	}
	return Table(rows), nil
}

// WriteCell stores value as a string cell and saves the workbook.
func (w *Workbook) WriteCell(ctx context.Context, row, col int, value string) error {
	cell, err := CellName(row, col)
	if err != nil {
		return &WriteError{Cell: fmt.Sprintf("R%dC%d", row, col+1), Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return &WriteError{Cell: cell, Cause: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return &WriteError{Cell: cell, Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheet, err := w.resolveSheet(f)
	if err != nil {
		return &WriteError{Cell: cell, Cause: err}
	}

	if err := f.SetCellStr(sheet, cell, value); err != nil {
		return &WriteError{Cell: qualify(sheet, cell), Cause: err}
	}
	if err := f.Save(); err != nil {
		return &WriteError{Cell: qualify(sheet, cell), Cause: fmt.Errorf("save workbook: %w", err)}
	}
	return nil
}

func (w *Workbook) resolveSheet(f *excelize.File) (string, error) {
	if w.sheetName == "" {
		return f.GetSheetName(0), nil
	}
	idx, err := f.GetSheetIndex(w.sheetName)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("sheet %q not found in %s", w.sheetName, w.path)
	}
	return w.sheetName, nil
}
