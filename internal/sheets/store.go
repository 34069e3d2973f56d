// Package sheets is the gateway to the spreadsheet holding the job postings.
// The sheet is the only state store: every write goes straight through to it.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a read-once snapshot of a sheet. Row 0 is the header. Rows may be
// shorter than the header; missing trailing cells are empty.
type Table [][]string

// Header returns the header row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Store reads a whole sheet and overwrites single cells.
type Store interface {
	// ReadAll fetches every row of the configured range. A sheet with no
	// data yields an empty Table and a nil error.
	ReadAll(ctx context.Context) (Table, error)
	// WriteCell overwrites one cell with a literal string. row is 1-based
	// (the header is row 1); col is 0-based.
	WriteCell(ctx context.Context, row, col int, value string) error
}

// ColumnName converts a 0-based column index to its letter address
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnName(col int) (string, error) {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return "", fmt.Errorf("invalid column index %d: %w", col, err)
	}
	return name, nil
}

// CellName converts a 1-based row and 0-based column to an A1 address.
func CellName(row, col int) (string, error) {
	if row < 1 {
		return "", fmt.Errorf("invalid row %d: rows are 1-based", row)
	}
	column, err := ColumnName(col)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", column, row), nil
}

// qualify prefixes an A1 range with a sheet name, quoting the name when it
// contains anything other than letters, digits and underscores.
func qualify(sheetName, a1 string) string {
	if sheetName == "" {
		return a1
	}
	return quoteSheetName(sheetName) + "!" + a1
}

func quoteSheetName(name string) string {
	plain := strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
