package sheets

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultColumns is the column span read from the sheet. It must be wide
// enough to cover the description, status and every output column.
const DefaultColumns = "A:Z"

// GoogleSheetsConfig identifies the sheet to sync.
type GoogleSheetsConfig struct {
	SpreadsheetID string
	SheetName     string
	// Columns is the A1 column span to read, e.g. "A:Z". Empty uses DefaultColumns.
	Columns string
	// CredentialsFile is a service-account key file. Empty falls back to
	// application default credentials.
	CredentialsFile string
}

// GoogleSheets is a Store backed by the Google Sheets v4 API.
type GoogleSheets struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	sheetName     string
	columns       string
}

// NewGoogleSheets connects to the Sheets API. Extra client options are
// appended after the credentials option (tests use them to point at a fake endpoint).
func NewGoogleSheets(ctx context.Context, cfg GoogleSheetsConfig, opts ...option.ClientOption) (*GoogleSheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	columns := cfg.Columns
	if columns == "" {
		columns = DefaultColumns
	}

	return &GoogleSheets{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		columns:       columns,
	}, nil
}

// ReadAll fetches the configured range with formatted (display) values.
func (g *GoogleSheets) ReadAll(ctx context.Context) (Table, error) {
	rng := qualify(g.sheetName, g.columns)

	resp, err := g.values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, &ReadError{Range: rng, Cause: err}
	}

	table := make(Table, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		table = append(table, cells)
	}

	log.Printf("[sheets] read %d rows from %s", len(table), rng)
	return table, nil
}

// WriteCell overwrites a single cell. The value is sent with RAW input so the
// API never interprets it as a formula or a number.
func (g *GoogleSheets) WriteCell(ctx context.Context, row, col int, value string) error {
	cell, err := CellName(row, col)
	if err != nil {
		return &WriteError{Cell: fmt.Sprintf("R%dC%d", row, col+1), Cause: err}
	}
	rng := qualify(g.sheetName, cell)

	body := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	if _, err := g.values.Update(g.spreadsheetID, rng, body).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return &WriteError{Cell: rng, Cause: err}
	}
	return nil
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
