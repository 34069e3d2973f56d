// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/sheets"
	"github.com/jonathan/jobsheet-sync/internal/syncer"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// labelWidth pads field names so values line up
	labelWidth = 22
)

// Printer handles formatted output for the CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintFields outputs one extraction result in sheet column order. Fields
// the service did not return show as the missing marker.
func (p *Printer) PrintFields(fields extraction.Fields) {
	if fields == nil {
		return
	}

	var sb strings.Builder
	for _, name := range extraction.FieldNames {
		label := truncate(name, labelWidth-1)
		sb.WriteString(fmt.Sprintf("%-*s %s\n", labelWidth, label+":", fields.Get(name)))
	}

	p.printBox("EXTRACTED FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the summary of a sync run followed by its log lines.
func (p *Printer) PrintReport(report *syncer.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Processed: %d\n", report.Processed))
	sb.WriteString(fmt.Sprintf("Skipped:   %d\n", report.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", len(report.Failed)))
	if d := report.Duration(); d > 0 {
		sb.WriteString(fmt.Sprintf("Duration:  %s\n", d.Round(time.Millisecond)))
	}

	if len(report.Failed) > 0 {
		sb.WriteString("\nFailed rows:\n")
		count := min(len(report.Failed), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • row %d\n", report.Failed[i]))
		}
		if len(report.Failed) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Failed)-maxItemsToShow))
		}
	}

	p.printBox("SYNC SUMMARY", strings.TrimSuffix(sb.String(), "\n"))

	if len(report.Lines) > 0 {
		p.printBox("RUN LOG", report.Text("\n"))
	}
}

// PrintColumns outputs the sheet header with each column's letter, marking
// the columns the sync reads or writes.
func (p *Printer) PrintColumns(header []string, roles map[string]string) {
	if len(header) == 0 {
		p.printBox("SHEET COLUMNS", "(sheet has no header row)")
		return
	}

	var sb strings.Builder
	for i, name := range header {
		letter, err := sheets.ColumnName(i)
		if err != nil {
			letter = "?"
		}
		line := fmt.Sprintf("%-4s %s", letter, name)
		if role, ok := roles[name]; ok {
			line += fmt.Sprintf("  [%s]", role)
		}
		sb.WriteString(line + "\n")
	}

	p.printBox("SHEET COLUMNS", strings.TrimSuffix(sb.String(), "\n"))
}
