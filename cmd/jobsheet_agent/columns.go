package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/jobsheet-sync/internal/config"
	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/observability"
	"github.com/jonathan/jobsheet-sync/internal/sheets"
	"github.com/jonathan/jobsheet-sync/internal/syncer"
	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show how the sheet header maps to extracted fields",
	Long:  "Read the sheet header and report which column holds the description, the status marker and each output field, plus how many rows are pending. Nothing is written.",
	RunE:  runColumns,
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return describeColumns(cmd.Context(), cmd.OutOrStdout(), store, syncOptions(cfg))
}

// describeColumns prints the header with each column's role and a summary
// of missing columns and pending rows.
func describeColumns(ctx context.Context, out io.Writer, store sheets.Store, opts syncer.Options) error {
	table, err := store.ReadAll(ctx)
	if err != nil {
		return err
	}

	descName := opts.DescriptionColumn
	if descName == "" {
		descName = syncer.DefaultDescriptionColumn
	}
	statusName := opts.StatusColumn
	if statusName == "" {
		statusName = syncer.DefaultStatusColumn
	}

	header := table.Header()
	roles := map[string]string{descName: "description", statusName: "status"}
	for _, name := range extraction.FieldNames {
		roles[name] = "output"
	}
	observability.NewPrinter(out).PrintColumns(header, roles)

	cols := syncer.NewColumnIndex(header)
	descCol, hasDesc := cols.Index(descName)
	if !hasDesc {
		descCol = 0
		_, _ = fmt.Fprintf(out, "No %q column; column A is read as the description.\n", descName)
	}
	statusCol, hasStatus := cols.Index(statusName)
	if !hasStatus {
		statusCol = -1
		_, _ = fmt.Fprintf(out, "No %q column; rows cannot be marked done.\n", statusName)
	}

	var missing []string
	for _, name := range extraction.FieldNames {
		if _, ok := cols.Index(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		_, _ = fmt.Fprintf(out, "Fields with no column (not written): %q\n", missing)
	}

	pending := 0
	for i := 1; i < len(table); i++ {
		if syncer.IsPending(table[i], descCol, statusCol) {
			pending++
		}
	}
	_, _ = fmt.Fprintf(out, "%d of %d data row(s) pending.\n", pending, max(len(table)-1, 0))
	return nil
}
