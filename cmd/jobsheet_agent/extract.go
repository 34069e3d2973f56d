package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/jobsheet-sync/internal/config"
	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/observability"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract fields from one job description without touching the sheet",
	Long:  "Send a single job description (plain text or HTML) through the extractor and print the fields that would be written to the sheet.",
	RunE:  runExtract,
}

var (
	extractInputFile string
	extractJSON      bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the job description file, or - for stdin")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print fields as JSON instead of a table")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	text, err := readInput(cmd.InOrStdin(), extractInputFile)
	if err != nil {
		return err
	}

	// Only the model settings matter here; the sheet is never opened.
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateGemini(); err != nil {
		return err
	}

	extractor, client, err := newExtractor(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	fields, err := extractor.Extract(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	return printFields(cmd.OutOrStdout(), fields, extractJSON)
}

// readInput reads the description from path, or from stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("input is empty")
	}
	return string(data), nil
}

// printFields writes every field in sheet order, filling gaps with the
// missing marker exactly as the sheet would receive them.
func printFields(out io.Writer, fields extraction.Fields, asJSON bool) error {
	if !asJSON {
		observability.NewPrinter(out).PrintFields(fields)
		return nil
	}

	ordered := make(map[string]string, len(extraction.FieldNames))
	for _, name := range extraction.FieldNames {
		ordered[name] = fields.Get(name)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ordered)
}
