package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/jobsheet-sync/internal/config"
	"github.com/jonathan/jobsheet-sync/internal/extraction"
	"github.com/jonathan/jobsheet-sync/internal/llm"
	"github.com/jonathan/jobsheet-sync/internal/sheets"
	"github.com/jonathan/jobsheet-sync/internal/syncer"
)

// newStore opens the sheet backend selected by cfg.Backend.
func newStore(ctx context.Context, cfg *config.Config) (sheets.Store, error) {
	switch cfg.Backend {
	case config.BackendExcel:
		log.Printf("[setup] using workbook %s (sheet %q)", cfg.ExcelPath, cfg.SheetName)
		wb, err := sheets.NewWorkbook(cfg.ExcelPath, cfg.SheetName)
		if err != nil {
			return nil, err
		}
		return wb, nil
	case config.BackendSheets, "":
		log.Printf("[setup] using Google Sheet %s (tab %q)", cfg.SpreadsheetID, cfg.SheetName)
		gs, err := sheets.NewGoogleSheets(ctx, sheets.GoogleSheetsConfig{
			SpreadsheetID:   cfg.SpreadsheetID,
			SheetName:       cfg.SheetName,
			Columns:         cfg.SheetColumns,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			return nil, err
		}
		return gs, nil
	default:
		return nil, fmt.Errorf("unknown sheet backend %q", cfg.Backend)
	}
}

// modelSettings picks the configured tier, defaulting to standard, and
// applies GeminiModel as that tier's model name when set.
func modelSettings(cfg *config.Config) (*llm.Config, llm.ModelTier) {
	tier := llm.TierStandard
	if cfg.GeminiTier != "" {
		tier = llm.ModelTier(cfg.GeminiTier)
	}

	llmCfg := llm.DefaultConfig()
	if cfg.GeminiModel != "" {
		llmCfg = llmCfg.WithModel(tier, cfg.GeminiModel)
	}
	return llmCfg, tier
}

// newExtractor connects to Gemini. The caller closes the returned client.
func newExtractor(ctx context.Context, cfg *config.Config) (*extraction.Extractor, llm.Client, error) {
	llmCfg, tier := modelSettings(cfg)
	log.Printf("[setup] extracting with %s tier (%s)", tier, llmCfg.GetModel(tier))

	client, err := llm.NewClient(ctx, llmCfg, cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return extraction.New(client, extraction.WithTier(tier)), client, nil
}

// syncOptions maps the configuration onto syncer options.
func syncOptions(cfg *config.Config) syncer.Options {
	return syncer.Options{
		DescriptionColumn: cfg.DescriptionColumn,
		StatusColumn:      cfg.StatusColumn,
		Delay:             cfg.RateLimitDelay.Std(),
	}
}

// newSyncer wires store, extractor and options together. The returned
// cleanup releases the LLM client.
func newSyncer(ctx context.Context, cfg *config.Config) (*syncer.Syncer, func(), error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	extractor, client, err := newExtractor(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Printf("[setup] closing LLM client: %v", err)
		}
	}
	return syncer.New(store, extractor, syncOptions(cfg)), cleanup, nil
}
