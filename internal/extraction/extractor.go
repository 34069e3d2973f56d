// Package extraction turns a free-text job posting into the fixed set of
// fields tracked in the job sheet.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/jonathan/jobsheet-sync/internal/llm"
	"github.com/jonathan/jobsheet-sync/internal/prompts"
)

// Extractor calls the LLM with the job-fields instruction template.
// It does not retry; a failed posting is reported and left for the next run.
type Extractor struct {
	client llm.Client
	tier   llm.ModelTier
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTier selects the model tier used for extraction.
func WithTier(tier llm.ModelTier) Option {
	return func(e *Extractor) {
		e.tier = tier
	}
}

// New returns an Extractor that sends prompts through client.
func New(client llm.Client, opts ...Option) *Extractor {
	e := &Extractor{
		client: client,
		tier:   llm.TierStandard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildPrompt appends the posting text to the instruction template.
func BuildPrompt(description string) string {
	template := prompts.MustGet("extraction.json", "extract-job-fields")
	return prompts.Format(template, map[string]string{
		"JobDescription": description,
	})
}

// Extract returns the fields found in rawText. Every error it returns is a
// *Failure; nothing escapes as a panic.
func (e *Extractor) Extract(ctx context.Context, rawText string) (Fields, error) {
	prompt := BuildPrompt(PrepareDescription(rawText))

	responseText, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return nil, &Failure{Cause: &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}}
	}

	fields, err := ParseResponse(responseText)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			log.Printf("[extract] unparseable response (%d bytes): %.200s", len(parseErr.Response), parseErr.Response)
		}
		return nil, &Failure{Cause: err}
	}
	return fields, nil
}

// ParseResponse strips any code fence from a model reply and decodes the JSON
// object inside it. Keys are kept as returned; values are flattened to strings.
func ParseResponse(responseText string) (Fields, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err, Response: cleaned}
	}
	if raw == nil {
		return nil, &ParseError{Message: "response is not a JSON object", Response: cleaned}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Message: "unexpected data after JSON object", Response: cleaned}
	}

	fields := make(Fields, len(raw))
	for key, value := range raw {
		if s := canonicalize(value); s != "" {
			fields[key] = s
		}
	}
	return fields, nil
}
