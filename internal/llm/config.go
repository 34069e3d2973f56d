// Package llm wraps the text-understanding service used to turn free-text
// job postings into structured fields.
package llm

// ModelTier selects a model by capability rather than by name.
type ModelTier string

const (
	// TierLite trades accuracy for cost on large backlogs
	TierLite ModelTier = "lite"
	// TierStandard is the default for job posting extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced selects the most capable model
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies the backing LLM service.
type Provider string

// ProviderGemini is the Google Gemini provider, the only one wired today.
const ProviderGemini Provider = "gemini"

// defaultTemperature keeps field extraction close to deterministic.
const defaultTemperature float32 = 0.1

// Config holds the model configuration for the extraction client.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: defaultTemperature,
	}
}

// GetModel returns the model name for a tier, falling back to standard and
// then lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
