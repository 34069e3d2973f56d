// Package config loads the sync configuration from the environment and an
// optional JSON file.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobsheet-sync/internal/schemas"
)

// Backend values select the sheet store.
const (
	BackendSheets = "sheets"
	BackendExcel  = "excel"
)

// Tier values pick a Gemini model by capability.
const (
	TierLite     = "lite"
	TierStandard = "standard"
	TierAdvanced = "advanced"
)

const (
	defaultSheetName = "Job_Application_Tracker"
	defaultDelay     = 4 * time.Second
	defaultPort      = 8080
)

//go:embed config.schema.json
var configSchema string

// Config is everything the sync needs to reach the sheet and the model.
// It is built once at startup and passed down explicitly.
type Config struct {
	GeminiAPIKey string `json:"gemini_api_key,omitempty" validate:"required"`
	GeminiTier   string `json:"gemini_tier,omitempty" validate:"omitempty,oneof=lite standard advanced"`
	// GeminiModel overrides the model name of the selected tier.
	GeminiModel string `json:"gemini_model,omitempty"`

	Backend         string `json:"backend,omitempty" validate:"oneof=sheets excel"`
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" validate:"required_if=Backend sheets"`
	SheetName       string `json:"sheet_name,omitempty"`
	SheetColumns    string `json:"sheet_columns,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`
	ExcelPath       string `json:"excel_path,omitempty" validate:"required_if=Backend excel"`

	DescriptionColumn string   `json:"description_column,omitempty"`
	StatusColumn      string   `json:"status_column,omitempty"`
	RateLimitDelay    Duration `json:"rate_limit_delay,omitempty" validate:"gt=0"`

	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		GeminiTier:     TierStandard,
		Backend:        BackendSheets,
		SheetName:      defaultSheetName,
		RateLimitDelay: Duration(defaultDelay),
		Port:           defaultPort,
	}
}

// FromEnv reads the configuration from environment variables. Unset
// variables leave the corresponding field empty.
func FromEnv() (Config, error) {
	cfg := Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiTier:        strings.ToLower(os.Getenv("GEMINI_TIER")),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		Backend:           strings.ToLower(os.Getenv("SHEET_BACKEND")),
		SpreadsheetID:     os.Getenv("GOOGLE_SHEET_ID"),
		SheetName:         os.Getenv("GOOGLE_SHEET_NAME"),
		SheetColumns:      os.Getenv("SHEET_COLUMNS"),
		CredentialsFile:   os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		ExcelPath:         os.Getenv("EXCEL_PATH"),
		DescriptionColumn: os.Getenv("DESCRIPTION_COLUMN"),
		StatusColumn:      os.Getenv("STATUS_COLUMN"),
	}

	if raw := os.Getenv("RATE_LIMIT_DELAY"); raw != "" {
		d, err := ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config error: RATE_LIMIT_DELAY: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("config error: RATE_LIMIT_DELAY must be greater than 0, got %q", raw)
		}
		cfg.RateLimitDelay = d
	}
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config error: PORT: %w", err)
		}
		cfg.Port = port
	}
	return cfg, nil
}

// LoadFile reads a JSON config file and checks its shape against the
// embedded schema before decoding it.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.Validate(configSchema, data); err != nil {
		var loadErr *schemas.LoadError
		if errors.As(err, &loadErr) {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Merge treats a zero delay as unset, so an explicit zero is refused here.
	var explicit struct {
		RateLimitDelay *Duration `json:"rate_limit_delay"`
	}
	if err := json.Unmarshal(data, &explicit); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if explicit.RateLimitDelay != nil && *explicit.RateLimitDelay <= 0 {
		return nil, fmt.Errorf("config file %s: rate_limit_delay must be greater than 0", path)
	}
	return &cfg, nil
}

// Load resolves the configuration and validates all of it.
func Load(path string) (*Config, error) {
	cfg, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve builds the effective configuration: defaults, then the config
// file (if path is set), then environment variables. Nothing is validated;
// callers that only need part of it check that part.
func Resolve(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.Merge(*fileCfg)
	}

	envCfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	_ = envCfg
	return &cfg, nil
}

// Merge returns c with every non-zero field of override applied on top.
func (c Config) Merge(override Config) Config {
	result := c

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&result.GeminiAPIKey, override.GeminiAPIKey)
	setString(&result.GeminiTier, override.GeminiTier)
	setString(&result.GeminiModel, override.GeminiModel)
	setString(&result.Backend, override.Backend)
	setString(&result.SpreadsheetID, override.SpreadsheetID)
	setString(&result.SheetName, override.SheetName)
	setString(&result.SheetColumns, override.SheetColumns)
	setString(&result.CredentialsFile, override.CredentialsFile)
	setString(&result.ExcelPath, override.ExcelPath)
	setString(&result.DescriptionColumn, override.DescriptionColumn)
	setString(&result.StatusColumn, override.StatusColumn)

	if override.RateLimitDelay != 0 {
		result.RateLimitDelay = override.RateLimitDelay
	}
	if override.Port != 0 {
		result.Port = override.Port
	}
	return result
}

var validate = validator.New()

// Validate checks required settings for the selected backend.
func (c *Config) Validate() error {
	return describe(validate.Struct(c))
}

// ValidateGemini checks only the model settings, for commands that never
// open the sheet.
func (c *Config) ValidateGemini() error {
	return describe(validate.StructPartial(c, "GeminiAPIKey", "GeminiTier"))
}

func describe(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

// envNames maps struct fields to the variable a user would set.
var envNames = map[string]string{
	"GeminiAPIKey":   "GEMINI_API_KEY",
	"GeminiTier":     "GEMINI_TIER",
	"Backend":        "SHEET_BACKEND",
	"SpreadsheetID":  "GOOGLE_SHEET_ID",
	"ExcelPath":      "EXCEL_PATH",
	"RateLimitDelay": "RATE_LIMIT_DELAY",
	"Port":           "PORT",
}

func describeFieldError(fe validator.FieldError) string {
	name := fe.Field()
	if env, ok := envNames[name]; ok {
		name = env
	}

	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s", name, fe.Tag(), fe.Param())
	}
}
