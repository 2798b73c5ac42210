package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/specialistvlad/mrsgo/internal/fsutil"
)

// Output formats for reports and listings.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	outputs    = []string{OutputText, OutputJSON, OutputYAML}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths    []string // files or directories holding descriptions
	Patterns []string // globs selecting descriptions inside directories

	LogFormat       string
	LogLevel        string
	Output          string
	FailOnViolation bool
	WatchDebounce   time.Duration
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = slices.Clone(fsutil.DefaultPatterns)
	}
	if err := fsutil.ValidatePatterns(cfg.Patterns); err != nil {
		return nil, err
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.Output = strings.ToLower(cfg.Output)
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if !slices.Contains(outputs, cfg.Output) {
		return nil, fmt.Errorf("invalid output %q: must be 'text', 'json' or 'yaml'", cfg.Output)
	}

	if cfg.WatchDebounce < 0 {
		return nil, errors.New("watch-debounce must not be negative")
	}
	return &cfg, nil
}
