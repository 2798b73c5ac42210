package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/specialistvlad/mrsgo/internal/config"
	"github.com/specialistvlad/mrsgo/internal/ctxlog"
	"github.com/specialistvlad/mrsgo/internal/hcl_adapter"
	"github.com/specialistvlad/mrsgo/internal/yaml_adapter"
)

// ErrViolations is returned by Validate when the structure is not well-formed
// and the configuration asks for violations to fail the run.
var ErrViolations = errors.New("structure has violations")

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders []config.Loader
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs to logW. Without explicit loaders the HCL and YAML loaders
// are used.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []config.Loader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// withLogger attaches the application's logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
