package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/mrsgo/internal/app"
	"github.com/specialistvlad/mrsgo/internal/fsutil"
	"github.com/specialistvlad/mrsgo/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = ".mrs.yaml"

// settings couples a command tree with its own viper instance.
type settings struct {
	v       *viper.Viper
	cfgFile string
	outW    io.Writer
	errW    io.Writer
}

// NewRootCommand builds the mrs command tree. Flags, the config file and
// MRS_ environment variables are resolved through viper in that order of
// precedence.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	s := &settings{v: viper.New(), outW: outW, errW: errW}

	root := &cobra.Command{
		Use:   "mrs",
		Short: "Check Modular Reference Structures for consistency",
		Long: `mrs loads structure descriptions (HCL or YAML), builds the layered
structure of metamodels they describe and audits it: one metamodel per
top-level package, no dangling or upward references and no cycles of
MANDATORY references.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.load,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(errW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&s.cfgFile, "config", "c", "", "config file (default: ./"+defaultConfigFile+" when present)")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringP("output", "o", app.OutputText, "Output format. Options: 'text', 'json' or 'yaml'.")
	flags.StringSlice("pattern", fsutil.DefaultPatterns, "Glob selecting description files inside directories (repeatable).")
	flags.Bool("fail-on-violation", true, "Exit with code 3 when the structure has violations.")
	flags.Duration("watch-debounce", watch.DefaultDebounce, "Quiet period before watch re-validates.")

	for _, name := range []string{"log-level", "log-format", "output", "pattern", "fail-on-violation", "watch-debounce"} {
		_ = s.v.BindPFlag(name, flags.Lookup(name))
	}
	s.v.SetEnvPrefix("MRS")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	root.AddCommand(
		newValidateCommand(s),
		newListCommand(s),
		newOrderCommand(s),
		newExportCommand(s),
		newWatchCommand(s),
	)
	return root
}

// load reads the config file, if any, before a command runs.
func (s *settings) load(_ *cobra.Command, _ []string) error {
	switch {
	case s.cfgFile != "":
		s.v.SetConfigFile(s.cfgFile)
	default:
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil
		}
		s.v.SetConfigFile(defaultConfigFile)
	}

	if err := s.v.ReadInConfig(); err != nil {
		return usageError(fmt.Errorf("reading config file: %w", err))
	}
	return nil
}

// newApp resolves the application configuration for a command run on args.
func (s *settings) newApp(args []string) (*app.App, error) {
	paths := args
	if len(paths) == 0 {
		paths = s.v.GetStringSlice("paths")
	}

	cfg, err := app.NewConfig(app.Config{
		Paths:           paths,
		Patterns:        s.v.GetStringSlice("pattern"),
		LogFormat:       s.v.GetString("log-format"),
		LogLevel:        s.v.GetString("log-level"),
		Output:          s.v.GetString("output"),
		FailOnViolation: s.v.GetBool("fail-on-violation"),
		WatchDebounce:   s.v.GetDuration("watch-debounce"),
	})
	if err != nil {
		return nil, usageError(err)
	}

	a := app.NewApp(s.outW, s.errW, cfg)
	a.Logger().Debug("Configuration resolved.", "config_file", s.v.ConfigFileUsed(), "paths", cfg.Paths, "output", cfg.Output)
	return a, nil
}
