package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/updseq/internal/gapcheck"
	"github.com/roach88/updseq/internal/logging"
)

// RootOptions holds global flags for all commands, after the config file and
// environment have been applied.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	LogLevel   string
	ConfigPath string

	// Database is the frame log path used by record and replay.
	Database string

	// State is the last applied counters used by check.
	State gapcheck.State

	// Logger is built in PersistentPreRunE from LogLevel and Format.
	Logger zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// NewRootCommand creates the root command for the updseq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "updseq",
		Short: "Classify and sequence protocol change records",
		Long: `updseq classifies the change records of decoded protocol frames into
counter-space groups and extracts the ordered views a state-application
layer consumes.

Configuration is read from $HOME/.updseq/config.toml (or --config), then
UPDSEQ_* environment variables, then flags; flags always win.`,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", logging.DefaultLevel, "log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default: $HOME/.updseq/config.toml)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewClassifyCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve layers the config file and environment under explicitly set flags,
// validates the result and builds the logger.
func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := opts.ConfigPath
	if cfgFile == "" {
		cfgFile = DefaultConfigPath()
	}
	if cfgFile != "" {
		switch {
		case FileExists(cfgFile):
			fc, err := LoadFileConfig(cfgFile)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}
			ApplyFileConfig(opts, fc, changed)
		case opts.ConfigPath != "":
			return NewExitError(ExitCommandError, fmt.Sprintf("config file not found: %s", opts.ConfigPath))
		}
	}

	if err := ApplyEnvConfig(opts, changed, os.Getenv); err != nil {
		return WrapExitError(ExitCommandError, "load environment", err)
	}

	if !slices.Contains(ValidFormats, opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	level := opts.LogLevel
	if opts.Verbose && !changed["log-level"] && level == logging.DefaultLevel {
		level = "debug"
	}
	log, err := logging.New(cmd.ErrOrStderr(), level, opts.Format == "text")
	if err != nil {
		return WrapExitError(ExitCommandError, "configure logging", err)
	}
	opts.Logger = log
	return nil
}
