package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/envwrangler/envwrangler/internal/filter"
	"github.com/envwrangler/envwrangler/internal/report"
	"github.com/envwrangler/envwrangler/internal/ui"
	"github.com/envwrangler/envwrangler/pkg/envdiff"
	"github.com/envwrangler/envwrangler/pkg/envset"
)

// ErrUsage is returned when fewer than two sources are given.
var ErrUsage = errors.New("at least two env files are required")

const usageText = `Usage: envwrangler <env1> <env2> [name1] [name2]
Example: envwrangler .env.local .env.staging local staging
`

var setupLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
	Timestamp().
	Caller().
	Logger()

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	// by default, we shouldn't log anything as this would clutter the report.
	log.Logger = zerolog.Nop()
}

// NewRootCmd builds the envwrangler command. Every call returns an
// independent command with its own configuration.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "envwrangler <env1> <env2> [name1] [name2]",
		Short: "Show the differences between two .env files",
		Long: `envwrangler compares two dotenv style files (KEY=VALUE per line) and lists
every key whose value differs between them, including keys that exist in only
one of the files. The optional names label the two files in the report.`,
		Example:           "  envwrangler .env.local .env.staging local staging",
		Args:              validateArgs,
		ValidArgsFunction: envFileCompletion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	// global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.envwrangler.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"Enable debug logging to stderr (to debug.log while the interactive viewer runs)")
	rootCmd.PersistentFlags().Bool("truncate-debug", false,
		"Truncate the debug.log file on startup, if it exists")

	// envwrangler command flags
	rootCmd.Flags().String("left-label", report.DefaultLeftLabel,
		"Name of the first file in the report (the third argument takes precedence)")
	rootCmd.Flags().String("right-label", report.DefaultRightLabel,
		"Name of the second file in the report (the fourth argument takes precedence)")
	rootCmd.Flags().StringP("filter", "f", filter.DefaultExpression,
		"Expression selecting which differences to report, e.g. 'Prefix(\"DB_\") && !Removed()'")
	rootCmd.Flags().StringP("format", "o", string(report.FormatText),
		"Output format: text, json, yaml or msgpack")
	rootCmd.Flags().String("color", string(report.ColorAuto),
		"Colorize text output: auto, always or never")
	rootCmd.Flags().BoolP("interactive", "i", false,
		"Browse the differences in an interactive terminal viewer")
	rootCmd.Flags().String("completion", "",
		"Print the completion script for a shell (bash, zsh, fish or powershell) and exit")
	mustBind("completion", rootCmd.RegisterFlagCompletionFunc("completion", shellCompletion))

	// allow flags to be set via environment variables / config file
	for _, name := range []string{"debug", "truncate-debug"} {
		mustBind(name, v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
	for _, name := range []string{"left-label", "right-label", "filter", "format", "color", "interactive"} {
		mustBind(name, v.BindPFlag(name, rootCmd.Flags().Lookup(name)))
	}

	// a default "completion" sub-command would shadow a first path of that name
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}

func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		if !errors.Is(err, ErrUsage) {
			setupLog.Error().Err(err).Msg("envwrangler failed")
		}
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("envwrangler")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// no home, no default config file
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".envwrangler")

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if shell, _ := cmd.Flags().GetString("completion"); shell != "" {
		return nil
	}
	if len(args) < 2 {
		_, _ = io.WriteString(cmd.OutOrStdout(), usageText)
		return ErrUsage
	}
	return nil
}

// run is the main entry point for the command execution.
func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if shell, _ := cmd.Flags().GetString("completion"); shell != "" {
		return writeCompletion(cmd, shell)
	}

	interactive := v.GetBool("interactive")

	closeLog, err := setupDebugLog(cmd.ErrOrStderr(), v.GetBool("debug"), v.GetBool("truncate-debug"), interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	if used := v.ConfigFileUsed(); used != "" {
		log.Debug().Str("config-file", used).Msg("Using config file")
	}

	format, err := report.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}
	colorMode, err := report.ParseColorMode(v.GetString("color"))
	if err != nil {
		return err
	}
	flt, err := filter.Compile(v.GetString("filter"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := report.ThemeFor(colorMode, out)
	printer := report.NewPrinter(out, theme)

	// structured output must stay parseable, so notices go to stderr
	notices := printer
	if format != report.FormatText && !interactive {
		notices = report.NewPrinter(cmd.ErrOrStderr(), report.ThemeFor(colorMode, cmd.ErrOrStderr()))
	}

	left := readSource(args[0], notices)
	right := readSource(args[1], notices)

	if len(left) == 0 && len(right) == 0 {
		log.Info().Msg("Both sources are empty, skipping comparison")
		return notices.NothingToWrangle()
	}

	diffs, err := flt.Apply(envdiff.Diff(left, right))
	if err != nil {
		return err
	}
	leftLabel, rightLabel := labels(v, args)
	r := report.New(leftLabel, rightLabel, diffs)

	log.Debug().
		Str("filter", flt.String()).
		Int("differences", len(r.Differences)).
		Msg("Compared sources")

	if interactive {
		return ui.Run(ui.NewViewer(ui.DarkTheme, r, theme))
	}
	if format == report.FormatText {
		return printer.Report(r)
	}
	codec, err := report.CodecFor(format)
	if err != nil {
		return err
	}
	return report.Encode(out, r, codec)
}

// readSource parses one source. A source that cannot be read compares as an
// empty set after a warning.
func readSource(path string, notices *report.Printer) envset.Set {
	set, err := envset.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Cannot read source, using an empty set")
		if printErr := notices.Warning(err); printErr != nil {
			log.Error().Err(printErr).Msg("Error printing warning")
		}
		return set
	}
	if e := log.Debug(); e.Enabled() {
		e.Str("path", path).
			Int("entries", len(set)).
			Msg("Parsed source:\n" + dumper.Sdump(set))
	}
	return set
}

// labels resolves the report labels: positional arguments win over flags,
// environment and config file.
func labels(v *viper.Viper, args []string) (string, string) {
	left, right := v.GetString("left-label"), v.GetString("right-label")
	if len(args) > 2 {
		left = args[2]
	}
	if len(args) > 3 {
		right = args[3]
	}
	return left, right
}

// setupDebugLog points the global logger at stderr, or at debug.log while the
// viewer owns the terminal. Without debug mode nothing is logged.
func setupDebugLog(stderr io.Writer, enabled, truncate, toFile bool) (func(), error) {
	if !enabled {
		log.Logger = zerolog.Nop()
		return func() {}, nil
	}
	if !toFile {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().
			Timestamp().
			Caller().
			Logger().
			Level(zerolog.DebugLevel)
		return func() {}, nil
	}

	setupLog.Info().Msg("Debug mode is enabled, logging to debug.log...")
	fileMode := os.O_CREATE | os.O_WRONLY
	if truncate {
		fileMode |= os.O_TRUNC
	} else {
		fileMode |= os.O_APPEND
	}
	logFile, err := os.OpenFile("debug.log", fileMode, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening debug log file: %w", err)
	}
	log.Logger = zerolog.New(logFile).With().
		Timestamp().
		Caller().
		Logger().
		Level(zerolog.DebugLevel)

	return func() {
		if err := logFile.Close(); err != nil {
			setupLog.Error().Err(err).Msg("Error closing debug log file")
		}
	}, nil
}

func mustBind(flagName string, err error) {
	if err != nil {
		setupLog.Fatal().Err(err).Msgf("Failed to bind flag %s", flagName)
	}
}
