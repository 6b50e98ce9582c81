// Package cli implements the wareki command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/wareki/internal/logging"
	"github.com/mesh-intelligence/wareki/internal/paths"
	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	erasFile  string
	locale    string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
}

// NewRootCmd creates the top-level "wareki" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wareki",
		Short: "Convert between Gregorian and Japanese era dates",
		Long: "wareki converts proleptic Gregorian dates to Japanese era dates (Meiji, Taisho,\n" +
			"Showa, Heisei and later) and back, and manages the list of eras.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "era catalog directory (default: $(CWD)/.wareki-db)")
	pf.StringVar(&a.flags.erasFile, "eras-file", "", "era config file (default: <config-dir>/eras.yaml)")
	pf.StringVar(&a.flags.locale, "locale", "", "BCP 47 tag for localized names (default: ja)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newConvertCmd(a),
		newTodayCmd(a),
		newToISOCmd(a),
		newToISOYearDayCmd(a),
		newParseCmd(a),
		newErasCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup resolves the config directory, loads config.yaml and installs the
// logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, argv []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.configDir = configDir
	a.cfg = cfg

	level := a.flags.logLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	if err := logging.Setup(level, cfg.GetString(cfgKeyLogFormat), cmd.ErrOrStderr()); err != nil {
		return usageError{err}
	}
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// usageError marks bad arguments or flags.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit code: invalid user input
// (usage errors and domain errors) is 1, everything else is 2.
func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &ue), errors.Is(err, types.ErrDomain):
		return exitUserError
	}
	return exitSysError
}

// args wraps a cobra positional-argument validator so its failures are usage
// errors.
func args(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := v(cmd, a); err != nil {
			return usageError{err}
		}
		return nil
	}
}
