// Package app assembles the numkit command tree. It resolves the
// configuration, installs the theme and the logger, then dispatches to the
// numeric, Fibonacci, interactive and server commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agbru/numkit/internal/config"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/ui"
)

// Version is the numkit version, set at build time with
// -ldflags "-X github.com/agbru/numkit/internal/app.Version=...".
var Version = "dev"

// Application represents the numkit application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates an Application with the default configuration. Diagnostics
// and logs go to errWriter.
func New(errWriter io.Writer, opts ...AppOption) *Application {
	app := &Application{
		Config:    config.Default(),
		Logger:    logging.NopLogger{},
		ErrWriter: errWriter,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}
	return app
}

// exitError carries the exit code of a failure whose description has
// already been printed.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Run executes the command line args (without the program name) and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, args []string, out io.Writer) int {
	root := a.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(a.ErrWriter)
	return a.exitCode(root.ExecuteContext(ctx))
}

func (a *Application) exitCode(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
	return apperrors.ExitCode(err)
}

// NewRootCommand builds the numkit command and its subcommands. Flag values
// are bound to a.Config.
func (a *Application) NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numkit",
		Short: "Numeric utilities and a multi-algorithm Fibonacci calculator",
		Long: `numkit exposes a small library of checked numeric utilities: integer
sum, non-empty check, sort-and-sum, Fibonacci, Euclidean distance, rectangle
area and person records.

Integer overflow is always reported as an error (exit code 5), never
wrapped. Large Fibonacci numbers are computed with arbitrary precision by
several algorithms that can be compared against each other.

Settings come from flags, then NUMKIT_* environment variables, then the
YAML file given by --config or NUMKIT_CONFIG. Negative numbers must follow
"--", for example: numkit sum -- -3 4`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetVersionTemplate("numkit {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.Config.ConfigFile, "config", "", "YAML configuration file")
	pf.DurationVar(&a.Config.Timeout, "timeout", a.Config.Timeout, "Maximum duration of a calculation")
	pf.StringVar(&a.Config.LogLevel, "log-level", a.Config.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&a.Config.LogFormat, "log-format", a.Config.LogFormat, "Log format (console, json, zap)")
	pf.BoolVar(&a.Config.NoColor, "no-color", a.Config.NoColor, "Disable colored output")
	pf.BoolVarP(&a.Config.Quiet, "quiet", "q", a.Config.Quiet, "Print bare results only")
	pf.StringVar(&a.Config.Format, "format", a.Config.Format, "Result format (text, json, yaml)")
	pf.StringVar(&a.Config.Theme, "theme", a.Config.Theme, "Color theme (dark, light, orange, none)")

	cmd.AddCommand(
		a.newSumCommand(),
		a.newNonEmptyCommand(),
		a.newSortSumCommand(),
		a.newFibCommand(),
		a.newDistanceCommand(),
		a.newAreaCommand(),
		a.newPersonCommand(),
		a.newREPLCommand(),
		a.newTUICommand(),
		a.newServeCommand(),
	)
	return cmd
}

// setup resolves the configuration for the command being run and installs
// the theme and the logger it selects.
func (a *Application) setup(cmd *cobra.Command) error {
	if err := config.Resolve(&a.Config, cmd.Flags()); err != nil {
		return err
	}
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	logger, err := logging.New(logging.Options{
		Format:    a.Config.LogFormat,
		Level:     a.Config.LogLevel,
		Writer:    a.ErrWriter,
		Component: cmd.Name(),
	})
	if err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	a.Logger = logger
	a.Logger.Debug("configuration resolved",
		logging.String("command", cmd.CommandPath()),
		logging.String("config_file", a.Config.ConfigFile),
		logging.Duration("timeout", a.Config.Timeout),
		logging.String("format", a.Config.Format),
	)
	return nil
}
