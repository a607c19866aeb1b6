package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/numkit/internal/cli"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/tui"
)

func (a *Application) newREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive command-line session",
		Long: `Start an interactive session reading one command per line from
standard input. Type "help" for the list of commands and "exit" to quit.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eval, err := a.newEvaluator()
			if err != nil {
				return err
			}
			repl := cli.NewREPL(eval)
			repl.SetInput(cmd.InOrStdin())
			repl.SetOutput(cmd.OutOrStdout())
			return repl.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&a.Config.Algo, "algo", a.Config.Algo, "Initial Fibonacci algorithm")
	return cmd
}

func (a *Application) newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen terminal interface",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eval, err := a.newEvaluator()
			if err != nil {
				return err
			}
			if code := tui.Run(ctx, eval, Version); code != apperrors.ExitSuccess {
				return exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&a.Config.Algo, "algo", a.Config.Algo, "Initial Fibonacci algorithm")
	return cmd
}

// newEvaluator validates the configured algorithm before building the
// evaluator shared by the REPL and the TUI.
func (a *Application) newEvaluator() (*cli.Evaluator, error) {
	if a.Config.Algo != orchestration.AllAlgorithms {
		if _, err := a.Factory.Get(a.Config.Algo); err != nil {
			return nil, err
		}
	}
	return cli.NewEvaluator(a.Factory, a.Config.Algo, a.Config.Timeout), nil
}
