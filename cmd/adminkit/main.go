// Command adminkit serves the students admin, prints tables in the terminal
// and renders or prompts schema forms.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminkit/internal/config"
	"github.com/goliatone/go-adminkit/internal/logging"
)

type app struct {
	envFiles []string
	cfg      config.Config
	logger   zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "adminkit:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}
	root := &cobra.Command{
		Use:   "adminkit",
		Short: "Schema driven tables, forms and modals for admin pages",
		Long: `adminkit renders data tables and schema driven forms.

Commands:
  adminkit serve    # students admin on ADMINKIT_ADDR
  adminkit table    # print or browse a JSON/CSV/YAML dataset
  adminkit form     # render a schema form to HTML or fill it in the terminal
  adminkit lint     # check x-adminkit-* extensions of OpenAPI documents

Settings come from .env files and ADMINKIT_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", config.DefaultEnvFiles(), ".env files read before the environment")
	root.AddCommand(newServeCmd(a), newTableCmd(a), newFormCmd(a), newLintCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	// stdout carries command output; logs always go to stderr
	a.logger = logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Pretty,
		Out:    cmd.ErrOrStderr(),
	})
	return nil
}
