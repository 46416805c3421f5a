package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pkp-import/internal/app"
	"github.com/heartmarshall/pkp-import/internal/config"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

type rootOptions struct {
	ConfigPath string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "pkp-import",
		Short:         "Migrate journals from a legacy PKP/OJS database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file (default: $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(newImportCmd(&opts))
	cmd.AddCommand(newMigrateCmd(&opts))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newEnvCmd())
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return config.LoadFrom(path)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List configuration environment variables and their defaults",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			config.Describe(cmd.OutOrStdout())
		},
	}
}

// Execute runs the root command and exits non-zero on failure. SIGINT and
// SIGTERM cancel the running command; an interrupted import rolls back.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	stop()
	os.Exit(1)
}
