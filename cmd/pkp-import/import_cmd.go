package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pkp-import/internal/app"
	"github.com/heartmarshall/pkp-import/internal/config"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

const journalNotFoundMessage = "Journal not found."

type legacyFlags struct {
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func (f *legacyFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.Driver, "driver", "", "legacy database driver: mysql, pgx or sqlite3")
	fs.StringVar(&f.Host, "host", "", "legacy database host")
	fs.IntVar(&f.Port, "port", 0, "legacy database port (default: driver's standard port)")
	fs.StringVar(&f.Username, "username", "", "legacy database user")
	fs.StringVar(&f.Password, "password", "", "legacy database password")
	fs.StringVar(&f.Database, "database", "", "legacy database name (file path for sqlite3)")
}

// apply overrides cfg with the flags that were set on the command line.
func (f *legacyFlags) apply(cmd *cobra.Command, cfg *config.LegacyConfig) error {
	fs := cmd.Flags()
	if fs.Changed("driver") {
		cfg.Driver = f.Driver
	}
	if fs.Changed("host") {
		cfg.Host = f.Host
	}
	if fs.Changed("port") {
		cfg.Port = f.Port
	}
	if fs.Changed("username") {
		cfg.User = f.Username
	}
	if fs.Changed("password") {
		cfg.Password = f.Password
	}
	if fs.Changed("database") {
		cfg.Name = f.Database
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("legacy: %w", err)
	}
	return nil
}

func newImportCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import legacy records",
	}
	cmd.AddCommand(newImportJournalCmd(root))
	return cmd
}

func newImportJournalCmd(root *rootOptions) *cobra.Command {
	var flags legacyFlags

	cmd := &cobra.Command{
		Use:   "journal <legacy-journal-id>",
		Short: "Import one journal with its sections, issues, articles and users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || oldID <= 0 {
				return fmt.Errorf("invalid legacy journal id %q", args[0])
			}

			cfg, err := root.load()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg.Legacy); err != nil {
				return err
			}

			logger := app.NewLogger(cfg.Log)

			report, err := app.ImportJournal(cmd.Context(), cfg, logger, oldID)
			var nf *legacy.NotFoundError
			if errors.As(err, &nf) && nf.Entity == "journal" && nf.ID == oldID {
				fmt.Fprintln(cmd.OutOrStdout(), journalNotFoundMessage)
				return errReported
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported journal %d in %s\n", oldID, report.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "New journal ID: %s\n", report.NewID)
			fmt.Fprintf(out, "Sections: %d, issues: %d, articles: %d, memberships: %d\n",
				report.Sections, report.Issues, report.Articles, report.Members)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
