// Package cli wires the cobra command tree: client list management,
// settings, the due-reminder report and the interactive TUI all run over the
// same store and scheduler.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"warsztat/internal/ui"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	DBPath  string
	Verbose bool
	NoColor bool
	Theme   string
}

// NewRootCommand creates the warsztat root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "warsztat",
		Short: "A car mechanic's client notebook",
		Long: `Warsztat keeps a mechanic's client and vehicle service records in a local
database and reminds you when the next service is due.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env file; absence is fine.
			_ = godotenv.Load()

			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))

			ui.SetTheme(opts.Theme)
			ui.SetColorForcing(false, opts.NoColor)

			if opts.DBPath == "" {
				path, err := defaultDBPath()
				if err != nil {
					return err
				}
				opts.DBPath = path
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", os.Getenv("WARSZTAT_DB"), "path to the notebook database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "classic", "output theme (classic|neon|mono)")

	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newEditCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))
	cmd.AddCommand(newSettingsCommand(opts))
	cmd.AddCommand(newDueCommand(opts))
	cmd.AddCommand(newTUICommand(opts))

	return cmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		ui.Fail(err.Error())
		var usage *usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

// usageError marks bad invocations (exit code 2, like bad flags).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	appDir := filepath.Join(dir, "warsztat")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", appDir, err)
	}
	return filepath.Join(appDir, "warsztat.db"), nil
}
