package cli

import (
	"github.com/spf13/cobra"

	"warsztat/internal/tui"
)

func newTUICommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if err := app.ensurePermission(ctx, yes); err != nil {
				return err
			}
			return tui.Run(ctx, app.Store, app.Scheduler)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "grant the notification permission without prompting")
	return cmd
}
