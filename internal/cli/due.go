package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"warsztat/internal/notify"
	"warsztat/internal/ui"
)

func newDueCommand(opts *RootOptions) *cobra.Command {
	var (
		ack  bool
		atRF string
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show due and upcoming service reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if atRF != "" {
				parsed, err := time.Parse(time.RFC3339, atRF)
				if err != nil {
					return usagef("due: bad --at instant: %v", err)
				}
				now = parsed
			}

			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			pending, err := app.Journal.Pending(ctx)
			if err != nil {
				return err
			}
			ui.Panel(dueReportLines(now, pending))

			if ack {
				n, err := app.Journal.Ack(ctx, now)
				if err != nil {
					return err
				}
				if n > 0 {
					ui.OK(fmt.Sprintf("acknowledged %d reminder(s)", n))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ack, "ack", false, "clear the reminders that already fired")
	cmd.Flags().StringVar(&atRF, "at", "", "evaluate at this RFC 3339 instant instead of now")

	return cmd
}

// dueReportLines renders the reminder report; pending must be sorted by
// fire time (the journal returns it that way).
func dueReportLines(now time.Time, pending []notify.Notification) []string {
	t := ui.Current()
	lines := []string{ui.C(t.Title, "Service reminders"), ""}
	if len(pending) == 0 {
		return append(lines, ui.C(t.Muted, "nothing scheduled"))
	}
	for _, n := range pending {
		stamp := n.At.Format("02.01.2006 15:04")
		if n.At.After(now) {
			lines = append(lines, fmt.Sprintf("%s %s  %s",
				ui.C(t.Muted, t.SymScheduled), ui.C(t.Muted, stamp), n.Body))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s  %s",
				ui.C(t.Due, t.SymDue), ui.C(t.Overdue, stamp), n.Body))
		}
	}
	return lines
}
