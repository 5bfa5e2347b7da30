package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"warsztat/internal/model"
	"warsztat/internal/ui"
)

func newSettingsCommand(opts *RootOptions) *cobra.Command {
	var (
		leadDays int
		clock    string
		interval float64
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the reminder settings",
		Long: `Without flags, prints the current reminder settings. With flags, replaces
the settings object wholesale; unspecified fields keep their current value
when settings already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			current, err := app.Store.LoadSettings(ctx)
			if err != nil {
				return err
			}

			changed := cmd.Flags().Changed("lead-days") ||
				cmd.Flags().Changed("time") ||
				cmd.Flags().Changed("interval")
			if !changed {
				printSettings(current)
				return nil
			}

			next := model.Settings{}
			if current != nil {
				next = *current
			}
			if cmd.Flags().Changed("lead-days") {
				next.LeadDays = leadDays
			}
			if cmd.Flags().Changed("time") {
				at, err := parseClock(clock)
				if err != nil {
					return usagef("settings: %v", err)
				}
				next.ReminderTime = at
			}
			if cmd.Flags().Changed("interval") {
				next.Interval = model.Interval(interval)
			}
			if err := next.Validate(); err != nil {
				return usagef("settings: %v", err)
			}
			if err := app.Store.SaveSettings(ctx, next); err != nil {
				return err
			}
			ui.OK("settings saved")
			return nil
		},
	}

	cmd.Flags().IntVar(&leadDays, "lead-days", 0, fmt.Sprintf("days before the due date to remind (%d-%d)", model.MinLeadDays, model.MaxLeadDays))
	cmd.Flags().StringVar(&clock, "time", "", "reminder time of day (HH:MM)")
	cmd.Flags().Float64Var(&interval, "interval", 0, "service interval in years (0.5|1|2)")

	return cmd
}

// parseClock turns HH:MM into an instant on today's date; only the clock
// part is ever used downstream, date is just a carrier (the original time
// picker stored a full instant too).
func parseClock(s string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("bad hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("bad minute in %q", s)
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.Local), nil
}

func printSettings(s *model.Settings) {
	t := ui.Current()
	if s == nil {
		ui.Panel([]string{
			ui.C(t.Title, "Settings"),
			"",
			ui.C(t.Muted, "not configured — set with `warsztat settings --lead-days 2 --time 09:00 --interval 1`"),
		})
		return
	}
	ui.Panel([]string{
		ui.C(t.Title, "Settings"),
		"",
		fmt.Sprintf("%s %d day(s) before due date", ui.C(t.Accent, "Reminder lead:"), s.LeadDays),
		fmt.Sprintf("%s %s", ui.C(t.Accent, "Reminder time:"), s.ClockLabel()),
		fmt.Sprintf("%s %s", ui.C(t.Accent, "Service interval:"), s.Interval.Label()),
	})
}
