package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"warsztat/internal/model"
	"warsztat/internal/ui"
)

// clientFlags mirror the fields of the client form.
type clientFlags struct {
	Name  string
	Phone string
	Date  string
	Model string
	Year  string
	Scope string
	Fuel  string
	Yes   bool
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Name, "name", "", "client name")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.Date, "date", "", "service date (DD.MM.YYYY)")
	cmd.Flags().StringVar(&f.Model, "model", "", "car make/model")
	cmd.Flags().StringVar(&f.Year, "year", "", "production year")
	cmd.Flags().StringVar(&f.Scope, "scope", "", "repair scope (oil-service|engine|suspension|transmission)")
	cmd.Flags().StringVar(&f.Fuel, "fuel", "", "fuel type (gasoline|diesel|electric)")
	cmd.Flags().BoolVarP(&f.Yes, "yes", "y", false, "grant the notification permission without prompting")
}

// apply overlays the flags that were actually set onto c, so `edit` replaces
// the whole record built from the old one plus the changes.
func (f *clientFlags) apply(cmd *cobra.Command, c model.Client) model.Client {
	if cmd.Flags().Changed("name") {
		c.Name = f.Name
	}
	if cmd.Flags().Changed("phone") {
		c.Phone = f.Phone
	}
	if cmd.Flags().Changed("date") {
		c.ServiceDate = f.Date
	}
	if cmd.Flags().Changed("model") {
		c.CarModel = f.Model
	}
	if cmd.Flags().Changed("year") {
		c.Year = f.Year
	}
	if cmd.Flags().Changed("scope") {
		c.RepairScope = model.RepairScope(f.Scope)
	}
	if cmd.Flags().Changed("fuel") {
		c.FuelType = model.FuelType(f.Fuel)
	}
	return c
}

func newListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			clients, err := app.Store.LoadClients(cmd.Context())
			if err != nil {
				return err
			}
			ui.Panel(clientLines(clients))
			return nil
		},
	}
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	flags := &clientFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client and schedule their service reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := flags.apply(cmd, model.Client{})
			if err := client.Validate(); err != nil {
				return usagef("add: %v", err)
			}

			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if err := app.ensurePermission(ctx, flags.Yes); err != nil {
				return err
			}
			_, saved, err := app.Store.AddClient(ctx, client)
			if err != nil {
				return err
			}
			ui.OK("added " + saved.Name)
			app.scheduleReminder(ctx, saved)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	flags := &clientFlags{}
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Replace the client at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			clients, err := app.Store.LoadClients(ctx)
			if err != nil {
				return err
			}
			if index >= len(clients) {
				return usagef("edit: index out of range: have %d, got %d", len(clients), index+1)
			}

			client := flags.apply(cmd, clients[index])
			if err := client.Validate(); err != nil {
				return usagef("edit: %v", err)
			}
			if err := app.ensurePermission(ctx, flags.Yes); err != nil {
				return err
			}
			_, saved, err := app.Store.UpdateClient(ctx, index, client)
			if err != nil {
				return err
			}
			ui.OK("updated " + saved.Name)
			app.scheduleReminder(ctx, saved)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the client at a 1-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			_, removed, err := app.Store.DeleteClient(ctx, index)
			if err != nil {
				return err
			}
			if err := app.Scheduler.Unschedule(ctx, removed); err != nil {
				ui.Warn("pending reminder not cancelled: " + err.Error())
			}
			ui.OK("removed " + removed.Name)
			return nil
		},
	}
}

func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("not a number: %s", arg)
	}
	if n < 1 {
		return 0, usagef("index must be 1 or higher, got %d", n)
	}
	return n - 1, nil
}

func clientLines(clients []model.Client) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d",
		ui.C(t.Title, "Clients"),
		ui.C(t.Accent, "Total"), len(clients),
	)
	lines := []string{header, ""}
	if len(clients) == 0 {
		return append(lines, ui.C(t.Muted, "no clients yet — add one with `warsztat add`"))
	}
	for i, c := range clients {
		idx := fmt.Sprintf("%2d.", i+1)
		line := fmt.Sprintf("%s %s  %s  %s",
			ui.C(t.Muted, idx), c.Name, ui.C(t.Accent, c.Phone), ui.C(t.Pending, c.ServiceDate))
		if vehicle := vehicleSummary(c); vehicle != "" {
			line += "  " + ui.C(t.Muted, vehicle)
		}
		lines = append(lines, line)
	}
	return lines
}

func vehicleSummary(c model.Client) string {
	parts := []string{}
	if c.CarModel != "" {
		parts = append(parts, c.CarModel)
	}
	if c.Year != "" {
		parts = append(parts, c.Year)
	}
	if c.RepairScope != model.ScopeNone {
		parts = append(parts, c.RepairScope.Label())
	}
	if c.FuelType != model.FuelNone {
		parts = append(parts, c.FuelType.Label())
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return "(" + out + ")"
}
