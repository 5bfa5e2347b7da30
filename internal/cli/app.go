package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"warsztat/internal/model"
	"warsztat/internal/notify"
	"warsztat/internal/reminder"
	"warsztat/internal/store"
	"warsztat/internal/ui"
)

// App bundles the store, the notification journal and the scheduler for one
// command invocation.
type App struct {
	Store     *store.Store
	Journal   *notify.Journal
	Scheduler *reminder.Scheduler
}

func openApp(opts *RootOptions) (*App, error) {
	slog.Debug("opening notebook database", "path", opts.DBPath)
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, err
	}
	journal, err := notify.NewJournal(st.DB())
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &App{
		Store:   st,
		Journal: journal,
		Scheduler: &reminder.Scheduler{
			Settings: st,
			Notifier: journal,
		},
	}, nil
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		ui.Warn("close database: " + err.Error())
	}
}

// ensurePermission asks for the notification permission exactly once, the
// first time a command would schedule a reminder. assumeYes grants without
// prompting (scripted use).
func (a *App) ensurePermission(ctx context.Context, assumeYes bool) error {
	asked, err := a.Journal.PermissionAsked(ctx)
	if err != nil {
		return err
	}
	if asked {
		return nil
	}
	granted := assumeYes
	if !assumeYes {
		fmt.Print("Allow warsztat to schedule service reminders? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		granted = answer == "y" || answer == "yes"
	}
	return a.Journal.RecordPermission(ctx, granted)
}

// scheduleReminder registers the reminder for a just-saved client. The save
// already happened; every failure here degrades to a warning so the record
// is never lost over a reminder.
func (a *App) scheduleReminder(ctx context.Context, c model.Client) {
	n, err := a.Scheduler.Schedule(ctx, c)
	switch {
	case err == nil:
		slog.Debug("reminder scheduled", "client", c.UID, "at", n.At)
		ui.OK("reminder set for " + n.At.Format("02.01.2006 15:04"))
	case errors.Is(err, reminder.ErrNoSettings):
		ui.Warn("reminder not scheduled: configure `warsztat settings` first")
	case errors.Is(err, notify.ErrPermissionDenied):
		ui.Warn("reminder not scheduled: notifications not allowed")
	default:
		ui.Warn("reminder not scheduled: " + err.Error())
	}
}
