// Package reminder computes when a client's next-service notification
// should fire and registers it with the notification collaborator.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warsztat/internal/model"
	"warsztat/internal/notify"
)

// ErrNoSettings means the scheduler was invoked before any reminder
// settings were saved; the fire time is undefined until they exist.
var ErrNoSettings = errors.New("reminder settings not configured")

// ComputeTime returns the absolute instant the reminder for c should fire:
// the service date advanced by the configured interval, backed off by the
// lead days, stamped with the configured clock time.
//
// The half-year interval advances by 6 calendar months; whole-year intervals
// advance the year component. Either way the calendar normalizes overflow
// (Feb 29 plus one year lands on Mar 1). A fire time in the past is returned
// as-is; what happens to an elapsed reminder is the collaborator's business.
func ComputeTime(c model.Client, settings *model.Settings) (time.Time, error) {
	if settings == nil {
		return time.Time{}, ErrNoSettings
	}
	base, err := model.ParseServiceDate(c.ServiceDate)
	if err != nil {
		return time.Time{}, err
	}

	var due time.Time
	if settings.Interval.IsHalfYear() {
		due = base.AddDate(0, 6, 0)
	} else {
		due = base.AddDate(settings.Interval.Years(), 0, 0)
	}

	day := due.AddDate(0, 0, -settings.LeadDays)
	return time.Date(day.Year(), day.Month(), day.Day(), settings.Hour(), settings.Minute(), 0, 0, day.Location()), nil
}

// SettingsSource is what the scheduler needs from the record store.
type SettingsSource interface {
	LoadSettings(ctx context.Context) (*model.Settings, error)
}

// Scheduler ties the pure computation to the store and the notifier.
type Scheduler struct {
	Settings SettingsSource
	Notifier notify.Notifier
}

// Schedule computes the fire time for c and registers a notification keyed
// by the client's UID, replacing any pending one for the same client.
// Returns ErrNoSettings before the first settings save and
// notify.ErrPermissionDenied when notifications were declined; the caller
// decides how softly to land those.
func (s *Scheduler) Schedule(ctx context.Context, c model.Client) (notify.Notification, error) {
	settings, err := s.Settings.LoadSettings(ctx)
	if err != nil {
		return notify.Notification{}, err
	}
	if settings == nil {
		return notify.Notification{}, ErrNoSettings
	}
	at, err := ComputeTime(c, settings)
	if err != nil {
		return notify.Notification{}, err
	}

	// Replace, never stack: an edited client keeps exactly one pending
	// reminder.
	if err := s.Notifier.Cancel(ctx, c.UID); err != nil {
		return notify.Notification{}, err
	}

	body := fmt.Sprintf("%s (%s) is due for service on %s.",
		c.Name, vehicleLabel(c), model.FormatServiceDate(at.AddDate(0, 0, settings.LeadDays)))
	if c.Phone != "" {
		body += " Call " + c.Phone + "."
	}
	n := notify.Notification{
		Key:   c.UID,
		Title: "Service due soon",
		Body:  body,
		At:    at,
	}
	id, err := s.Notifier.Schedule(ctx, n)
	if err != nil {
		return notify.Notification{}, err
	}
	n.ID = id
	return n, nil
}

// Unschedule drops the pending reminder for a deleted client.
func (s *Scheduler) Unschedule(ctx context.Context, c model.Client) error {
	return s.Notifier.Cancel(ctx, c.UID)
}

func vehicleLabel(c model.Client) string {
	switch {
	case c.CarModel != "" && c.Year != "":
		return c.CarModel + " " + c.Year
	case c.CarModel != "":
		return c.CarModel
	default:
		return "vehicle"
	}
}
