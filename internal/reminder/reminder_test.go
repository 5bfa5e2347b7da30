package reminder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warsztat/internal/model"
	"warsztat/internal/notify"
	"warsztat/internal/store"
)

func settingsWith(lead int, hour, minute int, interval model.Interval) *model.Settings {
	return &model.Settings{
		LeadDays:     lead,
		ReminderTime: time.Date(2024, 1, 1, hour, minute, 0, 0, time.Local),
		Interval:     interval,
	}
}

func TestComputeTime_HalfYearInterval(t *testing.T) {
	// 15.01.2024 + 6 months = 15.07.2024; minus 2 lead days = 13.07.2024 at 09:00.
	c := model.Client{ServiceDate: "15.01.2024"}
	s := settingsWith(2, 9, 0, model.IntervalHalfYear)

	got, err := ComputeTime(c, s)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 13, 9, 0, 0, 0, time.Local), got)
}

func TestComputeTime_WholeYearInterval(t *testing.T) {
	// 10.03.2023 + 2 years = 10.03.2025; minus 1 lead day = 09.03.2025 at 08:30.
	c := model.Client{ServiceDate: "10.03.2023"}
	s := settingsWith(1, 8, 30, model.IntervalTwoYears)

	got, err := ComputeTime(c, s)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 8, 30, 0, 0, time.Local), got)
}

func TestComputeTime_Deterministic(t *testing.T) {
	c := model.Client{ServiceDate: "01.06.2024"}
	s := settingsWith(3, 7, 45, model.IntervalYear)

	first, err := ComputeTime(c, s)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ComputeTime(c, s)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeTime_LeapDayNormalizes(t *testing.T) {
	// Feb 29 has no counterpart next year; the calendar rolls it forward.
	c := model.Client{ServiceDate: "29.02.2024"}
	s := settingsWith(1, 10, 0, model.IntervalYear)

	got, err := ComputeTime(c, s)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 10, 0, 0, 0, time.Local), got)
}

func TestComputeTime_PastInstantReturnedAsIs(t *testing.T) {
	c := model.Client{ServiceDate: "15.01.2001"}
	s := settingsWith(1, 9, 0, model.IntervalYear)

	got, err := ComputeTime(c, s)
	require.NoError(t, err)
	assert.True(t, got.Before(time.Now()), "no guard against elapsed fire times")
}

func TestComputeTime_MissingSettings(t *testing.T) {
	_, err := ComputeTime(model.Client{ServiceDate: "15.01.2024"}, nil)
	assert.ErrorIs(t, err, ErrNoSettings)
}

func TestComputeTime_InvalidServiceDate(t *testing.T) {
	_, err := ComputeTime(model.Client{ServiceDate: "someday"}, settingsWith(1, 9, 0, model.IntervalYear))
	assert.ErrorIs(t, err, model.ErrInvalidServiceDate)
}

// --- Scheduler against the real store + journal ---

func setupScheduler(t *testing.T) (*Scheduler, *store.Store, *notify.Journal) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	journal, err := notify.NewJournal(st.DB())
	require.NoError(t, err)

	return &Scheduler{Settings: st, Notifier: journal}, st, journal
}

func TestScheduler_NoSettingsSaved(t *testing.T) {
	sched, _, journal := setupScheduler(t)
	ctx := context.Background()
	require.NoError(t, journal.RecordPermission(ctx, true))

	_, err := sched.Schedule(ctx, model.Client{UID: "u-1", Name: "Jan", ServiceDate: "15.01.2024"})
	assert.ErrorIs(t, err, ErrNoSettings)
}

func TestScheduler_PermissionDenied(t *testing.T) {
	sched, st, journal := setupScheduler(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSettings(ctx, *settingsWith(2, 9, 0, model.IntervalYear)))
	require.NoError(t, journal.RecordPermission(ctx, false))

	_, err := sched.Schedule(ctx, model.Client{UID: "u-1", Name: "Jan", ServiceDate: "15.01.2024"})
	assert.ErrorIs(t, err, notify.ErrPermissionDenied)
}

func TestScheduler_ReplacesInsteadOfStacking(t *testing.T) {
	sched, st, journal := setupScheduler(t)
	ctx := context.Background()
	require.NoError(t, st.SaveSettings(ctx, *settingsWith(2, 9, 0, model.IntervalHalfYear)))
	require.NoError(t, journal.RecordPermission(ctx, true))

	client := model.Client{UID: "u-1", Name: "Jan Kowalski", Phone: "600 100 200", ServiceDate: "15.01.2024", CarModel: "Skoda Octavia", Year: "2016"}
	first, err := sched.Schedule(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 13, 9, 0, 0, 0, time.Local), first.At)
	assert.Contains(t, first.Body, "Jan Kowalski")

	// Edit the client, re-save: one pending reminder, the new one.
	client.ServiceDate = "01.02.2024"
	second, err := sched.Schedule(ctx, client)
	require.NoError(t, err)

	pending, err := journal.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].At.Equal(second.At))
}

func TestScheduler_UnscheduleMissingIsNoop(t *testing.T) {
	sched, _, _ := setupScheduler(t)
	assert.NoError(t, sched.Unschedule(context.Background(), model.Client{UID: "never-scheduled"}))
}
