package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warsztat/internal/model"
	"warsztat/internal/notify"
	"warsztat/internal/store"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func openForInspection(t *testing.T, path string) (*store.Store, *notify.Journal) {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	journal, err := notify.NewJournal(st.DB())
	require.NoError(t, err)
	return st, journal
}

func TestSettingsCommandSavesWholesale(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "settings",
		"--lead-days", "2", "--time", "09:00", "--interval", "0.5"))

	st, _ := openForInspection(t, db)
	settings, err := st.LoadSettings(context.Background())
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, 2, settings.LeadDays)
	assert.Equal(t, model.IntervalHalfYear, settings.Interval)
	assert.Equal(t, "09:00", settings.ClockLabel())
}

func TestSettingsCommandRejectsBadValues(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	assert.Error(t, runCommand(t, "--db", db, "--theme", "mono", "settings", "--lead-days", "9"))
	assert.Error(t, runCommand(t, "--db", db, "--theme", "mono", "settings",
		"--lead-days", "2", "--time", "25:70", "--interval", "1"))
	assert.Error(t, runCommand(t, "--db", db, "--theme", "mono", "settings",
		"--lead-days", "2", "--time", "09:00", "--interval", "0.75"))
}

func TestAddCommandSavesEvenWithoutSettings(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	// No settings yet: the reminder degrades to a warning, the record lands.
	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "add", "-y",
		"--name", "Jan Kowalski", "--phone", "600 100 200", "--date", "15.01.2024",
		"--model", "Skoda Octavia", "--year", "2016", "--scope", "oil-service", "--fuel", "diesel"))

	st, journal := openForInspection(t, db)
	ctx := context.Background()

	clients, err := st.LoadClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Jan Kowalski", clients[0].Name)
	assert.NotEmpty(t, clients[0].UID)

	pending, err := journal.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAddThenEditKeepsOneReminder(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "settings",
		"--lead-days", "2", "--time", "09:00", "--interval", "0.5"))
	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "add", "-y",
		"--name", "Jan Kowalski", "--date", "15.01.2024"))
	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "edit", "1",
		"--date", "01.02.2024"))

	st, journal := openForInspection(t, db)
	ctx := context.Background()

	clients, err := st.LoadClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "01.02.2024", clients[0].ServiceDate)
	assert.Equal(t, "Jan Kowalski", clients[0].Name, "edit keeps unchanged fields")

	pending, err := journal.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "re-saving must replace, not stack")
}

func TestRemoveCommandCancelsReminder(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "settings",
		"--lead-days", "1", "--time", "08:30", "--interval", "2"))
	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "add", "-y",
		"--name", "Anna Nowak", "--date", "10.03.2023"))
	require.NoError(t, runCommand(t, "--db", db, "--theme", "mono", "rm", "1"))

	st, journal := openForInspection(t, db)
	ctx := context.Background()

	clients, err := st.LoadClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)

	pending, err := journal.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAddCommandRejectsBadDate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	err := runCommand(t, "--db", db, "--theme", "mono", "add", "-y",
		"--name", "Jan", "--date", "someday")
	assert.Error(t, err)

	st, _ := openForInspection(t, db)
	clients, loadErr := st.LoadClients(context.Background())
	require.NoError(t, loadErr)
	assert.Empty(t, clients)
}
