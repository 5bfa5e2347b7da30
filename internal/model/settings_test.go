package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalValid(t *testing.T) {
	assert.True(t, IntervalHalfYear.Valid())
	assert.True(t, IntervalYear.Valid())
	assert.True(t, IntervalTwoYears.Valid())
	assert.True(t, Interval(3).Valid())
	assert.False(t, Interval(0).Valid())
	assert.False(t, Interval(0.25).Valid())
	assert.False(t, Interval(1.5).Valid())
}

func TestIntervalLabel(t *testing.T) {
	assert.Equal(t, "every 6 months", IntervalHalfYear.Label())
	assert.Equal(t, "every year", IntervalYear.Label())
	assert.Equal(t, "every 2 years", IntervalTwoYears.Label())
}

func TestSettingsValidate(t *testing.T) {
	valid := Settings{
		LeadDays:     2,
		ReminderTime: time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local),
		Interval:     IntervalYear,
	}
	require.NoError(t, valid.Validate())

	tooLong := valid
	tooLong.LeadDays = 5
	assert.Error(t, tooLong.Validate())

	zeroLead := valid
	zeroLead.LeadDays = 0
	assert.Error(t, zeroLead.Validate())

	noTime := valid
	noTime.ReminderTime = time.Time{}
	assert.Error(t, noTime.Validate())

	badInterval := valid
	badInterval.Interval = 0.75
	assert.Error(t, badInterval.Validate())
}

func TestSettingsWire(t *testing.T) {
	s := Settings{
		LeadDays:     2,
		ReminderTime: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		Interval:     IntervalHalfYear,
	}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(2), raw["reminderDay"])
	assert.Equal(t, "2024-06-01T09:30:00Z", raw["reminderTime"])
	assert.Equal(t, 0.5, raw["serviceInterval"])

	var back Settings
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 9, back.Hour())
	assert.Equal(t, 30, back.Minute())
	assert.Equal(t, "09:30", back.ClockLabel())
}
