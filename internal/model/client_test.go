package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "canonical dotted", input: "15.01.2024", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)},
		{name: "dotted without zeros", input: "5.3.2023", want: time.Date(2023, 3, 5, 0, 0, 0, 0, time.Local)},
		{name: "iso", input: "2024-01-15", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)},
		{name: "us slashed", input: "1/15/2024", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)},
		{name: "surrounding spaces", input: " 15.01.2024 ", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServiceDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseServiceDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "soon", "32.01.2024", "15-01-2024"} {
		_, err := ParseServiceDate(input)
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrInvalidServiceDate)
	}
}

func TestClientValidate(t *testing.T) {
	valid := Client{
		Name:        "Jan Kowalski",
		Phone:       "600 100 200",
		ServiceDate: "15.01.2024",
		RepairScope: ScopeOilService,
		FuelType:    FuelDiesel,
	}
	require.NoError(t, valid.Validate())

	// The zero record is the "fully new" shape: empty everywhere. It must
	// fail validation on submit, not on construction.
	assert.Error(t, Client{}.Validate())

	noName := valid
	noName.Name = "  "
	assert.Error(t, noName.Validate())

	badDate := valid
	badDate.ServiceDate = "whenever"
	assert.ErrorIs(t, badDate.Validate(), ErrInvalidServiceDate)

	badScope := valid
	badScope.RepairScope = "bodywork"
	assert.Error(t, badScope.Validate())

	badFuel := valid
	badFuel.FuelType = "coal"
	assert.Error(t, badFuel.Validate())
}

func TestClientWireFieldNames(t *testing.T) {
	c := Client{
		UID:         "u-1",
		Name:        "Anna Nowak",
		Phone:       "500 200 300",
		ServiceDate: "10.03.2023",
		CarModel:    "Audi A4",
		Year:        "2015",
		RepairScope: ScopeEngine,
		FuelType:    FuelGasoline,
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{"uid", "name", "phone", "date", "carModel", "year", "repairScope", "fuelType"} {
		assert.Contains(t, raw, field)
	}
	assert.Equal(t, "10.03.2023", raw["date"])
	assert.Equal(t, "engine", raw["repairScope"])
	assert.Equal(t, "gasoline", raw["fuelType"])
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "oil service", ScopeOilService.Label())
	assert.Equal(t, "-", ScopeNone.Label())
	assert.Equal(t, "diesel", FuelDiesel.Label())
	assert.True(t, ScopeNone.Valid(), "unset scope is a legal stored value")
	assert.True(t, FuelNone.Valid(), "unset fuel is a legal stored value")
}
