package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidServiceDate marks a service date string that matches none of the
// accepted layouts.
var ErrInvalidServiceDate = errors.New("invalid service date")

// RepairScope tags the kind of work a client record covers.
type RepairScope string

const (
	ScopeNone         RepairScope = ""
	ScopeOilService   RepairScope = "oil-service"
	ScopeEngine       RepairScope = "engine"
	ScopeSuspension   RepairScope = "suspension"
	ScopeTransmission RepairScope = "transmission"
)

var repairScopeLabels = map[RepairScope]string{
	ScopeNone:         "-",
	ScopeOilService:   "oil service",
	ScopeEngine:       "engine",
	ScopeSuspension:   "suspension",
	ScopeTransmission: "transmission",
}

// RepairScopes lists the selectable values in picker order, the unset value first.
var RepairScopes = []RepairScope{ScopeNone, ScopeOilService, ScopeEngine, ScopeSuspension, ScopeTransmission}

func (s RepairScope) Valid() bool {
	_, ok := repairScopeLabels[s]
	return ok
}

func (s RepairScope) Label() string {
	if l, ok := repairScopeLabels[s]; ok {
		return l
	}
	return string(s)
}

// FuelType tags the vehicle's fuel.
type FuelType string

const (
	FuelNone     FuelType = ""
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
)

var fuelTypeLabels = map[FuelType]string{
	FuelNone:     "-",
	FuelGasoline: "gasoline",
	FuelDiesel:   "diesel",
	FuelElectric: "electric",
}

// FuelTypes lists the selectable values in picker order, the unset value first.
var FuelTypes = []FuelType{FuelNone, FuelGasoline, FuelDiesel, FuelElectric}

func (f FuelType) Valid() bool {
	_, ok := fuelTypeLabels[f]
	return ok
}

func (f FuelType) Label() string {
	if l, ok := fuelTypeLabels[f]; ok {
		return l
	}
	return string(f)
}

// Client is one service record in the notebook. Edits replace the whole
// object at its position; there is no field-level patching, so a stored
// record is always either fully new or fully from one submit.
type Client struct {
	// UID is assigned once at creation and survives edits. Reminders are
	// keyed by it, so re-saving a client replaces its pending reminder
	// instead of stacking another.
	UID string `json:"uid,omitempty"`

	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	ServiceDate string      `json:"date"` // day-first formatted, see ParseServiceDate
	CarModel    string      `json:"carModel"`
	Year        string      `json:"year"`
	RepairScope RepairScope `json:"repairScope"`
	FuelType    FuelType    `json:"fuelType"`
}

// ServiceDateLayout is the canonical on-disk layout for Client.ServiceDate.
const ServiceDateLayout = "02.01.2006"

// serviceDateLayouts are accepted on input. The original data came from a
// locale-formatted picker, so both day-first and US-order forms show up.
var serviceDateLayouts = []string{
	ServiceDateLayout,
	"2.1.2006",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

// ParseServiceDate parses a service date string to midnight local time.
func ParseServiceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidServiceDate)
	}
	for _, layout := range serviceDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidServiceDate, s)
}

// FormatServiceDate renders a date in the canonical stored layout.
func FormatServiceDate(t time.Time) string {
	return t.Format(ServiceDateLayout)
}

// Validate checks the fields a form must not submit broken.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := ParseServiceDate(c.ServiceDate); err != nil {
		return err
	}
	if !c.RepairScope.Valid() {
		return fmt.Errorf("unknown repair scope %q", c.RepairScope)
	}
	if !c.FuelType.Valid() {
		return fmt.Errorf("unknown fuel type %q", c.FuelType)
	}
	return nil
}
