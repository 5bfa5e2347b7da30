package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"warsztat/internal/model"
)

// Field order in the client form. Text inputs come first, then the two
// pickers, so focus cycling is a single index.
const (
	fieldName = iota
	fieldPhone
	fieldDate
	fieldModel
	fieldYear
	fieldScope
	fieldFuel
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Phone", "Service date", "Car model", "Year", "Repair scope", "Fuel type",
}

// clientForm is the add/edit modal: five text inputs and two cycling
// pickers, submitted as one whole record.
type clientForm struct {
	inputs   [fieldYear + 1]textinput.Model
	scopeIdx int
	fuelIdx  int
	focus    int
	editIdx  int // -1 while adding
	errMsg   string
}

func newClientForm(c model.Client, editIdx int) clientForm {
	f := clientForm{editIdx: editIdx}
	placeholders := [...]string{"Jan Kowalski", "600 100 200", "DD.MM.YYYY", "Skoda Octavia", "2016"}
	values := [...]string{c.Name, c.Phone, c.ServiceDate, c.CarModel, c.Year}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	for i, s := range model.RepairScopes {
		if s == c.RepairScope {
			f.scopeIdx = i
		}
	}
	for i, ft := range model.FuelTypes {
		if ft == c.FuelType {
			f.fuelIdx = i
		}
	}
	f.inputs[fieldName].Focus()
	return f
}

func (f clientForm) client() model.Client {
	return model.Client{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Phone:       strings.TrimSpace(f.inputs[fieldPhone].Value()),
		ServiceDate: strings.TrimSpace(f.inputs[fieldDate].Value()),
		CarModel:    strings.TrimSpace(f.inputs[fieldModel].Value()),
		Year:        strings.TrimSpace(f.inputs[fieldYear].Value()),
		RepairScope: model.RepairScopes[f.scopeIdx],
		FuelType:    model.FuelTypes[f.fuelIdx],
	}
}

func (f clientForm) onPicker() bool { return f.focus >= fieldScope }

func (f *clientForm) setFocus(i int) {
	if i < 0 {
		i = fieldCount - 1
	}
	if i >= fieldCount {
		i = 0
	}
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// cycle moves the focused picker by delta, wrapping around.
func (f *clientForm) cycle(delta int) {
	switch f.focus {
	case fieldScope:
		n := len(model.RepairScopes)
		f.scopeIdx = (f.scopeIdx + delta + n) % n
	case fieldFuel:
		n := len(model.FuelTypes)
		f.fuelIdx = (f.fuelIdx + delta + n) % n
	}
}

func (f clientForm) update(msg tea.Msg) (clientForm, tea.Cmd) {
	if f.onPicker() {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f clientForm) view() string {
	var b strings.Builder
	heading := "Add client"
	if f.editIdx >= 0 {
		heading = "Edit client"
	}
	b.WriteString(titleStyle.Render(heading))
	if f.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(f.errMsg))
	}
	b.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(mutedStyle.Render(label))
		}
		b.WriteString("\n")
		switch i {
		case fieldScope:
			b.WriteString(pickerLine(model.RepairScopes[f.scopeIdx].Label(), i == f.focus))
		case fieldFuel:
			b.WriteString(pickerLine(model.FuelTypes[f.fuelIdx].Label(), i == f.focus))
		default:
			b.WriteString(f.inputs[i].View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab/shift+tab fields · ←/→ picker · ctrl+s save · esc cancel"))
	return b.String()
}

func pickerLine(label string, focused bool) string {
	if focused {
		return accentStyle.Render("‹ " + label + " ›")
	}
	return "  " + label
}
