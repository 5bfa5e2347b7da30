package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"warsztat/internal/model"
)

const (
	setLead = iota
	setClock
	setInterval
	setCount
)

var settingLabels = [setCount]string{"Reminder lead (days)", "Reminder time (HH:MM)", "Service interval"}

// settingsForm edits the single process-wide reminder configuration.
type settingsForm struct {
	inputs      [setInterval]textinput.Model
	intervalIdx int
	focus       int
	errMsg      string
	savedMsg    string
}

func newSettingsForm(s *model.Settings) settingsForm {
	f := settingsForm{}
	lead := textinput.New()
	lead.Prompt = "> "
	lead.Placeholder = fmt.Sprintf("%d-%d", model.MinLeadDays, model.MaxLeadDays)
	lead.CharLimit = 1
	clock := textinput.New()
	clock.Prompt = "> "
	clock.Placeholder = "09:00"
	clock.CharLimit = 5
	if s != nil {
		lead.SetValue(strconv.Itoa(s.LeadDays))
		clock.SetValue(s.ClockLabel())
		for i, iv := range model.Intervals {
			if iv == s.Interval {
				f.intervalIdx = i
			}
		}
	}
	f.inputs[setLead] = lead
	f.inputs[setClock] = clock
	f.inputs[setLead].Focus()
	return f
}

func (f *settingsForm) setFocus(i int) {
	if i < 0 {
		i = setCount - 1
	}
	if i >= setCount {
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

func (f *settingsForm) cycle(delta int) {
	if f.focus != setInterval {
		return
	}
	n := len(model.Intervals)
	f.intervalIdx = (f.intervalIdx + delta + n) % n
}

// settings assembles and validates the edited configuration.
func (f settingsForm) settings() (model.Settings, error) {
	lead, err := strconv.Atoi(strings.TrimSpace(f.inputs[setLead].Value()))
	if err != nil {
		return model.Settings{}, fmt.Errorf("lead days must be a number")
	}
	parts := strings.SplitN(strings.TrimSpace(f.inputs[setClock].Value()), ":", 2)
	if len(parts) != 2 {
		return model.Settings{}, fmt.Errorf("time must be HH:MM")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return model.Settings{}, fmt.Errorf("bad hour")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return model.Settings{}, fmt.Errorf("bad minute")
	}
	now := time.Now()
	s := model.Settings{
		LeadDays:     lead,
		ReminderTime: time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.Local),
		Interval:     model.Intervals[f.intervalIdx],
	}
	if err := s.Validate(); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

func (f settingsForm) update(msg tea.Msg) (settingsForm, tea.Cmd) {
	if f.focus == setInterval {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f settingsForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	if f.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(f.errMsg))
	}
	if f.savedMsg != "" {
		b.WriteString("  " + successStyle.Render(f.savedMsg))
	}
	b.WriteString("\n\n")

	for i := 0; i < setCount; i++ {
		label := settingLabels[i]
		if i == f.focus {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(mutedStyle.Render(label))
		}
		b.WriteString("\n")
		if i == setInterval {
			b.WriteString(pickerLine(model.Intervals[f.intervalIdx].Label(), i == f.focus))
		} else {
			b.WriteString(f.inputs[i].View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab fields · ←/→ picker · ctrl+s save · tab bar: [1] clients [2] settings"))
	return b.String()
}
