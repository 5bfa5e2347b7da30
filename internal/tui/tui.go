// Package tui is the interactive presentation: a client list with an
// add/edit form and a settings screen, the same two tabs the notebook always
// had. All mutations go through the record store and the reminder scheduler;
// storage and scheduling errors land in the status line, never crash the
// screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"warsztat/internal/model"
	"warsztat/internal/notify"
	"warsztat/internal/reminder"
	"warsztat/internal/store"
)

// clientItem adapts a model.Client to bubbles/list.Item.
type clientItem struct {
	Client model.Client
}

func (i clientItem) line() string {
	c := i.Client
	s := fmt.Sprintf("%s — %s — %s", c.Name, c.Phone, c.ServiceDate)
	if c.CarModel != "" {
		s += "  (" + c.CarModel
		if c.Year != "" {
			s += " " + c.Year
		}
		s += ")"
	}
	return s
}

// Implement list.Item interface
func (i clientItem) Title() string       { return i.line() }
func (i clientItem) Description() string { return "" }
func (i clientItem) FilterValue() string { return i.Client.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(clientItem)
	prefix := "  "
	line := it.line()
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	} else {
		line = mutedStyle.Render(it.Client.Name) + line[len(it.Client.Name):]
	}
	fmt.Fprintln(w, prefix+line)
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeSettings
)

// Model is the Bubble Tea model for the whole program.
type Model struct {
	ctx       context.Context
	store     *store.Store
	scheduler *reminder.Scheduler

	mode    mode
	list    list.Model
	clients []model.Client
	form    clientForm
	setform settingsForm

	status string
	width  int
	height int

	// Undo support (single-level)
	canUndo    bool
	undoIndex  int
	undoClient model.Client
}

// Run loads the current state and starts the interactive program.
func Run(ctx context.Context, st *store.Store, sched *reminder.Scheduler) error {
	clients, err := st.LoadClients(ctx)
	if err != nil {
		return err
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("client", "clients")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	setBind := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, delBind, undoBind, setBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{
		ctx:       ctx,
		store:     st,
		scheduler: sched,
		list:      l,
	}
	m.setClients(clients)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func (m *Model) setClients(clients []model.Client) {
	m.clients = clients
	items := make([]list.Item, 0, len(clients))
	for _, c := range clients {
		items = append(items, clientItem{Client: c})
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s  %s %d",
		titleStyle.Render("Clients"),
		accentStyle.Render("Total"), len(clients))
}

// scheduleStatus turns the scheduling outcome of a saved client into the
// status line; the save itself already succeeded.
func (m *Model) scheduleStatus(saved model.Client, action string) {
	n, err := m.scheduler.Schedule(m.ctx, saved)
	switch {
	case err == nil:
		m.status = successStyle.Render(fmt.Sprintf("✔ %s %s, reminder %s", action, saved.Name, n.At.Format("02.01.2006 15:04")))
	case errors.Is(err, reminder.ErrNoSettings):
		m.status = pendingStyle.Render(fmt.Sprintf("✔ %s %s — no reminder, settings not configured (press s)", action, saved.Name))
	case errors.Is(err, notify.ErrPermissionDenied):
		m.status = pendingStyle.Render(fmt.Sprintf("✔ %s %s — no reminder, notifications not allowed", action, saved.Name))
	default:
		m.status = errorStyle.Render(fmt.Sprintf("%s %s but reminder failed: %v", action, saved.Name, err))
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeSettings:
		return m.updateSettings(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "q", "esc":
			return m, tea.Quit

		case "a":
			m.form = newClientForm(model.Client{}, -1)
			m.mode = modeForm
			m.status = ""
			return m, nil

		case "e":
			i := m.list.Index()
			if i >= 0 && i < len(m.clients) {
				m.form = newClientForm(m.clients[i], i)
				m.mode = modeForm
				m.status = ""
			}
			return m, nil

		case "d":
			i := m.list.Index()
			if i < 0 || i >= len(m.clients) {
				return m, nil
			}
			updated, removed, err := m.store.DeleteClient(m.ctx, i)
			if err != nil {
				m.status = errorStyle.Render("delete: " + err.Error())
				return m, nil
			}
			if err := m.scheduler.Unschedule(m.ctx, removed); err != nil {
				m.status = pendingStyle.Render("removed " + removed.Name + "; pending reminder not cancelled: " + err.Error())
			} else {
				m.status = successStyle.Render("✔ removed " + removed.Name)
			}
			m.undoClient = removed
			m.undoIndex = i
			m.canUndo = true
			m.setClients(updated)
			return m, nil

		case "u":
			if !m.canUndo {
				return m, nil
			}
			idx := m.undoIndex
			if idx > len(m.clients) {
				idx = len(m.clients)
			}
			restored := make([]model.Client, 0, len(m.clients)+1)
			restored = append(restored, m.clients[:idx]...)
			restored = append(restored, m.undoClient)
			restored = append(restored, m.clients[idx:]...)
			if err := m.store.SaveClients(m.ctx, restored); err != nil {
				m.status = errorStyle.Render("undo: " + err.Error())
				return m, nil
			}
			m.setClients(restored)
			m.scheduleStatus(m.undoClient, "restored")
			m.canUndo = false
			return m, nil

		case "s":
			settings, err := m.store.LoadSettings(m.ctx)
			if err != nil {
				m.status = errorStyle.Render("settings: " + err.Error())
				return m, nil
			}
			m.setform = newSettingsForm(settings)
			m.mode = modeSettings
			m.status = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = modeList
			return m, nil

		case "tab", "enter", "down":
			m.form.setFocus(m.form.focus + 1)
			return m, nil

		case "shift+tab", "up":
			m.form.setFocus(m.form.focus - 1)
			return m, nil

		case "left":
			if m.form.onPicker() {
				m.form.cycle(-1)
				return m, nil
			}

		case "right":
			if m.form.onPicker() {
				m.form.cycle(1)
				return m, nil
			}

		case "ctrl+s":
			client := m.form.client()
			if err := client.Validate(); err != nil {
				m.form.errMsg = err.Error()
				return m, nil
			}
			var (
				updated []model.Client
				saved   model.Client
				err     error
				action  string
			)
			if m.form.editIdx >= 0 {
				updated, saved, err = m.store.UpdateClient(m.ctx, m.form.editIdx, client)
				action = "updated"
			} else {
				updated, saved, err = m.store.AddClient(m.ctx, client)
				action = "added"
			}
			if err != nil {
				m.form.errMsg = err.Error()
				return m, nil
			}
			m.setClients(updated)
			m.scheduleStatus(saved, action)
			m.mode = modeList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = modeList
			return m, nil

		case "tab", "enter", "down":
			m.setform.setFocus(m.setform.focus + 1)
			return m, nil

		case "shift+tab", "up":
			m.setform.setFocus(m.setform.focus - 1)
			return m, nil

		case "left":
			if m.setform.focus == setInterval {
				m.setform.cycle(-1)
				return m, nil
			}

		case "right":
			if m.setform.focus == setInterval {
				m.setform.cycle(1)
				return m, nil
			}

		case "ctrl+s":
			settings, err := m.setform.settings()
			if err != nil {
				m.setform.errMsg = err.Error()
				m.setform.savedMsg = ""
				return m, nil
			}
			if err := m.store.SaveSettings(m.ctx, settings); err != nil {
				m.setform.errMsg = err.Error()
				m.setform.savedMsg = ""
				return m, nil
			}
			m.setform.errMsg = ""
			m.setform.savedMsg = "saved"
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.setform, cmd = m.setform.update(msg)
	return m, cmd
}

func (m Model) View() string {
	var content string
	switch m.mode {
	case modeForm:
		content = m.form.view()
	case modeSettings:
		content = m.setform.view()
	default:
		content = m.list.View()
	}

	out := m.tabBar() + "\n" + panelStyle.Render(content)
	if m.status != "" && m.mode == modeList {
		out += "\n" + m.status
	}
	return out
}

func (m Model) tabBar() string {
	clientsTab := tabStyle
	settingsTab := tabStyle
	if m.mode == modeSettings {
		settingsTab = activeTabStyle
	} else {
		clientsTab = activeTabStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		clientsTab.Render("Clients"),
		settingsTab.Render("Settings"),
		helpStyle.Render("  warsztat"),
	)
}
