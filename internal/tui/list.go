package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/app"
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/internal/store"
)

const listPathWidth = 60

// ListModel shows every secret of the store sorted by path.
type ListModel struct {
	ctx      context.Context
	services *service.ClientServices

	items   []*secrets.Collection
	idx     int
	state   store.State
	spinner spinner.Model
	status  string
	errMsg  string
}

func NewListModel(ctx context.Context, services *service.ClientServices) *ListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := &ListModel{ctx: ctx, services: services, spinner: s}
	m.refresh()
	return m
}

func (m *ListModel) Init() tea.Cmd {
	m.refresh()
	return m.spinner.Tick
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeChangedMsg:
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case reloadStartedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "reloading..."
		return m, tea.Batch(m.spinner.Tick, clearStatusLater())
	case mutationDoneMsg:
		if msg.err != nil {
			return m, nil
		}
		m.status = app.MsgSecretSaved
		if msg.kind == mutationDelete {
			m.status = app.MsgSecretDeleted
		}
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, clearStatusLater())
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *ListModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		c, ok := m.current()
		if !ok {
			m.status = "no secrets"
			return m, nil
		}
		return m, navigate(pageDetail, openDetailMsg{path: c.Path()})
	case key.Matches(msg, keys.newItem):
		m.services.Form.SetupNew()
		return m, navigate(pageForm, openFormMsg{})
	case key.Matches(msg, keys.edit):
		c, ok := m.current()
		if !ok {
			return m, nil
		}
		m.services.Form.SetupEdit(c)
		return m, navigate(pageForm, openFormMsg{})
	case key.Matches(msg, keys.reload):
		return m, m.cmdReload()
	case key.Matches(msg, keys.health):
		return m, navigate(pageHealth, nil)
	case key.Matches(msg, keys.token):
		return m, navigate(pageToken, nil)
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Server  : %s\n", valueOrDash(m.services.Session.Endpoint())))
	b.WriteString(fmt.Sprintf("Token   : %s\n", valueOrDash(m.services.Session.DisplayName())))
	b.WriteString(fmt.Sprintf("Root    : %s\n", m.services.Sync.Root()))

	state := m.state.String()
	if m.state == store.StatePopulating {
		state += " " + m.spinner.View()
	}
	b.WriteString(fmt.Sprintf("Secrets : %d (%s)\n\n", len(m.items), state))

	if len(m.items) == 0 {
		switch m.state {
		case store.StatePopulating:
			b.WriteString("Loading...\n")
		default:
			b.WriteString("No secrets\n")
		}
	}
	for i, c := range m.items {
		cursor := "  "
		line := fmt.Sprintf("%-*s %3d", listPathWidth, fitText(c.Path().String(), listPathWidth), c.Len())
		if i == m.idx {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(statusLine(m.status, m.errMsg))

	return renderPage("SECRETS", strings.TrimRight(b.String(), "\n"),
		"enter: open │ n: new │ e: edit │ r: reload │ h: health │ t: token │ L: log out │ v: about │ q: quit")
}

// refresh re-reads the store keeping the selected path when it still exists.
func (m *ListModel) refresh() {
	var selected secrets.Path
	if c, ok := m.current(); ok {
		selected = c.Path()
	}

	m.items = m.services.Secrets.Sorted()
	m.state = m.services.Secrets.State()

	for i, c := range m.items {
		if c.Path() == selected {
			m.idx = i
			return
		}
	}
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *ListModel) current() (*secrets.Collection, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return nil, false
	}
	return m.items[m.idx], true
}

func (m *ListModel) cmdReload() tea.Cmd {
	ctx := m.ctx
	syncSvc := m.services.Sync

	return func() tea.Msg {
		_, err := syncSvc.ReloadAll(ctx)
		return reloadStartedMsg{err: err}
	}
}

func (m *ListModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session

	return func() tea.Msg {
		return logoutDoneMsg{err: session.Logout(ctx)}
	}
}

func navigate(page string, payload any) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}
