package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/service"
)

// HealthModel shows the sys/health payload of the server.
type HealthModel struct {
	ctx    context.Context
	health *service.HealthService

	loading bool
	payload string
	errMsg  string
}

func NewHealthModel(ctx context.Context, health *service.HealthService) *HealthModel {
	return &HealthModel{ctx: ctx, health: health}
}

func (m *HealthModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.cmdCheck()
}

func (m *HealthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case healthLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.payload = ""
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.payload = msg.payload
		m.errMsg = ""
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
			return m, navigate(pageList, storeChangedMsg{})
		case key.Matches(msg, keys.reload):
			return m, m.Init()
		}
	}
	return m, nil
}

func (m *HealthModel) View() string {
	var b strings.Builder
	if m.loading {
		b.WriteString("Checking...\n")
	} else {
		b.WriteString(m.payload)
	}
	b.WriteString(statusLine("", m.errMsg))
	return renderPage("SERVER HEALTH", strings.TrimRight(b.String(), "\n"), "r: refresh │ esc: back")
}

func (m *HealthModel) cmdCheck() tea.Cmd {
	ctx := m.ctx
	health := m.health

	return func() tea.Msg {
		payload, err := health.Check(ctx)
		return healthLoadedMsg{payload: payload, err: err}
	}
}
