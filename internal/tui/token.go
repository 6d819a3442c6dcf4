package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/models"
)

// TokenModel shows what the server knows about the current token.
type TokenModel struct {
	ctx  context.Context
	auth *service.AuthService

	loading bool
	info    models.TokenInfo
	loaded  bool
	errMsg  string
}

func NewTokenModel(ctx context.Context, auth *service.AuthService) *TokenModel {
	return &TokenModel{ctx: ctx, auth: auth}
}

func (m *TokenModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.cmdLookup()
}

func (m *TokenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.info = msg.info
		m.loaded = true
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

func (m *TokenModel) View() string {
	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString("Looking up...\n")
	case m.loaded:
		b.WriteString(fmt.Sprintf("Display name : %s\n", valueOrDash(m.info.DisplayName)))
		b.WriteString(fmt.Sprintf("Accessor     : %s\n", valueOrDash(m.info.Accessor)))
		b.WriteString(fmt.Sprintf("Policies     : %s\n", valueOrDash(strings.Join(m.info.Policies, ", "))))
		b.WriteString(fmt.Sprintf("TTL          : %s\n", formatTTL(m.info.TTL)))
	}
	b.WriteString(statusLine("", m.errMsg))
	return renderPage("TOKEN", strings.TrimRight(b.String(), "\n"), "r: refresh │ esc: back")
}

func (m *TokenModel) cmdLookup() tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		info, err := auth.LookupSelf(ctx)
		return tokenLoadedMsg{info: info, err: err}
	}
}
