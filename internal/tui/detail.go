package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/service"
)

var (
	defaultClipboardWrite = clipboard.WriteAll
	clipboardWrite        = defaultClipboardWrite
)

// DetailModel shows the entries of one secret. Values are masked until
// revealed one by one.
type DetailModel struct {
	ctx      context.Context
	services *service.ClientServices

	path     secrets.Path
	secret   *secrets.Collection
	idx      int
	revealed map[int]bool
	confirm  *confirmModel
	deleting bool
	status   string
	errMsg   string
}

func NewDetailModel(ctx context.Context, services *service.ClientServices) *DetailModel {
	return &DetailModel{ctx: ctx, services: services, revealed: make(map[int]bool)}
}

func (m *DetailModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openDetailMsg:
		m.open(msg.path)
		return m, nil
	case storeChangedMsg:
		m.refresh()
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = msg.what + " copied"
		return m, clearStatusLater()
	case mutationDoneMsg:
		m.deleting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		return m, navigate(pageList, msg)
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *DetailModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirm = nil
		m.deleting = true
		return m, m.cmdDelete(m.path)
	case key.Matches(msg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *DetailModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc), key.Matches(msg, keys.quit):
		return m, navigate(pageList, storeChangedMsg{})
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.secret != nil && m.idx < m.secret.Len()-1 {
			m.idx++
		}
	case key.Matches(msg, keys.reveal):
		m.revealed[m.idx] = !m.revealed[m.idx]
	case key.Matches(msg, keys.revealAll):
		m.toggleAll()
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy(false)
	case key.Matches(msg, keys.copyName):
		return m, m.cmdCopy(true)
	case key.Matches(msg, keys.edit):
		if m.secret == nil {
			return m, nil
		}
		m.services.Form.SetupEdit(m.secret)
		return m, navigate(pageForm, openFormMsg{})
	case key.Matches(msg, keys.delete):
		if m.secret == nil || m.deleting {
			return m, nil
		}
		m.confirm = &confirmModel{path: m.path.String()}
	}
	return m, nil
}

func (m *DetailModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Path : %s\n\n", m.path))

	if m.secret == nil {
		b.WriteString("This secret is not in the list anymore.\n")
		b.WriteString(statusLine(m.status, m.errMsg))
		return renderPage("SECRET", strings.TrimRight(b.String(), "\n"), "esc: back")
	}

	entries := m.secret.Entries()
	width := 0
	for _, e := range entries {
		if w := len([]rune(e.Name)); w > width {
			width = w
		}
	}
	if len(entries) == 0 {
		b.WriteString("(no entries)\n")
	}
	for i, e := range entries {
		cursor := "  "
		line := fmt.Sprintf("%-*s : %s", width, e.Name, maskSecret(e.Value, m.revealed[i]))
		if i == m.idx {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.deleting {
		b.WriteString("\nDeleting...\n")
	}
	b.WriteString(statusLine(m.status, m.errMsg))

	return renderPage("SECRET", strings.TrimRight(b.String(), "\n"),
		"space: show/hide │ a: show/hide all │ c: copy value │ C: copy name │ e: edit │ d: delete │ esc: back")
}

func (m *DetailModel) open(path secrets.Path) {
	m.path = path
	m.idx = 0
	m.revealed = make(map[int]bool)
	m.confirm = nil
	m.deleting = false
	m.status = ""
	m.errMsg = ""
	m.refresh()
}

func (m *DetailModel) refresh() {
	c, ok := m.services.Secrets.Lookup(m.path)
	if !ok {
		m.secret = nil
		return
	}
	m.secret = c
	if m.idx >= c.Len() {
		m.idx = max(c.Len()-1, 0)
	}
}

func (m *DetailModel) toggleAll() {
	if m.secret == nil {
		return
	}
	reveal := false
	for i := 0; i < m.secret.Len(); i++ {
		if !m.revealed[i] {
			reveal = true
			break
		}
	}
	for i := 0; i < m.secret.Len(); i++ {
		m.revealed[i] = reveal
	}
}

func (m *DetailModel) cmdCopy(name bool) tea.Cmd {
	if m.secret == nil {
		return nil
	}
	entry, err := m.secret.Entry(m.idx)
	if err != nil {
		return nil
	}

	text, what := entry.Value, "value"
	if name {
		text, what = entry.Name, "name"
	}
	return func() tea.Msg {
		return copiedMsg{what: what, err: clipboardWrite(text)}
	}
}

func (m *DetailModel) cmdDelete(path secrets.Path) tea.Cmd {
	ctx := m.ctx
	mutations := m.services.Mutations

	return func() tea.Msg {
		return mutationDoneMsg{kind: mutationDelete, path: path, err: mutations.Delete(ctx, path)}
	}
}
