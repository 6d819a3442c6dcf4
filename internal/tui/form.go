package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/service"
)

const formInputWidth = 40

type entryInputs struct {
	name  textinput.Model
	value textinput.Model
}

// FormModel edits the draft held by [service.EditForm]. Focus 0 is the path
// input; entry i owns focus 1+2i (name) and 2+2i (value).
type FormModel struct {
	ctx      context.Context
	services *service.ClientServices

	title      string
	editMode   bool
	editedPath secrets.Path

	path       textinput.Model
	rows       []entryInputs
	focus      int
	confirm    *confirmModel
	submitting bool
	errMsg     string
}

func NewFormModel(ctx context.Context, services *service.ClientServices) *FormModel {
	m := &FormModel{ctx: ctx, services: services}
	m.load()
	return m
}

func (m *FormModel) Init() tea.Cmd {
	m.load()
	return textinput.Blink
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openFormMsg:
		m.load()
		return m, textinput.Blink
	case mutationDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		return m, navigate(pageList, msg)
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		if m.submitting {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.esc):
			m.errMsg = ""
			return m, navigate(pageList, storeChangedMsg{})
		case msg.String() == "tab" || msg.String() == "down":
			m.setFocus((m.focus + 1) % m.inputCount())
			return m, nil
		case msg.String() == "shift+tab" || msg.String() == "up":
			m.setFocus((m.focus - 1 + m.inputCount()) % m.inputCount())
			return m, nil
		case key.Matches(msg, keys.addEntry):
			m.commit()
			m.services.Form.AddEmptyEntry()
			m.reloadRows(m.inputCount())
			return m, nil
		case key.Matches(msg, keys.dropEntry):
			return m, m.dropFocusedEntry()
		case key.Matches(msg, keys.save):
			m.commit()
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSave()
		case msg.String() == "ctrl+d":
			if m.editMode {
				m.confirm = &confirmModel{path: m.editedPath.String()}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}
	row, isValue := m.rowOf(m.focus)
	if isValue {
		m.rows[row].value, cmd = m.rows[row].value.Update(msg)
	} else {
		m.rows[row].name, cmd = m.rows[row].name.Update(msg)
	}
	return m, cmd
}

func (m *FormModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirm = nil
		m.submitting = true
		return m, m.cmdDelete(m.editedPath)
	case key.Matches(msg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *FormModel) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}

	var b strings.Builder
	b.WriteString("Path  : [")
	b.WriteString(m.path.View())
	b.WriteString("]\n\n")

	b.WriteString("Name                                       │ Value\n")
	b.WriteString("───────────────────────────────────────────┼──────────────────────────────────────────\n")
	for _, row := range m.rows {
		b.WriteString("[")
		b.WriteString(row.name.View())
		b.WriteString("] │ [")
		b.WriteString(row.value.View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Saving...]\n")
	}
	b.WriteString(statusLine("", m.errMsg))

	hotKeys := "tab: next field │ ctrl+n: add entry │ ctrl+x: remove entry │ ctrl+s: save │ esc: cancel"
	if m.editMode {
		hotKeys += " │ ctrl+d: delete"
	}
	return renderPage(strings.ToUpper(m.title), strings.TrimRight(b.String(), "\n"), hotKeys)
}

// load rebuilds the inputs from the edit form.
func (m *FormModel) load() {
	draft := m.services.Form.Draft()
	m.title = m.services.Form.Title()
	m.editMode = m.services.Form.EditMode()
	m.editedPath = draft.Path()
	m.submitting = false
	m.confirm = nil
	m.errMsg = ""

	m.path = newFormInput("secret/path")
	m.path.SetValue(draft.Path().String())
	m.fillRows(draft)
	m.focus = -1
	m.setFocus(0)
}

// reloadRows rebuilds the entry inputs and focuses input i.
func (m *FormModel) reloadRows(i int) {
	m.fillRows(m.services.Form.Draft())
	m.focus = -1
	m.setFocus(min(i, m.inputCount()-1))
}

func (m *FormModel) fillRows(draft *secrets.Collection) {
	m.rows = m.rows[:0]
	for _, e := range draft.Entries() {
		name := newFormInput("name")
		name.SetValue(e.Name)
		value := newFormInput("value")
		value.SetValue(e.Value)
		m.rows = append(m.rows, entryInputs{name: name, value: value})
	}
}

// commit writes the inputs back to the edit form.
func (m *FormModel) commit() {
	_ = m.services.Form.Update(func(draft *secrets.Collection) error {
		draft.SetPath(secrets.Path(strings.TrimSpace(m.path.Value())))
		for i, row := range m.rows {
			if err := draft.RenameEntry(i, row.name.Value()); err != nil {
				return err
			}
			if err := draft.SetValue(i, row.value.Value()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *FormModel) dropFocusedEntry() tea.Cmd {
	if m.focus == 0 {
		return nil
	}
	row, _ := m.rowOf(m.focus)

	m.commit()
	if err := m.services.Form.Update(func(draft *secrets.Collection) error {
		return draft.RemoveEntry(row)
	}); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.reloadRows(m.focus)
	return nil
}

func (m *FormModel) inputCount() int {
	return 1 + 2*len(m.rows)
}

func (m *FormModel) rowOf(focus int) (row int, isValue bool) {
	return (focus - 1) / 2, (focus-1)%2 == 1
}

func (m *FormModel) setFocus(i int) {
	m.input(m.focus, func(in *textinput.Model) { in.Blur() })
	m.focus = i
	m.input(m.focus, func(in *textinput.Model) { in.Focus() })
}

func (m *FormModel) input(i int, fn func(in *textinput.Model)) {
	switch {
	case i == 0:
		fn(&m.path)
	case i > 0 && i < m.inputCount():
		row, isValue := m.rowOf(i)
		if isValue {
			fn(&m.rows[row].value)
		} else {
			fn(&m.rows[row].name)
		}
	}
}

func (m *FormModel) cmdSave() tea.Cmd {
	ctx := m.ctx
	mutations := m.services.Mutations
	path := m.services.Form.Draft().Path()

	return func() tea.Msg {
		return mutationDoneMsg{kind: mutationSave, path: path, err: mutations.SaveForm(ctx)}
	}
}

func (m *FormModel) cmdDelete(path secrets.Path) tea.Cmd {
	ctx := m.ctx
	mutations := m.services.Mutations

	return func() tea.Msg {
		return mutationDoneMsg{kind: mutationDelete, path: path, err: mutations.Delete(ctx, path)}
	}
}

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = formInputWidth
	return in
}
