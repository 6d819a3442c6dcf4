package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/models"
)

// RootModel is a TUI router:
// 1) keeps the active page
// 2) handles global keys (ctrl+c, about window)
// 3) handles NavigateTo messages
// 4) shows reported errors over any page
// 5) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]tea.Model
	current string
	watcher *watcher

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	showError    bool
	errorOverlay errorOverlayModel
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, w *watcher, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   startPage,
		watcher:   w,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{r.watcher.waitForStore(), r.watcher.waitForError()}
	if page, ok := r.pages[r.current]; ok {
		cmds = append(cmds, page.Init())
	}
	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "esc", "enter":
			if r.showError {
				r.showError = false
				return r, nil
			}
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		case "v":
			if r.current == pageList && !r.showError {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		}

		if r.showError || r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		page, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}

		r.showBuildInfo = false
		r.current = msg.Page

		if msg.Payload != nil {
			payload := msg.Payload
			return r, func() tea.Msg { return payload }
		}
		return r, page.Init()

	case storeChangedMsg:
		// every page showing secrets must see the change, not only the
		// active one
		var cmds []tea.Cmd
		for _, name := range []string{pageList, pageDetail} {
			if name == r.current {
				continue
			}
			if page, ok := r.pages[name]; ok {
				updated, cmd := page.Update(msg)
				r.pages[name] = updated
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, r.updateCurrent(msg), r.watcher.waitForStore())
		return r, tea.Batch(cmds...)

	case errorReportedMsg:
		r.showError = true
		r.errorOverlay = errorOverlayModel{report: msg.report}
		return r, r.watcher.waitForError()

	case logoutDoneMsg:
		r.current = pageLogin
		return r, r.updateCurrent(msg)
	}

	return r, r.updateCurrent(msg)
}

func (r RootModel) updateCurrent(msg tea.Msg) tea.Cmd {
	page, ok := r.pages[r.current]
	if !ok {
		return nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated
	return cmd
}

func (r RootModel) View() string {
	if r.showError {
		return r.errorOverlay.View()
	}
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	page, ok := r.pages[r.current]
	if !ok {
		return renderPage(appName, "", "")
	}
	return page.View()
}
