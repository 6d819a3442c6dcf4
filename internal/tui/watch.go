package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/internal/store"
)

// errorQueueSize bounds reports waiting for the UI; later ones are dropped
// while the queue is full.
const errorQueueSize = 16

// watcher turns store and error sink callbacks into Bubble Tea messages.
// Store events coalesce: the UI re-reads the whole store anyway.
type watcher struct {
	changed chan struct{}
	errs    chan service.ErrorReport
	done    chan struct{}

	closeOnce   sync.Once
	unsubscribe []func()
}

func newWatcher(secretStore *store.SecretStore, sink *service.ErrorSink) *watcher {
	w := &watcher{
		changed: make(chan struct{}, 1),
		errs:    make(chan service.ErrorReport, errorQueueSize),
		done:    make(chan struct{}),
	}

	w.unsubscribe = append(w.unsubscribe,
		secretStore.Subscribe(func(store.Event) {
			select {
			case w.changed <- struct{}{}:
			default:
			}
		}),
		sink.Subscribe(func(report service.ErrorReport) {
			select {
			case w.errs <- report:
			default:
			}
		}),
	)

	return w
}

// waitForStore returns nil once the watcher is closed; Bubble Tea drops nil
// messages.
func (w *watcher) waitForStore() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changed:
			return storeChangedMsg{}
		case <-w.done:
			return nil
		}
	}
}

func (w *watcher) waitForError() tea.Cmd {
	return func() tea.Msg {
		select {
		case report := <-w.errs:
			return errorReportedMsg{report: report}
		case <-w.done:
			return nil
		}
	}
}

func (w *watcher) close() {
	w.closeOnce.Do(func() {
		for _, unsubscribe := range w.unsubscribe {
			unsubscribe()
		}
		close(w.done)
	})
}
