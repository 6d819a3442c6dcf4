package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/internal/vaulttest"
	"github.com/MKhiriev/vault-browser/models"
)

const testToken = "s.tui"

// ── helpers ───────────────────────────────────────────────────────────────────

// newLoggedInServices wires services against a fake server, logs in and
// waits for the first walk.
func newLoggedInServices(t *testing.T) (*service.ClientServices, *vaulttest.Server) {
	t.Helper()

	srv := vaulttest.New(t, testToken)
	srv.Put("secret/app/db", "user", "alice", "password", "s3cret")
	srv.Put("secret/web", "key", "value")

	cfg := &config.ClientConfig{
		Adapter: config.ClientAdapter{
			Address:        srv.URL,
			Token:          testToken,
			RequestTimeout: 5 * time.Second,
			Driver:         config.DriverResty,
		},
		Sync:    config.ClientSync{RootPath: config.DefaultRootPath},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "tui.db")}},
	}

	a, err := adapter.NewVaultAdapter(cfg.Adapter, logger.Nop())
	require.NoError(t, err)
	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services := service.NewClientServices(a, storages, cfg, logger.Nop())
	t.Cleanup(services.Session.Teardown)

	loaded, err := services.Session.Init(context.Background())
	require.NoError(t, err)
	require.True(t, loaded)
	waitPopulated(t, services.Secrets)

	return services, srv
}

func waitPopulated(t *testing.T, secretStore *store.SecretStore) {
	t.Helper()
	require.Eventually(t, func() bool {
		return secretStore.State() == store.StatePopulated
	}, 5*time.Second, 10*time.Millisecond)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// typeText feeds s to m one rune at a time.
func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// run executes cmd and returns its message, or nil.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func requireNavigate(t *testing.T, cmd tea.Cmd, page string) NavigateTo {
	t.Helper()
	nav, ok := run(cmd).(NavigateTo)
	require.True(t, ok, "expected NavigateTo")
	assert.Equal(t, page, nav.Page)
	return nav
}

// ── view helpers ─────────────────────────────────────────────────────────────

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "••••••••••", maskSecret("password", false))
	assert.Equal(t, "password", maskSecret("password", true))
	assert.Equal(t, "", maskSecret("", false))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", fitText("short", 10))
	assert.Equal(t, "secret/...", fitText("secret/very/long/path", 10))
	assert.Equal(t, "sec", fitText("secret", 3))
	assert.Equal(t, "ключ", fitText("ключ", 4))
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "never expires", formatTTL(0))
	assert.Equal(t, "1h0m0s", formatTTL(3600))
}

func TestRenderBuildInfoWindow(t *testing.T) {
	out := renderBuildInfoWindow(models.NewAppBuildInfo("v1.2.3", "", "abc123"))
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "abc123")
}

func TestHumanizeError(t *testing.T) {
	assert.Empty(t, humanizeError(nil))
	assert.Equal(t, msgServerUnavailable, humanizeError(plainError("dial tcp 127.0.0.1:1: connection refused")))
	assert.Equal(t, service.FormatError(service.ErrNotLoggedIn).Summary, humanizeError(service.ErrNotLoggedIn))
}

type plainError string

func (e plainError) Error() string { return string(e) }

// ── watcher ──────────────────────────────────────────────────────────────────

func TestWatcher_CoalescesStoreEvents(t *testing.T) {
	secretStore := store.NewSecretStore()
	sink := service.NewErrorSink(logger.Nop())
	w := newWatcher(secretStore, sink)
	defer w.close()

	gen := secretStore.Reset()
	secretStore.Append(gen, secrets.New("secret/a"))
	secretStore.Complete(gen)

	assert.Equal(t, storeChangedMsg{}, run(w.waitForStore()))
	select {
	case <-w.changed:
		t.Fatal("events were not coalesced")
	default:
	}
}

func TestWatcher_ForwardsErrors(t *testing.T) {
	secretStore := store.NewSecretStore()
	sink := service.NewErrorSink(logger.Nop())
	w := newWatcher(secretStore, sink)
	defer w.close()

	sink.Report(service.ErrNotLoggedIn)

	msg, ok := run(w.waitForError()).(errorReportedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.report.Err, service.ErrNotLoggedIn)
}

func TestWatcher_CloseReleasesPendingCommands(t *testing.T) {
	w := newWatcher(store.NewSecretStore(), service.NewErrorSink(logger.Nop()))

	results := make(chan tea.Msg, 2)
	go func() { results <- run(w.waitForStore()) }()
	go func() { results <- run(w.waitForError()) }()

	w.close()
	w.close()

	for range 2 {
		select {
		case msg := <-results:
			assert.Nil(t, msg)
		case <-time.After(time.Second):
			t.Fatal("command still blocked after close")
		}
	}
}

func TestWatcher_CloseUnsubscribes(t *testing.T) {
	secretStore := store.NewSecretStore()
	sink := service.NewErrorSink(logger.Nop())
	w := newWatcher(secretStore, sink)
	w.close()

	secretStore.Reset()
	sink.Report(service.ErrNotLoggedIn)

	assert.Empty(t, w.changed)
	assert.Empty(t, w.errs)
}
