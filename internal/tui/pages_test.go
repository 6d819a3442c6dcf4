package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/models"
)

// ── list ─────────────────────────────────────────────────────────────────────

func TestListModel_ShowsSortedSecrets(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := NewListModel(context.Background(), services)

	require.Len(t, m.items, 2)
	assert.Equal(t, secrets.Path("secret/app/db"), m.items[0].Path())
	assert.Equal(t, secrets.Path("secret/web"), m.items[1].Path())

	view := m.View()
	assert.Contains(t, view, "secret/app/db")
	assert.Contains(t, view, "populated")
}

func TestListModel_EnterOpensDetail(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := NewListModel(context.Background(), services)

	_, _ = m.Update(keyMsg("down"))
	_, cmd := m.Update(keyMsg("enter"))

	nav := requireNavigate(t, cmd, pageDetail)
	assert.Equal(t, openDetailMsg{path: "secret/web"}, nav.Payload)
}

func TestListModel_NewAndEditSetUpForm(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := NewListModel(context.Background(), services)

	_, cmd := m.Update(keyMsg("e"))
	requireNavigate(t, cmd, pageForm)
	assert.True(t, services.Form.EditMode())
	assert.Equal(t, secrets.Path("secret/app/db"), services.Form.Draft().Path())

	_, cmd = m.Update(keyMsg("n"))
	requireNavigate(t, cmd, pageForm)
	assert.False(t, services.Form.EditMode())
	assert.Equal(t, service.TitleNewSecret, services.Form.Title())
}

func TestListModel_StoreChangeKeepsSelection(t *testing.T) {
	services, srv := newLoggedInServices(t)
	m := NewListModel(context.Background(), services)
	_, _ = m.Update(keyMsg("down"))

	srv.Put("secret/aaa", "k", "v")
	_, err := services.Sync.ReloadAll(context.Background())
	require.NoError(t, err)
	waitPopulated(t, services.Secrets)

	_, _ = m.Update(storeChangedMsg{})
	require.Len(t, m.items, 3)
	c, ok := m.current()
	require.True(t, ok)
	assert.Equal(t, secrets.Path("secret/web"), c.Path())
}

func TestListModel_Reload(t *testing.T) {
	services, srv := newLoggedInServices(t)
	m := NewListModel(context.Background(), services)

	before := srv.CountRequests("LIST secret/")
	_, cmd := m.Update(keyMsg("r"))
	msg, ok := run(cmd).(reloadStartedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	waitPopulated(t, services.Secrets)
	assert.Equal(t, before+1, srv.CountRequests("LIST secret/"))
}

func TestListModel_Logout(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := NewListModel(context.Background(), services)

	_, cmd := m.Update(keyMsg("L"))
	msg, ok := run(cmd).(logoutDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.False(t, services.Session.LoggedIn())
	assert.Zero(t, services.Secrets.Len())
}

// ── detail ───────────────────────────────────────────────────────────────────

func openDetail(t *testing.T, services *service.ClientServices, path secrets.Path) *DetailModel {
	t.Helper()
	m := NewDetailModel(context.Background(), services)
	_, _ = m.Update(openDetailMsg{path: path})
	require.NotNil(t, m.secret)
	return m
}

func TestDetailModel_ValuesMaskedUntilRevealed(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := openDetail(t, services, "secret/app/db")

	assert.NotContains(t, m.View(), "alice")
	assert.NotContains(t, m.View(), "s3cret")

	_, _ = m.Update(keyMsg(" "))
	assert.Contains(t, m.View(), "alice")
	assert.NotContains(t, m.View(), "s3cret")

	_, _ = m.Update(keyMsg("down"))
	_, _ = m.Update(keyMsg(" "))
	assert.Contains(t, m.View(), "s3cret")

	_, _ = m.Update(keyMsg(" "))
	assert.NotContains(t, m.View(), "s3cret")
}

func TestDetailModel_RevealAll(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := openDetail(t, services, "secret/app/db")

	_, _ = m.Update(keyMsg("a"))
	assert.Contains(t, m.View(), "alice")
	assert.Contains(t, m.View(), "s3cret")

	_, _ = m.Update(keyMsg("a"))
	assert.NotContains(t, m.View(), "alice")
}

func TestDetailModel_CopyValueAndName(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := openDetail(t, services, "secret/app/db")

	var copied []string
	clipboardWrite = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { clipboardWrite = defaultClipboardWrite })

	_, _ = m.Update(keyMsg("down"))
	_, cmd := m.Update(keyMsg("c"))
	msg := run(cmd)
	_, _ = m.Update(msg)
	_, cmd = m.Update(keyMsg("C"))
	_, _ = m.Update(run(cmd))

	assert.Equal(t, []string{"s3cret", "password"}, copied)
	assert.Contains(t, m.View(), "name copied")
}

func TestDetailModel_CopyFailure(t *testing.T) {
	services, _ := newLoggedInServices(t)
	m := openDetail(t, services, "secret/web")

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWrite = defaultClipboardWrite })

	_, cmd := m.Update(keyMsg("c"))
	_, _ = m.Update(run(cmd))
	assert.Contains(t, m.errMsg, "no clipboard")
}

func TestDetailModel_DeleteNeedsConfirmation(t *testing.T) {
	services, srv := newLoggedInServices(t)
	m := openDetail(t, services, "secret/web")

	_, cmd := m.Update(keyMsg("d"))
	assert.Nil(t, cmd)
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), `Delete "secret/web"?`)

	_, _ = m.Update(keyMsg("n"))
	assert.Nil(t, m.confirm)
	_, ok := srv.Secret("secret/web")
	assert.True(t, ok)

	_, _ = m.Update(keyMsg("d"))
	_, cmd = m.Update(keyMsg("y"))
	done, ok := run(cmd).(mutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	_, ok = srv.Secret("secret/web")
	assert.False(t, ok)

	_, cmd = m.Update(done)
	requireNavigate(t, cmd, pageList)
}

func TestDetailModel_SecretGoneAfterReload(t *testing.T) {
	services, srv := newLoggedInServices(t)
	m := openDetail(t, services, "secret/web")

	srv.Fail(http.MethodGet, "secret/web", http.StatusNotFound, `{"errors":[]}`)
	_, err := services.Sync.ReloadAll(context.Background())
	require.NoError(t, err)
	waitPopulated(t, services.Secrets)

	_, _ = m.Update(storeChangedMsg{})
	assert.Nil(t, m.secret)
	assert.Contains(t, m.View(), "not in the list anymore")
}

// ── form ─────────────────────────────────────────────────────────────────────

func TestFormModel_NewSecret(t *testing.T) {
	services, srv := newLoggedInServices(t)
	services.Form.SetupNew()

	var m tea.Model = NewFormModel(context.Background(), services)
	assert.Contains(t, m.View(), strings.ToUpper(service.TitleNewSecret))

	m = typeText(m, "team/api")
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "token")
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "abc")

	m, cmd := m.Update(keyMsg("ctrl+s"))
	done, ok := run(cmd).(mutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, secrets.Path("secret/team/api"), done.path)

	data, ok := srv.Secret("secret/team/api")
	require.True(t, ok)
	v, _ := data.Get("token")
	assert.Equal(t, "abc", v)

	_, cmd = m.Update(done)
	requireNavigate(t, cmd, pageList)
	assert.Equal(t, service.TitleNewSecret, services.Form.Title())
}

func TestFormModel_AddAndRemoveEntries(t *testing.T) {
	services, _ := newLoggedInServices(t)
	services.Form.SetupNew()
	m := NewFormModel(context.Background(), services)

	_, _ = m.Update(keyMsg("ctrl+n"))
	require.Len(t, m.rows, 2)
	assert.Equal(t, 3, m.focus)
	assert.Equal(t, 2, services.Form.Draft().Len())

	_, _ = m.Update(keyMsg("ctrl+x"))
	assert.Len(t, m.rows, 1)
	assert.Equal(t, 1, services.Form.Draft().Len())

	m.setFocus(0)
	_, _ = m.Update(keyMsg("ctrl+x"))
	assert.Len(t, m.rows, 1)
}

func TestFormModel_EditKeepsValuesAndSaves(t *testing.T) {
	services, srv := newLoggedInServices(t)
	c, ok := services.Secrets.Lookup("secret/app/db")
	require.True(t, ok)
	services.Form.SetupEdit(c)

	var m tea.Model = NewFormModel(context.Background(), services)
	assert.Contains(t, m.View(), strings.ToUpper(service.TitleEditSecret))

	form := m.(*FormModel)
	require.Len(t, form.rows, 2)
	assert.Equal(t, "alice", form.rows[0].value.Value())

	form.setFocus(2)
	m = typeText(m, "-admin")

	m, cmd := m.Update(keyMsg("ctrl+s"))
	done := run(cmd).(mutationDoneMsg)
	require.NoError(t, done.err)

	data, _ := srv.Secret("secret/app/db")
	v, _ := data.Get("user")
	assert.Equal(t, "alice-admin", v)
	_ = m
}

func TestFormModel_SaveFailureStaysOnForm(t *testing.T) {
	services, srv := newLoggedInServices(t)
	srv.Fail(http.MethodPost, "secret/locked", http.StatusForbidden, `{"errors":["permission denied"]}`)

	services.Form.SetupEdit(secretsCollection("secret/locked", "k", "v"))
	m := NewFormModel(context.Background(), services)

	_, cmd := m.Update(keyMsg("ctrl+s"))
	done := run(cmd).(mutationDoneMsg)
	require.Error(t, done.err)

	_, cmd = m.Update(done)
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.errMsg)
	assert.True(t, services.Form.EditMode())
}

func TestFormModel_DeleteFromEditForm(t *testing.T) {
	services, srv := newLoggedInServices(t)
	c, _ := services.Secrets.Lookup("secret/web")
	services.Form.SetupEdit(c)
	m := NewFormModel(context.Background(), services)

	_, _ = m.Update(keyMsg("ctrl+d"))
	require.NotNil(t, m.confirm)
	_, cmd := m.Update(keyMsg("y"))
	done := run(cmd).(mutationDoneMsg)
	require.NoError(t, done.err)
	assert.Equal(t, mutationDelete, done.kind)

	_, ok := srv.Secret("secret/web")
	assert.False(t, ok)
}

func TestFormModel_DeleteOnlyInEditMode(t *testing.T) {
	services, _ := newLoggedInServices(t)
	services.Form.SetupNew()
	m := NewFormModel(context.Background(), services)

	_, _ = m.Update(keyMsg("ctrl+d"))
	assert.Nil(t, m.confirm)
}

func secretsCollection(path secrets.Path, pairs ...string) *secrets.Collection {
	c := secrets.New(path)
	for i := 0; i+1 < len(pairs); i += 2 {
		c.AddEntry(pairs[i], pairs[i+1])
	}
	return c
}

// ── health / token ───────────────────────────────────────────────────────────

func TestHealthModel_ShowsPayload(t *testing.T) {
	services, srv := newLoggedInServices(t)
	srv.SetHealth(http.StatusTooManyRequests, `{"standby":true}`)

	m := NewHealthModel(context.Background(), services.Health)
	_, _ = m.Update(run(m.Init()))

	assert.Contains(t, m.View(), `"standby": true`)
	assert.Empty(t, m.errMsg)
}

func TestTokenModel_ShowsInfo(t *testing.T) {
	services, srv := newLoggedInServices(t)
	srv.SetDisplayName("token-carol")

	services.Auth.Forget()
	m := NewTokenModel(context.Background(), services.Auth)
	_, _ = m.Update(run(m.Init()))

	assert.Contains(t, m.View(), "token-carol")
}

// ── root ─────────────────────────────────────────────────────────────────────

func newTestRoot(t *testing.T, services *service.ClientServices, start string) RootModel {
	t.Helper()
	w := newWatcher(services.Secrets, services.Errors)
	t.Cleanup(w.close)

	pages := (&TUI{services: services}).pages(context.Background())
	return NewRootModel(pages, start, w, models.NewAppBuildInfo("v1", "", ""))
}

func TestRootModel_Navigate(t *testing.T) {
	services, _ := newLoggedInServices(t)
	r := newTestRoot(t, services, pageList)

	updated, cmd := r.Update(NavigateTo{Page: pageDetail, Payload: openDetailMsg{path: "secret/web"}})
	r = updated.(RootModel)
	assert.Equal(t, pageDetail, r.current)

	updated, _ = r.Update(run(cmd))
	r = updated.(RootModel)
	assert.Contains(t, r.View(), "secret/web")

	updated, _ = r.Update(NavigateTo{Page: "missing"})
	assert.Equal(t, pageDetail, updated.(RootModel).current)
}

func TestRootModel_ErrorOverlay(t *testing.T) {
	services, _ := newLoggedInServices(t)
	r := newTestRoot(t, services, pageList)

	report := service.FormatError(service.ErrInvalidSecretPath)
	updated, _ := r.Update(errorReportedMsg{report: report})
	r = updated.(RootModel)
	require.True(t, r.showError)
	assert.Contains(t, r.View(), "invalid secret path")

	// keys do not reach the page while the overlay is shown
	updated, cmd := r.Update(keyMsg("n"))
	r = updated.(RootModel)
	assert.Nil(t, cmd)

	updated, _ = r.Update(keyMsg("esc"))
	r = updated.(RootModel)
	assert.False(t, r.showError)
}

func TestRootModel_AboutWindow(t *testing.T) {
	services, _ := newLoggedInServices(t)
	r := newTestRoot(t, services, pageList)

	updated, _ := r.Update(keyMsg("v"))
	r = updated.(RootModel)
	assert.Contains(t, r.View(), "ABOUT")

	updated, _ = r.Update(keyMsg("esc"))
	r = updated.(RootModel)
	assert.Contains(t, r.View(), "SECRETS")
}

func TestRootModel_LogoutReturnsToLogin(t *testing.T) {
	services, _ := newLoggedInServices(t)
	r := newTestRoot(t, services, pageList)

	updated, _ := r.Update(logoutDoneMsg{})
	r = updated.(RootModel)
	assert.Equal(t, pageLogin, r.current)
	assert.Contains(t, r.View(), "logged out")
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	services, _ := newLoggedInServices(t)
	r := newTestRoot(t, services, pageLogin)

	_, cmd := r.Update(keyMsg("ctrl+c"))
	assert.Equal(t, tea.QuitMsg{}, run(cmd))
}
