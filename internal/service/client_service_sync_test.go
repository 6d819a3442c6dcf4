package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/mock"
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/internal/vaulttest"
)

func newTestSync(t *testing.T, srv *vaulttest.Server, reporter ErrorReporter) (*SyncService, *store.SecretStore) {
	t.Helper()

	a := newTestAdapter(t, srv.URL, testToken)
	secretStore := store.NewSecretStore()
	auth := NewAuthService(a, nil, logger.Nop())
	return NewSyncService(a, secretStore, auth, reporter, "secret/", logger.Nop()), secretStore
}

func TestSyncService_ReloadAllPopulatesStore(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/b", "k", "v")
	srv.Put("secret/a/x", "user", "alice", "pass", "p")

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))

	w, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Same(t, w, syncSvc.Current())

	waitPopulated(t, secretStore)
	assert.Equal(t, []string{"secret/a/x", "secret/b"}, storedPaths(secretStore))

	c, ok := secretStore.Lookup("secret/a/x")
	require.True(t, ok)
	assert.Equal(t, []secrets.Entry{{Name: "user", Value: "alice"}, {Name: "pass", Value: "p"}}, c.Entries())
}

// TestSyncService_StorePopulatedWhenDone verifies the store is complete by
// the time the walk handle reports done.
func TestSyncService_StorePopulatedWhenDone(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/a", "k", "v")
	srv.Put("secret/b/c", "k", "v")

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))
	syncSvc.auth.SetDisplayName("cached")

	w, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)

	select {
	case <-w.Done():
	case <-time.After(waitTimeout):
		t.Fatal("walk did not finish")
	}

	assert.False(t, w.Cancelled())
	assert.Equal(t, store.StatePopulated, secretStore.State())
	assert.Equal(t, []string{"secret/a", "secret/b/c"}, storedPaths(secretStore))
}

func TestSyncService_SupersededWalkDoesNotComplete(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/slow", "k", "v")
	srv.Delay("secret/slow", 300*time.Millisecond)

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))
	syncSvc.auth.SetDisplayName("cached")

	first, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return srv.CountRequests("GET secret/slow") == 1
	}, waitTimeout, waitTick)

	// the replacement stays in flight until the first walk is gone
	second, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)

	<-first.Done()
	assert.True(t, first.Cancelled())
	assert.Equal(t, store.StatePopulating, secretStore.State())

	<-second.Done()
	assert.False(t, second.Cancelled())
	assert.Equal(t, store.StatePopulated, secretStore.State())
	assert.Equal(t, []string{"secret/slow"}, storedPaths(secretStore))
}

func TestSyncService_ReloadAllLooksUpDisplayName(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.SetDisplayName("token-bob")
	srv.Put("secret/a", "k", "v")

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))

	_, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)
	waitPopulated(t, secretStore)

	require.Eventually(t, func() bool {
		return syncSvc.auth.DisplayName() == "token-bob"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSyncService_ReloadAllClearsPreviousContent(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/a", "k", "v")

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))

	_, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)
	waitPopulated(t, secretStore)

	srv.Fail(http.MethodGet, "secret/a", http.StatusForbidden, `{"errors":["permission denied"]}`)
	_, err = syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)
	waitPopulated(t, secretStore)

	assert.Zero(t, secretStore.Len())
}

func TestSyncService_FailuresAreReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mock.NewMockErrorReporter(ctrl)

	srv := vaulttest.New(t, testToken)
	srv.Put("secret/ok", "k", "v")
	srv.Put("secret/denied/x", "k", "v")
	srv.Fail("LIST", "secret/denied/", http.StatusForbidden, `{"errors":["permission denied"]}`)

	reporter.EXPECT().Report(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, adapter.ErrForbidden)
	}).Times(1)

	syncSvc, secretStore := newTestSync(t, srv, reporter)
	syncSvc.auth.SetDisplayName("cached")

	_, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)
	waitPopulated(t, secretStore)

	assert.Equal(t, []string{"secret/ok"}, storedPaths(secretStore))
}

func TestSyncService_NewReloadSupersedesOld(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/slow", "k", "v")
	srv.Delay("secret/slow", 300*time.Millisecond)

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))
	syncSvc.auth.SetDisplayName("cached")

	first, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return srv.CountRequests("GET secret/slow") == 1
	}, 5*time.Second, 5*time.Millisecond)

	srv.Delay("secret/slow", 0)
	second, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Cancelled())
	assert.False(t, second.Cancelled())

	waitPopulated(t, secretStore)
	<-first.Done()
	assert.Equal(t, []string{"secret/slow"}, storedPaths(secretStore))
	assert.Equal(t, 1, secretStore.Len())
}

func TestSyncService_NotLoggedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mock.NewMockErrorReporter(ctrl)
	reporter.EXPECT().Report(ErrNotLoggedIn)

	srv := vaulttest.New(t, testToken)
	a := newTestAdapter(t, srv.URL, "")
	secretStore := store.NewSecretStore()
	syncSvc := NewSyncService(a, secretStore, nil, reporter, "secret/", logger.Nop())

	w, err := syncSvc.ReloadAll(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, w)
	assert.Equal(t, store.StateEmpty, secretStore.State())
	assert.Empty(t, srv.Requests())
}

func TestSyncService_Cancel(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/slow", "k", "v")
	srv.Delay("secret/slow", time.Second)

	syncSvc, secretStore := newTestSync(t, srv, NewErrorSink(logger.Nop()))
	syncSvc.auth.SetDisplayName("cached")

	w, err := syncSvc.ReloadAll(context.Background())
	require.NoError(t, err)

	syncSvc.Cancel()
	assert.Nil(t, syncSvc.Current())

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled walk did not finish")
	}
	assert.Equal(t, store.StatePopulating, secretStore.State())
	assert.Zero(t, secretStore.Len())
}
