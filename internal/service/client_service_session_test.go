package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/mock"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/internal/vaulttest"
	"github.com/MKhiriev/vault-browser/models"
)

// servicesWithConfig wires services whose configuration carries address and
// token, on top of the given storages.
func servicesWithConfig(t *testing.T, storages *store.ClientStorages, address, token string) *ClientServices {
	t.Helper()

	svc := NewClientServices(newTestAdapter(t, address, token), storages, newTestConfig(address, token), logger.Nop())
	t.Cleanup(svc.Session.Teardown)
	return svc
}

// ── Init ──────────────────────────────────────────────────────────────────────

func TestSession_InitFirstRun(t *testing.T) {
	svc, srv := newTestServices(t)

	loaded, err := svc.Session.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.False(t, svc.Session.LoggedIn())
	assert.Equal(t, store.StateEmpty, svc.Secrets.State())
	assert.Empty(t, srv.Requests())
}

func TestSession_InitFromConfig(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/a", "k", "v")
	storages := newTestStorages(t)

	svc := servicesWithConfig(t, storages, srv.URL, testToken)

	loaded, err := svc.Session.Init(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	waitPopulated(t, svc.Secrets)
	assert.Equal(t, []string{"secret/a"}, storedPaths(svc.Secrets))

	state, err := storages.SessionRepository.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL, state.Endpoint)
	assert.Equal(t, testToken, state.Token)
}

func TestSession_InitFromRememberedState(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/a", "k", "v")
	storages := newTestStorages(t)
	require.NoError(t, storages.SessionRepository.Save(context.Background(), models.SessionState{
		Endpoint:    srv.URL,
		Token:       testToken,
		DisplayName: "remembered",
	}))

	svc := servicesWithConfig(t, storages, "", "")

	loaded, err := svc.Session.Init(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "remembered", svc.Session.DisplayName())
	assert.Equal(t, srv.URL, svc.Session.Endpoint())

	waitPopulated(t, svc.Secrets)
	assert.Zero(t, srv.CountRequests("GET auth/token/lookup-self"))
}

func TestSession_InitConfigTokenReplacesRememberedOne(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.SetDisplayName("token-fresh")
	storages := newTestStorages(t)
	require.NoError(t, storages.SessionRepository.Save(context.Background(), models.SessionState{
		Endpoint:    srv.URL,
		Token:       "s.old",
		DisplayName: "stale",
	}))

	svc := servicesWithConfig(t, storages, "", testToken)

	loaded, err := svc.Session.Init(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	require.Eventually(t, func() bool {
		return svc.Session.DisplayName() == "token-fresh"
	}, waitTimeout, waitTick)
}

func TestSession_InitEndpointOnly(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	storages := newTestStorages(t)
	require.NoError(t, storages.SessionRepository.Save(context.Background(), models.SessionState{Endpoint: srv.URL}))

	svc := servicesWithConfig(t, storages, "", "")

	loaded, err := svc.Session.Init(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, srv.URL, svc.Session.Endpoint())
	assert.Empty(t, srv.Requests())
}

func TestSession_InitLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(models.SessionState{}, assert.AnError)

	a := newTestAdapter(t, "", "")
	secretStore := store.NewSecretStore()
	auth := NewAuthService(a, repo, logger.Nop())
	sink := NewErrorSink(logger.Nop())
	syncSvc := NewSyncService(a, secretStore, auth, sink, "secret/", logger.Nop())
	session := NewSession(a, repo, secretStore, syncSvc, auth, sink, newTestConfig("", "").Adapter, logger.Nop())
	defer session.Teardown()

	_, err := session.Init(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

// ── Login / Logout ───────────────────────────────────────────────────────────

func TestSession_LoginReloadsAndPersists(t *testing.T) {
	svc, srv := newTestServices(t)
	srv.Put("secret/x/y", "k", "v")

	require.NoError(t, svc.Session.Login(context.Background(), srv.URL, testToken))
	assert.True(t, svc.Session.LoggedIn())

	waitPopulated(t, svc.Secrets)
	assert.Equal(t, []string{"secret/x/y"}, storedPaths(svc.Secrets))

	require.Eventually(t, func() bool {
		return svc.Session.DisplayName() == "token-test"
	}, waitTimeout, waitTick)
}

func TestSession_LoginInvalidEndpoint(t *testing.T) {
	svc, _ := newTestServices(t)

	err := svc.Session.Login(context.Background(), "   ", testToken)
	assert.ErrorIs(t, err, adapter.ErrInvalidEndpoint)
	assert.False(t, svc.Session.LoggedIn())

	_, ok := svc.Errors.Last()
	assert.True(t, ok)
}

func TestSession_LoginWithoutToken(t *testing.T) {
	svc, srv := newTestServices(t)

	err := svc.Session.Login(context.Background(), srv.URL, "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, srv.Requests())
}

func TestSession_Logout(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/a", "k", "v")
	storages := newTestStorages(t)
	svc := servicesWithConfig(t, storages, "", "")

	require.NoError(t, svc.Session.Login(context.Background(), srv.URL, testToken))
	waitPopulated(t, svc.Secrets)
	require.Eventually(t, func() bool {
		return svc.Session.DisplayName() != ""
	}, waitTimeout, waitTick)
	before := len(srv.Requests())

	require.NoError(t, svc.Session.Logout(context.Background()))

	assert.False(t, svc.Session.LoggedIn())
	assert.Equal(t, srv.URL, svc.Session.Endpoint())
	assert.Empty(t, svc.Session.DisplayName())
	assert.Equal(t, store.StateEmpty, svc.Secrets.State())
	assert.Zero(t, svc.Secrets.Len())
	assert.Len(t, srv.Requests(), before)

	state, err := storages.SessionRepository.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL, state.Endpoint)
	assert.Empty(t, state.Token)
	assert.Empty(t, state.DisplayName)
}
