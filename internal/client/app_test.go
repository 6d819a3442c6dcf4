package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/internal/vaulttest"
)

const testToken = "s.client"

type fakeUI struct {
	run func(ctx context.Context) error
}

func (f fakeUI) Run(ctx context.Context) error { return f.run(ctx) }

// newTestApp wires an app whose UI returns immediately; tests replace app.ui
// when they need to look inside.
func newTestApp(t *testing.T, address, token string) (*App, *service.ClientServices) {
	t.Helper()

	cfg := &config.ClientConfig{
		Adapter: config.ClientAdapter{
			Address:        address,
			Token:          token,
			RequestTimeout: 5 * time.Second,
			Driver:         config.DriverResty,
		},
		Sync:    config.ClientSync{RootPath: config.DefaultRootPath},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "client.db")}},
	}

	a, err := adapter.NewVaultAdapter(cfg.Adapter, logger.Nop())
	require.NoError(t, err)
	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)
	services := service.NewClientServices(a, storages, cfg, logger.Nop())

	app, err := NewApp(services, storages, fakeUI{run: func(context.Context) error { return nil }}, logger.Nop())
	require.NoError(t, err)
	return app, services
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, nil, fakeUI{}, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunAutoLoadsBeforeUI(t *testing.T) {
	srv := vaulttest.New(t, testToken)
	srv.Put("secret/a", "k", "v")

	var loggedIn bool
	app, services := newTestApp(t, srv.URL, testToken)
	app.ui = fakeUI{run: func(context.Context) error {
		loggedIn = services.Session.LoggedIn()
		require.Eventually(t, func() bool {
			return services.Secrets.State() == store.StatePopulated
		}, 5*time.Second, 10*time.Millisecond)
		return nil
	}}

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, loggedIn)
	assert.Equal(t, 1, services.Secrets.Len())
}

func TestApp_RunWithoutSession(t *testing.T) {
	var called bool
	app, services := newTestApp(t, "", "")
	app.ui = fakeUI{run: func(context.Context) error {
		called = true
		assert.False(t, services.Session.LoggedIn())
		return nil
	}}

	require.NoError(t, app.Run(context.Background()))
	assert.True(t, called)
	assert.Equal(t, store.StateEmpty, services.Secrets.State())
}

func TestApp_RunReturnsUIError(t *testing.T) {
	boom := errors.New("terminal gone")
	app, _ := newTestApp(t, "", "")
	app.ui = fakeUI{run: func(context.Context) error { return boom }}

	err := app.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}
