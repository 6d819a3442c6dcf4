package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/secrets"
)

// MutationCoordinator writes and deletes secrets. A successful mutation
// reloads the whole store and resets the edit form; a failed one is reported
// and changes nothing. Nothing is retried.
type MutationCoordinator struct {
	adapter  adapter.VaultAdapter
	sync     *SyncService
	form     *EditForm
	reporter ErrorReporter
	logger   *logger.Logger
}

func NewMutationCoordinator(a adapter.VaultAdapter, syncSvc *SyncService, form *EditForm, reporter ErrorReporter, log *logger.Logger) *MutationCoordinator {
	return &MutationCoordinator{adapter: a, sync: syncSvc, form: form, reporter: reporter, logger: log}
}

// Save writes c to its path.
func (m *MutationCoordinator) Save(ctx context.Context, c *secrets.Collection) error {
	path := c.Path()
	if path == "" || path.IsDir() {
		err := fmt.Errorf("%w: %q", ErrInvalidSecretPath, path)
		m.reporter.Report(err)
		return err
	}

	if err := m.adapter.Write(ctx, path.String(), c.ToWirePayload()); err != nil {
		m.reporter.Report(err)
		return err
	}
	m.logger.Info().Str("path", path.String()).Int("entries", c.Len()).Msg("secret saved")

	m.succeeded(ctx)
	return nil
}

// SaveForm saves the current draft of the edit form.
func (m *MutationCoordinator) SaveForm(ctx context.Context) error {
	return m.Save(ctx, m.form.Draft())
}

// Delete removes the secret at path.
func (m *MutationCoordinator) Delete(ctx context.Context, path secrets.Path) error {
	if path == "" || path.IsDir() {
		err := fmt.Errorf("%w: %q", ErrInvalidSecretPath, path)
		m.reporter.Report(err)
		return err
	}

	if err := m.adapter.Delete(ctx, path.String()); err != nil {
		m.reporter.Report(err)
		return err
	}
	m.logger.Info().Str("path", path.String()).Msg("secret deleted")

	m.succeeded(ctx)
	return nil
}

func (m *MutationCoordinator) succeeded(ctx context.Context) {
	// the walk must not die with the request context of the mutation
	if _, err := m.sync.ReloadAll(context.WithoutCancel(ctx)); err != nil {
		m.logger.Err(err).Msg("reload after mutation")
	}
	m.form.SetupNew()
}
