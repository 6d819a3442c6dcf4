package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/config"
	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/store"
	"github.com/MKhiriev/vault-browser/models"
)

// Session is the client context: endpoint, token and the secret tree loaded
// with them. It replaces process-wide page state; everything that depends on
// the login goes through one Session.
type Session struct {
	adapter  adapter.VaultAdapter
	repo     store.SessionRepository
	secrets  *store.SecretStore
	sync     *SyncService
	auth     *AuthService
	reporter ErrorReporter
	logger   *logger.Logger

	// address and token from the configuration take priority over the
	// remembered ones.
	address string
	token   string

	mu       sync.Mutex
	ctx      context.Context
	teardown context.CancelFunc
}

func NewSession(
	a adapter.VaultAdapter,
	repo store.SessionRepository,
	secretStore *store.SecretStore,
	syncSvc *SyncService,
	auth *AuthService,
	reporter ErrorReporter,
	adapterCfg config.ClientAdapter,
	log *logger.Logger,
) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		adapter:  a,
		repo:     repo,
		secrets:  secretStore,
		sync:     syncSvc,
		auth:     auth,
		reporter: reporter,
		logger:   log,
		address:  adapterCfg.Address,
		token:    adapterCfg.Token,
		ctx:      ctx,
		teardown: cancel,
	}
}

// Init restores the remembered state and reloads the tree when both an
// endpoint and a token are known. It reports whether the reload was started.
func (s *Session) Init(ctx context.Context) (bool, error) {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}

	changed := false
	if s.address != "" && s.address != state.Endpoint {
		state.Endpoint = s.address
		changed = true
	}
	if s.token != "" && s.token != state.Token {
		state.Token = s.token
		state.DisplayName = ""
		changed = true
	}

	if state.Endpoint != "" {
		if err = s.adapter.SetEndpoint(state.Endpoint); err != nil {
			return false, fmt.Errorf("restore endpoint: %w", err)
		}
	}
	s.adapter.SetToken(state.Token)
	s.auth.Forget()
	s.auth.SetDisplayName(state.DisplayName)

	if changed {
		if err = s.repo.Save(ctx, state); err != nil {
			return false, fmt.Errorf("save session: %w", err)
		}
	}

	if !state.CanAutoLoad() {
		s.logger.Info().Bool("endpoint", state.Endpoint != "").Msg("session restored without auto-load")
		return false, nil
	}

	if _, err = s.sync.ReloadAll(s.context()); err != nil {
		return false, err
	}
	s.logger.Info().Str("endpoint", s.adapter.Endpoint()).Msg("session restored")
	return true, nil
}

// Login switches to endpoint and token, remembers both and reloads the tree.
func (s *Session) Login(ctx context.Context, endpoint, token string) error {
	if err := s.adapter.SetEndpoint(endpoint); err != nil {
		s.reporter.Report(err)
		return err
	}
	s.adapter.SetToken(token)
	s.auth.Forget()

	state := models.SessionState{Endpoint: s.adapter.Endpoint(), Token: s.adapter.Token()}
	if err := s.repo.Save(ctx, state); err != nil {
		s.logger.Err(err).Msg("error saving session")
	}

	if _, err := s.sync.ReloadAll(s.context()); err != nil {
		return err
	}
	s.logger.Info().Str("endpoint", state.Endpoint).Msg("logged in")
	return nil
}

// Logout drops the tree, the token and the display name, locally only. The
// endpoint is kept.
func (s *Session) Logout(ctx context.Context) error {
	s.sync.Cancel()
	s.secrets.Clear()
	s.adapter.SetToken("")
	s.auth.Forget()

	if err := s.repo.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// LoggedIn reports whether both an endpoint and a token are set.
func (s *Session) LoggedIn() bool {
	return s.adapter.Endpoint() != "" && s.adapter.Token() != ""
}

func (s *Session) Endpoint() string {
	return s.adapter.Endpoint()
}

func (s *Session) DisplayName() string {
	return s.auth.DisplayName()
}

// Teardown stops every walk started by the session. The session must not
// be used afterwards.
func (s *Session) Teardown() {
	s.sync.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown()
}

func (s *Session) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}
