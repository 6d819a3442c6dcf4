// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal user interface of the client with
// Bubble Tea. A [RootModel] routes between pages (login, secret list, secret
// detail, edit form, health and token views); every server call runs inside
// a tea.Cmd so Update never blocks.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-browser/internal/logger"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/models"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errors.New("tui: services are nil")
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: log}, nil
}

// Run shows the UI until the user quits or ctx is cancelled. It starts on
// the secret list when the session is logged in, on the login page otherwise.
func (t *TUI) Run(ctx context.Context) error {
	w := newWatcher(t.services.Secrets, t.services.Errors)
	defer w.close()

	start := pageLogin
	if t.services.Session.LoggedIn() {
		start = pageList
	}
	t.logger.Debug().Str("page", start).Msg("starting ui")

	root := NewRootModel(t.pages(ctx), start, w, t.buildInfo)
	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (t *TUI) pages(ctx context.Context) map[string]tea.Model {
	return map[string]tea.Model{
		pageLogin:  NewLoginModel(ctx, t.services.Session),
		pageList:   NewListModel(ctx, t.services),
		pageDetail: NewDetailModel(ctx, t.services),
		pageForm:   NewFormModel(ctx, t.services),
		pageHealth: NewHealthModel(ctx, t.services.Health),
		pageToken:  NewTokenModel(ctx, t.services.Auth),
	}
}
