package tui

import (
	"github.com/MKhiriev/vault-browser/internal/secrets"
	"github.com/MKhiriev/vault-browser/internal/service"
	"github.com/MKhiriev/vault-browser/models"
)

// Page names.
const (
	pageLogin  = "login"
	pageList   = "list"
	pageDetail = "detail"
	pageForm   = "form"
	pageHealth = "health"
	pageToken  = "token"
)

// NavigateTo switches the active page. Payload, if set, is delivered to the
// new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload any
}

// storeChangedMsg tells every page showing secrets to re-read the store.
type storeChangedMsg struct{}

// errorReportedMsg carries a report from the error sink to the overlay.
type errorReportedMsg struct {
	report service.ErrorReport
}

type loginDoneMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

type mutationKind int

const (
	mutationSave mutationKind = iota
	mutationDelete
)

type mutationDoneMsg struct {
	kind mutationKind
	path secrets.Path
	err  error
}

type reloadStartedMsg struct {
	err error
}

type healthLoadedMsg struct {
	payload string
	err     error
}

type tokenLoadedMsg struct {
	info models.TokenInfo
	err  error
}

// openDetailMsg opens the detail page for a path.
type openDetailMsg struct {
	path secrets.Path
}

// openFormMsg reloads the form page from the edit form draft.
type openFormMsg struct{}

type copiedMsg struct {
	what string
	err  error
}

type clearStatusMsg struct{}
