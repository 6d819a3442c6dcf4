package service

import (
	"sync"

	"github.com/MKhiriev/vault-browser/internal/secrets"
)

// Edit form titles.
const (
	TitleNewSecret  = "Add New Secret"
	TitleEditSecret = "Edit Secret"
)

// EditForm holds the draft collection behind the create/edit screen.
type EditForm struct {
	root secrets.Path

	mu       sync.Mutex
	draft    *secrets.Collection
	title    string
	editMode bool
}

// NewEditForm returns a form set up for a new secret under root.
func NewEditForm(root secrets.Path) *EditForm {
	f := &EditForm{root: root}
	f.SetupNew()
	return f
}

// SetupNew resets the form to a new secret at the root path with one empty
// entry.
func (f *EditForm) SetupNew() {
	draft := secrets.New(f.root)
	draft.AddEntry("", "")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.title = TitleNewSecret
	f.editMode = false
}

// SetupEdit loads an independent copy of c into the form.
func (f *EditForm) SetupEdit(c *secrets.Collection) {
	draft := c.Edit()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.title = TitleEditSecret
	f.editMode = true
}

// Title returns the heading of the form.
func (f *EditForm) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

// EditMode reports whether the form edits an existing secret.
func (f *EditForm) EditMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editMode
}

// Draft returns a copy of the draft.
func (f *EditForm) Draft() *secrets.Collection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

// Update applies fn to the draft.
func (f *EditForm) Update(fn func(draft *secrets.Collection) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.draft)
}

// AddEmptyEntry appends an entry with empty name and value.
func (f *EditForm) AddEmptyEntry() {
	_ = f.Update(func(draft *secrets.Collection) error {
		draft.AddEntry("", "")
		return nil
	})
}
