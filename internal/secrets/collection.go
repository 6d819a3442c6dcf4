// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package secrets

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/vault-browser/models"
)

// Entry is one name/value pair of a [Collection].
type Entry struct {
	Name  string
	Value string
}

// Collection is the ordered set of entries stored at a leaf path.
type Collection struct {
	path    Path
	entries []Entry
}

// New returns an empty collection at path.
func New(path Path) *Collection {
	return &Collection{path: path}
}

// FromServerPayload builds a collection from the data object of a read
// response. The lease_duration key is dropped and payload order is kept.
// Non-string values are held as their compact JSON text.
func FromServerPayload(path Path, payload *models.SecretData) *Collection {
	c := New(path)
	if payload == nil {
		return c
	}

	c.entries = make([]Entry, 0, payload.Len())
	for pair := payload.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == models.LeaseDurationKey {
			continue
		}
		c.entries = append(c.entries, Entry{Name: pair.Key, Value: valueText(pair.Value)})
	}

	return c
}

func valueText(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(b)
	}
}

// Path returns the leaf path of the collection.
func (c *Collection) Path() Path {
	return c.path
}

// SetPath changes the leaf path. Used by the edit form for new secrets.
func (c *Collection) SetPath(p Path) {
	c.path = p
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in order.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the entry at i.
func (c *Collection) Entry(i int) (Entry, error) {
	if err := c.checkIndex(i); err != nil {
		return Entry{}, err
	}
	return c.entries[i], nil
}

// EntryID derives the identifier of entry i: path + "/" + name. It is
// computed on every call so renames are reflected immediately.
func (c *Collection) EntryID(i int) (string, error) {
	if err := c.checkIndex(i); err != nil {
		return "", err
	}
	return string(c.path) + Separator + c.entries[i].Name, nil
}

// AddEntry appends a new entry.
func (c *Collection) AddEntry(name, value string) {
	c.entries = append(c.entries, Entry{Name: name, Value: value})
}

// RemoveEntry deletes entry i, shifting the rest down.
func (c *Collection) RemoveEntry(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return nil
}

// RenameEntry sets the name of entry i.
func (c *Collection) RenameEntry(i int, name string) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.entries[i].Name = name
	return nil
}

// SetValue sets the value of entry i.
func (c *Collection) SetValue(i int, value string) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.entries[i].Value = value
	return nil
}

// ToWirePayload returns the name to value mapping sent on writes. Entries
// sharing a name collapse to the last value at the first position.
func (c *Collection) ToWirePayload() *models.SecretData {
	data := models.NewSecretData()
	for _, e := range c.entries {
		data.Set(e.Name, e.Value)
	}
	return data
}

// Edit returns an independent copy for editing. It round-trips through the
// wire payload, so it looks exactly like a fresh read of the same data.
func (c *Collection) Edit() *Collection {
	return FromServerPayload(c.path, c.ToWirePayload())
}

// Clone returns a deep copy that keeps duplicate and empty names, unlike
// [Collection.Edit]. Used to hand out snapshots of a draft being edited.
func (c *Collection) Clone() *Collection {
	return &Collection{path: c.path, entries: c.Entries()}
}

func (c *Collection) checkIndex(i int) error {
	if i < 0 || i >= len(c.entries) {
		return fmt.Errorf("%w: %d of %d", ErrEntryOutOfRange, i, len(c.entries))
	}
	return nil
}
