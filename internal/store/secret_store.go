// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/vault-browser/internal/secrets"
)

// State is the lifecycle stage of a [SecretStore].
type State int

const (
	// StateEmpty means nothing was loaded since start or the last Clear.
	StateEmpty State = iota
	// StatePopulating means a walk is filling the store.
	StatePopulating
	// StatePopulated means the last walk finished.
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulating:
		return "populating"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// EventKind tells subscribers what changed.
type EventKind int

const (
	EventReset EventKind = iota
	EventAppended
	EventCompleted
	EventCleared
)

// Event describes one store mutation.
type Event struct {
	Kind       EventKind
	Generation uint64
	// Path is set for EventAppended.
	Path  secrets.Path
	Len   int
	State State
}

// SecretStore is the flat, de-duplicated set of collections fetched by the
// latest walk, kept in arrival order.
//
// Every Reset or Clear starts a new generation. Appends tagged with an older
// generation are dropped, so results of a superseded walk never reach a
// fresh store.
//
// Subscribers are called synchronously after each mutation, one mutation at a
// time and in mutation order. They may read the store but must not mutate it.
type SecretStore struct {
	notifyMu sync.Mutex

	mu          sync.RWMutex
	generation  uint64
	state       State
	collections []*secrets.Collection
	index       map[secrets.Path]int

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(Event)
}

// NewSecretStore returns an empty store.
func NewSecretStore() *SecretStore {
	return &SecretStore{
		index:       make(map[secrets.Path]int),
		subscribers: make(map[int]func(Event)),
	}
}

// Reset empties the store, moves it to [StatePopulating] and returns the
// generation that appends of the new walk must carry.
func (s *SecretStore) Reset() uint64 {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.generation++
	s.collections = nil
	s.index = make(map[secrets.Path]int)
	s.state = StatePopulating
	ev := s.eventLocked(EventReset, "")
	s.mu.Unlock()

	s.notify(ev)
	return ev.Generation
}

// Append adds c for generation gen. A collection with the same path replaces
// the previous one in place. It reports false when gen is stale.
func (s *SecretStore) Append(gen uint64, c *secrets.Collection) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.state == StateEmpty {
		s.mu.Unlock()
		return false
	}

	if i, ok := s.index[c.Path()]; ok {
		s.collections[i] = c
	} else {
		s.index[c.Path()] = len(s.collections)
		s.collections = append(s.collections, c)
	}
	ev := s.eventLocked(EventAppended, c.Path())
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// Complete marks generation gen as fully loaded. It reports false when gen
// is stale or the store is not populating.
func (s *SecretStore) Complete(gen uint64) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.state != StatePopulating {
		s.mu.Unlock()
		return false
	}
	s.state = StatePopulated
	ev := s.eventLocked(EventCompleted, "")
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// Clear empties the store and returns it to [StateEmpty]. Pending appends of
// any walk are dropped afterwards.
func (s *SecretStore) Clear() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.generation++
	s.collections = nil
	s.index = make(map[secrets.Path]int)
	s.state = StateEmpty
	ev := s.eventLocked(EventCleared, "")
	s.mu.Unlock()

	s.notify(ev)
}

// Snapshot returns the collections in arrival order.
func (s *SecretStore) Snapshot() []*secrets.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*secrets.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// Sorted returns the collections ordered by path.
func (s *SecretStore) Sorted() []*secrets.Collection {
	out := s.Snapshot()
	slices.SortStableFunc(out, func(a, b *secrets.Collection) int {
		return strings.Compare(a.Path().String(), b.Path().String())
	})
	return out
}

// Lookup returns the collection stored at path.
func (s *SecretStore) Lookup(path secrets.Path) (*secrets.Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[path]
	if !ok {
		return nil, false
	}
	return s.collections[i], true
}

// Len returns the number of collections.
func (s *SecretStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections)
}

// State returns the lifecycle stage.
func (s *SecretStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Generation returns the current generation.
func (s *SecretStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Subscribe registers fn for every subsequent mutation and returns a function
// that removes it.
func (s *SecretStore) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
		})
	}
}

func (s *SecretStore) eventLocked(kind EventKind, path secrets.Path) Event {
	return Event{
		Kind:       kind,
		Generation: s.generation,
		Path:       path,
		Len:        len(s.collections),
		State:      s.state,
	}
}

// notify must be called with notifyMu held.
func (s *SecretStore) notify(ev Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
