// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor holds the admin dashboard's working copy of one section:
// an ordered item list mirrored from the repository, with optimistic
// per-item mutation state driving the UI while saves and deletes are in
// flight.
package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olegiv/osite-go/internal/content"
)

// State is the per-item mutation state. Transitions happen only on request
// start, resolve and reject; there is no queuing of overlapping requests.
type State int

const (
	StateIdle State = iota
	StateSaving
	StateDeleting
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateSaving:
		return "saving"
	case StateDeleting:
		return "deleting"
	default:
		return "idle"
	}
}

// NotDurableWarning is surfaced when a mutation was accepted but the
// backend is absent, so the change will not survive a restart.
const NotDurableWarning = "content backend not configured; changes are not persisted"

// Repository is the slice of content.Repository the editor needs. It is an
// interface so tests can script failures.
type Repository[T content.Item[T], P content.Patch[T]] interface {
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, bool, error)
	Update(ctx context.Context, id string, patch P) (T, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ItemView is one entry of an editor snapshot.
type ItemView[T any] struct {
	Item  T
	State State
}

// Editor mirrors one section's items for an editing session.
//
// Edits apply to the local copy immediately and save in the background;
// each item carries its own state so the rest of the list stays
// interactive. A failed save keeps the optimistic value and surfaces an
// error; a failed delete returns the item to the idle, interactive state.
type Editor[T content.Item[T], P content.Patch[T]] struct {
	repo   Repository[T, P]
	logger *slog.Logger

	mu       sync.Mutex
	items    []T
	states   map[string]State
	creating bool
	errMsg   string
	warning  string

	onChange func()
	wg       sync.WaitGroup
}

// New creates an editor over a section repository. onChange, if non-nil, is
// invoked after every state transition so the UI layer can re-render; it
// must not call back into the editor's mutating methods.
func New[T content.Item[T], P content.Patch[T]](repo Repository[T, P], logger *slog.Logger, onChange func()) *Editor[T, P] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor[T, P]{
		repo:     repo,
		logger:   logger,
		states:   make(map[string]State),
		onChange: onChange,
	}
}

// Load replaces the local mirror with the repository's current items.
func (e *Editor[T, P]) Load(ctx context.Context) error {
	items, err := e.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.items = append([]T(nil), items...)
	e.states = make(map[string]State)
	e.errMsg = ""
	e.mu.Unlock()
	e.notify()
	return nil
}

// Snapshot returns a copy of the current items with their states, plus the
// page-level creating flag.
func (e *Editor[T, P]) Snapshot() ([]ItemView[T], bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	views := make([]ItemView[T], len(e.items))
	for i, item := range e.items {
		views[i] = ItemView[T]{Item: item, State: e.states[item.ItemID()]}
	}
	return views, e.creating
}

// Err returns the last surfaced error message, "" when none.
func (e *Editor[T, P]) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// Warning returns the last durability warning, "" when none.
func (e *Editor[T, P]) Warning() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warning
}

// ClearErr dismisses the error banner.
func (e *Editor[T, P]) ClearErr() {
	e.mu.Lock()
	e.errMsg = ""
	e.mu.Unlock()
	e.notify()
}

// Edit applies the patch to the local copy immediately, marks the item
// saving, and persists in the background. Overlapping edits to the same
// item are not queued or coalesced; each races its own save.
//
// On failure the optimistic value is kept and an error message surfaced.
func (e *Editor[T, P]) Edit(ctx context.Context, id string, patch P) {
	e.mu.Lock()
	i := e.indexLocked(id)
	if i < 0 {
		e.mu.Unlock()
		return
	}
	e.items[i] = patch.Apply(e.items[i]).WithID(id)
	e.states[id] = StateSaving
	e.mu.Unlock()
	e.notify()

	// The save must outlive the triggering request.
	bg := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		_, persisted, err := e.repo.Update(bg, id, patch)

		e.mu.Lock()
		delete(e.states, id)
		if err != nil {
			// The optimistic value stays in place; only the error
			// banner tells the user the save did not stick.
			e.errMsg = "saving failed: " + err.Error()
			e.logger.Warn("item save failed", "id", id, "error", err)
		} else if !persisted {
			e.warning = NotDurableWarning
		}
		e.mu.Unlock()
		e.notify()
	}()
}

// Remove marks the item deleting and removes it once the repository
// confirms. On failure the item returns to the idle, interactive state.
func (e *Editor[T, P]) Remove(ctx context.Context, id string) {
	e.mu.Lock()
	if e.indexLocked(id) < 0 {
		e.mu.Unlock()
		return
	}
	e.states[id] = StateDeleting
	e.mu.Unlock()
	e.notify()

	bg := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		persisted, err := e.repo.Delete(bg, id)

		e.mu.Lock()
		delete(e.states, id)
		if err != nil {
			e.errMsg = "deleting failed: " + err.Error()
			e.logger.Warn("item delete failed", "id", id, "error", err)
		} else {
			if i := e.indexLocked(id); i >= 0 {
				e.items = append(e.items[:i], e.items[i+1:]...)
			}
			if !persisted {
				e.warning = NotDurableWarning
			}
		}
		e.mu.Unlock()
		e.notify()
	}()
}

// Add creates a new item. The item has no local presence yet, so progress
// is tracked with the page-level creating flag rather than per-item state.
// On success the server-assigned item (with its generated ID) is appended;
// on failure the list is left unchanged.
func (e *Editor[T, P]) Add(ctx context.Context, item T) {
	e.mu.Lock()
	e.creating = true
	e.mu.Unlock()
	e.notify()

	bg := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		created, persisted, err := e.repo.Create(bg, item)

		e.mu.Lock()
		e.creating = false
		if err != nil {
			e.errMsg = "creating failed: " + err.Error()
			e.logger.Warn("item create failed", "error", err)
		} else {
			e.items = append(e.items, created)
			if !persisted {
				e.warning = NotDurableWarning
			}
		}
		e.mu.Unlock()
		e.notify()
	}()
}

// Wait blocks until every in-flight mutation has resolved.
func (e *Editor[T, P]) Wait() {
	e.wg.Wait()
}

// indexLocked returns the position of id in the local items, -1 if absent.
// Callers must hold e.mu.
func (e *Editor[T, P]) indexLocked(id string) int {
	for i, item := range e.items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

func (e *Editor[T, P]) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}
