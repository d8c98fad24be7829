// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/olegiv/osite-go/internal/util"
)

// Item is the capability every section entry must satisfy: a unique string
// ID, a way to assign one, and the string the ID is derived from. The type
// parameter is the implementing type itself so WithID stays fully typed.
type Item[T any] interface {
	ItemID() string
	WithID(id string) T
	SlugSource() string
}

// Patch is a typed partial update: Apply merges the set fields onto an item
// and returns the result, leaving unset fields untouched.
type Patch[T any] interface {
	Apply(T) T
}

// SectionConfig binds a repository to one named section of the document.
type SectionConfig[T Item[T]] struct {
	// Name is the section key, used in errors and logging.
	Name string

	// Lookup returns the section within a document, nil when the key is
	// absent. Assign installs a section into a document.
	Lookup func(*Document) *Section[T]
	Assign func(*Document, *Section[T])

	// Default returns the bundled default section, substituted whenever
	// the loaded document is missing the section key entirely.
	Default func() *Section[T]

	// Validate guards creates. Nil means always valid.
	Validate func(T) error

	// GenerateID overrides the default ID generator (slug of the item's
	// SlugSource, UUID when the slug comes out empty).
	GenerateID func(T) string
}

// Repository provides CRUD over one section's item array. Every mutation is
// a full read-modify-write of the document through Store.MutateSection;
// sections are edited independently but stored together.
type Repository[T Item[T], P Patch[T]] struct {
	store *Store
	cfg   SectionConfig[T]
}

// NewRepository creates a repository for one section.
func NewRepository[T Item[T], P Patch[T]](store *Store, cfg SectionConfig[T]) *Repository[T, P] {
	return &Repository[T, P]{store: store, cfg: cfg}
}

// SectionName returns the section key this repository is bound to.
func (r *Repository[T, P]) SectionName() string {
	return r.cfg.Name
}

// Available reports whether the underlying backend is configured.
func (r *Repository[T, P]) Available() bool {
	return r.store.Available()
}

// section resolves the repository's section in doc, substituting the
// bundled default when the key is absent.
func (r *Repository[T, P]) section(doc *Document) *Section[T] {
	if sec := r.cfg.Lookup(doc); sec != nil {
		return sec
	}
	return r.cfg.Default()
}

// GetSection returns the whole section: heading plus items.
func (r *Repository[T, P]) GetSection(ctx context.Context) (*Section[T], error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return r.section(doc), nil
}

// GetAll returns the section's items in display order.
func (r *Repository[T, P]) GetAll(ctx context.Context) ([]T, error) {
	sec, err := r.GetSection(ctx)
	if err != nil {
		return nil, err
	}
	return sec.Items, nil
}

// GetByID returns the item with the given ID, or ErrNotFound.
func (r *Repository[T, P]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T

	items, err := r.GetAll(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.ItemID() == id {
			return item, nil
		}
	}
	return zero, ErrNotFound
}

// generateID picks the item's ID: an explicit caller-supplied ID wins;
// otherwise the slug of the item's SlugSource; otherwise a UUID.
func (r *Repository[T, P]) generateID(item T) string {
	if id := item.ItemID(); id != "" {
		return id
	}
	if r.cfg.GenerateID != nil {
		return r.cfg.GenerateID(item)
	}
	if slug := util.Slugify(item.SlugSource()); slug != "" {
		return slug
	}
	return uuid.NewString()
}

// Create validates the item, assigns its ID and appends it to the section.
// The returned bool reports whether the change was persisted; it is false
// with a nil error when the backend is absent.
func (r *Repository[T, P]) Create(ctx context.Context, item T) (T, bool, error) {
	var zero T

	if r.cfg.Validate != nil {
		if err := r.cfg.Validate(item); err != nil {
			return zero, false, &ValidationError{Section: r.cfg.Name, Message: err.Error()}
		}
	}

	created := item.WithID(r.generateID(item))

	_, persisted, err := r.store.MutateSection(ctx, func(doc *Document) error {
		sec := r.cfg.Lookup(doc)
		if sec == nil {
			sec = r.cfg.Default()
			r.cfg.Assign(doc, sec)
		}
		for _, existing := range sec.Items {
			if existing.ItemID() == created.ItemID() {
				return &ValidationError{
					Section: r.cfg.Name,
					Message: fmt.Sprintf("id %q already exists", created.ItemID()),
				}
			}
		}
		sec.Items = append(sec.Items, created)
		return nil
	})
	if err != nil {
		return zero, false, err
	}
	return created, persisted, nil
}

// Update shallow-merges the patch onto the item with the given ID. Fields
// the patch leaves unset keep their current values. Returns ErrNotFound
// when the ID is absent.
func (r *Repository[T, P]) Update(ctx context.Context, id string, patch P) (T, bool, error) {
	var zero, merged T

	_, persisted, err := r.store.MutateSection(ctx, func(doc *Document) error {
		sec := r.cfg.Lookup(doc)
		if sec == nil {
			sec = r.cfg.Default()
			r.cfg.Assign(doc, sec)
		}
		for i, existing := range sec.Items {
			if existing.ItemID() == id {
				// The ID is identity, never patched.
				merged = patch.Apply(existing).WithID(id)
				sec.Items[i] = merged
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return zero, false, err
	}
	return merged, persisted, nil
}

// Delete removes the item with the given ID. Returns ErrNotFound, without
// performing a write, when the ID is absent; absence is detected by
// comparing the item count before and after filtering.
func (r *Repository[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	_, persisted, err := r.store.MutateSection(ctx, func(doc *Document) error {
		sec := r.cfg.Lookup(doc)
		if sec == nil {
			sec = r.cfg.Default()
			r.cfg.Assign(doc, sec)
		}

		kept := sec.Items[:0:0]
		for _, item := range sec.Items {
			if item.ItemID() != id {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(sec.Items) {
			return ErrNotFound
		}
		sec.Items = kept
		return nil
	})
	if err != nil {
		return false, err
	}
	return persisted, nil
}
