// Package board implements the shared list board: two ordered
// partitions (todo/done) of category-scoped items and the transition
// rule applied when an item is moved between them.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

// ErrEmptyTitle is returned when an add or edit is attempted with a
// title that is blank after trimming. No store call is made.
var ErrEmptyTitle = errors.New("title is empty")

// ErrUnknownItem is returned when an operation references an item the
// board does not hold.
var ErrUnknownItem = errors.New("unknown item")

// ItemStore is the slice of the storage contract the board needs.
// Both the SQLite store and the remote client satisfy it.
type ItemStore interface {
	ListItems(ctx context.Context, f store.ItemFilter) ([]model.Item, error)
	CreateItem(ctx context.Context, title, category string) (*model.Item, error)
	PatchItem(ctx context.Context, id string, patch store.ItemPatch) (*model.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Drag is a snapshot of the item being dragged. The overlay renders
// the snapshot, not the live record, so a mid-drag refresh cannot
// change what the user is holding.
type Drag struct {
	ID    string
	Title string
}

// Board projects one category's items into todo/done partitions and
// applies mutations through the store.
type Board struct {
	store    ItemStore
	category string
	items    []model.Item // newest first
	drag     *Drag
}

// New creates a board for the given category. Call Refresh before
// reading partitions.
func New(s ItemStore, category string) (*Board, error) {
	if !model.ValidCategories[category] {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	return &Board{store: s, category: category}, nil
}

// Category returns the board's category.
func (b *Board) Category() string {
	return b.category
}

// Refresh replaces the local projection with the store's view.
func (b *Board) Refresh(ctx context.Context) error {
	items, err := b.store.ListItems(ctx, store.ItemFilter{Category: b.category})
	if err != nil {
		return fmt.Errorf("refresh board: %w", err)
	}
	b.items = items
	return nil
}

// Partition returns the items currently in the given status, in cache
// order (most recent first). Position within a partition is not
// persisted.
func (b *Board) Partition(status string) []model.Item {
	var out []model.Item
	for _, it := range b.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the cached item with the given id.
func (b *Board) Find(id string) (model.Item, bool) {
	for _, it := range b.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Add creates a todo item and prepends it to the local projection.
func (b *Board) Add(ctx context.Context, title string) (*model.Item, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	it, err := b.store.CreateItem(ctx, title, b.category)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	b.items = append([]model.Item{*it}, b.items...)
	return it, nil
}

// Edit updates an item's title and replaces the cached record with
// the store's returned copy.
func (b *Board) Edit(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if _, ok := b.Find(id); !ok {
		return ErrUnknownItem
	}
	updated, err := b.store.PatchItem(ctx, id, store.ItemPatch{Title: &title})
	if err != nil {
		return fmt.Errorf("edit item: %w", err)
	}
	b.replace(*updated)
	return nil
}

// Move transfers an item to the target partition. Moving an item to
// the partition it is already in is a no-op: no store call is issued.
// Otherwise status is updated with a single patch and the projection
// is refreshed.
func (b *Board) Move(ctx context.Context, id, target string) error {
	if !model.ValidStatuses[target] {
		return fmt.Errorf("invalid partition %q", target)
	}
	it, ok := b.Find(id)
	if !ok {
		return ErrUnknownItem
	}
	if it.Status == target {
		return nil
	}
	if _, err := b.store.PatchItem(ctx, id, store.ItemPatch{Status: &target}); err != nil {
		return fmt.Errorf("move item: %w", err)
	}
	return b.Refresh(ctx)
}

// Remove deletes the item from the store and the local projection.
func (b *Board) Remove(ctx context.Context, id string) error {
	if _, ok := b.Find(id); !ok {
		return ErrUnknownItem
	}
	if err := b.store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	kept := b.items[:0]
	for _, it := range b.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	b.items = kept
	return nil
}

// Grab starts a drag, snapshotting the item's title.
func (b *Board) Grab(id string) (Drag, bool) {
	it, ok := b.Find(id)
	if !ok {
		return Drag{}, false
	}
	b.drag = &Drag{ID: it.ID, Title: it.Title}
	return *b.drag, true
}

// Dragging returns the current drag snapshot, if any.
func (b *Board) Dragging() (Drag, bool) {
	if b.drag == nil {
		return Drag{}, false
	}
	return *b.drag, true
}

// Drop releases the drag over the given partition, applying the move
// rule. Dropping on the item's own partition does nothing.
func (b *Board) Drop(ctx context.Context, target string) error {
	if b.drag == nil {
		return nil
	}
	id := b.drag.ID
	b.drag = nil
	return b.Move(ctx, id, target)
}

// Release abandons the drag without moving anything.
func (b *Board) Release() {
	b.drag = nil
}

func (b *Board) replace(updated model.Item) {
	for i, it := range b.items {
		if it.ID == updated.ID {
			b.items[i] = updated
			return
		}
	}
}
