package board

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jasperquin/heartlog/internal/model"
	"github.com/jasperquin/heartlog/internal/store"
)

// fakeStore is an in-memory ItemStore that counts calls.
type fakeStore struct {
	items   []model.Item
	nextID  int
	patches int
	failing bool
}

var errStoreDown = errors.New("store down")

func (f *fakeStore) ListItems(ctx context.Context, filter store.ItemFilter) ([]model.Item, error) {
	if f.failing {
		return nil, errStoreDown
	}
	var out []model.Item
	for i := len(f.items) - 1; i >= 0; i-- {
		it := f.items[i]
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (f *fakeStore) CreateItem(ctx context.Context, title, category string) (*model.Item, error) {
	if f.failing {
		return nil, errStoreDown
	}
	f.nextID++
	it := model.Item{
		ID:        fmt.Sprintf("item-%d", f.nextID),
		Title:     title,
		Category:  category,
		Status:    model.StatusTodo,
		CreatedAt: time.Now(),
	}
	f.items = append(f.items, it)
	return &it, nil
}

func (f *fakeStore) PatchItem(ctx context.Context, id string, patch store.ItemPatch) (*model.Item, error) {
	if f.failing {
		return nil, errStoreDown
	}
	f.patches++
	for i := range f.items {
		if f.items[i].ID == id {
			if patch.Title != nil {
				f.items[i].Title = *patch.Title
			}
			if patch.Status != nil {
				f.items[i].Status = *patch.Status
			}
			it := f.items[i]
			return &it, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) DeleteItem(ctx context.Context, id string) error {
	if f.failing {
		return errStoreDown
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func newTestBoard(t *testing.T) (*Board, *fakeStore) {
	t.Helper()
	fs := &fakeStore{}
	b, err := New(fs, "movies")
	if err != nil {
		t.Fatalf("new board: %v", err)
	}
	return b, fs
}

func TestNewRejectsUnknownCategory(t *testing.T) {
	if _, err := New(&fakeStore{}, "snacks"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestAddPrependsToTodoPartition(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	if _, err := b.Add(ctx, "Watch Inception"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := b.Add(ctx, "Watch Arrival"); err != nil {
		t.Fatalf("add: %v", err)
	}

	todo := b.Partition(model.StatusTodo)
	if len(todo) != 2 {
		t.Fatalf("todo partition = %d items, want 2", len(todo))
	}
	if todo[0].Title != "Watch Arrival" {
		t.Errorf("most recent first: got %q", todo[0].Title)
	}
	if done := b.Partition(model.StatusDone); len(done) != 0 {
		t.Errorf("done partition = %d items, want 0", len(done))
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	b, fs := newTestBoard(t)

	_, err := b.Add(ctx, "   ")
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
	if len(fs.items) != 0 {
		t.Error("blank add must not reach the store")
	}
}

func TestMoveBetweenPartitions(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")

	if err := b.Move(ctx, it.ID, model.StatusDone); err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(b.Partition(model.StatusDone)) != 1 {
		t.Error("item should be in done partition")
	}
	if len(b.Partition(model.StatusTodo)) != 0 {
		t.Error("todo partition should be empty")
	}
}

func TestMoveSamePartitionIsNoOp(t *testing.T) {
	ctx := context.Background()
	b, fs := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")

	if err := b.Move(ctx, it.ID, model.StatusTodo); err != nil {
		t.Fatalf("move: %v", err)
	}
	if fs.patches != 0 {
		t.Errorf("same-partition move issued %d store calls, want 0", fs.patches)
	}
}

func TestMoveRoundTripRestoresStatus(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")

	if err := b.Move(ctx, it.ID, model.StatusDone); err != nil {
		t.Fatalf("move to done: %v", err)
	}
	if err := b.Move(ctx, it.ID, model.StatusTodo); err != nil {
		t.Fatalf("move back: %v", err)
	}

	got, ok := b.Find(it.ID)
	if !ok {
		t.Fatal("item vanished")
	}
	if got.Status != model.StatusTodo {
		t.Errorf("status = %q, want todo after round trip", got.Status)
	}
}

func TestMoveUnknownItem(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	if err := b.Move(ctx, "missing", model.StatusDone); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("err = %v, want ErrUnknownItem", err)
	}
}

func TestEditReplacesCachedRecord(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inceptoin")
	if err := b.Edit(ctx, it.ID, "Watch Inception"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got, _ := b.Find(it.ID)
	if got.Title != "Watch Inception" {
		t.Errorf("title = %q, want corrected title", got.Title)
	}
}

func TestEditRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	b, fs := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")
	if err := b.Edit(ctx, it.ID, ""); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
	if fs.patches != 0 {
		t.Error("blank edit must not reach the store")
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")
	if err := b.Remove(ctx, it.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := b.Find(it.ID); ok {
		t.Error("removed item still cached")
	}
}

func TestDragDropAcrossPartitions(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")

	drag, ok := b.Grab(it.ID)
	if !ok {
		t.Fatal("grab failed")
	}
	if drag.Title != "Watch Inception" {
		t.Errorf("snapshot title = %q", drag.Title)
	}

	if err := b.Drop(ctx, model.StatusDone); err != nil {
		t.Fatalf("drop: %v", err)
	}
	got, _ := b.Find(it.ID)
	if got.Status != model.StatusDone {
		t.Errorf("status after drop = %q, want done", got.Status)
	}
	if _, dragging := b.Dragging(); dragging {
		t.Error("drag should be cleared after drop")
	}
}

func TestDragSnapshotSurvivesEdit(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")
	b.Grab(it.ID)

	// The overlay keeps showing the snapshot even if the live record
	// changes mid-drag.
	if err := b.Edit(ctx, it.ID, "Watch Tenet"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	drag, _ := b.Dragging()
	if drag.Title != "Watch Inception" {
		t.Errorf("snapshot title = %q, want the grabbed title", drag.Title)
	}
}

func TestDropOnOwnPartitionDoesNothing(t *testing.T) {
	ctx := context.Background()
	b, fs := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")
	b.Grab(it.ID)
	if err := b.Drop(ctx, model.StatusTodo); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if fs.patches != 0 {
		t.Errorf("same-partition drop issued %d store calls, want 0", fs.patches)
	}
}

func TestReleaseAbandonsDrag(t *testing.T) {
	b, _ := newTestBoard(t)

	ctx := context.Background()
	it, _ := b.Add(ctx, "Watch Inception")
	b.Grab(it.ID)
	b.Release()
	if _, dragging := b.Dragging(); dragging {
		t.Error("drag should be cleared after release")
	}
}

func TestMoveFailureLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	b, fs := newTestBoard(t)

	it, _ := b.Add(ctx, "Watch Inception")
	fs.failing = true

	if err := b.Move(ctx, it.ID, model.StatusDone); err == nil {
		t.Fatal("expected error while store is down")
	}
	got, _ := b.Find(it.ID)
	if got.Status != model.StatusTodo {
		t.Errorf("status = %q, want todo (no rollback needed, call never applied)", got.Status)
	}
}
