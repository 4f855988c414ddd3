package businessRepo

import (
	"context"
	"strings"
	"testing"
	"time"

	"barberhub/database/store"
	"barberhub/models"
)

// spyStore wraps the in-memory store and records MultiUpdate calls so tests
// can assert bulk writes go out as one multi-path update.
type spyStore struct {
	store.DocumentStore
	multiUpdateCalls []map[string]any
}

func (s *spyStore) MultiUpdate(ctx context.Context, updates map[string]any) error {
	s.multiUpdateCalls = append(s.multiUpdateCalls, updates)
	return s.DocumentStore.MultiUpdate(ctx, updates)
}

func TestCreateAndGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewStoreBusinessRepo(store.NewMemoryStore())

	view := &models.BusinessView{Name: "Fade Factory", Email: "owner@example.com"}
	id, err := repo.Create(ctx, view)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != "1" {
		t.Errorf("first id = %q, want %q", id, "1")
	}

	fetched, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("GetByID returned nil for an existing record")
	}
	if fetched.Name != "Fade Factory" || fetched.Email != "owner@example.com" {
		t.Errorf("fetched = %+v, want created fields back", fetched)
	}
	if fetched.Status != models.BusinessStatusActive {
		t.Errorf("Status = %q, want default active", fetched.Status)
	}
}

func TestGetByIDMissingIsNotAnError(t *testing.T) {
	repo := NewStoreBusinessRepo(store.NewMemoryStore())
	view, err := repo.GetByID(context.Background(), "404")
	if err != nil {
		t.Fatalf("GetByID on absent record errored: %v", err)
	}
	if view != nil {
		t.Errorf("GetByID on absent record = %+v, want nil", view)
	}
}

func TestGetAllSortsNumerically(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	repo := NewStoreBusinessRepo(st)
	for _, id := range []string{"10", "2", "1"} {
		if err := st.Set(ctx, CollectionPath+"/"+id, map[string]any{"name": "shop " + id}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	views, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("GetAll returned %d views, want 3", len(views))
	}
	want := []string{"1", "2", "10"}
	for i, w := range want {
		if views[i].ID != w {
			t.Errorf("order[%d] = %q, want %q (numeric, not lexicographic)", i, views[i].ID, w)
		}
	}
}

func TestUpdateFieldsMergesAndStamps(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	repo := NewStoreBusinessRepo(st)
	if err := st.Set(ctx, "businesses/1", map[string]any{"name": "Before", "city": "Toronto"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := repo.UpdateFields(ctx, "1", map[string]any{"name": "After"}); err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	view, err := repo.GetByID(ctx, "1")
	if err != nil || view == nil {
		t.Fatalf("GetByID failed: %v, %v", view, err)
	}
	if view.Name != "After" {
		t.Errorf("Name = %q, want merged update", view.Name)
	}
	if view.City != "Toronto" {
		t.Errorf("City = %q, merge must preserve untouched fields", view.City)
	}
	if view.UpdatedAt.IsZero() {
		t.Errorf("updatedAt was not stamped")
	}
}

func TestBulkUpdateStatusIsOneMultiPathCall(t *testing.T) {
	ctx := context.Background()
	spy := &spyStore{DocumentStore: store.NewMemoryStore()}
	repo := NewStoreBusinessRepo(spy)
	for _, id := range []string{"1", "2", "3"} {
		if err := spy.Set(ctx, "businesses/"+id, map[string]any{"status": "active"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	if err := repo.BulkUpdateStatus(ctx, []string{"1", "3"}, models.BusinessStatusInactive); err != nil {
		t.Fatalf("BulkUpdateStatus failed: %v", err)
	}

	if len(spy.multiUpdateCalls) != 1 {
		t.Fatalf("made %d MultiUpdate calls, want exactly 1", len(spy.multiUpdateCalls))
	}
	updates := spy.multiUpdateCalls[0]
	if len(updates) != 4 {
		t.Errorf("update has %d paths, want 4 (status + updatedAt per id)", len(updates))
	}
	for _, id := range []string{"1", "3"} {
		if updates["businesses/"+id+"/status"] != models.BusinessStatusInactive {
			t.Errorf("missing status path for id %s in %v", id, updates)
		}
		if _, ok := updates["businesses/"+id+"/updatedAt"]; !ok {
			t.Errorf("missing updatedAt path for id %s in %v", id, updates)
		}
	}

	one, _ := repo.GetByID(ctx, "1")
	two, _ := repo.GetByID(ctx, "2")
	if one.Status != models.BusinessStatusInactive {
		t.Errorf("id 1 status = %q, want inactive", one.Status)
	}
	if two.Status != models.BusinessStatusActive {
		t.Errorf("id 2 status = %q, untargeted record must be untouched", two.Status)
	}
}

func TestBulkDeleteUsesNilValues(t *testing.T) {
	ctx := context.Background()
	spy := &spyStore{DocumentStore: store.NewMemoryStore()}
	repo := NewStoreBusinessRepo(spy)
	for _, id := range []string{"1", "2"} {
		if err := spy.Set(ctx, "businesses/"+id, map[string]any{"name": "shop"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	if err := repo.BulkDelete(ctx, []string{"1", "2"}); err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}
	if len(spy.multiUpdateCalls) != 1 {
		t.Fatalf("made %d MultiUpdate calls, want exactly 1", len(spy.multiUpdateCalls))
	}
	for path, value := range spy.multiUpdateCalls[0] {
		if value != nil {
			t.Errorf("delete path %s carried %v, want nil", path, value)
		}
		if !strings.HasPrefix(path, "businesses/") {
			t.Errorf("unexpected path %s", path)
		}
	}

	views, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("%d records survived bulk delete, want 0", len(views))
	}
}

func TestBulkOpsNoopOnEmptyIDs(t *testing.T) {
	spy := &spyStore{DocumentStore: store.NewMemoryStore()}
	repo := NewStoreBusinessRepo(spy)
	if err := repo.BulkUpdateStatus(context.Background(), nil, models.BusinessStatusActive); err != nil {
		t.Fatalf("BulkUpdateStatus on empty ids errored: %v", err)
	}
	if err := repo.BulkDelete(context.Background(), nil); err != nil {
		t.Fatalf("BulkDelete on empty ids errored: %v", err)
	}
	if len(spy.multiUpdateCalls) != 0 {
		t.Errorf("empty bulk ops must not hit the store, got %d calls", len(spy.multiUpdateCalls))
	}
}

func TestSubscribeStreamsReconciledViews(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	repo := NewStoreBusinessRepo(st)

	snapshots := make(chan []models.BusinessView, 4)
	unsubscribe, err := repo.Subscribe(ctx, func(views []models.BusinessView) {
		snapshots <- views
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubscribe()

	initial := waitForSnapshot(t, snapshots)
	if len(initial) != 0 {
		t.Errorf("initial snapshot has %d views, want 0", len(initial))
	}

	if _, err := repo.Create(ctx, &models.BusinessView{Name: "Streamed Cuts"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	next := waitForSnapshot(t, snapshots)
	if len(next) != 1 || next[0].Name != "Streamed Cuts" {
		t.Errorf("snapshot after create = %+v, want one reconciled view", next)
	}
}

func waitForSnapshot(t *testing.T, ch chan []models.BusinessView) []models.BusinessView {
	t.Helper()
	select {
	case views := <-ch:
		return views
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
