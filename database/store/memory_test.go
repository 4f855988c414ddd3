package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.Set(ctx, "businesses/1", map[string]any{"name": "Fade Factory", "latitude": 43.65}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var raw map[string]any
	if err := st.Get(ctx, "businesses/1", &raw); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw["name"] != "Fade Factory" {
		t.Errorf("raw = %v, want stored record", raw)
	}
	if raw["latitude"] != 43.65 {
		t.Errorf("latitude = %v (%T), want JSON float", raw["latitude"], raw["latitude"])
	}

	var name string
	if err := st.Get(ctx, "businesses/1/name", &name); err != nil {
		t.Fatalf("Get leaf failed: %v", err)
	}
	if name != "Fade Factory" {
		t.Errorf("leaf read = %q", name)
	}
}

func TestMemoryStoreGetAbsentLeavesDestUntouched(t *testing.T) {
	st := NewMemoryStore()
	raw := map[string]any{"sentinel": true}
	if err := st.Get(context.Background(), "businesses/404", &raw); err != nil {
		t.Fatalf("Get on absent path errored: %v", err)
	}
	if raw["sentinel"] != true {
		t.Errorf("dest was modified on absent path: %v", raw)
	}
}

func TestMemoryStoreUpdateMerges(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	if err := st.Set(ctx, "businesses/1", map[string]any{"name": "Before", "city": "Toronto"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := st.Update(ctx, "businesses/1", map[string]any{"name": "After"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var raw map[string]any
	if err := st.Get(ctx, "businesses/1", &raw); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw["name"] != "After" || raw["city"] != "Toronto" {
		t.Errorf("merge result = %v, want name replaced and city preserved", raw)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	if err := st.Set(ctx, "businesses/1", map[string]any{"name": "x"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := st.Delete(ctx, "businesses/1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	records, err := st.GetCollection(ctx, "businesses")
	if err != nil {
		t.Fatalf("GetCollection failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("record survived delete: %v", records)
	}
	if err := st.Delete(ctx, "businesses/404"); err != nil {
		t.Errorf("deleting an absent path must be a no-op, got %v", err)
	}
}

func TestMemoryStoreMultiUpdateAppliesAllPaths(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	for _, id := range []string{"1", "2", "3"} {
		if err := st.Set(ctx, "businesses/"+id, map[string]any{"status": "active"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	err := st.MultiUpdate(ctx, map[string]any{
		"businesses/1/status": "inactive",
		"businesses/2/status": "inactive",
		"businesses/3":        nil,
	})
	if err != nil {
		t.Fatalf("MultiUpdate failed: %v", err)
	}

	records, err := st.GetCollection(ctx, "businesses")
	if err != nil {
		t.Fatalf("GetCollection failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("collection has %d records, want 2 after nil delete", len(records))
	}
	for _, id := range []string{"1", "2"} {
		if records[id]["status"] != "inactive" {
			t.Errorf("id %s status = %v, want inactive", id, records[id]["status"])
		}
	}
}

func TestMemoryStoreTransactionAborts(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	if err := st.Set(ctx, "businesses/1", map[string]any{"name": "keep"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	boom := errors.New("abort")
	err := st.Transaction(ctx, "businesses", func(current map[string]any) (map[string]any, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction err = %v, want abort error", err)
	}

	var raw map[string]any
	if err := st.Get(ctx, "businesses/1", &raw); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw["name"] != "keep" {
		t.Errorf("aborted transaction must not write, got %v", raw)
	}
}

func TestMemoryStoreSubscribeFanOut(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var got []map[string]any
	unsubscribe, err := st.Subscribe(ctx, "businesses", func(value map[string]any) {
		got = append(got, value)
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if len(got) != 1 || got[0] != nil {
		t.Fatalf("initial notification = %v, want one nil (absent) snapshot", got)
	}

	if err := st.Set(ctx, "businesses/1", map[string]any{"name": "x"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notifications after write, want 2", len(got))
	}
	if _, ok := got[1]["1"]; !ok {
		t.Errorf("change snapshot = %v, want record under key 1", got[1])
	}

	// Writes outside the watched subtree must not notify.
	if err := st.Set(ctx, "inquiries/1", map[string]any{"message": "hi"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("unrelated write notified the subscriber, have %d notifications", len(got))
	}

	unsubscribe()
	if err := st.Set(ctx, "businesses/2", map[string]any{"name": "y"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("write after unsubscribe notified the subscriber, have %d notifications", len(got))
	}
}

func TestMemoryStoreSubscribeLeafSeesParentWrite(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var got []map[string]any
	unsubscribe, err := st.Subscribe(ctx, "businesses/1", func(value map[string]any) {
		got = append(got, value)
	})
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer unsubscribe()

	if err := st.Set(ctx, "businesses", map[string]any{"1": map[string]any{"name": "parent write"}}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d notifications, want initial + parent write", len(got))
	}
	if got[1]["name"] != "parent write" {
		t.Errorf("leaf snapshot = %v", got[1])
	}
}
