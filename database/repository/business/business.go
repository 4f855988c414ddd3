package businessRepo

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"barberhub/database/allocator"
	"barberhub/database/store"
	"barberhub/models"
)

// CollectionPath is the businesses collection root in the document store.
const CollectionPath = "businesses"

// StoreBusinessRepo implements BusinessRepository on a DocumentStore.
type StoreBusinessRepo struct {
	store store.DocumentStore
}

// NewStoreBusinessRepo creates a BusinessRepository backed by st.
func NewStoreBusinessRepo(st store.DocumentStore) BusinessRepository {
	return &StoreBusinessRepo{store: st}
}

func recordPath(id string) string {
	return CollectionPath + "/" + id
}

// Create allocates the next sequential ID and writes the mapped payload at
// it, atomically with respect to concurrent creations.
func (r *StoreBusinessRepo) Create(ctx context.Context, view *models.BusinessView) (string, error) {
	view.CreatedAt = time.Now().UTC()
	if view.Status == "" {
		view.Status = models.BusinessStatusActive
	}
	payload := MapToPayload(view)
	id, err := allocator.Allocate(ctx, r.store, CollectionPath, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create business: %w", err)
	}
	view.ID = id
	return id, nil
}

// GetByID fetches and reconciles one business record. A missing record is a
// valid empty state and returns (nil, nil).
func (r *StoreBusinessRepo) GetByID(ctx context.Context, id string) (*models.BusinessView, error) {
	var raw map[string]any
	if err := r.store.Get(ctx, recordPath(id), &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch business %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}
	view := MapToView(id, raw)
	return &view, nil
}

// GetAll fetches the full collection in one read and reconciles every record.
func (r *StoreBusinessRepo) GetAll(ctx context.Context) ([]models.BusinessView, error) {
	records, err := r.store.GetCollection(ctx, CollectionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch businesses: %w", err)
	}
	return reconcileAll(records), nil
}

func reconcileAll(records map[string]map[string]any) []models.BusinessView {
	views := make([]models.BusinessView, 0, len(records))
	for id, raw := range records {
		views = append(views, MapToView(id, raw))
	}
	sort.Slice(views, func(i, j int) bool {
		a, errA := strconv.Atoi(views[i].ID)
		b, errB := strconv.Atoi(views[j].ID)
		if errA != nil || errB != nil {
			return views[i].ID < views[j].ID
		}
		return a < b
	})
	return views
}

// Update overwrites the record's backend fields with the mapped payload.
func (r *StoreBusinessRepo) Update(ctx context.Context, view *models.BusinessView) error {
	if view.ID == "" {
		return fmt.Errorf("business ID is required for update")
	}
	if err := r.store.Update(ctx, recordPath(view.ID), MapToPayload(view)); err != nil {
		return fmt.Errorf("failed to update business %s: %w", view.ID, err)
	}
	return nil
}

// UpdateFields applies a partial merge update of raw backend fields,
// stamping updatedAt.
func (r *StoreBusinessRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("no updatable fields provided")
	}
	merged := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		merged[key] = value
	}
	merged["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	if err := r.store.Update(ctx, recordPath(id), merged); err != nil {
		return fmt.Errorf("failed to update business %s: %w", id, err)
	}
	return nil
}

// Delete removes a business record.
func (r *StoreBusinessRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, recordPath(id)); err != nil {
		return fmt.Errorf("failed to delete business %s: %w", id, err)
	}
	return nil
}

// BulkUpdateStatus sets status and updatedAt on every given ID in a single
// multi-path update, which the backend applies atomically.
func (r *StoreBusinessRepo) BulkUpdateStatus(ctx context.Context, ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	updates := make(map[string]any, len(ids)*2)
	for _, id := range ids {
		updates[recordPath(id)+"/status"] = status
		updates[recordPath(id)+"/updatedAt"] = now
	}
	if err := r.store.MultiUpdate(ctx, updates); err != nil {
		return fmt.Errorf("failed bulk status update: %w", err)
	}
	return nil
}

// BulkDelete removes every given ID in a single multi-path update with nil
// values.
func (r *StoreBusinessRepo) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	updates := make(map[string]any, len(ids))
	for _, id := range ids {
		updates[recordPath(id)] = nil
	}
	if err := r.store.MultiUpdate(ctx, updates); err != nil {
		return fmt.Errorf("failed bulk delete: %w", err)
	}
	return nil
}

// Subscribe streams the reconciled business list. fn fires with the initial
// snapshot and again after every collection change.
func (r *StoreBusinessRepo) Subscribe(ctx context.Context, fn func([]models.BusinessView)) (store.UnsubscribeFunc, error) {
	unsubscribe, err := r.store.Subscribe(ctx, CollectionPath, func(value map[string]any) {
		records := make(map[string]map[string]any, len(value))
		for id, child := range value {
			raw, ok := child.(map[string]any)
			if !ok {
				continue
			}
			records[id] = raw
		}
		fn(reconcileAll(records))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to businesses: %w", err)
	}
	return unsubscribe, nil
}
