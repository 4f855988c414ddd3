package inquiryRepo

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

// CollectionPath is the inquiries collection root in the document store.
const CollectionPath = "inquiries"

// StoreInquiryRepo implements InquiryRepository on a DocumentStore.
type StoreInquiryRepo struct {
	store store.DocumentStore
}

// NewStoreInquiryRepo creates an InquiryRepository backed by st.
func NewStoreInquiryRepo(st store.DocumentStore) InquiryRepository {
	return &StoreInquiryRepo{store: st}
}

func recordPath(id string) string {
	return CollectionPath + "/" + id
}

func toPayload(inquiry *models.Inquiry) map[string]any {
	return map[string]any{
		"contactName":  inquiry.ContactName,
		"businessName": inquiry.BusinessName,
		"email":        inquiry.Email,
		"phone":        inquiry.Phone,
		"location":     inquiry.Location,
		"message":      inquiry.Message,
		"status":       inquiry.Status,
		"createdAt":    inquiry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func fromRaw(id string, raw map[string]any) models.Inquiry {
	inquiry := models.Inquiry{
		ID:     id,
		Status: models.InquiryStatusPending,
	}
	if s, ok := raw["contactName"].(string); ok {
		inquiry.ContactName = s
	}
	if s, ok := raw["businessName"].(string); ok {
		inquiry.BusinessName = s
	}
	if s, ok := raw["email"].(string); ok {
		inquiry.Email = s
	}
	if s, ok := raw["phone"].(string); ok {
		inquiry.Phone = s
	}
	if s, ok := raw["location"].(string); ok {
		inquiry.Location = s
	}
	if s, ok := raw["message"].(string); ok {
		inquiry.Message = s
	}
	if s, ok := raw["status"].(string); ok && models.ValidInquiryStatus(s) {
		inquiry.Status = s
	}
	if s, ok := raw["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			inquiry.CreatedAt = t
		}
	}
	return inquiry
}

// Create allocates the next sequential ID and writes the inquiry with
// status pending.
func (r *StoreInquiryRepo) Create(ctx context.Context, inquiry *models.Inquiry) (string, error) {
	inquiry.Status = models.InquiryStatusPending
	inquiry.CreatedAt = time.Now().UTC()
	id, err := allocator.Allocate(ctx, r.store, CollectionPath, toPayload(inquiry))
	if err != nil {
		return "", fmt.Errorf("failed to create inquiry: %w", err)
	}
	inquiry.ID = id
	return id, nil
}

// GetByID fetches one inquiry; absence returns (nil, nil).
func (r *StoreInquiryRepo) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	var raw map[string]any
	if err := r.store.Get(ctx, recordPath(id), &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch inquiry %s: %w", id, err)
	}
	if raw == nil {
		return nil, nil
	}
	inquiry := fromRaw(id, raw)
	return &inquiry, nil
}

// GetAll fetches the full collection, newest first.
func (r *StoreInquiryRepo) GetAll(ctx context.Context) ([]models.Inquiry, error) {
	records, err := r.store.GetCollection(ctx, CollectionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return collect(records), nil
}

func collect(records map[string]map[string]any) []models.Inquiry {
	inquiries := make([]models.Inquiry, 0, len(records))
	for id, raw := range records {
		inquiries = append(inquiries, fromRaw(id, raw))
	}
	sort.Slice(inquiries, func(i, j int) bool {
		a, errA := strconv.Atoi(inquiries[i].ID)
		b, errB := strconv.Atoi(inquiries[j].ID)
		if errA != nil || errB != nil {
			return inquiries[i].ID > inquiries[j].ID
		}
		return a > b
	})
	return inquiries
}

// UpdateStatus moves an inquiry to the given status.
func (r *StoreInquiryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidInquiryStatus(status) {
		return fmt.Errorf("invalid inquiry status %q", status)
	}
	fields := map[string]any{
		"status":    status,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.store.Update(ctx, recordPath(id), fields); err != nil {
		return fmt.Errorf("failed to update inquiry %s: %w", id, err)
	}
	return nil
}

// Delete removes an inquiry record.
func (r *StoreInquiryRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, recordPath(id)); err != nil {
		return fmt.Errorf("failed to delete inquiry %s: %w", id, err)
	}
	return nil
}

// Subscribe streams the inquiry list on every change.
func (r *StoreInquiryRepo) Subscribe(ctx context.Context, fn func([]models.Inquiry)) (store.UnsubscribeFunc, error) {
	unsubscribe, err := r.store.Subscribe(ctx, CollectionPath, func(value map[string]any) {
		records := make(map[string]map[string]any, len(value))
		for id, child := range value {
			raw, ok := child.(map[string]any)
			if !ok {
				continue
			}
			records[id] = raw
		}
		fn(collect(records))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to inquiries: %w", err)
	}
	return unsubscribe, nil
}
