package businessRepo

import (
	"context"

	"barberhub/database/store"
	"barberhub/models"
)

// BusinessRepository defines data access for the businesses collection.
// Reads return reconciled view-models, never raw backend records.
type BusinessRepository interface {
	// Create allocates the next sequential ID and writes the record.
	Create(ctx context.Context, view *models.BusinessView) (string, error)
	// GetByID retrieves one business; absence returns (nil, nil).
	GetByID(ctx context.Context, id string) (*models.BusinessView, error)
	// GetAll retrieves every business, ordered by numeric ID.
	GetAll(ctx context.Context) ([]models.BusinessView, error)
	// Update writes the full backend payload mapped from the view.
	Update(ctx context.Context, view *models.BusinessView) error
	// UpdateFields applies a partial merge update of raw backend fields.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a business record. Hard delete, no tombstone.
	Delete(ctx context.Context, id string) error
	// BulkUpdateStatus sets status on all given IDs in one multi-path call.
	BulkUpdateStatus(ctx context.Context, ids []string, status string) error
	// BulkDelete removes all given IDs in one multi-path call.
	BulkDelete(ctx context.Context, ids []string) error
	// Subscribe streams the reconciled business list on every change and
	// returns the mandatory disposal handle.
	Subscribe(ctx context.Context, fn func([]models.BusinessView)) (store.UnsubscribeFunc, error)
}
