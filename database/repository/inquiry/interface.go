package inquiryRepo

import (
	"context"

	"barberhub/database/store"
	"barberhub/models"
)

// InquiryRepository defines data access for the inquiries collection.
type InquiryRepository interface {
	// Create allocates the next sequential ID and writes the inquiry.
	Create(ctx context.Context, inquiry *models.Inquiry) (string, error)
	// GetByID retrieves one inquiry; absence returns (nil, nil).
	GetByID(ctx context.Context, id string) (*models.Inquiry, error)
	// GetAll retrieves every inquiry, newest first.
	GetAll(ctx context.Context) ([]models.Inquiry, error)
	// UpdateStatus moves an inquiry between pending/contacted/resolved.
	UpdateStatus(ctx context.Context, id, status string) error
	// Delete removes an inquiry record.
	Delete(ctx context.Context, id string) error
	// Subscribe streams the inquiry list on every change.
	Subscribe(ctx context.Context, fn func([]models.Inquiry)) (store.UnsubscribeFunc, error)
}
