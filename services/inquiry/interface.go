package inquiry

import (
	"context"

	"barberhub/database/store"
	"barberhub/models"
)

// InquiryService exposes lead intake and admin triage operations.
type InquiryService interface {
	SubmitInquiry(ctx context.Context, inquiry models.Inquiry) (*models.Inquiry, error)
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteInquiry(ctx context.Context, id string) error
	SubscribeInquiries(ctx context.Context, fn func([]models.Inquiry)) (store.UnsubscribeFunc, error)
}
