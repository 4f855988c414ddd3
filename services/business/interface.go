package business

import (
	"context"

	"barberhub/database/store"
	"barberhub/models"
)

// BusinessService exposes the business-record operations the dashboard and
// admin console consume.
type BusinessService interface {
	RegisterBusiness(ctx context.Context, view models.BusinessView) (*models.BusinessView, error)
	GetBusiness(ctx context.Context, id string) (*models.BusinessView, error)
	ListBusinesses(ctx context.Context) ([]models.BusinessView, error)
	UpdateBusiness(ctx context.Context, view models.BusinessView) (*models.BusinessView, error)
	UpdateProfileImage(ctx context.Context, id, kind, imageRef string) error
	DeleteBusiness(ctx context.Context, id string) error
	BulkUpdateStatus(ctx context.Context, ids []string, status string) error
	BulkDelete(ctx context.Context, ids []string) error
	SubscribeBusinesses(ctx context.Context, fn func([]models.BusinessView)) (store.UnsubscribeFunc, error)
}
