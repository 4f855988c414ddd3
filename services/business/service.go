package business

import (
	"context"
	"fmt"
	"strings"

	businessRepo "barberhub/database/repository/business"
	"barberhub/database/store"
	"barberhub/models"
	"barberhub/utils"

	"go.uber.org/zap"
)

// DefaultBusinessService implements BusinessService.
type DefaultBusinessService struct {
	Repo businessRepo.BusinessRepository
}

func validStatus(status string) bool {
	switch status {
	case models.BusinessStatusActive, models.BusinessStatusInactive, models.BusinessStatusSuspended:
		return true
	}
	return false
}

// RegisterBusiness validates the minimum profile and creates the record
// with a freshly allocated ID.
func (s *DefaultBusinessService) RegisterBusiness(ctx context.Context, view models.BusinessView) (*models.BusinessView, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(view.Name) == "" {
		return nil, fmt.Errorf("business name is required")
	}
	if strings.TrimSpace(view.Email) == "" {
		return nil, fmt.Errorf("contact email is required")
	}
	if view.SubscriptionPlan == "" {
		view.SubscriptionPlan = models.PlanTrial
	}

	id, err := s.Repo.Create(ctx, &view)
	if err != nil {
		logger.Error("Failed to register business", zap.String("name", view.Name), zap.Error(err))
		return nil, err
	}
	logger.Info("Registered business", zap.String("id", id), zap.String("name", view.Name))
	return s.Repo.GetByID(ctx, id)
}

// GetBusiness fetches one reconciled business. A missing record is a valid
// empty state: (nil, nil).
func (s *DefaultBusinessService) GetBusiness(ctx context.Context, id string) (*models.BusinessView, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListBusinesses fetches every business.
func (s *DefaultBusinessService) ListBusinesses(ctx context.Context) ([]models.BusinessView, error) {
	return s.Repo.GetAll(ctx)
}

// UpdateBusiness writes the view's mapped payload back to the backend and
// returns the re-read record.
func (s *DefaultBusinessService) UpdateBusiness(ctx context.Context, view models.BusinessView) (*models.BusinessView, error) {
	logger := utils.GetLogger()
	if view.ID == "" {
		return nil, fmt.Errorf("business ID is required for update")
	}
	if view.Status != "" && !validStatus(view.Status) {
		return nil, fmt.Errorf("invalid business status %q", view.Status)
	}
	if err := s.Repo.Update(ctx, &view); err != nil {
		logger.Error("Failed to update business", zap.String("id", view.ID), zap.Error(err))
		return nil, err
	}
	return s.Repo.GetByID(ctx, view.ID)
}

// UpdateProfileImage stores an image reference inline on the record. kind is
// "profile" or "cover". Images live inside the document store; there is no
// separate object-storage round trip on this path.
func (s *DefaultBusinessService) UpdateProfileImage(ctx context.Context, id, kind, imageRef string) error {
	var field string
	switch kind {
	case "profile":
		field = "profileImage"
	case "cover":
		field = "coverImage"
	default:
		return fmt.Errorf("unknown image kind %q", kind)
	}
	return s.Repo.UpdateFields(ctx, id, map[string]any{field: imageRef})
}

// DeleteBusiness hard-deletes a record.
func (s *DefaultBusinessService) DeleteBusiness(ctx context.Context, id string) error {
	logger := utils.GetLogger()
	if err := s.Repo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete business", zap.String("id", id), zap.Error(err))
		return err
	}
	logger.Info("Deleted business", zap.String("id", id))
	return nil
}

// BulkUpdateStatus moves all given businesses to status in one backend call.
func (s *DefaultBusinessService) BulkUpdateStatus(ctx context.Context, ids []string, status string) error {
	if !validStatus(status) {
		return fmt.Errorf("invalid business status %q", status)
	}
	return s.Repo.BulkUpdateStatus(ctx, ids, status)
}

// BulkDelete removes all given businesses in one backend call.
func (s *DefaultBusinessService) BulkDelete(ctx context.Context, ids []string) error {
	return s.Repo.BulkDelete(ctx, ids)
}

// SubscribeBusinesses streams the reconciled business list; callers must
// release the returned handle when their view tears down.
func (s *DefaultBusinessService) SubscribeBusinesses(ctx context.Context, fn func([]models.BusinessView)) (store.UnsubscribeFunc, error) {
	return s.Repo.Subscribe(ctx, fn)
}
