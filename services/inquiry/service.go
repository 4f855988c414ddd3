package inquiry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	inquiryRepo "barberhub/database/repository/inquiry"
	"barberhub/database/store"
	"barberhub/models"
	"barberhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeInquiryNotify is the background task type fired on every new lead so
// platform operators get notified out of band.
const TypeInquiryNotify = "inquiry:notify"

// NotifyPayload is the inquiry:notify task payload.
type NotifyPayload struct {
	InquiryID    string `json:"inquiryId"`
	ContactName  string `json:"contactName"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
}

// DefaultInquiryService implements InquiryService. Queue may be nil, in
// which case operator notification is skipped (tests, local development).
type DefaultInquiryService struct {
	Repo  inquiryRepo.InquiryRepository
	Queue *asynq.Client
}

// SubmitInquiry validates the form fields and creates the record with
// status pending, then enqueues the operator notification.
func (s *DefaultInquiryService) SubmitInquiry(ctx context.Context, inquiry models.Inquiry) (*models.Inquiry, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(inquiry.ContactName) == "" {
		return nil, fmt.Errorf("contact name is required")
	}
	if strings.TrimSpace(inquiry.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(inquiry.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	id, err := s.Repo.Create(ctx, &inquiry)
	if err != nil {
		logger.Error("Failed to create inquiry", zap.String("email", inquiry.Email), zap.Error(err))
		return nil, err
	}
	logger.Info("Created inquiry", zap.String("id", id), zap.String("business", inquiry.BusinessName))

	if s.Queue != nil {
		payload, err := json.Marshal(NotifyPayload{
			InquiryID:    id,
			ContactName:  inquiry.ContactName,
			BusinessName: inquiry.BusinessName,
			Email:        inquiry.Email,
		})
		if err == nil {
			if _, err := s.Queue.Enqueue(asynq.NewTask(TypeInquiryNotify, payload)); err != nil {
				// The lead is already stored; notification failure is not a
				// reason to fail the submission.
				logger.Warn("Failed to enqueue inquiry notification", zap.String("id", id), zap.Error(err))
			}
		}
	}

	return s.Repo.GetByID(ctx, id)
}

// ListInquiries returns every inquiry, newest first.
func (s *DefaultInquiryService) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	return s.Repo.GetAll(ctx)
}

// UpdateStatus triages an inquiry.
func (s *DefaultInquiryService) UpdateStatus(ctx context.Context, id, status string) error {
	return s.Repo.UpdateStatus(ctx, id, status)
}

// DeleteInquiry removes an inquiry record.
func (s *DefaultInquiryService) DeleteInquiry(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// SubscribeInquiries streams the inquiry list for the admin console.
func (s *DefaultInquiryService) SubscribeInquiries(ctx context.Context, fn func([]models.Inquiry)) (store.UnsubscribeFunc, error) {
	return s.Repo.Subscribe(ctx, fn)
}
