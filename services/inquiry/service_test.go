package inquiry

import (
	"context"
	"testing"

	inquiryRepo "barberhub/database/repository/inquiry"
	"barberhub/database/store"
	"barberhub/models"
)

func newTestService() *DefaultInquiryService {
	// Queue stays nil: operator notification is skipped outside production.
	return &DefaultInquiryService{
		Repo: inquiryRepo.NewStoreInquiryRepo(store.NewMemoryStore()),
	}
}

func TestSubmitInquiryValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name    string
		inquiry models.Inquiry
	}{
		{"missing contact name", models.Inquiry{Email: "x@example.com", Message: "hi"}},
		{"missing email", models.Inquiry{ContactName: "Jamie", Message: "hi"}},
		{"missing message", models.Inquiry{ContactName: "Jamie", Email: "x@example.com"}},
		{"whitespace message", models.Inquiry{ContactName: "Jamie", Email: "x@example.com", Message: "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SubmitInquiry(ctx, tc.inquiry); err == nil {
				t.Errorf("invalid submission was accepted: %+v", tc.inquiry)
			}
		})
	}
}

func TestSubmitInquiryStoresPendingLead(t *testing.T) {
	svc := newTestService()

	submitted, err := svc.SubmitInquiry(context.Background(), models.Inquiry{
		ContactName:  "Jamie",
		BusinessName: "Jamie's Cuts",
		Email:        "jamie@example.com",
		Phone:        "416-555-0100",
		Message:      "I'd like to list my shop",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry failed: %v", err)
	}
	if submitted.ID != "1" {
		t.Errorf("ID = %q, want allocated %q", submitted.ID, "1")
	}
	if submitted.Status != models.InquiryStatusPending {
		t.Errorf("Status = %q, want pending", submitted.Status)
	}
	if submitted.ContactName != "Jamie" || submitted.Phone != "416-555-0100" {
		t.Errorf("returned lead = %+v, want the submitted fields", submitted)
	}

	listed, err := svc.ListInquiries(context.Background())
	if err != nil {
		t.Fatalf("ListInquiries failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != submitted.ID {
		t.Errorf("listed = %+v, want the stored lead", listed)
	}
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	submitted, err := svc.SubmitInquiry(ctx, models.Inquiry{
		ContactName: "Jamie", Email: "jamie@example.com", Message: "hi",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry failed: %v", err)
	}

	if err := svc.UpdateStatus(ctx, submitted.ID, models.InquiryStatusResolved); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if err := svc.UpdateStatus(ctx, submitted.ID, "bogus"); err == nil {
		t.Errorf("unknown status must be rejected")
	}

	if err := svc.DeleteInquiry(ctx, submitted.ID); err != nil {
		t.Fatalf("DeleteInquiry failed: %v", err)
	}
	listed, err := svc.ListInquiries(ctx)
	if err != nil {
		t.Fatalf("ListInquiries failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("%d leads survived delete, want 0", len(listed))
	}
}

func TestSubscribeInquiriesStreamsChanges(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var snapshots [][]models.Inquiry
	unsubscribe, err := svc.SubscribeInquiries(ctx, func(inquiries []models.Inquiry) {
		snapshots = append(snapshots, inquiries)
	})
	if err != nil {
		t.Fatalf("SubscribeInquiries failed: %v", err)
	}
	defer unsubscribe()

	if len(snapshots) != 1 || len(snapshots[0]) != 0 {
		t.Fatalf("initial snapshot = %v, want one empty list", snapshots)
	}

	if _, err := svc.SubmitInquiry(ctx, models.Inquiry{
		ContactName: "Jamie", Email: "jamie@example.com", Message: "hi",
	}); err != nil {
		t.Fatalf("SubmitInquiry failed: %v", err)
	}
	if len(snapshots) < 2 {
		t.Fatalf("no snapshot after submit")
	}
	last := snapshots[len(snapshots)-1]
	if len(last) != 1 || last[0].ContactName != "Jamie" {
		t.Errorf("snapshot after submit = %+v", last)
	}
}
