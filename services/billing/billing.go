package billing

import (
	"fmt"
	"math"

	"barberhub/models"
	"barberhub/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// BillingService creates payment intents for plan upgrades.
type BillingService interface {
	// CreateUpgradeIntent returns the Stripe client secret for charging one
	// month of the target plan to the given business.
	CreateUpgradeIntent(businessID, plan string) (string, error)
}

// DefaultBillingService implements BillingService on Stripe.
type DefaultBillingService struct{}

// CreateUpgradeIntent charges one month of the target plan up front.
func (s *DefaultBillingService) CreateUpgradeIntent(businessID, plan string) (string, error) {
	logger := utils.GetLogger()

	if !ValidPlan(plan) || plan == models.PlanTrial {
		return "", fmt.Errorf("plan %q is not purchasable", plan)
	}
	amountCents := int64(math.Round(MonthlyRate(plan) * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyCAD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("businessId", businessID)
	params.AddMetadata("plan", plan)

	intent, err := paymentintent.New(params)
	if err != nil {
		logger.Error("Failed to create payment intent",
			zap.String("businessID", businessID), zap.String("plan", plan), zap.Error(err))
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
