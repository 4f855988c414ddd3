// Package billing owns the subscription plan catalog and the Stripe-backed
// upgrade flow. Plan rates are flat monthly figures; the dashboard revenue
// estimate multiplies them out and is an approximation, not a ledger.
package billing

import "barberhub/models"

// Flat monthly plan rates in CAD.
const (
	BasicMonthlyRate   = 29.99
	PremiumMonthlyRate = 49.99
	TrialMonthlyRate   = 0
)

// MonthlyRate returns the flat monthly rate for a plan tag. Unknown or
// unset plans are treated as trial.
func MonthlyRate(plan string) float64 {
	switch plan {
	case models.PlanBasic:
		return BasicMonthlyRate
	case models.PlanPremium:
		return PremiumMonthlyRate
	default:
		return TrialMonthlyRate
	}
}

// ValidPlan reports whether plan is a recognized paid-or-trial tag.
func ValidPlan(plan string) bool {
	switch plan {
	case models.PlanBasic, models.PlanPremium, models.PlanTrial:
		return true
	}
	return false
}
