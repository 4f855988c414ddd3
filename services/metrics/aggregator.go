// Package metrics computes the dashboard summary figures and chart series
// from an in-memory snapshot of business records. Pure arithmetic over the
// latest snapshot; nothing here persists or caches.
package metrics

import (
	"time"

	"barberhub/models"
	"barberhub/services/billing"
)

// trendMultipliers scale the current-period total into a trailing series.
// No historical data is retained, so this series is a fabricated placeholder
// for chart rendering; DashboardStats documents it as such.
var trendMultipliers = []float64{0.7, 0.8, 0.9, 1.0}

var trendLabels = []string{"3 mo ago", "2 mo ago", "last month", "this month"}

// Aggregate computes dashboard stats from a business snapshot.
func Aggregate(businesses []models.BusinessView) models.DashboardStats {
	stats := models.DashboardStats{
		TotalBusinesses: len(businesses),
		GeneratedAt:     time.Now().UTC(),
	}
	for _, b := range businesses {
		if b.Status == models.BusinessStatusActive {
			stats.ActiveBusinesses++
		}
	}
	stats.PlanBuckets = PlanBuckets(businesses)
	stats.EstimatedRevenue = EstimatedRevenue(stats.PlanBuckets)
	stats.RevenueTrend = TrendSeries(stats.EstimatedRevenue)
	return stats
}

// PlanBuckets partitions businesses by subscription plan into the ordered
// basic/premium/trial buckets the pie chart renders. An unset plan counts
// as trial.
func PlanBuckets(businesses []models.BusinessView) []models.PlanBucket {
	counts := map[string]int{}
	for _, b := range businesses {
		switch b.SubscriptionPlan {
		case models.PlanBasic, models.PlanPremium:
			counts[b.SubscriptionPlan]++
		default:
			counts[models.PlanTrial]++
		}
	}
	return []models.PlanBucket{
		{Label: models.PlanBasic, Count: counts[models.PlanBasic]},
		{Label: models.PlanPremium, Count: counts[models.PlanPremium]},
		{Label: models.PlanTrial, Count: counts[models.PlanTrial]},
	}
}

// EstimatedRevenue multiplies each bucket by its flat monthly rate. An
// approximation for the dashboard widget, not a source of financial truth.
func EstimatedRevenue(buckets []models.PlanBucket) float64 {
	var total float64
	for _, bucket := range buckets {
		total += billing.MonthlyRate(bucket.Label) * float64(bucket.Count)
	}
	return total
}

// TrendSeries scales the current total by fixed multipliers to produce a
// plausible-looking trailing chart. Placeholder data until real
// time-bucketed history exists.
func TrendSeries(current float64) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(trendMultipliers))
	for i, m := range trendMultipliers {
		points = append(points, models.TrendPoint{
			Label: trendLabels[i],
			Value: current * m,
		})
	}
	return points
}
