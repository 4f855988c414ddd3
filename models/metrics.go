package models

import "time"

// PlanBucket is one slice of the plan-distribution chart.
type PlanBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TrendPoint is one point of a trailing chart series.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DashboardStats is the flat structure consumed directly by the admin
// dashboard charts. Recomputed from the latest business snapshot on every
// request; nothing in here is persisted.
type DashboardStats struct {
	TotalBusinesses  int          `json:"totalBusinesses"`
	ActiveBusinesses int          `json:"activeBusinesses"`
	PlanBuckets      []PlanBucket `json:"planBuckets"`
	EstimatedRevenue float64      `json:"estimatedRevenue"`

	// RevenueTrend is a placeholder series scaled off the current total.
	// No historical data is retained, so these points are fabricated for
	// chart rendering and must not be read as measurements.
	RevenueTrend []TrendPoint `json:"revenueTrend"`

	GeneratedAt time.Time `json:"generatedAt"`
}
