package models

import "time"

// Business status tags.
const (
	BusinessStatusActive    = "active"
	BusinessStatusInactive  = "inactive"
	BusinessStatusSuspended = "suspended"
)

// Subscription plan tags.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanTrial   = "trial"
)

// RawRecord is a backend document as stored: flat, loosely typed, any field
// may be absent or carry a legacy key name. It is never handed to the UI
// layer directly; the business mapper reconciles it into a BusinessView.
type RawRecord = map[string]any

// DayHours describes one weekday's opening window.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// ServiceItem is one offered service, flattened out of the backend's keyed map.
type ServiceItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // minutes
	Description string  `json:"description"`
}

// StaffMember is one staff entry, flattened out of the backend's keyed map.
type StaffMember struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar"`
	Specialties []string `json:"specialties"`
	Rating      float64  `json:"rating"`
}

// BusinessView is the reconciled shape every screen depends on. It is
// rebuilt from the raw record on every read and never persisted itself.
// OpeningHours is keyed by full weekday names and always carries all seven
// days; Services and Staff are ordered lists with synthesized IDs where the
// backend entry lacked one.
type BusinessView struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Address          string              `json:"address"`
	City             string              `json:"city"`
	Province         string              `json:"province"`
	Latitude         float64             `json:"latitude"`
	Longitude        float64             `json:"longitude"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	Website          string              `json:"website"`
	Description      string              `json:"description"`
	ProfileImage     string              `json:"profileImage"`
	CoverImage       string              `json:"coverImage"`
	OpeningHours     map[string]DayHours `json:"openingHours"`
	Services         []ServiceItem       `json:"services"`
	Staff            []StaffMember       `json:"staff"`
	SubscriptionPlan string              `json:"subscriptionPlan"`
	Status           string              `json:"status"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`

	// Display-only aggregates. Never written back to the backend.
	ServiceCount int `json:"serviceCount"`
	StaffCount   int `json:"staffCount"`
}
