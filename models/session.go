package models

import "time"

// Session roles.
const (
	RoleGuest = "guest"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// DeviceInfo holds the client device details captured at sign-in.
type DeviceInfo struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
	IP         string `json:"ip"`
}

// Session is the explicit session context handed to every authenticated
// request. Persisted in Redis with a TTL; the client carries a signed JWT
// whose subject is the session ID.
type Session struct {
	ID         string     `json:"id"`
	Role       string     `json:"role"`
	SubjectID  string     `json:"subjectId"` // business ID for owners, empty for guests
	Email      string     `json:"email"`
	Device     DeviceInfo `json:"device"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastSeenAt time.Time  `json:"lastSeenAt"`
}
