package models

import "time"

// Inquiry status tags.
const (
	InquiryStatusPending   = "pending"
	InquiryStatusContacted = "contacted"
	InquiryStatusResolved  = "resolved"
)

// Inquiry is a prospective-business contact-form submission. Created once
// with status "pending"; only the status may change afterwards.
type Inquiry struct {
	ID           string    `json:"id"`
	ContactName  string    `json:"contactName"`
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidInquiryStatus reports whether s is one of the recognized status tags.
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusContacted, InquiryStatusResolved:
		return true
	}
	return false
}
