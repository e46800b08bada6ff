package model

import "time"

// RequestStatus is the lifecycle state of a booking request. Requests are
// immutable once written, so a status never changes after creation.
type RequestStatus string

const (
	StatusConfirmed RequestStatus = "Confirmed"
	StatusWaitlist  RequestStatus = "Waitlist"
)

// BookingRequest is one ledger entry. ResourceTitle is a denormalized snapshot
// of the resource title at request time; StartDate/EndDate are YYYY-MM-DD.
type BookingRequest struct {
	RequestID     int64         `gorm:"primaryKey;column:request_id" json:"request_id"`
	UserName      string        `gorm:"size:256;not null" json:"user_name"`
	ResourceID    int64         `gorm:"not null;index" json:"resource_id"`
	ResourceTitle string        `gorm:"size:256;not null" json:"resource_title"`
	StartDate     string        `gorm:"size:10;not null" json:"start_date"`
	EndDate       string        `gorm:"size:10;not null" json:"end_date"`
	Status        RequestStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt     time.Time
}
