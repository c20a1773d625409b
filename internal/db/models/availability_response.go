package models

import "time"

// AvailabilityStatus is a member's answer to an availability request.
type AvailabilityStatus string

const (
	// StatusAvailable means the member can attend.
	StatusAvailable AvailabilityStatus = "available"
	// StatusUnavailable means the member cannot attend.
	StatusUnavailable AvailabilityStatus = "unavailable"
	// StatusMaybe means the member is unsure.
	StatusMaybe AvailabilityStatus = "maybe"
)

// AvailabilityResponse is one member's answer to an AvailabilityRequest,
// unique per (request, user) pair.
type AvailabilityResponse struct {
	ID uint64 `gorm:"primaryKey"`
	// RequestID is the availability request being answered.
	RequestID uint64              `gorm:"column:request_id;not null;uniqueIndex:idx_request_user"`
	Request   AvailabilityRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	// UserID is the responding member.
	UserID    uint64             `gorm:"column:user_id;not null;uniqueIndex:idx_request_user"`
	Status    AvailabilityStatus `gorm:"type:varchar(20);not null"`
	Note      string             `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the AvailabilityResponse model.
func (AvailabilityResponse) TableName() string {
	return "availability_responses"
}
