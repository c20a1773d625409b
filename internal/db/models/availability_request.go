package models

import "time"

// AvailabilityRequest is a poll asking group members when they are free
// within a time window. Responses may lead to a scheduled Event.
type AvailabilityRequest struct {
	ID uint64 `gorm:"primaryKey"`
	// GroupID scopes the request to a group; requests are removed with their group.
	GroupID uint  `gorm:"column:group_id;not null;index"`
	Group   Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedByID is the creating user. Reassigned when that user leaves the system.
	CreatedByID uint64 `gorm:"column:created_by_id;not null;index"`
	Title       string `gorm:"size:200;not null"`
	WindowStart time.Time
	WindowEnd   time.Time
	// Deadline is when responses close, if set.
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the AvailabilityRequest model.
func (AvailabilityRequest) TableName() string {
	return "availability_requests"
}
