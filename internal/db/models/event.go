package models

import "time"

// Event is a scheduled happening (show, rehearsal) belonging to exactly
// one group, attributed to the member who created it.
type Event struct {
	ID uint64 `gorm:"primaryKey"`
	// GroupID scopes the event to a group; events are removed with their group.
	GroupID uint  `gorm:"column:group_id;not null;index"`
	Group   Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedByID is the creating user. Reassigned when that user leaves the system.
	CreatedByID uint64 `gorm:"column:created_by_id;not null;index"`
	Title       string `gorm:"size:200;not null"`
	Location    string `gorm:"size:200"`
	StartsAt    time.Time
	EndsAt      time.Time
	// AvailabilityRequestID links back to the poll this event was scheduled
	// from, if any.
	AvailabilityRequestID *uint64 `gorm:"column:availability_request_id"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
