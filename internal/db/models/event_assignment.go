package models

import "time"

// AssignmentStatus tracks whether a member has accepted a spot in an event.
type AssignmentStatus string

const (
	// AssignmentProposed is the initial state of an assignment.
	AssignmentProposed AssignmentStatus = "proposed"
	// AssignmentConfirmed means the member accepted.
	AssignmentConfirmed AssignmentStatus = "confirmed"
	// AssignmentDeclined means the member declined.
	AssignmentDeclined AssignmentStatus = "declined"
)

// EventAssignment links a member to an event they are cast in.
// Assignments are removed when either the event or the user leaves the system.
type EventAssignment struct {
	EventID uint64 `gorm:"primaryKey;column:event_id"`
	UserID  uint64 `gorm:"primaryKey;column:user_id"`
	Status  AssignmentStatus `gorm:"type:varchar(20);not null;default:'proposed'"`
	Event   Event            `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName specifies the database table name for the EventAssignment model.
func (EventAssignment) TableName() string {
	return "event_assignments"
}
