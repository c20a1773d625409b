package models

import "time"

// Group represents an ensemble: a set of members who share events and
// availability polls. Joining is by invite code.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the group as it appears in the system.
	Name string `gorm:"size:100;not null"`
	// Description provides a human-readable explanation of the group's purpose.
	Description string `gorm:"size:255"`
	// InviteCode is the unique 8-character code granting join access.
	InviteCode string `gorm:"size:16;uniqueIndex;not null"`
	// CreatedByID is the user the group is currently attributed to. It starts
	// as the creator and is reassigned when that user leaves the system.
	CreatedByID uint64 `gorm:"column:created_by_id;not null;index"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Group model.
// This overrides GORM's default pluralized table naming.
func (Group) TableName() string {
	return "groups"
}
