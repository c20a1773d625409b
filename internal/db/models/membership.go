package models

import "time"

// MembershipRole is the role a user holds inside a group.
type MembershipRole string

const (
	// RoleAdmin members manage the group, its events and its membership.
	RoleAdmin MembershipRole = "admin"
	// RoleMember is a regular group member.
	RoleMember MembershipRole = "member"
)

// Membership represents the many-to-many relationship between users and groups.
// Every group must have at least one admin membership at all times; the
// account deletion flow is responsible for preserving that invariant.
type Membership struct {
	// GroupID is the ID of the group in this membership.
	GroupID uint `gorm:"primaryKey;column:group_id"`
	// UserID is the ID of the user in this membership.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// Role is the role the user holds in the group.
	Role MembershipRole `gorm:"type:varchar(20);not null;default:'member'"`
	// User is the associated user (loaded via foreign key).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Group is the associated group. When a group is deleted, all memberships
	// in that group are automatically removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the user joined the group (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Membership model.
// This overrides GORM's default pluralized table naming.
func (Membership) TableName() string {
	return "memberships"
}
