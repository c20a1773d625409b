package group

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNameEmpty is returned when attempting to create a group with an empty name.
	ErrNameEmpty = errors.New("group name cannot be empty")
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrInviteCodeNotFound is returned when no group carries the given invite code.
	ErrInviteCodeNotFound = errors.New("invite code not found")
	// ErrAlreadyMember is returned when joining a group the user already belongs to.
	ErrAlreadyMember = errors.New("user is already a member of the group")
	// ErrNotMember is returned when the user does not belong to the group.
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrLastAdmin is returned when an operation would leave the group without any admin.
	ErrLastAdmin = errors.New("group must keep at least one admin")
	// ErrInviteCodeExhausted is returned when no unique invite code could be generated.
	ErrInviteCodeExhausted = errors.New("could not generate a unique invite code")
)
