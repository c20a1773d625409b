package event

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrTitleEmpty is returned when attempting to create an event without a title.
	ErrTitleEmpty = errors.New("event title cannot be empty")
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrNotMember is returned when the acting user does not belong to the event's group.
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrAlreadyAssigned is returned when the user is already assigned to the event.
	ErrAlreadyAssigned = errors.New("user is already assigned to the event")
	// ErrAssignmentNotFound is returned when no assignment exists for the user and event.
	ErrAssignmentNotFound = errors.New("assignment not found")
)
