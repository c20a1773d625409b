package availability

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrTitleEmpty is returned when attempting to create a request without a title.
	ErrTitleEmpty = errors.New("request title cannot be empty")
	// ErrWindowInvalid is returned when the request window ends before it starts.
	ErrWindowInvalid = errors.New("request window end must be after its start")
	// ErrRequestNotFound is returned when an availability request is not found.
	ErrRequestNotFound = errors.New("availability request not found")
	// ErrNotMember is returned when the acting user does not belong to the request's group.
	ErrNotMember = errors.New("user is not a member of the group")
)
