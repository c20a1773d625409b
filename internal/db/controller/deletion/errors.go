package deletion

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrUserNotFound is returned when the user does not exist or vanished mid-flight.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserDeleted is returned when the user is already soft-deleted.
	ErrUserDeleted = errors.New("user is already deleted")
	// ErrGroupNotFound is returned when a group vanished between preview and execution.
	ErrGroupNotFound = errors.New("group not found")
	// ErrMembershipNotFound is returned when a membership the executor relies on
	// vanished between validation and execution.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrNoSuccessorAdmin is returned when a group that should keep existing has
	// no other admin to take over attribution. Indicates the at-least-one-admin
	// invariant was already broken or a concurrent change removed the admin.
	ErrNoSuccessorAdmin = errors.New("no other admin available to take over the group")

	// ErrDecisionMissing is returned when a sole-admin group has no decision.
	ErrDecisionMissing = errors.New("missing decision for a sole-admin group")
	// ErrDecisionUnknownGroup is returned when a decision references a group the
	// user is not sole admin of.
	ErrDecisionUnknownGroup = errors.New("decision references a group that needs no decision")
	// ErrDecisionDuplicate is returned when two decisions reference the same group.
	ErrDecisionDuplicate = errors.New("duplicate decision for group")
	// ErrDecisionUnknownAction is returned for an action other than transfer or delete.
	ErrDecisionUnknownAction = errors.New("unknown decision action")
	// ErrNewAdminNotMember is returned when a transfer names a user who is not a
	// member of the group (or is the departing user).
	ErrNewAdminNotMember = errors.New("new admin is not a member of the group")
)

// IsValidation reports whether err is a caller error in the supplied decision
// set. Validation errors are surfaced before any mutation is attempted.
func IsValidation(err error) bool {
	return errors.Is(err, ErrDecisionMissing) ||
		errors.Is(err, ErrDecisionUnknownGroup) ||
		errors.Is(err, ErrDecisionDuplicate) ||
		errors.Is(err, ErrDecisionUnknownAction) ||
		errors.Is(err, ErrNewAdminNotMember)
}

// IsNotFound reports whether err means a referenced row vanished between
// preview and execution. Safe to retry after a fresh preview.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrMembershipNotFound)
}
