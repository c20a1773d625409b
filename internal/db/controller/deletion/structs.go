package deletion

import (
	"github.com/callboard/callboard/internal/db/models"
)

// MemberInfo identifies one remaining member of a group in a preview.
type MemberInfo struct {
	UserID      uint64                `json:"userId"`
	DisplayName string                `json:"displayName"`
	Role        models.MembershipRole `json:"role"`
}

// GroupPreview describes how one group is affected by the user's removal.
type GroupPreview struct {
	GroupID   uint   `json:"groupId"`
	GroupName string `json:"groupName"`
	// Role is the departing user's role in the group.
	Role models.MembershipRole `json:"role"`
	// IsSoleAdmin is true when the departing user is the only admin. Such a
	// group needs an explicit decision before the deletion can execute.
	IsSoleAdmin bool `json:"isSoleAdmin"`
	// MemberCount is the total membership including the departing user.
	MemberCount int `json:"memberCount"`
	// OtherAdmins and OtherMembers list the group's members excluding the
	// departing user, partitioned by role.
	OtherAdmins  []MemberInfo `json:"otherAdmins"`
	OtherMembers []MemberInfo `json:"otherMembers"`
}

// Preview is the result of ComputeDeletionPreview: every group the user
// belongs to, classified, plus the size of the content the user authored.
type Preview struct {
	SoleAdminGroups   []GroupPreview `json:"soleAdminGroups"`
	SharedAdminGroups []GroupPreview `json:"sharedAdminGroups"`
	MemberOnlyGroups  []GroupPreview `json:"memberOnlyGroups"`

	CreatedEventCount   int64 `json:"createdEventCount"`
	CreatedRequestCount int64 `json:"createdRequestCount"`
}

// DecisionAction selects the fate of a sole-admin group.
type DecisionAction string

const (
	// ActionTransfer hands the group to another member, promoting them to admin.
	ActionTransfer DecisionAction = "transfer"
	// ActionDelete removes the group and everything scoped to it.
	ActionDelete DecisionAction = "delete"
)

// Decision is the caller's choice for one sole-admin group.
type Decision struct {
	Action  DecisionAction
	GroupID uint
	// NewAdminID is required for ActionTransfer and must be an existing,
	// non-leaving member of the group.
	NewAdminID uint64
}
