// Package deletion implements the account removal engine: previewing how every
// group a user belongs to is affected, and executing the reassignment-or-delete
// transaction that removes the user without ever leaving a group adminless.
package deletion

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
)

const (
	userQueryPattern      = "user_id = ?"
	createdByQueryPattern = "created_by_id = ?"
)

// ComputeDeletionPreview classifies every group userID belongs to as
// sole-admin, shared-admin or member-only, and counts the content rows the
// user authored. Pure read, no side effects; calling it twice without
// intervening mutations yields the same classification.
func ComputeDeletionPreview(db *gorm.DB, userID uint64) (*Preview, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := activeUser(db, userID); err != nil {
		return nil, err
	}

	var memberships []models.Membership
	if err := db.Where(userQueryPattern, userID).Order("group_id ASC").Find(&memberships).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load memberships")
	}

	preview := &Preview{
		SoleAdminGroups:   []GroupPreview{},
		SharedAdminGroups: []GroupPreview{},
		MemberOnlyGroups:  []GroupPreview{},
	}

	for i := range memberships {
		gp, err := previewGroup(db, &memberships[i])
		if err != nil {
			return nil, err
		}

		switch {
		case gp.IsSoleAdmin:
			preview.SoleAdminGroups = append(preview.SoleAdminGroups, gp)
		case gp.Role == models.RoleAdmin:
			preview.SharedAdminGroups = append(preview.SharedAdminGroups, gp)
		default:
			preview.MemberOnlyGroups = append(preview.MemberOnlyGroups, gp)
		}
	}

	if err := db.Model(&models.Event{}).
		Where(createdByQueryPattern, userID).Count(&preview.CreatedEventCount).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to count created events")
	}

	if err := db.Model(&models.AvailabilityRequest{}).
		Where(createdByQueryPattern, userID).Count(&preview.CreatedRequestCount).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to count created availability requests")
	}

	return preview, nil
}

// previewGroup builds the classification for a single membership.
func previewGroup(db *gorm.DB, m *models.Membership) (GroupPreview, error) {
	var group models.Group
	if err := db.First(&group, m.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GroupPreview{}, ErrGroupNotFound
		}

		return GroupPreview{}, pkgerrors.Wrapf(err, "failed to load group %d", m.GroupID)
	}

	others, err := otherMemberships(db, m.GroupID, m.UserID)
	if err != nil {
		return GroupPreview{}, err
	}

	gp := GroupPreview{
		GroupID:      group.ID,
		GroupName:    group.Name,
		Role:         m.Role,
		MemberCount:  len(others) + 1, // including the departing user
		OtherAdmins:  []MemberInfo{},
		OtherMembers: []MemberInfo{},
	}

	for i := range others {
		info := MemberInfo{
			UserID:      others[i].UserID,
			DisplayName: others[i].User.DisplayName,
			Role:        others[i].Role,
		}

		if others[i].Role == models.RoleAdmin {
			gp.OtherAdmins = append(gp.OtherAdmins, info)
		} else {
			gp.OtherMembers = append(gp.OtherMembers, info)
		}
	}

	gp.IsSoleAdmin = m.Role == models.RoleAdmin && len(gp.OtherAdmins) == 0

	return gp, nil
}

// otherMemberships lists the group's memberships excluding userID, in join
// order. The ordering also fixes the successor choice during execution.
func otherMemberships(db *gorm.DB, groupID uint, userID uint64) ([]models.Membership, error) {
	var others []models.Membership

	err := db.Preload("User").
		Where("group_id = ? AND user_id <> ?", groupID, userID).
		Order("created_at ASC, user_id ASC").
		Find(&others).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to load members of group %d", groupID)
	}

	return others, nil
}

// activeUser loads the user and rejects missing or already soft-deleted accounts.
func activeUser(db *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, pkgerrors.Wrapf(err, "failed to load user %d", userID)
	}

	if user.IsDeleted() {
		return nil, ErrUserDeleted
	}

	return &user, nil
}
