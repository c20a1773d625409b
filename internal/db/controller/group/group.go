// Package group provides CRUD and membership operations for groups.
package group

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
	"github.com/callboard/callboard/internal/invitecode"
)

const (
	memberQueryPattern = "group_id = ? AND user_id = ?"

	// inviteCodeAttempts bounds the retry loop on invite code collisions.
	inviteCodeAttempts = 5
)

// Create creates a group and makes the creator its first admin, in one
// transaction. The invite code is generated with a collision retry.
func Create(db *gorm.DB, name, description string, creatorID uint64) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrNameEmpty
	}

	g := &models.Group{
		Name:        name,
		Description: description,
		CreatedByID: creatorID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		code, err := freeInviteCode(tx)
		if err != nil {
			return err
		}
		g.InviteCode = code

		if err := tx.Create(g).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to create group")
		}

		membership := models.Membership{
			GroupID: g.ID,
			UserID:  creatorID,
			Role:    models.RoleAdmin,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to create admin membership")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

func freeInviteCode(tx *gorm.DB) (string, error) {
	for range inviteCodeAttempts {
		code := invitecode.New()

		var count int64
		if err := tx.Model(&models.Group{}).
			Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", pkgerrors.Wrap(err, "failed to check invite code")
		}

		if count == 0 {
			return code, nil
		}
	}

	return "", ErrInviteCodeExhausted
}

// GetByID retrieves a group by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.Group
	result := db.First(&g, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}

	return &g, nil
}

// GetByInviteCode retrieves a group by its invite code.
func GetByInviteCode(db *gorm.DB, code string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.Group
	result := db.Where("invite_code = ?", code).First(&g)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInviteCodeNotFound
		}
		return nil, result.Error
	}

	return &g, nil
}

// Join adds userID to the group behind the invite code as a regular member.
func Join(db *gorm.DB, code string, userID uint64) (*models.Group, error) {
	g, err := GetByInviteCode(db, code)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&models.Membership{}).
		Where(memberQueryPattern, g.ID, userID).Count(&existing).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to check membership")
	}
	if existing > 0 {
		return nil, ErrAlreadyMember
	}

	membership := models.Membership{
		GroupID: g.ID,
		UserID:  userID,
		Role:    models.RoleMember,
	}
	if err := db.Create(&membership).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create membership")
	}

	return g, nil
}

// Members lists the group's memberships with their users, in join order.
func Members(db *gorm.DB, groupID uint) ([]models.Membership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := GetByID(db, groupID); err != nil {
		return nil, err
	}

	var memberships []models.Membership
	err := db.Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC, user_id ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load members")
	}

	return memberships, nil
}

// SetRole changes a member's role. Demoting the only admin is refused.
func SetRole(db *gorm.DB, groupID uint, userID uint64, role models.MembershipRole) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var membership models.Membership
		if err := tx.Where(memberQueryPattern, groupID, userID).First(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotMember
			}
			return pkgerrors.Wrap(err, "failed to load membership")
		}

		if membership.Role == models.RoleAdmin && role != models.RoleAdmin {
			if err := requireOtherAdmin(tx, groupID, userID); err != nil {
				return err
			}
		}

		result := tx.Model(&models.Membership{}).
			Where(memberQueryPattern, groupID, userID).
			Update("role", role)
		if result.Error != nil {
			return pkgerrors.Wrap(result.Error, "failed to update role")
		}

		return nil
	})
}

// RemoveMember removes a member from the group. Removing the only admin is
// refused; leaving the system entirely goes through the deletion engine
// instead, which can transfer or delete the group.
func RemoveMember(db *gorm.DB, groupID uint, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var membership models.Membership
		if err := tx.Where(memberQueryPattern, groupID, userID).First(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotMember
			}
			return pkgerrors.Wrap(err, "failed to load membership")
		}

		if membership.Role == models.RoleAdmin {
			if err := requireOtherAdmin(tx, groupID, userID); err != nil {
				return err
			}
		}

		if err := tx.Where(memberQueryPattern, groupID, userID).
			Delete(&models.Membership{}).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to remove membership")
		}

		return nil
	})
}

// requireOtherAdmin fails with ErrLastAdmin when userID is the group's only admin.
func requireOtherAdmin(tx *gorm.DB, groupID uint, userID uint64) error {
	var otherAdmins int64
	if err := tx.Model(&models.Membership{}).
		Where("group_id = ? AND user_id <> ? AND role = ?", groupID, userID, models.RoleAdmin).
		Count(&otherAdmins).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to count admins")
	}

	if otherAdmins == 0 {
		return ErrLastAdmin
	}

	return nil
}
