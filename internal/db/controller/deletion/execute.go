package deletion

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
)

// auditEntry records an operational event during the transaction so it can be
// logged after commit. Logging must never abort a successful transaction.
type auditEntry struct {
	msg        string
	groupID    uint
	newAdminID uint64
}

// ExecuteDeletion removes userID from the system. decisions must contain
// exactly one entry per sole-admin group from the preview; they are validated
// in full before any row is touched. The whole operation runs in a single
// transaction: ownership transfers and group deletions in the supplied order,
// automatic reassignment of the user's remaining authorship, removal of all
// memberships, responses and assignments, and finally the soft-delete of the
// user row. Any failure rolls back everything.
func ExecuteDeletion(db *gorm.DB, userID uint64, decisions []Decision) error {
	if db == nil {
		return ErrDBNil
	}

	preview, err := ComputeDeletionPreview(db, userID)
	if err != nil {
		return err
	}

	if err := validateDecisions(preview, decisions); err != nil {
		return err
	}

	var audit []auditEntry

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range decisions {
			d := &decisions[i]

			switch d.Action {
			case ActionTransfer:
				if err := transferGroup(tx, userID, d); err != nil {
					return err
				}

				audit = append(audit, auditEntry{
					msg:        "transferred group ownership",
					groupID:    d.GroupID,
					newAdminID: d.NewAdminID,
				})
			case ActionDelete:
				if err := deleteGroup(tx, d.GroupID); err != nil {
					return err
				}

				audit = append(audit, auditEntry{msg: "deleted group", groupID: d.GroupID})
			}
		}

		// Reassign authorship in every group the user still belongs to.
		// Covers shared-admin and member-only groups uniformly.
		var remaining []models.Membership
		if err := tx.Where(userQueryPattern, userID).
			Order("group_id ASC").Find(&remaining).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to load remaining memberships")
		}

		for i := range remaining {
			if err := reassignAuthorship(tx, remaining[i].GroupID, userID); err != nil {
				return err
			}
		}

		if err := tx.Where(userQueryPattern, userID).
			Delete(&models.Membership{}).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to remove memberships")
		}

		// Explicit deletes for rows the engine reasons about, even where a
		// cascade would also remove them: keeps intent auditable.
		if err := tx.Where(userQueryPattern, userID).
			Delete(&models.AvailabilityResponse{}).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to remove availability responses")
		}

		if err := tx.Where(userQueryPattern, userID).
			Delete(&models.EventAssignment{}).Error; err != nil {
			return pkgerrors.Wrap(err, "failed to remove event assignments")
		}

		now := time.Now()
		result := tx.Model(&models.User{}).
			Where("id = ? AND deleted_at IS NULL", userID).
			Updates(map[string]interface{}{"deleted_at": now, "updated_at": now})
		if result.Error != nil {
			return pkgerrors.Wrap(result.Error, "failed to soft-delete user")
		}
		if result.RowsAffected == 0 {
			// deleted or removed concurrently since the preview
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return err
	}

	for i := range audit {
		e := log.Info().Uint64("userId", userID).Uint("groupId", audit[i].groupID)
		if audit[i].newAdminID != 0 {
			e = e.Uint64("newAdminId", audit[i].newAdminID)
		}
		e.Msg(audit[i].msg)
	}

	log.Info().Uint64("userId", userID).Msg("account soft-deleted")

	return nil
}

// validateDecisions checks the decision set against the fresh preview before
// the transaction opens, so caller errors provably touch no rows.
func validateDecisions(preview *Preview, decisions []Decision) error {
	soleAdmin := make(map[uint]*GroupPreview, len(preview.SoleAdminGroups))
	for i := range preview.SoleAdminGroups {
		soleAdmin[preview.SoleAdminGroups[i].GroupID] = &preview.SoleAdminGroups[i]
	}

	seen := make(map[uint]bool, len(decisions))

	for i := range decisions {
		d := &decisions[i]

		gp, ok := soleAdmin[d.GroupID]
		if !ok {
			return pkgerrors.Wrapf(ErrDecisionUnknownGroup, "group %d", d.GroupID)
		}

		if seen[d.GroupID] {
			return pkgerrors.Wrapf(ErrDecisionDuplicate, "group %d", d.GroupID)
		}
		seen[d.GroupID] = true

		switch d.Action {
		case ActionTransfer:
			if !isOtherMember(gp, d.NewAdminID) {
				return pkgerrors.Wrapf(ErrNewAdminNotMember, "user %d in group %d", d.NewAdminID, d.GroupID)
			}
		case ActionDelete:
			// nothing further to check
		default:
			return pkgerrors.Wrapf(ErrDecisionUnknownAction, "%q", d.Action)
		}
	}

	for groupID := range soleAdmin {
		if !seen[groupID] {
			return pkgerrors.Wrapf(ErrDecisionMissing, "group %d", groupID)
		}
	}

	return nil
}

func isOtherMember(gp *GroupPreview, userID uint64) bool {
	for i := range gp.OtherAdmins {
		if gp.OtherAdmins[i].UserID == userID {
			return true
		}
	}

	for i := range gp.OtherMembers {
		if gp.OtherMembers[i].UserID == userID {
			return true
		}
	}

	return false
}

// transferGroup promotes the chosen member to admin, hands over group and
// content attribution, and removes the departing user's membership there.
func transferGroup(tx *gorm.DB, userID uint64, d *Decision) error {
	var group models.Group
	if err := tx.First(&group, d.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrapf(ErrGroupNotFound, "group %d", d.GroupID)
		}

		return pkgerrors.Wrapf(err, "failed to load group %d", d.GroupID)
	}

	result := tx.Model(&models.Membership{}).
		Where("group_id = ? AND user_id = ?", d.GroupID, d.NewAdminID).
		Update("role", models.RoleAdmin)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "failed to promote user %d in group %d", d.NewAdminID, d.GroupID)
	}
	if result.RowsAffected == 0 {
		// membership vanished since validation
		return pkgerrors.Wrapf(ErrMembershipNotFound, "user %d in group %d", d.NewAdminID, d.GroupID)
	}

	if err := tx.Model(&models.Group{}).Where("id = ?", d.GroupID).
		Update("created_by_id", d.NewAdminID).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to reassign group %d", d.GroupID)
	}

	if err := reassignContent(tx, d.GroupID, userID, d.NewAdminID); err != nil {
		return err
	}

	if err := tx.Where("group_id = ? AND user_id = ?", d.GroupID, userID).
		Delete(&models.Membership{}).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to remove membership in group %d", d.GroupID)
	}

	return nil
}

// deleteGroup removes the group and everything scoped to it. The deletes are
// explicit rather than left to foreign key cascades.
func deleteGroup(tx *gorm.DB, groupID uint) error {
	var eventIDs []uint64
	if err := tx.Model(&models.Event{}).Where("group_id = ?", groupID).
		Pluck("id", &eventIDs).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to list events of group %d", groupID)
	}

	if len(eventIDs) > 0 {
		if err := tx.Where("event_id IN ?", eventIDs).
			Delete(&models.EventAssignment{}).Error; err != nil {
			return pkgerrors.Wrapf(err, "failed to remove assignments of group %d", groupID)
		}
	}

	var requestIDs []uint64
	if err := tx.Model(&models.AvailabilityRequest{}).Where("group_id = ?", groupID).
		Pluck("id", &requestIDs).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to list availability requests of group %d", groupID)
	}

	if len(requestIDs) > 0 {
		if err := tx.Where("request_id IN ?", requestIDs).
			Delete(&models.AvailabilityResponse{}).Error; err != nil {
			return pkgerrors.Wrapf(err, "failed to remove responses of group %d", groupID)
		}
	}

	if err := tx.Where("group_id = ?", groupID).Delete(&models.Event{}).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to remove events of group %d", groupID)
	}

	if err := tx.Where("group_id = ?", groupID).Delete(&models.AvailabilityRequest{}).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to remove availability requests of group %d", groupID)
	}

	if err := tx.Where("group_id = ?", groupID).Delete(&models.Membership{}).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to remove memberships of group %d", groupID)
	}

	result := tx.Delete(&models.Group{}, groupID)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "failed to delete group %d", groupID)
	}
	if result.RowsAffected == 0 {
		// group vanished since the preview
		return pkgerrors.Wrapf(ErrGroupNotFound, "group %d", groupID)
	}

	return nil
}

// reassignAuthorship hands everything the departing user authored in groupID
// to the group's earliest-joined other admin. No-op when the user authored
// nothing there.
func reassignAuthorship(tx *gorm.DB, groupID uint, userID uint64) error {
	var group models.Group
	if err := tx.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrapf(ErrGroupNotFound, "group %d", groupID)
		}

		return pkgerrors.Wrapf(err, "failed to load group %d", groupID)
	}

	needsSuccessor := group.CreatedByID == userID

	if !needsSuccessor {
		var authored int64
		if err := tx.Model(&models.Event{}).
			Where("group_id = ? AND created_by_id = ?", groupID, userID).
			Count(&authored).Error; err != nil {
			return pkgerrors.Wrapf(err, "failed to count events in group %d", groupID)
		}

		if authored == 0 {
			if err := tx.Model(&models.AvailabilityRequest{}).
				Where("group_id = ? AND created_by_id = ?", groupID, userID).
				Count(&authored).Error; err != nil {
				return pkgerrors.Wrapf(err, "failed to count availability requests in group %d", groupID)
			}
		}

		needsSuccessor = authored > 0
	}

	if !needsSuccessor {
		return nil
	}

	// Earliest-joined admin, user id as tiebreak. Deterministic on purpose.
	var successor models.Membership
	err := tx.Where("group_id = ? AND user_id <> ? AND role = ?", groupID, userID, models.RoleAdmin).
		Order("created_at ASC, user_id ASC").
		First(&successor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrapf(ErrNoSuccessorAdmin, "group %d", groupID)
		}

		return pkgerrors.Wrapf(err, "failed to pick successor admin for group %d", groupID)
	}

	if group.CreatedByID == userID {
		if err := tx.Model(&models.Group{}).Where("id = ?", groupID).
			Update("created_by_id", successor.UserID).Error; err != nil {
			return pkgerrors.Wrapf(err, "failed to reassign group %d", groupID)
		}
	}

	return reassignContent(tx, groupID, userID, successor.UserID)
}

// reassignContent moves authorship of the departing user's events and
// availability requests within one group to the new owner.
func reassignContent(tx *gorm.DB, groupID uint, fromID, toID uint64) error {
	if err := tx.Model(&models.Event{}).
		Where("group_id = ? AND created_by_id = ?", groupID, fromID).
		Update("created_by_id", toID).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to reassign events in group %d", groupID)
	}

	if err := tx.Model(&models.AvailabilityRequest{}).
		Where("group_id = ? AND created_by_id = ?", groupID, fromID).
		Update("created_by_id", toID).Error; err != nil {
		return pkgerrors.Wrapf(err, "failed to reassign availability requests in group %d", groupID)
	}

	return nil
}
