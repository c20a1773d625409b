// Package event provides operations for group events and their cast assignments.
package event

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
)

const memberQueryPattern = "group_id = ? AND user_id = ?"

// Create creates an event in the group, attributed to createdBy.
// The creator must be a member of the group.
func Create(
	db *gorm.DB,
	groupID uint, createdBy uint64,
	title, location string,
	startsAt, endsAt time.Time,
) (*models.Event, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if title == "" {
		return nil, ErrTitleEmpty
	}

	if err := requireMember(db, groupID, createdBy); err != nil {
		return nil, err
	}

	event := &models.Event{
		GroupID:     groupID,
		CreatedByID: createdBy,
		Title:       title,
		Location:    location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if err := db.Create(event).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create event")
	}

	return event, nil
}

// GetByID retrieves an event by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Event, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var event models.Event
	result := db.First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, result.Error
	}

	return &event, nil
}

// ListByGroup lists a group's events ordered by start time.
func ListByGroup(db *gorm.DB, groupID uint) ([]models.Event, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var events []models.Event
	err := db.Where("group_id = ?", groupID).
		Order("starts_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load events")
	}

	return events, nil
}

// Assign casts a group member into an event with a proposed assignment.
func Assign(db *gorm.DB, eventID uint64, userID uint64) (*models.EventAssignment, error) {
	event, err := GetByID(db, eventID)
	if err != nil {
		return nil, err
	}

	if err := requireMember(db, event.GroupID, userID); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&models.EventAssignment{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).Count(&existing).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to check assignment")
	}
	if existing > 0 {
		return nil, ErrAlreadyAssigned
	}

	assignment := &models.EventAssignment{
		EventID: eventID,
		UserID:  userID,
		Status:  models.AssignmentProposed,
	}
	if err := db.Create(assignment).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create assignment")
	}

	return assignment, nil
}

// SetAssignmentStatus updates the status of an existing assignment.
func SetAssignmentStatus(db *gorm.DB, eventID, userID uint64, status models.AssignmentStatus) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.EventAssignment{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("status", status)
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to update assignment")
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

func requireMember(db *gorm.DB, groupID uint, userID uint64) error {
	var count int64
	if err := db.Model(&models.Membership{}).
		Where(memberQueryPattern, groupID, userID).Count(&count).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to check membership")
	}

	if count == 0 {
		return ErrNotMember
	}

	return nil
}
