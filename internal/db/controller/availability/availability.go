// Package availability provides availability polling: requests, member
// responses, and scheduling events from a poll.
package availability

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
)

const memberQueryPattern = "group_id = ? AND user_id = ?"

// CreateRequest opens an availability poll in the group. The creator must be
// a member of the group.
func CreateRequest(
	db *gorm.DB,
	groupID uint, createdBy uint64,
	title string,
	windowStart, windowEnd time.Time,
	deadline *time.Time,
) (*models.AvailabilityRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if title == "" {
		return nil, ErrTitleEmpty
	}
	if !windowEnd.After(windowStart) {
		return nil, ErrWindowInvalid
	}

	if err := requireMember(db, groupID, createdBy); err != nil {
		return nil, err
	}

	request := &models.AvailabilityRequest{
		GroupID:     groupID,
		CreatedByID: createdBy,
		Title:       title,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Deadline:    deadline,
	}
	if err := db.Create(request).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create availability request")
	}

	return request, nil
}

// GetRequest retrieves an availability request by its ID.
func GetRequest(db *gorm.DB, id uint64) (*models.AvailabilityRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var request models.AvailabilityRequest
	result := db.First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, result.Error
	}

	return &request, nil
}

// Respond records a member's answer to a request (upsert: answering again
// replaces the earlier response).
func Respond(
	db *gorm.DB,
	requestID, userID uint64,
	status models.AvailabilityStatus, note string,
) (*models.AvailabilityResponse, error) {
	request, err := GetRequest(db, requestID)
	if err != nil {
		return nil, err
	}

	if err := requireMember(db, request.GroupID, userID); err != nil {
		return nil, err
	}

	var response models.AvailabilityResponse
	result := db.Where("request_id = ? AND user_id = ?", requestID, userID).First(&response)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		response = models.AvailabilityResponse{
			RequestID: requestID,
			UserID:    userID,
			Status:    status,
			Note:      note,
		}
		if err := db.Create(&response).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "failed to create response")
		}

		return &response, nil
	}
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "failed to load response")
	}

	response.Status = status
	response.Note = note
	if err := db.Save(&response).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to update response")
	}

	return &response, nil
}

// Responses lists all answers to a request.
func Responses(db *gorm.DB, requestID uint64) ([]models.AvailabilityResponse, error) {
	if _, err := GetRequest(db, requestID); err != nil {
		return nil, err
	}

	var responses []models.AvailabilityResponse
	err := db.Where("request_id = ?", requestID).
		Order("user_id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to load responses")
	}

	return responses, nil
}

// ScheduleEvent turns a poll into a scheduled event in the request's group,
// linked back to the request.
func ScheduleEvent(
	db *gorm.DB,
	requestID uint64, createdBy uint64,
	title, location string,
	startsAt, endsAt time.Time,
) (*models.Event, error) {
	request, err := GetRequest(db, requestID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = request.Title
	}

	if err := requireMember(db, request.GroupID, createdBy); err != nil {
		return nil, err
	}

	event := &models.Event{
		GroupID:               request.GroupID,
		CreatedByID:           createdBy,
		Title:                 title,
		Location:              location,
		StartsAt:              startsAt,
		EndsAt:                endsAt,
		AvailabilityRequestID: &request.ID,
	}
	if err := db.Create(event).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create event from request")
	}

	return event, nil
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
