package deletion

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.Event{},
		&models.AvailabilityRequest{},
		&models.AvailabilityResponse{},
		&models.EventAssignment{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id uint64, name string) models.User {
	t.Helper()

	user := models.User{
		ID:          id,
		Email:       fmt.Sprintf("%s@example.com", name),
		DisplayName: name,
	}
	require.NoError(t, db.Create(&user).Error, "failed to seed user")

	return user
}

func seedGroup(t *testing.T, db *gorm.DB, id uint, name string, createdBy uint64) models.Group {
	t.Helper()

	group := models.Group{
		ID:          id,
		Name:        name,
		InviteCode:  fmt.Sprintf("CODE%04d", id),
		CreatedByID: createdBy,
	}
	require.NoError(t, db.Create(&group).Error, "failed to seed group")

	return group
}

func seedMembership(
	t *testing.T, db *gorm.DB,
	groupID uint, userID uint64, role models.MembershipRole, joinedAt time.Time,
) models.Membership {
	t.Helper()

	m := models.Membership{
		GroupID:   groupID,
		UserID:    userID,
		Role:      role,
		CreatedAt: joinedAt,
	}
	require.NoError(t, db.Create(&m).Error, "failed to seed membership")

	return m
}

func seedEvent(t *testing.T, db *gorm.DB, id uint64, groupID uint, createdBy uint64) models.Event {
	t.Helper()

	event := models.Event{
		ID:          id,
		GroupID:     groupID,
		CreatedByID: createdBy,
		Title:       fmt.Sprintf("event-%d", id),
		StartsAt:    time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&event).Error, "failed to seed event")

	return event
}

func seedRequest(t *testing.T, db *gorm.DB, id uint64, groupID uint, createdBy uint64) models.AvailabilityRequest {
	t.Helper()

	request := models.AvailabilityRequest{
		ID:          id,
		GroupID:     groupID,
		CreatedByID: createdBy,
		Title:       fmt.Sprintf("request-%d", id),
		WindowStart: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&request).Error, "failed to seed availability request")

	return request
}

func seedResponse(t *testing.T, db *gorm.DB, requestID, userID uint64) models.AvailabilityResponse {
	t.Helper()

	response := models.AvailabilityResponse{
		RequestID: requestID,
		UserID:    userID,
		Status:    models.StatusAvailable,
	}
	require.NoError(t, db.Create(&response).Error, "failed to seed availability response")

	return response
}

func seedAssignment(t *testing.T, db *gorm.DB, eventID, userID uint64) models.EventAssignment {
	t.Helper()

	assignment := models.EventAssignment{
		EventID: eventID,
		UserID:  userID,
		Status:  models.AssignmentConfirmed,
	}
	require.NoError(t, db.Create(&assignment).Error, "failed to seed event assignment")

	return assignment
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&count).Error)

	return count
}

// adminCount returns the number of admin memberships of a group.
func adminCount(t *testing.T, db *gorm.DB, groupID uint) int64 {
	t.Helper()

	return countRows(t, db, &models.Membership{},
		"group_id = ? AND role = ?", groupID, models.RoleAdmin)
}
