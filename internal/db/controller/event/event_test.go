package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.Event{},
		&models.EventAssignment{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedGroupWithMember(t *testing.T, db *gorm.DB) (models.Group, models.User) {
	t.Helper()

	user := models.User{ID: 1, Email: "ann@example.com", DisplayName: "ann"}
	require.NoError(t, db.Create(&user).Error)

	group := models.Group{ID: 10, Name: "troupe", InviteCode: "CODE0010", CreatedByID: user.ID}
	require.NoError(t, db.Create(&group).Error)

	membership := models.Membership{GroupID: group.ID, UserID: user.ID, Role: models.RoleAdmin}
	require.NoError(t, db.Create(&membership).Error)

	return group, user
}

var (
	startsAt = time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	endsAt   = time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC)
)

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	testCases := []struct {
		name          string
		title         string
		createdBy     uint64
		expectedError error
	}{
		{name: "empty title", title: "", createdBy: user.ID, expectedError: ErrTitleEmpty},
		{name: "creator not a member", title: "show", createdBy: 404, expectedError: ErrNotMember},
		{name: "successful create", title: "show", createdBy: user.ID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := Create(db, group.ID, tc.createdBy, tc.title, "stage left", startsAt, endsAt)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, event)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, group.ID, event.GroupID)
			assert.Equal(t, user.ID, event.CreatedByID)
		})
	}
}

func TestListByGroup(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	late, err := Create(db, group.ID, user.ID, "late show", "", startsAt.Add(time.Hour), endsAt.Add(time.Hour))
	require.NoError(t, err)

	early, err := Create(db, group.ID, user.ID, "early show", "", startsAt, endsAt)
	require.NoError(t, err)

	events, err := ListByGroup(db, group.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, early.ID, events[0].ID, "events must be ordered by start time")
	assert.Equal(t, late.ID, events[1].ID)
}

func TestAssign(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	event, err := Create(db, group.ID, user.ID, "show", "", startsAt, endsAt)
	require.NoError(t, err)

	assignment, err := Assign(db, event.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentProposed, assignment.Status)

	_, err = Assign(db, event.ID, user.ID)
	require.ErrorIs(t, err, ErrAlreadyAssigned)

	_, err = Assign(db, 404, user.ID)
	require.ErrorIs(t, err, ErrEventNotFound)

	_, err = Assign(db, event.ID, 404)
	require.ErrorIs(t, err, ErrNotMember)
}

func TestSetAssignmentStatus(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	event, err := Create(db, group.ID, user.ID, "show", "", startsAt, endsAt)
	require.NoError(t, err)

	_, err = Assign(db, event.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, SetAssignmentStatus(db, event.ID, user.ID, models.AssignmentConfirmed))

	var assignment models.EventAssignment
	require.NoError(t, db.Where("event_id = ? AND user_id = ?", event.ID, user.ID).
		First(&assignment).Error)
	assert.Equal(t, models.AssignmentConfirmed, assignment.Status)

	err = SetAssignmentStatus(db, event.ID, 404, models.AssignmentDeclined)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}
