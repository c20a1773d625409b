package availability

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
		&models.AvailabilityRequest{},
		&models.AvailabilityResponse{},
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
	windowStart = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
)

func TestCreateRequest(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	testCases := []struct {
		name          string
		title         string
		createdBy     uint64
		windowEnd     time.Time
		expectedError error
	}{
		{name: "empty title", title: "", createdBy: user.ID, windowEnd: windowEnd, expectedError: ErrTitleEmpty},
		{name: "window ends before start", title: "poll", createdBy: user.ID, windowEnd: windowStart, expectedError: ErrWindowInvalid},
		{name: "creator not a member", title: "poll", createdBy: 404, windowEnd: windowEnd, expectedError: ErrNotMember},
		{name: "successful create", title: "poll", createdBy: user.ID, windowEnd: windowEnd},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request, err := CreateRequest(db, group.ID, tc.createdBy, tc.title, windowStart, tc.windowEnd, nil)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, request)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, group.ID, request.GroupID)
			assert.Equal(t, user.ID, request.CreatedByID)
		})
	}
}

func TestRespondUpserts(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	request, err := CreateRequest(db, group.ID, user.ID, "poll", windowStart, windowEnd, nil)
	require.NoError(t, err)

	first, err := Respond(db, request.ID, user.ID, models.StatusMaybe, "depends on work")
	require.NoError(t, err)
	assert.Equal(t, models.StatusMaybe, first.Status)

	// answering again replaces the earlier response
	second, err := Respond(db, request.ID, user.ID, models.StatusAvailable, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.StatusAvailable, second.Status)

	responses, err := Responses(db, request.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, models.StatusAvailable, responses[0].Status)
}

func TestRespondErrors(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	request, err := CreateRequest(db, group.ID, user.ID, "poll", windowStart, windowEnd, nil)
	require.NoError(t, err)

	_, err = Respond(db, 404, user.ID, models.StatusAvailable, "")
	require.ErrorIs(t, err, ErrRequestNotFound)

	_, err = Respond(db, request.ID, 404, models.StatusAvailable, "")
	require.ErrorIs(t, err, ErrNotMember)
}

func TestScheduleEvent(t *testing.T) {
	db := setupTestDB(t)
	group, user := seedGroupWithMember(t, db)

	request, err := CreateRequest(db, group.ID, user.ID, "september poll", windowStart, windowEnd, nil)
	require.NoError(t, err)

	startsAt := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	endsAt := startsAt.Add(3 * time.Hour)

	event, err := ScheduleEvent(db, request.ID, user.ID, "", "main stage", startsAt, endsAt)
	require.NoError(t, err)

	assert.Equal(t, group.ID, event.GroupID)
	assert.Equal(t, "september poll", event.Title, "empty title falls back to the request title")
	require.NotNil(t, event.AvailabilityRequestID)
	assert.Equal(t, request.ID, *event.AvailabilityRequestID)

	_, err = ScheduleEvent(db, 404, user.ID, "x", "", startsAt, endsAt)
	require.ErrorIs(t, err, ErrRequestNotFound)
}
