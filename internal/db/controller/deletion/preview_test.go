package deletion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callboard/callboard/internal/db/models"
)

func TestComputeDeletionPreviewErrors(t *testing.T) {
	db := setupTestDB(t)

	deletedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	gone := models.User{ID: 9, Email: "gone@example.com", DisplayName: "gone", DeletedAt: &deletedAt}
	require.NoError(t, db.Create(&gone).Error)

	testCases := []struct {
		name          string
		userID        uint64
		expectedError error
	}{
		{name: "user not found", userID: 404, expectedError: ErrUserNotFound},
		{name: "user already deleted", userID: 9, expectedError: ErrUserDeleted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			preview, err := ComputeDeletionPreview(db, tc.userID)
			require.ErrorIs(t, err, tc.expectedError)
			assert.Nil(t, preview)
		})
	}
}

func TestComputeDeletionPreviewNilDB(t *testing.T) {
	preview, err := ComputeDeletionPreview(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)
	assert.Nil(t, preview)
}

func TestComputeDeletionPreviewNoMemberships(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, 1, "loner")

	preview, err := ComputeDeletionPreview(db, 1)
	require.NoError(t, err)

	assert.Empty(t, preview.SoleAdminGroups)
	assert.Empty(t, preview.SharedAdminGroups)
	assert.Empty(t, preview.MemberOnlyGroups)
	assert.Zero(t, preview.CreatedEventCount)
	assert.Zero(t, preview.CreatedRequestCount)
}

func TestComputeDeletionPreviewClassification(t *testing.T) {
	db := setupTestDB(t)

	leaving := seedUser(t, db, 1, "leaving")
	alice := seedUser(t, db, 2, "alice")
	bob := seedUser(t, db, 3, "bob")

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// sole-admin: leaving is the only admin, alice and bob are members
	solo := seedGroup(t, db, 10, "solo", leaving.ID)
	seedMembership(t, db, solo.ID, leaving.ID, models.RoleAdmin, t0)
	seedMembership(t, db, solo.ID, alice.ID, models.RoleMember, t0.Add(time.Hour))
	seedMembership(t, db, solo.ID, bob.ID, models.RoleMember, t0.Add(2*time.Hour))

	// shared-admin: alice is also an admin
	shared := seedGroup(t, db, 11, "shared", leaving.ID)
	seedMembership(t, db, shared.ID, leaving.ID, models.RoleAdmin, t0)
	seedMembership(t, db, shared.ID, alice.ID, models.RoleAdmin, t0.Add(time.Hour))

	// member-only: bob runs this one
	plain := seedGroup(t, db, 12, "plain", bob.ID)
	seedMembership(t, db, plain.ID, bob.ID, models.RoleAdmin, t0)
	seedMembership(t, db, plain.ID, leaving.ID, models.RoleMember, t0.Add(time.Hour))

	seedEvent(t, db, 100, solo.ID, leaving.ID)
	seedEvent(t, db, 101, shared.ID, alice.ID)
	seedRequest(t, db, 200, solo.ID, leaving.ID)
	seedRequest(t, db, 201, shared.ID, leaving.ID)

	preview, err := ComputeDeletionPreview(db, leaving.ID)
	require.NoError(t, err)

	require.Len(t, preview.SoleAdminGroups, 1)
	require.Len(t, preview.SharedAdminGroups, 1)
	require.Len(t, preview.MemberOnlyGroups, 1)

	soloPreview := preview.SoleAdminGroups[0]
	assert.Equal(t, solo.ID, soloPreview.GroupID)
	assert.Equal(t, "solo", soloPreview.GroupName)
	assert.Equal(t, models.RoleAdmin, soloPreview.Role)
	assert.True(t, soloPreview.IsSoleAdmin)
	assert.Equal(t, 3, soloPreview.MemberCount)
	assert.Empty(t, soloPreview.OtherAdmins)
	require.Len(t, soloPreview.OtherMembers, 2)
	assert.Equal(t, alice.ID, soloPreview.OtherMembers[0].UserID)
	assert.Equal(t, "alice", soloPreview.OtherMembers[0].DisplayName)

	sharedPreview := preview.SharedAdminGroups[0]
	assert.Equal(t, shared.ID, sharedPreview.GroupID)
	assert.False(t, sharedPreview.IsSoleAdmin)
	assert.Equal(t, 2, sharedPreview.MemberCount)
	require.Len(t, sharedPreview.OtherAdmins, 1)
	assert.Equal(t, alice.ID, sharedPreview.OtherAdmins[0].UserID)
	assert.Empty(t, sharedPreview.OtherMembers)

	plainPreview := preview.MemberOnlyGroups[0]
	assert.Equal(t, plain.ID, plainPreview.GroupID)
	assert.Equal(t, models.RoleMember, plainPreview.Role)
	assert.False(t, plainPreview.IsSoleAdmin)
	require.Len(t, plainPreview.OtherAdmins, 1)
	assert.Equal(t, bob.ID, plainPreview.OtherAdmins[0].UserID)

	// only rows authored by the leaving user count
	assert.Equal(t, int64(1), preview.CreatedEventCount)
	assert.Equal(t, int64(2), preview.CreatedRequestCount)
}

func TestComputeDeletionPreviewIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	leaving := seedUser(t, db, 1, "leaving")
	alice := seedUser(t, db, 2, "alice")

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	group := seedGroup(t, db, 10, "duo", leaving.ID)
	seedMembership(t, db, group.ID, leaving.ID, models.RoleAdmin, t0)
	seedMembership(t, db, group.ID, alice.ID, models.RoleMember, t0.Add(time.Hour))

	first, err := ComputeDeletionPreview(db, leaving.ID)
	require.NoError(t, err)

	second, err := ComputeDeletionPreview(db, leaving.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
