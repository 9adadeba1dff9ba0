package services_test

import (
	"context"
	"testing"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAllUsersOrderedByID(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 3, "carol", false)
	f.seedUser(t, 1, "alice", true)
	f.seedUser(t, 2, "bob", false)
	ctx := context.Background()

	users, err := f.users.ListAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "carol", users[2].Username)

	_, err = f.users.AdminListUsers(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	users, err = f.users.AdminListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestPromoteUserToAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "admin", true)
	f.seedUser(t, 2, "bob", false)
	ctx := context.Background()

	assert.ErrorIs(t, f.users.PromoteUserToAdmin(ctx, 1, 404), apperrors.ErrNotFound)

	require.NoError(t, f.users.PromoteUserToAdmin(ctx, 1, 2))

	user, err := f.users.GetUser(ctx, 2)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	audits := f.auditCount(t)
	require.NoError(t, f.users.PromoteUserToAdmin(ctx, 1, 2))
	assert.Equal(t, audits, f.auditCount(t))
}

func TestPromoteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "alice", false)
	f.seedUser(t, 2, "bob", false)
	ctx := context.Background()

	assert.ErrorIs(t, f.users.PromoteUserToAdmin(ctx, 1, 2), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, f.users.PromoteUserToAdmin(ctx, 404, 2), apperrors.ErrUnauthorized)

	user, err := f.users.GetUser(ctx, 2)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "admin", true)
	f.seedUser(t, 2, "manager", false)
	f.seedUser(t, 3, "member", false)
	ctx := context.Background()

	projectID, err := f.projects.CreateProject(ctx, 2, "Alpha", date(t, "2024-01-01"))
	require.NoError(t, err)
	require.NoError(t, f.projects.AddMember(ctx, 2, projectID, 3))

	t.Run("self deletion fails", func(t *testing.T) {
		_, err := f.users.DeleteUser(ctx, 1, 1)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "You cannot delete your own account", apperrors.UserMessage(err))
	})

	t.Run("non admin is rejected", func(t *testing.T) {
		_, err := f.users.DeleteUser(ctx, 3, 2)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := f.users.DeleteUser(ctx, 1, 404)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("managers are kept", func(t *testing.T) {
		_, err := f.users.DeleteUser(ctx, 1, 2)
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		_, err = f.users.GetUser(ctx, 2)
		assert.NoError(t, err)
	})

	t.Run("member is removed with memberships", func(t *testing.T) {
		memberOf, err := f.users.DeleteUser(ctx, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, []uint{projectID}, memberOf)

		_, err = f.users.GetUser(ctx, 3)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		project, err := f.projects.GetProject(ctx, projectID)
		require.NoError(t, err)
		assert.Empty(t, project.Memberships)
	})
}
