package services_test

import (
	"context"
	"testing"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectFixture seeds manager 42, users 7 and 8, outsider 99 and project
// "Alpha" starting 2024-01-01.
func projectFixture(t *testing.T) (*fixture, uint) {
	t.Helper()

	f := newFixture(t)
	f.seedUser(t, 42, "manager", false)
	f.seedUser(t, 7, "seven", false)
	f.seedUser(t, 8, "eight", false)
	f.seedUser(t, 99, "outsider", false)

	id, err := f.projects.CreateProject(context.Background(), 42, "Alpha", date(t, "2024-01-01"))
	require.NoError(t, err)

	return f, id
}

func TestCreateProject(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	project, err := f.projects.GetProject(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "Alpha", project.Name)
	assert.Equal(t, uint(42), project.Manager.ID)
	assert.Equal(t, "2024-01-01", project.StartDate.Format("2006-01-02"))
	assert.Empty(t, project.Memberships)
	assert.False(t, project.IsClosed())
	assert.Equal(t, int64(1), f.auditCount(t))
}

func TestCreateProjectValidation(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 1, "manager", false)
	ctx := context.Background()

	_, err := f.projects.CreateProject(ctx, 1, "   ", date(t, "2024-01-01"))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "name", apperrors.FieldOf(err))

	_, err = f.projects.CreateProject(ctx, 1, "Alpha", date(t, "0001-01-01"))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "start_date", apperrors.FieldOf(err))

	_, err = f.projects.CreateProject(ctx, 404, "Alpha", date(t, "2024-01-01"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProjectNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.projects.GetProject(context.Background(), 12345)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCloseProjectRequiresLaterEndDate(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	for _, end := range []string{"2023-12-31", "2024-01-01"} {
		err := f.projects.CloseProject(ctx, 42, id, date(t, end))
		require.ErrorIs(t, err, apperrors.ErrValidationFailed, end)
		assert.Equal(t, "end_date", apperrors.FieldOf(err))
		assert.Equal(t, "End date must be after the start date", apperrors.UserMessage(err))
	}

	project, err := f.projects.GetProject(ctx, id)
	require.NoError(t, err)
	assert.False(t, project.IsClosed())

	require.NoError(t, f.projects.CloseProject(ctx, 42, id, date(t, "2024-01-02")))

	project, err = f.projects.GetProject(ctx, id)
	require.NoError(t, err)
	require.True(t, project.IsClosed())
	assert.Equal(t, "2024-01-02", project.EndDate.Format("2006-01-02"))
}

func TestClosedProjectIsImmutable(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	require.NoError(t, f.projects.AddMember(ctx, 42, id, 7))
	require.NoError(t, f.projects.CloseProject(ctx, 42, id, date(t, "2024-06-30")))

	assert.ErrorIs(t, f.projects.AddMember(ctx, 42, id, 8), apperrors.ErrConflict)
	assert.ErrorIs(t, f.projects.RemoveMember(ctx, 42, id, 7), apperrors.ErrConflict)
	assert.ErrorIs(t, f.projects.CloseProject(ctx, 42, id, date(t, "2024-12-31")), apperrors.ErrConflict)

	project, err := f.projects.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, memberIDs(project))
	assert.Equal(t, "2024-06-30", project.EndDate.Format("2006-01-02"))
}

func TestAddThenRemoveMember(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	require.NoError(t, f.projects.AddMember(ctx, 42, id, 7))

	project, err := f.projects.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, memberIDs(project))
	assert.Equal(t, "seven", project.Members()[0].Username)

	require.NoError(t, f.projects.RemoveMember(ctx, 42, id, 7))

	project, err = f.projects.GetProject(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, memberIDs(project), uint(7))

	err = f.projects.RemoveMember(ctx, 42, id, 7)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAddMemberConflicts(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	err := f.projects.AddMember(ctx, 42, id, 42)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "The project manager cannot be added as a member", apperrors.UserMessage(err))

	require.NoError(t, f.projects.AddMember(ctx, 42, id, 7))
	assert.ErrorIs(t, f.projects.AddMember(ctx, 42, id, 7), apperrors.ErrConflict)

	assert.ErrorIs(t, f.projects.AddMember(ctx, 42, id, 404), apperrors.ErrNotFound)
}

func TestManagerOnlyOperations(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()
	before := f.auditCount(t)

	assert.ErrorIs(t, f.projects.AddMember(ctx, 99, id, 7), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, f.projects.RemoveMember(ctx, 99, id, 7), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, f.projects.CloseProject(ctx, 99, id, date(t, "2024-02-01")), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, f.projects.DeleteProject(ctx, 99, id), apperrors.ErrUnauthorized)

	project, err := f.projects.GetProject(ctx, id)
	require.NoError(t, err)
	assert.False(t, project.IsClosed())
	assert.Empty(t, project.Memberships)
	assert.Equal(t, before, f.auditCount(t))
}

func TestMissingProjectIsNotFoundBeforeAuthorization(t *testing.T) {
	f, _ := projectFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.projects.AddMember(ctx, 99, 777, 7), apperrors.ErrNotFound)
	assert.ErrorIs(t, f.projects.RemoveMember(ctx, 99, 777, 7), apperrors.ErrNotFound)
	assert.ErrorIs(t, f.projects.CloseProject(ctx, 99, 777, date(t, "2024-02-01")), apperrors.ErrNotFound)
	assert.ErrorIs(t, f.projects.DeleteProject(ctx, 99, 777), apperrors.ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	require.NoError(t, f.projects.AddMember(ctx, 42, id, 7))
	require.NoError(t, f.projects.CloseProject(ctx, 42, id, date(t, "2024-03-01")))

	require.NoError(t, f.projects.DeleteProject(ctx, 42, id))

	_, err := f.projects.GetProject(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	memberOf, err := f.projects.ListMemberProjects(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, memberOf)
}

func TestProjectListsAndCandidates(t *testing.T) {
	f, id := projectFixture(t)
	ctx := context.Background()

	second, err := f.projects.CreateProject(ctx, 42, "Beta", date(t, "2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, f.projects.AddMember(ctx, 42, second, 7))

	managed, err := f.projects.ListManagedProjects(ctx, 42)
	require.NoError(t, err)
	require.Len(t, managed, 2)
	assert.Equal(t, id, managed[0].ID)
	assert.Equal(t, second, managed[1].ID)

	memberOf, err := f.projects.ListMemberProjects(ctx, 7)
	require.NoError(t, err)
	require.Len(t, memberOf, 1)
	assert.Equal(t, "Beta", memberOf[0].Name)

	candidates, err := f.projects.AddMemberCandidates(ctx, second)
	require.NoError(t, err)

	var ids []uint
	for _, user := range candidates {
		ids = append(ids, user.ID)
	}
	assert.ElementsMatch(t, []uint{8, 99}, ids)

	_, err = f.projects.AddMemberCandidates(ctx, 777)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
