package views

import (
	"testing"
	"time"

	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id uint, username string, admin bool) models.User {
	return models.User{
		BaseModel: models.BaseModel{ID: id},
		Username:  username,
		Email:     username + "@example.com",
		IsAdmin:   admin,
	}
}

func project(t *testing.T, closed bool, members ...models.User) *models.Project {
	t.Helper()

	start, err := types.ParseDate("2024-01-01")
	require.NoError(t, err)

	p := &models.Project{
		BaseModel: models.BaseModel{ID: 5},
		Name:      "Alpha",
		StartDate: start,
		ManagerID: 42,
		Manager:   user(42, "manager", false),
	}

	if closed {
		end := start.AddDate(0, 6, 0)
		p.EndDate = &end
	}

	for i, member := range members {
		p.Memberships = append(p.Memberships, models.ProjectMembership{
			ID:        uint(i + 1),
			ProjectID: p.ID,
			UserID:    member.ID,
			User:      member,
			CreatedAt: time.Now(),
		})
	}

	return p
}

func kinds(controls []Control) []types.ActionKind {
	out := make([]types.ActionKind, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.ID.Kind)
	}
	return out
}

func TestUsersTable(t *testing.T) {
	users := []models.User{
		user(1, "admin", true),
		user(2, "other-admin", true),
		user(3, "bob", false),
	}

	table := UsersTable(users, 1)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, types.RegionUsersTable, table.Region)

	self := table.Rows[0]
	assert.Equal(t, selfNote, self.Note)
	assert.Empty(t, self.Controls)
	assert.Equal(t, "Admin", self.Cells["type"])

	assert.Equal(t, []types.ActionKind{types.ActionDeleteUser}, kinds(table.Rows[1].Controls))

	bob := table.Rows[2]
	assert.Equal(t, "User", bob.Cells["type"])
	assert.Equal(t, []types.ActionKind{types.ActionPromoteUser, types.ActionDeleteUser}, kinds(bob.Controls))
	assert.Equal(t, uint(3), bob.Controls[0].ID.Target)
}

func TestProjectsTable(t *testing.T) {
	open := project(t, false, user(7, "seven", false), user(8, "eight", false))
	closed := project(t, true)
	closed.ID = 6

	table := ProjectsTable([]models.Project{*open, *closed}, true)

	assert.Equal(t, types.RegionManagedProjects, table.Region)
	assert.True(t, table.Selectable)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Active", table.Rows[0].Cells["status"])
	assert.Equal(t, "Not set", table.Rows[0].Cells["end_date"])
	assert.Equal(t, "2", table.Rows[0].Cells["member_count"])
	assert.Equal(t, "manager", table.Rows[0].Cells["manager"])
	assert.Equal(t, "Members: seven, eight", table.Rows[0].Tooltip)

	assert.Equal(t, "Completed", table.Rows[1].Cells["status"])
	assert.Equal(t, "2024-07-01", table.Rows[1].Cells["end_date"])
	assert.Equal(t, "Members: None", table.Rows[1].Tooltip)

	assert.Equal(t, types.RegionMemberProjects, ProjectsTable(nil, false).Region)
}

func TestProjectsToolbar(t *testing.T) {
	open := project(t, false)

	assert.Equal(t,
		[]types.ActionKind{types.ActionCreateProject, types.ActionRefresh},
		kinds(ProjectsToolbar(nil, 42)))

	assert.Equal(t,
		[]types.ActionKind{types.ActionCreateProject, types.ActionViewProject, types.ActionAddMember, types.ActionCloseProject, types.ActionRefresh},
		kinds(ProjectsToolbar(open, 42)))

	assert.Equal(t,
		[]types.ActionKind{types.ActionCreateProject, types.ActionViewProject, types.ActionRefresh},
		kinds(ProjectsToolbar(open, 7)))
}

func TestProjectDetail(t *testing.T) {
	open := project(t, false)

	detail := ProjectDetail(open, 42)
	assert.Equal(t, "Alpha", detail.Title)
	assert.Equal(t, "Active", detail.Badge)
	assert.Equal(t,
		[]types.ActionKind{types.ActionRefresh, types.ActionCloseProject, types.ActionDeleteProject},
		kinds(detail.Controls))

	closed := project(t, true)
	assert.Equal(t,
		[]types.ActionKind{types.ActionRefresh, types.ActionDeleteProject},
		kinds(ProjectDetail(closed, 42).Controls))

	assert.Equal(t, []types.ActionKind{types.ActionRefresh}, kinds(ProjectDetail(open, 7).Controls))

	missing := ProjectDetail(nil, 42)
	assert.Equal(t, "Project Not Found", missing.Title)
	assert.Equal(t, "/projects", missing.Links[0].Href)
}

func TestMemberList(t *testing.T) {
	open := project(t, false, user(7, "seven", false))

	list := MemberList(open, 42)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "seven", list.Items[0].Text)
	assert.Equal(t, types.ControlID{Kind: types.ActionRemoveMember, Target: 7}, list.Items[0].Controls[0].ID)
	assert.Equal(t, []types.ActionKind{types.ActionAddMember}, kinds(list.Controls))

	asMember := MemberList(open, 7)
	assert.Empty(t, asMember.Items[0].Controls)
	assert.Empty(t, asMember.Controls)

	closed := project(t, true, user(7, "seven", false))
	assert.Empty(t, MemberList(closed, 42).Items[0].Controls)
	assert.Empty(t, MemberList(closed, 42).Controls)

	assert.Empty(t, MemberList(project(t, false), 42).Items)
}

func TestCandidateList(t *testing.T) {
	p := project(t, false, user(7, "seven", false))
	users := []models.User{user(42, "manager", false), user(7, "seven", false), user(8, "eight", false)}

	list := CandidateList(p, users)

	assert.Equal(t, types.RegionAddMemberCandidates, list.Region)
	require.Len(t, list.Items, 1)
	assert.Equal(t, uint(8), list.Items[0].Key)
}
