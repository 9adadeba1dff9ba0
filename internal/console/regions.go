package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/realtime"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/monocle-dev/projectdesk/internal/views"
)

const (
	pathAdmin    = "/admin"
	pathProjects = "/projects"
)

// invalidates lists, per mutation, the regions whose content it changes.
var invalidates = map[types.ActionKind][]types.Region{
	types.ActionCreateProject: {types.RegionManagedProjects},
	types.ActionAddMember: {
		types.RegionMemberList,
		types.RegionAddMemberCandidates,
		types.RegionManagedProjects,
		types.RegionMemberProjects,
	},
	types.ActionRemoveMember: {
		types.RegionMemberList,
		types.RegionAddMemberCandidates,
		types.RegionManagedProjects,
		types.RegionMemberProjects,
	},
	types.ActionCloseProject: {
		types.RegionProjectDetail,
		types.RegionMemberList,
		types.RegionManagedProjects,
		types.RegionMemberProjects,
	},
	types.ActionDeleteProject: {
		types.RegionProjectDetail,
		types.RegionManagedProjects,
		types.RegionMemberProjects,
	},
	types.ActionPromoteUser: {types.RegionUsersTable},
	types.ActionDeleteUser: {
		types.RegionUsersTable,
		types.RegionMemberList,
		types.RegionAddMemberCandidates,
		types.RegionMemberProjects,
	},
}

// Invalidates returns the regions a mutation makes stale.
func Invalidates(kind types.ActionKind) []types.Region {
	return invalidates[kind]
}

func projectScoped(region types.Region) bool {
	switch region {
	case types.RegionProjectDetail, types.RegionMemberList, types.RegionAddMemberCandidates:
		return true
	}
	return false
}

// Route maps a navigation path to the regions its page shows. Detail
// pages also report their project id.
func Route(path string) ([]types.Region, uint, bool) {
	path = strings.TrimSuffix(path, "/")

	switch path {
	case pathAdmin:
		return []types.Region{types.RegionUsersTable}, 0, true
	case pathProjects:
		return []types.Region{types.RegionManagedProjects, types.RegionMemberProjects}, 0, true
	}

	rest, ok := strings.CutPrefix(path, pathProjects+"/")
	if !ok {
		return nil, 0, false
	}

	projectID, err := strconv.ParseUint(rest, 10, 32)
	if err != nil || projectID == 0 {
		return nil, 0, false
	}

	return []types.Region{types.RegionProjectDetail, types.RegionMemberList}, uint(projectID), true
}

func isProjectsPage(path string) bool {
	return strings.TrimSuffix(path, "/") == pathProjects
}

// contextProject is the project the page that sent event is about.
func contextProject(event Event) uint {
	if event.ProjectID != 0 {
		return event.ProjectID
	}
	_, projectID, _ := Route(event.Path)
	return projectID
}

// populate renders regions into out. Regions the actor may not see, and
// project regions without a project, are left out.
func (b *Bridge) populate(ctx context.Context, actor Actor, out *Outcome, projectID uint, regions ...types.Region) {
	var (
		project    *models.Project
		projectErr error
		loaded     bool
	)

	loadProject := func() (*models.Project, error) {
		if !loaded {
			project, projectErr = b.projects.GetProject(ctx, projectID)
			loaded = true
		}
		return project, projectErr
	}

	for _, region := range regions {
		var (
			view any
			err  error
		)

		switch {
		case region == types.RegionUsersTable:
			view, err = b.renderUsers(ctx, actor)
		case region == types.RegionManagedProjects || region == types.RegionMemberProjects:
			view, err = b.renderProjects(ctx, actor, region == types.RegionManagedProjects)
		case projectScoped(region) && projectID != 0:
			var p *models.Project
			p, err = loadProject()
			view, err = b.renderProject(ctx, actor, region, p, err)
		}

		if err != nil {
			b.logFailure(err, "populate "+string(region))
			continue
		}

		if view == nil {
			continue
		}

		if out.Regions == nil {
			out.Regions = make(map[types.Region]any)
		}
		out.Regions[region] = view
	}
}

func (b *Bridge) renderUsers(ctx context.Context, actor Actor) (any, error) {
	if !actor.IsAdmin {
		return nil, nil
	}

	users, err := b.users.AdminListUsers(ctx, actor.UserID)
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return views.UsersTable(users, actor.UserID), nil
}

func (b *Bridge) renderProjects(ctx context.Context, actor Actor, managed bool) (any, error) {
	var (
		projects []models.Project
		err      error
	)

	if managed {
		projects, err = b.projects.ListManagedProjects(ctx, actor.UserID)
	} else {
		projects, err = b.projects.ListMemberProjects(ctx, actor.UserID)
	}

	if err != nil {
		return nil, err
	}

	return views.ProjectsTable(projects, managed), nil
}

func (b *Bridge) renderProject(ctx context.Context, actor Actor, region types.Region, project *models.Project, err error) (any, error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		if region == types.RegionProjectDetail {
			return views.ProjectDetail(nil, actor.UserID), nil
		}
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	switch region {
	case types.RegionProjectDetail:
		return views.ProjectDetail(project, actor.UserID), nil
	case types.RegionMemberList:
		return views.MemberList(project, actor.UserID), nil
	default:
		users, err := b.users.ListAllUsers(ctx)
		if err != nil {
			return nil, err
		}
		return views.CandidateList(project, users), nil
	}
}

// toolbar renders the projects page buttons for the session's selection.
// A selection that no longer resolves is cleared.
func (b *Bridge) toolbar(ctx context.Context, actor Actor, session *Session) []views.Control {
	if session.SelectedProject == 0 {
		return views.ProjectsToolbar(nil, actor.UserID)
	}

	project, err := b.projects.GetProject(ctx, session.SelectedProject)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			b.logFailure(err, "load selected project")
		}
		session.SelectedProject = 0
		return views.ProjectsToolbar(nil, actor.UserID)
	}

	return views.ProjectsToolbar(project, actor.UserID)
}

// publish tells other browsers which regions went stale. List regions go
// to everyone; project regions only to viewers of each listed project.
func (b *Bridge) publish(regions []types.Region, projectIDs ...uint) {
	if b.publisher == nil {
		return
	}

	var global, scoped []types.Region
	for _, region := range regions {
		if projectScoped(region) {
			scoped = append(scoped, region)
		} else {
			global = append(global, region)
		}
	}

	if len(global) > 0 {
		b.publisher.Publish(realtime.GlobalTopic, global)
	}

	if len(scoped) == 0 {
		return
	}

	sent := make(map[uint]bool, len(projectIDs))
	for _, projectID := range projectIDs {
		if projectID == 0 || sent[projectID] {
			continue
		}
		sent[projectID] = true
		b.publisher.Publish(realtime.ProjectTopic(projectID), scoped)
	}
}

// Navigate populates the regions of the page at path. Unknown paths
// populate nothing.
func (b *Bridge) Navigate(ctx context.Context, actor Actor, path string) Outcome {
	session, unlock := b.sessions.Lock(actor.SessionID)
	defer unlock()

	out := Outcome{}

	// a page load renders every dialog closed
	session.Dialog.Close()
	session.enter(path)

	regions, projectID, ok := Route(path)
	if !ok {
		return b.finish(ctx, actor, session, path, out)
	}

	if strings.TrimSuffix(path, "/") == pathAdmin && !actor.IsAdmin {
		out.setMessage(LevelDanger, "Administrator privileges required")
		return b.finish(ctx, actor, session, path, out)
	}

	b.populate(ctx, actor, &out, projectID, regions...)

	return b.finish(ctx, actor, session, path, out)
}

// Announce publishes the invalidations of a mutation that happened outside
// the console, such as through the REST API. Project regions go to each of
// projectIDs.
func (b *Bridge) Announce(kind types.ActionKind, projectIDs ...uint) {
	b.publish(Invalidates(kind), projectIDs...)
}
