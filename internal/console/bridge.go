// Package console bridges browser events to domain operations. It works
// out which control fired, drives the confirmation dialogs, runs the
// operation for the acting user and re-renders the regions the operation
// made stale.
package console

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/monocle-dev/projectdesk/internal/views"
	"github.com/sirupsen/logrus"
)

type ProjectOperations interface {
	CreateProject(ctx context.Context, managerID uint, name string, startDate time.Time) (uint, error)
	GetProject(ctx context.Context, projectID uint) (*models.Project, error)
	ListManagedProjects(ctx context.Context, userID uint) ([]models.Project, error)
	ListMemberProjects(ctx context.Context, userID uint) ([]models.Project, error)
	AddMember(ctx context.Context, actingUserID, projectID, userID uint) error
	RemoveMember(ctx context.Context, actingUserID, projectID, userID uint) error
	CloseProject(ctx context.Context, actingUserID, projectID uint, endDate time.Time) error
	DeleteProject(ctx context.Context, actingUserID, projectID uint) error
}

type UserOperations interface {
	ListAllUsers(ctx context.Context) ([]models.User, error)
	AdminListUsers(ctx context.Context, actingUserID uint) ([]models.User, error)
	PromoteUserToAdmin(ctx context.Context, actingUserID, userID uint) error
	DeleteUser(ctx context.Context, actingUserID, userID uint) ([]uint, error)
}

// Publisher receives region invalidations for other connected browsers.
type Publisher interface {
	Publish(topic string, regions []types.Region)
}

type Bridge struct {
	projects  ProjectOperations
	users     UserOperations
	sessions  *Sessions
	publisher Publisher
	log       *logrus.Entry
}

func NewBridge(projects ProjectOperations, users UserOperations, sessions *Sessions, publisher Publisher) *Bridge {
	return &Bridge{
		projects:  projects,
		users:     users,
		sessions:  sessions,
		publisher: publisher,
		log:       logging.For("console"),
	}
}

func (b *Bridge) Sessions() *Sessions {
	return b.sessions
}

// Handle processes one event for actor. It never fails: domain failures
// come back as a danger message, and events without a single fired,
// well-formed control leave everything as it was.
func (b *Bridge) Handle(ctx context.Context, actor Actor, event Event) Outcome {
	session, unlock := b.sessions.Lock(actor.SessionID)
	defer unlock()

	out := Outcome{}

	if event.Path != "" {
		session.enter(event.Path)
	}

	control, fired := session.tracker.Fired(event.Controls)
	id := control.ID()
	if !fired || !id.Valid() {
		return b.finish(ctx, actor, session, event.Path, out)
	}

	dialog := control.Dialog
	if dialog == types.DialogNone {
		dialog = event.Dialog
	}

	b.log.WithFields(logrus.Fields{
		"user_id": actor.UserID,
		"action":  id.Kind,
		"target":  id.Target,
	}).Debug("Console event")

	switch id.Kind {
	case types.ActionCreateProject:
		b.openDialog(session, &out, types.DialogCreateProject, 0)
	case types.ActionViewProject:
		session.SelectedProject = id.Target
		out.Redirect = views.ProjectPath(id.Target)
	case types.ActionSelectProject:
		b.selectProject(ctx, session, &out, id.Target)
	case types.ActionAddMember:
		target := resolveProject(id, session, event)
		if b.openDialog(session, &out, types.DialogAddMember, target) {
			b.populate(ctx, actor, &out, target, types.RegionAddMemberCandidates)
		}
	case types.ActionCloseProject:
		b.openDialog(session, &out, types.DialogCloseProject, resolveProject(id, session, event))
	case types.ActionDeleteProject:
		b.openDialog(session, &out, types.DialogDeleteProject, id.Target)
	case types.ActionPromoteUser:
		b.openDialog(session, &out, types.DialogPromoteUser, id.Target)
	case types.ActionDeleteUser:
		b.openDialog(session, &out, types.DialogDeleteUser, id.Target)
	case types.ActionRemoveMember:
		b.removeMember(ctx, actor, session, &out, event, id.Target)
	case types.ActionConfirm:
		b.confirm(ctx, actor, session, &out, event, dialog)
	case types.ActionCancel:
		if dialog != types.DialogNone && dialog == session.Dialog.Kind {
			session.Dialog.Close()
		}
	case types.ActionRefresh:
		b.refresh(ctx, actor, &out, event)
	}

	return b.finish(ctx, actor, session, event.Path, out)
}

func (b *Bridge) finish(ctx context.Context, actor Actor, session *Session, path string, out Outcome) Outcome {
	if isProjectsPage(path) {
		out.Toolbar = b.toolbar(ctx, actor, session)
	}

	out.Dialog = session.Dialog
	out.SelectedProject = session.SelectedProject
	return out
}

// resolveProject picks the project a toolbar or per-row control acts on:
// its own target, else the page's project, else the selected row.
func resolveProject(id types.ControlID, session *Session, event Event) uint {
	if id.Target != 0 {
		return id.Target
	}
	if projectID := contextProject(event); projectID != 0 {
		return projectID
	}
	return session.SelectedProject
}

func (b *Bridge) openDialog(session *Session, out *Outcome, kind types.DialogKind, target uint) bool {
	if session.Dialog.Open(kind, target) {
		return true
	}

	if !session.Dialog.IsOpen() && kind.NeedsTarget() && target == 0 {
		out.setMessage(LevelWarning, "Select a project first")
	}

	return false
}

func (b *Bridge) selectProject(ctx context.Context, session *Session, out *Outcome, projectID uint) {
	if _, err := b.projects.GetProject(ctx, projectID); err != nil {
		session.SelectedProject = 0
		b.fail(out, err)
		return
	}

	session.SelectedProject = projectID
}

func (b *Bridge) removeMember(ctx context.Context, actor Actor, session *Session, out *Outcome, event Event, userID uint) {
	projectID := contextProject(event)
	if projectID == 0 {
		projectID = session.SelectedProject
	}

	if projectID == 0 {
		return
	}

	if err := b.projects.RemoveMember(ctx, actor.UserID, projectID, userID); err != nil {
		b.fail(out, err)
		return
	}

	out.setMessage(LevelSuccess, "Member removed successfully")
	b.invalidate(ctx, actor, out, projectID, types.ActionRemoveMember)
}

// confirm runs the operation of the open dialog when the confirm button
// belongs to it. The dialog closes afterwards unless a form field was
// rejected, so the user can correct it.
func (b *Bridge) confirm(ctx context.Context, actor Actor, session *Session, out *Outcome, event Event, kind types.DialogKind) {
	dialog := session.Dialog

	if !dialog.IsOpen() || kind != dialog.Kind {
		return
	}

	var (
		err       error
		success   string
		projectID = dialog.Target
		affected  []uint
	)

	switch dialog.Kind {
	case types.DialogCreateProject:
		var startDate time.Time
		startDate, err = dateValue(event, "start_date", "Start date")
		if err == nil {
			projectID, err = b.projects.CreateProject(ctx, actor.UserID, event.Values["name"], startDate)
		}
		success = "Project created successfully"
	case types.DialogAddMember:
		var userID uint
		userID, err = idValue(event, "user_id", "Select a user to add")
		if err == nil {
			err = b.projects.AddMember(ctx, actor.UserID, dialog.Target, userID)
		}
		success = "Member added successfully"
	case types.DialogCloseProject:
		var endDate time.Time
		endDate, err = dateValue(event, "end_date", "End date")
		if err == nil {
			err = b.projects.CloseProject(ctx, actor.UserID, dialog.Target, endDate)
		}
		success = "Project closed successfully"
	case types.DialogDeleteProject:
		err = b.projects.DeleteProject(ctx, actor.UserID, dialog.Target)
		success = "Project deleted successfully"
	case types.DialogPromoteUser:
		err = b.users.PromoteUserToAdmin(ctx, actor.UserID, dialog.Target)
		success = "User promoted to admin successfully"
		projectID = 0
	case types.DialogDeleteUser:
		affected, err = b.users.DeleteUser(ctx, actor.UserID, dialog.Target)
		success = "User deleted successfully"
		projectID = contextProject(event)
	}

	if err != nil {
		if field := apperrors.FieldOf(err); field != "" && apperrors.KindOf(err) == apperrors.KindValidationFailed {
			out.FieldErrors = map[string]string{field: apperrors.UserMessage(err)}
			return
		}

		session.Dialog.Close()
		b.fail(out, err)
		return
	}

	session.Dialog.Close()
	out.setMessage(LevelSuccess, success)

	if dialog.Kind == types.DialogDeleteProject {
		if session.SelectedProject == dialog.Target {
			session.SelectedProject = 0
		}
		if contextProject(event) == dialog.Target {
			out.Redirect = pathProjects
		}
	}

	b.invalidate(ctx, actor, out, projectID, types.ActionKind(dialog.Kind), affected...)
}

func (b *Bridge) refresh(ctx context.Context, actor Actor, out *Outcome, event Event) {
	regions, projectID, ok := Route(event.Path)

	if !ok {
		if event.ProjectID == 0 {
			return
		}
		regions, projectID = []types.Region{types.RegionProjectDetail, types.RegionMemberList}, event.ProjectID
	}

	b.populate(ctx, actor, out, projectID, regions...)
}

// invalidate records, re-renders and publishes the regions kind makes
// stale. Project regions are re-rendered for projectID and published for
// it and for every project in also.
func (b *Bridge) invalidate(ctx context.Context, actor Actor, out *Outcome, projectID uint, kind types.ActionKind, also ...uint) {
	regions := Invalidates(kind)

	out.Invalidated = append(out.Invalidated, regions...)
	b.populate(ctx, actor, out, projectID, regions...)
	b.publish(regions, append([]uint{projectID}, also...)...)
}

func (b *Bridge) fail(out *Outcome, err error) {
	b.logFailure(err, "console operation")
	out.setMessage(LevelDanger, apperrors.UserMessage(err))
}

func (b *Bridge) logFailure(err error, operation string) {
	if apperrors.IsDomain(err) {
		return
	}
	b.log.WithError(err).Error(operation + " failed")
}

func dateValue(event Event, field, label string) (time.Time, error) {
	value := strings.TrimSpace(event.Values[field])

	if value == "" {
		return time.Time{}, apperrors.Validation(field, label+" is required")
	}

	parsed, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.Validation(field, label+" must be a valid date (YYYY-MM-DD)")
	}

	return parsed, nil
}

func idValue(event Event, field, missing string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(event.Values[field]), 10, 32)

	if err != nil || parsed == 0 {
		return 0, apperrors.Validation(field, missing)
	}

	return uint(parsed), nil
}
