package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/store"
	"github.com/monocle-dev/projectdesk/internal/types"
)

type ProjectService struct {
	repo store.Repository
}

func NewProjectService(repo store.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

type projectInput struct {
	Name      string    `json:"name" validate:"required,max=255"`
	StartDate time.Time `json:"start_date" validate:"required"`
}

// CreateProject creates an open project managed by managerID and returns
// its id.
func (s *ProjectService) CreateProject(ctx context.Context, managerID uint, name string, startDate time.Time) (uint, error) {
	input := projectInput{Name: strings.TrimSpace(name), StartDate: startDate}

	if err := validateInput(input); err != nil {
		return 0, err
	}

	var projectID uint

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		if _, err := lookupUser(ctx, repo, managerID); err != nil {
			return err
		}

		project := models.Project{
			Name:      input.Name,
			StartDate: types.Date(input.StartDate),
			ManagerID: managerID,
		}

		if err := repo.CreateProject(ctx, &project); err != nil {
			return err
		}

		projectID = project.ID

		return audit(ctx, repo, managerID, "project.create", "project", project.ID, map[string]any{
			"name":       project.Name,
			"start_date": types.FormatDate(project.StartDate),
		})
	})

	return projectID, asInternal(err, "create project")
}

func (s *ProjectService) GetProject(ctx context.Context, projectID uint) (*models.Project, error) {
	project, err := s.repo.GetProject(ctx, projectID)

	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Project not found")
	}

	return project, asInternal(err, "get project")
}

func (s *ProjectService) ListManagedProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	projects, err := s.repo.ListManagedProjects(ctx, userID)
	return projects, asInternal(err, "list managed projects")
}

func (s *ProjectService) ListMemberProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	projects, err := s.repo.ListMemberProjects(ctx, userID)
	return projects, asInternal(err, "list member projects")
}

// AddMemberCandidates lists the users that could still be added to the
// project: everyone except its manager and current members.
func (s *ProjectService) AddMemberCandidates(ctx context.Context, projectID uint) ([]models.User, error) {
	project, err := s.GetProject(ctx, projectID)

	if err != nil {
		return nil, err
	}

	users, err := s.repo.ListUsers(ctx)

	if err != nil {
		return nil, asInternal(err, "list users")
	}

	candidates := make([]models.User, 0, len(users))
	for _, user := range users {
		if project.IsManagedBy(user.ID) || project.HasMember(user.ID) {
			continue
		}
		candidates = append(candidates, user)
	}

	return candidates, nil
}

// loadManaged fetches the project and checks that actingUserID manages it.
// verb completes the "Only the project manager can ..." message.
func loadManaged(ctx context.Context, repo store.Repository, actingUserID, projectID uint, verb string) (*models.Project, error) {
	project, err := repo.GetProject(ctx, projectID)

	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Project not found")
	}

	if err != nil {
		return nil, err
	}

	if !project.IsManagedBy(actingUserID) {
		return nil, apperrors.Unauthorized("Only the project manager can " + verb)
	}

	return project, nil
}

func loadOpenManaged(ctx context.Context, repo store.Repository, actingUserID, projectID uint, verb string) (*models.Project, error) {
	project, err := loadManaged(ctx, repo, actingUserID, projectID, verb)

	if err != nil {
		return nil, err
	}

	if project.IsClosed() {
		return nil, apperrors.Conflict("Project is closed")
	}

	return project, nil
}

func (s *ProjectService) AddMember(ctx context.Context, actingUserID, projectID, userID uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		project, err := loadOpenManaged(ctx, repo, actingUserID, projectID, "add members")

		if err != nil {
			return err
		}

		if _, err := lookupUser(ctx, repo, userID); err != nil {
			return err
		}

		if project.IsManagedBy(userID) {
			return apperrors.Conflict("The project manager cannot be added as a member")
		}

		if project.HasMember(userID) {
			return apperrors.Conflict("User is already a member of this project")
		}

		if err := repo.AddMembership(ctx, projectID, userID); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperrors.Conflict("User is already a member of this project")
			}
			return err
		}

		return audit(ctx, repo, actingUserID, "project.member.add", "project", projectID, map[string]any{"user_id": userID})
	})

	return asInternal(err, "add member")
}

func (s *ProjectService) RemoveMember(ctx context.Context, actingUserID, projectID, userID uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		if _, err := loadOpenManaged(ctx, repo, actingUserID, projectID, "remove members"); err != nil {
			return err
		}

		removed, err := repo.RemoveMembership(ctx, projectID, userID)

		if err != nil {
			return err
		}

		if !removed {
			return apperrors.Conflict("User is not a member of this project")
		}

		return audit(ctx, repo, actingUserID, "project.member.remove", "project", projectID, map[string]any{"user_id": userID})
	})

	return asInternal(err, "remove member")
}

// CloseProject sets the end date. The end date must fall strictly after
// the start date, and a closed project cannot be closed again.
func (s *ProjectService) CloseProject(ctx context.Context, actingUserID, projectID uint, endDate time.Time) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		project, err := loadManaged(ctx, repo, actingUserID, projectID, "close a project")

		if err != nil {
			return err
		}

		if project.IsClosed() {
			return apperrors.Conflict("Project is already closed")
		}

		if !types.DateAfter(endDate, project.StartDate) {
			return apperrors.Validation("end_date", "End date must be after the start date")
		}

		end := types.Date(endDate)

		if err := repo.SetProjectEndDate(ctx, projectID, end); err != nil {
			return err
		}

		return audit(ctx, repo, actingUserID, "project.close", "project", projectID, map[string]any{"end_date": types.FormatDate(end)})
	})

	return asInternal(err, "close project")
}

// DeleteProject removes the project and its memberships. Closed projects
// may be deleted.
func (s *ProjectService) DeleteProject(ctx context.Context, actingUserID, projectID uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		project, err := loadManaged(ctx, repo, actingUserID, projectID, "delete a project")

		if err != nil {
			return err
		}

		if err := repo.DeleteProject(ctx, projectID); err != nil {
			return err
		}

		return audit(ctx, repo, actingUserID, "project.delete", "project", projectID, map[string]any{
			"name":    project.Name,
			"members": len(project.Memberships),
		})
	})

	return asInternal(err, "delete project")
}
