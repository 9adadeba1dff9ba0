package services

import (
	"context"
	"errors"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/store"
)

type UserService struct {
	repo store.Repository
}

func NewUserService(repo store.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := lookupUser(ctx, s.repo, userID)
	return user, asInternal(err, "get user")
}

// ListAllUsers returns every user in insertion order.
func (s *UserService) ListAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	return users, asInternal(err, "list users")
}

// AdminListUsers is ListAllUsers for the admin panel; only admins may call it.
func (s *UserService) AdminListUsers(ctx context.Context, actingUserID uint) ([]models.User, error) {
	if _, err := requireAdmin(ctx, s.repo, actingUserID); err != nil {
		return nil, asInternal(err, "load acting user")
	}

	return s.ListAllUsers(ctx)
}

// PromoteUserToAdmin grants admin rights. Promoting a user who is already
// an admin succeeds without writing anything.
func (s *UserService) PromoteUserToAdmin(ctx context.Context, actingUserID, userID uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		if _, err := requireAdmin(ctx, repo, actingUserID); err != nil {
			return err
		}

		target, err := lookupUser(ctx, repo, userID)

		if err != nil {
			return err
		}

		if target.IsAdmin {
			return nil
		}

		if err := repo.SetAdmin(ctx, userID, true); err != nil {
			return err
		}

		return audit(ctx, repo, actingUserID, "user.promote", "user", userID, map[string]any{"username": target.Username})
	})

	return asInternal(err, "promote user")
}

// DeleteUser removes a user and their memberships, and returns the ids of
// the projects the user was a member of. Admins cannot delete themselves,
// and users who still manage projects are kept.
func (s *UserService) DeleteUser(ctx context.Context, actingUserID, userID uint) ([]uint, error) {
	var memberOf []uint

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		if _, err := requireAdmin(ctx, repo, actingUserID); err != nil {
			return err
		}

		if userID == actingUserID {
			return apperrors.Validation("", "You cannot delete your own account")
		}

		target, err := lookupUser(ctx, repo, userID)

		if err != nil {
			return err
		}

		managed, err := repo.CountManagedProjects(ctx, userID)

		if err != nil {
			return err
		}

		if managed > 0 {
			return apperrors.Conflict("Cannot delete a user who manages projects")
		}

		projects, err := repo.ListMemberProjects(ctx, userID)

		if err != nil {
			return err
		}

		if err := repo.DeleteUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("User not found")
			}
			return err
		}

		memberOf = make([]uint, 0, len(projects))
		for _, project := range projects {
			memberOf = append(memberOf, project.ID)
		}

		return audit(ctx, repo, actingUserID, "user.delete", "user", userID, map[string]any{
			"username": target.Username,
			"projects": memberOf,
		})
	})

	if err != nil {
		return nil, asInternal(err, "delete user")
	}

	return memberOf, nil
}
