package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	repo store.Repository

	// HashCost is the bcrypt cost used for new password hashes.
	HashCost int
}

func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo, HashCost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validateInput(input); err != nil {
		return nil, err
	}

	var user *models.User

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		created, err := s.createUser(ctx, repo, input)

		if err != nil {
			return err
		}

		user = created

		return audit(ctx, repo, created.ID, "user.register", "user", created.ID, map[string]any{"username": created.Username})
	})

	return user, asInternal(err, "register user")
}

func (s *AccountService) createUser(ctx context.Context, repo store.Repository, input RegisterInput) (*models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.HashCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
	}

	if err := repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("Username or email already exists")
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate checks a username or email and password pair. Unknown
// logins and wrong passwords fail the same way.
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	invalid := apperrors.Unauthorized("Invalid username or password")

	user, err := s.repo.FindUserByLogin(ctx, strings.TrimSpace(login))

	if errors.Is(err, store.ErrNotFound) {
		return nil, invalid
	}

	if err != nil {
		return nil, asInternal(err, "find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid
	}

	return user, nil
}

// EnsureAdmin makes sure the configured bootstrap administrator exists and
// has admin rights. An existing account is promoted, never re-passworded.
func (s *AccountService) EnsureAdmin(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validateInput(input); err != nil {
		return nil, err
	}

	var admin *models.User

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		existing, err := repo.FindUserByLogin(ctx, input.Username)

		switch {
		case err == nil:
			admin = existing
		case errors.Is(err, store.ErrNotFound):
			admin, err = s.createUser(ctx, repo, input)
			if err != nil {
				return err
			}
		default:
			return err
		}

		if admin.IsAdmin {
			return nil
		}

		if err := repo.SetAdmin(ctx, admin.ID, true); err != nil {
			return err
		}

		admin.IsAdmin = true

		return audit(ctx, repo, admin.ID, "user.bootstrap_admin", "user", admin.ID, map[string]any{"username": admin.Username})
	})

	return admin, asInternal(err, "ensure admin")
}

type UpdateProfileInput struct {
	Email           string `json:"email" validate:"omitempty,email,max=255"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=8,max=72"`
}

// UpdateProfile changes the user's email and/or password. Changing the
// password requires the current one.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validateInput(input); err != nil {
		return nil, err
	}

	var user *models.User

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo store.Repository) error {
		current, err := lookupUser(ctx, repo, userID)

		if err != nil {
			return err
		}

		updates := make(map[string]any)

		if input.Email != "" && input.Email != current.Email {
			updates["email"] = input.Email
		}

		if input.NewPassword != "" {
			if input.CurrentPassword == "" {
				return apperrors.Validation("current_password", "Current password is required to change password")
			}

			if err := bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(input.CurrentPassword)); err != nil {
				return apperrors.Validation("current_password", "Current password is incorrect")
			}

			passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.HashCost)

			if err != nil {
				return err
			}

			updates["password_hash"] = string(passwordHash)
		}

		if len(updates) == 0 {
			return apperrors.Validation("", "No valid fields to update")
		}

		if err := repo.UpdateUser(ctx, userID, updates); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperrors.Conflict("Email already exists")
			}
			return err
		}

		fields := make([]string, 0, len(updates))
		for field := range updates {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		if err := audit(ctx, repo, userID, "user.update", "user", userID, map[string]any{"fields": fields}); err != nil {
			return err
		}

		user, err = repo.GetUser(ctx, userID)
		return err
	})

	return user, asInternal(err, "update profile")
}
