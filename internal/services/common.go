package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/store"
	"gorm.io/datatypes"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

var fieldLabels = map[string]string{
	"name":         "Name",
	"start_date":   "Start date",
	"username":     "Username",
	"email":        "Email",
	"password":     "Password",
	"new_password": "New password",
}

// validateInput reports the first failing field as a ValidationFailed error.
func validateInput(input any) error {
	err := validate.Struct(input)

	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Internal("validate input", err)
	}

	fe := fieldErrs[0]
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return apperrors.Validation(fe.Field(), label+" is required")
	case "email":
		return apperrors.Validation(fe.Field(), label+" must be a valid email address")
	case "min":
		return apperrors.Validation(fe.Field(), fmt.Sprintf("%s must be at least %s characters", label, fe.Param()))
	case "max":
		return apperrors.Validation(fe.Field(), fmt.Sprintf("%s must be at most %s characters", label, fe.Param()))
	default:
		return apperrors.Validation(fe.Field(), label+" is invalid")
	}
}

// asInternal passes domain failures through and wraps everything else.
func asInternal(err error, message string) error {
	if err == nil || apperrors.IsDomain(err) {
		return err
	}
	return apperrors.Internal(message, err)
}

func audit(ctx context.Context, repo store.Repository, actorID uint, action, targetType string, targetID uint, details map[string]any) error {
	payload, err := json.Marshal(details)

	if err != nil {
		return err
	}

	return repo.RecordAudit(ctx, &models.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    datatypes.JSON(payload),
	})
}

// requireAdmin loads the acting user and fails unless they are an admin.
func requireAdmin(ctx context.Context, repo store.Repository, actingUserID uint) (*models.User, error) {
	acting, err := repo.GetUser(ctx, actingUserID)

	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Unauthorized("Administrator privileges required")
	}

	if err != nil {
		return nil, err
	}

	if !acting.IsAdmin {
		return nil, apperrors.Unauthorized("Administrator privileges required")
	}

	return acting, nil
}

func lookupUser(ctx context.Context, repo store.Repository, userID uint) (*models.User, error) {
	user, err := repo.GetUser(ctx, userID)

	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}

	return user, err
}
