package store

import (
	"context"
	"strings"

	"github.com/monocle-dev/projectdesk/internal/models"
)

func (r *gormRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// FindUserByLogin matches login against the username or the lower-cased email.
func (r *gormRepository) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *gormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser applies column updates keyed by column name.
func (r *gormRepository) UpdateUser(ctx context.Context, id uint, updates map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *gormRepository) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_admin", isAdmin)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteUser removes the user together with their memberships.
func (r *gormRepository) DeleteUser(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMembership{}).Error; err != nil {
		return err
	}

	result := tx.Delete(&models.User{}, id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *gormRepository) CountManagedProjects(ctx context.Context, userID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("manager_id = ?", userID).Count(&count).Error

	return count, err
}
