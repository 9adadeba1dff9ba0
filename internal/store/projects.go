package store

import (
	"context"
	"time"

	"github.com/monocle-dev/projectdesk/internal/models"
	"gorm.io/gorm"
)

// withMembers loads the manager and the members of each project, members
// in the order they were added.
func withMembers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Manager").
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Preload("Memberships.User")
}

func (r *gormRepository) CreateProject(ctx context.Context, project *models.Project) error {
	return translate(r.db.WithContext(ctx).Omit("Manager", "Memberships").Create(project).Error)
}

func (r *gormRepository) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project

	if err := withMembers(r.db.WithContext(ctx)).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

func (r *gormRepository) ListManagedProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project

	err := withMembers(r.db.WithContext(ctx)).
		Where("manager_id = ?", userID).
		Order("id").
		Find(&projects).Error

	return projects, err
}

func (r *gormRepository) ListMemberProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project

	err := withMembers(r.db.WithContext(ctx)).
		Select("projects.*").
		Joins("JOIN project_memberships ON project_memberships.project_id = projects.id").
		Where("project_memberships.user_id = ?", userID).
		Order("projects.id").
		Find(&projects).Error

	return projects, err
}

func (r *gormRepository) SetProjectEndDate(ctx context.Context, id uint, endDate time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("end_date", endDate)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteProject removes the project and every membership it owns.
func (r *gormRepository) DeleteProject(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMembership{}).Error; err != nil {
		return err
	}

	result := tx.Delete(&models.Project{}, id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *gormRepository) AddMembership(ctx context.Context, projectID, userID uint) error {
	membership := models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
	}

	return translate(r.db.WithContext(ctx).Omit("User").Create(&membership).Error)
}

func (r *gormRepository) RemoveMembership(ctx context.Context, projectID, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMembership{})

	return result.RowsAffected > 0, result.Error
}

func (r *gormRepository) RecordAudit(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
