package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/monocle-dev/projectdesk/internal/services"
	"github.com/monocle-dev/projectdesk/internal/store"
	"github.com/monocle-dev/projectdesk/internal/store/storetest"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	repo     store.Repository
	conn     *gorm.DB
	projects *services.ProjectService
	users    *services.UserService
	accounts *services.AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo, conn := storetest.Open(t)

	accounts := services.NewAccountService(repo)
	accounts.HashCost = bcrypt.MinCost

	return &fixture{
		repo:     repo,
		conn:     conn,
		projects: services.NewProjectService(repo),
		users:    services.NewUserService(repo),
		accounts: accounts,
	}
}

func (f *fixture) seedUser(t *testing.T, id uint, username string, admin bool) {
	t.Helper()

	user := models.User{
		BaseModel:    models.BaseModel{ID: id},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		IsAdmin:      admin,
	}
	require.NoError(t, f.repo.CreateUser(context.Background(), &user))
}

func (f *fixture) auditCount(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.conn.Model(&models.AuditEntry{}).Count(&count).Error)
	return count
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := types.ParseDate(value)
	require.NoError(t, err)
	return parsed
}

func memberIDs(project *models.Project) []uint {
	ids := make([]uint, 0, len(project.Memberships))
	for _, membership := range project.Memberships {
		ids = append(ids, membership.UserID)
	}
	return ids
}
