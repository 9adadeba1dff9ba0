package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/monocle-dev/projectdesk/internal/apperrors"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/sony/gobreaker"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the relational store behind every domain operation.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]any) error
	SetAdmin(ctx context.Context, id uint, isAdmin bool) error
	DeleteUser(ctx context.Context, id uint) error
	CountManagedProjects(ctx context.Context, userID uint) (int64, error)

	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	ListManagedProjects(ctx context.Context, userID uint) ([]models.Project, error)
	ListMemberProjects(ctx context.Context, userID uint) ([]models.Project, error)
	SetProjectEndDate(ctx context.Context, id uint, endDate time.Time) error
	DeleteProject(ctx context.Context, id uint) error

	AddMembership(ctx context.Context, projectID, userID uint) error
	RemoveMembership(ctx context.Context, projectID, userID uint) (bool, error)

	RecordAudit(ctx context.Context, entry *models.AuditEntry) error

	// WithTransaction runs fn against a repository bound to one database
	// transaction. The transaction commits when fn returns nil.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
	Ping(ctx context.Context) error
}

type gormRepository struct {
	db      *gorm.DB
	breaker *gobreaker.CircuitBreaker
}

type BreakerSettings struct {
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// NewRepository wraps db. Transactions go through a circuit breaker that
// only counts infrastructure failures; domain failures and missing rows
// leave it closed.
func NewRepository(db *gorm.DB, settings BreakerSettings) Repository {
	log := logging.For("store")

	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "store",
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || apperrors.IsDomain(err) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("from", from.String()).WithField("to", to.String()).Warnf("circuit breaker %s changed state", name)
		},
	})

	return &gormRepository{db: db, breaker: breaker}
}

func (r *gormRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(ctx, &gormRepository{db: tx, breaker: r.breaker})
		})
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.Internal("store unavailable", err)
	}

	return err
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()

	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicate
	}

	// sqlite extended result codes for UNIQUE and PRIMARY KEY violations
	var coded interface{ Code() int }
	if errors.As(err, &coded) && (coded.Code() == 2067 || coded.Code() == 1555) {
		return ErrDuplicate
	}

	return err
}
