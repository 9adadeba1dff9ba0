package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// gormWriter hands gorm's slow query and error lines to logrus.
type gormWriter struct {
	entry *logrus.Entry
}

func (w gormWriter) Printf(format string, args ...any) {
	w.entry.Warnf(format, args...)
}

// newLogger reports slow queries and failed statements. Lookups that find
// nothing are expected and stay quiet.
func newLogger(entry *logrus.Entry) logger.Interface {
	return logger.New(gormWriter{entry: entry}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func ConnectDatabase(driver, dsn string) (*gorm.DB, error) {
	dial, err := dialector(driver, dsn)

	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(logging.For("gorm")),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})

	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// one connection keeps an in-memory database alive and serialises writers
		sqlDB, err := conn.DB()

		if err != nil {
			return nil, err
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return conn, nil
}

func MigrateDatabase(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.AuditEntry{},
	)
}
