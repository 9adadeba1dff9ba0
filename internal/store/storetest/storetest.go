// Package storetest builds repositories over a private in-memory sqlite
// database for tests.
package storetest

import (
	"testing"

	"github.com/monocle-dev/projectdesk/db"
	"github.com/monocle-dev/projectdesk/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Open(t *testing.T) (store.Repository, *gorm.DB) {
	t.Helper()

	conn, err := db.ConnectDatabase("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(conn))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return store.NewRepository(conn, store.BreakerSettings{}), conn
}
