// Package testutil opens throwaway databases and builds fixture files for
// repository and service tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/database"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SetupTestDB opens a fresh SQLite file under t.TempDir() with every
// migration applied and no seed data.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "test.db"),
		BusyTimeoutMs: 5000,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
	}
	db, err := database.NewDatabase(cfg, zap.NewNop())
	require.NoError(t, err, "Failed to open test database")

	require.NoError(t, database.Migrate(context.Background(), db))
	require.NoError(t, database.RepairColumns(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupSeededTestDB is SetupTestDB plus the bootstrap seed data.
func SetupSeededTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := SetupTestDB(t)
	require.NoError(t, database.Seed(context.Background(), db, zap.NewNop()))
	return db
}

// CreateTestJob inserts a job in the Needs Bid stage.
func CreateTestJob(t *testing.T, db *gorm.DB, name string) *domain.Job {
	t.Helper()
	job := &domain.Job{
		Name:      name,
		Status:    domain.JobStatusNeedsBid,
		CreatedAt: "2025-01-01 08:00:00",
		UpdatedAt: "2025-01-01 08:00:00",
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// CreateTestUser inserts an active user whose password equals its username.
func CreateTestUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(username), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		DisplayName:  username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    "2025-01-01 08:00:00",
		UpdatedAt:    "2025-01-01 08:00:00",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
