package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newExpiryService(t *testing.T) (*service.ExpiryService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	logger := zap.NewNop()
	svc := service.NewExpiryService(
		repository.NewReportRepository(db),
		repository.NewExpiryRepository(db),
		userRepo,
		notificationRepo,
		service.NewNotificationService(notificationRepo, userRepo, logger),
		logger,
	)
	return svc, db
}

func TestExpiryService_Scan(t *testing.T) {
	restore := repository.SetClock(func() time.Time {
		return time.Date(2025, time.March, 12, 7, 0, 0, 0, time.Local)
	})
	defer restore()

	svc, db := newExpiryService(t)
	ctx := context.Background()

	owner1 := testutil.CreateTestUser(t, db, "owner1", domain.RoleOwner)
	testutil.CreateTestUser(t, db, "owner2", domain.RoleOwner)
	testutil.CreateTestUser(t, db, "admin1", domain.RoleAdmin)
	job := testutil.CreateTestJob(t, db, "Sunrise Estates")

	licenses := []domain.License{
		{LicenseName: "Mechanical Contractor", ExpirationDate: "2025-03-20", Status: domain.LicenseActive},
		{LicenseName: "Journeyman", ExpirationDate: "2025-06-01", Status: domain.LicenseActive},
		{LicenseName: "EPA 608", ExpirationDate: "2025-03-01", Status: domain.LicenseActive},
	}
	require.NoError(t, db.Create(&licenses).Error)
	warranties := []domain.WarrantyItem{
		{JobID: job.ID, ItemDescription: "Condenser", WarrantyEnd: "2025-04-01", Status: domain.WarrantyActive},
		{JobID: job.ID, ItemDescription: "Air handler", WarrantyEnd: "2025-03-25", Status: domain.WarrantyClaimed},
	}
	require.NoError(t, db.Create(&warranties).Error)

	report, err := svc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Licenses)
	assert.Equal(t, 1, report.Warranties)
	// two owners, one license and one warranty each
	assert.Equal(t, 4, report.Notified)
	assert.Equal(t, int64(3), report.StatusesUpdated)

	var statuses []string
	require.NoError(t, db.Model(&domain.License{}).Order("id").Pluck("status", &statuses).Error)
	assert.Equal(t, []string{domain.LicenseExpiringSoon, domain.LicenseActive, domain.LicenseExpired}, statuses)
	require.NoError(t, db.Model(&domain.WarrantyItem{}).Order("id").Pluck("status", &statuses).Error)
	assert.Equal(t, []string{domain.WarrantyExpiringSoon, domain.WarrantyClaimed}, statuses)

	var inbox []domain.Notification
	require.NoError(t, db.Where("user_id = ?", owner1.ID).Order("id").Find(&inbox).Error)
	require.Len(t, inbox, 2)
	assert.Equal(t, string(domain.NotificationTypeLicense), inbox[0].Type)
	assert.Equal(t, "License expiring: Mechanical Contractor", inbox[0].Title)
	assert.Equal(t, string(domain.NotificationTypeWarranty), inbox[1].Type)
	assert.Contains(t, inbox[1].Title, "Sunrise Estates")

	report, err = svc.Scan(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Notified)
	assert.Zero(t, report.StatusesUpdated)
}

func TestExpiryService_Window(t *testing.T) {
	restore := repository.SetClock(func() time.Time {
		return time.Date(2025, time.March, 12, 7, 0, 0, 0, time.Local)
	})
	defer restore()

	svc, db := newExpiryService(t)
	testutil.CreateTestUser(t, db, "owner1", domain.RoleOwner)
	require.NoError(t, db.Create(&domain.License{
		LicenseName:    "Journeyman",
		ExpirationDate: "2025-05-01",
		Status:         domain.LicenseActive,
	}).Error)

	report, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Licenses)

	report, err = svc.WithWindow(60).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Licenses)
	assert.Equal(t, 1, report.Notified)
}
