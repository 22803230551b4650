package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) (*service.NotificationService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestNotificationService_ReadFlow(t *testing.T) {
	svc, db := newNotificationService(t)
	owner := testutil.CreateTestUser(t, db, "owner1", domain.RoleOwner)
	other := testutil.CreateTestUser(t, db, "other", domain.RoleEmployee)
	ctx := context.Background()

	first, err := svc.Create(ctx, owner.ID, domain.NotificationTypeSystem, "Welcome", "Hello", "/")
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner.ID, domain.NotificationTypeInvoice, "Invoice overdue", "LS-1 is overdue", "/supplier-invoices")
	require.NoError(t, err)

	ownerCtx := asUser(owner)
	count, err := svc.UnreadCount(ownerCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.ErrorIs(t, svc.MarkAsRead(asUser(other), first.ID), service.ErrNotificationNotFound)
	require.NoError(t, svc.MarkAsRead(ownerCtx, first.ID))

	unread, err := svc.ListRecent(ownerCtx, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Invoice overdue", unread[0].Title)

	require.NoError(t, svc.MarkAllAsRead(ownerCtx))
	count, err = svc.UnreadCount(ownerCtx)
	require.NoError(t, err)
	assert.Zero(t, count)

	all, err := svc.ListRecent(ownerCtx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListRecent(context.Background(), false)
	assert.ErrorIs(t, err, service.ErrUserContextRequired)
}

func TestNotificationService_NotifyRoles(t *testing.T) {
	svc, db := newNotificationService(t)
	ctx := context.Background()
	testutil.CreateTestUser(t, db, "owner1", domain.RoleOwner)
	testutil.CreateTestUser(t, db, "admin1", domain.RoleAdmin)
	testutil.CreateTestUser(t, db, "tech1", domain.RoleEmployee)
	retired := testutil.CreateTestUser(t, db, "owner2", domain.RoleOwner)
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	sent, err := svc.NotifyRoles(ctx, domain.ManagerRoles, domain.NotificationTypeSystem, "Backup done", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestServiceCallService_CreateAndResolve(t *testing.T) {
	notifications, db := newNotificationService(t)
	calls := service.NewServiceCallService(repository.NewServiceCallRepository(db), notifications, zap.NewNop())
	tech := testutil.CreateTestUser(t, db, "tech1", domain.RoleEmployee)
	office := testutil.CreateTestUser(t, db, "office", domain.RoleAdmin)
	job := testutil.CreateTestJob(t, db, "Sunrise Estates")

	description := strings.Repeat("Condenser fan not spinning. ", 10)
	call, err := calls.Create(asUser(office), &domain.CreateServiceCallRequest{
		JobID:       &job.ID,
		CallerName:  " Jordan ",
		Description: description,
		AssignedTo:  &tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceCallAssigned, call.Status)
	assert.Equal(t, domain.PriorityNormal, call.Priority)
	assert.Equal(t, "Jordan", call.CallerName)
	require.NotNil(t, call.CreatedBy)
	assert.Equal(t, office.ID, *call.CreatedBy)

	inbox, err := notifications.ListRecent(asUser(tech), true)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, string(domain.NotificationTypeServiceCall), inbox[0].Type)
	assert.Equal(t, "/service-calls", inbox[0].Link)
	assert.Less(t, len([]rune(inbox[0].Message)), len([]rune(description)))

	resolved, err := calls.UpdateStatus(context.Background(), call.ID, &domain.UpdateServiceCallStatusRequest{
		Status:     domain.ServiceCallResolved,
		Resolution: "Replaced capacitor",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceCallResolved, resolved.Status)
	assert.Equal(t, "Replaced capacitor", resolved.Resolution)
	assert.Equal(t, repository.Today(), resolved.ResolvedDate)

	_, err = calls.UpdateStatus(context.Background(), 999, &domain.UpdateServiceCallStatusRequest{Status: domain.ServiceCallClosed})
	assert.ErrorIs(t, err, service.ErrServiceCallNotFound)
}

func TestServiceCallService_Validation(t *testing.T) {
	notifications, db := newNotificationService(t)
	calls := service.NewServiceCallService(repository.NewServiceCallRepository(db), notifications, zap.NewNop())

	_, err := calls.Create(context.Background(), &domain.CreateServiceCallRequest{Description: "  "})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	zero := int64(0)
	call, err := calls.Create(context.Background(), &domain.CreateServiceCallRequest{
		Description: "Thermostat blank",
		Priority:    domain.PriorityUrgent,
		AssignedTo:  &zero,
	})
	require.NoError(t, err)
	assert.Nil(t, call.AssignedTo)
	assert.Nil(t, call.CreatedBy)
	assert.Equal(t, domain.ServiceCallOpen, call.Status)

	rows, err := calls.List(context.Background(), domain.ServiceCallOpen)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
