package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/supplierapi"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pagedSource serves count invoices in pages and can fail on one page.
type pagedSource struct {
	count    int
	failPage int
	authErr  error
	queries  []supplierapi.InvoiceQuery
}

func (s *pagedSource) Authenticate(context.Context) error { return s.authErr }

func (s *pagedSource) ListInvoices(_ context.Context, q supplierapi.InvoiceQuery) ([]supplierapi.Invoice, error) {
	s.queries = append(s.queries, q)
	if q.Page == s.failPage {
		return nil, errors.New("gateway timeout")
	}
	var out []supplierapi.Invoice
	for i := (q.Page - 1) * q.PerPage; i < s.count && len(out) < q.PerPage; i++ {
		inv := supplierapi.Invoice{
			ID:            fmt.Sprintf("ext-%d", i),
			InvoiceNumber: fmt.Sprintf("LS-%d", 1000+i),
			InvoiceDate:   "2025-03-01",
			Total:         domain.Number(100 + i),
		}
		if i == 0 {
			inv.Status = domain.InvoiceStatusPaid
		}
		out = append(out, inv)
	}
	return out, nil
}

func newSupplierService(t *testing.T, src *pagedSource, pageSize int) (*service.SupplierService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewSupplierService(repository.NewSupplierRepository(db), config.SupplierAPIConfig{PageSize: pageSize}, zap.NewNop()).
		WithSourceFactory(func(domain.SupplierConfig) supplierapi.Source { return src })
	return svc, db
}

func TestSupplierService_SyncPages(t *testing.T) {
	src := &pagedSource{count: 5}
	svc, db := newSupplierService(t, src, 2)
	ctx := context.Background()
	supplier := createSupplierConfig(t, db, "Locke Supply")

	stats, err := svc.Sync(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStats{New: 5, Total: 5}, *stats)
	// pages of 2, 2 and a short page of 1
	require.Len(t, src.queries, 3)
	assert.NotEmpty(t, src.queries[0].DateFrom)

	stats, err = svc.Sync(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStats{Updated: 5, Total: 5}, *stats)

	configs, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.NotNil(t, configs[0].LastSyncAt)

	invoices, err := repository.NewSupplierRepository(db).ListInvoices(ctx, &repository.SupplierInvoiceFilters{Status: domain.InvoiceStatusPaid})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "LS-1000", invoices[0].InvoiceNumber)
}

func TestSupplierService_SyncListingFailure(t *testing.T) {
	src := &pagedSource{count: 10, failPage: 2}
	svc, db := newSupplierService(t, src, 3)
	supplier := createSupplierConfig(t, db, "Locke Supply")

	stats, err := svc.Sync(context.Background(), supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.New)
	assert.Equal(t, 1, stats.Errors)
}

func TestSupplierService_SyncUnknown(t *testing.T) {
	svc, _ := newSupplierService(t, &pagedSource{}, 10)

	_, err := svc.Sync(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrSupplierNotFound)
}

func TestSupplierService_SyncAllSkipsInactive(t *testing.T) {
	src := &pagedSource{count: 1}
	svc, db := newSupplierService(t, src, 10)
	active := createSupplierConfig(t, db, "Locke Supply")
	inactive := createSupplierConfig(t, db, "Plumb Supply")
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	results, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[active.ID].New)
}

func TestSupplierService_TestConnection(t *testing.T) {
	src := &pagedSource{authErr: errors.New("invalid_client")}
	svc, db := newSupplierService(t, src, 10)
	ctx := context.Background()

	mock := createSupplierConfig(t, db, "Locke Supply")
	result, err := svc.TestConnection(ctx, mock.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Mock)

	live := &domain.SupplierConfig{
		SupplierName: "Plumb Supply",
		ClientID:     "id",
		ClientSecret: "secret",
		IsActive:     true,
	}
	require.NoError(t, db.Create(live).Error)
	result, err = svc.TestConnection(ctx, live.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Plumb Supply")

	src.authErr = nil
	result, err = svc.TestConnection(ctx, live.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Mock)

	result, err = svc.TestConnection(ctx, 999)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
