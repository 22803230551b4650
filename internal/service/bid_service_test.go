package service_test

import (
	"context"
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

func newBidService(t *testing.T) (*service.BidService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return service.NewBidService(repository.NewBidRepository(db), zap.NewNop()), db
}

func TestBidService_CreateDerivesTotals(t *testing.T) {
	svc, db := newBidService(t)
	ctx := context.Background()
	creator := testutil.CreateTestUser(t, db, "estimator", domain.RoleProjectManager)

	in := apartmentBid()
	in.LaborRatePerHour = 0
	bid, err := svc.Create(ctx, &domain.BidRequest{BidInputs: in, BidName: "  Sunrise Estates  "}, &creator.ID)
	require.NoError(t, err)

	assert.Equal(t, "Sunrise Estates", bid.BidName)
	assert.Equal(t, service.DefaultBidStatus, bid.Status)
	assert.Equal(t, service.DefaultProjectType, bid.ProjectType)
	assert.Equal(t, float64(service.DefaultLaborRate), bid.LaborRatePerHour)
	assert.Equal(t, service.DefaultPaySchedulePct, bid.PaySchedulePct)
	assert.Equal(t, 142560.0, bid.TotalBid)
	assert.Equal(t, 800.0, bid.TotalManHours)
	assert.Equal(t, bid.DurationDays, bid.PerDiemDays)
	require.NotNil(t, bid.CreatedBy)
	assert.Equal(t, creator.ID, *bid.CreatedBy)

	stored, err := svc.Get(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, 142560.0, stored.TotalBid)
}

func TestBidService_UpdateRecomputes(t *testing.T) {
	svc, _ := newBidService(t)
	ctx := context.Background()

	bid, err := svc.Create(ctx, &domain.BidRequest{BidInputs: apartmentBid(), BidName: "Sunrise Estates"}, nil)
	require.NoError(t, err)

	in := apartmentBid()
	in.CompanyProfitPct = 0
	updated, err := svc.Update(ctx, bid.ID, &domain.BidRequest{BidInputs: in, BidName: "Sunrise Estates", Status: "Submitted"})
	require.NoError(t, err)
	assert.Equal(t, "Submitted", updated.Status)
	assert.Equal(t, 129600.0, updated.TotalBid)
	assert.Zero(t, updated.CompanyProfit)

	bids, err := svc.List(ctx, "Submitted")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, bid.ID, bids[0].ID)
}

func TestBidService_Errors(t *testing.T) {
	svc, _ := newBidService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.BidRequest{BidName: "   "}, nil)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Get(ctx, 404)
	assert.ErrorIs(t, err, service.ErrBidNotFound)
	_, err = svc.Update(ctx, 404, &domain.BidRequest{BidName: "x"})
	assert.ErrorIs(t, err, service.ErrBidNotFound)

	bid, err := svc.Create(ctx, &domain.BidRequest{BidName: "Clubhouse"}, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, bid.ID))
	_, err = svc.Get(ctx, bid.ID)
	assert.ErrorIs(t, err, service.ErrBidNotFound)
}
