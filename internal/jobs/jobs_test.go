package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeScanner struct {
	calls int
	err   error
}

func (f *fakeScanner) Scan(ctx context.Context) (*service.ExpiryReport, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("scan ran without a deadline")
	}
	return &service.ExpiryReport{}, f.err
}

type fakeSyncer struct {
	results map[int64]*domain.SyncStats
	err     error
}

func (f *fakeSyncer) SyncAll(context.Context) (map[int64]*domain.SyncStats, error) {
	return f.results, f.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	task := func(context.Context) error { return nil }

	require.NoError(t, s.AddJob("b", "0 0 6 * * *", time.Minute, task))
	require.NoError(t, s.AddJob("a", "@every 1h", time.Minute, task))
	assert.Error(t, s.AddJob("a", "@every 1h", time.Minute, task), "duplicate name")
	assert.Error(t, s.AddJob("c", "not a cron", time.Minute, task))

	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
}

func TestScheduler_RunNowAppliesTimeout(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	scanner := &fakeScanner{}
	s.RunNow(ExpiryScanJobName, time.Second, ExpiryScanTask(scanner))
	assert.Equal(t, 1, scanner.calls)
}

func TestRegisterExpiryScan(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	require.NoError(t, RegisterExpiryScan(s, &fakeScanner{}, "0 0 6 * * *", false))
	assert.Equal(t, []string{ExpiryScanJobName}, s.JobNames())
}

func TestSupplierSyncTask(t *testing.T) {
	syncer := &fakeSyncer{results: map[int64]*domain.SyncStats{
		1: {New: 2, Updated: 1, Total: 3},
		2: {Updated: 4, Total: 5, Errors: 1},
	}}
	assert.NoError(t, SupplierSyncTask(syncer, zap.NewNop())(context.Background()))

	syncer.err = errors.New("boom")
	assert.Error(t, SupplierSyncTask(syncer, zap.NewNop())(context.Background()))
}
