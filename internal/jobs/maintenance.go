package jobs

import (
	"context"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"go.uber.org/zap"
)

const (
	ExpiryScanJobName   = "expiry_scan"
	SupplierSyncJobName = "supplier_sync"

	expiryScanTimeout   = 2 * time.Minute
	supplierSyncTimeout = 15 * time.Minute
)

// ExpiryScanner is satisfied by *service.ExpiryService.
type ExpiryScanner interface {
	Scan(ctx context.Context) (*service.ExpiryReport, error)
}

// SupplierSyncer is satisfied by *service.SupplierService.
type SupplierSyncer interface {
	SyncAll(ctx context.Context) (map[int64]*domain.SyncStats, error)
}

// ExpiryScanTask warns owners about expiring licenses and warranties.
func ExpiryScanTask(scanner ExpiryScanner) Task {
	return func(ctx context.Context) error {
		_, err := scanner.Scan(ctx)
		return err
	}
}

// SupplierSyncTask pulls invoices from every enabled supplier API and logs
// the combined counts.
func SupplierSyncTask(syncer SupplierSyncer, logger *zap.Logger) Task {
	return func(ctx context.Context) error {
		results, err := syncer.SyncAll(ctx)
		if err != nil {
			return err
		}
		var total domain.SyncStats
		for _, stats := range results {
			total.New += stats.New
			total.Updated += stats.Updated
			total.Total += stats.Total
			total.Errors += stats.Errors
		}
		logger.Info("supplier sync finished",
			zap.Int("suppliers", len(results)),
			zap.Int("new", total.New),
			zap.Int("updated", total.Updated),
			zap.Int("errors", total.Errors))
		return nil
	}
}

// RegisterExpiryScan schedules the expiry scan and, when runOnStart is
// set, runs it once in the background right away.
func RegisterExpiryScan(s *Scheduler, scanner ExpiryScanner, cronExpr string, runOnStart bool) error {
	task := ExpiryScanTask(scanner)
	if err := s.AddJob(ExpiryScanJobName, cronExpr, expiryScanTimeout, task); err != nil {
		return err
	}
	if runOnStart {
		go s.RunNow(ExpiryScanJobName, expiryScanTimeout, task)
	}
	return nil
}

func RegisterSupplierSync(s *Scheduler, syncer SupplierSyncer, logger *zap.Logger, cronExpr string) error {
	return s.AddJob(SupplierSyncJobName, cronExpr, supplierSyncTimeout, SupplierSyncTask(syncer, logger))
}
