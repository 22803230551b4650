package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/supplierapi"
	"go.uber.org/zap"
)

// SourceFactory builds the invoice source for a supplier config.
type SourceFactory func(supplier domain.SupplierConfig) supplierapi.Source

// SupplierService manages supplier API configs and invoice syncs.
type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	apiCfg       config.SupplierAPIConfig
	newSource    SourceFactory
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service instance
func NewSupplierService(
	supplierRepo *repository.SupplierRepository,
	apiCfg config.SupplierAPIConfig,
	logger *zap.Logger,
) *SupplierService {
	if apiCfg.PageSize <= 0 {
		apiCfg.PageSize = 100
	}
	if apiCfg.SyncWindow <= 0 {
		apiCfg.SyncWindow = 90
	}
	s := &SupplierService{
		supplierRepo: supplierRepo,
		apiCfg:       apiCfg,
		logger:       logger,
	}
	s.newSource = func(supplier domain.SupplierConfig) supplierapi.Source {
		return supplierapi.NewSource(s.apiCfg, supplier, s.logger)
	}
	return s
}

// WithSourceFactory replaces how invoice sources are built.
func (s *SupplierService) WithSourceFactory(f SourceFactory) *SupplierService {
	s.newSource = f
	return s
}

// ListConfigs returns all supplier configs.
func (s *SupplierService) ListConfigs(ctx context.Context) ([]domain.SupplierConfig, error) {
	configs, err := s.supplierRepo.ListConfigs(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier configs: %w", err)
	}
	if configs == nil {
		configs = []domain.SupplierConfig{}
	}
	return configs, nil
}

// TestConnection tries to authenticate with the supplier's API. A config
// in mock mode always succeeds without a network call.
func (s *SupplierService) TestConnection(ctx context.Context, id int64) (*domain.ConnectionTestResult, error) {
	supplier, err := s.supplierRepo.GetConfig(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return &domain.ConnectionTestResult{
				Success: false,
				Message: fmt.Sprintf("Supplier config #%d not found.", id),
			}, nil
		}
		return nil, fmt.Errorf("failed to get supplier config: %w", err)
	}

	name := supplier.SupplierName
	if supplier.MockMode() {
		return &domain.ConnectionTestResult{
			Success:      true,
			Message:      fmt.Sprintf("Mock mode active for %s. No real API call made.", name),
			SupplierName: name,
			Mock:         true,
		}, nil
	}

	if err := s.newSource(*supplier).Authenticate(ctx); err != nil {
		s.logger.Warn("Supplier authentication failed",
			zap.Int64("supplierConfigID", id),
			zap.String("supplier", name),
			zap.Error(err),
		)
		return &domain.ConnectionTestResult{
			Success:      false,
			Message:      fmt.Sprintf("Authentication failed for %s. Check client_id and client_secret.", name),
			SupplierName: name,
		}, nil
	}
	return &domain.ConnectionTestResult{
		Success:      true,
		Message:      fmt.Sprintf("Successfully authenticated with BillTrust for %s.", name),
		SupplierName: name,
	}, nil
}

// Sync pages the supplier's invoices for the sync window and upserts
// them. A listing failure stops paging and counts one error; per-invoice
// failures are counted and skipped.
func (s *SupplierService) Sync(ctx context.Context, id int64) (*domain.SyncStats, error) {
	supplier, err := s.supplierRepo.GetConfig(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier config: %w", err)
	}

	source := s.newSource(*supplier)
	now := repository.Now()
	query := supplierapi.InvoiceQuery{
		DateFrom: now.AddDate(0, 0, -s.apiCfg.SyncWindow).Format(repository.DateLayout),
		DateTo:   now.Format(repository.DateLayout),
		PerPage:  s.apiCfg.PageSize,
	}

	stats := &domain.SyncStats{}
	for page := 1; ; page++ {
		query.Page = page
		invoices, err := source.ListInvoices(ctx, query)
		if err != nil {
			s.logger.Warn("Supplier invoice listing failed",
				zap.Int64("supplierConfigID", id),
				zap.Int("page", page),
				zap.Error(err),
			)
			stats.Errors++
			break
		}
		if len(invoices) == 0 {
			break
		}

		for i := range invoices {
			stats.Total++
			isNew, err := s.upsertAPIInvoice(ctx, id, &invoices[i])
			switch {
			case err != nil:
				stats.Errors++
				metrics.InvoiceUpserts.WithLabelValues(SourceSync, "error").Inc()
				s.logger.Warn("Supplier invoice upsert failed",
					zap.Int64("supplierConfigID", id),
					zap.String("invoiceNumber", invoices[i].InvoiceNumber),
					zap.Error(err),
				)
			case isNew:
				stats.New++
				metrics.InvoiceUpserts.WithLabelValues(SourceSync, "new").Inc()
			default:
				stats.Updated++
				metrics.InvoiceUpserts.WithLabelValues(SourceSync, "updated").Inc()
			}
		}

		if len(invoices) < s.apiCfg.PageSize {
			break
		}
	}

	if err := s.supplierRepo.MarkSynced(ctx, id); err != nil {
		s.logger.Warn("Failed to stamp supplier sync time", zap.Int64("supplierConfigID", id), zap.Error(err))
	}

	s.logger.Info("Supplier invoices synced",
		zap.Int64("supplierConfigID", id),
		zap.String("supplier", supplier.SupplierName),
		zap.Bool("mock", supplier.MockMode()),
		zap.Int("new", stats.New),
		zap.Int("updated", stats.Updated),
		zap.Int("errors", stats.Errors),
	)
	return stats, nil
}

// SyncAll syncs every active supplier config and returns stats by id.
func (s *SupplierService) SyncAll(ctx context.Context) (map[int64]*domain.SyncStats, error) {
	configs, err := s.supplierRepo.ListConfigs(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier configs: %w", err)
	}
	results := make(map[int64]*domain.SyncStats, len(configs))
	for _, cfg := range configs {
		stats, err := s.Sync(ctx, cfg.ID)
		if err != nil {
			s.logger.Error("Supplier sync failed", zap.Int64("supplierConfigID", cfg.ID), zap.Error(err))
			continue
		}
		results[cfg.ID] = stats
	}
	return results, nil
}

func (s *SupplierService) upsertAPIInvoice(ctx context.Context, supplierConfigID int64, inv *supplierapi.Invoice) (bool, error) {
	if inv.InvoiceNumber == "" {
		return false, fmt.Errorf("%w: invoice without number", ErrInvalidInput)
	}
	items := inv.LineItems
	if items == nil {
		items = []domain.InvoiceLineItem{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return false, fmt.Errorf("encode line items: %w", err)
	}
	status := inv.Status
	if status == "" {
		status = domain.InvoiceStatusOpen
	}
	return s.supplierRepo.UpsertInvoice(ctx, &domain.SupplierInvoice{
		SupplierConfigID: supplierConfigID,
		ExternalID:       inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceDate:      inv.InvoiceDate,
		DueDate:          inv.DueDate,
		Status:           status,
		PONumber:         inv.PONumber,
		Subtotal:         domain.Round2(inv.Subtotal.Float()),
		TaxAmount:        domain.Round2(inv.TaxAmount.Float()),
		Total:            domain.Round2(inv.Total.Float()),
		AmountPaid:       domain.Round2(inv.AmountPaid.Float()),
		BalanceDue:       domain.Round2(inv.BalanceDue.Float()),
		PaidDate:         inv.PaidDate,
		LineItems:        blob,
	})
}
