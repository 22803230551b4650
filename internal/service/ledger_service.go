package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

// LedgerConfig holds the ledger settings taken from configuration.
type LedgerConfig struct {
	MaxVersions        int
	OutOfStateShipping float64
	HomeStates         []string
}

// LedgerService owns a job's master list, its three ledgers and its
// version log. Every mutation snapshots the job first, inside the same
// transaction as the change.
type LedgerService struct {
	materials *repository.MaterialsRepository
	cfg       LedgerConfig
	logger    *zap.Logger
}

// NewLedgerService creates a new ledger service instance
func NewLedgerService(materials *repository.MaterialsRepository, cfg LedgerConfig, logger *zap.Logger) *LedgerService {
	if cfg.MaxVersions <= 0 {
		cfg.MaxVersions = 100
	}
	return &LedgerService{materials: materials, cfg: cfg, logger: logger}
}

// GetJobView returns the job with line items, ledger cells and totals.
func (s *LedgerService) GetJobView(ctx context.Context, jobID int64) (*domain.JobView, error) {
	view, err := s.materials.GetJobView(ctx, jobID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job view: %w", err)
	}
	return view, nil
}

// mutate snapshots the job under description, runs fn and refreshes the
// job's updated_at, all in one transaction.
func (s *LedgerService) mutate(ctx context.Context, jobID int64, description string, fn func(tx *repository.MaterialsRepository) error) error {
	err := s.materials.WithTransaction(ctx, func(tx *repository.MaterialsRepository) error {
		if _, err := tx.GetJob(ctx, jobID); err != nil {
			return err
		}
		if _, err := tx.SaveSnapshot(ctx, jobID, description, s.cfg.MaxVersions); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		if err := fn(tx); err != nil {
			return err
		}
		return tx.TouchJob(ctx, jobID)
	})
	if err != nil {
		if isNotFound(err) {
			return ErrJobNotFound
		}
		return err
	}
	metrics.SnapshotsWritten.Inc()
	return nil
}

// ReplaceLineItems makes the job's master list equal to items. Rows with
// an id that belongs to the job are updated, others are inserted, and
// existing rows missing from items are deleted with their ledger cells.
func (s *LedgerService) ReplaceLineItems(ctx context.Context, jobID int64, items []domain.LineItemInput) (*domain.JobView, error) {
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, jobID, "Before master list update", func(tx *repository.MaterialsRepository) error {
		existing, err := tx.LineItemIDs(ctx, jobID)
		if err != nil {
			return err
		}

		kept := make(map[int64]bool, len(items))
		for _, in := range items {
			item := &domain.LineItem{
				JobID:         jobID,
				LineNumber:    in.LineNumber,
				StockNS:       in.StockNS,
				SKU:           in.SKU,
				Description:   in.Description,
				QuoteQty:      in.QuoteQty,
				QtyOrdered:    in.QtyOrdered,
				PricePer:      in.PricePer,
				TotalNetPrice: in.TotalNetPrice,
			}
			if in.ID != nil && existing[*in.ID] {
				item.ID = *in.ID
				if err := tx.UpdateLineItem(ctx, item); err != nil {
					return fmt.Errorf("update line item %d: %w", item.ID, err)
				}
			} else if err := tx.CreateLineItem(ctx, item); err != nil {
				return fmt.Errorf("create line item: %w", err)
			}
			kept[item.ID] = true
		}

		var removed []int64
		for id := range existing {
			if !kept[id] {
				removed = append(removed, id)
			}
		}
		return tx.DeleteLineItems(ctx, removed)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Line items replaced",
		zap.Int64("jobID", jobID),
		zap.Int("count", len(items)),
	)
	return s.GetJobView(ctx, jobID)
}

func validateLineItems(items []domain.LineItemInput) error {
	for _, in := range items {
		if in.LineNumber < 1 {
			return fmt.Errorf("%w: line_number must be at least 1, got %d", ErrInvalidInput, in.LineNumber)
		}
	}
	return nil
}

// validateEntries rejects out-of-range columns and negative quantities
// before anything is written.
func validateEntries(entries []domain.EntryInput) error {
	for _, e := range entries {
		if e.ColumnNumber < 1 || e.ColumnNumber > domain.MaxLedgerColumn {
			return fmt.Errorf("%w: got %d", ErrInvalidColumn, e.ColumnNumber)
		}
		if e.Quantity < 0 {
			return ErrNegativeQuantity
		}
	}
	return nil
}

// SaveEntries writes ledger cells of one kind. Cells on line items outside
// the job are skipped, a zero quantity deletes the cell, a new cell is
// dated today and an updated cell keeps its original date.
func (s *LedgerService) SaveEntries(ctx context.Context, jobID int64, kindName string, entries []domain.EntryInput) (*domain.JobView, error) {
	kind, ok := domain.ParseLedgerKind(kindName)
	if !ok {
		return nil, ErrInvalidLedger
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	skipped := 0
	err := s.mutate(ctx, jobID, fmt.Sprintf("Before %s update", kind), func(tx *repository.MaterialsRepository) error {
		valid, err := tx.LineItemIDs(ctx, jobID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !valid[e.LineItemID] {
				skipped++
				continue
			}
			if e.Quantity == 0 {
				if err := tx.DeleteEntry(ctx, kind, e.LineItemID, e.ColumnNumber); err != nil {
					return err
				}
				continue
			}
			current, err := tx.FindEntry(ctx, kind, e.LineItemID, e.ColumnNumber)
			if err != nil {
				return err
			}
			if current != nil {
				if err := tx.UpdateEntryQuantity(ctx, kind, current.ID, e.Quantity); err != nil {
					return err
				}
				continue
			}
			if err := tx.InsertEntry(ctx, kind, &domain.LedgerEntry{
				LineItemID:   e.LineItemID,
				ColumnNumber: e.ColumnNumber,
				Quantity:     e.Quantity,
				EntryDate:    repository.Today(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		s.logger.Debug("Skipped ledger entries for foreign line items",
			zap.Int64("jobID", jobID),
			zap.String("kind", string(kind)),
			zap.Int("skipped", skipped),
		)
	}
	return s.GetJobView(ctx, jobID)
}

// ListVersions returns the job's versions, newest first.
func (s *LedgerService) ListVersions(ctx context.Context, jobID int64) ([]domain.VersionSummary, error) {
	versions, err := s.materials.ListVersions(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	if versions == nil {
		versions = []domain.VersionSummary{}
	}
	return versions, nil
}

// GetVersion returns one version with its decoded snapshot.
func (s *LedgerService) GetVersion(ctx context.Context, jobID, versionID int64) (*domain.VersionDetail, error) {
	version, err := s.materials.GetVersion(ctx, jobID, versionID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	detail := &domain.VersionDetail{
		ID:          version.ID,
		Description: version.Description,
		CreatedAt:   version.CreatedAt,
	}
	if err := json.Unmarshal(version.Snapshot, &detail.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %d: %w", version.ID, err)
	}
	return detail, nil
}

// Revert snapshots the current state, then restores the job to the given
// version. Line items get new ids.
func (s *LedgerService) Revert(ctx context.Context, jobID, versionID int64) (*domain.JobView, error) {
	detail, err := s.GetVersion(ctx, jobID, versionID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Before revert to version %d", versionID)
	err = s.mutate(ctx, jobID, description, func(tx *repository.MaterialsRepository) error {
		return tx.RestoreSnapshot(ctx, jobID, &detail.Snapshot)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Job reverted",
		zap.Int64("jobID", jobID),
		zap.Int64("versionID", versionID),
		zap.Int("lineItems", len(detail.Snapshot.LineItems)),
	)
	return s.GetJobView(ctx, jobID)
}
