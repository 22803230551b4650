package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/datatypes"
)

// BuildSnapshot captures the job and all line items with their ledgers.
func (r *MaterialsRepository) BuildSnapshot(ctx context.Context, jobID int64) (*domain.Snapshot, error) {
	job, err := r.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	items, err := r.ListLineItems(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	cells, err := r.ledgerCells(ctx, ids)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Job: domain.SnapshotJob{
			ID:      job.ID,
			Name:    job.Name,
			Status:  job.Status,
			Address: job.Address,
			City:    job.City,
			State:   job.State,
			ZipCode: job.ZipCode,
			TaxRate: job.TaxRate,
		},
		LineItems: make([]domain.SnapshotLineItem, 0, len(items)),
	}
	for _, item := range items {
		li := domain.SnapshotLineItem{
			LineNumber:    item.LineNumber,
			StockNS:       item.StockNS,
			SKU:           item.SKU,
			Description:   item.Description,
			QuoteQty:      item.QuoteQty,
			QtyOrdered:    item.QtyOrdered,
			PricePer:      item.PricePer,
			TotalNetPrice: item.TotalNetPrice,
		}
		for _, kind := range domain.LedgerKinds {
			li.SetCells(kind, cells[item.ID][kind])
		}
		snap.LineItems = append(snap.LineItems, li)
	}
	return snap, nil
}

// SaveSnapshot captures the job's current state as a new version, then
// evicts the oldest versions beyond maxVersions.
func (r *MaterialsRepository) SaveSnapshot(ctx context.Context, jobID int64, description string, maxVersions int) (*domain.Version, error) {
	snap, err := r.BuildSnapshot(ctx, jobID)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	version := &domain.Version{
		JobID:       jobID,
		Snapshot:    datatypes.JSON(raw),
		Description: description,
		CreatedAt:   nowLocal(),
	}
	if err := r.db.WithContext(ctx).Create(version).Error; err != nil {
		return nil, err
	}

	if maxVersions > 0 {
		if err := r.evictVersions(ctx, jobID, maxVersions); err != nil {
			return nil, err
		}
	}
	return version, nil
}

func (r *MaterialsRepository) evictVersions(ctx context.Context, jobID int64, keep int) error {
	var keepIDs []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Version{}).
		Where("job_id = ?", jobID).
		Order("created_at DESC, id DESC").
		Limit(keep).
		Pluck("id", &keepIDs).Error
	if err != nil {
		return err
	}
	if len(keepIDs) < keep {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("job_id = ? AND id NOT IN ?", jobID, keepIDs).
		Delete(&domain.Version{}).Error
}

// RestoreSnapshot overwrites the job's fields, line items and ledgers with
// the snapshot's content. Line items get new ids.
func (r *MaterialsRepository) RestoreSnapshot(ctx context.Context, jobID int64, snap *domain.Snapshot) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"name":       snap.Job.Name,
			"status":     snap.Job.Status,
			"address":    snap.Job.Address,
			"city":       snap.Job.City,
			"state":      snap.Job.State,
			"zip_code":   snap.Job.ZipCode,
			"tax_rate":   snap.Job.TaxRate,
			"updated_at": nowLocal(),
		}).Error
	if err != nil {
		return err
	}

	if err := r.DeleteJobLineItems(ctx, jobID); err != nil {
		return err
	}

	for i := range snap.LineItems {
		li := &snap.LineItems[i]
		item := &domain.LineItem{
			JobID:         jobID,
			LineNumber:    li.LineNumber,
			StockNS:       li.StockNS,
			SKU:           li.SKU,
			Description:   li.Description,
			QuoteQty:      li.QuoteQty,
			QtyOrdered:    li.QtyOrdered,
			PricePer:      li.PricePer,
			TotalNetPrice: li.TotalNetPrice,
		}
		if err := r.CreateLineItem(ctx, item); err != nil {
			return err
		}
		for _, kind := range domain.LedgerKinds {
			for col, cell := range li.Cells(kind) {
				n, err := strconv.Atoi(col)
				if err != nil || n < 1 || n > domain.MaxLedgerColumn {
					continue
				}
				entry := &domain.LedgerEntry{
					LineItemID:   item.ID,
					ColumnNumber: n,
					Quantity:     cell.Quantity,
					EntryDate:    cell.EntryDate,
				}
				if err := r.UpsertEntry(ctx, kind, entry); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ListVersions returns the job's versions without snapshots, newest first.
func (r *MaterialsRepository) ListVersions(ctx context.Context, jobID int64) ([]domain.VersionSummary, error) {
	var versions []domain.VersionSummary
	err := r.db.WithContext(ctx).
		Model(&domain.Version{}).
		Select("id, description, created_at").
		Where("job_id = ?", jobID).
		Order("created_at DESC, id DESC").
		Scan(&versions).Error
	return versions, err
}

// GetVersion returns one version of the job.
func (r *MaterialsRepository) GetVersion(ctx context.Context, jobID, versionID int64) (*domain.Version, error) {
	var version domain.Version
	err := r.db.WithContext(ctx).
		First(&version, "id = ? AND job_id = ?", versionID, jobID).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// CountVersions returns how many versions the job has.
func (r *MaterialsRepository) CountVersions(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Version{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
