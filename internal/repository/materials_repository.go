package repository

import (
	"context"
	"strconv"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaterialsRepository owns a job's line items, its three ledgers and its
// version log. Mutations that must be atomic with a snapshot run through
// WithTransaction, which hands the callback a repository bound to the tx.
type MaterialsRepository struct {
	db *gorm.DB
}

func NewMaterialsRepository(db *gorm.DB) *MaterialsRepository {
	return &MaterialsRepository{db: db}
}

// WithTransaction runs fn inside one database transaction.
func (r *MaterialsRepository) WithTransaction(ctx context.Context, fn func(tx *MaterialsRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MaterialsRepository{db: tx})
	})
}

func (r *MaterialsRepository) GetJob(ctx context.Context, jobID int64) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// TouchJob refreshes the job's updated_at.
func (r *MaterialsRepository) TouchJob(ctx context.Context, jobID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", jobID).
		Update("updated_at", nowLocal()).Error
}

// ListLineItems returns the job's line items ordered by line number.
func (r *MaterialsRepository) ListLineItems(ctx context.Context, jobID int64) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("line_number ASC, id ASC").
		Find(&items).Error
	return items, err
}

// LineItemIDs returns the set of line item ids belonging to the job.
func (r *MaterialsRepository) LineItemIDs(ctx context.Context, jobID int64) (map[int64]bool, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.LineItem{}).
		Where("job_id = ?", jobID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *MaterialsRepository) CreateLineItem(ctx context.Context, item *domain.LineItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateLineItem overwrites the editable columns of an existing row.
func (r *MaterialsRepository) UpdateLineItem(ctx context.Context, item *domain.LineItem) error {
	return r.db.WithContext(ctx).
		Model(&domain.LineItem{}).
		Where("id = ? AND job_id = ?", item.ID, item.JobID).
		Updates(map[string]interface{}{
			"line_number":     item.LineNumber,
			"stock_ns":        item.StockNS,
			"sku":             item.SKU,
			"description":     item.Description,
			"quote_qty":       item.QuoteQty,
			"qty_ordered":     item.QtyOrdered,
			"price_per":       item.PricePer,
			"total_net_price": item.TotalNetPrice,
		}).Error
}

// DeleteLineItems removes line items by id. Their ledger cells cascade.
func (r *MaterialsRepository) DeleteLineItems(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.LineItem{}).Error
}

// DeleteJobLineItems removes every line item of the job.
func (r *MaterialsRepository) DeleteJobLineItems(ctx context.Context, jobID int64) error {
	return r.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&domain.LineItem{}).Error
}

// ListEntries returns every ledger cell of kind for the given line items.
func (r *MaterialsRepository) ListEntries(ctx context.Context, kind domain.LedgerKind, lineItemIDs []int64) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	if len(lineItemIDs) == 0 {
		return entries, nil
	}
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("line_item_id IN ?", lineItemIDs).
		Order("line_item_id ASC, column_number ASC").
		Find(&entries).Error
	return entries, err
}

// FindEntry returns the cell at (line item, column), or nil when empty.
func (r *MaterialsRepository) FindEntry(ctx context.Context, kind domain.LedgerKind, lineItemID int64, column int) (*domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("line_item_id = ? AND column_number = ?", lineItemID, column).
		Limit(1).
		Find(&entries).Error
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}

func (r *MaterialsRepository) InsertEntry(ctx context.Context, kind domain.LedgerKind, entry *domain.LedgerEntry) error {
	return r.db.WithContext(ctx).Table(kind.Table()).Create(entry).Error
}

// UpdateEntryQuantity changes a cell's quantity and leaves its date alone.
func (r *MaterialsRepository) UpdateEntryQuantity(ctx context.Context, kind domain.LedgerKind, id int64, quantity float64) error {
	return r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *MaterialsRepository) DeleteEntry(ctx context.Context, kind domain.LedgerKind, lineItemID int64, column int) error {
	return r.db.WithContext(ctx).
		Table(kind.Table()).
		Where("line_item_id = ? AND column_number = ?", lineItemID, column).
		Delete(&domain.LedgerEntry{}).Error
}

// UpsertEntry writes a cell with its date, replacing any existing cell at
// the same position. Used when restoring snapshots.
func (r *MaterialsRepository) UpsertEntry(ctx context.Context, kind domain.LedgerKind, entry *domain.LedgerEntry) error {
	return r.db.WithContext(ctx).
		Table(kind.Table()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "line_item_id"}, {Name: "column_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "entry_date"}),
		}).
		Create(entry).Error
}

// ledgerCells loads every ledger of the given line items, keyed by line
// item id, then by ledger kind, then by column number string.
func (r *MaterialsRepository) ledgerCells(ctx context.Context, lineItemIDs []int64) (map[int64]map[domain.LedgerKind]map[string]domain.CellValue, error) {
	cells := make(map[int64]map[domain.LedgerKind]map[string]domain.CellValue, len(lineItemIDs))
	for _, id := range lineItemIDs {
		byKind := make(map[domain.LedgerKind]map[string]domain.CellValue, len(domain.LedgerKinds))
		for _, kind := range domain.LedgerKinds {
			byKind[kind] = map[string]domain.CellValue{}
		}
		cells[id] = byKind
	}

	for _, kind := range domain.LedgerKinds {
		entries, err := r.ListEntries(ctx, kind, lineItemIDs)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			cells[e.LineItemID][kind][strconv.Itoa(e.ColumnNumber)] = domain.CellValue{
				Quantity:  e.Quantity,
				EntryDate: e.EntryDate,
			}
		}
	}
	return cells, nil
}

func sumCells(cells map[string]domain.CellValue) float64 {
	var total float64
	for _, c := range cells {
		total += c.Quantity
	}
	return total
}

// GetJobView assembles the job with its line items, ledger cells and totals.
func (r *MaterialsRepository) GetJobView(ctx context.Context, jobID int64) (*domain.JobView, error) {
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

	view := &domain.JobView{Job: *job, LineItems: make([]domain.LineItemView, 0, len(items))}
	for _, item := range items {
		c := cells[item.ID]
		view.LineItems = append(view.LineItems, domain.LineItemView{
			ID:              item.ID,
			LineNumber:      item.LineNumber,
			StockNS:         item.StockNS,
			SKU:             item.SKU,
			Description:     item.Description,
			QuoteQty:        item.QuoteQty,
			QtyOrdered:      item.QtyOrdered,
			PricePer:        item.PricePer,
			TotalNetPrice:   domain.Round2(item.NetPrice()),
			TotalReceived:   sumCells(c[domain.LedgerReceived]),
			TotalShipped:    sumCells(c[domain.LedgerShipped]),
			TotalInvoiced:   sumCells(c[domain.LedgerInvoiced]),
			ReceivedEntries: c[domain.LedgerReceived],
			ShippedEntries:  c[domain.LedgerShipped],
			InvoicedEntries: c[domain.LedgerInvoiced],
		})
	}
	return view, nil
}

// NetTotalsByJob returns Σ net price of line items per job id.
func (r *MaterialsRepository) NetTotalsByJob(ctx context.Context) (map[int64]float64, error) {
	type row struct {
		JobID int64
		Net   float64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.LineItem{}).
		Select("job_id, COALESCE(SUM(CASE WHEN total_net_price != 0 THEN total_net_price ELSE qty_ordered * price_per END), 0) AS net").
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[int64]float64, len(rows))
	for _, rw := range rows {
		totals[rw.JobID] = rw.Net
	}
	return totals, nil
}
