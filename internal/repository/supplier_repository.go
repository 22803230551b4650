package repository

import (
	"context"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

// SupplierInvoiceFilters defines filter options for invoice listing
type SupplierInvoiceFilters struct {
	SupplierConfigID *int64
	JobID            *int64
	Status           string
	Search           string
	DateFrom         string
	DateTo           string
	Unlinked         bool
}

// SupplierRepository handles supplier configs and supplier invoices
type SupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository instance
func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// GetConfig retrieves a supplier config by its ID
func (r *SupplierRepository) GetConfig(ctx context.Context, id int64) (*domain.SupplierConfig, error) {
	var cfg domain.SupplierConfig
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListConfigs returns every supplier config ordered by name
func (r *SupplierRepository) ListConfigs(ctx context.Context, activeOnly bool) ([]domain.SupplierConfig, error) {
	var configs []domain.SupplierConfig
	query := r.db.WithContext(ctx).Model(&domain.SupplierConfig{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("supplier_name ASC").Find(&configs).Error
	return configs, err
}

// MarkSynced stamps last_sync_at on a supplier config
func (r *SupplierRepository) MarkSynced(ctx context.Context, id int64) error {
	ts := nowLocal()
	return r.db.WithContext(ctx).
		Model(&domain.SupplierConfig{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"last_sync_at": ts, "updated_at": ts}).Error
}

// UpsertInvoice inserts the invoice or, when (invoice_number,
// supplier_config_id) already exists, overwrites its header fields and line
// items. A nil JobID never clears an existing link. Reports whether a new
// row was inserted.
func (r *SupplierRepository) UpsertInvoice(ctx context.Context, inv *domain.SupplierInvoice) (bool, error) {
	isNew := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []domain.SupplierInvoice
		err := tx.Select("id").
			Where("invoice_number = ? AND supplier_config_id = ?", inv.InvoiceNumber, inv.SupplierConfigID).
			Limit(1).
			Find(&existing).Error
		if err != nil {
			return err
		}

		ts := nowLocal()
		if len(inv.LineItems) == 0 {
			inv.LineItems = []byte("[]")
		}
		if inv.Status == "" {
			inv.Status = domain.InvoiceStatusOpen
		}

		if len(existing) == 0 {
			inv.CreatedAt = ts
			inv.UpdatedAt = ts
			isNew = true
			return tx.Create(inv).Error
		}

		inv.ID = existing[0].ID
		return tx.Model(&domain.SupplierInvoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"external_id":     inv.ExternalID,
				"invoice_date":    inv.InvoiceDate,
				"due_date":        inv.DueDate,
				"status":          inv.Status,
				"po_number":       inv.PONumber,
				"terms":           inv.Terms,
				"discount_amount": inv.DiscountAmount,
				"subtotal":        inv.Subtotal,
				"tax_amount":      inv.TaxAmount,
				"total":           inv.Total,
				"amount_paid":     inv.AmountPaid,
				"balance_due":     inv.BalanceDue,
				"paid_date":       inv.PaidDate,
				"ship_to_name":    inv.ShipToName,
				"ship_to_address": inv.ShipToAddress,
				"line_items":      inv.LineItems,
				"job_id":          gorm.Expr("COALESCE(?, job_id)", inv.JobID),
				"updated_at":      ts,
			}).Error
	})
	return isNew, err
}

// GetInvoice retrieves a supplier invoice by ID
func (r *SupplierRepository) GetInvoice(ctx context.Context, id int64) (*domain.SupplierInvoice, error) {
	var inv domain.SupplierInvoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindInvoice looks up an invoice by its natural key
func (r *SupplierRepository) FindInvoice(ctx context.Context, supplierConfigID int64, invoiceNumber string) (*domain.SupplierInvoice, error) {
	var inv domain.SupplierInvoice
	err := r.db.WithContext(ctx).
		Where("invoice_number = ? AND supplier_config_id = ?", invoiceNumber, supplierConfigID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListInvoices returns invoices matching filters, newest invoice date first
func (r *SupplierRepository) ListInvoices(ctx context.Context, filters *SupplierInvoiceFilters) ([]domain.SupplierInvoice, error) {
	var invoices []domain.SupplierInvoice
	query := r.db.WithContext(ctx).Model(&domain.SupplierInvoice{})

	if filters != nil {
		if filters.SupplierConfigID != nil {
			query = query.Where("supplier_config_id = ?", *filters.SupplierConfigID)
		}
		if filters.JobID != nil {
			query = query.Where("job_id = ?", *filters.JobID)
		}
		if filters.Unlinked {
			query = query.Where("job_id IS NULL")
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.Search != "" {
			searchPattern := likePattern(strings.ToLower(filters.Search))
			query = query.Where("LOWER(invoice_number) LIKE ? OR LOWER(po_number) LIKE ? OR LOWER(ship_to_name) LIKE ?",
				searchPattern, searchPattern, searchPattern)
		}
		if filters.DateFrom != "" {
			query = query.Where("invoice_date >= ?", filters.DateFrom)
		}
		if filters.DateTo != "" {
			query = query.Where("invoice_date <= ?", filters.DateTo)
		}
	}

	err := query.Order("invoice_date DESC, id DESC").Find(&invoices).Error
	return invoices, err
}

// SetInvoiceJob sets or clears the job link on an invoice
func (r *SupplierRepository) SetInvoiceJob(ctx context.Context, id int64, jobID *int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.SupplierInvoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"job_id": jobID, "updated_at": nowLocal()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountInvoices returns how many invoices a supplier has
func (r *SupplierRepository) CountInvoices(ctx context.Context, supplierConfigID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.SupplierInvoice{}).
		Where("supplier_config_id = ?", supplierConfigID).
		Count(&count).Error
	return count, err
}
