package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

// ExpiryRepository moves dated licenses and warranty items between the
// active, expiring and expired statuses.
type ExpiryRepository struct {
	db *gorm.DB
}

func NewExpiryRepository(db *gorm.DB) *ExpiryRepository {
	return &ExpiryRepository{db: db}
}

// Warranty statuses the scan never overrides.
var frozenWarrantyStatuses = []string{domain.WarrantyClaimed}

// Licenses awaiting renewal keep their status.
var frozenLicenseStatuses = []string{domain.LicensePendingRenewal}

// MarkLicenses sets Expired on licenses past today and Expiring Soon on
// those due by horizon. It returns how many rows changed.
func (r *ExpiryRepository) MarkLicenses(ctx context.Context, today, horizon string) (int64, error) {
	return r.mark(ctx, "licenses", "expiration_date", frozenLicenseStatuses,
		domain.LicenseExpired, domain.LicenseExpiringSoon, today, horizon)
}

// MarkWarranties is MarkLicenses for warranty items.
func (r *ExpiryRepository) MarkWarranties(ctx context.Context, today, horizon string) (int64, error) {
	return r.mark(ctx, "warranty_items", "warranty_end", frozenWarrantyStatuses,
		domain.WarrantyExpired, domain.WarrantyExpiringSoon, today, horizon)
}

func (r *ExpiryRepository) mark(ctx context.Context, table, column string, frozen []string, expired, expiring, today, horizon string) (int64, error) {
	var changed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(table).
			Where(column+" != '' AND "+column+" < ?", today).
			Where("status NOT IN ?", append([]string{expired}, frozen...)).
			Update("status", expired)
		if res.Error != nil {
			return res.Error
		}
		changed += res.RowsAffected

		res = tx.Table(table).
			Where(column+" BETWEEN ? AND ?", today, horizon).
			Where("status NOT IN ?", append([]string{expiring}, frozen...)).
			Update("status", expiring)
		if res.Error != nil {
			return res.Error
		}
		changed += res.RowsAffected
		return nil
	})
	return changed, err
}
