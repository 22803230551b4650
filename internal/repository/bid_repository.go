package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	ts := nowLocal()
	bid.CreatedAt = ts
	bid.UpdatedAt = ts
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *BidRepository) GetByID(ctx context.Context, id int64) (*domain.Bid, error) {
	var bid domain.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// List returns bids most recently updated first.
func (r *BidRepository) List(ctx context.Context, status string) ([]domain.Bid, error) {
	var bids []domain.Bid
	query := r.db.WithContext(ctx).Model(&domain.Bid{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("updated_at DESC, id DESC").Find(&bids).Error
	return bids, err
}

// Save writes every column of an existing bid.
func (r *BidRepository) Save(ctx context.Context, bid *domain.Bid) error {
	bid.UpdatedAt = nowLocal()
	return r.db.WithContext(ctx).Save(bid).Error
}

func (r *BidRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Bid{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
