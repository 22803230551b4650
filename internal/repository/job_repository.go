package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ts := nowLocal()
	job.CreatedAt = ts
	job.UpdatedAt = ts
	if job.Status == "" {
		job.Status = domain.JobStatusNeedsBid
	}
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns jobs ordered by name, optionally restricted to one status.
func (r *JobRepository) List(ctx context.Context, status string) ([]domain.Job, error) {
	var jobs []domain.Job
	query := r.db.WithContext(ctx).Model(&domain.Job{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("name ASC").Find(&jobs).Error
	return jobs, err
}

// Update applies the given column values and refreshes updated_at.
func (r *JobRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["updated_at"] = nowLocal()
	return r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the job. Line items, entries, versions and accounting
// rows cascade; service calls and bids keep the row with a null job.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByNameLike returns the highest-id job whose name contains name.
func (r *JobRepository) FindByNameLike(ctx context.Context, name string) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", likePattern(name)).
		Order("id DESC").
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// All returns every job in id order.
func (r *JobRepository) All(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).Order("id ASC").Find(&jobs).Error
	return jobs, err
}
