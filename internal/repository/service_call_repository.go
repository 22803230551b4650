package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

type ServiceCallRepository struct {
	db *gorm.DB
}

func NewServiceCallRepository(db *gorm.DB) *ServiceCallRepository {
	return &ServiceCallRepository{db: db}
}

func (r *ServiceCallRepository) Create(ctx context.Context, call *domain.ServiceCall) error {
	call.CreatedAt = nowLocal()
	if call.Priority == "" {
		call.Priority = domain.PriorityNormal
	}
	if call.Status == "" {
		call.Status = domain.ServiceCallOpen
		if call.AssignedTo != nil {
			call.Status = domain.ServiceCallAssigned
		}
	}
	return r.db.WithContext(ctx).Create(call).Error
}

func (r *ServiceCallRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceCall, error) {
	var call domain.ServiceCall
	if err := r.db.WithContext(ctx).First(&call, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &call, nil
}

// List returns service calls with their job names, newest first.
func (r *ServiceCallRepository) List(ctx context.Context, status string) ([]domain.ServiceCallRow, error) {
	var rows []domain.ServiceCallRow
	query := r.db.WithContext(ctx).
		Table("service_calls sc").
		Select("sc.id, sc.job_id, j.name AS job_name, sc.caller_name, sc.description, sc.priority, sc.status, sc.assigned_to, sc.scheduled_date, sc.created_at").
		Joins("LEFT JOIN jobs j ON j.id = sc.job_id")
	if status != "" {
		query = query.Where("sc.status = ?", status)
	}
	err := query.Order("sc.created_at DESC, sc.id DESC").Scan(&rows).Error
	return rows, err
}

// UpdateStatus sets the status, stamping resolved_date when resolved.
func (r *ServiceCallRepository) UpdateStatus(ctx context.Context, id int64, status, resolution string) error {
	updates := map[string]interface{}{"status": status}
	if resolution != "" {
		updates["resolution"] = resolution
	}
	if status == domain.ServiceCallResolved {
		updates["resolved_date"] = todayLocal()
	}
	result := r.db.WithContext(ctx).Model(&domain.ServiceCall{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
