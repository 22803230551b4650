package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

// TaxTable maps postal codes to sales tax data.
type TaxTable map[string]domain.TaxInfo

// Lookup returns the tax data for zip, or a zero rate when unknown.
func (t TaxTable) Lookup(zip string) domain.TaxInfo {
	zip = strings.TrimSpace(zip)
	if len(zip) > 5 {
		zip = zip[:5]
	}
	if info, ok := t[zip]; ok {
		return info
	}
	return domain.TaxInfo{}
}

// JobService handles job CRUD and the stage analytics report.
type JobService struct {
	jobRepo *repository.JobRepository
	ledger  *LedgerService
	taxes   TaxTable
	logger  *zap.Logger
}

// NewJobService creates a new job service instance
func NewJobService(jobRepo *repository.JobRepository, ledger *LedgerService, taxes TaxTable, logger *zap.Logger) *JobService {
	return &JobService{jobRepo: jobRepo, ledger: ledger, taxes: taxes, logger: logger}
}

// TaxLookup returns the tax rate, city and state for a postal code.
func (s *JobService) TaxLookup(zip string) domain.TaxInfo {
	return s.taxes.Lookup(zip)
}

// List returns all jobs ordered by name.
func (s *JobService) List(ctx context.Context, status string) ([]domain.Job, error) {
	jobs, err := s.jobRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Create inserts a job in the Needs Bid stage. Without an explicit tax
// rate the postal code lookup supplies the rate and any missing city or
// state.
func (s *JobService) Create(ctx context.Context, req *domain.CreateJobRequest) (*domain.Job, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: Job name is required", ErrInvalidInput)
	}

	job := &domain.Job{
		Name:            name,
		Status:          domain.JobStatusNeedsBid,
		Address:         strings.TrimSpace(req.Address),
		City:            strings.TrimSpace(req.City),
		State:           strings.TrimSpace(req.State),
		ZipCode:         strings.TrimSpace(req.ZipCode),
		SupplierAccount: strings.TrimSpace(req.SupplierAccount),
	}
	if req.TaxRate != nil {
		job.TaxRate = *req.TaxRate
	} else if job.ZipCode != "" {
		info := s.taxes.Lookup(job.ZipCode)
		job.TaxRate = info.TaxRate
		if job.City == "" {
			job.City = info.City
		}
		if job.State == "" {
			job.State = info.State
		}
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	s.logger.Info("Job created", zap.Int64("jobID", job.ID), zap.String("name", job.Name))
	return job, nil
}

// Update changes the fields present in req.
func (s *JobService) Update(ctx context.Context, id int64, req *domain.UpdateJobRequest) (*domain.Job, error) {
	if _, err := s.jobRepo.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			updates["name"] = name
		}
	}
	if req.Status != nil {
		if status := strings.TrimSpace(*req.Status); status != "" {
			if !domain.IsJobStage(status) {
				return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
			}
			updates["status"] = status
		}
	}
	setString := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	setString("address", req.Address)
	setString("city", req.City)
	setString("state", req.State)
	setString("zip_code", req.ZipCode)
	setString("supplier_account", req.SupplierAccount)
	if req.TaxRate != nil {
		updates["tax_rate"] = *req.TaxRate
	}

	if len(updates) > 0 {
		if err := s.jobRepo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update job: %w", err)
		}
	}
	return s.jobRepo.GetByID(ctx, id)
}

// Delete removes the job and everything it owns.
func (s *JobService) Delete(ctx context.Context, id int64) error {
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.logger.Info("Job deleted", zap.Int64("jobID", id))
	return nil
}

// Analytics returns the stage-bucketed cost report over every job.
func (s *JobService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	jobs, err := s.jobRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return s.ledger.Analytics(ctx, jobs)
}
