package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository runs the read-only queries behind both chat assistants.
// Every list method takes a filter whose zero value means "no filter";
// Order and Limit fall back to a per-query default when empty.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Page controls ordering and size of a report query.
type Page struct {
	Order string
	Limit int
}

func (p Page) apply(q *gorm.DB, defaultOrder string, defaultLimit int) *gorm.DB {
	order := p.Order
	if order == "" {
		order = defaultOrder
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if order != "" {
		q = q.Order(order)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

// ResolveJobID returns the id of the highest-id job whose name contains
// name, or nil.
func (r *ReportRepository) ResolveJobID(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("name LIKE ?", likePattern(name)).
		Order("id DESC").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	return &ids[0], nil
}

// FirstJobByName returns the lowest-id job whose name contains name.
func (r *ReportRepository) FirstJobByName(ctx context.Context, name string) (*domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", likePattern(name)).
		Order("id ASC").
		Limit(1).
		Find(&jobs).Error
	if err != nil || len(jobs) == 0 {
		return nil, err
	}
	return &jobs[0], nil
}

type JobFilter struct {
	Status string
	Search string
	Page
}

func (r *ReportRepository) Jobs(ctx context.Context, f JobFilter) ([]domain.JobRow, error) {
	var rows []domain.JobRow
	q := r.db.WithContext(ctx).Model(&domain.Job{}).Select("id, name, status, created_at")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", likePattern(f.Search))
	}
	err := f.apply(q, "id DESC", 50).Scan(&rows).Error
	return rows, err
}

type ScheduleFilter struct {
	JobID     *int64
	StartFrom string
	StartTo   string
	Page
}

func (r *ReportRepository) ScheduleEvents(ctx context.Context, f ScheduleFilter) ([]domain.ScheduleEventRow, error) {
	var rows []domain.ScheduleEventRow
	q := r.db.WithContext(ctx).
		Table("job_schedule_events s").
		Select("s.id, s.job_id, j.name AS job_name, s.phase_name, s.description, s.start_date, s.end_date, s.status, s.assigned_to").
		Joins("JOIN jobs j ON j.id = s.job_id")
	if f.JobID != nil {
		q = q.Where("s.job_id = ?", *f.JobID)
	}
	if f.StartFrom != "" {
		q = q.Where("s.start_date >= ?", f.StartFrom)
	}
	if f.StartTo != "" {
		q = q.Where("s.start_date <= ?", f.StartTo)
	}
	err := f.apply(q, "s.start_date ASC", 50).Scan(&rows).Error
	return rows, err
}

type WarrantyFilter struct {
	JobID       *int64
	JobNameLike string
	Status      string
	EndsBy      string
	Page
}

func (r *ReportRepository) Warranties(ctx context.Context, f WarrantyFilter) ([]domain.WarrantyRow, error) {
	var rows []domain.WarrantyRow
	q := r.db.WithContext(ctx).
		Table("warranty_items w").
		Select("w.id, w.job_id, j.name AS job_name, w.item_description, w.manufacturer, w.warranty_start, w.warranty_end, w.status").
		Joins("JOIN jobs j ON j.id = w.job_id")
	if f.JobID != nil {
		q = q.Where("w.job_id = ?", *f.JobID)
	}
	if f.JobNameLike != "" {
		q = q.Where("j.name LIKE ?", likePattern(f.JobNameLike))
	}
	if f.Status != "" {
		q = q.Where("w.status = ?", f.Status)
	}
	if f.EndsBy != "" {
		q = q.Where("w.warranty_end != '' AND w.warranty_end <= ?", f.EndsBy)
	}
	err := f.apply(q, "w.warranty_end ASC", 50).Scan(&rows).Error
	return rows, err
}

type ServiceCallFilter struct {
	Status   string
	Priority string
	JobID    *int64
	OpenOnly bool
	Page
}

// UrgencyOrder sorts Urgent, then High, then everything else.
const UrgencyOrder = "CASE sc.priority WHEN 'Urgent' THEN 0 WHEN 'High' THEN 1 ELSE 2 END, sc.created_at DESC"

func (r *ReportRepository) ServiceCalls(ctx context.Context, f ServiceCallFilter) ([]domain.ServiceCallRow, error) {
	var rows []domain.ServiceCallRow
	q := r.db.WithContext(ctx).
		Table("service_calls sc").
		Select("sc.id, sc.job_id, j.name AS job_name, sc.caller_name, sc.description, sc.priority, sc.status, sc.assigned_to, sc.scheduled_date, sc.created_at").
		Joins("LEFT JOIN jobs j ON j.id = sc.job_id")
	if f.Status != "" {
		q = q.Where("sc.status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("sc.priority = ?", f.Priority)
	}
	if f.JobID != nil {
		q = q.Where("sc.job_id = ?", *f.JobID)
	}
	if f.OpenOnly {
		q = q.Where("sc.status NOT IN ?", []string{domain.ServiceCallResolved, domain.ServiceCallClosed})
	}
	err := f.apply(q, "sc.created_at DESC", 50).Scan(&rows).Error
	return rows, err
}

type TimeEntryFilter struct {
	UserID       *int64
	JobID        *int64
	DateFrom     string
	DateTo       string
	PayPeriod    string
	ApprovedOnly bool
	Page
}

// TimeEntries joins users and left-joins jobs so entries on deleted jobs
// still count toward hours.
func (r *ReportRepository) TimeEntries(ctx context.Context, f TimeEntryFilter) ([]domain.TimeEntryRow, error) {
	var rows []domain.TimeEntryRow
	q := r.db.WithContext(ctx).
		Table("time_entries te").
		Select("te.id, te.user_id, u.display_name, te.job_id, j.name AS job_name, te.hours, te.hourly_rate, te.work_date, te.description, te.approved, te.pay_period").
		Joins("JOIN users u ON u.id = te.user_id").
		Joins("LEFT JOIN jobs j ON j.id = te.job_id")
	if f.UserID != nil {
		q = q.Where("te.user_id = ?", *f.UserID)
	}
	if f.JobID != nil {
		q = q.Where("te.job_id = ?", *f.JobID)
	}
	if f.DateFrom != "" {
		q = q.Where("te.work_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("te.work_date <= ?", f.DateTo)
	}
	if f.PayPeriod != "" {
		q = q.Where("te.pay_period = ?", f.PayPeriod)
	}
	if f.ApprovedOnly {
		q = q.Where("te.approved = ?", true)
	}
	err := f.apply(q, "te.work_date DESC, te.id DESC", 200).Scan(&rows).Error
	return rows, err
}

type InventoryFilter struct {
	JobID  *int64
	Search string
	Page
}

func (r *ReportRepository) Inventory(ctx context.Context, f InventoryFilter) ([]domain.InventoryRow, error) {
	var rows []domain.InventoryRow
	q := r.db.WithContext(ctx).
		Table("line_items li").
		Select("li.id, li.job_id, j.name AS job_name, li.line_number, li.sku, li.description, li.qty_ordered, li.price_per, li.total_net_price").
		Joins("JOIN jobs j ON j.id = li.job_id")
	if f.JobID != nil {
		q = q.Where("li.job_id = ?", *f.JobID)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("li.description LIKE ? OR li.sku LIKE ?", p, p)
	}
	err := f.apply(q, "li.id DESC", 50).Scan(&rows).Error
	return rows, err
}

// FinancialsForJob sums revenue and cost for a job.
func (r *ReportRepository) FinancialsForJob(ctx context.Context, job *domain.Job) (*domain.JobFinancials, error) {
	fin := &domain.JobFinancials{Job: *job}
	db := r.db.WithContext(ctx)

	sums := []struct {
		dest  *float64
		query string
	}{
		{&fin.Expenses, "SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE job_id = ?"},
		{&fin.Payments, "SELECT COALESCE(SUM(amount), 0) FROM payments WHERE job_id = ?"},
		{&fin.InvoicedPaid, "SELECT COALESCE(SUM(amount), 0) FROM client_invoices WHERE job_id = ? AND status = 'Paid'"},
		{&fin.Labor, "SELECT COALESCE(SUM(hours * hourly_rate), 0) FROM time_entries WHERE job_id = ?"},
		{&fin.Materials, "SELECT COALESCE(SUM(CASE WHEN total_net_price != 0 THEN total_net_price ELSE qty_ordered * price_per END), 0) FROM line_items WHERE job_id = ?"},
	}
	for _, s := range sums {
		if err := db.Raw(s.query, job.ID).Scan(s.dest).Error; err != nil {
			return nil, err
		}
	}
	return fin, nil
}

// CodeSections searches section numbers and titles across all code books.
func (r *ReportRepository) CodeSections(ctx context.Context, query string, limit int) ([]domain.CodeSectionHit, error) {
	var rows []domain.CodeSectionHit
	p := likePattern(query)
	err := r.db.WithContext(ctx).
		Table("code_sections cs").
		Select("cs.section_number, cs.title, cb.code").
		Joins("JOIN code_books cb ON cb.id = cs.book_id").
		Where("cs.section_number LIKE ? OR cs.title LIKE ?", p, p).
		Order("cb.code, cs.sort_order").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Howtos returns the newest articles, filtered by title or content when
// query is set.
func (r *ReportRepository) Howtos(ctx context.Context, query string, limit int) ([]domain.HowtoRow, error) {
	var rows []domain.HowtoRow
	q := r.db.WithContext(ctx).Table("howto_articles").Select("id, title, category")
	if query != "" {
		p := likePattern(query)
		q = q.Where("title LIKE ? OR content LIKE ?", p, p)
	}
	err := q.Order("updated_at DESC, id DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}
