package repository

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"gorm.io/gorm"
)

// Project-office reports: bids, submittals, RFIs, change orders, closeout,
// contracts, pay apps, customers, quotes, expenses and licenses.

type BidFilter struct {
	Status      string
	Search      string
	JobNameLike string
	GCLike      string
	// DateFrom/DateTo match either bid_date or bid_submitted_date.
	DateFrom string
	DateTo   string
	// NameOrJobLike matches bid_name or the linked job's name.
	NameOrJobLike string
	Page
}

func (r *ReportRepository) bidQuery(ctx context.Context, f BidFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("bids b").
		Joins("LEFT JOIN jobs j ON j.id = b.job_id")
	if f.Status != "" {
		q = q.Where("b.status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("b.bid_name LIKE ?", likePattern(f.Search))
	}
	if f.JobNameLike != "" {
		q = q.Where("j.name LIKE ?", likePattern(f.JobNameLike))
	}
	if f.GCLike != "" {
		q = q.Where("b.contracting_gc LIKE ?", likePattern(f.GCLike))
	}
	if f.NameOrJobLike != "" {
		p := likePattern(f.NameOrJobLike)
		q = q.Where("b.bid_name LIKE ? OR j.name LIKE ?", p, p)
	}
	if f.DateFrom != "" && f.DateTo != "" {
		q = q.Where("(b.bid_date BETWEEN ? AND ?) OR (b.bid_submitted_date BETWEEN ? AND ?)",
			f.DateFrom, f.DateTo, f.DateFrom, f.DateTo)
	}
	return q
}

func (r *ReportRepository) Bids(ctx context.Context, f BidFilter) ([]domain.BidRow, error) {
	var rows []domain.BidRow
	q := r.bidQuery(ctx, f).
		Select("b.id, b.bid_name, b.status, b.total_bid, b.project_type, b.contracting_gc, b.bid_date, b.bid_submitted_date, j.name AS job_name")
	err := f.apply(q, "b.id DESC", 50).Scan(&rows).Error
	return rows, err
}

// BidTotals returns the count and summed total_bid of matching bids.
func (r *ReportRepository) BidTotals(ctx context.Context, f BidFilter) (int64, float64, error) {
	var out struct {
		Cnt   int64
		Total float64
	}
	err := r.bidQuery(ctx, f).
		Select("COUNT(*) AS cnt, COALESCE(SUM(b.total_bid), 0) AS total").
		Scan(&out).Error
	return out.Cnt, out.Total, err
}

// BidStatusCounts groups bids by status, largest group first.
func (r *ReportRepository) BidStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	var rows []domain.StatusCount
	err := r.db.WithContext(ctx).
		Table("bids").
		Select("status, COUNT(*) AS cnt, COALESCE(SUM(total_bid), 0) AS total").
		Group("status").
		Order("cnt DESC").
		Scan(&rows).Error
	return rows, err
}

// TopGCs ranks general contractors by accepted bids, then by bid count.
func (r *ReportRepository) TopGCs(ctx context.Context, limit int) ([]domain.GCStats, error) {
	var rows []domain.GCStats
	err := r.db.WithContext(ctx).
		Table("bids").
		Select("contracting_gc, COUNT(*) AS cnt, " +
			"SUM(CASE WHEN LOWER(status) IN ('accepted','won','awarded') THEN 1 ELSE 0 END) AS accepted").
		Where("contracting_gc != ''").
		Group("contracting_gc").
		Order("accepted DESC, cnt DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

type SubmittalFilter struct {
	JobID       *int64
	JobNameLike string
	Statuses    []string
	Page
}

func (r *ReportRepository) Submittals(ctx context.Context, f SubmittalFilter) ([]domain.SubmittalRow, error) {
	var rows []domain.SubmittalRow
	q := r.db.WithContext(ctx).
		Table("submittals s").
		Select("s.id, s.submittal_number, s.spec_section, s.description, s.vendor, s.status, s.revision_number, s.date_submitted, s.date_required, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = s.job_id")
	if f.JobID != nil {
		q = q.Where("s.job_id = ?", *f.JobID)
	} else if f.JobNameLike != "" {
		q = q.Where("j.name LIKE ?", likePattern(f.JobNameLike))
	}
	if len(f.Statuses) > 0 {
		q = q.Where("s.status IN ?", f.Statuses)
	}
	err := f.apply(q, "s.submittal_number ASC", 100).Scan(&rows).Error
	return rows, err
}

// SubmittalStatusCounts groups all submittals by status.
func (r *ReportRepository) SubmittalStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	var rows []domain.StatusCount
	err := r.db.WithContext(ctx).
		Table("submittals").
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

type RFIFilter struct {
	JobID  *int64
	Status string
	Page
}

func (r *ReportRepository) RFIs(ctx context.Context, f RFIFilter) ([]domain.RFIRow, error) {
	var rows []domain.RFIRow
	q := r.db.WithContext(ctx).
		Table("rfis r").
		Select("r.id, r.rfi_number, r.subject, r.status, r.date_submitted, r.date_required, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = r.job_id")
	if f.JobID != nil {
		q = q.Where("r.job_id = ?", *f.JobID)
	}
	if f.Status != "" {
		q = q.Where("r.status = ?", f.Status)
	}
	err := f.apply(q, "r.rfi_number ASC", 50).Scan(&rows).Error
	return rows, err
}

type ChangeOrderFilter struct {
	JobID    *int64
	Statuses []string
	Page
}

func (r *ReportRepository) ChangeOrders(ctx context.Context, f ChangeOrderFilter) ([]domain.ChangeOrderRow, error) {
	var rows []domain.ChangeOrderRow
	q := r.db.WithContext(ctx).
		Table("change_orders co").
		Select("co.id, co.co_number, co.title, co.amount, co.status, co.approved_date, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = co.job_id")
	if f.JobID != nil {
		q = q.Where("co.job_id = ?", *f.JobID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("co.status IN ?", f.Statuses)
	}
	err := f.apply(q, "co.co_number ASC", 50).Scan(&rows).Error
	return rows, err
}

// ChangeOrderStatusTotals groups change orders by status with summed amounts.
func (r *ReportRepository) ChangeOrderStatusTotals(ctx context.Context) ([]domain.StatusCount, error) {
	var rows []domain.StatusCount
	err := r.db.WithContext(ctx).
		Table("change_orders").
		Select("status, COUNT(*) AS cnt, COALESCE(SUM(amount), 0) AS total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

type CloseoutFilter struct {
	JobID    *int64
	Statuses []string
	ItemType string
	Page
}

func (r *ReportRepository) CloseoutItems(ctx context.Context, f CloseoutFilter) ([]domain.CloseoutRow, error) {
	var rows []domain.CloseoutRow
	q := r.db.WithContext(ctx).
		Table("closeout_checklists cl").
		Select("cl.id, cl.item_name, cl.item_type, cl.status, cl.notes, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = cl.job_id")
	if f.JobID != nil {
		q = q.Where("cl.job_id = ?", *f.JobID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("cl.status IN ?", f.Statuses)
	}
	if f.ItemType != "" {
		q = q.Where("cl.item_type = ?", f.ItemType)
	}
	err := f.apply(q, "cl.sort_order ASC", 50).Scan(&rows).Error
	return rows, err
}

// CloseoutProgress counts all checklist items and those Complete or N/A.
func (r *ReportRepository) CloseoutProgress(ctx context.Context) (total, complete int64, err error) {
	var out struct {
		Total    int64
		Complete int64
	}
	err = r.db.WithContext(ctx).
		Table("closeout_checklists").
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status IN ('Complete','N/A') THEN 1 ELSE 0 END), 0) AS complete").
		Scan(&out).Error
	return out.Total, out.Complete, err
}

type ContractFilter struct {
	JobID        *int64
	Status       string
	ContractType string
	Page
}

func (r *ReportRepository) Contracts(ctx context.Context, f ContractFilter) ([]domain.ContractRow, error) {
	var rows []domain.ContractRow
	q := r.db.WithContext(ctx).
		Table("contracts c").
		Select("c.id, c.title, c.contractor, c.contract_type, c.value, c.status, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = c.job_id")
	if f.JobID != nil {
		q = q.Where("c.job_id = ?", *f.JobID)
	}
	if f.Status != "" {
		q = q.Where("c.status = ?", f.Status)
	}
	if f.ContractType != "" {
		q = q.Where("c.contract_type = ?", f.ContractType)
	}
	err := f.apply(q, "c.id DESC", 50).Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) PayAppContracts(ctx context.Context, jobID *int64, page Page) ([]domain.PayAppContractRow, error) {
	var rows []domain.PayAppContractRow
	q := r.db.WithContext(ctx).
		Table("pay_app_contracts pc").
		Select("pc.id, pc.project_no, pc.gc_name, pc.original_contract_sum, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = pc.job_id")
	if jobID != nil {
		q = q.Where("pc.job_id = ?", *jobID)
	}
	err := page.apply(q, "pc.id DESC", 50).Scan(&rows).Error
	return rows, err
}

type CustomerFilter struct {
	Search      string
	CompanyType string
	Page
}

// Customers lists active customers by company name.
func (r *ReportRepository) Customers(ctx context.Context, f CustomerFilter) ([]domain.CustomerRow, error) {
	var rows []domain.CustomerRow
	q := r.db.WithContext(ctx).
		Table("customers").
		Select("id, company_name, company_type, contact_name, email, phone, address").
		Where("is_active = 1")
	if f.Search != "" {
		q = q.Where("company_name LIKE ?", likePattern(f.Search))
	}
	if f.CompanyType != "" {
		q = q.Where("company_type = ?", f.CompanyType)
	}
	err := f.apply(q, "company_name ASC", 50).Scan(&rows).Error
	return rows, err
}

type SupplierQuoteFilter struct {
	JobID        *int64
	SupplierLike string
	Status       string
	Page
}

func (r *ReportRepository) SupplierQuotes(ctx context.Context, f SupplierQuoteFilter) ([]domain.SupplierQuoteRow, error) {
	var rows []domain.SupplierQuoteRow
	q := r.db.WithContext(ctx).
		Table("supplier_quotes sq").
		Select("sq.id, sq.supplier_name, sq.quote_number, sq.status, sq.subtotal, sq.total, j.name AS job_name").
		Joins("JOIN jobs j ON j.id = sq.job_id")
	if f.JobID != nil {
		q = q.Where("sq.job_id = ?", *f.JobID)
	}
	if f.SupplierLike != "" {
		q = q.Where("sq.supplier_name LIKE ?", likePattern(f.SupplierLike))
	}
	if f.Status != "" {
		q = q.Where("sq.status = ?", f.Status)
	}
	err := f.apply(q, "sq.id DESC", 50).Scan(&rows).Error
	return rows, err
}

type RecurringExpenseFilter struct {
	Category string
	// DueBefore keeps active expenses whose next due date is before it.
	DueBefore string
	// DueFrom/DueTo keep active expenses due within the range, inclusive.
	DueFrom string
	DueTo   string
	Page
}

func (r *ReportRepository) RecurringExpenses(ctx context.Context, f RecurringExpenseFilter) ([]domain.RecurringExpenseRow, error) {
	var rows []domain.RecurringExpenseRow
	q := r.db.WithContext(ctx).
		Table("recurring_expenses").
		Select("id, category, vendor, description, amount, frequency, next_due_date, is_active")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.DueBefore != "" {
		q = q.Where("is_active = 1 AND next_due_date != '' AND next_due_date < ?", f.DueBefore)
	}
	if f.DueFrom != "" && f.DueTo != "" {
		q = q.Where("is_active = 1 AND next_due_date BETWEEN ? AND ?", f.DueFrom, f.DueTo)
	}
	err := f.apply(q, "next_due_date ASC", 50).Scan(&rows).Error
	return rows, err
}

// RecurringExpenseSummary returns the active count and summed amount, plus
// how many active expenses are past due as of today.
func (r *ReportRepository) RecurringExpenseSummary(ctx context.Context, today string) (active int64, total float64, overdue int64, err error) {
	var out struct {
		Cnt   int64
		Total float64
	}
	db := r.db.WithContext(ctx)
	err = db.Table("recurring_expenses").
		Select("COUNT(*) AS cnt, COALESCE(SUM(amount), 0) AS total").
		Where("is_active = 1").
		Scan(&out).Error
	if err != nil {
		return 0, 0, 0, err
	}
	err = db.Table("recurring_expenses").
		Where("is_active = 1 AND next_due_date != '' AND next_due_date < ?", today).
		Count(&overdue).Error
	return out.Cnt, out.Total, overdue, err
}

type ExpenseFilter struct {
	JobID    *int64
	Category string
	Page
}

func (r *ReportRepository) Expenses(ctx context.Context, f ExpenseFilter) ([]domain.ExpenseRow, error) {
	var rows []domain.ExpenseRow
	q := r.db.WithContext(ctx).
		Table("expenses e").
		Select("e.id, e.job_id, j.name AS job_name, e.category, e.vendor, e.description, e.amount, e.expense_date").
		Joins("JOIN jobs j ON j.id = e.job_id")
	if f.JobID != nil {
		q = q.Where("e.job_id = ?", *f.JobID)
	}
	if f.Category != "" {
		q = q.Where("e.category = ?", f.Category)
	}
	err := f.apply(q, "e.expense_date DESC, e.id DESC", 50).Scan(&rows).Error
	return rows, err
}

type LicenseFilter struct {
	Status string
	// ExpiredBefore keeps licenses whose expiration date is before it.
	ExpiredBefore string
	// ExpiresFrom/ExpiresTo keep licenses expiring within the range.
	ExpiresFrom string
	ExpiresTo   string
	// ExpiresBy keeps dated licenses expiring on or before it, expired
	// ones included.
	ExpiresBy string
	Page
}

func (r *ReportRepository) Licenses(ctx context.Context, f LicenseFilter) ([]domain.License, error) {
	var rows []domain.License
	q := r.db.WithContext(ctx).Model(&domain.License{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ExpiredBefore != "" {
		q = q.Where("expiration_date != '' AND expiration_date < ?", f.ExpiredBefore)
	}
	if f.ExpiresFrom != "" && f.ExpiresTo != "" {
		q = q.Where("expiration_date BETWEEN ? AND ?", f.ExpiresFrom, f.ExpiresTo)
	}
	if f.ExpiresBy != "" {
		q = q.Where("expiration_date != '' AND expiration_date <= ?", f.ExpiresBy)
	}
	err := f.apply(q, "expiration_date ASC", 50).Find(&rows).Error
	return rows, err
}

// LicenseCounts returns total, expired and expiring-within-window counts.
func (r *ReportRepository) LicenseCounts(ctx context.Context, today, horizon string) (total, expired, expiring int64, err error) {
	db := r.db.WithContext(ctx).Model(&domain.License{})
	if err = db.Count(&total).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&domain.License{}).
		Where("expiration_date != '' AND expiration_date < ?", today).
		Count(&expired).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&domain.License{}).
		Where("expiration_date BETWEEN ? AND ?", today, horizon).
		Count(&expiring).Error
	return
}
