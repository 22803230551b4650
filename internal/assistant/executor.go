package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
)

// toolInput is the union of every tool's parameters. Zero values mean the
// parameter was not given.
type toolInput struct {
	Status             string `json:"status"`
	Search             string `json:"search"`
	CountOnly          bool   `json:"count_only"`
	JobID              int64  `json:"job_id"`
	JobName            string `json:"job_name"`
	UserID             int64  `json:"user_id"`
	UpcomingDays       int    `json:"upcoming_days"`
	ExpiringWithinDays int    `json:"expiring_within_days"`
	Priority           string `json:"priority"`
	DateFrom           string `json:"date_from"`
	DateTo             string `json:"date_to"`
	ItemType           string `json:"item_type"`
	ContractType       string `json:"contract_type"`
	CompanyType        string `json:"company_type"`
	SupplierName       string `json:"supplier_name"`
	Category           string `json:"category"`
	OverdueOnly        bool   `json:"overdue_only"`
	RecurringOnly      bool   `json:"recurring_only"`
	ApprovedOnly       bool   `json:"approved_only"`
	PayPeriod          string `json:"pay_period"`
	Page               string `json:"page"`
	Description        string `json:"description"`
}

type result map[string]any

type toolFunc func(x *executor, ctx context.Context, in toolInput, user *auth.UserContext) (result, error)

var toolFuncs = map[string]toolFunc{
	ToolJobs:           (*executor).jobs,
	ToolSchedule:       (*executor).schedule,
	ToolWarranty:       (*executor).warranty,
	ToolServiceCalls:   (*executor).serviceCalls,
	ToolMyHours:        (*executor).myHours,
	ToolInventory:      (*executor).inventory,
	ToolBids:           (*executor).bids,
	ToolSubmittals:     (*executor).submittals,
	ToolRFIs:           (*executor).rfis,
	ToolChangeOrders:   (*executor).changeOrders,
	ToolDocuments:      (*executor).documents,
	ToolContracts:      (*executor).contracts,
	ToolLicenses:       (*executor).licenses,
	ToolPayApps:        (*executor).payApps,
	ToolCustomers:      (*executor).customers,
	ToolSupplierQuotes: (*executor).supplierQuotes,
	ToolExpenses:       (*executor).expenses,
	ToolPayroll:        (*executor).payroll,
	ToolTimeEntries:    (*executor).timeEntries,
	ToolNavigate:       (*executor).navigate,
}

// executor runs tool calls against the report queries.
type executor struct {
	reports *repository.ReportRepository
	now     func() time.Time
}

// Execute runs one tool call for user and returns its JSON result. The role
// gate is checked again here; a denied or failed call is reported to the
// model as an error object rather than returned as a Go error.
func (x *executor) Execute(ctx context.Context, name string, raw json.RawMessage, user *auth.UserContext) (string, bool) {
	if !Allowed(name, user.Role) {
		metrics.AssistantToolCalls.WithLabelValues(name, "denied").Inc()
		return errorJSON(fmt.Sprintf("Access denied: %s is not available for your role.", name)), true
	}
	fn, ok := toolFuncs[name]
	if !ok {
		metrics.AssistantToolCalls.WithLabelValues(name, "error").Inc()
		return errorJSON("Unknown tool: " + name), true
	}

	var in toolInput
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &in); err != nil {
			metrics.AssistantToolCalls.WithLabelValues(name, "error").Inc()
			return errorJSON("Query failed: invalid input: " + err.Error()), true
		}
	}

	out, err := fn(x, ctx, in, user)
	if err != nil {
		metrics.AssistantToolCalls.WithLabelValues(name, "error").Inc()
		return errorJSON("Query failed: " + err.Error()), true
	}
	body, err := json.Marshal(out)
	if err != nil {
		metrics.AssistantToolCalls.WithLabelValues(name, "error").Inc()
		return errorJSON("Query failed: " + err.Error()), true
	}
	metrics.AssistantToolCalls.WithLabelValues(name, "ok").Inc()
	return string(body), false
}

func errorJSON(msg string) string {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return string(body)
}

func (x *executor) daysFromToday(n int) (today, horizon string) {
	t := x.now()
	return t.Format(repository.DateLayout), t.AddDate(0, 0, n).Format(repository.DateLayout)
}

// jobFilter turns job_id or job_name into a job id. A job_name that matches
// nothing reports unmatched so the caller returns an empty list instead of
// an unfiltered one.
func (x *executor) jobFilter(ctx context.Context, in toolInput) (id *int64, unmatched bool, err error) {
	if in.JobID > 0 {
		id := in.JobID
		return &id, false, nil
	}
	if in.JobName == "" {
		return nil, false, nil
	}
	id, err = x.reports.ResolveJobID(ctx, in.JobName)
	if err != nil {
		return nil, false, err
	}
	return id, id == nil, nil
}

func optionalID(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func list[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func listOrCount[T any](key string, rows []T, countOnly bool) result {
	if countOnly {
		return result{"count": len(rows)}
	}
	return result{key: list(rows)}
}

func (x *executor) jobs(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	rows, err := x.reports.Jobs(ctx, repository.JobFilter{Status: in.Status, Search: in.Search})
	if err != nil {
		return nil, err
	}
	return listOrCount("jobs", rows, in.CountOnly), nil
}

func (x *executor) schedule(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"entries": []domain.ScheduleEventRow{}}, nil
	}
	f := repository.ScheduleFilter{JobID: jobID}
	if in.UpcomingDays > 0 {
		f.StartFrom, f.StartTo = x.daysFromToday(in.UpcomingDays)
	}
	rows, err := x.reports.ScheduleEvents(ctx, f)
	if err != nil {
		return nil, err
	}
	return result{"entries": list(rows)}, nil
}

func (x *executor) warranty(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"warranties": []domain.WarrantyRow{}}, nil
	}
	f := repository.WarrantyFilter{JobID: jobID, Status: in.Status}
	if in.ExpiringWithinDays > 0 {
		_, f.EndsBy = x.daysFromToday(in.ExpiringWithinDays)
	}
	rows, err := x.reports.Warranties(ctx, f)
	if err != nil {
		return nil, err
	}
	return result{"warranties": list(rows)}, nil
}

func (x *executor) serviceCalls(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	rows, err := x.reports.ServiceCalls(ctx, repository.ServiceCallFilter{
		Status:   in.Status,
		Priority: in.Priority,
		JobID:    optionalID(in.JobID),
	})
	if err != nil {
		return nil, err
	}
	return listOrCount("service_calls", rows, in.CountOnly), nil
}

// myHours always reports the caller's own entries.
func (x *executor) myHours(ctx context.Context, in toolInput, user *auth.UserContext) (result, error) {
	uid := user.UserID
	rows, err := x.reports.TimeEntries(ctx, repository.TimeEntryFilter{
		UserID:   &uid,
		JobID:    optionalID(in.JobID),
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Page:     repository.Page{Limit: 100},
	})
	if err != nil {
		return nil, err
	}
	return result{"entries": list(rows), "total_hours": totalHours(rows)}, nil
}

func (x *executor) inventory(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"items": []domain.InventoryRow{}}, nil
	}
	rows, err := x.reports.Inventory(ctx, repository.InventoryFilter{JobID: jobID, Search: in.Search})
	if err != nil {
		return nil, err
	}
	return result{"items": list(rows)}, nil
}

// bids matches job_name as a substring of the linked job, not through
// job-id resolution.
func (x *executor) bids(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	rows, err := x.reports.Bids(ctx, repository.BidFilter{
		Status:      in.Status,
		JobNameLike: in.JobName,
		Search:      in.Search,
	})
	if err != nil {
		return nil, err
	}
	return listOrCount("bids", rows, in.CountOnly), nil
}

func (x *executor) submittals(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return listOrCount("submittals", []domain.SubmittalRow{}, in.CountOnly), nil
	}
	f := repository.SubmittalFilter{JobID: jobID, Page: repository.Page{Limit: 100}}
	if in.Status != "" {
		f.Statuses = []string{in.Status}
	}
	rows, err := x.reports.Submittals(ctx, f)
	if err != nil {
		return nil, err
	}
	return listOrCount("submittals", rows, in.CountOnly), nil
}

func (x *executor) rfis(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return listOrCount("rfis", []domain.RFIRow{}, in.CountOnly), nil
	}
	rows, err := x.reports.RFIs(ctx, repository.RFIFilter{JobID: jobID, Status: in.Status})
	if err != nil {
		return nil, err
	}
	return listOrCount("rfis", rows, in.CountOnly), nil
}

func (x *executor) changeOrders(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return listOrCount("change_orders", []domain.ChangeOrderRow{}, in.CountOnly), nil
	}
	f := repository.ChangeOrderFilter{JobID: jobID}
	if in.Status != "" {
		f.Statuses = []string{in.Status}
	}
	rows, err := x.reports.ChangeOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	return listOrCount("change_orders", rows, in.CountOnly), nil
}

func (x *executor) documents(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"documents": []domain.CloseoutRow{}}, nil
	}
	f := repository.CloseoutFilter{JobID: jobID, ItemType: in.ItemType}
	if in.Status != "" {
		f.Statuses = []string{in.Status}
	}
	rows, err := x.reports.CloseoutItems(ctx, f)
	if err != nil {
		return nil, err
	}
	return result{"documents": list(rows)}, nil
}

func (x *executor) contracts(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"contracts": []domain.ContractRow{}}, nil
	}
	rows, err := x.reports.Contracts(ctx, repository.ContractFilter{
		JobID:        jobID,
		Status:       in.Status,
		ContractType: in.ContractType,
	})
	if err != nil {
		return nil, err
	}
	return result{"contracts": list(rows)}, nil
}

func (x *executor) licenses(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	f := repository.LicenseFilter{Status: in.Status}
	if in.ExpiringWithinDays > 0 {
		_, f.ExpiresBy = x.daysFromToday(in.ExpiringWithinDays)
	}
	rows, err := x.reports.Licenses(ctx, f)
	if err != nil {
		return nil, err
	}
	return result{"licenses": list(rows)}, nil
}

func (x *executor) payApps(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"pay_app_contracts": []domain.PayAppContractRow{}}, nil
	}
	rows, err := x.reports.PayAppContracts(ctx, jobID, repository.Page{})
	if err != nil {
		return nil, err
	}
	return result{"pay_app_contracts": list(rows)}, nil
}

func (x *executor) customers(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	rows, err := x.reports.Customers(ctx, repository.CustomerFilter{Search: in.Search, CompanyType: in.CompanyType})
	if err != nil {
		return nil, err
	}
	return result{"customers": list(rows)}, nil
}

func (x *executor) supplierQuotes(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	jobID, unmatched, err := x.jobFilter(ctx, in)
	if err != nil {
		return nil, err
	}
	if unmatched {
		return result{"quotes": []domain.SupplierQuoteRow{}}, nil
	}
	rows, err := x.reports.SupplierQuotes(ctx, repository.SupplierQuoteFilter{
		JobID:        jobID,
		SupplierLike: in.SupplierName,
		Status:       in.Status,
	})
	if err != nil {
		return nil, err
	}
	return result{"quotes": list(rows)}, nil
}

// expenses answers from recurring company expenses when either recurring
// flag is set, and from job expenses otherwise.
func (x *executor) expenses(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	if in.RecurringOnly || in.OverdueOnly {
		f := repository.RecurringExpenseFilter{Category: in.Category}
		if in.OverdueOnly {
			f.DueBefore = x.now().Format(repository.DateLayout)
		}
		rows, err := x.reports.RecurringExpenses(ctx, f)
		if err != nil {
			return nil, err
		}
		return result{"recurring_expenses": list(rows)}, nil
	}
	rows, err := x.reports.Expenses(ctx, repository.ExpenseFilter{JobID: optionalID(in.JobID), Category: in.Category})
	if err != nil {
		return nil, err
	}
	return result{"expenses": list(rows)}, nil
}

func (x *executor) payroll(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	rows, err := x.reports.TimeEntries(ctx, repository.TimeEntryFilter{
		UserID:    optionalID(in.UserID),
		PayPeriod: in.PayPeriod,
		DateFrom:  in.DateFrom,
		DateTo:    in.DateTo,
	})
	if err != nil {
		return nil, err
	}
	var cost, approved, unapproved float64
	for _, r := range rows {
		cost += r.Hours * r.HourlyRate
		if r.Approved {
			approved += r.Hours
		} else {
			unapproved += r.Hours
		}
	}
	return result{
		"entries":          list(rows),
		"total_hours":      totalHours(rows),
		"approved_hours":   domain.Round2(approved),
		"unapproved_hours": domain.Round2(unapproved),
		"total_cost":       domain.Round2(cost),
	}, nil
}

func (x *executor) timeEntries(ctx context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	rows, err := x.reports.TimeEntries(ctx, repository.TimeEntryFilter{
		UserID:       optionalID(in.UserID),
		JobID:        optionalID(in.JobID),
		DateFrom:     in.DateFrom,
		DateTo:       in.DateTo,
		ApprovedOnly: in.ApprovedOnly,
	})
	if err != nil {
		return nil, err
	}
	return result{"entries": list(rows), "total_hours": totalHours(rows)}, nil
}

func (x *executor) navigate(_ context.Context, in toolInput, _ *auth.UserContext) (result, error) {
	page := in.Page
	if page == "" {
		page = "/dashboard"
	}
	desc := in.Description
	if desc == "" {
		desc = "Navigating..."
	}
	return result{"navigate_to": page, "description": desc}, nil
}

func totalHours(rows []domain.TimeEntryRow) float64 {
	var sum float64
	for _, r := range rows {
		sum += r.Hours
	}
	return domain.Round2(sum)
}
