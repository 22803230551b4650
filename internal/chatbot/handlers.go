package chatbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"gorm.io/gorm"
)

// unbounded is a limit large enough to mean "every row".
const unbounded = 10000

var (
	reOverdue      = regexp.MustCompile(`(overdue|past\s+due|late)`)
	reUpcoming     = regexp.MustCompile(`(upcoming|next|due)`)
	reExpirWord    = regexp.MustCompile(`expir(ed|ing)`)
	reRejectedWord = regexp.MustCompile(`rejected|resubmit`)
)

var acceptedStatuses = []string{"accepted", "won", "awarded"}

func lines(ls ...string) string { return strings.Join(ls, "\n") }

func (e *Engine) handleNavigate(_ context.Context, msg string, _ *auth.UserContext) (string, error) {
	label, path := ResolveNavTarget(msg)
	if path == "" {
		return "I couldn't find that section. Try one of: " + strings.Join(navLabels(), ", "), nil
	}
	return fmt.Sprintf("[NAV:%s] Taking you to **%s**...", path, titleCase(label)), nil
}

func (e *Engine) handleHelp(_ context.Context, _ string, user *auth.UserContext) (string, error) {
	return Help(user.Role), nil
}

// Help lists every command the role can use.
func Help(role domain.Role) string {
	out := []string{
		"I can help with:\n",
		"**Navigation** (I can take you anywhere!):",
		`- **go to [section]** - e.g. "go to rfis", "take me to expenses", "open schedule"`,
		"",
	}
	if isOffice(role) {
		out = append(out,
			"**Bids & Jobs:**",
			"- **how many bids?** - Count bids, filter by GC",
			"- **total value of bids to [GC]?** - Sum bid values",
			"- **win rate** - Accepted vs rejected statistics",
			"- **top GCs** - Which contractors accept our bids most",
			"- **bids from last month** - Date-filtered bid list",
			"- **bid [name]** - Look up a specific bid",
			"- **job status** - List all jobs",
			"",
		)
	}
	if role == domain.RoleOwner {
		out = append(out,
			"**Financials:**",
			"- **profit for [job]** - Revenue minus expenses & labor",
			"- **hours for [name]** - Any employee's time entries",
			"",
		)
	}
	if isOffice(role) {
		out = append(out,
			"**Project Tracking:**",
			"- **open RFIs** - Open/unanswered RFIs by job",
			"- **pending change orders** - Change order status & totals",
			"- **pending submittals** - Submittal status overview",
			"- **closeout status** - Incomplete closeout items",
			"",
			"**Company:**",
			"- **overdue expenses** - Past-due recurring bills",
			"- **expired licenses** - License expiration status",
			"",
		)
	}
	out = append(out,
		"**General:**",
		"- **my hours** - Your time entries this week",
		"- **warranty status [job]** - Check warranty items",
		"- **open service calls** - List open service calls",
		"- **search code [query]** - Search code book sections",
		"- **howto [topic]** - Search how-to articles",
	)
	return lines(out...)
}

// Fallback is the menu shown when no intent matches.
func Fallback(role domain.Role) string {
	out := []string{
		"I'm not sure what you're asking. Here are some things I can help with:\n",
		`- **go to [section]** - Navigate anywhere (e.g. "go to rfis")`,
	}
	if isOffice(role) {
		out = append(out,
			"- **how many bids?** / **win rate** / **top GCs**",
			"- **bids from last month** / **bid [name]**",
			"- **job status** / **open RFIs** / **pending change orders**",
			"- **overdue expenses** / **expired licenses**",
		)
	}
	if role == domain.RoleOwner {
		out = append(out, "- **profit for [job name]** / **hours for [employee]**")
	}
	out = append(out,
		"- **my hours** - your time entries",
		"- **warranty status** / **open service calls**",
		"- **search code [query]** / **howto [topic]**",
		"\nType **help** for a full list of commands.",
	)
	return lines(out...)
}

func (e *Engine) handleExpensesSummary(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	today := e.today()
	lower := strings.ToLower(msg)

	if reOverdue.MatchString(lower) {
		rows, err := e.reports.RecurringExpenses(ctx, repository.RecurringExpenseFilter{
			DueBefore: today,
			Page:      repository.Page{Limit: unbounded},
		})
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "No overdue expenses found. You're all caught up!", nil
		}
		out := []string{fmt.Sprintf("**%d** overdue expense(s) totaling **%s**:\n", len(rows), money(sumExpenses(rows)))}
		for _, r := range rows {
			out = append(out, fmt.Sprintf("- **%s** - %s (%s) - due %s - [View](/expenses)",
				firstNonEmpty(r.Vendor, r.Category), money(r.Amount), r.Frequency, r.NextDueDate))
		}
		return lines(out...), nil
	}

	if reUpcoming.MatchString(lower) {
		weekOut := e.now().AddDate(0, 0, 7).Format(dateLayout)
		rows, err := e.reports.RecurringExpenses(ctx, repository.RecurringExpenseFilter{
			DueFrom: today,
			DueTo:   weekOut,
			Page:    repository.Page{Limit: unbounded},
		})
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "No expenses due in the next 7 days.", nil
		}
		out := []string{fmt.Sprintf("**%d** expense(s) due this week totaling **%s**:\n", len(rows), money(sumExpenses(rows)))}
		for _, r := range rows {
			out = append(out, fmt.Sprintf("- **%s** - %s - due %s",
				firstNonEmpty(r.Vendor, r.Category), money(r.Amount), r.NextDueDate))
		}
		return lines(out...), nil
	}

	active, total, overdue, err := e.reports.RecurringExpenseSummary(ctx, today)
	if err != nil {
		return "", err
	}
	return lines(
		"**Recurring Expenses Summary:**\n",
		fmt.Sprintf("- **%d** active expenses - **%s**/cycle", active, money(total)),
		fmt.Sprintf("- **%d** overdue", overdue),
		"\n[View All Expenses](/expenses)",
	), nil
}

func sumExpenses(rows []domain.RecurringExpenseRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

const licenseWindowDays = 60

func (e *Engine) handleLicensesStatus(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	today := e.today()
	soon := e.now().AddDate(0, 0, licenseWindowDays).Format(dateLayout)

	if reExpirWord.MatchString(strings.ToLower(msg)) {
		expired, err := e.reports.Licenses(ctx, repository.LicenseFilter{ExpiredBefore: today, Page: repository.Page{Limit: unbounded}})
		if err != nil {
			return "", err
		}
		expiring, err := e.reports.Licenses(ctx, repository.LicenseFilter{ExpiresFrom: today, ExpiresTo: soon, Page: repository.Page{Limit: unbounded}})
		if err != nil {
			return "", err
		}
		if len(expired) == 0 && len(expiring) == 0 {
			return "All licenses are current. No expirations within 60 days.", nil
		}
		var out []string
		if len(expired) > 0 {
			out = append(out, fmt.Sprintf("**%d EXPIRED license(s):**\n", len(expired)))
			for _, l := range expired {
				out = append(out, fmt.Sprintf("- **%s** (%s) - %s - expired %s", l.LicenseName, l.LicenseType, l.HolderName, l.ExpirationDate))
			}
		}
		if len(expiring) > 0 {
			out = append(out, fmt.Sprintf("\n**%d expiring within 60 days:**\n", len(expiring)))
			for _, l := range expiring {
				out = append(out, fmt.Sprintf("- **%s** (%s) - %s - expires %s", l.LicenseName, l.LicenseType, l.HolderName, l.ExpirationDate))
			}
		}
		out = append(out, "\n[View All Licenses](/licenses)")
		return lines(out...), nil
	}

	total, expired, expiring, err := e.reports.LicenseCounts(ctx, today, soon)
	if err != nil {
		return "", err
	}
	return lines(
		"**License Summary:**\n",
		fmt.Sprintf("- **%d** total licenses", total),
		fmt.Sprintf("- **%d** expired", expired),
		fmt.Sprintf("- **%d** expiring within 60 days", expiring),
		"\n[View All Licenses](/licenses)",
	), nil
}

// groupByJob keeps first-seen job order.
func groupByJob[T any](rows []T, jobOf func(T) string) ([]string, map[string][]T) {
	var order []string
	groups := make(map[string][]T)
	for _, r := range rows {
		j := jobOf(r)
		if _, ok := groups[j]; !ok {
			order = append(order, j)
		}
		groups[j] = append(groups[j], r)
	}
	return order, groups
}

func (e *Engine) handleRFIsStatus(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	rows, err := e.reports.RFIs(ctx, repository.RFIFilter{
		Status: "Open",
		Page:   repository.Page{Order: "r.date_submitted DESC", Limit: unbounded},
	})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No open RFIs. All caught up!", nil
	}

	today := e.today()
	jobs, byJob := groupByJob(rows, func(r domain.RFIRow) string { return r.JobName })
	out := []string{fmt.Sprintf("**%d** open RFI(s) across **%d** job(s):\n", len(rows), len(jobs))}
	for _, job := range jobs {
		rfis := byJob[job]
		out = append(out, fmt.Sprintf("**%s** (%d):", job, len(rfis)))
		for i, r := range rfis {
			if i == 3 {
				break
			}
			overdue := ""
			if r.DateRequired != "" && r.DateRequired < today {
				overdue = " **OVERDUE**"
			}
			out = append(out, fmt.Sprintf("- RFI #%d: %s%s", r.RFINumber, truncate(r.Subject, 50), overdue))
		}
		if len(rfis) > 3 {
			out = append(out, fmt.Sprintf("  ...and %d more", len(rfis)-3))
		}
	}
	out = append(out, "\n[View All RFIs](/rfis)")
	return lines(out...), nil
}

func (e *Engine) handleChangeOrdersStatus(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	var out []string

	if strings.Contains(strings.ToLower(msg), "approved") {
		rows, err := e.reports.ChangeOrders(ctx, repository.ChangeOrderFilter{
			Statuses: []string{"Approved"},
			Page:     repository.Page{Order: "co.approved_date DESC", Limit: 10},
		})
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "No approved change orders found.", nil
		}
		totals, err := e.reports.ChangeOrderStatusTotals(ctx)
		if err != nil {
			return "", err
		}
		var approvedTotal float64
		for _, s := range totals {
			if s.Status == "Approved" {
				approvedTotal = s.Total
			}
		}
		out = append(out, fmt.Sprintf("**%d** approved change order(s) - total **%s**:\n", len(rows), money(approvedTotal)))
		for _, co := range rows {
			out = append(out, fmt.Sprintf("- **CO #%d** %s - %s - %s", co.CONumber, truncate(co.Title, 40), co.JobName, money(co.Amount)))
		}
	} else {
		rows, err := e.reports.ChangeOrders(ctx, repository.ChangeOrderFilter{
			Statuses: []string{"Draft", "Submitted"},
			Page:     repository.Page{Order: "co.created_at DESC", Limit: 10},
		})
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "No pending change orders. All clear!", nil
		}
		out = append(out, fmt.Sprintf("**%d** pending change order(s):\n", len(rows)))
		for _, co := range rows {
			out = append(out, fmt.Sprintf("- **CO #%d** %s - %s - %s [%s]", co.CONumber, truncate(co.Title, 40), co.JobName, money(co.Amount), co.Status))
		}
	}

	stats, err := e.reports.ChangeOrderStatusTotals(ctx)
	if err != nil {
		return "", err
	}
	if len(stats) > 0 {
		out = append(out, "\n**Overall:**")
		for _, s := range stats {
			out = append(out, fmt.Sprintf("- %s: %d (%s)", s.Status, s.Count, money(s.Total)))
		}
	}
	out = append(out, "\n[View All Change Orders](/change-orders)")
	return lines(out...), nil
}

func (e *Engine) handleSubmittalsStatus(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	if reRejectedWord.MatchString(strings.ToLower(msg)) {
		rows, err := e.reports.Submittals(ctx, repository.SubmittalFilter{
			Statuses: []string{"Rejected", "Resubmit"},
			Page:     repository.Page{Order: "s.updated_at DESC", Limit: unbounded},
		})
		if err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "No rejected submittals. All clear!", nil
		}
		out := []string{fmt.Sprintf("**%d** rejected/resubmit submittal(s):\n", len(rows))}
		for _, s := range rows {
			out = append(out, fmt.Sprintf("- **#%d** %s - %s [%s]", s.SubmittalNumber, truncate(s.Description, 40), s.JobName, s.Status))
		}
		out = append(out, "\n[View All Submittals](/submittals)")
		return lines(out...), nil
	}

	pending, err := e.reports.Submittals(ctx, repository.SubmittalFilter{
		Statuses: []string{"Pending", "Submitted"},
		Page:     repository.Page{Order: "s.date_required ASC", Limit: unbounded},
	})
	if err != nil {
		return "", err
	}
	stats, err := e.reports.SubmittalStatusCounts(ctx)
	if err != nil {
		return "", err
	}

	out := []string{"**Submittal Summary:**\n"}
	for _, s := range stats {
		out = append(out, fmt.Sprintf("- %s: **%d**", s.Status, s.Count))
	}
	if len(pending) > 0 {
		today := e.today()
		out = append(out, fmt.Sprintf("\n**%d** pending/submitted:", len(pending)))
		for i, s := range pending {
			if i == 5 {
				break
			}
			overdue := ""
			if s.DateRequired != "" && s.DateRequired < today {
				overdue = " **OVERDUE**"
			}
			out = append(out, fmt.Sprintf("- **#%d** %s - %s%s", s.SubmittalNumber, truncate(s.Description, 40), s.JobName, overdue))
		}
		if len(pending) > 5 {
			out = append(out, fmt.Sprintf("  ...and %d more", len(pending)-5))
		}
	}
	out = append(out, "\n[View All Submittals](/submittals)")
	return lines(out...), nil
}

func (e *Engine) handleDocumentsStatus(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	rows, err := e.reports.CloseoutItems(ctx, repository.CloseoutFilter{
		Statuses: []string{"Not Started", "In Progress"},
		Page:     repository.Page{Order: "j.name, cl.sort_order", Limit: unbounded},
	})
	if err != nil {
		return "", err
	}
	total, complete, err := e.reports.CloseoutProgress(ctx)
	if err != nil {
		return "", err
	}

	out := []string{
		"**Closeout Document Status:**\n",
		fmt.Sprintf("- **%d** / **%d** items complete", complete, total),
		fmt.Sprintf("- **%d** remaining\n", len(rows)),
	}
	jobs, byJob := groupByJob(rows, func(r domain.CloseoutRow) string { return r.JobName })
	for i, job := range jobs {
		if i == 5 {
			break
		}
		items := byJob[job]
		out = append(out, fmt.Sprintf("**%s** (%d remaining):", job, len(items)))
		for k, item := range items {
			if k == 3 {
				break
			}
			out = append(out, fmt.Sprintf("- %s (%s) [%s]", item.ItemName, item.ItemType, item.Status))
		}
		if len(items) > 3 {
			out = append(out, fmt.Sprintf("  ...and %d more", len(items)-3))
		}
	}
	out = append(out, "\n[View Documents](/documents)")
	return lines(out...), nil
}

func (e *Engine) handleBidCount(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	gc := ExtractGCName(msg)
	count, _, err := e.reports.BidTotals(ctx, repository.BidFilter{GCLike: gc})
	if err != nil {
		return "", err
	}
	if gc != "" {
		return fmt.Sprintf("**%d** bid(s) found for GC matching **%s**.", count, gc), nil
	}
	return fmt.Sprintf("**%d** total bid(s) in the system.", count), nil
}

func (e *Engine) handleBidValue(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	gc := ExtractGCName(msg)
	count, total, err := e.reports.BidTotals(ctx, repository.BidFilter{GCLike: gc})
	if err != nil {
		return "", err
	}
	if gc != "" {
		return fmt.Sprintf("**%d** bid(s) to **%s**\nTotal value: **%s**", count, gc, money(total)), nil
	}
	return fmt.Sprintf("**%d** total bid(s)\nCombined value: **%s**", count, money(total)), nil
}

func statusIn(status string, set []string) bool {
	lower := strings.ToLower(status)
	for _, s := range set {
		if lower == s {
			return true
		}
	}
	return false
}

func (e *Engine) handleBidWinRate(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	rows, err := e.reports.BidStatusCounts(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No bids found in the system.", nil
	}

	var total, accepted int64
	for _, r := range rows {
		total += r.Count
		if statusIn(r.Status, acceptedStatuses) {
			accepted += r.Count
		}
	}

	out := []string{fmt.Sprintf("**Bid Statistics** (%d total bids):\n", total)}
	for _, r := range rows {
		out = append(out, fmt.Sprintf("- **%s**: %d (%.0f%%)", firstNonEmpty(r.Status, "No Status"), r.Count, pct(r.Count, total)))
	}
	if total > 0 {
		out = append(out, fmt.Sprintf("\nWin rate: **%.0f%%** (%d accepted out of %d)", pct(accepted, total), accepted, total))
	}
	return lines(out...), nil
}

func (e *Engine) handleBidTopGCs(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	rows, err := e.reports.TopGCs(ctx, 10)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No bids with GC information found.", nil
	}
	out := []string{"**Top General Contractors** (by accepted bids):\n"}
	for i, r := range rows {
		out = append(out, fmt.Sprintf("%d. **%s** - %d/%d accepted (%.0f%%)", i+1, r.ContractingGC, r.Accepted, r.Count, pct(r.Accepted, r.Count)))
	}
	return lines(out...), nil
}

func bidLine(b domain.BidRow, withLabels bool) string {
	job := "No job"
	if b.JobName != nil && *b.JobName != "" {
		job = *b.JobName
	}
	gc := ""
	if b.ContractingGC != "" {
		gc = " → " + b.ContractingGC
	}
	if withLabels {
		return fmt.Sprintf("- **%s** - %s%s | Status: %s | Total: %s", b.BidName, job, gc, b.Status, money(b.TotalBid))
	}
	return fmt.Sprintf("- **%s** - %s%s | %s | %s", b.BidName, job, gc, b.Status, money(b.TotalBid))
}

func (e *Engine) handleBidByDate(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	dr, ok := ExtractDateRange(msg, e.now())
	if !ok {
		return "I couldn't determine the date range. Try: **bids from last month**, **bids Q1 2025**, or **bids 2024**.", nil
	}
	bids, err := e.reports.Bids(ctx, repository.BidFilter{
		DateFrom: dr.Start,
		DateTo:   dr.End,
		Page:     repository.Page{Order: "b.bid_date DESC", Limit: 15},
	})
	if err != nil {
		return "", err
	}
	if len(bids) == 0 {
		return fmt.Sprintf("No bids found between **%s** and **%s**.", dr.Start, dr.End), nil
	}
	out := []string{fmt.Sprintf("**%d** bid(s) from **%s** to **%s**:\n", len(bids), dr.Start, dr.End)}
	for _, b := range bids {
		out = append(out, bidLine(b, false))
	}
	return lines(out...), nil
}

func (e *Engine) handleBidLookup(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	query := ExtractBidSearch(msg)
	if query == "" {
		return "Please specify a bid name. Example: **bid Riverside Apartments**", nil
	}
	bids, err := e.reports.Bids(ctx, repository.BidFilter{
		NameOrJobLike: query,
		Page:          repository.Page{Order: "b.updated_at DESC", Limit: 10},
	})
	if err != nil {
		return "", err
	}
	if len(bids) == 0 {
		return fmt.Sprintf("No bids found matching **%s**.", query), nil
	}
	out := []string{fmt.Sprintf("Found **%d** bid(s):", len(bids))}
	for _, b := range bids {
		out = append(out, bidLine(b, true))
	}
	return lines(out...), nil
}

func (e *Engine) handleBidList(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	bids, err := e.reports.Bids(ctx, repository.BidFilter{
		Page: repository.Page{Order: "b.updated_at DESC", Limit: 10},
	})
	if err != nil {
		return "", err
	}
	if len(bids) == 0 {
		return "No bids found.", nil
	}
	out := []string{fmt.Sprintf("**%d** most recent bid(s):", len(bids))}
	for _, b := range bids {
		out = append(out, bidLine(b, false))
	}
	return lines(out...), nil
}

func (e *Engine) handleProfit(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	name := ExtractJobName(msg)
	if name == "" {
		return "Please specify a job. Example: **profit for Sunrise Estates**", nil
	}
	job, err := e.reports.FirstJobByName(ctx, name)
	if err != nil {
		return "", err
	}
	if job == nil {
		return fmt.Sprintf("No job found matching **%s**.", name), nil
	}
	fin, err := e.reports.FinancialsForJob(ctx, job)
	if err != nil {
		return "", err
	}

	revenue := fin.Revenue()
	cost := fin.TotalCost()
	return lines(
		fmt.Sprintf("**Financial Summary for %s** (Status: %s)\n", job.Name, job.Status),
		"Revenue:",
		fmt.Sprintf("- Invoiced (Paid): **%s**", money(fin.InvoicedPaid)),
		fmt.Sprintf("- Payments received: **%s**", money(fin.Payments)),
		fmt.Sprintf("- Total revenue: **%s**\n", money(revenue)),
		"Costs:",
		fmt.Sprintf("- Expenses: **%s**", money(fin.Expenses)),
		fmt.Sprintf("- Labor: **%s**", money(fin.Labor)),
		fmt.Sprintf("- Materials: **%s**", money(fin.Materials)),
		fmt.Sprintf("- Total cost: **%s**\n", money(cost)),
		fmt.Sprintf("Net profit: **%s**", money(revenue-cost)),
	), nil
}

func (e *Engine) handleJobStatus(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	jobs, err := e.reports.Jobs(ctx, repository.JobFilter{Page: repository.Page{Order: "name ASC", Limit: unbounded}})
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "No jobs found.", nil
	}
	out := []string{fmt.Sprintf("**%d** job(s):", len(jobs))}
	for _, j := range jobs {
		out = append(out, fmt.Sprintf("- **%s** - %s", j.Name, j.Status))
	}
	return lines(out...), nil
}

func (e *Engine) handleWarranty(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	query := extractWarrantyQuery(msg)
	items, err := e.reports.Warranties(ctx, repository.WarrantyFilter{
		JobNameLike: query,
		Page:        repository.Page{Order: "w.warranty_end ASC", Limit: 10},
	})
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		if query != "" {
			return fmt.Sprintf("No warranty items found for **%s**.", query), nil
		}
		return "No warranty items found.", nil
	}
	out := []string{fmt.Sprintf("Found **%d** warranty item(s):", len(items))}
	for _, w := range items {
		out = append(out, fmt.Sprintf("- **%s** - %s (%s, expires %s)", w.JobName, w.ItemDescription, w.Status, firstNonEmpty(w.WarrantyEnd, "N/A")))
	}
	return lines(out...), nil
}

func (e *Engine) handleServiceCalls(ctx context.Context, _ string, _ *auth.UserContext) (string, error) {
	calls, err := e.reports.ServiceCalls(ctx, repository.ServiceCallFilter{
		OpenOnly: true,
		Page:     repository.Page{Order: repository.UrgencyOrder, Limit: 10},
	})
	if err != nil {
		return "", err
	}
	if len(calls) == 0 {
		return "No open service calls found.", nil
	}
	out := []string{fmt.Sprintf("**%d** open service call(s):", len(calls))}
	for _, c := range calls {
		job := "No job"
		if c.JobName != nil && *c.JobName != "" {
			job = *c.JobName
		}
		out = append(out, fmt.Sprintf("- **#%d** [%s] %s - %s (%s)", c.ID, c.Priority, truncate(c.Description, 60), job, c.Status))
	}
	return lines(out...), nil
}

func (e *Engine) timeEntries(ctx context.Context, userID int64, msg string) (DateRange, []domain.TimeEntryRow, float64, error) {
	dr, ok := ExtractDateRange(msg, e.now())
	if !ok {
		dr = currentWeek(e.now())
	}
	entries, err := e.reports.TimeEntries(ctx, repository.TimeEntryFilter{
		UserID:   &userID,
		DateFrom: dr.Start,
		DateTo:   dr.End,
		Page:     repository.Page{Order: "te.work_date DESC", Limit: 20},
	})
	if err != nil {
		return dr, nil, 0, err
	}
	var total float64
	for _, te := range entries {
		total += te.Hours
	}
	return dr, entries, total, nil
}

func entryLines(entries []domain.TimeEntryRow) []string {
	out := make([]string, 0, len(entries))
	for _, te := range entries {
		status := "Pending"
		if te.Approved {
			status = "Approved"
		}
		desc := ""
		if te.Description != "" {
			desc = " - " + te.Description
		}
		job := "N/A"
		if te.JobName != nil && *te.JobName != "" {
			job = *te.JobName
		}
		out = append(out, fmt.Sprintf("- **%s**: %.1fh on %s%s [%s]", te.WorkDate, te.Hours, job, desc, status))
	}
	return out
}

func (e *Engine) handleMyHours(ctx context.Context, msg string, user *auth.UserContext) (string, error) {
	dr, entries, total, err := e.timeEntries(ctx, user.UserID, msg)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No time entries found from **%s** to **%s**.", dr.Start, dr.End), nil
	}
	out := []string{fmt.Sprintf("**Your hours** (%s to %s) - **%.1f** total hours:\n", dr.Start, dr.End, total)}
	return lines(append(out, entryLines(entries)...)...), nil
}

func (e *Engine) handleEmployeeHours(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	name := ExtractEmployeeName(msg)
	if name == "" {
		return "Please specify an employee name. Example: **hours for John Smith**", nil
	}
	emp, err := e.users.FindByNameLike(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Sprintf("No employee found matching **%s**.", name), nil
	}
	if err != nil {
		return "", err
	}

	dr, entries, total, err := e.timeEntries(ctx, emp.ID, msg)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No time entries for **%s** from **%s** to **%s**.", emp.DisplayName, dr.Start, dr.End), nil
	}
	out := []string{fmt.Sprintf("**%s** (%s to %s) - **%.1f** total hours:\n", emp.DisplayName, dr.Start, dr.End, total)}
	return lines(append(out, entryLines(entries)...)...), nil
}

func (e *Engine) handleCodeSearch(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	query := ExtractCodeQuery(msg)
	if query == "" {
		return "Please provide a search term. Example: **search code fire protection**", nil
	}
	sections, err := e.reports.CodeSections(ctx, query, 10)
	if err != nil {
		return "", err
	}
	if len(sections) == 0 {
		return fmt.Sprintf("No code sections found matching **%s**.", query), nil
	}
	out := []string{fmt.Sprintf("Found **%d** matching section(s):", len(sections))}
	for _, s := range sections {
		out = append(out, fmt.Sprintf("- **[%s]** %s: %s", s.Code, s.SectionNumber, s.Title))
	}
	return lines(out...), nil
}

func (e *Engine) handleHowto(ctx context.Context, msg string, _ *auth.UserContext) (string, error) {
	query := ExtractHowtoQuery(msg)
	articles, err := e.reports.Howtos(ctx, query, 10)
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		if query != "" {
			return fmt.Sprintf("No how-to articles found matching **%s**.", query), nil
		}
		return "No how-to articles found.", nil
	}
	out := []string{fmt.Sprintf("Found **%d** article(s):", len(articles))}
	for _, a := range articles {
		cat := ""
		if a.Category != "" {
			cat = " [" + a.Category + "]"
		}
		out = append(out, fmt.Sprintf("- **%s**%s - [View](/howtos/%d)", a.Title, cat, a.ID))
	}
	return lines(out...), nil
}
