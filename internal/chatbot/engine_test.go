package chatbot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	e := NewEngine(repository.NewReportRepository(db), repository.NewUserRepository(db), zap.NewNop())
	return e.WithClock(func() time.Time { return fixedNow }), db
}

func caller(u *domain.User) *auth.UserContext {
	return &auth.UserContext{UserID: u.ID, Username: u.Username, DisplayName: u.DisplayName, Role: u.Role}
}

func exec(t *testing.T, db *gorm.DB, sql string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(sql, args...).Error)
}

func TestRespond_ProfitForOwner(t *testing.T) {
	e, db := setupEngine(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	job := testutil.CreateTestJob(t, db, "Sunrise Estates")

	exec(t, db, "INSERT INTO expenses (job_id, amount) VALUES (?, ?)", job.ID, 100.0)
	exec(t, db, "INSERT INTO payments (job_id, amount) VALUES (?, ?)", job.ID, 500.0)
	exec(t, db, "INSERT INTO client_invoices (job_id, amount, status) VALUES (?, ?, 'Paid')", job.ID, 1000.0)
	exec(t, db, "INSERT INTO client_invoices (job_id, amount, status) VALUES (?, ?, 'Sent')", job.ID, 9999.0)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, hourly_rate, work_date) VALUES (?, ?, 2, 50, '2025-03-10')", owner.ID, job.ID)
	exec(t, db, "INSERT INTO line_items (job_id, line_number, qty_ordered, price_per, total_net_price) VALUES (?, 1, 10, 5, 0)", job.ID)
	exec(t, db, "INSERT INTO line_items (job_id, line_number, qty_ordered, price_per, total_net_price) VALUES (?, 2, 1, 1, 150)", job.ID)

	reply := e.Respond(ctx, caller(owner), "profit for Sunrise Estates")

	assert.Contains(t, reply, "**Financial Summary for Sunrise Estates**")
	assert.Contains(t, reply, "- Total revenue: **$1,500.00**")
	assert.Contains(t, reply, "- Materials: **$200.00**")
	assert.Contains(t, reply, "- Total cost: **$400.00**")
	assert.Contains(t, reply, "Net profit: **$1,100.00**")
}

func TestRespond_ProfitHiddenFromEmployee(t *testing.T) {
	e, db := setupEngine(t)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	testutil.CreateTestJob(t, db, "Sunrise Estates")

	reply := e.Respond(context.Background(), caller(emp), "profit for Sunrise Estates")

	assert.Equal(t, Fallback(domain.RoleEmployee), reply)
	assert.NotContains(t, reply, "profit for")
	assert.NotContains(t, reply, "how many bids")
}

func TestRespond_ProfitUnknownJob(t *testing.T) {
	e, db := setupEngine(t)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	reply := e.Respond(context.Background(), caller(owner), "profit for Nowhere")
	assert.Equal(t, "No job found matching **Nowhere**.", reply)
}

func TestRespond_Navigate(t *testing.T) {
	e, db := setupEngine(t)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)

	reply := e.Respond(context.Background(), caller(emp), "take me to service calls")
	assert.Equal(t, "[NAV:/service-calls] Taking you to **Service Calls**...", reply)
}

func TestRespond_HelpIsRoleTailored(t *testing.T) {
	e, db := setupEngine(t)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)

	ownerHelp := e.Respond(context.Background(), caller(owner), "help")
	empHelp := e.Respond(context.Background(), caller(emp), "help")

	assert.Contains(t, ownerHelp, "**Financials:**")
	assert.Contains(t, ownerHelp, "**Project Tracking:**")
	assert.NotContains(t, empHelp, "**Financials:**")
	assert.NotContains(t, empHelp, "**Bids & Jobs:**")
	assert.Contains(t, empHelp, "**General:**")
}

func TestRespond_MyHoursUsesCaller(t *testing.T) {
	e, db := setupEngine(t)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	other := testutil.CreateTestUser(t, db, "other", domain.RoleEmployee)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")

	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date, approved) VALUES (?, ?, 8, '2025-03-10', 1)", emp.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date, description) VALUES (?, ?, 4.5, '2025-03-11', 'Rough-in')", emp.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date) VALUES (?, ?, 10, '2025-03-11')", other.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date) VALUES (?, ?, 3, '2025-03-01')", emp.ID, job.ID)

	reply := e.Respond(context.Background(), caller(emp), "my hours")

	assert.Contains(t, reply, "**Your hours** (2025-03-10 to 2025-03-12) - **12.5** total hours")
	assert.Contains(t, reply, "- **2025-03-11**: 4.5h on Oak Ridge - Rough-in [Pending]")
	assert.Contains(t, reply, "- **2025-03-10**: 8.0h on Oak Ridge [Approved]")
}

func TestRespond_EmployeeHours(t *testing.T) {
	e, db := setupEngine(t)
	admin := testutil.CreateTestUser(t, db, "boss", domain.RoleAdmin)
	sam := testutil.CreateTestUser(t, db, "sam", domain.RoleEmployee)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date) VALUES (?, ?, 6, '2025-03-11')", sam.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date) VALUES (?, ?, 9, '2025-03-04')", sam.ID, job.ID)

	reply := e.Respond(context.Background(), caller(admin), "hours for sam")
	assert.Contains(t, reply, "**sam** (2025-03-10 to 2025-03-12) - **6.0** total hours")

	reply = e.Respond(context.Background(), caller(admin), "hours for nobody")
	assert.Equal(t, "No employee found matching **nobody**.", reply)
}

func TestRespond_Bids(t *testing.T) {
	e, db := setupEngine(t)
	pm := testutil.CreateTestUser(t, db, "pm", domain.RoleProjectManager)

	exec(t, db, "INSERT INTO bids (bid_name, status, total_bid, contracting_gc, bid_date) VALUES ('Riverside', 'Accepted', 100000, 'Acme Builders', '2025-02-10')")
	exec(t, db, "INSERT INTO bids (bid_name, status, total_bid, contracting_gc, bid_date) VALUES ('Hilltop', 'Rejected', 50000, 'Acme Builders', '2025-01-05')")
	exec(t, db, "INSERT INTO bids (bid_name, status, total_bid, contracting_gc, bid_date) VALUES ('Lakeside', 'Accepted', 25000, 'Zenith GC', '2024-06-01')")

	ctx := context.Background()
	user := caller(pm)

	assert.Equal(t, "**3** total bid(s) in the system.", e.Respond(ctx, user, "how many bids"))
	assert.Equal(t, "**2** bid(s) found for GC matching **Acme**.", e.Respond(ctx, user, "how many bids to Acme?"))
	assert.Equal(t, "**2** bid(s) to **Acme**\nTotal value: **$150,000.00**", e.Respond(ctx, user, "total value of bids to Acme"))

	winRate := e.Respond(ctx, user, "win rate")
	assert.Contains(t, winRate, "**Bid Statistics** (3 total bids)")
	assert.Contains(t, winRate, "Win rate: **67%** (2 accepted out of 3)")

	top := e.Respond(ctx, user, "top gcs")
	assert.Contains(t, top, "1. **Acme Builders** - 1/2 accepted (50%)")
	assert.Contains(t, top, "2. **Zenith GC** - 1/1 accepted (100%)")

	byDate := e.Respond(ctx, user, "bids from last month")
	assert.Contains(t, byDate, "**1** bid(s) from **2025-02-01** to **2025-02-28**")
	assert.Contains(t, byDate, "- **Riverside** - No job → Acme Builders | Accepted | $100,000.00")

	lookup := e.Respond(ctx, user, "bid Lakeside")
	assert.Contains(t, lookup, "Found **1** bid(s):")
	assert.Contains(t, lookup, "Status: Accepted | Total: $25,000.00")
}

func TestRespond_ProjectOffice(t *testing.T) {
	e, db := setupEngine(t)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	ctx := context.Background()
	user := caller(owner)

	exec(t, db, "INSERT INTO rfis (job_id, rfi_number, subject, status, date_submitted, date_required) VALUES (?, 1, 'Duct routing at stair 2', 'Open', '2025-03-01', '2025-03-05')", job.ID)
	exec(t, db, "INSERT INTO rfis (job_id, rfi_number, subject, status) VALUES (?, 2, 'Closed one', 'Answered')", job.ID)
	rfis := e.Respond(ctx, user, "open rfis")
	assert.Contains(t, rfis, "**1** open RFI(s) across **1** job(s)")
	assert.Contains(t, rfis, "- RFI #1: Duct routing at stair 2 **OVERDUE**")

	exec(t, db, "INSERT INTO change_orders (job_id, co_number, title, amount, status, approved_date) VALUES (?, 1, 'Extra condenser', 4200, 'Approved', '2025-02-20')", job.ID)
	exec(t, db, "INSERT INTO change_orders (job_id, co_number, title, amount, status) VALUES (?, 2, 'Relocate AHU', 800, 'Draft')", job.ID)
	approved := e.Respond(ctx, user, "approved change orders")
	assert.Contains(t, approved, "**1** approved change order(s) - total **$4,200.00**")
	assert.Contains(t, approved, "**Overall:**")
	pending := e.Respond(ctx, user, "pending change orders")
	assert.Contains(t, pending, "- **CO #2** Relocate AHU - Oak Ridge - $800.00 [Draft]")

	exec(t, db, "INSERT INTO closeout_checklists (job_id, item_name, item_type, status) VALUES (?, 'O&M binder', 'O&M Manual', 'Not Started')", job.ID)
	exec(t, db, "INSERT INTO closeout_checklists (job_id, item_name, item_type, status) VALUES (?, 'Permit final', 'Permit', 'Complete')", job.ID)
	docs := e.Respond(ctx, user, "closeout status")
	assert.Contains(t, docs, "- **1** / **2** items complete")
	assert.Contains(t, docs, "- O&M binder (O&M Manual) [Not Started]")

	exec(t, db, "INSERT INTO licenses (license_name, license_type, holder_name, expiration_date) VALUES ('Mechanical', 'State', 'Company', '2025-01-01')")
	exec(t, db, "INSERT INTO licenses (license_name, license_type, holder_name, expiration_date) VALUES ('EPA 608', 'Certification', 'Sam', '2025-04-01')")
	lic := e.Respond(ctx, user, "expired licenses")
	assert.Contains(t, lic, "**1 EXPIRED license(s):**")
	assert.Contains(t, lic, "**1 expiring within 60 days:**")

	summary := e.Respond(ctx, user, "license status")
	assert.Contains(t, summary, "- **2** total licenses")
}

func TestRespond_ExpensesSummary(t *testing.T) {
	e, db := setupEngine(t)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	exec(t, db, "INSERT INTO recurring_expenses (category, vendor, amount, frequency, next_due_date, is_active) VALUES ('Insurance', 'StateFarm', 1200, 'Monthly', '2025-03-01', 1)")
	exec(t, db, "INSERT INTO recurring_expenses (category, vendor, amount, frequency, next_due_date, is_active) VALUES ('Rent', '', 3000, 'Monthly', '2025-03-15', 1)")

	ctx := context.Background()
	overdue := e.Respond(ctx, caller(owner), "overdue expenses")
	assert.Contains(t, overdue, "**1** overdue expense(s) totaling **$1,200.00**")
	assert.Contains(t, overdue, "- **StateFarm** - $1,200.00 (Monthly) - due 2025-03-01")

	upcoming := e.Respond(ctx, caller(owner), "upcoming bills")
	assert.Contains(t, upcoming, "- **Rent** - $3,000.00 - due 2025-03-15")
}

func TestRespond_ServiceCallsOrderedByUrgency(t *testing.T) {
	e, db := setupEngine(t)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	exec(t, db, "INSERT INTO service_calls (caller_name, description, priority, status) VALUES ('A', 'Noisy fan', 'Low', 'Open')")
	exec(t, db, "INSERT INTO service_calls (caller_name, description, priority, status) VALUES ('B', 'No heat', 'Urgent', 'Open')")
	exec(t, db, "INSERT INTO service_calls (caller_name, description, priority, status) VALUES ('C', 'Done', 'High', 'Resolved')")

	reply := e.Respond(context.Background(), caller(emp), "open service calls")
	require.Contains(t, reply, "**2** open service call(s):")
	assert.Less(t, strings.Index(reply, "No heat"), strings.Index(reply, "Noisy fan"))
	assert.NotContains(t, reply, "Done")
}

func TestRespond_KnowledgeBase(t *testing.T) {
	e, db := setupEngine(t)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	exec(t, db, "INSERT INTO code_books (id, code, name) VALUES (1, 'IMC', 'International Mechanical Code')")
	exec(t, db, "INSERT INTO code_sections (book_id, section_number, title) VALUES (1, '607.5', 'Fire damper locations')")
	exec(t, db, "INSERT INTO howto_articles (title, category, content) VALUES ('Brazing copper line sets', 'Install', 'nitrogen purge')")

	ctx := context.Background()
	assert.Contains(t, e.Respond(ctx, caller(emp), "search code fire damper"), "- **[IMC]** 607.5: Fire damper locations")
	assert.Contains(t, e.Respond(ctx, caller(emp), "howto brazing"), "- **Brazing copper line sets** [Install] - [View](/howtos/1)")
	assert.Equal(t, "No how-to articles found matching **welding**.", e.Respond(ctx, caller(emp), "howto welding"))
}

func TestRespond_HandlerErrorIsApology(t *testing.T) {
	e, db := setupEngine(t)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	exec(t, db, "DROP TABLE bids")

	assert.Equal(t, ErrorReply, e.Respond(context.Background(), caller(owner), "how many bids"))
}
