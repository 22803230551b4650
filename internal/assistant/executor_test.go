package assistant

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func run(t *testing.T, a *Assistant, u *domain.User, tool string, input string) map[string]json.RawMessage {
	t.Helper()
	out, isErr := a.exec.Execute(context.Background(), tool, json.RawMessage(input), caller(u))
	require.False(t, isErr, out)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	return m
}

func exec(t *testing.T, db *gorm.DB, sql string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(sql, args...).Error)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(ToolPayroll, domain.RoleOwner))
	assert.False(t, Allowed(ToolPayroll, domain.RoleAdmin))
	assert.True(t, Allowed(ToolTimeEntries, domain.RoleAdmin))
	assert.False(t, Allowed(ToolTimeEntries, domain.RoleProjectManager))
	assert.True(t, Allowed(ToolInventory, domain.RoleWarehouse))
	assert.False(t, Allowed(ToolInventory, domain.RoleEmployee))
	assert.True(t, Allowed(ToolNavigate, domain.RoleEmployee))
	assert.False(t, Allowed("drop_tables", domain.RoleOwner))
}

func TestToolsFor(t *testing.T) {
	assert.Len(t, ToolsFor(domain.RoleOwner), len(catalog))
	assert.Equal(t,
		[]string{ToolJobs, ToolSchedule, ToolWarranty, ToolServiceCalls, ToolMyHours, ToolNavigate},
		toolNames(ToolsFor(domain.RoleEmployee)))

	for _, tool := range ToolsFor(domain.RoleOwner) {
		assert.True(t, json.Valid(tool.InputSchema), tool.Name)
	}
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, SystemPrompt(domain.RoleOwner, "Dan"), "You CANNOT access: none.")
	assert.Contains(t, SystemPrompt(domain.RoleWarehouse, "Wes"),
		"You CANNOT access: bids, submittals, rfis, change orders, documents, contracts, licenses, pay apps, customers, supplier quotes, expenses, payroll, time entries.")
	assert.Contains(t, SystemPrompt(domain.RoleEmployee, ""), "**User**")
	assert.Contains(t, SystemPrompt(domain.RoleEmployee, "x"), "/supplier-quotes")
}

func TestExecute_MyHoursIgnoresRequestedUser(t *testing.T) {
	a, db := setupAssistant(t, nil)
	me := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	other := testutil.CreateTestUser(t, db, "sam", domain.RoleEmployee)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date) VALUES (?, ?, 6.5, '2025-03-10')", me.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, work_date) VALUES (?, ?, 9, '2025-03-10')", other.ID, job.ID)

	out := run(t, a, me, ToolMyHours, `{"user_id": `+jsonInt(other.ID)+`}`)
	assert.JSONEq(t, `6.5`, string(out["total_hours"]))
}

func TestExecute_JobNameResolvesToNewestMatch(t *testing.T) {
	a, db := setupAssistant(t, nil)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	older := testutil.CreateTestJob(t, db, "Oak Ridge Phase 1")
	newer := testutil.CreateTestJob(t, db, "Oak Ridge Phase 2")
	exec(t, db, "INSERT INTO rfis (job_id, rfi_number, subject, status) VALUES (?, 1, 'Old duct route', 'Open')", older.ID)
	exec(t, db, "INSERT INTO rfis (job_id, rfi_number, subject, status) VALUES (?, 1, 'New duct route', 'Open')", newer.ID)

	out := run(t, a, owner, ToolRFIs, `{"job_name": "oak ridge"}`)
	var rows []domain.RFIRow
	require.NoError(t, json.Unmarshal(out["rfis"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "New duct route", rows[0].Subject)

	out = run(t, a, owner, ToolRFIs, `{"job_name": "oak ridge", "count_only": true}`)
	assert.JSONEq(t, `1`, string(out["count"]))
}

func TestExecute_UnmatchedJobNameReturnsNothing(t *testing.T) {
	a, db := setupAssistant(t, nil)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	exec(t, db, "INSERT INTO warranty_items (job_id, item_description, warranty_end) VALUES (?, 'Condenser', '2025-04-01')", job.ID)

	out := run(t, a, owner, ToolWarranty, `{"job_name": "Nowhere"}`)
	assert.JSONEq(t, `[]`, string(out["warranties"]))

	out = run(t, a, owner, ToolWarranty, `{"expiring_within_days": 30}`)
	var rows []domain.WarrantyRow
	require.NoError(t, json.Unmarshal(out["warranties"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Oak Ridge", rows[0].JobName)
}

func TestExecute_PayrollTotals(t *testing.T) {
	a, db := setupAssistant(t, nil)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	tech := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, hourly_rate, work_date, approved, pay_period) VALUES (?, ?, 8, 25.125, '2025-03-10', 1, '2025-03A')", tech.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, hourly_rate, work_date, approved, pay_period) VALUES (?, ?, 4, 30, '2025-03-11', 0, '2025-03A')", tech.ID, job.ID)
	exec(t, db, "INSERT INTO time_entries (user_id, job_id, hours, hourly_rate, work_date, approved, pay_period) VALUES (?, ?, 10, 30, '2025-02-11', 1, '2025-02B')", tech.ID, job.ID)

	out := run(t, a, owner, ToolPayroll, `{"pay_period": "2025-03A"}`)
	assert.JSONEq(t, `12`, string(out["total_hours"]))
	assert.JSONEq(t, `8`, string(out["approved_hours"]))
	assert.JSONEq(t, `4`, string(out["unapproved_hours"]))
	assert.JSONEq(t, `321`, string(out["total_cost"]))
}

func TestExecute_LicensesExpiringWithin(t *testing.T) {
	a, db := setupAssistant(t, nil)
	pm := testutil.CreateTestUser(t, db, "pat", domain.RoleProjectManager)
	exec(t, db, "INSERT INTO licenses (license_name, expiration_date) VALUES ('Mechanical', '2025-03-20')")
	exec(t, db, "INSERT INTO licenses (license_name, expiration_date) VALUES ('Electrical', '2025-09-01')")
	exec(t, db, "INSERT INTO licenses (license_name, expiration_date) VALUES ('Undated', '')")

	out := run(t, a, pm, ToolLicenses, `{"expiring_within_days": 30}`)
	var rows []domain.License
	require.NoError(t, json.Unmarshal(out["licenses"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Mechanical", rows[0].LicenseName)
}

func TestExecute_OverdueRecurringExpenses(t *testing.T) {
	a, db := setupAssistant(t, nil)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	exec(t, db, "INSERT INTO recurring_expenses (category, vendor, amount, next_due_date, is_active) VALUES ('Rent', 'Landlord', 2000, '2025-03-01', 1)")
	exec(t, db, "INSERT INTO recurring_expenses (category, vendor, amount, next_due_date, is_active) VALUES ('Fuel', 'Shell', 300, '2025-04-01', 1)")

	out := run(t, a, owner, ToolExpenses, `{"overdue_only": true}`)
	var rows []domain.RecurringExpenseRow
	require.NoError(t, json.Unmarshal(out["recurring_expenses"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Landlord", rows[0].Vendor)
}

func TestExecute_Navigate(t *testing.T) {
	a, db := setupAssistant(t, nil)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)

	out := run(t, a, emp, ToolNavigate, `{"page": "/service-calls"}`)
	assert.JSONEq(t, `"/service-calls"`, string(out["navigate_to"]))
	assert.JSONEq(t, `"Navigating..."`, string(out["description"]))
}

func TestExecute_BadInput(t *testing.T) {
	a, db := setupAssistant(t, nil)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	out, isErr := a.exec.Execute(context.Background(), ToolJobs, json.RawMessage(`{"count_only": "yes"}`), caller(owner))
	assert.True(t, isErr)
	assert.Contains(t, out, "Query failed")
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
