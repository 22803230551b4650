package assistant

import (
	"encoding/json"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
)

// Tool names.
const (
	ToolJobs           = "query_jobs"
	ToolSchedule       = "query_schedule"
	ToolWarranty       = "query_warranty"
	ToolServiceCalls   = "query_service_calls"
	ToolMyHours        = "query_my_hours"
	ToolInventory      = "query_inventory"
	ToolBids           = "query_bids"
	ToolSubmittals     = "query_submittals"
	ToolRFIs           = "query_rfis"
	ToolChangeOrders   = "query_change_orders"
	ToolDocuments      = "query_documents"
	ToolContracts      = "query_contracts"
	ToolLicenses       = "query_licenses"
	ToolPayApps        = "query_pay_apps"
	ToolCustomers      = "query_customers"
	ToolSupplierQuotes = "query_supplier_quotes"
	ToolExpenses       = "query_expenses"
	ToolPayroll        = "query_payroll"
	ToolTimeEntries    = "query_time_entries"
	ToolNavigate       = "navigate"
)

type toolSpec struct {
	name        string
	description string
	schema      string
	roles       []domain.Role
}

// catalog is ordered; the system prompt lists restricted tools in this order.
var catalog = []toolSpec{
	{
		name:        ToolJobs,
		description: "Query jobs/projects. Can filter by status, name, or get counts. Returns job id, name, status, created_at.",
		schema: `{"type":"object","properties":{
			"status":{"type":"string","description":"Filter by status: 'Needs Bid', 'Bid Complete', 'In Progress', 'Complete'. Leave empty for all."},
			"search":{"type":"string","description":"Search job name (partial match)"},
			"count_only":{"type":"boolean","description":"If true, return only the count"}}}`,
		roles: domain.AllRoles,
	},
	{
		name:        ToolSchedule,
		description: "Query job schedule entries. Can filter by job or date range.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer","description":"Filter by job ID"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"upcoming_days":{"type":"integer","description":"Show entries in the next N days"}}}`,
		roles: domain.AllRoles,
	},
	{
		name:        ToolWarranty,
		description: "Query warranty items. Can filter by job, status, or expiring soon.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string","description":"Active, Expiring Soon, Expired, Claimed"},
			"expiring_within_days":{"type":"integer","description":"Show warranties expiring within N days"}}}`,
		roles: domain.AllRoles,
	},
	{
		name:        ToolServiceCalls,
		description: "Query service calls. Can filter by status, priority, or job.",
		schema: `{"type":"object","properties":{
			"status":{"type":"string","description":"Open, Assigned, In Progress, Resolved, Closed"},
			"priority":{"type":"string","description":"Low, Normal, High, Urgent"},
			"job_id":{"type":"integer"},
			"count_only":{"type":"boolean"}}}`,
		roles: domain.AllRoles,
	},
	{
		name:        ToolMyHours,
		description: "Query time entries for the current user. Returns hours, job, date, description.",
		schema: `{"type":"object","properties":{
			"date_from":{"type":"string","description":"Start date YYYY-MM-DD"},
			"date_to":{"type":"string","description":"End date YYYY-MM-DD"},
			"job_id":{"type":"integer"}}}`,
		roles: domain.AllRoles,
	},
	{
		name:        ToolInventory,
		description: "Query inventory items. Can filter by job, search description/SKU.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"search":{"type":"string","description":"Search description or SKU"}}}`,
		roles: domain.InventoryRoles,
	},
	{
		name:        ToolBids,
		description: "Query bids. Can filter by status, job, or search name.",
		schema: `{"type":"object","properties":{
			"status":{"type":"string","description":"Draft, Sent, Won, Lost"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"search":{"type":"string","description":"Search bid name"},
			"count_only":{"type":"boolean"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolSubmittals,
		description: "Query submittals. Can filter by job, status, vendor.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string","description":"Pending, Submitted, Approved, Approved as Noted, Rejected, Resubmit"},
			"count_only":{"type":"boolean"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolRFIs,
		description: "Query RFIs. Can filter by job, status.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string","description":"Open, Answered, Closed"},
			"count_only":{"type":"boolean"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolChangeOrders,
		description: "Query change orders. Can filter by job, status.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string","description":"Draft, Submitted, Approved, Rejected, Void"},
			"count_only":{"type":"boolean"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolDocuments,
		description: "Query closeout/document checklist items. Can filter by job, status, type.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string","description":"Not Started, In Progress, Complete, N/A"},
			"item_type":{"type":"string"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolContracts,
		description: "Query contracts. Can filter by job, status, type.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string","description":"Draft, Active, Complete, Terminated"},
			"contract_type":{"type":"string","description":"Prime, Sub, Vendor"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolLicenses,
		description: "Query licenses/certifications. Can filter by status, expiring soon.",
		schema: `{"type":"object","properties":{
			"status":{"type":"string","description":"Active, Expiring Soon, Expired, Pending Renewal"},
			"expiring_within_days":{"type":"integer","description":"Show licenses expiring within N days"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolPayApps,
		description: "Query pay application contracts and applications.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"status":{"type":"string"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolCustomers,
		description: "Query customers/general contractors. Can search by name, type.",
		schema: `{"type":"object","properties":{
			"search":{"type":"string","description":"Search company name"},
			"company_type":{"type":"string","description":"General Contractor, Developer, Owner, etc."}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolSupplierQuotes,
		description: "Query supplier quotes. Can filter by job, supplier, status.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"job_name":{"type":"string","description":"Filter by job name (partial match)"},
			"supplier_name":{"type":"string"},
			"status":{"type":"string","description":"Requested, Received, Reviewing, Selected, Rejected, Expired"}}}`,
		roles: domain.OfficeRoles,
	},
	{
		name:        ToolExpenses,
		description: "Query expenses (job expenses and recurring company expenses). Can filter by job, category, or show overdue.",
		schema: `{"type":"object","properties":{
			"job_id":{"type":"integer"},
			"category":{"type":"string"},
			"overdue_only":{"type":"boolean","description":"Show only overdue recurring expenses"},
			"recurring_only":{"type":"boolean","description":"Show only recurring company expenses"}}}`,
		roles: domain.ManagerRoles,
	},
	{
		name:        ToolPayroll,
		description: "Query payroll/time entry summaries. Owner only.",
		schema: `{"type":"object","properties":{
			"pay_period":{"type":"string","description":"Pay period string to filter"},
			"user_id":{"type":"integer","description":"Filter by specific employee"},
			"date_from":{"type":"string"},
			"date_to":{"type":"string"}}}`,
		roles: domain.OwnerOnly,
	},
	{
		name:        ToolTimeEntries,
		description: "Query all time entries (not just current user). Owner/admin only.",
		schema: `{"type":"object","properties":{
			"user_id":{"type":"integer"},
			"job_id":{"type":"integer"},
			"date_from":{"type":"string"},
			"date_to":{"type":"string"},
			"approved_only":{"type":"boolean"}}}`,
		roles: domain.ManagerRoles,
	},
	{
		name:        ToolNavigate,
		description: "Navigate the user to a page in the app. Use [NAV:/path] prefix format in your response.",
		schema: `{"type":"object","properties":{
			"page":{"type":"string","description":"Page path like /dashboard, /bids, /submittals, /rfis, /payroll, etc."},
			"description":{"type":"string","description":"Brief description of where you're navigating"}},
			"required":["page"]}`,
		roles: domain.AllRoles,
	},
}

var toolIndex = func() map[string]toolSpec {
	m := make(map[string]toolSpec, len(catalog))
	for _, t := range catalog {
		m[t.name] = t
	}
	return m
}()

// Allowed reports whether role may invoke the named tool. Unknown tools are
// never allowed.
func Allowed(name string, role domain.Role) bool {
	t, ok := toolIndex[name]
	return ok && role.In(t.roles...)
}

// ToolsFor returns the tool definitions offered to role, in catalog order.
func ToolsFor(role domain.Role) []llm.Tool {
	var tools []llm.Tool
	for _, t := range catalog {
		if !role.In(t.roles...) {
			continue
		}
		tools = append(tools, llm.Tool{
			Name:        t.name,
			Description: t.description,
			InputSchema: json.RawMessage(t.schema),
		})
	}
	return tools
}

// restrictedLabels names the tool categories role cannot reach.
func restrictedLabels(role domain.Role) []string {
	var labels []string
	for _, t := range catalog {
		if role.In(t.roles...) {
			continue
		}
		label := strings.TrimPrefix(t.name, "query_")
		labels = append(labels, strings.ReplaceAll(label, "_", " "))
	}
	return labels
}
