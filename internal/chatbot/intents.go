package chatbot

import (
	"regexp"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

// Intent names.
const (
	IntentNavigate           = "navigate"
	IntentHelp               = "help"
	IntentExpensesSummary    = "expenses_summary"
	IntentLicensesStatus     = "licenses_status"
	IntentRFIsStatus         = "rfis_status"
	IntentChangeOrdersStatus = "change_orders_status"
	IntentSubmittalsStatus   = "submittals_status"
	IntentDocumentsStatus    = "documents_status"
	IntentBidCount           = "bid_count"
	IntentBidValue           = "bid_value"
	IntentBidWinRate         = "bid_win_rate"
	IntentBidTopGCs          = "bid_top_gcs"
	IntentBidByDate          = "bid_by_date"
	IntentBidLookup          = "bid_lookup"
	IntentBidList            = "bid_list"
	IntentProfit             = "profit"
	IntentJobStatus          = "job_status"
	IntentWarranty           = "warranty"
	IntentServiceCalls       = "service_calls"
	IntentMyHours            = "my_hours"
	IntentEmployeeHours      = "employee_hours"
	IntentCodeSearch         = "code_search"
	IntentHowto              = "howto"
)

type intent struct {
	name     string
	patterns []*regexp.Regexp
	keywords []string
	roles    []domain.Role
	priority int
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// catalog is matched against the lowercased message.
var catalog = []intent{
	{
		name:     IntentNavigate,
		patterns: patterns(`^(go\s+to|take\s+me\s+to|navigate\s+to|bring\s+up|pull\s+up|switch\s+to)\s+`),
		roles:    domain.AllRoles,
		priority: 200,
	},
	{
		name:     IntentHelp,
		patterns: patterns(`^(help|/help|\?)$`),
		roles:    domain.AllRoles,
		priority: 100,
	},
	{
		name: IntentExpensesSummary,
		patterns: patterns(
			`(overdue|past\s+due|late)\s+(expense|bill|payment)s?`,
			`(upcoming|next|due)\s+(expense|bill|payment)s?`,
			`(monthly|weekly|recurring)\s+(expense|bill|cost)s?`,
			`expense\s+(summary|status|overview)`,
			`what.*(owe|due|bills?)`,
		),
		keywords: []string{"overdue expenses", "upcoming bills", "expense summary"},
		roles:    domain.OfficeRoles,
		priority: 36,
	},
	{
		name: IntentLicensesStatus,
		patterns: patterns(
			`(expired?|expiring)\s+license`,
			`license\s+(status|summary|overview|expir)`,
			`(license|cert|certification)s?\s+(due|renew)`,
			`what\s+licenses?\s+(are|is)`,
		),
		keywords: []string{"expired licenses", "license status", "expiring licenses"},
		roles:    domain.OfficeRoles,
		priority: 36,
	},
	{
		name: IntentRFIsStatus,
		patterns: patterns(
			`(open|pending|unanswered|outstanding)\s+rfis?`,
			`rfi\s+(status|summary|count|overview)`,
			`how\s+many\s+rfis?`,
			`rfis?\s+(open|pending|unanswered)`,
		),
		keywords: []string{"open rfis", "rfi status", "unanswered rfis"},
		roles:    domain.OfficeRoles,
		priority: 36,
	},
	{
		name: IntentChangeOrdersStatus,
		patterns: patterns(
			`(pending|approved|draft|submitted)\s+(change\s+orders?|cos?)`,
			`(change\s+orders?|co)\s+(status|summary|total|count|overview)`,
			`how\s+many\s+(change\s+orders?|cos?)`,
			`(change\s+orders?|cos?)\s+(pending|approved|draft)`,
		),
		keywords: []string{"pending change orders", "approved cos", "co total", "change order status"},
		roles:    domain.OfficeRoles,
		priority: 36,
	},
	{
		name: IntentSubmittalsStatus,
		patterns: patterns(
			`(pending|rejected|resubmit|overdue)\s+submittals?`,
			`submittal\s+(status|summary|count|overview)`,
			`how\s+many\s+submittals?`,
			`submittals?\s+(pending|rejected|overdue)`,
		),
		keywords: []string{"pending submittals", "rejected submittals", "submittal status"},
		roles:    domain.OfficeRoles,
		priority: 36,
	},
	{
		name: IntentDocumentsStatus,
		patterns: patterns(
			`(closeout|document)\s+(status|summary|progress|overview)`,
			`(incomplete|missing|outstanding)\s+(closeout|document)s?`,
			`closeout\s+(checklist|items?)`,
			`how\s+many\s+(closeout|document)s?\s+(incomplete|missing|remaining)`,
		),
		keywords: []string{"closeout status", "incomplete documents", "document status"},
		roles:    domain.OfficeRoles,
		priority: 36,
	},
	{
		name: IntentBidCount,
		patterns: patterns(
			`how many bids`,
			`number of bids`,
			`count.*bids`,
			`bids?\s+count`,
			`total\s+bids?\s+(sent|submitted)`,
		),
		roles:    domain.OfficeRoles,
		priority: 30,
	},
	{
		name: IntentBidValue,
		patterns: patterns(
			`total\s+(value|amount|worth).*bids?`,
			`(value|amount|worth)\s+of\s+bids?`,
			`how much.*bids?\s+(to|for|worth)`,
			`sum.*bids?`,
			`bids?\s+total\s+(value|amount)`,
		),
		roles:    domain.OfficeRoles,
		priority: 31,
	},
	{
		name: IntentBidWinRate,
		patterns: patterns(
			`win\s*rate`,
			`acceptance\s*rate`,
			`accepted\s+vs\.?\s*rejected`,
			`bid\s+(success|performance|stats|statistics)`,
			`how\s+many\s+bids?\s+(accepted|won|rejected|lost)`,
		),
		roles:    domain.OfficeRoles,
		priority: 32,
	},
	{
		name: IntentBidTopGCs,
		patterns: patterns(
			`(top|best|most)\s+g\.?c\.?s?`,
			`which\s+g\.?c\.?s?\s+(accept|approve)`,
			`g\.?c\.?s?\s+(rank|ranked|ranking)`,
			`(best|top)\s+contractors`,
			`(top|best|most)\s+general\s+contractors`,
		),
		roles:    domain.OfficeRoles,
		priority: 33,
	},
	{
		name: IntentBidByDate,
		patterns: patterns(
			`bids?\s+(from|in|during|since)\s+`,
			`bids?\s+(last|this|next)\s+(week|month|quarter|year)`,
			`bids?\s+(due|submitted)\s+(this|last|next)`,
			`(recent|latest|newest)\s+bids?`,
			`bids?\s+q[1-4]\s+\d{4}`,
			`bids?\s+\d{4}`,
		),
		roles:    domain.OfficeRoles,
		priority: 29,
	},
	{
		name: IntentBidLookup,
		patterns: patterns(
			`^bid\s+\w`,
			`bid\s+(summary|details?|info)\s`,
			`(show|find|look\s*up)\s+bid\s+`,
		),
		roles:    domain.OfficeRoles,
		priority: 20,
	},
	{
		name: IntentBidList,
		patterns: patterns(
			`^(all\s+)?bids?$`,
			`^(list|show)\s+(all\s+)?bids?$`,
			`bid\s+(list|summary|overview)$`,
		),
		roles:    domain.OfficeRoles,
		priority: 19,
	},
	{
		name: IntentProfit,
		patterns: patterns(
			`profit\s+(for|on)\s+`,
			`(revenue|margin|earnings)\s+(for|on)\s+`,
			`financial\s+(summary|breakdown|overview)\s+(for|on)\s+`,
			`how\s+much\s+(money|profit|did\s+we\s+make)\s+(for|on)\s+`,
		),
		roles:    domain.OwnerOnly,
		priority: 35,
	},
	{
		name: IntentJobStatus,
		patterns: patterns(
			`job\s*status`,
			`(all|list|show)\s+jobs`,
			`active\s+jobs`,
			`job\s+(list|overview)`,
		),
		roles:    domain.OfficeRoles,
		priority: 15,
	},
	{
		name: IntentWarranty,
		patterns: patterns(
			`warranty\s+(status|items?|check|expir)`,
			`(check|show|list)\s+warrant`,
		),
		keywords: []string{"warranty status", "warranty items"},
		roles:    domain.AllRoles,
		priority: 15,
	},
	{
		name: IntentServiceCalls,
		patterns: patterns(
			`service\s*call`,
			`open\s+calls?`,
		),
		keywords: []string{"service call"},
		roles:    domain.AllRoles,
		priority: 15,
	},
	{
		name: IntentMyHours,
		patterns: patterns(
			`my\s+(hours?|time)`,
			`(how\s+many|total)\s+hours?\s+(did\s+)?i\s+`,
			`hours?\s+i\s+(worked|logged)`,
			`my\s+(time|timesheet)`,
		),
		roles:    domain.AllRoles,
		priority: 25,
	},
	{
		name: IntentEmployeeHours,
		patterns: patterns(
			`hours?\s+(for|by)\s+\w`,
			`time\s+(for|by)\s+\w`,
			`(how\s+many|total)\s+hours?\s+(did\s+|has\s+)?\w+\s+(work|log)`,
			`\w+.{0,3}s?\s+hours`,
		),
		roles:    domain.ManagerRoles,
		priority: 24,
	},
	{
		name: IntentCodeSearch,
		patterns: patterns(
			`(search|find|look\s*up)\s+(code|ibc|nec|irc)`,
			`^code\s+(search|lookup)`,
			`(code|building)\s+(section|book)`,
		),
		keywords: []string{"search code", "code search", "find code"},
		roles:    domain.AllRoles,
		priority: 15,
	},
	{
		name: IntentHowto,
		patterns: patterns(
			`^how\s*-?\s*to\s+`,
			`^howto\s+`,
			`how\s+(do\s+)?(i|you|we)\s+(install|fix|replace|repair|connect|mount)`,
		),
		keywords: []string{"howto", "how-to"},
		roles:    domain.AllRoles,
		priority: 15,
	},
}

func (in intent) matches(lower string) bool {
	for _, p := range in.patterns {
		if p.MatchString(lower) {
			return true
		}
	}
	for _, kw := range in.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify returns the highest-priority intent the role may use whose
// patterns or keywords match msg, or "" when none does. Navigation only
// matches when the requested section exists.
func Classify(msg string, role domain.Role) string {
	lower := strings.ToLower(strings.TrimSpace(msg))
	best := ""
	bestPriority := -1

	for _, in := range catalog {
		if !role.In(in.roles...) {
			continue
		}
		if !in.matches(lower) {
			continue
		}
		if in.name == IntentNavigate {
			if _, path := ResolveNavTarget(msg); path == "" {
				continue
			}
		}
		if in.priority > bestPriority {
			best = in.name
			bestPriority = in.priority
		}
	}
	return best
}
