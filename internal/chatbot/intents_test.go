package chatbot

import (
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		role domain.Role
		want string
	}{
		{"navigate resolves section", "go to rfis", domain.RoleEmployee, IntentNavigate},
		{"navigate beats everything", "take me to service calls", domain.RoleOwner, IntentNavigate},
		{"navigate with unknown section falls through", "go to the moon", domain.RoleOwner, ""},
		{"help", "help", domain.RoleWarehouse, IntentHelp},
		{"question mark is help", "?", domain.RoleEmployee, IntentHelp},
		{"bid count", "how many bids to Acme?", domain.RoleOwner, IntentBidCount},
		{"bid value", "total value of bids to Acme", domain.RoleProjectManager, IntentBidValue},
		{"win rate", "what is our win rate", domain.RoleAdmin, IntentBidWinRate},
		{"top gcs", "top GCs", domain.RoleOwner, IntentBidTopGCs},
		{"bids by date", "bids from last month", domain.RoleOwner, IntentBidByDate},
		{"bid lookup", "bid Riverside Apartments", domain.RoleOwner, IntentBidLookup},
		{"bid list", "bids", domain.RoleOwner, IntentBidList},
		{"profit for owner", "profit for Sunrise Estates", domain.RoleOwner, IntentProfit},
		{"profit hidden from admin", "profit for Sunrise Estates", domain.RoleAdmin, ""},
		{"profit hidden from employee", "profit for Sunrise Estates", domain.RoleEmployee, ""},
		{"job status", "job status", domain.RoleProjectManager, IntentJobStatus},
		{"job status hidden from employee", "job status", domain.RoleEmployee, ""},
		{"warranty", "warranty status", domain.RoleEmployee, IntentWarranty},
		{"service calls", "open service calls", domain.RoleEmployee, IntentServiceCalls},
		{"my hours", "my hours this week", domain.RoleEmployee, IntentMyHours},
		{"employee hours for admin", "hours for Sam", domain.RoleAdmin, IntentEmployeeHours},
		{"employee hours hidden from project manager", "hours for Sam", domain.RoleProjectManager, ""},
		{"code search", "search code fire dampers", domain.RoleEmployee, IntentCodeSearch},
		{"howto", "how to braze copper", domain.RoleEmployee, IntentHowto},
		{"howto by verb", "how do I install a mini split", domain.RoleWarehouse, IntentHowto},
		{"overdue expenses", "overdue expenses", domain.RoleOwner, IntentExpensesSummary},
		{"expired licenses", "expired licenses", domain.RoleProjectManager, IntentLicensesStatus},
		{"open rfis", "open RFIs", domain.RoleProjectManager, IntentRFIsStatus},
		{"open rfis hidden from employee", "open RFIs", domain.RoleEmployee, ""},
		{"pending change orders", "pending change orders", domain.RoleAdmin, IntentChangeOrdersStatus},
		{"rejected submittals", "rejected submittals", domain.RoleOwner, IntentSubmittalsStatus},
		{"closeout status", "closeout status", domain.RoleOwner, IntentDocumentsStatus},
		{"gibberish", "purple elephants", domain.RoleOwner, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.msg, tt.role))
		})
	}
}

func TestResolveNavTarget(t *testing.T) {
	tests := []struct {
		msg   string
		label string
		path  string
	}{
		{"go to rfis", "rfis", "/rfis"},
		{"take me to expenses", "expenses", "/expenses"},
		{"open schedule", "schedule", "/schedule"},
		{"go to Pay Apps!", "pay apps", "/payapps"},
		{"switch to closeout", "closeout", "/documents"},
		{"go to the moon", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			label, path := ResolveNavTarget(tt.msg)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestNavPathsAreDistinct(t *testing.T) {
	paths := NavPaths()
	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
	assert.Contains(t, paths, "/service-calls")
	assert.Contains(t, paths, "/admin/users")
}
