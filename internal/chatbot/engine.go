// Package chatbot answers back-office questions by matching the message to a
// fixed intent catalog and rendering Markdown from read-only queries.
package chatbot

import (
	"context"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

// ErrorReply is returned when a handler fails.
const ErrorReply = "Sorry, something went wrong processing that query. Please try rephrasing."

type handlerFunc func(e *Engine, ctx context.Context, msg string, user *auth.UserContext) (string, error)

// Engine is the rule-based assistant.
type Engine struct {
	reports  *repository.ReportRepository
	users    *repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
	handlers map[string]handlerFunc
}

// NewEngine creates the rule-based assistant. Dates resolve against the
// repository clock.
func NewEngine(reports *repository.ReportRepository, users *repository.UserRepository, logger *zap.Logger) *Engine {
	e := &Engine{
		reports: reports,
		users:   users,
		logger:  logger,
		now:     repository.Now,
	}
	e.handlers = map[string]handlerFunc{
		IntentNavigate:           (*Engine).handleNavigate,
		IntentHelp:               (*Engine).handleHelp,
		IntentExpensesSummary:    (*Engine).handleExpensesSummary,
		IntentLicensesStatus:     (*Engine).handleLicensesStatus,
		IntentRFIsStatus:         (*Engine).handleRFIsStatus,
		IntentChangeOrdersStatus: (*Engine).handleChangeOrdersStatus,
		IntentSubmittalsStatus:   (*Engine).handleSubmittalsStatus,
		IntentDocumentsStatus:    (*Engine).handleDocumentsStatus,
		IntentBidCount:           (*Engine).handleBidCount,
		IntentBidValue:           (*Engine).handleBidValue,
		IntentBidWinRate:         (*Engine).handleBidWinRate,
		IntentBidTopGCs:          (*Engine).handleBidTopGCs,
		IntentBidByDate:          (*Engine).handleBidByDate,
		IntentBidLookup:          (*Engine).handleBidLookup,
		IntentBidList:            (*Engine).handleBidList,
		IntentProfit:             (*Engine).handleProfit,
		IntentJobStatus:          (*Engine).handleJobStatus,
		IntentWarranty:           (*Engine).handleWarranty,
		IntentServiceCalls:       (*Engine).handleServiceCalls,
		IntentMyHours:            (*Engine).handleMyHours,
		IntentEmployeeHours:      (*Engine).handleEmployeeHours,
		IntentCodeSearch:         (*Engine).handleCodeSearch,
		IntentHowto:              (*Engine).handleHowto,
	}
	return e
}

// WithClock returns a copy of e that resolves dates against now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	cp := *e
	cp.now = now
	return &cp
}

// Respond classifies msg for the caller's role and returns a Markdown
// answer. Unmatched messages get the role's fallback menu; handler errors
// are logged and answered with ErrorReply.
func (e *Engine) Respond(ctx context.Context, user *auth.UserContext, msg string) string {
	intent := Classify(msg, user.Role)
	h, ok := e.handlers[intent]
	if !ok {
		return Fallback(user.Role)
	}

	reply, err := h(e, ctx, msg, user)
	if err != nil {
		e.logger.Warn("chatbot handler failed",
			zap.String("intent", intent),
			zap.Int64("userID", user.UserID),
			zap.Error(err))
		return ErrorReply
	}
	return reply
}

func (e *Engine) today() string {
	return e.now().Format(dateLayout)
}

func isOffice(role domain.Role) bool {
	return role.In(domain.OfficeRoles...)
}
