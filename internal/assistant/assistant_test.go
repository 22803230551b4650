package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, time.March, 12, 14, 30, 0, 0, time.Local)

// scriptedMessenger replays canned replies and records every request.
type scriptedMessenger struct {
	replies  []*llm.Response
	err      error
	requests []llm.Request
}

func (m *scriptedMessenger) CreateMessage(_ context.Context, req *llm.Request) (*llm.Response, error) {
	cp := *req
	cp.Messages = append([]llm.Message(nil), req.Messages...)
	m.requests = append(m.requests, cp)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return &llm.Response{StopReason: "end_turn", Content: []llm.ContentBlock{llm.TextBlock("done")}}, nil
	}
	resp := m.replies[0]
	m.replies = m.replies[1:]
	return resp, nil
}

func toolCall(id, name string, input map[string]interface{}) *llm.Response {
	raw, _ := json.Marshal(input)
	return &llm.Response{
		StopReason: llm.StopToolUse,
		Content: []llm.ContentBlock{
			{Type: llm.BlockToolUse, ID: id, Name: name, Input: raw},
		},
	}
}

func final(text string) *llm.Response {
	return &llm.Response{StopReason: "end_turn", Content: []llm.ContentBlock{llm.TextBlock(text)}}
}

func setupAssistant(t *testing.T, m llm.Messenger) (*Assistant, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a := New(m, repository.NewReportRepository(db), zap.NewNop())
	return a.WithClock(func() time.Time { return fixedNow }), db
}

func caller(u *domain.User) *auth.UserContext {
	return &auth.UserContext{UserID: u.ID, Username: u.Username, DisplayName: u.DisplayName, Role: u.Role}
}

// lastToolResult returns the tool_result content sent in the latest request.
func lastToolResult(t *testing.T, m *scriptedMessenger) llm.ContentBlock {
	t.Helper()
	require.NotEmpty(t, m.requests)
	msgs := m.requests[len(m.requests)-1].Messages
	last := msgs[len(msgs)-1]
	require.Equal(t, llm.RoleUser, last.Role)
	require.NotEmpty(t, last.Content)
	require.Equal(t, llm.BlockToolResult, last.Content[0].Type)
	return last.Content[0]
}

func toolNames(tools []llm.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestReply_DisabledWithoutMessenger(t *testing.T) {
	a, db := setupAssistant(t, nil)
	u := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	_, err := a.Reply(context.Background(), caller(u), nil, "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, a.Enabled())
}

func TestReply_ModelErrorFallsBack(t *testing.T) {
	m := &scriptedMessenger{err: errors.New("boom")}
	a, db := setupAssistant(t, m)
	u := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	_, err := a.Reply(context.Background(), caller(u), nil, "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReply_PlainAnswer(t *testing.T) {
	m := &scriptedMessenger{replies: []*llm.Response{{
		StopReason: "end_turn",
		Content:    []llm.ContentBlock{llm.TextBlock("Hello"), llm.TextBlock("there")},
	}}}
	a, db := setupAssistant(t, m)
	u := testutil.CreateTestUser(t, db, "pat", domain.RoleProjectManager)

	reply, err := a.Reply(context.Background(), caller(u), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello\nthere", reply)

	require.Len(t, m.requests, 1)
	req := m.requests[0]
	assert.Equal(t, llm.PurposeAssistant, req.Purpose)
	assert.Contains(t, req.System, "You are chatting with **pat** (role: project_manager).")
	assert.Contains(t, req.System, "You CANNOT access: expenses, payroll, time entries.")
}

func TestReply_EmptyAnswer(t *testing.T) {
	m := &scriptedMessenger{replies: []*llm.Response{{StopReason: "end_turn"}}}
	a, db := setupAssistant(t, m)
	u := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	reply, err := a.Reply(context.Background(), caller(u), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, reply)
}

func TestReply_HistoryIsCapped(t *testing.T) {
	m := &scriptedMessenger{}
	a, db := setupAssistant(t, m)
	u := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	var history []domain.ChatMessage
	for i := 0; i < 30; i++ {
		role := domain.ChatRoleUser
		if i%2 == 1 {
			role = domain.ChatRoleAssistant
		}
		history = append(history, domain.ChatMessage{Role: role, Content: "m"})
	}

	_, err := a.Reply(context.Background(), caller(u), history, "latest")
	require.NoError(t, err)

	msgs := m.requests[0].Messages
	require.Len(t, msgs, HistoryLimit+1)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)
	assert.Equal(t, llm.RoleAssistant, msgs[HistoryLimit-1].Role)
	assert.Equal(t, "latest", msgs[HistoryLimit].Content[0].Text)
}

func TestReply_EmployeeIsNotOfferedPayroll(t *testing.T) {
	m := &scriptedMessenger{}
	a, db := setupAssistant(t, m)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)

	_, err := a.Reply(context.Background(), caller(emp), nil, "what did payroll cost last week?")
	require.NoError(t, err)

	names := toolNames(m.requests[0].Tools)
	assert.NotContains(t, names, ToolPayroll)
	assert.NotContains(t, names, ToolBids)
	assert.Contains(t, names, ToolMyHours)
	assert.Contains(t, names, ToolNavigate)
	assert.Contains(t, m.requests[0].System, "payroll")
}

func TestReply_ForbiddenToolCallIsDenied(t *testing.T) {
	m := &scriptedMessenger{replies: []*llm.Response{
		toolCall("tu_1", ToolPayroll, map[string]interface{}{}),
		final("Sorry, payroll is not available for your role."),
	}}
	a, db := setupAssistant(t, m)
	emp := testutil.CreateTestUser(t, db, "tech", domain.RoleEmployee)
	other := testutil.CreateTestUser(t, db, "sam", domain.RoleEmployee)
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	require.NoError(t, db.Exec("INSERT INTO time_entries (user_id, job_id, hours, hourly_rate, work_date) VALUES (?, ?, 8, 30, '2025-03-10')", other.ID, job.ID).Error)

	reply, err := a.Reply(context.Background(), caller(emp), nil, "payroll")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, payroll is not available for your role.", reply)

	result := lastToolResult(t, m)
	assert.True(t, result.IsError)
	assert.Equal(t, "tu_1", result.ToolUseID)
	assert.Contains(t, result.Content, "Access denied: query_payroll is not available for your role.")
	assert.NotContains(t, result.Content, "sam")
}

func TestReply_ToolLoopFeedsResults(t *testing.T) {
	m := &scriptedMessenger{replies: []*llm.Response{
		toolCall("tu_1", ToolJobs, map[string]interface{}{"search": "Oak"}),
		final("You have one Oak job."),
	}}
	a, db := setupAssistant(t, m)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)
	testutil.CreateTestJob(t, db, "Oak Ridge")
	testutil.CreateTestJob(t, db, "Pine Hollow")

	reply, err := a.Reply(context.Background(), caller(owner), nil, "oak jobs?")
	require.NoError(t, err)
	assert.Equal(t, "You have one Oak job.", reply)

	require.Len(t, m.requests, 2)
	second := m.requests[1].Messages
	require.Len(t, second, 3)
	assert.Equal(t, llm.RoleAssistant, second[1].Role)
	assert.Equal(t, llm.BlockToolUse, second[1].Content[0].Type)

	var out struct {
		Jobs []domain.JobRow `json:"jobs"`
	}
	result := lastToolResult(t, m)
	assert.False(t, result.IsError)
	require.NoError(t, json.Unmarshal([]byte(result.Content), &out))
	require.Len(t, out.Jobs, 1)
	assert.Equal(t, "Oak Ridge", out.Jobs[0].Name)
}

func TestReply_ToolLoopIsBounded(t *testing.T) {
	var replies []*llm.Response
	for i := 0; i < 10; i++ {
		replies = append(replies, toolCall("tu", ToolJobs, map[string]interface{}{"count_only": true}))
	}
	m := &scriptedMessenger{replies: replies}
	a, db := setupAssistant(t, m)
	owner := testutil.CreateTestUser(t, db, "owner", domain.RoleOwner)

	reply, err := a.Reply(context.Background(), caller(owner), nil, "loop forever")
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, reply)
	assert.Len(t, m.requests, maxToolRounds+1)
}
