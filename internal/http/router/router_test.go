package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/assistant"
	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/chatbot"
	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/handler"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/middleware"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/router"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	log := zap.NewNop()

	cfg := &config.Config{
		App:       config.AppConfig{Name: "test", Environment: "test"},
		Auth:      config.AuthConfig{SecretKey: "test-secret", CookieName: "lghvac_session", SessionTTL: 1},
		Ledger:    config.LedgerConfig{MaxVersions: 100, OutOfStateShipping: 10000, HomeStates: []string{"", "OK", "OKLAHOMA"}},
		Server:    config.ServerConfig{EnableMetrics: true},
		Storage:   config.StorageConfig{MaxUploadSizeMB: 5},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.SessionTTLDuration())
	ledger := service.NewLedgerService(repository.NewMaterialsRepository(db), service.LedgerConfig{
		MaxVersions:        cfg.Ledger.MaxVersions,
		OutOfStateShipping: cfg.Ledger.OutOfStateShipping,
		HomeStates:         cfg.Ledger.HomeStates,
	}, log)
	taxes := service.TaxTable{"73102": {TaxRate: 8.625, City: "Oklahoma City", State: "OK"}}
	notifications := service.NewNotificationService(notificationRepo, userRepo, log)
	users := service.NewUserService(userRepo, tokens, log)
	authMiddleware := auth.NewMiddleware(&cfg.Auth, tokens, log)

	rt := router.NewRouter(cfg, log, db, authMiddleware, middleware.NewRateLimiter(&cfg.RateLimit, log), router.Handlers{
		Auth:      handler.NewAuthHandler(users, authMiddleware, log),
		Jobs:      handler.NewJobHandler(service.NewJobService(jobRepo, ledger, taxes, log), ledger, 5, log),
		Suppliers: handler.NewSupplierHandler(service.NewSupplierService(supplierRepo, config.SupplierAPIConfig{}, log), service.NewInvoiceImportService(supplierRepo, jobRepo, nil, nil, log), 5, log),
		Documents: handler.NewDocumentHandler(service.NewDuplicateService(repository.NewDocumentRepository(db), nil, log), 5, log),
		Bids:      handler.NewBidHandler(service.NewBidService(repository.NewBidRepository(db), log), log),
		ServiceCalls: handler.NewServiceCallHandler(
			service.NewServiceCallService(repository.NewServiceCallRepository(db), notifications, log), log),
		Chat: handler.NewChatHandler(service.NewChatService(
			repository.NewChatRepository(db),
			assistant.New(nil, reportRepo, log),
			chatbot.NewEngine(reportRepo, userRepo, log),
			log,
		), log),
		Notification: handler.NewNotificationHandler(notifications, log),
	})

	return &testServer{t: t, db: db, handler: rt.Setup()}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

// login creates a user whose password equals its username and signs in.
func (s *testServer) login(username string, role domain.Role) string {
	s.t.Helper()
	testutil.CreateTestUser(s.t, s.db, username, role)
	rr := s.do(http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{Username: username, Password: username})
	require.Equal(s.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp domain.LoginResponse
	require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)

	rr := s.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"healthy"`)

	rr = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	t.Run("unauthenticated", func(t *testing.T) {
		rr := s.do(http.MethodGet, "/api/v1/jobs", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, rr.Body.String())
	})

	t.Run("bad password", func(t *testing.T) {
		testutil.CreateTestUser(t, s.db, "pat", domain.RoleProjectManager)
		rr := s.do(http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{Username: "pat", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("login sets the cookie and me returns the user", func(t *testing.T) {
		testutil.CreateTestUser(t, s.db, "olive", domain.RoleOwner)
		rr := s.do(http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{Username: "olive", Password: "olive"})
		require.Equal(t, http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "lghvac_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(cookies[0])
		me := httptest.NewRecorder()
		s.handler.ServeHTTP(me, req)
		require.Equal(t, http.StatusOK, me.Code)

		user := decode[domain.CurrentUser](t, me)
		assert.Equal(t, "olive", user.Username)
		assert.Equal(t, domain.RoleOwner, user.Role)
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		rr := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decode[domain.ErrorResponse](t, rr)
		assert.Contains(t, resp.Fields, "password")
	})
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	employee := s.login("ed", domain.RoleEmployee)
	pm := s.login("pam", domain.RoleProjectManager)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"employee lists jobs", http.MethodGet, "/api/v1/jobs", employee, nil, http.StatusOK},
		{"employee cannot create jobs", http.MethodPost, "/api/v1/jobs", employee, domain.CreateJobRequest{Name: "X"}, http.StatusForbidden},
		{"employee cannot see analytics", http.MethodGet, "/api/v1/analytics", employee, nil, http.StatusForbidden},
		{"employee cannot list bids", http.MethodGet, "/api/v1/bids", employee, nil, http.StatusForbidden},
		{"pm cannot list users", http.MethodGet, "/api/v1/users", pm, nil, http.StatusForbidden},
		{"pm cannot sync suppliers", http.MethodPost, "/api/v1/suppliers/1/sync", pm, nil, http.StatusForbidden},
		{"pm lists supplier invoices", http.MethodGet, "/api/v1/supplier-invoices", pm, nil, http.StatusOK},
		{"employee opens a service call", http.MethodPost, "/api/v1/service-calls", employee, domain.CreateServiceCallRequest{Description: "No heat in unit 4"}, http.StatusCreated},
		{"employee cannot change call status", http.MethodPut, "/api/v1/service-calls/1/status", employee, domain.UpdateServiceCallStatusRequest{Status: "Resolved"}, http.StatusForbidden},
		{"pm resolves the call", http.MethodPut, "/api/v1/service-calls/1/status", pm, domain.UpdateServiceCallStatusRequest{Status: "Resolved"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	s := newTestServer(t)
	pm := s.login("pam", domain.RoleProjectManager)
	owner := s.login("olive", domain.RoleOwner)

	rr := s.do(http.MethodPost, "/api/v1/jobs", pm, domain.CreateJobRequest{Name: "Sunrise Estates", ZipCode: "73102"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	job := decode[domain.Job](t, rr)
	assert.Equal(t, domain.JobStatusNeedsBid, job.Status)
	assert.Equal(t, 8.625, job.TaxRate)

	base := "/api/v1/jobs/" + itoa(job.ID)
	rr = s.do(http.MethodPut, base+"/line-items", pm, domain.ReplaceLineItemsRequest{LineItems: []domain.LineItemInput{
		{LineNumber: 1, SKU: "A", QtyOrdered: 10, PricePer: 2.5},
	}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	view := decode[domain.JobView](t, rr)
	require.Len(t, view.LineItems, 1)
	lineID := view.LineItems[0].ID

	rr = s.do(http.MethodPut, base+"/line-items", pm, domain.ReplaceLineItemsRequest{LineItems: []domain.LineItemInput{
		{LineNumber: 0, SKU: "B", QtyOrdered: 1, PricePer: 1},
	}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "line_number")

	rr = s.do(http.MethodPut, base+"/entries/received", pm, domain.SaveEntriesRequest{Entries: []domain.EntryInput{
		{LineItemID: lineID, ColumnNumber: 3, Quantity: 4},
	}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	view = decode[domain.JobView](t, s.do(http.MethodGet, base, pm, nil))
	assert.Equal(t, 4.0, view.LineItems[0].TotalReceived)
	assert.Equal(t, 25.0, view.LineItems[0].TotalNetPrice)

	rr = s.do(http.MethodPut, base+"/entries/received", pm, domain.SaveEntriesRequest{Entries: []domain.EntryInput{
		{LineItemID: lineID, ColumnNumber: 3, Quantity: 0},
	}})
	require.Equal(t, http.StatusOK, rr.Code)
	view = decode[domain.JobView](t, rr)
	assert.Equal(t, 0.0, view.LineItems[0].TotalReceived)

	t.Run("bad ledger input is rejected", func(t *testing.T) {
		rr := s.do(http.MethodPut, base+"/entries/received", pm, domain.SaveEntriesRequest{Entries: []domain.EntryInput{
			{LineItemID: lineID, ColumnNumber: 16, Quantity: 1},
		}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = s.do(http.MethodPut, base+"/entries/returned", pm, domain.SaveEntriesRequest{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	versions := decode[[]domain.VersionSummary](t, s.do(http.MethodGet, base+"/versions", pm, nil))
	require.Len(t, versions, 3)
	assert.Equal(t, "Before received update", versions[0].Description)
	assert.Equal(t, "Before received update", versions[1].Description)
	assert.Equal(t, "Before master list update", versions[2].Description)

	rr = s.do(http.MethodPost, base+"/versions/"+itoa(versions[2].ID)+"/revert", pm, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, decode[domain.JobView](t, rr).LineItems)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base+"/versions/999999", pm, nil).Code)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, base, pm, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, base, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, base, pm, nil).Code)
}

func TestTaxLookupAndAnalytics(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("olive", domain.RoleOwner)

	info := decode[domain.TaxInfo](t, s.do(http.MethodGet, "/api/v1/tax-lookup/73102", owner, nil))
	assert.Equal(t, domain.TaxInfo{TaxRate: 8.625, City: "Oklahoma City", State: "OK"}, info)

	unknown := decode[domain.TaxInfo](t, s.do(http.MethodGet, "/api/v1/tax-lookup/99999", owner, nil))
	assert.Zero(t, unknown.TaxRate)

	rr := s.do(http.MethodGet, "/api/v1/analytics", owner, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	analytics := decode[domain.Analytics](t, rr)
	assert.NotEmpty(t, analytics.StageOrder)
}

func TestBidCalculate(t *testing.T) {
	s := newTestServer(t)
	pm := s.login("pam", domain.RoleProjectManager)

	rr := s.do(http.MethodPost, "/api/v1/bids/calculate", pm, domain.BidInputs{
		NumApartments:    40,
		LaborRatePerHour: 37,
		CompanyProfitPct: 10,
		MaterialCost:     100000,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	calc := decode[domain.BidCalculation](t, rr)
	assert.Equal(t, 142560.0, calc.TotalBid)

	rr = s.do(http.MethodPost, "/api/v1/bids/calculate", pm, map[string]int{"crew_size": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChatAndNotifications(t *testing.T) {
	s := newTestServer(t)
	employee := s.login("ed", domain.RoleEmployee)

	rr := s.do(http.MethodPost, "/api/v1/chat/sessions", employee, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	session := decode[domain.ChatSession](t, rr)

	path := "/api/v1/chat/sessions/" + itoa(session.ID) + "/messages"
	rr = s.do(http.MethodPost, path, employee, domain.PostChatMessageRequest{Content: "help"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	reply := decode[domain.ChatReply](t, rr)
	assert.True(t, reply.OK)
	assert.NotEmpty(t, reply.Response)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, path, employee, domain.PostChatMessageRequest{Content: "  "}).Code)

	messages := decode[[]domain.ChatMessage](t, s.do(http.MethodGet, path, employee, nil))
	assert.Len(t, messages, 2)

	// Another user cannot read the session.
	other := s.login("val", domain.RoleEmployee)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, other, nil).Code)

	count := decode[domain.UnreadCount](t, s.do(http.MethodGet, "/api/v1/notifications/unread-count", employee, nil))
	assert.Zero(t, count.Count)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/v1/notifications/read-all", employee, nil).Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
