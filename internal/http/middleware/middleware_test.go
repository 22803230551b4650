package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func requestFrom(method, path, ip string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":12345"
	return req
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: false, RequestsPerMinute: 1}, zap.NewNop())
	h := rl.LimitByIP(okHandler)

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/x", "10.0.0.1")).Code)
	}
}

func TestRateLimiter_LimitByIP(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}, zap.NewNop())
	h := rl.LimitByIP(okHandler)

	assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/x", "10.0.0.2")).Code)
	assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/x", "10.0.0.2")).Code)

	rr := serve(h, requestFrom(http.MethodGet, "/x", "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), "Too many requests")

	// Another client has its own budget.
	assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/x", "10.0.0.3")).Code)
}

func TestRateLimiter_Whitelist(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		WhitelistIPs:      []string{"127.0.0.1"},
		WhitelistPaths:    []string{"/health", "/swagger/*"},
	}, zap.NewNop())
	h := rl.LimitByIP(okHandler)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/api/v1/jobs", "127.0.0.1")).Code)
		assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/health", "10.0.0.4")).Code)
		assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodGet, "/swagger/index.html", "10.0.0.4")).Code)
	}
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1}, zap.NewNop())
	h := rl.LimitByIP(okHandler)

	first := requestFrom(http.MethodGet, "/x", "10.0.0.5")
	first.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.5")
	assert.Equal(t, http.StatusOK, serve(h, first).Code)

	second := requestFrom(http.MethodGet, "/x", "10.0.0.6")
	second.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, serve(h, second).Code)
}

func TestRateLimiter_LimitByUser(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinuteAuth: 1}, zap.NewNop())
	h := rl.LimitByUser(okHandler)

	asUser := func(id int64) *http.Request {
		req := requestFrom(http.MethodGet, "/x", "10.0.0.7")
		return req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{UserID: id, Role: domain.RoleEmployee}))
	}

	assert.Equal(t, http.StatusOK, serve(h, asUser(1)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, asUser(1)).Code)
	// Same IP, different user.
	assert.Equal(t, http.StatusOK, serve(h, asUser(2)).Code)
}

func TestRateLimiter_LimitLogin(t *testing.T) {
	rl := middleware.NewRateLimiter(&config.RateLimitConfig{
		Enabled:                true,
		RequestsPerMinute:      100,
		LoginAttemptsPerMinute: 3,
	}, zap.NewNop())
	h := rl.LimitLogin(okHandler)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(h, requestFrom(http.MethodPost, "/api/v1/auth/login", "10.0.0.8")).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(h, requestFrom(http.MethodPost, "/api/v1/auth/login", "10.0.0.8")).Code)
}

func corsConfig(origins ...string) *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func corsRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Origin", origin)
	return req
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		env     string
		origin  string
		allowed bool
	}{
		{"explicit origin allowed", []string{"https://office.lghvac.com"}, "production", "https://office.lghvac.com", true},
		{"explicit origin rejected", []string{"https://office.lghvac.com"}, "production", "https://evil.example", false},
		{"wildcard reflects origin", []string{"*"}, "development", "http://localhost:3000", true},
		{"empty list in development", nil, "development", "http://localhost:5173", true},
		{"empty list in production denies", nil, "production", "https://office.lghvac.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.CORS(corsConfig(tt.origins...), tt.env, zap.NewNop())(okHandler)
			rr := serve(h, corsRequest(tt.origin))

			if tt.allowed {
				assert.Equal(t, tt.origin, rr.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(corsConfig("https://office.lghvac.com"), "production", zap.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
	req.Header.Set("Origin", "https://office.lghvac.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := serve(h, req)

	assert.Equal(t, "https://office.lghvac.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.Equal(t, "300", rr.Header().Get("Access-Control-Max-Age"))
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}

	t.Run("without HSTS", func(t *testing.T) {
		rr := serve(middleware.SecurityHeaders(cfg)(okHandler), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
		assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, rr.Header().Get("Permissions-Policy"), "empty values are not sent")
	})

	t.Run("with HSTS", func(t *testing.T) {
		withHSTS := *cfg
		withHSTS.EnableHSTS = true
		withHSTS.HSTSMaxAge = 31536000
		withHSTS.HSTSIncludeSubdomains = true
		withHSTS.HSTSPreload = true

		rr := serve(middleware.SecurityHeaders(&withHSTS)(okHandler), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "max-age=31536000; includeSubDomains; preload", rr.Header().Get("Strict-Transport-Security"))
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := middleware.Recovery(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("ledger exploded")
	}))

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/jobs/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic recovered", logs.All()[0].Message)
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	h := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := chi.NewRouter()
	r.Use(middleware.Logging(zap.New(core)))
	r.Get("/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	t.Run("generates a request id and logs the route pattern", func(t *testing.T) {
		rr := serve(r, httptest.NewRequest(http.MethodGet, "/jobs/42", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "/jobs/{id}", fields["route"])
		assert.EqualValues(t, 404, fields["status_code"])
	})

	t.Run("keeps a caller supplied request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/jobs/7", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		rr := serve(r, req.WithContext(context.Background()))

		assert.Equal(t, "abc-123", rr.Header().Get(middleware.RequestIDHeader))
		logs.TakeAll()
	})
}

func TestLogging_IncludesSessionUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tokens := auth.NewTokenManager("test-secret-key-with-enough-bytes", time.Hour)
	authMW := auth.NewMiddleware(&config.AuthConfig{}, tokens, zap.NewNop())

	r := chi.NewRouter()
	r.Use(middleware.Logging(zap.New(core)))
	r.With(authMW.Authenticate).Get("/jobs", okHandler)

	token, err := tokens.Issue(&domain.User{ID: 9, Username: "dana", Role: domain.RoleProjectManager})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := serve(r, req)
	require.Equal(t, http.StatusOK, rr.Code)

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 9, fields["user_id"])
	assert.Equal(t, "dana", fields["user_name"])
	assert.Equal(t, "/jobs", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
}
