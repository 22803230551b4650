package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/jwilson7981/job-tracker-sub000/internal/auth"
	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter throttles anonymous traffic per IP, signed-in traffic per
// user, and login attempts per IP on a much tighter budget.
type RateLimiter struct {
	enabled      bool
	logger       *zap.Logger
	ipLimiter    func(http.Handler) http.Handler
	userLimiter  func(http.Handler) http.Handler
	loginLimiter func(http.Handler) http.Handler
	whitelistIPs map[string]bool
	exactPaths   map[string]bool
	prefixPaths  []string
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		enabled:      cfg.Enabled,
		logger:       logger,
		whitelistIPs: make(map[string]bool, len(cfg.WhitelistIPs)),
		exactPaths:   make(map[string]bool, len(cfg.WhitelistPaths)),
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	for _, p := range cfg.WhitelistPaths {
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			rl.prefixPaths = append(rl.prefixPaths, prefix)
			continue
		}
		rl.exactPaths[p] = true
	}

	keyByIP := func(r *http.Request) (string, error) { return "ip:" + clientIP(r), nil }
	rl.ipLimiter = rl.limit(cfg.RequestsPerMinute, keyByIP)
	rl.userLimiter = rl.limit(cfg.RequestsPerMinuteAuth, keyByUserOrIP)
	rl.loginLimiter = rl.limit(cfg.LoginAttemptsPerMinute, keyByIP)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Int("login_attempts_per_minute", cfg.LoginAttemptsPerMinute),
	)
	return rl
}

func (rl *RateLimiter) limit(perMinute int, key httprate.KeyFunc) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(rl.exceeded),
	)
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if !rl.enabled || rl.whitelistIPs[clientIP(r)] || rl.exactPaths[r.URL.Path] {
		return true
	}
	for _, prefix := range rl.prefixPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) apply(limiter func(http.Handler) http.Handler, next http.Handler) http.Handler {
	limited := limiter(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

// LimitByIP applies the anonymous budget; use it before authentication.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	return rl.apply(rl.ipLimiter, next)
}

// LimitByUser applies the signed-in budget; use it after authentication.
func (rl *RateLimiter) LimitByUser(next http.Handler) http.Handler {
	return rl.apply(rl.userLimiter, next)
}

// LimitLogin guards the login endpoint against password guessing.
func (rl *RateLimiter) LimitLogin(next http.Handler) http.Handler {
	return rl.apply(rl.loginLimiter, next)
}

func keyByUserOrIP(r *http.Request) (string, error) {
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(userCtx.UserID, 10), nil
	}
	return "ip:" + clientIP(r), nil
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiter) exceeded(w http.ResponseWriter, r *http.Request) {
	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", clientIP(r)),
	}
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		fields = append(fields, zap.Int64("user_id", userCtx.UserID))
	}
	rl.logger.Warn("rate limit exceeded", fields...)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Error:   "Too many requests",
		Message: "Too many requests. Please try again later.",
	})
}
