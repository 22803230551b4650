// Package logger builds the process logger and carries a per-request logger
// through the request context.
package logger

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the process logger. Production and json format use the
// JSON encoder; everything else gets colored console output.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "time"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// WithRequest adds request context to logger
func WithRequest(logger *zap.Logger, method, path, requestID string) *zap.Logger {
	return logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// UserFields are the session user fields attached to request logs.
func UserFields(userID int64, username, role string) []zap.Field {
	return []zap.Field{
		zap.Int64("user_id", userID),
		zap.String("user_name", username),
		zap.String("role", role),
	}
}

type ctxKey struct{}

// slot is shared by every copy of the request context, so fields added by
// inner middleware show up in the outer request log.
type slot struct {
	mu  sync.Mutex
	log *zap.Logger
}

// NewContext returns ctx carrying log as the request logger.
func NewContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, &slot{log: log})
}

// FromContext returns the request logger, or fallback outside a request.
func FromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	s, ok := ctx.Value(ctxKey{}).(*slot)
	if !ok {
		return fallback
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log
}

// Enrich adds fields to the request logger in ctx. It does nothing outside
// a request.
func Enrich(ctx context.Context, fields ...zap.Field) {
	s, ok := ctx.Value(ctxKey{}).(*slot)
	if !ok {
		return
	}
	s.mu.Lock()
	s.log = s.log.With(fields...)
	s.mu.Unlock()
}
