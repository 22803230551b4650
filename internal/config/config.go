package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jwilson7981/job-tracker-sub000/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DevSecretKey is the session signing key used when SECRET_KEY is not set.
const DevSecretKey = "lghvac-dev-secret-change-me"

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	LLM         LLMConfig
	Ledger      LedgerConfig
	SupplierAPI SupplierAPIConfig
	Tax         TaxConfig
	Jobs        JobsConfig
	Storage     StorageConfig
	Secrets     SecretsConfig
	Logging     LoggingConfig
	Server      ServerConfig
	CORS        CORSConfig
	Security    SecurityConfig
	RateLimit   RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	DataDir     string
}

// DatabaseConfig describes the embedded SQLite store.
type DatabaseConfig struct {
	Path            string
	BusyTimeoutMs   int
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// AuthConfig holds session cookie settings.
type AuthConfig struct {
	SecretKey     string
	CookieName    string
	SessionTTL    int // hours
	SecureCookies bool
}

// LLMConfig configures the language-model client used by the assistant,
// invoice extraction and duplicate detection.
type LLMConfig struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           int // seconds
	MaxTokens         int
	RequestsPerSecond float64
}

// LedgerConfig holds materials ledger and analytics settings.
type LedgerConfig struct {
	OutOfStateShipping float64
	HomeStates         []string
	MaxVersions        int
}

// SupplierAPIConfig configures the supplier billing API client.
type SupplierAPIConfig struct {
	BaseURL      string
	Timeout      int // seconds
	PageSize     int
	SyncWindow   int // days
	SyncEnabled  bool
	SyncSchedule string
}

// TaxRate is one entry of the postal code tax table.
type TaxRate struct {
	TaxRate float64
	City    string
	State   string
}

// TaxConfig maps postal codes to sales tax data.
type TaxConfig struct {
	Rates map[string]TaxRate
}

// JobsConfig controls the background scheduler.
type JobsConfig struct {
	Enabled            bool
	ExpiryScanSchedule string
	ExpiryWindowDays   int
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
	EnableMetrics  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	XSSProtection         string
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled                bool
	RequestsPerMinute      int
	RequestsPerMinuteAuth  int
	LoginAttemptsPerMinute int
	WhitelistIPs           []string
	WhitelistPaths         []string
}

// DSN builds the sqlite connection string with WAL and foreign keys enabled.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d", d.Path, d.BusyTimeoutMs)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// SessionTTLDuration returns the session lifetime.
func (a *AuthConfig) SessionTTLDuration() time.Duration {
	return time.Duration(a.SessionTTL) * time.Hour
}

// TimeoutDuration returns the outbound LLM timeout.
func (l *LLMConfig) TimeoutDuration() time.Duration {
	return time.Duration(l.Timeout) * time.Second
}

// Enabled reports whether an API key is configured.
func (l *LLMConfig) Enabled() bool {
	return strings.TrimSpace(l.APIKey) != ""
}

// TimeoutDuration returns the outbound supplier API timeout.
func (s *SupplierAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// Validate rejects settings that are unsafe outside development.
func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Auth.SecretKey == DevSecretKey {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}
	if c.Ledger.MaxVersions <= 0 {
		return fmt.Errorf("ledger.maxVersions must be positive, got %d", c.Ledger.MaxVersions)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

// Load loads configuration from file and environment variables.
// Use LoadWithSecrets for Key Vault resolution.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Well-known variable names used by deployments of the original tool.
	if key := v.GetString("SECRET_KEY"); key != "" {
		cfg.Auth.SecretKey = key
	}
	if key := v.GetString("ANTHROPIC_API_KEY"); key != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = key
	}
	if path := v.GetString("DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from Azure Key Vault
// when USE_AZURE_KEY_VAULT=true and the environment is staging or production.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceVault,
		VaultName:   cfg.Secrets.KeyVaultName,
		Environment: cfg.App.Environment,
		CacheTTL:    cfg.secretCacheTTL(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	resolved := provider.Apply(ctx,
		secrets.Binding{Secret: "session-secret-key", Env: "SECRET_KEY", Target: &cfg.Auth.SecretKey},
		secrets.Binding{Secret: "anthropic-api-key", Env: "ANTHROPIC_API_KEY", Target: &cfg.LLM.APIKey},
		secrets.Binding{Secret: "storage-connection-string", Env: "STORAGE_CLOUDCONNECTIONSTRING", Target: &cfg.Storage.CloudConnectionString},
	)
	logger.Info("Secrets loaded from vault", zap.Int("resolved", resolved))
	return cfg, nil
}

// secretCacheTTL is the configured cache lifetime; a disabled cache maps to
// a negative TTL.
func (c *Config) secretCacheTTL() time.Duration {
	if !c.Secrets.CacheEnabled {
		return -1
	}
	return time.Duration(c.Secrets.CacheTTL) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "LGHVAC Job Tracker")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.dataDir", "./data")

	v.SetDefault("database.path", "./data/job_tracker.db")
	v.SetDefault("database.busyTimeoutMs", 5000)
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	v.SetDefault("auth.secretKey", DevSecretKey)
	v.SetDefault("auth.cookieName", "lghvac_session")
	v.SetDefault("auth.sessionTTL", 24*7)
	v.SetDefault("auth.secureCookies", false)

	v.SetDefault("llm.model", "claude-haiku-4-5-20251001")
	v.SetDefault("llm.baseURL", "https://api.anthropic.com/v1/messages")
	v.SetDefault("llm.timeout", 30)
	v.SetDefault("llm.maxTokens", 1024)
	v.SetDefault("llm.requestsPerSecond", 2)

	v.SetDefault("ledger.outOfStateShipping", 10000.0)
	v.SetDefault("ledger.homeStates", []string{"", "OK", "OKLAHOMA"})
	v.SetDefault("ledger.maxVersions", 100)

	v.SetDefault("supplierApi.baseURL", "https://api.billtrust.com/v1")
	v.SetDefault("supplierApi.timeout", 30)
	v.SetDefault("supplierApi.pageSize", 100)
	v.SetDefault("supplierApi.syncWindow", 90)
	v.SetDefault("supplierApi.syncEnabled", false)
	v.SetDefault("supplierApi.syncSchedule", "0 30 5 * * *")

	v.SetDefault("tax.rates", map[string]interface{}{
		"73003": map[string]interface{}{"taxRate": 8.25, "city": "Edmond", "state": "OK"},
		"73012": map[string]interface{}{"taxRate": 8.25, "city": "Edmond", "state": "OK"},
		"73013": map[string]interface{}{"taxRate": 8.25, "city": "Edmond", "state": "OK"},
		"73034": map[string]interface{}{"taxRate": 8.25, "city": "Edmond", "state": "OK"},
		"73102": map[string]interface{}{"taxRate": 8.625, "city": "Oklahoma City", "state": "OK"},
		"74103": map[string]interface{}{"taxRate": 8.517, "city": "Tulsa", "state": "OK"},
		"73069": map[string]interface{}{"taxRate": 8.75, "city": "Norman", "state": "OK"},
	})

	v.SetDefault("jobs.enabled", false)
	v.SetDefault("jobs.expiryScanSchedule", "0 0 6 * * *")
	v.SetDefault("jobs.expiryWindowDays", 30)

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./data/uploads")
	v.SetDefault("storage.cloudContainer", "job-tracker")
	v.SetDefault("storage.maxUploadSizeMB", 50)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 120)
	v.SetDefault("server.requestTimeout", 120)
	v.SetDefault("server.enableSwagger", true)
	v.SetDefault("server.enableMetrics", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 300)
	v.SetDefault("rateLimit.loginAttemptsPerMinute", 10)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready", "/metrics"})
}
