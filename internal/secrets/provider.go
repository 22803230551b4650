// Package secrets resolves deployment secrets from environment variables or
// Azure Key Vault.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// ErrNotSet is returned when a secret has no value in any source.
var ErrNotSet = errors.New("secret not set")

// Source names where secrets come from.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceVault       Source = "vault"
	// SourceAuto uses the vault outside development.
	SourceAuto Source = "auto"
)

// Getter fetches one named secret.
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

type envGetter struct{}

func (envGetter) GetSecret(_ context.Context, name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotSet, name)
}

// ProviderConfig configures NewProvider.
type ProviderConfig struct {
	Source      Source
	VaultName   string
	Environment string
	CacheTTL    time.Duration
}

// Provider looks up secrets, letting an environment variable override the
// configured source.
type Provider struct {
	source Source
	getter Getter
	logger *zap.Logger
}

// ResolveSource turns SourceAuto into a concrete source for environment.
func ResolveSource(source Source, environment string) Source {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "", "development", "local", "test":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)
	p := &Provider{source: source, logger: logger}

	switch source {
	case SourceEnvironment:
		p.getter = envGetter{}
	case SourceVault:
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vault, err := NewVaultClient(cfg.VaultName, cfg.CacheTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.getter = vault
	default:
		return nil, fmt.Errorf("unknown secret source: %s", source)
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// NewProviderWithGetter builds a provider around an existing source.
func NewProviderWithGetter(source Source, getter Getter, logger *zap.Logger) *Provider {
	return &Provider{source: source, getter: getter, logger: logger}
}

func (p *Provider) Source() Source { return p.source }

// Get returns the env variable when set, else the named secret.
func (p *Provider) Get(ctx context.Context, secretName, envName string) (string, error) {
	if envName != "" {
		if v := os.Getenv(envName); v != "" {
			return v, nil
		}
	}
	return p.getter.GetSecret(ctx, secretName)
}

// Binding maps one secret onto a config field.
type Binding struct {
	Secret string
	Env    string
	Target *string
}

// Apply fills every binding it can. Missing secrets leave the target
// untouched; it reports how many targets were set.
func (p *Provider) Apply(ctx context.Context, bindings ...Binding) int {
	set := 0
	for _, b := range bindings {
		v, err := p.Get(ctx, b.Secret, b.Env)
		if err != nil || v == "" {
			p.logger.Debug("Secret not resolved, keeping configured value",
				zap.String("secret", b.Secret),
				zap.Error(err),
			)
			continue
		}
		*b.Target = v
		set++
	}
	return set
}
