package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

const defaultCacheTTL = 5 * time.Minute

type secretAPI interface {
	GetSecret(ctx context.Context, name, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

type cached struct {
	value     string
	expiresAt time.Time
}

// VaultClient reads secrets from Azure Key Vault and caches them for a TTL.
// A zero TTL uses five minutes; a negative TTL disables the cache.
type VaultClient struct {
	api    secretAPI
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]cached
}

// NewVaultClient authenticates with DefaultAzureCredential, which covers
// managed identity, service principal env vars and the Azure CLI.
func NewVaultClient(vaultName string, ttl time.Duration, logger *zap.Logger) (*VaultClient, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return newVaultClient(vaultName, cred, ttl, logger)
}

func newVaultClient(vaultName string, cred azcore.TokenCredential, ttl time.Duration, logger *zap.Logger) (*VaultClient, error) {
	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", vaultName)
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}
	logger.Info("Azure Key Vault client ready", zap.String("vault_url", vaultURL))
	return newCachedVault(client, ttl, logger), nil
}

func newCachedVault(api secretAPI, ttl time.Duration, logger *zap.Logger) *VaultClient {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &VaultClient{
		api:    api,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
		cache:  make(map[string]cached),
	}
}

func (v *VaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	if v.ttl > 0 {
		v.mu.Lock()
		c, ok := v.cache[name]
		v.mu.Unlock()
		if ok && v.now().Before(c.expiresAt) {
			return c.value, nil
		}
	}

	resp, err := v.api.GetSecret(ctx, name, "", nil)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault", zap.String("secret", name), zap.Error(err))
		return "", fmt.Errorf("failed to get secret '%s': %w", name, err)
	}
	if resp.Value == nil || *resp.Value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotSet, name)
	}

	if v.ttl > 0 {
		v.mu.Lock()
		v.cache[name] = cached{value: *resp.Value, expiresAt: v.now().Add(v.ttl)}
		v.mu.Unlock()
	}
	return *resp.Value, nil
}
