package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/architeacher/gadgets/internal/ports"
	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/vault/api"
	"github.com/kelseyhightower/envconfig"
)

var ErrSecretsStorageDisabled = errors.New("secret storage is not enabled")

type Loader struct {
	cfg              *ServiceConfig
	secretsRepo      ports.SecretsRepository
	configSignalChan chan os.Signal
	reloadErrors     chan error
	dumpWriter       io.Writer
	lastVersion      uint
}

func NewLoader(cfg *ServiceConfig, secretsRepo ports.SecretsRepository, initialVersion uint) *Loader {
	return &Loader{
		cfg:              cfg,
		secretsRepo:      secretsRepo,
		configSignalChan: make(chan os.Signal, 1),
		reloadErrors:     make(chan error, 1),
		dumpWriter:       os.Stdout,
		lastVersion:      initialVersion,
	}
}

func Init() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service configuration: %w", err)
	}

	return cfg, nil
}

// WatchConfigSignals reloads secrets on SIGHUP, or on every poll tick when
// polling is configured, and dumps the configuration on SIGUSR1.
func (l *Loader) WatchConfigSignals(ctx context.Context) <-chan error {
	signal.Notify(l.configSignalChan, syscall.SIGHUP, syscall.SIGUSR1)

	var ticker *time.Ticker
	if l.cfg.SecretsStorage.Enabled && l.cfg.SecretsStorage.PollInterval > 0 {
		ticker = time.NewTicker(l.cfg.SecretsStorage.PollInterval)
	}

	go func() {
		defer signal.Stop(l.configSignalChan)
		defer close(l.reloadErrors)

		var tick <-chan time.Time
		if ticker != nil {
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case <-tick:
				l.handleConfigReload(ctx)

			case sig := <-l.configSignalChan:
				switch sig {
				case syscall.SIGHUP:
					l.handleConfigReload(ctx)

				case syscall.SIGUSR1:
					l.DumpConfig()
				}
			}
		}
	}()

	return l.reloadErrors
}

func (l *Loader) DumpConfig() {
	configJSON, err := json.MarshalIndent(l.cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(l.dumpWriter, "Error marshaling config: %v\n", err)

		return
	}

	fmt.Fprintf(l.dumpWriter, "\n=== Configuration Dump ===\n%s\n=== End Configuration ===\n\n", string(configJSON))
}

// Load overlays the secrets stored in Vault onto cfg and returns the secret version.
func (l *Loader) Load(ctx context.Context) (uint, error) {
	if !l.cfg.SecretsStorage.Enabled {
		return 0, ErrSecretsStorageDisabled
	}

	if err := l.authenticateVault(ctx); err != nil {
		return 0, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	secret, err := l.readSecret(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load secrets from Vault: %w", err)
	}

	data, err := l.section(secret, "data")
	if err != nil {
		return 0, err
	}

	if err := l.applySecretsToConfig(data); err != nil {
		return 0, fmt.Errorf("failed to apply secrets to config: %w", err)
	}

	metadata, err := l.section(secret, "metadata")
	if err != nil {
		return 0, err
	}

	version, err := secretVersion(metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to get secret version: %w", err)
	}

	l.lastVersion = version

	return version, nil
}

func (l *Loader) authenticateVault(ctx context.Context) error {
	storage := l.cfg.SecretsStorage

	switch strings.ToLower(storage.AuthMethod) {
	case "token":
		if storage.Token == "" {
			return fmt.Errorf("token is required for token auth method")
		}
		l.secretsRepo.SetToken(storage.Token)

		return nil

	case "approle":
		if storage.RoleID == "" || storage.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for approle auth method")
		}

		resp, err := l.secretsRepo.WriteWithContext(ctx, "auth/approle/login", map[string]any{
			"role_id":   storage.RoleID,
			"secret_id": storage.SecretID,
		})
		if err != nil {
			return fmt.Errorf("failed to authenticate via approle: %w", err)
		}

		if resp == nil || resp.Auth == nil {
			return fmt.Errorf("no auth info returned from Vault")
		}

		l.secretsRepo.SetToken(resp.Auth.ClientToken)

		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", storage.AuthMethod)
	}
}

func (l *Loader) handleConfigReload(ctx context.Context) {
	secret, err := l.readSecret(ctx)
	if err != nil {
		l.reportReloadStatus(fmt.Errorf("failed to load secret metadata: %w", err))

		return
	}

	metadata, err := l.section(secret, "metadata")
	if err != nil {
		l.reportReloadStatus(err)

		return
	}

	currentVersion, err := secretVersion(metadata)
	if err != nil {
		l.reportReloadStatus(fmt.Errorf("failed to get secret version: %w", err))

		return
	}

	if currentVersion == l.lastVersion {
		return
	}

	if _, err := l.Load(ctx); err != nil {
		l.reportReloadStatus(err)

		return
	}

	l.reportReloadStatus(nil)
}

func (l *Loader) secretPath() string {
	return fmt.Sprintf("apps/data/%s", l.cfg.SecretsStorage.MountPath)
}

func (l *Loader) readSecret(ctx context.Context) (*api.Secret, error) {
	storage := l.cfg.SecretsStorage
	path := l.secretPath()

	ctx, cancel := context.WithTimeout(ctx, storage.Timeout)
	defer cancel()

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = l.cfg.Backoff.BaseDelay
	expBackoff.Multiplier = l.cfg.Backoff.Multiplier
	expBackoff.RandomizationFactor = l.cfg.Backoff.Jitter
	expBackoff.MaxInterval = l.cfg.Backoff.MaxDelay

	secret, err := backoff.Retry(ctx, func() (*api.Secret, error) {
		return l.secretsRepo.GetSecrets(ctx, path)
	}, backoff.WithBackOff(expBackoff), backoff.WithMaxTries(storage.MaxRetries+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read from path %s after %d retries: %w", path, storage.MaxRetries, err)
	}

	return secret, nil
}

func (l *Loader) section(secret *api.Secret, key string) (map[string]any, error) {
	if secret == nil || secret.Data == nil {
		return nil, nil
	}

	result, ok := secret.Data[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid secret format at path %s, missing '%s' key", l.secretPath(), key)
	}

	return result, nil
}

func secretVersion(metadata map[string]any) (uint, error) {
	currentVersion, ok := metadata["version"]
	if !ok {
		return 0, nil
	}

	switch v := currentVersion.(type) {
	case float64:
		return uint(v), nil
	case int:
		return uint(v), nil
	case uint:
		return v, nil
	case json.Number:
		version, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("failed to parse version: %w", err)
		}

		return uint(version), nil
	default:
		return 0, fmt.Errorf("unexpected version type: %T", currentVersion)
	}
}

func (l *Loader) applySecretsToConfig(data map[string]any) error {
	for key, value := range data {
		strValue, ok := value.(string)
		if !ok || strValue == "" {
			continue
		}

		if err := l.applySecretToConfig(key, strValue); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) applySecretToConfig(key, value string) error {
	switch key {
	case "POSTGRES_USERNAME":
		l.cfg.Database.Username = value
	case "POSTGRES_PASSWORD":
		l.cfg.Database.Password = value
	case "POSTGRES_HOST":
		l.cfg.Database.Host = value
	case "CACHE_PASSWORD":
		l.cfg.Cache.Password = value
	default:
		return nil
	}

	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set environment variable %s: %w", key, err)
	}

	return nil
}

func (l *Loader) reportReloadStatus(err error) {
	select {
	case l.reloadErrors <- err:
	default:
	}
}
