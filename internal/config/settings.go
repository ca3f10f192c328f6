package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion string
	CommitSHA      string
)

const (
	Development = 1 << iota
	Sandbox
	Staging
	Production
)

type (
	ServiceConfig struct {
		App            App            `json:"app"`
		SecretsStorage SecretsStorage `json:"secrets_storage"`
		HTTPServer     HTTPServer     `json:"http_server"`
		Database       Database       `json:"database"`
		Backoff        Backoff        `json:"backoff"`
		Cache          Cache          `json:"cache"`
		DevicesCache   DevicesCache   `json:"devices_cache"`
		RateLimiting   RateLimiting   `json:"rate_limiting"`
		Idempotency    Idempotency    `json:"idempotency"`
		Compression    Compression    `json:"compression"`
		PhotoStorage   PhotoStorage   `json:"photo_storage"`
		DevicesAPI     DevicesAPI     `json:"devices_api"`
		Logging        Logging        `json:"logging"`
		Telemetry      Telemetry      `json:"telemetry"`
	}

	App struct {
		ServiceName string      `envconfig:"APP_SERVICE_NAME" default:"gadgets" json:"service_name"`
		APIVersion  string      `envconfig:"APP_API_VERSION" default:"v1" json:"api_version"`
		Env         Environment `json:"environment"`
	}

	Environment struct {
		Name string `envconfig:"APP_ENVIRONMENT" default:"development" json:"env"`
	}

	SecretsStorage struct {
		Enabled       bool          `envconfig:"VAULT_ENABLED" default:"false" json:"enabled"`
		Address       string        `envconfig:"VAULT_ADDRESS" default:"http://vault:8200" json:"address"`
		Token         string        `envconfig:"VAULT_TOKEN" default:"" json:"token,omitempty"`
		RoleID        string        `envconfig:"VAULT_ROLE_ID" default:"" json:"role_id,omitempty"`
		SecretID      string        `envconfig:"VAULT_SECRET_ID" default:"" json:"secret_id,omitempty"`
		AuthMethod    string        `envconfig:"VAULT_AUTH_METHOD" default:"token" json:"auth_method"`
		MountPath     string        `envconfig:"VAULT_MOUNT_PATH" default:"gadgets" json:"mount_path"`
		Namespace     string        `envconfig:"VAULT_NAMESPACE" default:"" json:"namespace,omitempty"`
		Timeout       time.Duration `envconfig:"VAULT_TIMEOUT" default:"30s" json:"timeout"`
		MaxRetries    uint          `envconfig:"VAULT_MAX_RETRIES" default:"3" json:"max_retries"`
		PollInterval  time.Duration `envconfig:"VAULT_POLL_INTERVAL" default:"0s" json:"poll_interval"`
		TLSSkipVerify bool          `envconfig:"VAULT_TLS_SKIP_VERIFY" default:"false" json:"tls_skip_verify"`
	}

	HTTPServer struct {
		Host            string        `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0" json:"host"`
		Port            uint          `envconfig:"HTTP_SERVER_PORT" default:"8000" json:"port"`
		ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s" json:"idle_timeout"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
		RequestTimeout  time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"20s" json:"request_timeout"`
		AllowedOrigins  []string      `envconfig:"HTTP_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000" json:"allowed_origins"`
	}

	Database struct {
		Host            string        `envconfig:"POSTGRES_HOST" default:"postgres" json:"host"`
		Port            uint          `envconfig:"POSTGRES_PORT" default:"5432" json:"port"`
		Database        string        `envconfig:"POSTGRES_DATABASE" default:"gadgets" json:"database"`
		Username        string        `envconfig:"POSTGRES_USERNAME" default:"postgres" json:"username"`
		Password        string        `envconfig:"POSTGRES_PASSWORD" default:"" json:"password,omitempty"`
		SSLMode         string        `envconfig:"POSTGRES_SSL_MODE" default:"disable" json:"ssl_mode"`
		MaxConnections  int           `envconfig:"POSTGRES_MAX_CONNECTIONS" default:"10" json:"max_connections"`
		MinConnections  int           `envconfig:"POSTGRES_MIN_CONNECTIONS" default:"2" json:"min_connections"`
		ConnectTimeout  time.Duration `envconfig:"POSTGRES_CONNECT_TIMEOUT" default:"10s" json:"connect_timeout"`
		ConnectRetries  uint          `envconfig:"POSTGRES_CONNECT_RETRIES" default:"5" json:"connect_retries"`
		MaxConnLifetime time.Duration `envconfig:"POSTGRES_MAX_CONN_LIFETIME" default:"1h" json:"max_conn_lifetime"`
		MaxConnIdleTime time.Duration `envconfig:"POSTGRES_MAX_CONN_IDLE_TIME" default:"30m" json:"max_conn_idle_time"`
		MigrateOnStart  bool          `envconfig:"POSTGRES_MIGRATE_ON_START" default:"true" json:"migrate_on_start"`
	}

	Backoff struct {
		BaseDelay  time.Duration `envconfig:"BACKOFF_BASE_DELAY" default:"1s" json:"base_delay"`
		Multiplier float64       `envconfig:"BACKOFF_MULTIPLIER" default:"1.5" json:"multiplier"`
		Jitter     float64       `envconfig:"BACKOFF_JITTER" default:"0.3" json:"jitter"`
		MaxDelay   time.Duration `envconfig:"BACKOFF_MAX_DELAY" default:"10s" json:"max_delay"`
	}

	Cache struct {
		Enabled      bool          `envconfig:"CACHE_ENABLED" default:"true" json:"enabled"`
		Address      string        `envconfig:"CACHE_ADDRESS" default:"keydb:6379" json:"address"`
		Password     string        `envconfig:"CACHE_PASSWORD" default:"" json:"password,omitempty"`
		DB           uint          `envconfig:"CACHE_DB" default:"0" json:"db"`
		PoolSize     uint          `envconfig:"CACHE_POOL_SIZE" default:"10" json:"pool_size"`
		MinIdleConns uint          `envconfig:"CACHE_MIN_IDLE_CONNS" default:"2" json:"min_idle_conns"`
		DialTimeout  time.Duration `envconfig:"CACHE_DIAL_TIMEOUT" default:"5s" json:"dial_timeout"`
		ReadTimeout  time.Duration `envconfig:"CACHE_READ_TIMEOUT" default:"3s" json:"read_timeout"`
		WriteTimeout time.Duration `envconfig:"CACHE_WRITE_TIMEOUT" default:"3s" json:"write_timeout"`
		MaxRetries   uint          `envconfig:"CACHE_MAX_RETRIES" default:"3" json:"max_retries"`
	}

	DevicesCache struct {
		Enabled   bool          `envconfig:"DEVICES_CACHE_ENABLED" default:"true" json:"enabled"`
		DeviceTTL time.Duration `envconfig:"DEVICES_CACHE_DEVICE_TTL" default:"5m" json:"device_ttl"`
		ListTTL   time.Duration `envconfig:"DEVICES_CACHE_LIST_TTL" default:"1m" json:"list_ttl"`
		MaxAge    uint          `envconfig:"DEVICES_CACHE_MAX_AGE" default:"30" json:"max_age"`
	}

	// RateLimiting applies to photo uploads only.
	RateLimiting struct {
		Enabled          bool          `envconfig:"RATE_LIMITING_ENABLED" default:"true" json:"enabled"`
		RequestsPerMin   uint          `envconfig:"RATE_LIMITING_REQUESTS_PER_MINUTE" default:"30" json:"requests_per_minute"`
		BurstSize        uint          `envconfig:"RATE_LIMITING_BURST_SIZE" default:"10" json:"burst_size"`
		KeyTTL           time.Duration `envconfig:"RATE_LIMITING_KEY_TTL" default:"10m" json:"key_ttl"`
		GracefulDegraded bool          `envconfig:"RATE_LIMITING_GRACEFUL_DEGRADED" default:"true" json:"graceful_degraded"`
	}

	Idempotency struct {
		Enabled          bool          `envconfig:"IDEMPOTENCY_ENABLED" default:"true" json:"enabled"`
		CacheTTL         time.Duration `envconfig:"IDEMPOTENCY_CACHE_TTL" default:"24h" json:"cache_ttl"`
		LockTTL          time.Duration `envconfig:"IDEMPOTENCY_LOCK_TTL" default:"30s" json:"lock_ttl"`
		Methods          []string      `envconfig:"IDEMPOTENCY_METHODS" default:"POST,PUT,DELETE" json:"methods"`
		ReplayedHeader   string        `envconfig:"IDEMPOTENCY_REPLAYED_HEADER" default:"Idempotent-Replayed" json:"replayed_header"`
		GracefulDegraded bool          `envconfig:"IDEMPOTENCY_GRACEFUL_DEGRADED" default:"true" json:"graceful_degraded"`
	}

	Compression struct {
		Enabled bool `envconfig:"COMPRESSION_ENABLED" default:"true" json:"enabled"`
		// Level is 1 to 9 and is mapped onto the brotli quality scale.
		Level     int      `envconfig:"COMPRESSION_LEVEL" default:"5" json:"level"`
		MinSize   int      `envconfig:"COMPRESSION_MIN_SIZE" default:"1024" json:"min_size"`
		SkipPaths []string `envconfig:"COMPRESSION_SKIP_PATHS" default:"/health,/liveness,/readiness" json:"skip_paths"`
	}

	PhotoStorage struct {
		Directory      string               `envconfig:"PHOTO_STORAGE_DIR" default:"./data/photos" json:"directory"`
		PublicBaseURL  string               `envconfig:"PHOTO_STORAGE_PUBLIC_URL" default:"/photos" json:"public_base_url"`
		MaxUploadBytes int64                `envconfig:"PHOTO_STORAGE_MAX_UPLOAD_BYTES" default:"10485760" json:"max_upload_bytes"`
		CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker"`
	}

	CircuitBreakerConfig struct {
		Enabled          bool          `envconfig:"PHOTO_STORAGE_CB_ENABLED" default:"true" json:"enabled"`
		MaxRequests      uint          `envconfig:"PHOTO_STORAGE_CB_MAX_REQUESTS" default:"1" json:"max_requests"`
		Interval         time.Duration `envconfig:"PHOTO_STORAGE_CB_INTERVAL" default:"60s" json:"interval"`
		Timeout          time.Duration `envconfig:"PHOTO_STORAGE_CB_TIMEOUT" default:"30s" json:"timeout"`
		FailureThreshold uint          `envconfig:"PHOTO_STORAGE_CB_FAILURE_THRESHOLD" default:"5" json:"failure_threshold"`
	}

	// DevicesAPI is where the dashboard client sends its requests.
	DevicesAPI struct {
		BaseURL string        `envconfig:"DEVICES_API_BASE_URL" default:"http://localhost:8000" json:"base_url"`
		Timeout time.Duration `envconfig:"DEVICES_API_TIMEOUT" default:"15s" json:"timeout"`
	}

	Logging struct {
		Level     string    `envconfig:"LOG_LEVEL" default:"info" json:"level"`
		Format    string    `envconfig:"LOG_FORMAT" default:"json" json:"format"`
		AccessLog AccessLog `json:"access_log"`
	}

	AccessLog struct {
		Enabled            bool `envconfig:"ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks    bool `envconfig:"ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
		IncludeQueryParams bool `envconfig:"ACCESS_LOG_INCLUDE_QUERY_PARAMS" default:"true" json:"include_query_params"`
	}

	Telemetry struct {
		Enabled        bool    `envconfig:"OTEL_ENABLED" default:"false" json:"enabled"`
		ExporterType   string  `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type"`
		OTLPEndpoint   string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317" json:"otlp_endpoint"`
		Insecure       bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true" json:"insecure"`
		ServiceName    string  `envconfig:"OTEL_SERVICE_NAME" default:"gadgets" json:"service_name"`
		ServiceVersion string  `envconfig:"OTEL_SERVICE_VERSION" default:"1.0.0" json:"service_version"`
		Metrics        Metrics `json:"metrics"`
		Traces         Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled        bool          `envconfig:"METRICS_ENABLED" default:"false" json:"enabled"`
		ExportInterval time.Duration `envconfig:"METRICS_EXPORT_INTERVAL" default:"30s" json:"export_interval"`
	}

	Traces struct {
		Enabled      bool    `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1.0" json:"sampler_ratio"`
	}
)

func (c *ServiceConfig) GetEnvironment() int {
	switch c.App.Env.Name {
	case "production", "prod":
		return Production
	case "staging", "stg":
		return Staging
	case "sandbox", "sbx":
		return Sandbox
	default:
		return Development
	}
}

func (c *ServiceConfig) IsProduction() bool {
	return c.GetEnvironment() == Production
}

func (c *ServiceConfig) Validate() error {
	if err := c.Compression.Validate(); err != nil {
		return err
	}

	if c.PhotoStorage.MaxUploadBytes <= 0 {
		return fmt.Errorf("photo storage max upload bytes must be positive, got %d", c.PhotoStorage.MaxUploadBytes)
	}

	if c.PhotoStorage.Directory == "" {
		return fmt.Errorf("photo storage directory is required")
	}

	return nil
}

func (c *Compression) Validate() error {
	if c.Level < 1 || c.Level > 9 {
		return fmt.Errorf("compression level must be between 1 and 9, got %d", c.Level)
	}

	if c.MinSize < 0 {
		return fmt.Errorf("compression min_size must be non-negative, got %d", c.MinSize)
	}

	return nil
}

// DSN renders the pgx connection string.
func (d Database) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.FormatUint(uint64(d.Port), 10)),
		Path:     "/" + d.Database,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}

	return dsn.String()
}
