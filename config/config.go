package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Mirror     MirrorConfig     `mapstructure:"mirror"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
	OAuth      OAuthConfig      `mapstructure:"oauth"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Webhooks   WebhooksConfig   `mapstructure:"webhooks"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Mode           string `mapstructure:"mode"` // debug, release, test
	PublicURL      string `mapstructure:"public_url"`
	MaxBodyBytes   int64  `mapstructure:"max_body_bytes"`
	MaxWebhookBody int64  `mapstructure:"max_webhook_body_bytes"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MirrorConfig points at the store holding mirrored provider records.
// DSN scheme selects the backend: sqlite://path or postgres://...
type MirrorConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type EncryptionConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex master key, subkeys are derived per purpose
}

type OAuthConfig struct {
	StateTTL      time.Duration `mapstructure:"state_ttl"`
	StatusPageURL string        `mapstructure:"status_page_url"`
	RefreshSkew   time.Duration `mapstructure:"refresh_skew"`
}

type ProvidersConfig struct {
	Shopify         ShopifyConfig         `mapstructure:"shopify"`
	Stripe          StripeConfig          `mapstructure:"stripe"`
	GoogleAnalytics GoogleAnalyticsConfig `mapstructure:"google_analytics"`
	HTTPTimeout     time.Duration         `mapstructure:"http_timeout"`
}

type ShopifyConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	Scopes       []string `mapstructure:"scopes"`
	APIVersion   string   `mapstructure:"api_version"`
}

type StripeConfig struct {
	APIBaseURL       string        `mapstructure:"api_base_url"`
	WebhookTolerance time.Duration `mapstructure:"webhook_tolerance"`
}

type GoogleAnalyticsConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	Scopes       []string `mapstructure:"scopes"`
	AuthURL      string   `mapstructure:"auth_url"`
	TokenURL     string   `mapstructure:"token_url"`
	AdminBaseURL string   `mapstructure:"admin_base_url"`
	DataBaseURL  string   `mapstructure:"data_base_url"`
}

type SyncConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	Interval          time.Duration `mapstructure:"interval"`
	StaleAfter        time.Duration `mapstructure:"stale_after"`
	SchedulerBatch    int           `mapstructure:"scheduler_batch"`
	SchedulerInterval time.Duration `mapstructure:"scheduler_interval"`
}

type WebhooksConfig struct {
	DeliveryTimeout   time.Duration `mapstructure:"delivery_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	BatchSize         int           `mapstructure:"batch_size"`
	Lease             time.Duration `mapstructure:"lease"`
	DefaultMaxRetries int           `mapstructure:"default_max_retries"`
	DefaultRetryDelay int           `mapstructure:"default_retry_delay_seconds"`
	OutcomeCacheTTL   time.Duration `mapstructure:"outcome_cache_ttl"`
	ProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
}

type RateLimitConfig struct {
	WebhookPerMinute int `mapstructure:"webhook_per_minute"`
	APIPerMinute     int `mapstructure:"api_per_minute"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CHUB_.
// Nested keys use underscore: CHUB_DATABASE_HOST, CHUB_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("server.max_body_bytes", 64<<10)
	v.SetDefault("server.max_webhook_body_bytes", 2<<20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "connector_hub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("mirror.dsn", "sqlite://mirror.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "connector-hub")
	v.SetDefault("encryption.key", "")
	v.SetDefault("oauth.state_ttl", "10m")
	v.SetDefault("oauth.status_page_url", "http://localhost:3000/integrations")
	v.SetDefault("oauth.refresh_skew", "30s")
	v.SetDefault("providers.http_timeout", "30s")
	v.SetDefault("providers.shopify.scopes", []string{"read_customers", "read_products", "read_orders"})
	v.SetDefault("providers.shopify.api_version", "2024-10")
	v.SetDefault("providers.stripe.api_base_url", "https://api.stripe.com")
	v.SetDefault("providers.stripe.webhook_tolerance", "5m")
	v.SetDefault("providers.google_analytics.scopes", []string{"https://www.googleapis.com/auth/analytics.readonly"})
	v.SetDefault("providers.google_analytics.auth_url", "https://accounts.google.com/o/oauth2/v2/auth")
	v.SetDefault("providers.google_analytics.token_url", "https://oauth2.googleapis.com/token")
	v.SetDefault("providers.google_analytics.admin_base_url", "https://analyticsadmin.googleapis.com")
	v.SetDefault("providers.google_analytics.data_base_url", "https://analyticsdata.googleapis.com")
	v.SetDefault("sync.timeout", "10m")
	v.SetDefault("sync.interval", "1h")
	v.SetDefault("sync.stale_after", "30m")
	v.SetDefault("sync.scheduler_batch", 20)
	v.SetDefault("sync.scheduler_interval", "1m")
	v.SetDefault("webhooks.delivery_timeout", "10s")
	v.SetDefault("webhooks.poll_interval", "5s")
	v.SetDefault("webhooks.batch_size", 50)
	v.SetDefault("webhooks.lease", "2m")
	v.SetDefault("webhooks.default_max_retries", 3)
	v.SetDefault("webhooks.default_retry_delay_seconds", 60)
	v.SetDefault("webhooks.outcome_cache_ttl", "24h")
	v.SetDefault("webhooks.processing_timeout", "5m")
	v.SetDefault("ratelimit.webhook_per_minute", 600)
	v.SetDefault("ratelimit.api_per_minute", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// CHUB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A config file is optional, env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the secrets the process cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	key, err := hex.DecodeString(c.Encryption.Key)
	if err != nil || len(key) != 32 {
		errs = append(errs, errors.New("encryption.key must be 32 bytes hex-encoded"))
	}
	if c.Webhooks.DefaultMaxRetries < 1 {
		errs = append(errs, errors.New("webhooks.default_max_retries must be at least 1"))
	}
	return errors.Join(errs...)
}
