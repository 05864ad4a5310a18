package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Network   NetworkConfig   `mapstructure:"network"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Session   SessionConfig   `mapstructure:"session"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cascade   CascadeConfig   `mapstructure:"cascade"`
	Exclusion ExclusionConfig `mapstructure:"exclusion"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"` // debug, release, test
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ResponseBudget time.Duration `mapstructure:"response_budget"` // max wait for a complete listing aggregate
}

// NetworkConfig selects the ledger network and the deployed marketplace package.
type NetworkConfig struct {
	Name           string `mapstructure:"name"` // devnet, testnet, mainnet
	DevnetPackage  string `mapstructure:"devnet_package"`
	TestnetPackage string `mapstructure:"testnet_package"`
	MainnetPackage string `mapstructure:"mainnet_package"`
	MarketplaceID  string `mapstructure:"marketplace_id"`
	Module         string `mapstructure:"module"`
}

// PackageID returns the package id deployed on the selected network.
func (n NetworkConfig) PackageID() string {
	switch n.Name {
	case "devnet":
		return n.DevnetPackage
	case "mainnet":
		return n.MainnetPackage
	default:
		return n.TestnetPackage
	}
}

type LedgerConfig struct {
	RPCURL            string        `mapstructure:"rpc_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	EventLimit        int           `mapstructure:"event_limit"`
	MaxPages          int           `mapstructure:"max_pages"`
	FinalityTimeout   time.Duration `mapstructure:"finality_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
}

type WalletConfig struct {
	BridgeURL string `mapstructure:"bridge_url"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
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
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CascadeConfig holds the wait before each refetch attempt after a confirmed action.
type CascadeConfig struct {
	Intervals []time.Duration `mapstructure:"intervals"`
}

type ExclusionConfig struct {
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"` // redis only
}

type CacheConfig struct {
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
}

type WebhookConfig struct {
	URL    string `mapstructure:"url"`
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SEM_ (Shared Energy Market).
// Nested keys use underscore: SEM_NETWORK_MARKETPLACE_ID, SEM_LEDGER_RPC_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.response_budget", "3s")
	v.SetDefault("network.name", "testnet")
	v.SetDefault("network.devnet_package", "0x60cc7119c2418cd870138e9df1acd0f36bafd760a524b532575cdef1911d23cb")
	v.SetDefault("network.testnet_package", "0x9187c7614b1f37c7dd40bda30af567a50eaac7f138b4988eb753c84748323552")
	v.SetDefault("network.mainnet_package", "")
	v.SetDefault("network.marketplace_id", "")
	v.SetDefault("network.module", "marketplace")
	v.SetDefault("ledger.rpc_url", "https://api.testnet.iota.cafe")
	v.SetDefault("ledger.requests_per_second", 20)
	v.SetDefault("ledger.burst", 10)
	v.SetDefault("ledger.event_limit", 200)
	v.SetDefault("ledger.max_pages", 5)
	v.SetDefault("ledger.finality_timeout", "60s")
	v.SetDefault("ledger.poll_interval", "1s")
	v.SetDefault("wallet.bridge_url", "http://127.0.0.1:8645")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.expiry", "12h")
	v.SetDefault("session.issuer", "energy-marketplace")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "energy_marketplace")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cascade.intervals", []string{"500ms", "1s", "2s", "4s", "8s"})
	v.SetDefault("exclusion.capacity", 1024)
	v.SetDefault("exclusion.ttl", "24h")
	v.SetDefault("cache.snapshot_ttl", "15s")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SEM_LEDGER_RPC_URL -> ledger.rpc_url
	v.SetEnvPrefix("SEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
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
