package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// SolanaConfig holds chain RPC and platform account configuration
type SolanaConfig struct {
	RPCURL string `mapstructure:"rpc_url"`
	// PlatformWallet receives platform fees and minting fees
	PlatformWallet string `mapstructure:"platform_wallet"`
	// MintAuthoritySecret is the base58 private key used as mint authority and
	// fee payer for collection/edition creation. Never signs buyer payments.
	MintAuthoritySecret string `mapstructure:"mint_authority_secret"`
	// USDCMint is the SPL mint address of the accepted stablecoin
	USDCMint string `mapstructure:"usdc_mint"`
	// PlatformFeeBps is the platform cut on every sale (basis points)
	PlatformFeeBps uint16 `mapstructure:"platform_fee_bps"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// FulfillmentConfig holds fulfillment worker tuning
type FulfillmentConfig struct {
	Worker WorkerConfig `mapstructure:"worker"`
	// PollInterval is the sleep between store scans when nothing is pending
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// BatchSize limits purchases fetched per scan
	BatchSize int `mapstructure:"batch_size"`
	// ConfirmationWaitBudget bounds how long a submitted purchase may stay
	// unconfirmed before it is abandoned
	ConfirmationWaitBudget time.Duration `mapstructure:"confirmation_wait_budget"`
}

// ReservationSweeperConfig holds reservation sweeper tuning
type ReservationSweeperConfig struct {
	// ReservationTTL is how long a reserved purchase may sit unsigned before
	// it is reaped into abandoned
	ReservationTTL time.Duration `mapstructure:"reservation_ttl"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
	BatchSize      int           `mapstructure:"batch_size"`
}

// StaleClaimSweeperConfig holds stale fulfillment claim surfacing tuning
type StaleClaimSweeperConfig struct {
	// ClaimTTL is how long a purchase may sit in minting before its claim
	// counts as stale
	ClaimTTL      time.Duration `mapstructure:"claim_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	BatchSize     int           `mapstructure:"batch_size"`
}

// UnlockConfig holds unlock challenge tuning
type UnlockConfig struct {
	ChallengeTTL time.Duration `mapstructure:"challenge_ttl"`
}

// PurchaseConfig holds reservation tuning for the API
type PurchaseConfig struct {
	// ReservationTTL is surfaced to clients as the reservation expiry and
	// must match the sweeper's reservation_ttl
	ReservationTTL time.Duration `mapstructure:"reservation_ttl"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Solana     SolanaConfig   `mapstructure:"solana"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Unlock     UnlockConfig   `mapstructure:"unlock"`
	Purchase   PurchaseConfig `mapstructure:"purchase"`
}

// WorkerCfg holds configuration for the fulfillment worker
type WorkerCfg struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Solana      SolanaConfig      `mapstructure:"solana"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Fulfillment FulfillmentConfig `mapstructure:"fulfillment"`
}

// SweeperCfg holds configuration for the sweeper binary
type SweeperCfg struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig           `mapstructure:"database"`
	Sweeper     ReservationSweeperConfig `mapstructure:"sweeper"`
	StaleClaims StaleClaimSweeperConfig  `mapstructure:"stale_claims"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.platform_fee_bps", 250)
	v.SetDefault("unlock.challenge_ttl", "5m")
	v.SetDefault("purchase.reservation_ttl", "30m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Solana.PlatformWallet == "" {
		return nil, errors.New("solana.platform_wallet is required")
	}

	return &config, nil
}

// LoadWorkerConfig loads configuration for the fulfillment worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerCfg, error) {
	v := configureViper("fulfillment-worker", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.platform_fee_bps", 250)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "PURCHASE_EVENTS")
	v.SetDefault("fulfillment.worker.pool_size", 10)
	v.SetDefault("fulfillment.worker.queue_size", 256)
	v.SetDefault("fulfillment.poll_interval", "5s")
	v.SetDefault("fulfillment.batch_size", 50)
	v.SetDefault("fulfillment.confirmation_wait_budget", "10m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config WorkerCfg
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Solana.MintAuthoritySecret == "" {
		return nil, errors.New("solana.mint_authority_secret is required")
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper binary
func LoadSweeperConfig(configFile string, envPath string) (*SweeperCfg, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("sweeper.reservation_ttl", "30m")
	v.SetDefault("sweeper.sweep_interval", "5m")
	v.SetDefault("sweeper.batch_size", 500)
	v.SetDefault("stale_claims.claim_ttl", "15m")
	v.SetDefault("stale_claims.sweep_interval", "5m")
	v.SetDefault("stale_claims.batch_size", 100)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperCfg
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// readConfig reads the config file, tolerating a missing file (env-only setups)
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("DESPERSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to config struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Solana
		"solana.rpc_url",
		"solana.platform_wallet",
		"solana.mint_authority_secret",
		"solana.usdc_mint",
		"solana.platform_fee_bps",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Unlock
		"unlock.challenge_ttl",
		// Purchase
		"purchase.reservation_ttl",
		// Fulfillment
		"fulfillment.worker.pool_size",
		"fulfillment.worker.queue_size",
		"fulfillment.poll_interval",
		"fulfillment.batch_size",
		"fulfillment.confirmation_wait_budget",
		// Sweeper
		"sweeper.reservation_ttl",
		"sweeper.sweep_interval",
		"sweeper.batch_size",
		"stale_claims.claim_ttl",
		"stale_claims.sweep_interval",
		"stale_claims.batch_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
