package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// WalletCredentials identifies one LNbits wallet and the admin key used to read it
type WalletCredentials struct {
	ID       string `validate:"required"`
	AdminKey string `validate:"required"`
}

// Config holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	Env           string
	HTTPHost      string
	HTTPPort      string              `validate:"required,numeric"`
	PaycodeID     string              `validate:"required"`
	LNbitsURL     string              `validate:"required,url"`
	Wallets       []WalletCredentials `validate:"len=2,dive"`
	DBPath        string              `validate:"required"`
	LogFile       string
	LogLevel      string
	SettleDelay   time.Duration `validate:"gte=0"`
	WalletTimeout time.Duration `validate:"gt=0"`
	AsyncRefresh  bool
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTPHost, c.HTTPPort)
}

// IsDev reports whether the service runs in development mode
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.Env, "dev")
}

// rawConfig mirrors the flat environment variables
type rawConfig struct {
	AppEnv              string        `mapstructure:"app_env"`
	HTTPHost            string        `mapstructure:"http_host"`
	HTTPPort            string        `mapstructure:"http_port"`
	PaycodeID           string        `mapstructure:"paycode_id"`
	LNbitsURL           string        `mapstructure:"lnbits_url"`
	Wallet1ID           string        `mapstructure:"wallet_1_id"`
	Wallet1AdminKey     string        `mapstructure:"wallet_1_adminkey"`
	Wallet2ID           string        `mapstructure:"wallet_2_id"`
	Wallet2AdminKey     string        `mapstructure:"wallet_2_adminkey"`
	DBPath              string        `mapstructure:"db_path"`
	LogFile             string        `mapstructure:"log_file"`
	LogLevel            string        `mapstructure:"log_level"`
	SettleDelay         time.Duration `mapstructure:"settle_delay"`
	WalletAPITimeout    time.Duration `mapstructure:"wallet_api_timeout"`
	AsyncBalanceRefresh bool          `mapstructure:"async_balance_refresh"`
}

// LoadConfig loads configuration from the environment, reading a .env file first if one exists
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", "production")
	v.SetDefault("http_host", "127.0.0.1")
	v.SetDefault("http_port", "5013")
	v.SetDefault("db_path", "paycodes.db")
	v.SetDefault("log_file", "webhook.log")
	v.SetDefault("log_level", "debug")
	v.SetDefault("settle_delay", "10s")
	v.SetDefault("wallet_api_timeout", "10s")
	v.SetDefault("async_balance_refresh", false)

	// required keys have no default, so they must be bound for Unmarshal to see them
	for _, key := range []string{
		"paycode_id",
		"lnbits_url",
		"wallet_1_id",
		"wallet_1_adminkey",
		"wallet_2_id",
		"wallet_2_adminkey",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %v", key, err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %v", err)
	}

	config := &Config{
		Env:       raw.AppEnv,
		HTTPHost:  raw.HTTPHost,
		HTTPPort:  raw.HTTPPort,
		PaycodeID: raw.PaycodeID,
		LNbitsURL: strings.TrimRight(raw.LNbitsURL, "/"),
		Wallets: []WalletCredentials{
			{ID: raw.Wallet1ID, AdminKey: raw.Wallet1AdminKey},
			{ID: raw.Wallet2ID, AdminKey: raw.Wallet2AdminKey},
		},
		DBPath:        raw.DBPath,
		LogFile:       raw.LogFile,
		LogLevel:      raw.LogLevel,
		SettleDelay:   raw.SettleDelay,
		WalletTimeout: raw.WalletAPITimeout,
		AsyncRefresh:  raw.AsyncBalanceRefresh,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for missing or malformed values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
