package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"golang.org/x/text/currency"

	"dentalsite/internal/catalog"
)

type Config struct {
	Env           string `env:"APP_ENV" envDefault:"production"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	Currency      string `env:"PRICE_CURRENCY" envDefault:"EUR"`
	APIBaseURL    string `env:"API_BASE_URL"`

	HTTP      HTTP      `envPrefix:"HTTP_"`
	Database  Database  `envPrefix:"DB_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	Telegram  Telegram  `envPrefix:"TELEGRAM_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the remote address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	// InternalToken lets the standalone bot submit forms on behalf of a chat.
	InternalToken  string   `env:"INTERNAL_TOKEN"`
}

type Database struct {
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER" envDefault:"postgres"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME" envDefault:"dentalsite"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

type Redis struct {
	Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

type Telegram struct {
	Token    string  `env:"TOKEN"`
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`
	Enabled  bool    `env:"ENABLED" envDefault:"false"`

	// IdleTimeout evicts in-memory wizards of quiet chats.
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"24h"`
}

type RateLimit struct {
	Limit  int           `env:"LIMIT" envDefault:"5"`
	Window time.Duration `env:"WINDOW" envDefault:"60s"`
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// CurrencyUnit returns the configured ISO 4217 currency.
func (c Config) CurrencyUnit() currency.Unit {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.EUR
	}
	return unit
}

// Load reads the optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Parse()
}

// Parse builds the config from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if !catalog.IsSupportedLocale(c.DefaultLocale) {
		return fmt.Errorf("unsupported DEFAULT_LOCALE %q", c.DefaultLocale)
	}
	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("invalid PRICE_CURRENCY %q: %w", c.Currency, err)
	}
	for _, proxy := range c.HTTP.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("invalid HTTP_TRUSTED_PROXIES entry %q", proxy)
		}
	}
	if c.RateLimit.Limit <= 0 {
		return fmt.Errorf("RATE_LIMIT_LIMIT must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Telegram.Enabled {
		if c.Telegram.Token == "" {
			return fmt.Errorf("TELEGRAM_TOKEN is required when TELEGRAM_ENABLED is set")
		}
		if len(c.Telegram.AdminIDs) == 0 {
			return fmt.Errorf("at least one admin ID is required")
		}
	}
	return nil
}

func validProxy(proxy string) bool {
	if strings.Contains(proxy, "/") {
		_, _, err := net.ParseCIDR(proxy)
		return err == nil
	}
	return net.ParseIP(proxy) != nil
}
