package config

import (
	"testing"
	"time"

	"golang.org/x/text/currency"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Database.Port != 5432 || cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("Redis.TTL = %s", cfg.Redis.TTL)
	}
	if cfg.RateLimit.Limit != 5 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.Telegram.IdleTimeout != 24*time.Hour {
		t.Errorf("Telegram.IdleTimeout = %s", cfg.Telegram.IdleTimeout)
	}
	if len(cfg.HTTP.TrustedProxies) != 0 || cfg.HTTP.InternalToken != "" {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.DefaultLocale != "en" || cfg.CurrencyUnit() != currency.EUR {
		t.Errorf("locale %q currency %s", cfg.DefaultLocale, cfg.CurrencyUnit())
	}
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DEFAULT_LOCALE", "de")
	t.Setenv("PRICE_CURRENCY", "CHF")
	t.Setenv("DB_HOST", "db")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_IDS", "10,20")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.10")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsDevelopment() {
		t.Error("expected development env")
	}
	if cfg.CurrencyUnit() != currency.CHF {
		t.Errorf("currency = %s", cfg.CurrencyUnit())
	}
	if cfg.Database.Host != "db" || cfg.Redis.Addr != "cache:6379" {
		t.Errorf("hosts = %q %q", cfg.Database.Host, cfg.Redis.Addr)
	}
	if len(cfg.Telegram.AdminIDs) != 2 || cfg.Telegram.AdminIDs[1] != 20 {
		t.Errorf("AdminIDs = %v", cfg.Telegram.AdminIDs)
	}
	if len(cfg.HTTP.TrustedProxies) != 2 || cfg.HTTP.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("TrustedProxies = %v", cfg.HTTP.TrustedProxies)
	}
	if cfg.RateLimit.Window != 2*time.Minute {
		t.Errorf("Window = %s", cfg.RateLimit.Window)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unsupported locale", map[string]string{"DEFAULT_LOCALE": "fr"}},
		{"bad currency", map[string]string{"PRICE_CURRENCY": "XXXX"}},
		{"bad trusted proxy", map[string]string{"HTTP_TRUSTED_PROXIES": "10.0.0.0/33"}},
		{"zero limit", map[string]string{"RATE_LIMIT_LIMIT": "0"}},
		{"telegram without token", map[string]string{"TELEGRAM_ENABLED": "true", "TELEGRAM_ADMIN_IDS": "1"}},
		{"telegram without admins", map[string]string{"TELEGRAM_ENABLED": "true", "TELEGRAM_TOKEN": "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Parse(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
