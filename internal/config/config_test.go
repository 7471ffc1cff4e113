package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/recruit")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr ':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.UploadDir != "uploads" {
		t.Errorf("Expected UploadDir 'uploads', got '%s'", cfg.UploadDir)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected SessionTTL 24h, got %v", cfg.SessionTTL)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("Expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
	if cfg.QuizAPIURL != "https://api.groq.com/v1/generate" {
		t.Errorf("Unexpected QuizAPIURL %s", cfg.QuizAPIURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when POSTGRES_DSN is missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/recruit")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("QUIZ_API_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.10")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected HTTPAddr ':9090', got '%s'", cfg.HTTPAddr)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("Expected RedisDB 3, got %d", cfg.RedisDB)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("Expected SessionTTL 2h, got %v", cfg.SessionTTL)
	}
	if cfg.QuizAPITimeout != 5*time.Second {
		t.Errorf("Expected QuizAPITimeout 5s, got %v", cfg.QuizAPITimeout)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("Expected RateLimitPerMinute 10, got %d", cfg.RateLimitPerMinute)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Errorf("Unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("Unexpected trusted proxies %v", cfg.TrustedProxies)
	}
	if cfg.TelegramChatID != -100123 {
		t.Errorf("Expected TelegramChatID -100123, got %d", cfg.TelegramChatID)
	}
	if !cfg.Debug {
		t.Error("Expected Debug to be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "redis db", key: "REDIS_DB", val: "x"},
		{name: "session ttl", key: "SESSION_TTL", val: "forever"},
		{name: "rate limit", key: "RATE_LIMIT_PER_MINUTE", val: "many"},
		{name: "debug flag", key: "APP_DEBUG", val: "maybe"},
		{name: "chat id", key: "TELEGRAM_CHAT_ID", val: "chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POSTGRES_DSN", "postgres://localhost/recruit")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s", tt.key, tt.val)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("Error %q should mention %s", err, tt.key)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPAddr:           ":8080",
			PostgresDSN:        "dsn",
			SessionCookieName:  "sid",
			SessionTTL:         time.Hour,
			UploadDir:          "uploads",
			SweepInterval:      time.Hour,
			OrphanGrace:        time.Minute,
			QuizAPIURL:         "http://quiz",
			QuizAPITimeout:     time.Second,
			RateLimitPerMinute: 1,
			LogLevel:           "info",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }},
		{name: "short session ttl", mutate: func(c *Config) { c.SessionTTL = time.Second }},
		{name: "token without chat", mutate: func(c *Config) { c.TelegramToken = "t" }},
		{name: "empty upload dir", mutate: func(c *Config) { c.UploadDir = "" }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.TrustedProxies = []string{"proxy.local"} }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("baseline config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
