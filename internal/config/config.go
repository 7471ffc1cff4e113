package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP
	HTTPAddr           string
	CORSAllowedOrigins []string
	TrustedProxies     []string // empty means X-Forwarded-For is ignored
	Debug              bool

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Sessions
	SessionCookieName   string
	SessionCookieSecure bool
	SessionTTL          time.Duration

	// Uploads
	UploadDir     string
	SweepInterval time.Duration
	OrphanGrace   time.Duration

	// Quiz generation API
	QuizAPIURL     string
	QuizAPIKey     string
	QuizAPITimeout time.Duration
	QuizCacheTTL   time.Duration

	RateLimitPerMinute int

	// Telegram notifications, disabled when the token is empty
	TelegramToken  string
	TelegramChatID int64

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		HTTPAddr:           ":8080",
		RedisAddr:          "localhost:6379",
		SessionCookieName:  "session_id",
		SessionTTL:         24 * time.Hour,
		UploadDir:          "uploads",
		SweepInterval:      time.Hour,
		OrphanGrace:        10 * time.Minute,
		QuizAPIURL:         "https://api.groq.com/v1/generate",
		QuizAPITimeout:     30 * time.Second,
		QuizCacheTTL:       30 * time.Minute,
		RateLimitPerMinute: 120,
		LogLevel:           "info",
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}

	cfg.CORSAllowedOrigins = listEnv("CORS_ALLOWED_ORIGINS")
	cfg.TrustedProxies = listEnv("TRUSTED_PROXIES")

	var err error
	if cfg.Debug, err = boolEnv("APP_DEBUG", cfg.Debug); err != nil {
		return nil, err
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if name := os.Getenv("SESSION_COOKIE_NAME"); name != "" {
		cfg.SessionCookieName = name
	}

	if cfg.SessionCookieSecure, err = boolEnv("SESSION_COOKIE_SECURE", cfg.SessionCookieSecure); err != nil {
		return nil, err
	}

	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}

	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}

	if cfg.SweepInterval, err = durationEnv("SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return nil, err
	}

	if cfg.OrphanGrace, err = durationEnv("ORPHAN_GRACE", cfg.OrphanGrace); err != nil {
		return nil, err
	}

	if url := os.Getenv("QUIZ_API_URL"); url != "" {
		cfg.QuizAPIURL = url
	}

	cfg.QuizAPIKey = os.Getenv("QUIZ_API_KEY")

	if cfg.QuizAPITimeout, err = durationEnv("QUIZ_API_TIMEOUT", cfg.QuizAPITimeout); err != nil {
		return nil, err
	}

	if cfg.QuizCacheTTL, err = durationEnv("QUIZ_CACHE_TTL", cfg.QuizCacheTTL); err != nil {
		return nil, err
	}

	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.RateLimitPerMinute = n
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is empty")
	}

	if c.SessionCookieName == "" {
		return fmt.Errorf("session cookie name is empty")
	}

	if c.SessionTTL < time.Minute {
		return fmt.Errorf("session ttl too small: %v", c.SessionTTL)
	}

	if c.UploadDir == "" {
		return fmt.Errorf("upload dir is empty")
	}

	if c.SweepInterval < time.Minute {
		return fmt.Errorf("sweep interval too small: %v", c.SweepInterval)
	}

	if c.OrphanGrace <= 0 {
		return fmt.Errorf("orphan grace must be positive")
	}

	if c.QuizAPIURL == "" {
		return fmt.Errorf("quiz API url is empty")
	}

	if c.QuizAPITimeout <= 0 {
		return fmt.Errorf("quiz API timeout must be positive")
	}

	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate limit per minute must be at least 1")
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("invalid trusted proxy: %s", p)
			}
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

func listEnv(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
