// Package config reads the API settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins []string
	LogLevel       string
	AccessLog      bool

	// Storage. Empty URLs disable the backend.
	DatabaseURL string
	RedisURL    string
	RabbitMQURL string

	// Completion service
	AIAPIKey      string
	AIBaseURL     string
	AIModel       string
	AITemperature float32
	AIMaxTokens   int
	AITimeout     time.Duration

	// Web search
	FirecrawlAPIKey  string
	FirecrawlBaseURL string
	SearchTimeout    time.Duration
	SearchCacheTTL   time.Duration

	// WhatsApp Cloud API
	WhatsAppToken   string
	WhatsAppPhoneID string
	WhatsAppBaseURL string

	// Kommo CRM
	KommoToken    string
	KommoBaseURL  string
	KommoStatusID int

	// SMTP alerts
	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string
	MailTo       string
	DashboardURL string

	CardThresholds      entity.Thresholds
	PromotionThresholds entity.Thresholds

	SessionTTL           time.Duration
	AIRateLimitPerMinute int
	SeedDemoLeads        bool
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AccessLog:      getEnvBool("HTTP_ACCESS_LOG", true),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		AIAPIKey:      getEnv("AI_API_KEY", ""),
		AIBaseURL:     getEnv("AI_BASE_URL", ""),
		AIModel:       getEnv("AI_MODEL", ""),
		AITemperature: float32(getEnvFloat("AI_TEMPERATURE", 0.7)),
		AIMaxTokens:   getEnvInt("AI_MAX_TOKENS", 0),
		AITimeout:     getEnvDuration("AI_TIMEOUT", 30*time.Second),

		FirecrawlAPIKey:  getEnv("FIRECRAWL_API_KEY", ""),
		FirecrawlBaseURL: getEnv("FIRECRAWL_BASE_URL", ""),
		SearchTimeout:    getEnvDuration("SEARCH_TIMEOUT", 20*time.Second),
		SearchCacheTTL:   getEnvDuration("SEARCH_CACHE_TTL", 6*time.Hour),

		WhatsAppToken:   getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneID: getEnv("WHATSAPP_PHONE_ID", ""),
		WhatsAppBaseURL: getEnv("WHATSAPP_BASE_URL", ""),

		KommoToken:    getEnv("KOMMO_API_TOKEN", ""),
		KommoBaseURL:  getEnv("KOMMO_BASE_URL", ""),
		KommoStatusID: getEnvInt("KOMMO_STATUS_ID", 0),

		MailHost:     getEnv("MAIL_HOST", ""),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUser:     getEnv("MAIL_USER", ""),
		MailPassword: getEnv("MAIL_PASS", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		MailTo:       getEnv("MAIL_TO", ""),
		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:5173"),

		CardThresholds: entity.Thresholds{
			Hot:  getEnvInt("CARD_HOT_THRESHOLD", entity.DefaultCardThresholds.Hot),
			Warm: getEnvInt("CARD_WARM_THRESHOLD", entity.DefaultCardThresholds.Warm),
		},
		PromotionThresholds: entity.Thresholds{
			Hot:  getEnvInt("PROMOTION_HOT_THRESHOLD", entity.DefaultPromotionThresholds.Hot),
			Warm: getEnvInt("PROMOTION_WARM_THRESHOLD", entity.DefaultPromotionThresholds.Warm),
		},

		SessionTTL:           getEnvDuration("SESSION_TTL", 2*time.Hour),
		AIRateLimitPerMinute: getEnvInt("AI_RATE_LIMIT_PER_MINUTE", 20),
		SeedDemoLeads:        getEnvBool("SEED_DEMO_LEADS", true),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
