package config

import (
	"os"
	"strconv"
	"strings"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreSupabase = "supabase"
	StoreDynamo   = "dynamo"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once in main and passed explicitly to every constructor.
type Config struct {
	AppPort string
	AppEnv  string

	LogLevel  string
	LogFormat string

	AllowedOrigins []string // CORS allowed origins
	RateLimitRPS   float64  // 0 disables the subscribe rate limiter
	RateLimitBurst int

	StoreBackend  string
	SupabaseURL   string
	SupabaseKey   string
	SupabaseTable string

	AWSRegion        string
	AWSEndpointURL   string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID   string
	AWSSecretKey     string
	SubscribersTable string

	ResendAPIKey      string
	ResendBaseURL     string
	EmailFrom         string
	EmailSubject      string
	EmailTemplatePath string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	SNSTopicARN string

	MetricsEnabled bool
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:   getEnv("APP_PORT", "3000"),
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreSupabase)),
		SupabaseURL:   strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:   getEnv("SUPABASE_KEY", ""),
		SupabaseTable: getEnv("SUPABASE_TABLE", "subscribers"),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:   getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:   getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SubscribersTable: getEnv("DYNAMO_TABLE_SUBSCRIBERS", "subscribers"),

		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:     strings.TrimRight(getEnv("RESEND_BASE_URL", "https://api.resend.com"), "/"),
		EmailFrom:         getEnv("EMAIL_FROM", "onboarding@resend.dev"),
		EmailSubject:      getEnv("EMAIL_SUBJECT", "Welcome to the waitlist"),
		EmailTemplatePath: getEnv("EMAIL_TEMPLATE_PATH", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// SupabaseConfigured reports whether both the store URL and key are present.
func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
