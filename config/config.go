package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Mail delivery.
	MailProvider string `mapstructure:"MAIL_PROVIDER"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	AdminEmails  string `mapstructure:"ADMIN_EMAILS"`
	AlwaysBCC    string `mapstructure:"ALWAYS_BCC"`
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`

	// Google Calendar.
	GoogleCalendarEnabled bool   `mapstructure:"GOOGLE_CALENDAR_ENABLED"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleImpersonate     string `mapstructure:"GOOGLE_IMPERSONATE"`

	// Consultations.
	BusinessTimezone    string        `mapstructure:"BUSINESS_TIMEZONE"`
	ConsultationMinutes int           `mapstructure:"CONSULTATION_MINUTES"`
	ReminderLead        time.Duration `mapstructure:"REMINDER_LEAD"`
	MeetLinkTTL         time.Duration `mapstructure:"MEET_LINK_TTL"`
}

const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
	MailProviderLog    = "log"
)

// LoadConfig reads config.yaml (if any), a local .env file (if any) and the
// process environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 60)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("MAIL_PROVIDER", MailProviderLog)
	v.SetDefault("MAIL_FROM", "hello@webcraft.dev")
	v.SetDefault("ADMIN_EMAILS", "")
	v.SetDefault("ALWAYS_BCC", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("GOOGLE_CALENDAR_ENABLED", false)
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	v.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	v.SetDefault("GOOGLE_IMPERSONATE", "")
	v.SetDefault("BUSINESS_TIMEZONE", "UTC")
	v.SetDefault("CONSULTATION_MINUTES", 30)
	v.SetDefault("REMINDER_LEAD", 24*time.Hour)
	v.SetDefault("MEET_LINK_TTL", 30*24*time.Hour)
}

// Validate checks that the selected providers have what they need.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	switch c.MailProvider {
	case MailProviderSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when MAIL_PROVIDER=smtp")
		}
	case MailProviderResend:
		if c.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when MAIL_PROVIDER=resend")
		}
	case MailProviderLog:
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider)
	}
	if c.GoogleCalendarEnabled && c.GoogleCredentialsFile == "" {
		return fmt.Errorf("GOOGLE_CREDENTIALS_FILE is required when GOOGLE_CALENDAR_ENABLED=true")
	}
	if _, err := time.LoadLocation(c.BusinessTimezone); err != nil {
		return fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	if c.ConsultationMinutes <= 0 {
		return fmt.Errorf("CONSULTATION_MINUTES must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the business timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SplitList turns a comma separated value into trimmed, non-empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
