package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	// Owner login. The twin serves a single owner; there is no user
	// registration flow. OwnerPasswordHash is a bcrypt hash.
	OwnerEmail        string `mapstructure:"OWNER_EMAIL"`
	OwnerPasswordHash string `mapstructure:"OWNER_PASSWORD_HASH"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Mongo configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisAIContextDB     int    `mapstructure:"REDIS_AI_CONTEXT_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling engine configuration.
	ScheduleStartHour   int    `mapstructure:"SCHEDULE_START_HOUR"`
	ScheduleEndHour     int    `mapstructure:"SCHEDULE_END_HOUR"`
	ScheduleWorkDays    string `mapstructure:"SCHEDULE_WORK_DAYS"`
	ScheduleMaxDays     int    `mapstructure:"SCHEDULE_MAX_DAYS"`
	ScheduleStepMinutes int    `mapstructure:"SCHEDULE_STEP_MINUTES"`
	ReminderLeadMinutes int    `mapstructure:"REMINDER_LEAD_MINUTES"`

	// LLM providers, in fallback order: Ollama first, then OpenAI, then Gemini.
	OllamaURL    string `mapstructure:"OLLAMA_URL"`
	OllamaModel  string `mapstructure:"OLLAMA_MODEL"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Google Calendar.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Extra read-only busy sources (comma-separated ICS feed URLs).
	ICSFeedURLs string `mapstructure:"ICS_FEED_URLS"`

	// IMAP mailbox.
	IMAPHost     string `mapstructure:"IMAP_HOST"`
	IMAPPort     int    `mapstructure:"IMAP_PORT"`
	IMAPUsername string `mapstructure:"IMAP_USERNAME"`
	IMAPPassword string `mapstructure:"IMAP_PASSWORD"`
	IMAPMailbox  string `mapstructure:"IMAP_MAILBOX"`
	IMAPPollSpec string `mapstructure:"IMAP_POLL_SPEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "twinmind")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_AI_CONTEXT_DB", 2)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("SCHEDULE_START_HOUR", 9)
	viper.SetDefault("SCHEDULE_END_HOUR", 17)
	viper.SetDefault("SCHEDULE_WORK_DAYS", "1,2,3,4,5")
	viper.SetDefault("SCHEDULE_MAX_DAYS", 14)
	viper.SetDefault("SCHEDULE_STEP_MINUTES", 30)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 15)
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.1")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("ICS_FEED_URLS", "")
	viper.SetDefault("IMAP_HOST", "")
	viper.SetDefault("IMAP_PORT", 993)
	viper.SetDefault("IMAP_MAILBOX", "INBOX")
	viper.SetDefault("IMAP_POLL_SPEC", "@every 5m")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
