package cliparse

import (
	"errors"
	"flag"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string

	// CronSecret guards the reminder endpoint. Empty means unconfigured,
	// in which case every invocation is rejected.
	CronSecret string

	// BaseURL is prepended to links placed in emails.
	BaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	SMTPTimeout  time.Duration

	// RedisURL enables the cross-process run lock when set.
	RedisURL string

	// ScheduleReminders runs the dispatcher in-process every 15 minutes
	// in addition to the HTTP trigger.
	ScheduleReminders bool
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-meet", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in email links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.CronSecret, "cron-secret", "", "Bearer token for cron endpoints (prefer env)")

	fs.BoolVar(&cfg.ScheduleReminders, "schedule", false, "Run the reminder job in-process every 15 minutes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
		}
	}
	if err := ValidateBaseURL(cfg.BaseURL); err != nil {
		return Config{}, err
	}

	// Secrets - admin salt MUST be provided, cron secret may stay unset
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}
	if cfg.CronSecret == "" {
		cfg.CronSecret = os.Getenv("CRON_SECRET")
	}

	if err := LoadDeliveryEnv(&cfg); err != nil {
		return Config{}, err
	}

	if !cfg.ScheduleReminders {
		if v, ok := os.LookupEnv("SCHEDULE_REMINDERS"); ok {
			cfg.ScheduleReminders, _ = strconv.ParseBool(v)
		}
	}

	return cfg, nil
}

// LoadDeliveryEnv fills the mail and Redis settings, which are env only
func LoadDeliveryEnv(cfg *Config) error {
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.MailFrom = os.Getenv("MAIL_FROM")
	if cfg.MailFrom == "" {
		cfg.MailFrom = "noreply@quickly-meet.local"
	}
	cfg.SMTPPort = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return errors.New("invalid SMTP_PORT env variable")
		}
		cfg.SMTPPort = port
	}

	cfg.SMTPTimeout = 0
	if v := os.Getenv("SMTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return errors.New("invalid SMTP_TIMEOUT env variable")
		}
		cfg.SMTPTimeout = timeout
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	return nil
}

// ValidateBaseURL rejects base URLs that would produce broken email links
func ValidateBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return errors.New("invalid BASE_URL: " + err.Error())
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("BASE_URL must be an absolute http(s) URL")
	}
	return nil
}
