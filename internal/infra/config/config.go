package config

import (
	"context"
	"fmt"
	"strings" // For weekday normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	LogLevel    string         `env:"LOG_LEVEL, default=info"`
	Environment string         `env:"ENVIRONMENT, default=development"`
	Database    DatabaseConfig `env:", prefix=DB_"`
	Portal      PortalConfig   `env:", prefix=PORTAL_"`
	Schedule    ScheduleConfig `env:", prefix=SCHEDULE_"`
	Notify      NotifyConfig   `env:", prefix=NOTIFY_"`
}

type DatabaseConfig struct {
	Driver  string        `env:"DRIVER, default=sqlite3"` // sqlite3 or postgres
	DSN     string        `env:"DSN, default=punchclock.db"`
	Timeout time.Duration `env:"TIMEOUT, default=10s"`
}

type PortalConfig struct {
	Driver       string            `env:"DRIVER, default=dryrun"`
	CompanyCode  string            `env:"COMPANY_CODE"`
	Username     string            `env:"USERNAME"`
	Password     string            `env:"PASSWORD"`
	LoginURL     string            `env:"LOGIN_URL"`
	BaseURL      string            `env:"BASE_URL"`
	ImplicitWait time.Duration     `env:"IMPLICIT_WAIT, default=10s"`
	Timeout      time.Duration     `env:"TIMEOUT, default=2m"`
	Questions    map[string]string `env:"SECRET_QUESTIONS, delimiter=;"` // question:answer;question:answer
	LeaveDays    []string          `env:"DRYRUN_LEAVE_DAYS"`            // YYYY-MM-DD dates the dry-run portal reports as approved leave
}

type ScheduleConfig struct {
	StartHour    int           `env:"START_HOUR, required"`
	TickInterval time.Duration `env:"TICK_INTERVAL, default=1m"`
	IdleInterval time.Duration `env:"IDLE_INTERVAL, default=5m"`
	DigestCron   string        `env:"DIGEST_CRON, default=30 23 * * *"` // Empty disables the digest

	LunchStartAfter     time.Duration `env:"LUNCH_START_AFTER, default=4h"`
	LunchStartJitterMin time.Duration `env:"LUNCH_START_JITTER_MIN, default=1m"`
	LunchStartJitterMax time.Duration `env:"LUNCH_START_JITTER_MAX, default=30m"`
	LunchEndAfter       time.Duration `env:"LUNCH_END_AFTER, default=0s"`
	LunchEndJitterMin   time.Duration `env:"LUNCH_END_JITTER_MIN, default=31m"`
	LunchEndJitterMax   time.Duration `env:"LUNCH_END_JITTER_MAX, default=35m"`
	ClockOutAfter       time.Duration `env:"CLOCK_OUT_AFTER, default=8h"`
	ClockOutJitterMin   time.Duration `env:"CLOCK_OUT_JITTER_MIN, default=40m"`
	ClockOutJitterMax   time.Duration `env:"CLOCK_OUT_JITTER_MAX, default=45m"`

	// Must be last: the default holds a comma.
	WeekendDays []string `env:"WEEKEND_DAYS, default=saturday,sunday"`
}

type NotifyConfig struct {
	Transport     string        `env:"TRANSPORT, default=console"` // telegram, email or console
	MinLevel      string        `env:"MIN_LEVEL, default=info"`
	Timeout       time.Duration `env:"TIMEOUT, default=30s"`
	TelegramToken string        `env:"TELEGRAM_TOKEN"`
	TelegramChat  int64         `env:"TELEGRAM_CHAT_ID"`
	EmailAPIKey   string        `env:"EMAIL_API_KEY"`
	EmailFrom     string        `env:"EMAIL_FROM"`
	EmailTo       string        `env:"EMAIL_TO"` // Usually an SMS gateway address
}

// Load reads configuration from environment variables and .env file (if present).
func Load(ctx context.Context) (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	return loadFrom(ctx, envconfig.OsLookuper())
}

func loadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check on its own.
func (c *AppConfig) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: want sqlite3 or postgres", c.Database.Driver)
	}

	s := c.Schedule
	if s.StartHour < 0 || s.StartHour > 23 {
		return fmt.Errorf("invalid SCHEDULE_START_HOUR %d: want 0-23", s.StartHour)
	}
	if s.TickInterval <= 0 || s.IdleInterval <= 0 {
		return fmt.Errorf("SCHEDULE_TICK_INTERVAL and SCHEDULE_IDLE_INTERVAL must be positive")
	}
	jitters := []struct {
		name     string
		min, max time.Duration
	}{
		{"LUNCH_START", s.LunchStartJitterMin, s.LunchStartJitterMax},
		{"LUNCH_END", s.LunchEndJitterMin, s.LunchEndJitterMax},
		{"CLOCK_OUT", s.ClockOutJitterMin, s.ClockOutJitterMax},
	}
	for _, j := range jitters {
		if j.min < 0 || j.max < j.min {
			return fmt.Errorf("invalid SCHEDULE_%s jitter range %s..%s", j.name, j.min, j.max)
		}
		// Jitter is drawn in whole minutes.
		if j.min%time.Minute != 0 || j.max%time.Minute != 0 {
			return fmt.Errorf("invalid SCHEDULE_%s jitter range %s..%s: want whole minutes", j.name, j.min, j.max)
		}
	}
	if _, err := c.Weekend(); err != nil {
		return err
	}

	switch c.Notify.Transport {
	case "telegram", "email", "console":
	default:
		return fmt.Errorf("invalid NOTIFY_TRANSPORT %q: want telegram, email or console", c.Notify.Transport)
	}

	if c.Portal.Driver != "dryrun" {
		return fmt.Errorf("invalid PORTAL_DRIVER %q: only dryrun is built in", c.Portal.Driver)
	}
	return nil
}

// Weekend returns the configured non-work weekdays.
func (c *AppConfig) Weekend() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(c.Schedule.WeekendDays))
	for _, name := range c.Schedule.WeekendDays {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}
