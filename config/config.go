package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DatabaseURL   string        `env:"DATABASE_URL" env-default:"postgresql://postgres@localhost:5432/timesheet"`
	JWTSecret     string        `env:"JWT_SECRET" env-default:"your-super-secret-key-change-in-production"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" env-default:"24h"`
	ServerPort    string        `env:"SERVER_PORT" env-default:"8080"`
	CORSOrigin    string        `env:"CORS_ORIGIN" env-default:"http://localhost:4200"`

	// Editability policy for timesheet weeks. With past weeks locked, a
	// week closes once its last day has passed; explicit edits of an
	// existing sheet (e.g. fixing a rejection) bypass that lock.
	WeekStartDayRaw string `env:"TIMESHEET_WEEK_START" env-default:"monday"`
	LockPastWeeks   bool   `env:"TIMESHEET_LOCK_PAST_WEEKS" env-default:"true"`
	LockFutureWeeks bool   `env:"TIMESHEET_LOCK_FUTURE_WEEKS" env-default:"false"`

	// Parsed from WeekStartDayRaw in Load.
	WeekStartDay time.Weekday
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	day, err := parseWeekday(cfg.WeekStartDayRaw)
	if err != nil {
		return nil, err
	}
	cfg.WeekStartDay = day

	return &cfg, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid TIMESHEET_WEEK_START %q", name)
}
