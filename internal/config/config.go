package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr         string `envconfig:"ADDR" default:"0.0.0.0:8080"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresDB       string `envconfig:"POSTGRES_DB"`

	// AdminIDs is the fixed administrator allow-list (comma separated).
	AdminIDs []int64 `envconfig:"ADMIN_IDS"`

	VotingOpen     bool   `envconfig:"VOTING_OPEN" default:"true"`
	VotingDeadline string `envconfig:"VOTING_DEADLINE"`

	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"24h"`
	RemindWhenClosed bool          `envconfig:"REMIND_WHEN_CLOSED" default:"true"`

	RequireRegistration bool          `envconfig:"REQUIRE_REGISTRATION" default:"false"`
	SessionTTL          time.Duration `envconfig:"SESSION_TTL" default:"1h"`

	// TransportURL is the chat transport's send endpoint for reminder
	// messages. Empty means reminders only go to the log.
	TransportURL string `envconfig:"TRANSPORT_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	return &cfg, nil
}

// Deadline parses the configured voting deadline, or nil when unset.
func (c *Config) Deadline() (*time.Time, error) {
	if c.VotingDeadline == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, c.VotingDeadline)
	if err != nil {
		return nil, fmt.Errorf("invalid VOTING_DEADLINE: %w", err)
	}
	return &t, nil
}

// ConnString builds the postgres connection string.
func (c *Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}
