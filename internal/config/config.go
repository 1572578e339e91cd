package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/omarhimada/loginsynth/internal/env"
)

type Config struct {
	Start        time.Time
	End          time.Time
	EventsPerDay int
	Seed         int64
	OutFile      string

	MinUsersPerTenant int
	MaxUsersPerTenant int

	// Optional sinks; empty disables them.
	KafkaBrokers []string
	KafkaTopic   string
	PostgresDSN  string
}

// Setup parses flags with env fallbacks. Time flags accept RFC 3339 or plain
// dates; defaults cover the last 7 days.
func Setup() (Config, error) {
	var (
		startFlag   = flag.String("start", "", "Start of the window (RFC3339 or YYYY-MM-DD, UTC); default: 7 days ago")
		endFlag     = flag.String("end", "", "End of the window (RFC3339 or YYYY-MM-DD, UTC); default: now")
		perDay      = flag.Int("events-per-day", env.GetEnvInt("EVENTS_PER_DAY", 2000), "Number of events to synthesize per day of the window")
		seed        = flag.Int64("seed", env.GetEnvInt64("SEED", 123), "Seed for the shared random stream")
		outFile     = flag.String("out", env.GetEnvString("OUT_FILE", "login_events.csv"), "Path of the CSV file to write")
		minUsers    = flag.Int("min-users", env.GetEnvInt("MIN_USERS_PER_TENANT", 40), "Minimum users per tenant")
		maxUsers    = flag.Int("max-users", env.GetEnvInt("MAX_USERS_PER_TENANT", 120), "Maximum users per tenant")
		kafkaURL    = flag.String("kafka", env.GetEnvString("KAFKA_URL", ""), "Kafka brokers (comma separated); empty disables publishing")
		kafkaTopic  = flag.String("topic", env.GetEnvString("KAFKA_TOPIC", "events"), "Kafka topic to publish to")
		postgresDSN = flag.String("postgres", env.GetEnvString("POSTGRES_DSN", ""), "Postgres DSN; empty disables loading")
	)
	flag.Parse()

	now := time.Now().UTC()
	start, err := parseTimeFlag(*startFlag, now.AddDate(0, 0, -7))
	if err != nil {
		return Config{}, fmt.Errorf("parse -start: %w", err)
	}
	end, err := parseTimeFlag(*endFlag, now)
	if err != nil {
		return Config{}, fmt.Errorf("parse -end: %w", err)
	}

	if *perDay < 0 {
		return Config{}, fmt.Errorf("-events-per-day must not be negative, got %d", *perDay)
	}
	if *minUsers <= 0 || *maxUsers < *minUsers {
		return Config{}, fmt.Errorf("invalid user range [%d, %d]", *minUsers, *maxUsers)
	}

	cfg := Config{
		Start:             start,
		End:               end,
		EventsPerDay:      *perDay,
		Seed:              *seed,
		OutFile:           *outFile,
		MinUsersPerTenant: *minUsers,
		MaxUsersPerTenant: *maxUsers,
		KafkaTopic:        *kafkaTopic,
		PostgresDSN:       *postgresDSN,
	}
	if *kafkaURL != "" {
		cfg.KafkaBrokers = strings.Split(*kafkaURL, ",")
	}

	return cfg, nil
}

func parseTimeFlag(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q", value)
	}
	return t.UTC(), nil
}
