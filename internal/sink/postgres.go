package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/omarhimada/loginsynth/internal/event"
)

const createLoginEventsTable = `
CREATE TABLE IF NOT EXISTS login_events (
	ts                                 timestamptz NOT NULL,
	tenant_id                          text        NOT NULL,
	user_id                            text        NOT NULL,
	username                           text        NOT NULL,
	user_class                         text        NOT NULL,
	client_id                          text        NOT NULL,
	auth_flow                          text        NOT NULL,
	source_ip                          text        NOT NULL,
	asn                                int         NOT NULL,
	network_type                       text        NOT NULL,
	anonymizing_network                bool        NOT NULL,
	ip_reputation                      int         NOT NULL,
	country                            text        NOT NULL,
	region                             text        NOT NULL,
	city                               text        NOT NULL,
	lat                                float8      NOT NULL,
	lon                                float8      NOT NULL,
	user_agent                         text        NOT NULL,
	device_id                          text        NOT NULL,
	new_device                         bool        NOT NULL,
	policy_id                          text        NOT NULL,
	step_up_required                   bool        NOT NULL,
	mfa_method                         text        NOT NULL,
	mfa_outcome                        text        NOT NULL,
	mfa_prompt_count                   int         NOT NULL,
	outcome                            text        NOT NULL,
	failure_reason                     text        NOT NULL,
	risk_score                         int         NOT NULL,
	failed_attempts_5m                 int         NOT NULL,
	unique_sources_10m                 int         NOT NULL,
	unique_countries_24h               int         NOT NULL,
	distinct_usernames_from_source_10m int         NOT NULL,
	success_after_failures             bool        NOT NULL,
	minutes_since_last_login           int         NOT NULL,
	distance_km_from_last_login        int         NOT NULL,
	attack_type                        text        NOT NULL
)`

var loginEventColumns = []string{
	"ts", "tenant_id", "user_id", "username", "user_class", "client_id",
	"auth_flow", "source_ip", "asn", "network_type", "anonymizing_network",
	"ip_reputation", "country", "region", "city", "lat", "lon", "user_agent",
	"device_id", "new_device", "policy_id", "step_up_required", "mfa_method",
	"mfa_outcome", "mfa_prompt_count", "outcome", "failure_reason",
	"risk_score", "failed_attempts_5m", "unique_sources_10m",
	"unique_countries_24h", "distinct_usernames_from_source_10m",
	"success_after_failures", "minutes_since_last_login",
	"distance_km_from_last_login", "attack_type",
}

// LoadPostgres bulk-loads the finished dataset into the login_events table,
// creating it when missing. Postgres keeps the raw user agent and device id;
// hashing is a CSV concern.
func LoadPostgres(ctx context.Context, dsn string, events []event.LoginEvent, logger *zap.Logger) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, createLoginEventsTable); err != nil {
		return fmt.Errorf("create login_events table: %w", err)
	}

	copied, err := conn.CopyFrom(ctx,
		pgx.Identifier{"login_events"},
		loginEventColumns,
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			e := events[i]
			return []any{
				e.Timestamp.UTC(), e.TenantID, e.UserID, e.Username,
				string(e.UserClass), e.ClientID, e.AuthFlow, e.SourceIP,
				e.ASN, string(e.NetworkType), e.AnonymizingNetwork,
				e.IPReputation, e.Country, e.Region, e.City, e.Lat, e.Lon,
				e.UserAgent, e.DeviceID, e.NewDevice, e.PolicyID,
				e.StepUpRequired, string(e.MFAMethod), string(e.MFAOutcome),
				e.MFAPromptCount, string(e.Outcome), e.FailureReason,
				e.RiskScore, e.FailedAttempts5m, e.UniqueSources10m,
				e.UniqueCountries24h, e.DistinctUsernamesFromSource10m,
				e.SuccessAfterFailures, e.MinutesSinceLastLogin,
				e.DistanceKmFromLastLogin, string(e.AttackType),
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy login_events: %w", err)
	}

	logger.Info("loaded events into postgres", zap.Int64("rows", copied))
	return nil
}
