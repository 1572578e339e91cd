// Package sink serializes a finished event set for downstream consumers: a
// delimited text file for model training, a Kafka topic for the analysis
// pipeline, and a Postgres table for ad-hoc queries. The core generator
// emits raw field values only; all escaping and encoding happens here.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/omarhimada/loginsynth/internal/event"
)

// Columns is the fixed CSV column order, header row included verbatim.
var Columns = []string{
	"timestamp",
	"tenant_id",
	"user_id",
	"username",
	"user_class",
	"client_id",
	"auth_flow",
	"source_ip",
	"asn",
	"network_type",
	"anonymizing_network",
	"ip_reputation",
	"country",
	"region",
	"city",
	"lat",
	"lon",
	"user_agent_hash",
	"device_id_hash",
	"new_device",
	"policy_id",
	"step_up_required",
	"mfa_method",
	"mfa_outcome_code",
	"mfa_prompt_count",
	"outcome",
	"failure_reason",
	"risk_score",
	"failed_attempts_5m",
	"unique_sources_10m",
	"unique_countries_24h",
	"distinct_usernames_from_source_10m",
	"success_after_failures",
	"minutes_since_last_login",
	"distance_km_from_last_login",
	"attack_type",
}

// HashString32 maps a free-form categorical string (user agent, device id)
// to a compact 32-bit code for the training set.
func HashString32(s string) uint32 {
	return murmur3.Sum32([]byte(s))
}

// MFAOutcomeCode is the fixed numeric encoding of the MFA outcome label.
func MFAOutcomeCode(o event.MFAOutcome) int {
	switch o {
	case event.MFAOutcomeApproved:
		return 1
	case event.MFAOutcomeDenied:
		return 2
	case event.MFAOutcomeTimeout:
		return 3
	default:
		return 0
	}
}

// WriteCSV writes the header row followed by one row per event.
func WriteCSV(w io.Writer, events []event.LoginEvent) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range events {
		if err := cw.Write(Row(e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Row renders one event in Columns order.
func Row(e event.LoginEvent) []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.TenantID,
		e.UserID,
		e.Username,
		string(e.UserClass),
		e.ClientID,
		e.AuthFlow,
		e.SourceIP,
		strconv.Itoa(e.ASN),
		string(e.NetworkType),
		strconv.FormatBool(e.AnonymizingNetwork),
		strconv.Itoa(e.IPReputation),
		e.Country,
		e.Region,
		e.City,
		strconv.FormatFloat(e.Lat, 'f', 4, 64),
		strconv.FormatFloat(e.Lon, 'f', 4, 64),
		strconv.FormatUint(uint64(HashString32(e.UserAgent)), 10),
		strconv.FormatUint(uint64(HashString32(e.DeviceID)), 10),
		strconv.FormatBool(e.NewDevice),
		e.PolicyID,
		strconv.FormatBool(e.StepUpRequired),
		string(e.MFAMethod),
		strconv.Itoa(MFAOutcomeCode(e.MFAOutcome)),
		strconv.Itoa(e.MFAPromptCount),
		string(e.Outcome),
		e.FailureReason,
		strconv.Itoa(e.RiskScore),
		strconv.Itoa(e.FailedAttempts5m),
		strconv.Itoa(e.UniqueSources10m),
		strconv.Itoa(e.UniqueCountries24h),
		strconv.Itoa(e.DistinctUsernamesFromSource10m),
		strconv.FormatBool(e.SuccessAfterFailures),
		strconv.Itoa(e.MinutesSinceLastLogin),
		strconv.Itoa(e.DistanceKmFromLastLogin),
		string(e.AttackType),
	}
}
