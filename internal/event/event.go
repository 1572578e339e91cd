// Package event defines the login event record shared by the builders, the
// enricher and the downstream sinks.
package event

import "time"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
)

type UserClass string

const (
	ClassAdmin    UserClass = "admin"
	ClassCustomer UserClass = "customer"
)

type NetworkType string

const (
	NetworkResidential NetworkType = "residential"
	NetworkMobile      NetworkType = "mobile"
	NetworkDatacenter  NetworkType = "datacenter"
	NetworkProxy       NetworkType = "proxy"
)

type MFAMethod string

const (
	MFANone MFAMethod = "none"
	MFAPush MFAMethod = "push"
	MFATOTP MFAMethod = "totp"
	MFASMS  MFAMethod = "sms"
)

type MFAOutcome string

const (
	MFAOutcomeNone     MFAOutcome = "none"
	MFAOutcomeApproved MFAOutcome = "approved"
	MFAOutcomeDenied   MFAOutcome = "denied"
	MFAOutcomeTimeout  MFAOutcome = "timeout"
)

// AttackType is the training label attached to every generated event.
type AttackType string

const (
	AttackNone               AttackType = "none"
	AttackCredentialStuffing AttackType = "credential-stuffing"
	AttackPasswordSpray      AttackType = "password-spray"
	AttackImpossibleTravel   AttackType = "impossible-travel"
	AttackMFAFatigue         AttackType = "mfa-fatigue"
)

// LoginEvent is one synthesized authentication attempt. The rolling feature
// fields stay zero until the enricher fills them in; everything else is set
// by an archetype builder and treated as immutable afterwards.
type LoginEvent struct {
	Timestamp time.Time `json:"timestamp"`

	// Identity
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	UserClass UserClass `json:"user_class"`
	ClientID  string    `json:"client_id"`
	AuthFlow  string    `json:"auth_flow"`

	// Context
	SourceIP           string      `json:"source_ip"`
	ASN                int         `json:"asn"`
	NetworkType        NetworkType `json:"network_type"`
	AnonymizingNetwork bool        `json:"anonymizing_network"`
	IPReputation       int         `json:"ip_reputation"`
	Country            string      `json:"country"`
	Region             string      `json:"region"`
	City               string      `json:"city"`
	Lat                float64     `json:"lat"`
	Lon                float64     `json:"lon"`
	UserAgent          string      `json:"user_agent"`
	DeviceID           string      `json:"device_id"`
	NewDevice          bool        `json:"new_device"`

	// Authentication outcome
	PolicyID       string     `json:"policy_id"`
	StepUpRequired bool       `json:"step_up_required"`
	MFAMethod      MFAMethod  `json:"mfa_method"`
	MFAOutcome     MFAOutcome `json:"mfa_outcome"`
	MFAPromptCount int        `json:"mfa_prompt_count"`
	Outcome        Outcome    `json:"outcome"`
	FailureReason  string     `json:"failure_reason"`
	RiskScore      int        `json:"risk_score"`
	AttackType     AttackType `json:"attack_type"`

	// Rolling features, filled by the enricher from prior history only.
	FailedAttempts5m               int  `json:"failed_attempts_5m"`
	UniqueSources10m               int  `json:"unique_sources_10m"`
	UniqueCountries24h             int  `json:"unique_countries_24h"`
	DistinctUsernamesFromSource10m int  `json:"distinct_usernames_from_source_10m"`
	SuccessAfterFailures           bool `json:"success_after_failures"`
	MinutesSinceLastLogin          int  `json:"minutes_since_last_login"`
	DistanceKmFromLastLogin        int  `json:"distance_km_from_last_login"`
}
