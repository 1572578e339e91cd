package synth

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/geo"
	"github.com/omarhimada/loginsynth/internal/registry"
)

// ipQuality is the network tier an archetype sources its traffic from.
type ipQuality int

const (
	ipGood ipQuality = iota
	ipDatacenterMedium
	ipDatacenterBad
)

// Sticky password-spray source: one address gets reused for this many spray
// events before the builder rotates to a fresh one, so the per-source
// distinct-username feature has something to bite on.
const spraySourceReuse = 25

// Risk score contributions. Additive on the archetype base, clamped to
// [0,100] after a 0-10 jitter.
const (
	riskNewDevice     = 15
	riskLowReputation = 20
	riskAdminTarget   = 10
	riskAnonymizing   = 25
)

var botAgents = []string{
	"python-requests/2.31.0",
	"Go-http-client/2.0",
	"curl/8.5.0",
	"okhttp/4.12.0",
	"Mozilla/5.0 (Windows NT 6.1; rv:45.0) Gecko/20100101 Firefox/45.0",
}

// Builder turns a timestamp plus the shared random stream into one raw,
// unenriched login event, one method per behavioral archetype.
type Builder struct {
	faker   *gofakeit.Faker
	reg     *registry.Registry
	catalog *geo.Catalog

	sprayIP   string
	sprayASN  int
	sprayLeft int
}

func NewBuilder(faker *gofakeit.Faker, reg *registry.Registry, catalog *geo.Catalog) *Builder {
	return &Builder{faker: faker, reg: reg, catalog: catalog}
}

type netProfile struct {
	ip          string
	asn         int
	netType     event.NetworkType
	anonymizing bool
	reputation  int
}

func (b *Builder) networkProfile(quality ipQuality) netProfile {
	p := netProfile{ip: b.faker.IPv4Address()}

	switch quality {
	case ipGood:
		p.asn = b.faker.Number(3300, 7100)
		p.netType = event.NetworkResidential
		if b.faker.Float64Range(0, 1) < 0.25 {
			p.netType = event.NetworkMobile
		}
		p.reputation = b.faker.Number(70, 100)
		p.anonymizing = b.faker.Float64Range(0, 1) < 0.002
	case ipDatacenterMedium:
		p.asn = b.faker.Number(14000, 21000)
		p.netType = event.NetworkDatacenter
		p.reputation = b.faker.Number(35, 70)
		p.anonymizing = b.faker.Float64Range(0, 1) < 0.05
	case ipDatacenterBad:
		p.asn = b.faker.Number(39000, 62000)
		p.netType = event.NetworkDatacenter
		if b.faker.Float64Range(0, 1) < 0.4 {
			p.netType = event.NetworkProxy
		}
		p.reputation = b.faker.Number(0, 40)
		p.anonymizing = b.faker.Float64Range(0, 1) < 0.15
	default:
		panic(fmt.Sprintf("synth: unknown ip quality tier %d", quality))
	}

	return p
}

func (b *Builder) riskScore(base int, newDevice bool, reputation int, class event.UserClass, anonymizing bool) int {
	score := base
	if newDevice {
		score += riskNewDevice
	}
	if reputation < 40 {
		score += riskLowReputation
	}
	if class == event.ClassAdmin {
		score += riskAdminTarget
	}
	if anonymizing {
		score += riskAnonymizing
	}
	score += b.faker.Number(0, 10)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// base fills the fields every archetype shares for the chosen user.
func (b *Builder) base(ts time.Time, u *registry.UserState, p netProfile, loc geo.GeoPoint) event.LoginEvent {
	client := b.reg.RandomClient(b.faker)

	policy := "pol-default"
	if u.Class == event.ClassAdmin {
		policy = "pol-admin-stepup"
	}

	return event.LoginEvent{
		Timestamp:          ts,
		TenantID:           u.TenantID,
		UserID:             u.ID,
		Username:           u.Username,
		UserClass:          u.Class,
		ClientID:           client.ID,
		AuthFlow:           client.AuthFlow,
		SourceIP:           p.ip,
		ASN:                p.asn,
		NetworkType:        p.netType,
		AnonymizingNetwork: p.anonymizing,
		IPReputation:       p.reputation,
		Country:            loc.Country,
		Region:             loc.Region,
		City:               loc.City,
		Lat:                loc.Lat,
		Lon:                loc.Lon,
		PolicyID:           policy,
		MFAMethod:          event.MFANone,
		MFAOutcome:         event.MFAOutcomeNone,
	}
}

// Normal is the benign archetype: the user logs in from around home on their
// usual device and nearly always succeeds.
func (b *Builder) Normal(ts time.Time) event.LoginEvent {
	u := b.reg.RandomUser(b.faker)

	loc := b.catalog.Jitter(u.Home)
	if b.faker.Float64Range(0, 1) < 0.07 {
		// Occasional travel.
		loc = b.catalog.WeightedRandom(true)
	}

	p := b.networkProfile(ipGood)
	e := b.base(ts, u, p, loc)
	e.AttackType = event.AttackNone
	e.UserAgent = b.faker.UserAgent()
	e.DeviceID = u.PrimaryDevice
	if b.faker.Float64Range(0, 1) < 0.03 {
		e.DeviceID = "dev-" + b.faker.UUID()
		e.NewDevice = true
	}

	if b.faker.Float64Range(0, 1) < 0.97 {
		e.Outcome = event.OutcomeSuccess
	} else {
		e.Outcome = event.OutcomeFail
		e.FailureReason = "invalid_credentials"
	}

	if b.faker.Float64Range(0, 1) < 0.20 {
		e.StepUpRequired = true
		e.MFAMethod = b.mfaMethod()
		e.MFAPromptCount = 1
		switch draw := b.faker.Float64Range(0, 1); {
		case draw < 0.90:
			e.MFAOutcome = event.MFAOutcomeApproved
		case draw < 0.97:
			e.MFAOutcome = event.MFAOutcomeDenied
		default:
			e.MFAOutcome = event.MFAOutcomeTimeout
		}
		if e.MFAOutcome != event.MFAOutcomeApproved {
			e.Outcome = event.OutcomeFail
			e.FailureReason = "mfa_" + string(e.MFAOutcome)
		}
	}

	e.RiskScore = b.riskScore(5, e.NewDevice, p.reputation, u.Class, p.anonymizing)
	return e
}

// CredentialStuffing replays breached credential pairs against random
// victims from throwaway datacenter infrastructure.
func (b *Builder) CredentialStuffing(ts time.Time) event.LoginEvent {
	u := b.reg.RandomUser(b.faker)

	p := b.networkProfile(ipDatacenterBad)
	e := b.base(ts, u, p, b.catalog.WeightedRandom(false))
	e.AttackType = event.AttackCredentialStuffing
	e.UserAgent = b.faker.RandomString(botAgents)
	e.DeviceID = "dev-" + b.faker.UUID()
	e.NewDevice = true

	if b.faker.Float64Range(0, 1) < 0.05 {
		e.Outcome = event.OutcomeSuccess
	} else {
		e.Outcome = event.OutcomeFail
		e.FailureReason = "invalid_credentials"
	}

	e.RiskScore = b.riskScore(45, true, p.reputation, u.Class, p.anonymizing)
	return e
}

// PasswordSpray tries one common password across many accounts from a source
// address that sticks around for a batch of attempts.
func (b *Builder) PasswordSpray(ts time.Time) event.LoginEvent {
	u := b.reg.RandomUser(b.faker)

	p := b.networkProfile(ipDatacenterMedium)
	if b.sprayLeft <= 0 {
		b.sprayIP = p.ip
		b.sprayASN = p.asn
		b.sprayLeft = spraySourceReuse
	}
	p.ip = b.sprayIP
	p.asn = b.sprayASN
	b.sprayLeft--

	e := b.base(ts, u, p, b.catalog.WeightedRandom(false))
	e.AttackType = event.AttackPasswordSpray
	e.UserAgent = b.faker.RandomString(botAgents)
	e.DeviceID = "dev-" + b.faker.UUID()
	e.NewDevice = true

	if b.faker.Float64Range(0, 1) < 0.02 {
		e.Outcome = event.OutcomeSuccess
	} else {
		e.Outcome = event.OutcomeFail
		e.FailureReason = "invalid_credentials"
	}

	e.RiskScore = b.riskScore(40, true, p.reputation, u.Class, p.anonymizing)
	return e
}

// AccountTakeover models a post-compromise login: half the time from an
// implausibly distant location, and always through a barrage of MFA prompts
// hoping the victim eventually approves one.
func (b *Builder) AccountTakeover(ts time.Time) event.LoginEvent {
	u := b.reg.RandomUser(b.faker)

	var loc geo.GeoPoint
	var label event.AttackType
	if b.faker.Float64Range(0, 1) < 0.5 {
		loc = b.catalog.FarFrom(u.Home, 3000)
		label = event.AttackImpossibleTravel
	} else {
		loc = b.catalog.WeightedRandom(false)
		label = event.AttackMFAFatigue
	}

	p := b.networkProfile(ipDatacenterBad)
	e := b.base(ts, u, p, loc)
	e.AttackType = label
	e.UserAgent = b.faker.UserAgent()
	e.DeviceID = "dev-" + b.faker.UUID()
	e.NewDevice = true

	// The credential is already compromised, so the password stage passes
	// and everything rides on the MFA barrage.
	e.StepUpRequired = true
	e.MFAMethod = event.MFAPush
	e.MFAPromptCount = b.faker.Number(3, 9)
	if b.faker.Float64Range(0, 1) < 0.30 {
		e.MFAOutcome = event.MFAOutcomeApproved
		e.Outcome = event.OutcomeSuccess
	} else {
		if b.faker.Float64Range(0, 1) < 0.6 {
			e.MFAOutcome = event.MFAOutcomeDenied
		} else {
			e.MFAOutcome = event.MFAOutcomeTimeout
		}
		e.Outcome = event.OutcomeFail
		e.FailureReason = "mfa_" + string(e.MFAOutcome)
	}

	e.RiskScore = b.riskScore(55, true, p.reputation, u.Class, p.anonymizing)
	return e
}

func (b *Builder) mfaMethod() event.MFAMethod {
	switch draw := b.faker.Float64Range(0, 1); {
	case draw < 0.6:
		return event.MFAPush
	case draw < 0.85:
		return event.MFATOTP
	default:
		return event.MFASMS
	}
}
