package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/omarhimada/loginsynth/internal/event"
)

const (
	SpecVersionV1   = "1.0"
	DomainAuthLogin = "auth_login"
)

// Envelope is the wire format published to Kafka, matching what the
// downstream analysis consumers expect.
type Envelope struct {
	SpecVersion string            `json:"spec_version"`
	Domain      string            `json:"domain"`
	EventType   string            `json:"event_type"`
	Source      string            `json:"source"`
	Timestamp   time.Time         `json:"timestamp"`
	Correlation map[string]string `json:"correlation,omitempty"`
	Payload     json.RawMessage   `json:"payload"`
}

func (e Envelope) Validate() error {
	if e.SpecVersion == "" {
		return errors.New("spec_version is required")
	}
	if e.Domain == "" {
		return errors.New("domain is required")
	}
	if e.EventType == "" {
		return errors.New("event_type is required")
	}
	if len(e.Payload) == 0 {
		return errors.New("payload is required")
	}
	return nil
}

// WrapEvent packs one login event into an envelope correlated to this run.
func WrapEvent(e event.LoginEvent, source, runID string) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}

	envelope := Envelope{
		SpecVersion: SpecVersionV1,
		Domain:      DomainAuthLogin,
		EventType:   "login",
		Source:      source,
		Timestamp:   e.Timestamp.UTC(),
		Correlation: map[string]string{"run_id": runID},
		Payload:     payload,
	}

	if err := envelope.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("invalid envelope: %w", err)
	}
	return envelope, nil
}
