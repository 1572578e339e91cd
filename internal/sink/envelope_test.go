package sink_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/sink"
)

func TestWrapEvent_ProducesValidEnvelope(t *testing.T) {
	e := sampleEvent()

	envelope, err := sink.WrapEvent(e, "loginsynth", "run-42")
	require.NoError(t, err)

	assert.Equal(t, sink.SpecVersionV1, envelope.SpecVersion)
	assert.Equal(t, sink.DomainAuthLogin, envelope.Domain)
	assert.Equal(t, "login", envelope.EventType)
	assert.Equal(t, "loginsynth", envelope.Source)
	assert.Equal(t, e.Timestamp, envelope.Timestamp)
	assert.Equal(t, "run-42", envelope.Correlation["run_id"])
	assert.NoError(t, envelope.Validate())

	var decoded event.LoginEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &decoded))
	assert.Equal(t, e.UserID, decoded.UserID)
	assert.Equal(t, e.Outcome, decoded.Outcome)
}

func TestEnvelope_ValidateRejectsIncomplete(t *testing.T) {
	envelope, err := sink.WrapEvent(sampleEvent(), "loginsynth", "run-42")
	require.NoError(t, err)

	missingDomain := envelope
	missingDomain.Domain = ""
	assert.Error(t, missingDomain.Validate())

	missingPayload := envelope
	missingPayload.Payload = nil
	assert.Error(t, missingPayload.Validate())
}
