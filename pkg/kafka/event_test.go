package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	data := map[string]string{"firstName": "Ana"}

	ev, err := NewEvent("contact.created", "64a1", "contact", "phonebook", data)
	require.NoError(t, err)

	_, err = uuid.Parse(ev.EventID)
	assert.NoError(t, err)
	assert.Equal(t, "contact.created", ev.EventType)
	assert.Equal(t, "64a1", ev.AggregateID)
	assert.Equal(t, "contact", ev.AggregateType)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, "phonebook", ev.Source)
	assert.WithinDuration(t, time.Now().UTC(), ev.Timestamp, time.Minute)
	assert.JSONEq(t, `{"firstName":"Ana"}`, string(ev.Data))
}

func TestNewEventUnmarshalableData(t *testing.T) {
	_, err := NewEvent("contact.created", "64a1", "contact", "phonebook", make(chan int))
	assert.Error(t, err)
}

func TestEventMarshalRoundTrip(t *testing.T) {
	ev, err := NewEvent("contact.deleted", "64a1", "contact", "phonebook", map[string]string{"_id": "64a1"})
	require.NoError(t, err)
	ev.WithCorrelationID("corr-123")

	raw, err := ev.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, "corr-123", decoded.CorrelationID)
}
