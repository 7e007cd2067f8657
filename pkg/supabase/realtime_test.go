package supabase

import (
	"encoding/json"
	"testing"
	"time"

	"ott-admin/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeChange(t *testing.T) {
	payload := json.RawMessage(`{
		"data": {
			"type": "UPDATE",
			"record": {"id": "u1", "name": "Asha"},
			"old_record": {"id": "u1", "name": "Old"},
			"commit_timestamp": "2025-04-15T10:30:00Z"
		}
	}`)

	event, err := decodeChange(payload)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE", event.Type)
	assert.JSONEq(t, `{"id": "u1", "name": "Asha"}`, string(event.Record))
	assert.JSONEq(t, `{"id": "u1", "name": "Old"}`, string(event.OldRecord))
	assert.Equal(t, time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC), event.CommitTimestamp)
}

func TestDecodeChangeMissingType(t *testing.T) {
	_, err := decodeChange(json.RawMessage(`{"data": {}}`))
	assert.Error(t, err)
}

func TestDecodeChangeBadPayload(t *testing.T) {
	_, err := decodeChange(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestDecodeChangeBadTimestamp(t *testing.T) {
	payload := json.RawMessage(`{
		"data": {"type": "INSERT", "record": {}, "commit_timestamp": "yesterday"}
	}`)
	_, err := decodeChange(payload)
	assert.Error(t, err)
}

func TestRealtimeURL(t *testing.T) {
	log, err := logger.New("error", "test")
	require.NoError(t, err)

	client := NewClient("https://abc.supabase.co", "service-key", log)
	endpoint, err := client.realtimeURL()
	require.NoError(t, err)
	assert.Equal(t, "wss://abc.supabase.co/realtime/v1/websocket?apikey=service-key&vsn=1.0.0", endpoint)
}
