package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilderPrefix(t *testing.T) {
	tests := []struct {
		environment string
		wantPrefix  string
	}{
		{environment: "production", wantPrefix: "prod"},
		{environment: "development", wantPrefix: "staging"},
		{environment: "staging", wantPrefix: "staging"},
		{environment: "", wantPrefix: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderDashboardKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:dashboard:summary", kb.KeyDashboardSummary())
	assert.Equal(t, "prod:dashboard:subscriber_stats", kb.KeySubscriberStats())
	assert.Equal(t, "prod:dashboard:series_count", kb.KeySeriesCount())
	assert.Equal(t, "prod:series:s1:episodes", kb.KeyCustom("series:%s:episodes", "s1"))
}
