package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Dashboard key builders

func (kb *KeyBuilder) KeyDashboardSummary() string {
	return kb.BuildKey(KeyDashboardSummary)
}

func (kb *KeyBuilder) KeySubscriberStats() string {
	return kb.BuildKey(KeySubscriberStats)
}

func (kb *KeyBuilder) KeySeriesCount() string {
	return kb.BuildKey(KeySeriesCount)
}

// KeyCustom builds a formatted key with the environment prefix
func (kb *KeyBuilder) KeyCustom(format string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(format, args...))
}
