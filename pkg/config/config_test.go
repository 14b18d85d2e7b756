package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("AI_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, "roadmapai-demo-secret", cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("MCP_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.True(t, cfg.MCPEnabled)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	t.Setenv("MCP_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 168, cfg.JWTExpiration)
	assert.False(t, cfg.MCPEnabled)
}

func TestLoad_SampleRatio(t *testing.T) {
	t.Setenv("OTEL_SAMPLER_RATIO", "")
	assert.Equal(t, 0.1, Load().OTelSampleRatio)

	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	assert.Equal(t, 0.5, Load().OTelSampleRatio)

	t.Setenv("OTEL_SAMPLER_RATIO", "7")
	assert.Equal(t, 1.0, Load().OTelSampleRatio)

	t.Setenv("OTEL_SAMPLER_RATIO", "-1")
	assert.Equal(t, 0.0, Load().OTelSampleRatio)

	t.Setenv("OTEL_SAMPLER_RATIO", "half")
	assert.Equal(t, 0.1, Load().OTelSampleRatio)
}
