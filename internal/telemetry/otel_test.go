package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/config"
)

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "collector:4317", Endpoint("http://collector:4317"))
	assert.Equal(t, "collector:4317", Endpoint("https://collector:4317"))
	assert.Equal(t, "collector:4317", Endpoint("collector:4317"))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", Sampler(0).Description())
	assert.Equal(t, "AlwaysOnSampler", Sampler(1.5).Description())
	assert.Contains(t, Sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestSetupTracing_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telemetry.Enabled = true

	tp, err := SetupTracing(cfg)
	require.NoError(t, err)
	assert.Nil(t, tp)
}
