package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)

	assert.Equal(t, otel.GetTracerProvider(), tp)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Немаршрутизируемый адрес: экспорт не происходит
	tp, shutdown, err := Setup(context.Background(), Config{
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "test",
		Version:     "dev",
		SampleRatio: 1,
	})
	require.NoError(t, err)

	_, ok := tp.(*sdktrace.TracerProvider)
	assert.True(t, ok)
	assert.Equal(t, tp, otel.GetTracerProvider())

	assert.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "always", ratio: 1, want: "ParentBased{root:AlwaysOnSampler"},
		{name: "never", ratio: 0, want: "ParentBased{root:AlwaysOffSampler"},
		{name: "ratio", ratio: 0.25, want: "ParentBased{root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, sampler(tt.ratio).Description(), tt.want)
		})
	}
}
