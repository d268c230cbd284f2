package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap/zaptest"
)

func newDisabledProvider(t *testing.T, samplingRatio float64) *telemetry.TracerProvider {
	t.Helper()
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     samplingRatio,
		ServiceName:       "wms-backend",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)
	return tp
}

func TestNewTracerProvider_DisabledIsNoop(t *testing.T) {
	tp := newDisabledProvider(t, 1.0)

	assert.False(t, tp.IsEnabled())

	cfg := tp.GetConfig()
	assert.Equal(t, "wms-backend", cfg.ServiceName)
	assert.False(t, cfg.Enabled)

	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestTracerProvider_DisabledStillHandsOutTracers(t *testing.T) {
	tp := newDisabledProvider(t, 1.0)

	tracer := tp.Tracer("billing")
	require.NotNil(t, tracer)

	// span creation must be safe even without an exporter
	_, span := tracer.Start(context.Background(), "statement.build")
	span.End()
}

func TestTracerProvider_DisabledAcceptsAnySamplingRatio(t *testing.T) {
	for _, ratio := range []float64{0.0, 0.5, 1.0} {
		tp := newDisabledProvider(t, ratio)
		assert.False(t, tp.IsEnabled(), "ratio %v", ratio)
		assert.NoError(t, tp.Shutdown(context.Background()))
	}
}

func TestTracerProvider_DisabledForceFlush(t *testing.T) {
	tp := newDisabledProvider(t, 1.0)
	assert.NoError(t, tp.ForceFlush(context.Background()))
}

func TestTracerProvider_ShutdownWithCancelledContext(t *testing.T) {
	tp := newDisabledProvider(t, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a no-op provider ignores the context entirely
	assert.NoError(t, tp.Shutdown(ctx))
}
