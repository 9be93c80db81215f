package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "foodlog-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	// non-routable, nothing is exported
	shutdown, err := Setup(context.Background(), "foodlog-test", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NotEqual(t, before, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}
