package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.kubefix.dev/manifestfix/metrics"
)

// These tests cannot run in parallel: Init mutates package-level instrument
// variables shared across the process.

func TestInit(t *testing.T) {
	registry, shutdown, err := metrics.Init()
	require.NoError(t, err)
	require.NotNil(t, registry)
	require.NotNil(t, shutdown)

	t.Cleanup(func() {
		assert.NoError(t, shutdown(context.Background()))
	})

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Empty(t, families, "no metrics have been recorded yet")
}

func TestRecordRun(t *testing.T) {
	registry, shutdown, err := metrics.Init()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, shutdown(context.Background()))
	})

	ctx := context.Background()

	metrics.RecordRun(ctx, 3, 0.92, true, 5*time.Millisecond)
	metrics.RecordRun(ctx, 0, 1.0, false, time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	var found bool

	for _, fam := range families {
		if fam.GetName() == "manifestfix_runs_total" {
			found = true
		}
	}

	assert.True(t, found, "expected manifestfix_runs_total to be registered")
}

func TestInFlightTracking(t *testing.T) {
	registry, shutdown, err := metrics.Init()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, shutdown(context.Background()))
	})

	ctx := context.Background()

	metrics.InFlightInc(ctx)
	metrics.InFlightInc(ctx)
	metrics.InFlightDec(ctx)

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool

	for _, fam := range families {
		if fam.GetName() == "manifestfix_http_in_flight_requests" {
			found = true
		}
	}

	assert.True(t, found)
}
