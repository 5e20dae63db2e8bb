package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterCacheHits.WithLabelValues("notes").Inc()
	m.CounterCacheMisses.WithLabelValues("notes").Add(2)
	m.CounterNotesCreated.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "notes_test_request")
	assert.Contains(t, names, "notes_test_query_cache_hits")
	assert.Contains(t, names, "notes_test_query_cache_misses")
	assert.Contains(t, names, "notes_test_notes_created")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterCacheMisses.WithLabelValues("notes")))
}

func TestNewTestManager_IndependentRegistries(t *testing.T) {
	// a shared registry would panic on duplicate registration
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}

func TestNewRegistry_RuntimeCollectors(t *testing.T) {
	reg := NewRegistry()
	NewManager("notes", "api", reg).CounterNotesDeleted.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["notes_api_notes_deleted"])
}
