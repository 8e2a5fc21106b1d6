package providers

import (
	"nodelete/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metricsTestSource struct{}

func (m *metricsTestSource) ChannelCount() int { return 2 }
func (m *metricsTestSource) EntriesTotal() int { return 7 }

func useTestRegistry(t *testing.T) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
	return reg
}

// counterValue reads a counter by name and, when given, its "type" label.
func counterValue(t *testing.T, g prometheus.Gatherer, name, kind string) float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if kind == "" {
				return m.GetCounter().GetValue()
			}
			for _, l := range m.GetLabel() {
				if l.GetName() == "type" && l.GetValue() == kind {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestSource{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/logs", 200)
	m.ObserveRequestDuration("/logs", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncEntriesAppended("delete")
	m.IncLookupMisses("edit")
	m.IncLogClears()
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestSource{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestSource{})

	m.IncRequestsTotal("/logs", 200)
	m.IncRequestsTotal("/logs", 404)
	m.ObserveRequestDuration("/logs", 5*time.Millisecond)
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.IncEntriesAppended("delete")
	m.IncEntriesAppended("delete")
	m.IncEntriesAppended("edit")
	m.IncLookupMisses("delete")
	m.IncLogClears()

	assert.Equal(t, float64(2), counterValue(t, reg, "nodelete_entries_appended_total", "delete"))
	assert.Equal(t, float64(1), counterValue(t, reg, "nodelete_entries_appended_total", "edit"))
	assert.Equal(t, float64(1), counterValue(t, reg, "nodelete_lookup_misses_total", "delete"))
	assert.Equal(t, float64(1), counterValue(t, reg, "nodelete_log_clears_total", ""))
}

func TestMetricsProvider_StoreGauges(t *testing.T) {
	reg := useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	NewMetricsProvider(conf, &metricsTestSource{})

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		if f.GetName() == "nodelete_channels_total" || f.GetName() == "nodelete_entries_total" {
			values[f.GetName()] = f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(2), values["nodelete_channels_total"])
	assert.Equal(t, float64(7), values["nodelete_entries_total"])
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
