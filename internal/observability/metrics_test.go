package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Unregistered(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.TableSorts.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.TableSorts))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TableSorts))
}

func TestMetrics_RegisterOnFreshRegistry(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	require.NoError(t, reg.Register(m.DatasetChanges))
	m.DatasetChanges.WithLabelValues("tsunami", "applied").Inc()

	assert.Equal(t, 1, testutil.CollectAndCount(m.DatasetChanges))
}

func TestNewMetricsWith_PrivateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg)
	m.ViewerReady.Set(1)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Panics(t, func() { NewMetricsWith(reg) }, "second registration on the same registry")
}
