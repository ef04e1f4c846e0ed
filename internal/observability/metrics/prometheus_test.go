package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg

	m := New("test_service")

	assert.NotNil(t, m)
	assert.Equal(t, "test_service", m.serviceName)
}

func TestPrometheusMetrics_RecordSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg

	m := New("test")

	m.RecordSuccess("download")
	m.RecordSuccess("download")
	m.RecordSuccess("store")

	downloadCount := testutil.ToFloat64(m.processedTotal.WithLabelValues("success", "download"))
	storeCount := testutil.ToFloat64(m.processedTotal.WithLabelValues("success", "store"))

	assert.Equal(t, 2.0, downloadCount)
	assert.Equal(t, 1.0, storeCount)
}

func TestPrometheusMetrics_RecordError(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg

	m := New("test")

	m.RecordError("download", "network_error")
	m.RecordError("download", "network_error")
	m.RecordError("store", "write_error")

	downloadErrors := testutil.ToFloat64(m.processedTotal.WithLabelValues("error", "download"))
	storeErrors := testutil.ToFloat64(m.processedTotal.WithLabelValues("error", "store"))

	assert.Equal(t, 2.0, downloadErrors)
	assert.Equal(t, 1.0, storeErrors)

	networkErrors := testutil.ToFloat64(m.errorsTotal.WithLabelValues("network_error", "download"))
	writeErrors := testutil.ToFloat64(m.errorsTotal.WithLabelValues("write_error", "store"))

	assert.Equal(t, 2.0, networkErrors)
	assert.Equal(t, 1.0, writeErrors)
}

func TestPrometheusMetrics_Operations(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg

	m := New("test")

	m.StartOperation("download")
	m.StartOperation("download")
	m.StartOperation("store")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.inProgress.WithLabelValues("download")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inProgress.WithLabelValues("store")))

	m.EndOperation("download")
	m.EndOperation("store")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.inProgress.WithLabelValues("download")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inProgress.WithLabelValues("store")))
}
