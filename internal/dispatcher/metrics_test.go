package dispatcher

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/dshills/helixedit/internal/engine/topology"
	"github.com/dshills/helixedit/internal/operation"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Observe(operation.KindCut, Push, nil, time.Millisecond)
	m.Observe(operation.KindCut, Push, nil, time.Millisecond)
	m.Observe(operation.KindXover, NoOp, topology.ErrXoverBetweenTwoPrime3, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("cut", "push")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("xover", "invalid_topology")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.operations.WithLabelValues("xover", "noop")))

	n, err := testutil.GatherAndCount(reg, "helixedit_operation_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	var none *Metrics
	none.Observe(operation.KindCut, Push, nil, 0)
}
