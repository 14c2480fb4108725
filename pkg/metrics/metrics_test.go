package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTimerStopCountsBuild(t *testing.T) {
	before := testutil.ToFloat64(TablesBuilt.WithLabelValues("hashmap", ResultSuccess))

	d := NewTimer("hashmap").Stop(ResultSuccess)

	assert.GreaterOrEqual(t, d.Nanoseconds(), int64(0))
	assert.Equal(t, before+1, testutil.ToFloat64(TablesBuilt.WithLabelValues("hashmap", ResultSuccess)))
}

func TestCollectorsRegistered(t *testing.T) {
	Cells.WithLabelValues("int").Inc()
	OverridesRejected.WithLabelValues("datatype").Inc()
	RowsFilled.Inc()

	assert.Positive(t, testutil.CollectAndCount(Cells))
	assert.Positive(t, testutil.CollectAndCount(OverridesRejected))
	assert.Equal(t, 1, testutil.CollectAndCount(RowsFilled))
}
