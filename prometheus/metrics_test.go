package prometheus

import (
	"testing"
	"time"

	"github.com/Guimenn/mobiliai-inventory/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackDBOperationRecordsDuration(t *testing.T) {
	InitMetrics(&config.MetricsConfig{Prefix: "ledger_test"})

	TrackDBOperation("allocate")(time.Now())
	TrackDBOperation("remove")(time.Now())
	TrackDBOperation("remove")(time.Now())

	assert.Equal(t, 2, testutil.CollectAndCount(DbOperationDuration,
		"ledger_test_db_operation_duration_seconds"))

	RecordAllocationOperation("update")
	assert.Equal(t, float64(1), testutil.ToFloat64(
		AllocationOperationsCounter.WithLabelValues("update")))
}
