package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordExternalCall(t *testing.T) {
	// DefaultMetrics is shared, so count series instead of assuming a
	// clean registry. A target label only exists once observed.
	const target = "latency-test-target"

	before := testutil.CollectAndCount(DefaultMetrics.ExternalCallLatency)

	RecordExternalCall(target, 0.25)
	RecordExternalCall(target, 1.5)

	after := testutil.CollectAndCount(DefaultMetrics.ExternalCallLatency)
	if after != before+1 {
		t.Errorf("latency series = %d, want %d after observing a new target", after, before+1)
	}

	// A repeat observation lands in the same series.
	RecordExternalCall(target, 0.1)
	if got := testutil.CollectAndCount(DefaultMetrics.ExternalCallLatency); got != after {
		t.Errorf("latency series = %d, want %d for a repeated target", got, after)
	}
}
