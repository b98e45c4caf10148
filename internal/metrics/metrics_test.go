package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(Plans.WithLabelValues("improved"))
	Plans.WithLabelValues("improved").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Plans.WithLabelValues("improved")))

	beforeRuns := testutil.ToFloat64(Runs.WithLabelValues("bracing", "solved"))
	Runs.WithLabelValues("bracing", "solved").Inc()
	assert.Equal(t, beforeRuns+1, testutil.ToFloat64(Runs.WithLabelValues("bracing", "solved")))
}
