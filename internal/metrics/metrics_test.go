// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(rounds)
	RecordRound(15 * time.Millisecond)
	assert.InDelta(t, before+1, testutil.ToFloat64(rounds), 1e-9)

	RecordPlans("explore", 3, 42)
	assert.GreaterOrEqual(t, testutil.ToFloat64(plans.WithLabelValues("explore")), 3.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(actions.WithLabelValues("explore")), 42.0)

	base := testutil.ToFloat64(outcomes.WithLabelValues("reverse", "confirmed"))
	RecordOutcome("reverse", "confirmed")
	assert.InDelta(t, base+1, testutil.ToFloat64(outcomes.WithLabelValues("reverse", "confirmed")), 1e-9)

	RecordDeficiency("identification")
	assert.GreaterOrEqual(t, testutil.ToFloat64(deficiencies.WithLabelValues("identification")), 1.0)

	RecordMerge(5, 2, 0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(merges.WithLabelValues("accepted")), 5.0)

	RecordOracleRequest("explore", 200, 3*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(oracleRequests.WithLabelValues("explore", "200")), 1.0)
	assert.Equal(t, 1, testutil.CollectAndCount(oracleDuration, "labyrinth_oracle_request_duration_seconds"))
}
