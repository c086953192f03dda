package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/domain"
	"guardian/internal/metrics"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.SOS(domain.TriggerFall, domain.OutcomeNoContacts)
	m.SOS(domain.TriggerFall, domain.OutcomeNoContacts)
	m.Intent(domain.IntentCall, nil)
	m.Intent(domain.IntentCall, errors.New("boom"))
	m.SessionEnabled(true)

	expected := `
# HELP guardian_sos_triggers_total SOS triggers by source and outcome.
# TYPE guardian_sos_triggers_total counter
guardian_sos_triggers_total{outcome="no_contacts",source="fall"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "guardian_sos_triggers_total"))

	n, err := testutil.GatherAndCount(reg, "guardian_intents_launched_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.SOS(domain.TriggerManual, domain.OutcomeDispatched)
		m.FallDetected()
		m.MonitorActive(domain.MonitorFall, true)
	})
}
