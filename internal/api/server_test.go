package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/api"
	"guardian/internal/app"
	"guardian/internal/domain"
	"guardian/internal/httpx"
)

type harness struct {
	t    *testing.T
	srv  *httptest.Server
	wire *app.Wire
	out  *bytes.Buffer
}

func newHarness(t *testing.T, mutate func(*app.Config)) *harness {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.Session.ManualHeartbeat = true
	if mutate != nil {
		mutate(&cfg)
	}
	out := &bytes.Buffer{}
	w, err := app.NewWire(cfg, out, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewServer(w).Router())
	t.Cleanup(func() {
		srv.Close()
		_ = w.Close(context.Background())
	})
	return &harness{t: t, srv: srv, wire: w, out: out}
}

func (h *harness) do(method, path string, body any) *http.Response {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, r)
	require.NoError(h.t, err)
	resp, err := h.srv.Client().Do(req)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthCarriesRequestID(t *testing.T) {
	h := newHarness(t, nil)
	resp := h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(httpx.RequestIDHeader))
}

func TestContactsLifecycle(t *testing.T) {
	h := newHarness(t, nil)

	resp := h.do(http.MethodPost, "/contacts", map[string]string{"number": "   "})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(http.MethodPost, "/contacts", map[string]string{"number": "111"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	h.do(http.MethodPost, "/contacts", map[string]string{"number": "222"})

	list := decode[[]string](t, h.do(http.MethodGet, "/contacts", nil))
	assert.Equal(t, []string{"111", "222"}, list)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/contacts/0", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/contacts/5", nil).StatusCode)

	list = decode[[]string](t, h.do(http.MethodGet, "/contacts", nil))
	assert.Equal(t, []string{"222"}, list)
}

func TestSOSDispatchesThenSuppresses(t *testing.T) {
	h := newHarness(t, nil)
	h.do(http.MethodPost, "/contacts", map[string]string{"number": "111"})

	first := decode[domain.DispatchResult](t, h.do(http.MethodPost, "/sos", nil))
	second := decode[domain.DispatchResult](t, h.do(http.MethodPost, "/sos", nil))

	assert.Equal(t, domain.OutcomeDispatched, first.Outcome)
	assert.Equal(t, domain.OutcomeSuppressed, second.Outcome)
	assert.Contains(t, h.out.String(), "tel:111")
}

func TestSessionToggleAndState(t *testing.T) {
	h := newHarness(t, nil)

	st := decode[domain.SessionState](t, h.do(http.MethodPut, "/session", map[string]bool{"enabled": true}))
	assert.True(t, st.Enabled)
	assert.True(t, st.Fall.Active)
	assert.True(t, st.Scream.Active)

	st = decode[domain.SessionState](t, h.do(http.MethodPost, "/session/toggle", nil))
	assert.False(t, st.Enabled)
	assert.False(t, st.Fall.Active)

	notices := decode[[]domain.Notice](t, h.do(http.MethodGet, "/notices", nil))
	require.Len(t, notices, 2)
	assert.Equal(t, "Safety ON", notices[0].Title)
	assert.Equal(t, "Safety OFF", notices[1].Title)
}

func TestSimulatedFallTriggersSOS(t *testing.T) {
	h := newHarness(t, nil)
	h.do(http.MethodPost, "/contacts", map[string]string{"number": "111"})
	h.do(http.MethodPost, "/monitors/fall/start", nil)

	assert.Equal(t, http.StatusAccepted, h.do(http.MethodPost, "/simulate/fall", nil).StatusCode)

	assert.Eventually(t, func() bool {
		return h.wire.Fall.State().AlertTriggered && h.wire.SOS.Cooling()
	}, 3*time.Second, 20*time.Millisecond)
}

func TestMonitorErrors(t *testing.T) {
	h := newHarness(t, func(c *app.Config) { c.Devices.Grants = nil })

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/monitors/radar/start", nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/monitors/scream/start", nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/police", nil).StatusCode)
}

func TestHeartbeatMeasureFallsBack(t *testing.T) {
	h := newHarness(t, func(c *app.Config) { c.Devices.CameraFails = true })

	resp := h.do(http.MethodPost, "/heartbeat/measure", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[domain.HeartbeatState](t, resp)
	assert.Equal(t, domain.SourceSimulated, st.Source)
	require.NotNil(t, st.LastReading)
}

func TestPoliceSMS(t *testing.T) {
	h := newHarness(t, nil)

	in := decode[domain.Intent](t, h.do(http.MethodPost, "/police/sms", nil))
	assert.Equal(t, domain.IntentSMS, in.Kind)
	assert.True(t, strings.HasPrefix(in.URI, "sms:100?body=Emergency%21"))
}

func TestChallengesLifecycle(t *testing.T) {
	h := newHarness(t, nil)

	type listing struct {
		Challenges []domain.Challenge `json:"challenges"`
		AllDone    bool               `json:"allDone"`
	}
	l := decode[listing](t, h.do(http.MethodGet, "/challenges", nil))
	require.Len(t, l.Challenges, 3)

	assert.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/challenges", map[string]string{"text": "Sleep 8h"}).StatusCode)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/challenges/2", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/challenges/2/toggle", nil).StatusCode)

	l = decode[listing](t, h.do(http.MethodGet, "/challenges", nil))
	require.Len(t, l.Challenges, 3)
	for _, c := range l.Challenges {
		h.do(http.MethodPost, "/challenges/"+strconv.FormatInt(c.ID, 10)+"/toggle", nil)
	}
	l = decode[listing](t, h.do(http.MethodGet, "/challenges", nil))
	assert.True(t, l.AllDone)
}

func TestMetricsExposed(t *testing.T) {
	h := newHarness(t, nil)
	h.do(http.MethodPost, "/sos", nil)

	resp := h.do(http.MethodGet, "/metrics", nil)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `guardian_sos_triggers_total{outcome="no_contacts",source="manual"} 1`)
}
