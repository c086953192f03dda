package fall_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/device/sim"
	"guardian/internal/domain"
	"guardian/internal/notify"
	"guardian/internal/services/fall"
	"guardian/internal/services/sos"
)

type countingSOS struct {
	mu      sync.Mutex
	sources []domain.TriggerSource
}

func (c *countingSOS) Trigger(_ context.Context, s domain.TriggerSource) domain.DispatchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, s)
	return domain.DispatchResult{Source: s, Outcome: domain.OutcomeDispatched}
}

func (c *countingSOS) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sources)
}

func newMonitor(t *testing.T, trigger domain.SOSTrigger) (*fall.Monitor, *sim.Accelerometer, *notify.Recorder) {
	t.Helper()
	accel := sim.NewAccelerometer(clockwork.NewFakeClock())
	rec := notify.NewRecorder(0)
	m := fall.New(accel, sim.NewPermissions(domain.CapabilityAccelerometer), trigger, rec, fall.Config{})
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	return m, accel, rec
}

func TestFall_AlertsOncePerSession(t *testing.T) {
	trigger := &countingSOS{}
	m, accel, rec := newMonitor(t, trigger)
	require.NoError(t, m.Start(context.Background()))

	accel.Emit(domain.Vector3{X: 0.1, Y: 0.1, Z: 0.1})
	accel.Emit(domain.Vector3{X: 0.1})
	accel.Emit(domain.Vector3{})

	assert.Equal(t, 1, trigger.Count())
	assert.Equal(t, []string{"Fall Detected!"}, rec.Titles())
	st := m.State()
	assert.True(t, st.Active)
	assert.True(t, st.FallDetected)
	assert.True(t, st.AlertTriggered)
}

func TestFall_RestartRearmsAlert(t *testing.T) {
	trigger := &countingSOS{}
	m, accel, _ := newMonitor(t, trigger)
	ctx := context.Background()

	require.NoError(t, m.Start(ctx))
	accel.Emit(sim.FreeFall)
	require.NoError(t, m.Stop(ctx))
	require.NoError(t, m.Start(ctx))
	assert.False(t, m.State().AlertTriggered)
	accel.Emit(sim.FreeFall)

	assert.Equal(t, 2, trigger.Count())
	assert.Equal(t, 1, accel.Subscribers())
}

func TestFall_IgnoresRestAndInvalidSamples(t *testing.T) {
	trigger := &countingSOS{}
	m, accel, _ := newMonitor(t, trigger)
	require.NoError(t, m.Start(context.Background()))

	accel.Emit(sim.Rest)
	accel.Emit(domain.Vector3{X: 40})

	assert.Zero(t, trigger.Count())
	last := m.State().LastReading
	require.NotNil(t, last)
	assert.InDelta(t, 1.0, *last, 1e-9)
}

func TestFall_StopIsIdempotentAndDetaches(t *testing.T) {
	trigger := &countingSOS{}
	m, accel, _ := newMonitor(t, trigger)
	ctx := context.Background()

	require.NoError(t, m.Stop(ctx))
	require.NoError(t, m.Start(ctx))
	require.NoError(t, m.Stop(ctx))
	require.NoError(t, m.Stop(ctx))
	accel.Emit(sim.FreeFall)

	assert.Zero(t, trigger.Count())
	assert.Zero(t, accel.Subscribers())
	assert.False(t, m.State().Active)
}

func TestFall_DeniedAccelerometer(t *testing.T) {
	accel := sim.NewAccelerometer(clockwork.NewFakeClock())
	m := fall.New(accel, sim.NewPermissions(), &countingSOS{}, notify.NewRecorder(0), fall.Config{})

	err := m.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.False(t, m.State().Active)
	assert.Zero(t, accel.Subscribers())
}

func TestFall_RestartAfterRevokeDetaches(t *testing.T) {
	ctx := context.Background()
	trigger := &countingSOS{}
	accel := sim.NewAccelerometer(clockwork.NewFakeClock())
	perms := sim.NewPermissions(domain.CapabilityAccelerometer)
	m := fall.New(accel, perms, trigger, notify.NewRecorder(0), fall.Config{})
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	require.NoError(t, m.Start(ctx))
	require.Equal(t, 1, accel.Subscribers())

	perms.Revoke(domain.CapabilityAccelerometer)
	err := m.Start(ctx)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	st := m.State()
	assert.False(t, st.Active)
	assert.Equal(t, "Accelerometer unavailable", st.ErrorMessage)
	assert.Zero(t, accel.Subscribers())

	accel.Emit(sim.FreeFall)
	assert.Zero(t, trigger.Count(), "an inactive monitor must not trigger SOS")
}

func TestFall_WithNoContactsSurfacesNotice(t *testing.T) {
	rec := notify.NewRecorder(0)
	launcher := &nopLauncher{}
	dispatcher := sos.New(emptyContacts{}, launcher, rec, sos.Config{Clock: clockwork.NewFakeClock()})
	accel := sim.NewAccelerometer(clockwork.NewFakeClock())
	m := fall.New(accel, sim.NewPermissions(domain.CapabilityAccelerometer), dispatcher, rec, fall.Config{})
	require.NoError(t, m.Start(context.Background()))
	defer m.Stop(context.Background())

	accel.Emit(domain.Vector3{X: 0.1})

	assert.Equal(t, []string{"Fall Detected!", "No Contacts"}, rec.Titles())
	assert.Zero(t, launcher.calls)
	assert.True(t, dispatcher.Cooling())
}

type emptyContacts struct{}

func (emptyContacts) Contacts(context.Context) ([]domain.Contact, error) { return nil, nil }

type nopLauncher struct{ calls int }

func (l *nopLauncher) Launch(context.Context, domain.Intent) error {
	l.calls++
	return nil
}
