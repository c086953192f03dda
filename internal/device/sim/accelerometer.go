package sim

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
)

// Rest is the sample of a phone lying still.
var Rest = domain.Vector3{Z: 1}

// FreeFall is the sample of a phone in the air.
var FreeFall = domain.Vector3{X: 0.02, Y: 0.03, Z: 0.05}

// Accelerometer emits Rest on every tick unless samples are injected.
type Accelerometer struct {
	clock clockwork.Clock

	mu      sync.Mutex
	next    int
	subs    map[int]*subscription
	pending []domain.Vector3
}

// NewAccelerometer returns an accelerometer ticking on clock.
func NewAccelerometer(clock clockwork.Clock) *Accelerometer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Accelerometer{clock: clock, subs: make(map[int]*subscription)}
}

// Subscribe implements domain.Accelerometer.
func (a *Accelerometer) Subscribe(interval time.Duration, fn func(domain.Vector3)) (domain.Subscription, error) {
	if interval <= 0 {
		return nil, errors.New("sim accelerometer: interval must be positive")
	}
	a.mu.Lock()
	a.next++
	s := &subscription{id: a.next, owner: a, fn: fn, stop: make(chan struct{})}
	a.subs[s.id] = s
	a.mu.Unlock()

	ticker := a.clock.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.Chan():
				s.deliver(a.take())
			}
		}
	}()
	return s, nil
}

// Inject queues samples for the next ticks.
func (a *Accelerometer) Inject(samples ...domain.Vector3) {
	a.mu.Lock()
	a.pending = append(a.pending, samples...)
	a.mu.Unlock()
}

// Drop queues a short free fall.
func (a *Accelerometer) Drop() {
	a.Inject(FreeFall, FreeFall, FreeFall)
}

// Emit delivers v to every subscriber immediately, on the caller's goroutine.
func (a *Accelerometer) Emit(v domain.Vector3) {
	a.mu.Lock()
	subs := make([]*subscription, 0, len(a.subs))
	for _, s := range a.subs {
		subs = append(subs, s)
	}
	a.mu.Unlock()
	for _, s := range subs {
		s.deliver(v)
	}
}

// Subscribers returns the number of live subscriptions.
func (a *Accelerometer) Subscribers() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.subs)
}

func (a *Accelerometer) take() domain.Vector3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.pending) == 0 {
		return Rest
	}
	v := a.pending[0]
	a.pending = a.pending[1:]
	return v
}

type subscription struct {
	id    int
	owner *Accelerometer
	fn    func(domain.Vector3)
	stop  chan struct{}
	once  sync.Once

	removed atomic.Bool
}

// deliver may race with Remove; consumers discard late samples themselves.
func (s *subscription) deliver(v domain.Vector3) {
	if s.removed.Load() {
		return
	}
	s.fn(v)
}

// Remove implements domain.Subscription. It is idempotent.
func (s *subscription) Remove() {
	s.once.Do(func() {
		s.owner.mu.Lock()
		delete(s.owner.subs, s.id)
		s.owner.mu.Unlock()
		s.removed.Store(true)
		close(s.stop)
	})
}

var _ domain.Accelerometer = (*Accelerometer)(nil)
