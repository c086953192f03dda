package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"guardian/internal/domain"
)

// Microphone opens silent recordings.
type Microphone struct {
	mu     sync.Mutex
	err    error
	opened int
	open   int
}

// NewMicrophone returns a working microphone.
func NewMicrophone() *Microphone { return &Microphone{} }

// FailWith makes subsequent Open calls return err.
func (m *Microphone) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Open implements domain.Microphone.
func (m *Microphone) Open(_ context.Context, preset domain.RecordingPreset) (domain.Recording, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.opened++
	m.open++
	return &recording{mic: m, rate: preset.SampleRate}, nil
}

// Opened returns how many recordings were started.
func (m *Microphone) Opened() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened
}

// OpenCount returns how many recordings are still open.
func (m *Microphone) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

type recording struct {
	mic  *Microphone
	rate int
	once sync.Once
}

func (r *recording) Window(d time.Duration) domain.AudioWindow {
	n := int(d.Seconds() * float64(r.rate))
	return domain.AudioWindow{SampleRate: r.rate, Samples: make([]float32, n)}
}

func (r *recording) Close(context.Context) error {
	r.once.Do(func() {
		r.mic.mu.Lock()
		r.mic.open--
		r.mic.mu.Unlock()
	})
	return nil
}

// ErrCameraBusy is what a failing simulated camera reports.
var ErrCameraBusy = errors.New("camera in use by another application")

// Camera opens fake camera sessions.
type Camera struct {
	mu     sync.Mutex
	fail   bool
	opened int
	closed int
}

// NewCamera returns a camera; fail makes every Open return ErrCameraBusy.
func NewCamera(fail bool) *Camera { return &Camera{fail: fail} }

// SetFail toggles failure of future Open calls.
func (c *Camera) SetFail(fail bool) {
	c.mu.Lock()
	c.fail = fail
	c.mu.Unlock()
}

// Open implements domain.Camera.
func (c *Camera) Open(context.Context) (domain.CameraSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened++
	if c.fail {
		return nil, ErrCameraBusy
	}
	return &cameraSession{cam: c}, nil
}

// Opened returns how many times Open was called.
func (c *Camera) Opened() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened
}

// Closed returns how many sessions were closed.
func (c *Camera) Closed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type cameraSession struct {
	cam  *Camera
	once sync.Once
}

func (s *cameraSession) Close() error {
	s.once.Do(func() {
		s.cam.mu.Lock()
		s.cam.closed++
		s.cam.mu.Unlock()
	})
	return nil
}

// Location reports a fixed position.
type Location struct {
	mu     sync.Mutex
	coords domain.Coordinates
	err    error
}

// NewLocation returns a provider fixed at coords.
func NewLocation(coords domain.Coordinates) *Location { return &Location{coords: coords} }

// FailWith makes Current return err.
func (l *Location) FailWith(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Current implements domain.LocationProvider.
func (l *Location) Current(context.Context) (domain.Coordinates, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return domain.Coordinates{}, l.err
	}
	return l.coords, nil
}

var (
	_ domain.Microphone       = (*Microphone)(nil)
	_ domain.Camera           = (*Camera)(nil)
	_ domain.LocationProvider = (*Location)(nil)
)
