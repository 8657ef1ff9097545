package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/hmd"
	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/pose"
	"github.com/gogpu/hmd/probe"
)

// ErrInvalidSession is returned when a torn-down session is used.
var ErrInvalidSession = errors.New("session: invalid session")

// Session is a handle to an open runtime session.
//
// Handles are borrowed: they stay owned by the Manager that returned them.
// A nil *Session is a valid, invalid handle.
type Session struct {
	rt      backend.Runtime
	id      backend.SessionID
	adapter gpucontext.AdapterInfo
	valid   atomic.Bool
}

// Valid reports whether the session is still open.
func (s *Session) Valid() bool {
	return s != nil && s.valid.Load()
}

// ID returns the runtime's identity token for the session.
func (s *Session) ID() backend.SessionID {
	if s == nil {
		return backend.SessionID{}
	}
	return s.id
}

// Runtime returns the runtime the session belongs to.
func (s *Session) Runtime() backend.Runtime {
	if s == nil {
		return nil
	}
	return s.rt
}

// Adapter describes the GPU the runtime expects frames to be rendered on.
func (s *Session) Adapter() gpucontext.AdapterInfo {
	if s == nil {
		return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
	}
	return s.adapter
}

// HandPose reads the latest controller sample for hand and returns it
// anchored to the hand's grip point.
func (s *Session) HandPose(hand pose.Handedness) (pose.HandPose, error) {
	if !s.Valid() {
		return pose.HandPose{}, ErrInvalidSession
	}
	raw, err := s.rt.HandState(s.id, hand)
	if err != nil {
		return pose.HandPose{}, fmt.Errorf("session: %v hand state: %w", hand, err)
	}
	return pose.ComputeHandPose(hand, raw), nil
}

// Option configures a Manager.
type Option func(*Manager)

// WithTeardownPolicy sets what happens when the last reference is released.
// The default is TeardownNever.
func WithTeardownPolicy(p TeardownPolicy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

// WithProber supplies the availability prober. By default the Manager
// creates one for its runtime on the standard search path.
func WithProber(p *probe.Prober) Option {
	return func(m *Manager) {
		m.prober = p
	}
}

// Manager owns the single runtime session and its reference count.
type Manager struct {
	rt     backend.Runtime
	prober *probe.Prober
	policy TeardownPolicy

	mu   sync.Mutex
	sess *Session
	refs uint32
}

// NewManager creates a manager for rt. rt may be nil, in which case every
// Acquire reports the runtime unavailable.
func NewManager(rt backend.Runtime, opts ...Option) *Manager {
	m := &Manager{rt: rt}
	for _, opt := range opts {
		opt(m)
	}
	if m.prober == nil {
		var d backend.Detector
		if rt != nil {
			d = rt
		}
		m.prober = probe.New(d)
	}
	return m
}

// Policy returns the configured teardown policy.
func (m *Manager) Policy() TeardownPolicy {
	return m.policy
}

// Prober returns the availability prober used by Acquire.
func (m *Manager) Prober() *probe.Prober {
	return m.prober
}

// RefCount returns the number of outstanding references.
func (m *Manager) RefCount() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs
}

// Current returns the open session, or nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Acquire returns the open session, creating it on first use, and adds a
// reference. When the runtime is unavailable or refuses to start it returns
// a nil session and an error; the reference count is unchanged.
func (m *Manager) Acquire() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess == nil {
		if !m.prober.Available() {
			hmd.Logger().Debug("session: no runtime or HMD present")
			return nil, hmd.ErrUnavailable
		}
		if err := m.open(); err != nil {
			return nil, err
		}
	}

	m.refs++
	return m.sess, nil
}

// open must be called with m.mu held.
func (m *Manager) open() error {
	if m.refs != 0 {
		return hmd.Unrecoverable("session.Acquire", nil, "opening a session with %d outstanding references", m.refs)
	}
	if err := m.rt.Initialize(); err != nil {
		return hmd.Warn(m.rt, "failed to initialize runtime")
	}
	id, adapter, err := m.rt.CreateSession()
	if err != nil {
		werr := hmd.Warn(m.rt, "failed to acquire session")
		m.rt.Shutdown()
		return werr
	}

	s := &Session{rt: m.rt, id: id, adapter: adapter}
	s.valid.Store(true)
	m.sess = s

	hmd.Logger().Info("session: opened",
		"runtime", m.rt.Name(),
		"session", id.String(),
		"adapter", adapter.Name,
		"adapter_type", adapter.Type.String())
	return nil
}

// Release drops a reference obtained from Acquire. Releasing more often
// than acquiring, or releasing a handle this Manager did not hand out,
// returns an *hmd.UnrecoverableError.
//
// Under TeardownNever the session stays open and valid when the count
// reaches zero; under TeardownOnZero it is destroyed.
func (m *Manager) Release(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.refs == 0 || !s.Valid() || s != m.sess {
		err := hmd.Unrecoverable("session.Release", nil,
			"release without matching acquire (refs=%d, valid=%t)", m.refs, s.Valid())
		hmd.Logger().Error("session: reference count misuse", "err", err)
		return err
	}

	m.refs--
	if m.refs == 0 && m.policy == TeardownOnZero {
		hmd.Logger().Debug("session: zero references, shutting down runtime and session")
		m.teardown()
	}
	return nil
}

// Shutdown destroys the session and shuts the runtime down regardless of
// policy or outstanding references. Intended for process exit.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess != nil {
		m.teardown()
	}
	m.refs = 0
}

// teardown must be called with m.mu held and m.sess non-nil.
func (m *Manager) teardown() {
	s := m.sess
	s.valid.Store(false)
	m.rt.DestroySession(s.id)
	m.rt.Shutdown()
	m.sess = nil
	hmd.Logger().Info("session: closed", "runtime", m.rt.Name(), "session", s.id.String())
}
