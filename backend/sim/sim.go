// Package sim provides an in-process simulated VR runtime.
//
// The simulator behaves like a vendor runtime with a headset attached: it
// opens sessions, rotates swap chains on commit and reports whatever
// controller samples the host feeds it. Failures can be injected per
// operation, which makes it the runtime of choice for tests and for
// running the demo without hardware.
//
// Importing the package registers it under [backend.NameSim]:
//
//	import _ "github.com/gogpu/hmd/backend/sim"
package sim

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/pose"
)

// DefaultChainLength is the number of buffers in a simulated swap chain.
const DefaultChainLength = 3

func init() {
	backend.Register(backend.NameSim, func() backend.Runtime {
		return New()
	})
}

// Op names a runtime operation whose failure can be injected.
type Op string

// Injectable operations.
const (
	OpInitialize    Op = "initialize"
	OpCreateSession Op = "create session"
	OpCreateChain   Op = "create chain"
	OpChainLength   Op = "chain length"
	OpCommit        Op = "commit"
)

// failureCode is the result code reported for injected failures.
const failureCode = -1000

// Stats counts runtime calls. Returned by value from [Runtime.Stats].
type Stats struct {
	Detect         int
	Initialize     int
	Shutdown       int
	CreateSession  int
	DestroySession int
	CreateChain    int
	DestroyChain   int
	Commit         int
	LiveSessions   int
	LiveChains     int
}

// Option configures a simulated runtime.
type Option func(*Runtime)

// WithDetectResult overrides what Detect reports.
func WithDetectResult(d backend.DetectResult) Option {
	return func(r *Runtime) {
		r.detect = d
	}
}

// WithRequiredComponent sets the shared library name the runtime claims
// to need on the search path.
func WithRequiredComponent(name string) Option {
	return func(r *Runtime) {
		r.component = name
	}
}

// WithChainLength sets the number of buffers per chain.
// A length of zero simulates a driver that reports empty chains.
func WithChainLength(n int) Option {
	return func(r *Runtime) {
		r.chainLength = n
	}
}

// WithAdapter sets the adapter reported by CreateSession.
func WithAdapter(info gpucontext.AdapterInfo) Option {
	return func(r *Runtime) {
		r.adapter = info
	}
}

// WithFailure makes op fail until cleared with [Runtime.Fail].
func WithFailure(op Op) Option {
	return func(r *Runtime) {
		r.failing[op] = true
	}
}

// Runtime is a simulated [backend.Runtime]. It is safe for concurrent use.
type Runtime struct {
	mu sync.Mutex

	detect      backend.DetectResult
	component   string
	chainLength int
	adapter     gpucontext.AdapterInfo
	failing     map[Op]bool

	initialized bool
	sessions    map[backend.SessionID]*session
	hands       map[pose.Handedness]pose.PoseState
	lastErr     backend.ErrorInfo
	nextChain   backend.ChainID
	nextTexture backend.TextureName
	stats       Stats
}

type session struct {
	chains map[backend.ChainID]*chain
}

type chain struct {
	desc     backend.ChainDesc
	textures []backend.TextureName
	current  int
}

// New creates a simulated runtime with a running service and a connected
// headset.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		detect:      backend.DetectResult{ServiceRunning: true, HMDConnected: true},
		chainLength: DefaultChainLength,
		adapter: gpucontext.AdapterInfo{
			Name: "Simulated HMD Adapter",
			Type: gpucontext.AdapterTypeSoftware,
		},
		failing:  make(map[Op]bool),
		sessions: make(map[backend.SessionID]*session),
		hands:    make(map[pose.Handedness]pose.PoseState),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fail toggles injected failure of op.
func (r *Runtime) Fail(op Op, fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing[op] = fail
}

// SetDetectResult changes what subsequent Detect calls report.
func (r *Runtime) SetDetectResult(d backend.DetectResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detect = d
}

// SetHandState feeds the tracking sample returned for hand.
func (r *Runtime) SetHandState(hand pose.Handedness, state pose.PoseState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hands[hand] = state
}

// Stats returns a snapshot of call counters.
func (r *Runtime) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.LiveSessions = len(r.sessions)
	for _, sess := range r.sessions {
		s.LiveChains += len(sess.chains)
	}
	return s
}

// Initialized reports whether Initialize succeeded without a later Shutdown.
func (r *Runtime) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Name returns "sim".
func (r *Runtime) Name() string {
	return backend.NameSim
}

// Detect reports the configured service and headset state.
func (r *Runtime) Detect() backend.DetectResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Detect++
	return r.detect
}

// RequiredComponent returns the configured component name.
func (r *Runtime) RequiredComponent() string {
	return r.component
}

// LastError returns the error recorded by the most recent failed call.
func (r *Runtime) LastError() backend.ErrorInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Initialize marks the runtime initialized.
func (r *Runtime) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Initialize++
	if err := r.injected(OpInitialize); err != nil {
		return err
	}
	r.initialized = true
	return nil
}

// Shutdown destroys every session and marks the runtime uninitialized.
func (r *Runtime) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Shutdown++
	r.initialized = false
	clear(r.sessions)
}

// CreateSession opens a session with a fresh identity.
func (r *Runtime) CreateSession() (backend.SessionID, gpucontext.AdapterInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.CreateSession++
	if !r.initialized {
		return backend.SessionID{}, gpucontext.AdapterInfo{}, r.fail(backend.ErrNotInitialized)
	}
	if err := r.injected(OpCreateSession); err != nil {
		return backend.SessionID{}, gpucontext.AdapterInfo{}, err
	}
	id := backend.NewSessionID()
	r.sessions[id] = &session{chains: make(map[backend.ChainID]*chain)}
	return id, r.adapter, nil
}

// DestroySession closes a session and every chain it owns.
func (r *Runtime) DestroySession(id backend.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.DestroySession++
	delete(r.sessions, id)
}

// CreateChain allocates a chain of fresh texture names.
func (r *Runtime) CreateChain(id backend.SessionID, desc backend.ChainDesc) (backend.ChainID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.CreateChain++
	sess, ok := r.sessions[id]
	if !ok {
		return 0, r.fail(backend.ErrInvalidSession)
	}
	if err := r.injected(OpCreateChain); err != nil {
		return 0, err
	}
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return 0, r.fail(fmt.Errorf("sim: invalid chain size %dx%d", desc.Size.Width, desc.Size.Height))
	}

	c := &chain{desc: desc, textures: make([]backend.TextureName, r.chainLength)}
	for i := range c.textures {
		r.nextTexture++
		c.textures[i] = r.nextTexture
	}
	r.nextChain++
	sess.chains[r.nextChain] = c
	return r.nextChain, nil
}

// DestroyChain releases a chain.
func (r *Runtime) DestroyChain(id backend.SessionID, ch backend.ChainID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.DestroyChain++
	if sess, ok := r.sessions[id]; ok {
		delete(sess.chains, ch)
	}
}

// ChainLength returns the buffer count of a chain.
func (r *Runtime) ChainLength(id backend.SessionID, ch backend.ChainID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.lookup(id, ch)
	if err != nil {
		return 0, err
	}
	if err := r.injected(OpChainLength); err != nil {
		return 0, err
	}
	return len(c.textures), nil
}

// ChainCurrentIndex returns the writable buffer index.
func (r *Runtime) ChainCurrentIndex(id backend.SessionID, ch backend.ChainID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.lookup(id, ch)
	if err != nil {
		return 0, err
	}
	return c.current, nil
}

// ChainBuffer resolves a buffer index to its texture name.
func (r *Runtime) ChainBuffer(id backend.SessionID, ch backend.ChainID, index int) (backend.TextureName, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.lookup(id, ch)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(c.textures) {
		return 0, r.fail(fmt.Errorf("sim: buffer index %d out of range [0,%d)", index, len(c.textures)))
	}
	return c.textures[index], nil
}

// CommitChain advances the writable index of a chain.
func (r *Runtime) CommitChain(id backend.SessionID, ch backend.ChainID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Commit++
	c, err := r.lookup(id, ch)
	if err != nil {
		return err
	}
	if err := r.injected(OpCommit); err != nil {
		return err
	}
	if !c.desc.StaticImage && len(c.textures) > 0 {
		c.current = (c.current + 1) % len(c.textures)
	}
	return nil
}

// HandState returns the sample last fed through SetHandState.
func (r *Runtime) HandState(id backend.SessionID, hand pose.Handedness) (pose.PoseState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return pose.PoseState{}, r.fail(backend.ErrInvalidSession)
	}
	state, ok := r.hands[hand]
	if !ok {
		return pose.PoseState{}, r.fail(fmt.Errorf("%w: %v hand", backend.ErrNotTracked, hand))
	}
	return state, nil
}

// lookup must be called with r.mu held.
func (r *Runtime) lookup(id backend.SessionID, ch backend.ChainID) (*chain, error) {
	sess, ok := r.sessions[id]
	if !ok {
		return nil, r.fail(backend.ErrInvalidSession)
	}
	c, ok := sess.chains[ch]
	if !ok {
		return nil, r.fail(backend.ErrInvalidChain)
	}
	return c, nil
}

// injected must be called with r.mu held.
func (r *Runtime) injected(op Op) error {
	if !r.failing[op] {
		return nil
	}
	return r.fail(fmt.Errorf("sim: injected %s failure", op))
}

// fail records err as the last error and returns it.
func (r *Runtime) fail(err error) error {
	r.lastErr = backend.ErrorInfo{Code: failureCode, Message: err.Error()}
	return err
}

var _ backend.Runtime = (*Runtime)(nil)
