// Package probe answers whether a VR runtime can be used on this machine.
//
// Availability requires three things: the runtime service is running, a
// headset is connected, and the runtime's shared library can be found on
// the search path. The answer is computed once per [Prober] and cached;
// a headset unplugged later does not change it.
package probe

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/gogpu/hmd"
	"github.com/gogpu/hmd/backend"
)

// ErrNotFound is returned by a Locator that cannot find a component.
var ErrNotFound = errors.New("probe: component not found")

// State is the cached outcome of a probe.
type State uint8

const (
	// Unknown means the probe has not run yet.
	Unknown State = iota
	// Available means the runtime can be used.
	Available
	// Unavailable means the service, headset or library is missing.
	Unavailable
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Locator finds a runtime component by file name.
type Locator interface {
	// Locate returns the full path of name or an error wrapping ErrNotFound.
	Locate(name string) (string, error)
}

// PathLocator searches a list of directories in order.
type PathLocator struct {
	Dirs []string
}

// NewPathLocator returns a locator over the platform's standard search
// path: PATH, followed by the dynamic loader path on Linux and macOS.
func NewPathLocator() *PathLocator {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		dirs = append(dirs, filepath.SplitList(os.Getenv("LD_LIBRARY_PATH"))...)
	case "darwin":
		dirs = append(dirs, filepath.SplitList(os.Getenv("DYLD_LIBRARY_PATH"))...)
	}
	return &PathLocator{Dirs: dirs}
}

// Locate returns the first regular file called name in l.Dirs.
func (l *PathLocator) Locate(name string) (string, error) {
	for _, dir := range l.Dirs {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Option configures a Prober.
type Option func(*Prober)

// WithLocator replaces the default PATH-based locator.
func WithLocator(l Locator) Option {
	return func(p *Prober) {
		p.locator = l
	}
}

// WithSearchPath searches only the given directories.
func WithSearchPath(dirs ...string) Option {
	return WithLocator(&PathLocator{Dirs: dirs})
}

// WithRequiredComponent overrides the component name the runtime reports.
// An empty name disables the library check.
func WithRequiredComponent(name string) Option {
	return func(p *Prober) {
		p.component = name
		p.componentSet = true
	}
}

// Prober computes and caches runtime availability.
// It is safe for concurrent use; concurrent first callers wait for a single
// probe to finish and then share its result.
type Prober struct {
	detector     backend.Detector
	locator      Locator
	component    string
	componentSet bool

	mu    sync.Mutex
	state State
	path  string
}

// New creates a prober for the given runtime. The probe itself runs on the
// first call to Available.
func New(d backend.Detector, opts ...Option) *Prober {
	p := &Prober{detector: d}
	for _, opt := range opts {
		opt(p)
	}
	if p.locator == nil {
		p.locator = NewPathLocator()
	}
	return p
}

// Available reports whether the runtime can be used, probing on first call.
func (p *Prober) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Unknown {
		p.state = p.probe()
	}
	return p.state == Available
}

// State returns the cached state without probing.
func (p *Prober) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ComponentPath returns where the runtime library was found, or "" if it
// was not needed or the probe has not succeeded.
func (p *Prober) ComponentPath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// probe must be called with p.mu held.
func (p *Prober) probe() State {
	log := hmd.Logger()
	if p.detector == nil {
		log.Debug("probe: no runtime")
		return Unavailable
	}

	d := p.detector.Detect()
	if !d.ServiceRunning || !d.HMDConnected {
		log.Debug("probe: runtime not ready",
			"service_running", d.ServiceRunning,
			"hmd_connected", d.HMDConnected)
		return Unavailable
	}

	name := p.component
	if !p.componentSet {
		name = p.detector.RequiredComponent()
	}
	if name != "" {
		path, err := p.locator.Locate(name)
		if err != nil {
			log.Debug("probe: runtime component missing", "component", name, "err", err)
			return Unavailable
		}
		p.path = path
	}

	log.Debug("probe: runtime available", "component", p.path)
	return Available
}
