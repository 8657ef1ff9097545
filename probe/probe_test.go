package probe

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/backend/sim"
)

const component = "libvrruntime.so"

func componentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, component), []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Unknown, "unknown"},
		{Available, "available"},
		{Unavailable, "unavailable"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestAvailable(t *testing.T) {
	dir := componentDir(t)

	tests := []struct {
		name   string
		detect backend.DetectResult
		dirs   []string
		want   bool
	}{
		{"all present", backend.DetectResult{ServiceRunning: true, HMDConnected: true}, []string{dir}, true},
		{"service stopped", backend.DetectResult{HMDConnected: true}, []string{dir}, false},
		{"no headset", backend.DetectResult{ServiceRunning: true}, []string{dir}, false},
		{"component missing", backend.DetectResult{ServiceRunning: true, HMDConnected: true}, []string{t.TempDir()}, false},
		{"empty search path", backend.DetectResult{ServiceRunning: true, HMDConnected: true}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := sim.New(sim.WithDetectResult(tt.detect), sim.WithRequiredComponent(component))
			p := New(rt, WithSearchPath(tt.dirs...))

			if got := p.Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
			wantState := Unavailable
			if tt.want {
				wantState = Available
			}
			if got := p.State(); got != wantState {
				t.Errorf("State() = %v, want %v", got, wantState)
			}
		})
	}
}

func TestComponentPath(t *testing.T) {
	dir := componentDir(t)
	p := New(sim.New(sim.WithRequiredComponent(component)), WithSearchPath(t.TempDir(), dir))

	if p.ComponentPath() != "" {
		t.Error("ComponentPath() should be empty before probing")
	}
	if !p.Available() {
		t.Fatal("Available() = false, want true")
	}
	if got, want := p.ComponentPath(), filepath.Join(dir, component); got != want {
		t.Errorf("ComponentPath() = %q, want %q", got, want)
	}
}

func TestNoComponentRequired(t *testing.T) {
	p := New(sim.New(), WithSearchPath())
	if !p.Available() {
		t.Error("Available() = false for a runtime that needs no component")
	}
}

func TestWithRequiredComponentOverride(t *testing.T) {
	rt := sim.New(sim.WithRequiredComponent(component))

	p := New(rt, WithRequiredComponent(""), WithSearchPath())
	if !p.Available() {
		t.Error("empty override should disable the component check")
	}

	p = New(sim.New(), WithRequiredComponent(component), WithSearchPath(t.TempDir()))
	if p.Available() {
		t.Error("override should require the named component")
	}
}

func TestNilDetector(t *testing.T) {
	if New(nil).Available() {
		t.Error("Available() with no runtime = true, want false")
	}
}

func TestProbeIsCached(t *testing.T) {
	rt := sim.New()
	p := New(rt, WithSearchPath())

	if p.State() != Unknown {
		t.Fatalf("State() before probe = %v, want unknown", p.State())
	}
	for range 5 {
		if !p.Available() {
			t.Fatal("Available() = false, want true")
		}
	}

	// A headset unplugged later does not flip the cached answer.
	rt.SetDetectResult(backend.DetectResult{ServiceRunning: true})
	if !p.Available() {
		t.Error("cached result changed after detect state changed")
	}
	if got := rt.Stats().Detect; got != 1 {
		t.Errorf("Detect called %d times, want 1", got)
	}
}

func TestProbeConcurrentFirstCallers(t *testing.T) {
	rt := sim.New()
	p := New(rt, WithSearchPath())

	const callers = 64
	results := make([]bool, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.Available()
		}()
	}
	wg.Wait()

	for i, got := range results {
		if !got {
			t.Errorf("caller %d saw Available() = false", i)
		}
	}
	if got := rt.Stats().Detect; got != 1 {
		t.Errorf("Detect called %d times under concurrency, want 1", got)
	}
}

func TestPathLocator(t *testing.T) {
	dir := componentDir(t)
	sub := filepath.Join(t.TempDir(), component)
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	l := &PathLocator{Dirs: []string{"", filepath.Dir(sub), dir}}
	got, err := l.Locate(component)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if want := filepath.Join(dir, component); got != want {
		t.Errorf("Locate() = %q, want %q (directories must be skipped)", got, want)
	}

	if _, err := l.Locate("missing.so"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Locate(missing) error = %v, want ErrNotFound", err)
	}
}

func TestNewPathLocatorUsesPATH(t *testing.T) {
	dir := componentDir(t)
	t.Setenv("PATH", dir)

	if _, err := NewPathLocator().Locate(component); err != nil {
		t.Errorf("Locate() via PATH error = %v", err)
	}
}
