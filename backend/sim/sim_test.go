package sim

import (
	"errors"
	"testing"

	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/pose"
)

func openSession(t *testing.T, r *Runtime) backend.SessionID {
	t.Helper()
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	id, _, err := r.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return id
}

func TestRegistered(t *testing.T) {
	rt := backend.Get(backend.NameSim)
	if rt == nil {
		t.Fatal("sim runtime should be registered on import")
	}
	if rt.Name() != backend.NameSim {
		t.Errorf("Name() = %q, want %q", rt.Name(), backend.NameSim)
	}
}

func TestCreateSessionRequiresInitialize(t *testing.T) {
	r := New()
	if _, _, err := r.CreateSession(); !errors.Is(err, backend.ErrNotInitialized) {
		t.Fatalf("CreateSession() error = %v, want ErrNotInitialized", err)
	}
	if r.LastError().Code == 0 {
		t.Error("LastError() should record the failure")
	}
}

func TestSessionIdentity(t *testing.T) {
	r := New()
	a := openSession(t, r)
	b, _, err := r.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if a.IsZero() || b.IsZero() {
		t.Fatal("session ids must not be zero")
	}
	if a == b {
		t.Errorf("sessions share id %v", a)
	}
	if got := r.Stats().LiveSessions; got != 2 {
		t.Errorf("LiveSessions = %d, want 2", got)
	}

	r.Shutdown()
	if r.Initialized() {
		t.Error("Initialized() = true after Shutdown")
	}
	if got := r.Stats().LiveSessions; got != 0 {
		t.Errorf("LiveSessions after Shutdown = %d, want 0", got)
	}
}

func TestChainRotatesOnCommit(t *testing.T) {
	r := New()
	id := openSession(t, r)

	ch, err := r.CreateChain(id, backend.EyeChainDesc(64, 32))
	if err != nil {
		t.Fatalf("CreateChain() error = %v", err)
	}
	n, err := r.ChainLength(id, ch)
	if err != nil || n != DefaultChainLength {
		t.Fatalf("ChainLength() = %d, %v, want %d", n, err, DefaultChainLength)
	}

	seen := make(map[backend.TextureName]bool)
	for i := 0; i < n; i++ {
		idx, err := r.ChainCurrentIndex(id, ch)
		if err != nil {
			t.Fatalf("ChainCurrentIndex() error = %v", err)
		}
		if idx != i {
			t.Errorf("frame %d: current index = %d, want %d", i, idx, i)
		}
		tex, err := r.ChainBuffer(id, ch, idx)
		if err != nil {
			t.Fatalf("ChainBuffer(%d) error = %v", idx, err)
		}
		seen[tex] = true
		if err := r.CommitChain(id, ch); err != nil {
			t.Fatalf("CommitChain() error = %v", err)
		}
	}
	if len(seen) != n {
		t.Errorf("saw %d distinct textures, want %d", len(seen), n)
	}
	if idx, _ := r.ChainCurrentIndex(id, ch); idx != 0 {
		t.Errorf("index after full rotation = %d, want 0", idx)
	}

	r.DestroyChain(id, ch)
	if _, err := r.ChainLength(id, ch); !errors.Is(err, backend.ErrInvalidChain) {
		t.Errorf("ChainLength() after destroy error = %v, want ErrInvalidChain", err)
	}
}

func TestChainBufferOutOfRange(t *testing.T) {
	r := New()
	id := openSession(t, r)
	ch, err := r.CreateChain(id, backend.EyeChainDesc(8, 8))
	if err != nil {
		t.Fatalf("CreateChain() error = %v", err)
	}
	if _, err := r.ChainBuffer(id, ch, DefaultChainLength); err == nil {
		t.Error("ChainBuffer() past the end should fail")
	}
}

func TestInjectedFailures(t *testing.T) {
	r := New(WithFailure(OpInitialize))
	if err := r.Initialize(); err == nil {
		t.Fatal("Initialize() should fail when injected")
	}
	if msg := r.LastError().Message; msg != "sim: injected initialize failure" {
		t.Errorf("LastError().Message = %q", msg)
	}

	r.Fail(OpInitialize, false)
	id := openSession(t, r)

	r.Fail(OpCreateChain, true)
	if _, err := r.CreateChain(id, backend.EyeChainDesc(8, 8)); err == nil {
		t.Error("CreateChain() should fail when injected")
	}
	r.Fail(OpCreateChain, false)

	ch, err := r.CreateChain(id, backend.EyeChainDesc(8, 8))
	if err != nil {
		t.Fatalf("CreateChain() error = %v", err)
	}
	r.Fail(OpCommit, true)
	if err := r.CommitChain(id, ch); err == nil {
		t.Error("CommitChain() should fail when injected")
	}
}

func TestZeroLengthChain(t *testing.T) {
	r := New(WithChainLength(0))
	id := openSession(t, r)
	ch, err := r.CreateChain(id, backend.EyeChainDesc(8, 8))
	if err != nil {
		t.Fatalf("CreateChain() error = %v", err)
	}
	if n, err := r.ChainLength(id, ch); err != nil || n != 0 {
		t.Errorf("ChainLength() = %d, %v, want 0, nil", n, err)
	}
}

func TestHandState(t *testing.T) {
	r := New()
	id := openSession(t, r)

	if _, err := r.HandState(id, pose.Left); !errors.Is(err, backend.ErrNotTracked) {
		t.Errorf("HandState() before feed error = %v, want ErrNotTracked", err)
	}

	want := pose.PoseState{Position: pose.V3(0.1, 1, -0.2), Orientation: pose.IdentityQuat()}
	r.SetHandState(pose.Left, want)
	got, err := r.HandState(id, pose.Left)
	if err != nil {
		t.Fatalf("HandState() error = %v", err)
	}
	if got != want {
		t.Errorf("HandState() = %+v, want %+v", got, want)
	}
}
