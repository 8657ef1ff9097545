package backend_test

import (
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/backend/sim"
)

func TestRegistrySimRegistered(t *testing.T) {
	// Sim runtime is auto-registered via init()
	if !backend.IsRegistered(backend.NameSim) {
		t.Fatal("sim runtime should be auto-registered")
	}
	if !slices.Contains(backend.Available(), backend.NameSim) {
		t.Errorf("Available() = %v, want it to contain %q", backend.Available(), backend.NameSim)
	}
	if rt := backend.Get(backend.NameSim); rt == nil {
		t.Error("Get(sim) returned nil")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	if rt := backend.Get("nonexistent"); rt != nil {
		t.Errorf("Get(nonexistent) = %v, want nil", rt)
	}
}

func TestRegistryDefaultFallsBackToSim(t *testing.T) {
	rt := backend.Default()
	if rt == nil {
		t.Fatal("Default() returned nil")
	}
	if rt.Name() != backend.NameSim {
		t.Errorf("Default().Name() = %q, want %q", rt.Name(), backend.NameSim)
	}
}

func TestRegistryDefaultPrefersVendor(t *testing.T) {
	vendor := sim.New()
	backend.Register("vendor", func() backend.Runtime { return vendor })
	backend.Register("compiled-out", func() backend.Runtime { return nil })
	t.Cleanup(func() {
		backend.Unregister("vendor")
		backend.Unregister("compiled-out")
	})

	if got := backend.Default(); got != vendor {
		t.Errorf("Default() = %v, want the vendor runtime", got)
	}
}

func TestRegistryUnregister(t *testing.T) {
	backend.Register("temp", func() backend.Runtime { return sim.New() })
	if !backend.IsRegistered("temp") {
		t.Fatal("temp should be registered")
	}
	backend.Unregister("temp")
	if backend.IsRegistered("temp") {
		t.Error("temp should be unregistered")
	}
}

func TestEyeChainDesc(t *testing.T) {
	d := backend.EyeChainDesc(1344, 1600)

	if d.Size.Width != 1344 || d.Size.Height != 1600 {
		t.Errorf("Size = %dx%d, want 1344x1600", d.Size.Width, d.Size.Height)
	}
	if d.Size.DepthOrArrayLayers != 1 {
		t.Errorf("array size = %d, want 1", d.Size.DepthOrArrayLayers)
	}
	if d.Format != gputypes.TextureFormatRGBA8UnormSrgb || !d.Format.IsSrgb() {
		t.Errorf("Format = %v, want RGBA8UnormSrgb", d.Format)
	}
	if d.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Dimension = %v, want 2D", d.Dimension)
	}
	if d.MipLevelCount != 1 || d.SampleCount != 1 {
		t.Errorf("mips=%d samples=%d, want 1 and 1", d.MipLevelCount, d.SampleCount)
	}
	if d.StaticImage {
		t.Error("eye chains must not be static images")
	}
}

func TestErrorInfoString(t *testing.T) {
	if got := (backend.ErrorInfo{Code: -1006}).String(); got != "result -1006" {
		t.Errorf("String() = %q, want %q", got, "result -1006")
	}
	if got := (backend.ErrorInfo{Code: -1, Message: "lost"}).String(); got != "lost" {
		t.Errorf("String() = %q, want %q", got, "lost")
	}
}

func TestSessionID(t *testing.T) {
	var zero backend.SessionID
	if !zero.IsZero() {
		t.Error("zero SessionID should report IsZero")
	}
	id := backend.NewSessionID()
	if id.IsZero() {
		t.Error("NewSessionID() returned zero id")
	}
	if len(id.String()) != 36 {
		t.Errorf("String() = %q, want canonical UUID form", id.String())
	}
}
