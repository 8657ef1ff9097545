// Package backend defines the contract between hmd and a vendor VR runtime.
//
// A VR runtime is an opaque service reached through a session: it reports
// whether it is running and whether a headset is attached, opens and closes
// sessions, manages swap chains of color textures for the compositor, and
// reports controller tracking state. hmd never talks to a vendor SDK
// directly; it talks to a [Runtime].
//
// # Runtime Registration
//
// Runtimes are registered via init() functions and selected at runtime.
// The simulated runtime registers itself on import:
//
//	import _ "github.com/gogpu/hmd/backend/sim"
//
// # Runtime Selection
//
// Use Default() to get the preferred registered runtime, or Get() to
// request a specific runtime by name:
//
//	// Hardware runtimes win over the simulator.
//	rt := backend.Default()
//
//	// Or request a specific runtime
//	rt := backend.Get("sim")
//
// # Available Runtimes
//
// - "sim": in-process simulated runtime (always available once imported)
package backend
