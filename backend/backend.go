package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/google/uuid"

	"github.com/gogpu/hmd/pose"
)

// Common runtime errors.
var (
	// ErrNotInitialized is returned when session operations are issued
	// before Initialize succeeded.
	ErrNotInitialized = errors.New("backend: runtime not initialized")

	// ErrInvalidSession is returned for operations on an unknown session.
	ErrInvalidSession = errors.New("backend: invalid session")

	// ErrInvalidChain is returned for operations on an unknown swap chain.
	ErrInvalidChain = errors.New("backend: invalid swap chain")

	// ErrNotTracked is returned when no tracking data exists for a device.
	ErrNotTracked = errors.New("backend: device not tracked")
)

// SessionID is the opaque identity token of an open runtime session.
// The zero value identifies no session.
type SessionID uuid.UUID

// NewSessionID mints a fresh random session identity.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// IsZero reports whether id identifies no session.
func (id SessionID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// String returns the canonical UUID text form.
func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

// ChainID identifies a swap chain within a session. Zero is no chain.
type ChainID uint64

// TextureName is a graphics-API texture name (a GL texture object).
// Zero is no texture.
type TextureName uint32

// DetectResult is the outcome of a runtime detection query.
type DetectResult struct {
	ServiceRunning bool
	HMDConnected   bool
}

// ErrorInfo describes the most recent error reported by a runtime.
type ErrorInfo struct {
	// Code is the vendor result code; zero means success.
	Code int32

	// Message is the human-readable error string.
	Message string
}

// String returns the message, or a code-only description if empty.
func (e ErrorInfo) String() string {
	if e.Message == "" {
		return fmt.Sprintf("result %d", e.Code)
	}
	return e.Message
}

// ChainDesc describes a swap chain of color textures.
type ChainDesc struct {
	// Size holds the pixel dimensions; DepthOrArrayLayers is the array size.
	Size gputypes.Extent3D

	// Format is the pixel format of every buffer in the chain.
	Format gputypes.TextureFormat

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// MipLevelCount is the number of mip levels per buffer.
	MipLevelCount uint32

	// SampleCount is the number of samples per texel.
	SampleCount uint32

	// StaticImage marks a chain that is committed once and never rotates.
	StaticImage bool
}

// EyeChainDesc returns the descriptor used for eye render targets:
// a single-level, single-layer, single-sample 2D RGBA8 sRGB chain.
func EyeChainDesc(width, height uint32) ChainDesc {
	return ChainDesc{
		Size: gputypes.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        gputypes.TextureFormatRGBA8UnormSrgb,
		Dimension:     gputypes.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	}
}

// Detector reports whether the runtime can be used at all.
type Detector interface {
	// Detect queries service and headset state. It must not require
	// Initialize and must be cheap enough to call once at startup.
	Detect() DetectResult

	// RequiredComponent names the shared library the runtime needs on the
	// search path, or "" if none is needed.
	RequiredComponent() string
}

// ErrorReporter exposes the runtime's last error.
type ErrorReporter interface {
	LastError() ErrorInfo
}

// ChainAPI manages runtime-owned swap chains.
type ChainAPI interface {
	// CreateChain allocates a new chain of textures.
	CreateChain(id SessionID, desc ChainDesc) (ChainID, error)

	// DestroyChain releases a chain. Unknown chains are ignored.
	DestroyChain(id SessionID, chain ChainID)

	// ChainLength returns the number of buffers in the chain.
	ChainLength(id SessionID, chain ChainID) (int, error)

	// ChainCurrentIndex returns the index of the buffer the application
	// should render into next.
	ChainCurrentIndex(id SessionID, chain ChainID) (int, error)

	// ChainBuffer resolves a buffer index to its texture.
	ChainBuffer(id SessionID, chain ChainID, index int) (TextureName, error)

	// CommitChain hands the current buffer to the compositor and advances
	// the current index.
	CommitChain(id SessionID, chain ChainID) error
}

// Runtime is a vendor VR runtime.
//
// Implementations are not required to be safe for concurrent use; hmd
// serializes session calls and drives chain calls from the graphics thread.
type Runtime interface {
	Detector
	ErrorReporter
	ChainAPI

	// Name returns the runtime identifier (e.g., "sim").
	Name() string

	// Initialize loads and initializes the runtime library.
	Initialize() error

	// Shutdown releases the runtime library. It is the inverse of Initialize.
	Shutdown()

	// CreateSession opens a session and reports the graphics adapter the
	// runtime requires the application to render with.
	CreateSession() (SessionID, gpucontext.AdapterInfo, error)

	// DestroySession closes a session. Unknown sessions are ignored.
	DestroySession(id SessionID)

	// HandState returns the latest raw tracking sample for a controller.
	HandState(id SessionID, hand pose.Handedness) (pose.PoseState, error)
}
