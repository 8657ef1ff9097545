// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"errors"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/hmd"
	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/session"
)

// Target usage errors.
var (
	// ErrSessionInvalid is returned when the borrowed session is not open.
	ErrSessionInvalid = errors.New("swapchain: session not valid")

	// ErrNoGraphics is returned by New without a graphics context.
	ErrNoGraphics = errors.New("swapchain: nil graphics context")

	// ErrInvalidSize is returned by Resize for non-positive dimensions.
	ErrInvalidSize = errors.New("swapchain: invalid size")

	// ErrNotConfigured is returned by Bind and Commit before Resize.
	ErrNotConfigured = errors.New("swapchain: target not configured")

	// ErrBound is returned when an operation needs the target unbound.
	ErrBound = errors.New("swapchain: target is bound")

	// ErrNotBound is returned by Unbind without a matching Bind.
	ErrNotBound = errors.New("swapchain: target is not bound")

	// ErrDestroyed is returned for any use after Destroy.
	ErrDestroyed = errors.New("swapchain: target destroyed")
)

type targetState uint8

const (
	stateUnconfigured targetState = iota
	stateReady
	stateBound
	stateDestroyed
)

// Target is a framebuffer whose color attachment is a runtime swap chain.
//
// The Target owns its framebuffer and its chain. It borrows the session:
// it neither extends the session's lifetime nor survives its teardown.
type Target struct {
	sess *session.Session
	gl   GraphicsContext

	fbo    FramebufferName
	chain  backend.ChainID
	desc   backend.ChainDesc
	length int

	state    targetState
	attached backend.TextureName
}

// New creates an unconfigured target. Call Resize before the first frame.
func New(sess *session.Session, gl GraphicsContext) (*Target, error) {
	if !sess.Valid() {
		return nil, ErrSessionInvalid
	}
	if gl == nil {
		return nil, ErrNoGraphics
	}
	return &Target{
		sess: sess,
		gl:   gl,
		fbo:  gl.GenFramebuffer(),
	}, nil
}

// Resize replaces the swap chain with one of the given size.
//
// The old chain is detached and destroyed before the new one is created.
// Every buffer of the new chain gets linear filtering and clamp-to-edge
// wrapping. A chain that cannot be created or reports no buffers is an
// unrecoverable fault.
func (t *Target) Resize(width, height int) error {
	switch {
	case t.state == stateDestroyed:
		return ErrDestroyed
	case t.state == stateBound:
		return ErrBound
	case width <= 0 || height <= 0 || uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32:
		return ErrInvalidSize
	case !t.sess.Valid():
		return ErrSessionInvalid
	}

	t.gl.BindFramebuffer(FramebufferDraw, t.fbo)
	t.gl.FramebufferColorTexture(FramebufferDraw, 0)
	t.gl.BindFramebuffer(FramebufferDraw, 0)

	t.destroyChain()
	t.state = stateUnconfigured

	rt := t.sess.Runtime()
	id := t.sess.ID()

	desc := backend.EyeChainDesc(uint32(width), uint32(height))
	chain, err := rt.CreateChain(id, desc)
	if err != nil {
		return hmd.Fatal(rt, "swapchain.Resize", "failed to create swap textures", err)
	}
	t.chain = chain
	t.desc = desc

	length, err := rt.ChainLength(id, chain)
	if err != nil || length == 0 {
		t.destroyChain()
		return hmd.Fatal(rt, "swapchain.Resize", "unable to count swap chain textures", err)
	}

	for i := 0; i < length; i++ {
		tex, err := rt.ChainBuffer(id, chain, i)
		if err != nil {
			t.destroyChain()
			return hmd.Fatal(rt, "swapchain.Resize", "unable to resolve swap chain texture", err)
		}
		t.gl.BindTexture(tex)
		t.gl.TextureFilter(gputypes.FilterModeLinear, gputypes.FilterModeLinear)
		t.gl.TextureWrap(gputypes.AddressModeClampToEdge, gputypes.AddressModeClampToEdge)
	}
	t.gl.BindTexture(0)

	t.length = length
	t.state = stateReady
	hmd.Logger().Debug("swapchain: resized",
		"width", width,
		"height", height,
		"format", desc.Format.String(),
		"length", length)
	return nil
}

// Bind attaches the chain's writable texture to the target's framebuffer
// and binds the framebuffer to target.
func (t *Target) Bind(target FramebufferTarget) error {
	if err := t.ready(); err != nil {
		return err
	}

	rt := t.sess.Runtime()
	id := t.sess.ID()

	index, err := rt.ChainCurrentIndex(id, t.chain)
	if err != nil {
		return hmd.Fatal(rt, "swapchain.Bind", "unable to query swap chain index", err)
	}
	tex, err := rt.ChainBuffer(id, t.chain, index)
	if err != nil {
		return hmd.Fatal(rt, "swapchain.Bind", "unable to resolve swap chain texture", err)
	}

	t.gl.BindFramebuffer(target, t.fbo)
	t.gl.FramebufferColorTexture(target, tex)

	t.state = stateBound
	t.attached = tex
	return nil
}

// Unbind detaches the color attachment and restores the default
// framebuffer on target.
func (t *Target) Unbind(target FramebufferTarget) error {
	switch t.state {
	case stateDestroyed:
		return ErrDestroyed
	case stateBound:
	default:
		return ErrNotBound
	}

	t.gl.FramebufferColorTexture(target, 0)
	t.gl.BindFramebuffer(target, 0)

	t.state = stateReady
	t.attached = 0
	return nil
}

// Commit hands the rendered texture to the compositor. The writable index
// advances, so the next frame must Bind again. A rejected commit is an
// unrecoverable fault.
func (t *Target) Commit() error {
	if err := t.ready(); err != nil {
		return err
	}

	rt := t.sess.Runtime()
	if err := rt.CommitChain(t.sess.ID(), t.chain); err != nil {
		return hmd.Fatal(rt, "swapchain.Commit", "failed to commit swap chain", err)
	}
	return nil
}

// Destroy releases the chain and the framebuffer. The target cannot be
// used afterwards. Destroy is idempotent.
func (t *Target) Destroy() {
	if t.state == stateDestroyed {
		return
	}
	t.destroyChain()
	t.gl.DeleteFramebuffer(t.fbo)
	t.fbo = 0
	t.attached = 0
	t.state = stateDestroyed
}

// Width returns the chain width in pixels, or 0 before Resize.
func (t *Target) Width() int {
	return int(t.desc.Size.Width)
}

// Height returns the chain height in pixels, or 0 before Resize.
func (t *Target) Height() int {
	return int(t.desc.Size.Height)
}

// Format returns the pixel format of the chain's textures.
func (t *Target) Format() gputypes.TextureFormat {
	return t.desc.Format
}

// Length returns the number of buffers in the chain, or 0 before Resize.
func (t *Target) Length() int {
	return t.length
}

// Framebuffer returns the framebuffer owned by the target.
func (t *Target) Framebuffer() FramebufferName {
	return t.fbo
}

// Attached returns the texture currently attached by Bind, or 0.
func (t *Target) Attached() backend.TextureName {
	return t.attached
}

// Bound reports whether the target is between Bind and Unbind.
func (t *Target) Bound() bool {
	return t.state == stateBound
}

// ready checks the target can Bind or Commit.
func (t *Target) ready() error {
	switch t.state {
	case stateDestroyed:
		return ErrDestroyed
	case stateUnconfigured:
		return ErrNotConfigured
	case stateBound:
		return ErrBound
	}
	if !t.sess.Valid() {
		return ErrSessionInvalid
	}
	return nil
}

func (t *Target) destroyChain() {
	if t.chain == 0 {
		return
	}
	t.sess.Runtime().DestroyChain(t.sess.ID(), t.chain)
	t.chain = 0
	t.length = 0
	t.desc = backend.ChainDesc{}
}

var _ gpucontext.Texture = (*Target)(nil)
