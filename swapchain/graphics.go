// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package swapchain

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/hmd/backend"
)

// FramebufferTarget selects the framebuffer binding point.
type FramebufferTarget uint8

const (
	// FramebufferDraw is the binding used for rendering.
	FramebufferDraw FramebufferTarget = iota

	// FramebufferRead is the binding used for reads and blits.
	FramebufferRead

	// FramebufferBoth binds draw and read at once.
	FramebufferBoth
)

// String returns the binding point name.
func (t FramebufferTarget) String() string {
	switch t {
	case FramebufferDraw:
		return "draw"
	case FramebufferRead:
		return "read"
	case FramebufferBoth:
		return "both"
	default:
		return "invalid"
	}
}

// FramebufferName is a graphics-API framebuffer object name.
// Zero is the default framebuffer.
type FramebufferName uint32

// GraphicsContext is the subset of the graphics API a Target needs.
//
// Implementations operate on a context that is already current on the
// calling thread.
type GraphicsContext interface {
	// GenFramebuffer creates a framebuffer object.
	GenFramebuffer() FramebufferName

	// DeleteFramebuffer destroys a framebuffer object.
	DeleteFramebuffer(fb FramebufferName)

	// BindFramebuffer binds fb to target. Zero restores the default.
	BindFramebuffer(target FramebufferTarget, fb FramebufferName)

	// FramebufferColorTexture attaches tex as color attachment 0 of the
	// framebuffer bound to target. Zero detaches.
	FramebufferColorTexture(target FramebufferTarget, tex backend.TextureName)

	// BindTexture binds tex as the current 2D texture. Zero unbinds.
	BindTexture(tex backend.TextureName)

	// TextureFilter sets minification and magnification filtering of the
	// bound texture.
	TextureFilter(minFilter, magFilter gputypes.FilterMode)

	// TextureWrap sets the wrap mode of the bound texture on both axes.
	TextureWrap(s, t gputypes.AddressMode)
}
