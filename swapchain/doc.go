// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package swapchain provides a render target backed by a runtime swap chain.
//
// The VR runtime, not the application, owns the color textures an eye is
// rendered into. It keeps them in a ring so the compositor can read a
// finished frame while the next one is being drawn. A [Target] wraps one
// such ring together with a framebuffer the application owns, and keeps
// the framebuffer's color attachment pointed at whichever texture the
// runtime currently considers writable.
//
// # Frame Protocol
//
// The render loop drives a Target once per frame:
//
//	target.Bind(swapchain.FramebufferDraw)   // attach the writable texture
//	// ... render the eye into the bound framebuffer ...
//	target.Unbind(swapchain.FramebufferDraw) // detach it
//	target.Commit()                          // hand it to the compositor
//
// Bind must be called again after every Commit because the writable index
// advances. Resize recreates the ring and may be called between frames.
//
// # Threading
//
// All methods must be called from the thread that owns the graphics
// context. Target has no synchronization of its own.
//
// # Errors
//
// Calling methods out of order returns one of the sentinel errors below.
// A runtime that cannot create a chain, reports an empty chain or rejects a
// commit yields an [*hmd.UnrecoverableError]; the render pipeline must not
// continue with this target.
package swapchain
