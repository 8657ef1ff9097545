// Package hmd manages a head-mounted-display session against a VR runtime.
//
// # Overview
//
// hmd is split into small packages that a host application wires together:
//
//   - probe: one-time check that the runtime service is running, a headset is
//     attached and the runtime library can be found
//   - session: reference-counted ownership of the single runtime session
//   - swapchain: a framebuffer whose color attachment follows the texture the
//     runtime currently considers writable
//   - pose: conversion of raw controller samples into hand-anchored poses
//   - backend: the contract a vendor runtime implements, plus a registry
//
// This package holds what they share: the logger, the error taxonomy and the
// diagnostics helpers that attach the runtime's own error string to
// warnings and faults.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/hmd/backend"
//	    _ "github.com/gogpu/hmd/backend/sim"
//	    "github.com/gogpu/hmd/session"
//	    "github.com/gogpu/hmd/swapchain"
//	)
//
//	mgr := session.NewManager(backend.Default())
//	sess, err := mgr.Acquire()
//	if err != nil {
//	    // Run without VR; retry later if desired.
//	}
//	defer mgr.Release(sess)
//
//	target, err := swapchain.New(sess, gl)
//	if err := target.Resize(1344, 1600); err != nil { ... }
//	for {
//	    target.Bind(swapchain.FramebufferDraw)
//	    // render the eye
//	    target.Unbind(swapchain.FramebufferDraw)
//	    if err := target.Commit(); err != nil { ... }
//	}
//
// # Errors
//
// Expected conditions (no headset, runtime refused to start) come back as
// ordinary errors wrapping [ErrUnavailable] or [ErrBackend]; callers fall
// back to a non-VR path or retry. Broken invariants of the render pipeline
// come back as [*UnrecoverableError]; callers should stop using the session
// and either exit or tear everything down and start over.
//
// # Logging
//
// hmd is silent by default. Call [SetLogger] to route diagnostics to a
// [log/slog] logger.
package hmd
