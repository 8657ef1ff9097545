// Package glstate tracks graphics-context state in software.
//
// Context implements swapchain.GraphicsContext without a GPU: it records
// framebuffer bindings, color attachments and per-texture sampler state,
// and flags calls a real driver would reject. It stands in for the host's
// graphics context in tests and in the demo.
package glstate

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hmd/backend"
	"github.com/gogpu/hmd/swapchain"
)

// Sampling is the sampler state stored on a texture.
type Sampling struct {
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	WrapS     gputypes.AddressMode
	WrapT     gputypes.AddressMode
}

// Framebuffer is the state of one framebuffer object.
type Framebuffer struct {
	Color backend.TextureName
}

// Context is a software graphics context. It is not safe for concurrent
// use, matching a real context bound to one thread.
type Context struct {
	next         swapchain.FramebufferName
	framebuffers map[swapchain.FramebufferName]*Framebuffer
	draw, read   swapchain.FramebufferName
	texture      backend.TextureName
	sampling     map[backend.TextureName]Sampling
	errs         []error
	calls        int
}

// New returns an empty context with only the default framebuffer bound.
func New() *Context {
	return &Context{
		framebuffers: make(map[swapchain.FramebufferName]*Framebuffer),
		sampling:     make(map[backend.TextureName]Sampling),
	}
}

// GenFramebuffer creates a framebuffer object.
func (c *Context) GenFramebuffer() swapchain.FramebufferName {
	c.calls++
	c.next++
	c.framebuffers[c.next] = &Framebuffer{}
	return c.next
}

// DeleteFramebuffer destroys a framebuffer, unbinding it if bound.
func (c *Context) DeleteFramebuffer(fb swapchain.FramebufferName) {
	c.calls++
	if fb == 0 {
		return
	}
	if _, ok := c.framebuffers[fb]; !ok {
		c.fail("DeleteFramebuffer(%d): unknown framebuffer", fb)
		return
	}
	delete(c.framebuffers, fb)
	if c.draw == fb {
		c.draw = 0
	}
	if c.read == fb {
		c.read = 0
	}
}

// BindFramebuffer binds fb to target.
func (c *Context) BindFramebuffer(target swapchain.FramebufferTarget, fb swapchain.FramebufferName) {
	c.calls++
	if _, ok := c.framebuffers[fb]; fb != 0 && !ok {
		c.fail("BindFramebuffer(%v, %d): unknown framebuffer", target, fb)
		return
	}
	switch target {
	case swapchain.FramebufferDraw:
		c.draw = fb
	case swapchain.FramebufferRead:
		c.read = fb
	case swapchain.FramebufferBoth:
		c.draw, c.read = fb, fb
	default:
		c.fail("BindFramebuffer(%v): invalid target", target)
	}
}

// FramebufferColorTexture sets the color attachment of the framebuffer
// bound to target. For FramebufferBoth the draw binding is used.
func (c *Context) FramebufferColorTexture(target swapchain.FramebufferTarget, tex backend.TextureName) {
	c.calls++
	fb := c.Bound(target)
	if fb == 0 {
		c.fail("FramebufferColorTexture(%v, %d): default framebuffer bound", target, tex)
		return
	}
	c.framebuffers[fb].Color = tex
}

// BindTexture binds tex as the current 2D texture.
func (c *Context) BindTexture(tex backend.TextureName) {
	c.calls++
	c.texture = tex
}

// TextureFilter sets filtering on the bound texture.
func (c *Context) TextureFilter(minFilter, magFilter gputypes.FilterMode) {
	c.calls++
	if c.texture == 0 {
		c.fail("TextureFilter: no texture bound")
		return
	}
	s := c.sampling[c.texture]
	s.MinFilter, s.MagFilter = minFilter, magFilter
	c.sampling[c.texture] = s
}

// TextureWrap sets wrapping on the bound texture.
func (c *Context) TextureWrap(s, t gputypes.AddressMode) {
	c.calls++
	if c.texture == 0 {
		c.fail("TextureWrap: no texture bound")
		return
	}
	smp := c.sampling[c.texture]
	smp.WrapS, smp.WrapT = s, t
	c.sampling[c.texture] = smp
}

// Bound returns the framebuffer bound to target.
// For FramebufferBoth it returns the draw binding.
func (c *Context) Bound(target swapchain.FramebufferTarget) swapchain.FramebufferName {
	if target == swapchain.FramebufferRead {
		return c.read
	}
	return c.draw
}

// BoundTexture returns the current 2D texture binding.
func (c *Context) BoundTexture() backend.TextureName {
	return c.texture
}

// Framebuffer returns a copy of a framebuffer's state.
func (c *Context) Framebuffer(fb swapchain.FramebufferName) (Framebuffer, bool) {
	f, ok := c.framebuffers[fb]
	if !ok {
		return Framebuffer{}, false
	}
	return *f, true
}

// Framebuffers returns the number of live framebuffer objects.
func (c *Context) Framebuffers() int {
	return len(c.framebuffers)
}

// Sampling returns the sampler state set on tex.
func (c *Context) Sampling(tex backend.TextureName) (Sampling, bool) {
	s, ok := c.sampling[tex]
	return s, ok
}

// Errors returns every call a driver would have rejected.
func (c *Context) Errors() []error {
	return c.errs
}

// Calls returns the number of graphics calls made.
func (c *Context) Calls() int {
	return c.calls
}

func (c *Context) fail(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf("glstate: "+format, args...))
}

var _ swapchain.GraphicsContext = (*Context)(nil)
