package glstate

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/hmd/swapchain"
)

func TestFramebufferBinding(t *testing.T) {
	c := New()
	fb := c.GenFramebuffer()
	if fb == 0 {
		t.Fatal("GenFramebuffer() returned the default framebuffer")
	}

	c.BindFramebuffer(swapchain.FramebufferBoth, fb)
	if c.Bound(swapchain.FramebufferDraw) != fb || c.Bound(swapchain.FramebufferRead) != fb {
		t.Errorf("Both binding: draw=%d read=%d, want %d", c.Bound(swapchain.FramebufferDraw), c.Bound(swapchain.FramebufferRead), fb)
	}

	c.FramebufferColorTexture(swapchain.FramebufferDraw, 42)
	if f, _ := c.Framebuffer(fb); f.Color != 42 {
		t.Errorf("Color = %d, want 42", f.Color)
	}

	c.BindFramebuffer(swapchain.FramebufferRead, 0)
	if c.Bound(swapchain.FramebufferRead) != 0 || c.Bound(swapchain.FramebufferDraw) != fb {
		t.Error("unbinding read must not touch draw")
	}

	c.DeleteFramebuffer(fb)
	if c.Framebuffers() != 0 || c.Bound(swapchain.FramebufferDraw) != 0 {
		t.Error("DeleteFramebuffer should remove and unbind the framebuffer")
	}
	if len(c.Errors()) != 0 {
		t.Errorf("unexpected errors: %v", c.Errors())
	}
}

func TestRejectedCalls(t *testing.T) {
	c := New()
	c.FramebufferColorTexture(swapchain.FramebufferDraw, 1)
	c.BindFramebuffer(swapchain.FramebufferDraw, 99)
	c.TextureFilter(gputypes.FilterModeLinear, gputypes.FilterModeLinear)
	c.TextureWrap(gputypes.AddressModeClampToEdge, gputypes.AddressModeClampToEdge)
	c.DeleteFramebuffer(7)

	if got := len(c.Errors()); got != 5 {
		t.Errorf("len(Errors()) = %d, want 5: %v", got, c.Errors())
	}
	if c.Calls() != 5 {
		t.Errorf("Calls() = %d, want 5", c.Calls())
	}
}

func TestSampling(t *testing.T) {
	c := New()
	c.BindTexture(3)
	c.TextureFilter(gputypes.FilterModeLinear, gputypes.FilterModeNearest)
	c.TextureWrap(gputypes.AddressModeClampToEdge, gputypes.AddressModeRepeat)

	got, ok := c.Sampling(3)
	want := Sampling{
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeNearest,
		WrapS:     gputypes.AddressModeClampToEdge,
		WrapT:     gputypes.AddressModeRepeat,
	}
	if !ok || got != want {
		t.Errorf("Sampling(3) = %+v, %v; want %+v", got, ok, want)
	}
	if _, ok := c.Sampling(4); ok {
		t.Error("Sampling(4) should not exist")
	}
	if c.BoundTexture() != 3 {
		t.Errorf("BoundTexture() = %d, want 3", c.BoundTexture())
	}
}
