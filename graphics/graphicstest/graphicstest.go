// Package graphicstest provides in-memory graphics.Device and graphics.Context
// implementations for tests.
package graphicstest

import (
	"errors"
	"strings"

	"github.com/richinsley/shaderlive/graphics"
	"github.com/richinsley/shaderlive/uniforms"
)

// BrokenMarker makes Device.CompileProgram fail when it appears in a fragment source.
const BrokenMarker = "intentional syntax error"

// DrawCall records one Device.Draw.
type DrawCall struct {
	Program  graphics.Program
	Fragment string
	Uniforms uniforms.Pack
}

// Device is a fake GPU that tracks program lifetimes.
type Device struct {
	Compiles    int
	Clears      [][4]float32
	Viewports   [][2]int
	Draws       []DrawCall
	Deleted     map[graphics.Program]int
	DoubleFrees int
	Destroyed   bool
	// DrawErr, when set, is returned by every Draw.
	DrawErr error

	next graphics.Program
	live map[graphics.Program]string
}

func NewDevice() *Device {
	return &Device{
		Deleted: make(map[graphics.Program]int),
		live:    make(map[graphics.Program]string),
	}
}

func (d *Device) CompileProgram(vertexSource, fragmentSource string) (graphics.Program, error) {
	d.Compiles++
	if strings.Contains(fragmentSource, BrokenMarker) {
		return 0, &graphics.CompileError{Stage: graphics.StageFragment, Log: "0:1(1): error: syntax error, unexpected IDENTIFIER"}
	}
	if strings.TrimSpace(vertexSource) == "" {
		return 0, &graphics.CompileError{Stage: graphics.StageVertex, Log: "empty vertex shader"}
	}
	d.next++
	d.live[d.next] = fragmentSource
	return d.next, nil
}

func (d *Device) DeleteProgram(p graphics.Program) {
	d.Deleted[p]++
	if _, ok := d.live[p]; !ok {
		d.DoubleFrees++
		return
	}
	delete(d.live, p)
}

func (d *Device) Viewport(width, height int) {
	d.Viewports = append(d.Viewports, [2]int{width, height})
}

func (d *Device) Clear(rgba [4]float32) {
	d.Clears = append(d.Clears, rgba)
}

func (d *Device) Draw(p graphics.Program, u *uniforms.Pack) error {
	frag, ok := d.live[p]
	if !ok {
		return errors.New("draw with dead program")
	}
	if d.DrawErr != nil {
		return d.DrawErr
	}
	d.Draws = append(d.Draws, DrawCall{Program: p, Fragment: frag, Uniforms: *u})
	return nil
}

func (d *Device) Destroy() {
	d.Destroyed = true
}

// Live returns the number of programs not yet deleted.
func (d *Device) Live() int {
	return len(d.live)
}

// Fragment returns the fragment source p was compiled from.
func (d *Device) Fragment(p graphics.Program) (string, bool) {
	src, ok := d.live[p]
	return src, ok
}

// Context is a fake window. It requests close after CloseAfter presented frames
// when CloseAfter is positive.
type Context struct {
	Width, Height int
	// Clock is returned by Time.
	Clock      float64
	FrameStep  float64
	CloseAfter int
	Frames     int
	Closed     bool
	Current    bool
	// OnEndFrame runs after each presented frame, before the close check.
	OnEndFrame func(frame int)
}

func (c *Context) MakeCurrent()                   { c.Current = true }
func (c *Context) Shutdown()                      { c.Closed = true }
func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }
func (c *Context) Time() float64                  { return c.Clock }

func (c *Context) ShouldClose() bool {
	return c.CloseAfter > 0 && c.Frames >= c.CloseAfter
}

func (c *Context) EndFrame() {
	c.Frames++
	c.Clock += c.FrameStep
	if c.OnEndFrame != nil {
		c.OnEndFrame(c.Frames)
	}
}
