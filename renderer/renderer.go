package renderer

import (
	"log"
	"time"

	"github.com/richinsley/shaderlive/graphics"
	"github.com/richinsley/shaderlive/telemetry"
	"github.com/richinsley/shaderlive/toy"
	"github.com/richinsley/shaderlive/uniforms"
)

// Background is cleared before every draw so a live window is visible even when the
// shader draws nothing.
var Background = [4]float32{0.0, 0.0, 1.0, 1.0}

// Programs supplies the program drawn each frame.
type Programs interface {
	Refresh() toy.Outcome
	Program() graphics.Program
	Close() error
}

// Renderer drives the per-frame loop: refresh, uniforms, clear, draw, present.
type Renderer struct {
	context  graphics.Context
	device   graphics.Device
	programs Programs
	packer   *uniforms.Packer
	ring     *telemetry.Ring

	startTime   float64
	lastDrawErr string
}

// NewRenderer makes the context current and starts the uniform clock. ring may be nil
// to disable telemetry.
func NewRenderer(ctx graphics.Context, device graphics.Device, programs Programs, ring *telemetry.Ring) *Renderer {
	ctx.MakeCurrent()
	return &Renderer{
		context:   ctx,
		device:    device,
		programs:  programs,
		packer:    uniforms.NewPacker(),
		ring:      ring,
		startTime: ctx.Time(),
	}
}

// Packer exposes the uniform packer, mainly so tests can pin the date.
func (r *Renderer) Packer() *uniforms.Packer {
	return r.packer
}

func (r *Renderer) elapsed() time.Duration {
	secs := r.context.Time() - r.startTime
	if secs < 0 {
		secs = 0
	}
	return time.Duration(secs * float64(time.Second))
}

// RenderFrame renders one frame into the back buffer and returns the uniforms it
// used. Draw failures are logged and never stop the loop.
func (r *Renderer) RenderFrame() *uniforms.Pack {
	r.programs.Refresh()

	width, height := r.context.GetFramebufferSize()
	pack := r.packer.Next(r.elapsed(), width, height)

	r.device.Viewport(width, height)
	r.device.Clear(Background)
	if err := r.device.Draw(r.programs.Program(), pack); err != nil {
		if msg := err.Error(); msg != r.lastDrawErr {
			r.lastDrawErr = msg
			log.Printf("Draw error on frame %d: %v", pack.Frame, err)
		}
	} else if r.lastDrawErr != "" {
		r.lastDrawErr = ""
		log.Printf("Drawing recovered on frame %d", pack.Frame)
	}
	return pack
}

// Run renders until the window asks to close. It never throttles; frame pacing is
// left to the swap interval of the context.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		frameStart := time.Now()
		r.RenderFrame()
		r.context.EndFrame()
		if r.ring != nil {
			r.ring.Record(time.Since(frameStart))
		}
	}
}

// Shutdown releases GPU resources in reverse creation order. The context itself is
// shut down by its owner.
func (r *Renderer) Shutdown() {
	if err := r.programs.Close(); err != nil {
		log.Printf("Warning: closing shader: %v", err)
	}
	r.device.Destroy()
}
