package graphics

// Context defines the interface for a window with a current OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	// ShouldClose reports whether a close was requested.
	ShouldClose() bool
	// EndFrame presents the back buffer and pumps pending window events.
	EndFrame()
	// GetFramebufferSize returns the live framebuffer size in pixels.
	GetFramebufferSize() (int, int)
	// Time returns seconds since the context was created on a monotonic clock.
	Time() float64
}
