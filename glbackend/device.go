package glbackend

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/shaderlive/graphics"
	"github.com/richinsley/shaderlive/uniforms"
)

var glInitOnce sync.Once

// Device implements graphics.Device on a desktop OpenGL context.
type Device struct {
	quad      *Quad
	locations map[graphics.Program]uniformLocations
}

// New initializes the OpenGL bindings for the current context and uploads the quad.
// The context must already be current on the calling thread.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL %s, GLSL %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.PROGRAM_POINT_SIZE)

	quad, err := newQuad()
	if err != nil {
		return nil, err
	}

	return &Device{
		quad:      quad,
		locations: make(map[graphics.Program]uniformLocations),
	}, nil
}

func (d *Device) CompileProgram(vertexSource, fragmentSource string) (graphics.Program, error) {
	program, err := newProgram(vertexSource, fragmentSource)
	if err != nil {
		return 0, err
	}
	p := graphics.Program(program)
	d.locations[p] = programUniforms(program)
	return p, nil
}

func (d *Device) DeleteProgram(p graphics.Program) {
	if p == 0 {
		return
	}
	delete(d.locations, p)
	gl.DeleteProgram(uint32(p))
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(rgba [4]float32) {
	gl.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) Draw(p graphics.Program, u *uniforms.Pack) error {
	locs, ok := d.locations[p]
	if !ok {
		return fmt.Errorf("draw with unknown program %d", p)
	}
	gl.UseProgram(uint32(p))
	locs.apply(u)
	d.quad.draw()
	gl.UseProgram(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("draw failed: GL error 0x%x", code)
	}
	return nil
}

func (d *Device) Destroy() {
	for p := range d.locations {
		log.Printf("Warning: program %d still alive at device shutdown", p)
	}
	if d.quad != nil {
		d.quad.destroy()
		d.quad = nil
	}
}
