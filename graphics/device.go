package graphics

import (
	"fmt"

	"github.com/richinsley/shaderlive/uniforms"
)

// Program is a handle to a linked GPU program. Zero is never a valid program.
type Program uint32

// Stage names the pipeline stage a CompileError came from.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError carries the driver info log of a failed compile or link.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("failed to link program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// Device is the GPU side of the harness. All methods must be called on the thread
// that owns the context.
type Device interface {
	// CompileProgram compiles and links a vertex and fragment stage. Failures are
	// reported as *CompileError.
	CompileProgram(vertexSource, fragmentSource string) (Program, error)
	// DeleteProgram releases a program returned by CompileProgram.
	DeleteProgram(p Program)
	Viewport(width, height int)
	Clear(rgba [4]float32)
	// Draw renders the full screen quad with p and the given uniforms.
	Draw(p Program, u *uniforms.Pack) error
	// Destroy releases the quad geometry.
	Destroy()
}
