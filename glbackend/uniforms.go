package glbackend

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/shaderlive/shader"
	"github.com/richinsley/shaderlive/uniforms"
)

// uniformLocations caches the Shadertoy uniform locations of one program, keyed by
// name. Uniforms the linker optimised away are left out and skipped.
type uniformLocations map[string]int32

func location(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// lookupUniforms resolves every name in shader.UniformNames with locate. Arrays are
// tried by their first element as well; drivers disagree on which name they report.
func lookupUniforms(locate func(name string) int32) uniformLocations {
	l := make(uniformLocations, len(shader.UniformNames))
	for _, name := range shader.UniformNames {
		loc := locate(name + "[0]")
		if loc < 0 {
			loc = locate(name)
		}
		if loc >= 0 {
			l[name] = loc
		}
	}
	return l
}

func programUniforms(program uint32) uniformLocations {
	return lookupUniforms(func(name string) int32 { return location(program, name) })
}

// apply uploads u; the program must be in use.
func (l uniformLocations) apply(u *uniforms.Pack) {
	if loc, ok := l[shader.UniformResolution]; ok {
		gl.Uniform2fv(loc, 1, &u.Resolution[0])
	}
	if loc, ok := l[shader.UniformTime]; ok {
		gl.Uniform1f(loc, u.Time)
	}
	if loc, ok := l[shader.UniformTimeDelta]; ok {
		gl.Uniform1f(loc, u.TimeDelta)
	}
	if loc, ok := l[shader.UniformFrame]; ok {
		gl.Uniform1i(loc, u.Frame)
	}
	if loc, ok := l[shader.UniformChannelTime]; ok {
		gl.Uniform1fv(loc, int32(len(u.ChannelTime)), &u.ChannelTime[0])
	}
	if loc, ok := l[shader.UniformChannelResolution]; ok {
		gl.Uniform3fv(loc, int32(len(u.ChannelResolution)), &u.ChannelResolution[0][0])
	}
	if loc, ok := l[shader.UniformMouse]; ok {
		gl.Uniform4fv(loc, 1, &u.Mouse[0])
	}
	if loc, ok := l[shader.UniformDate]; ok {
		gl.Uniform4fv(loc, 1, &u.Date[0])
	}
	if loc, ok := l[shader.UniformSampleRate]; ok {
		gl.Uniform1f(loc, u.SampleRate)
	}
}
