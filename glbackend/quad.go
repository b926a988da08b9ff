package glbackend

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// QuadVertices is the full screen quad in triangle strip order.
var QuadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	-1.0, 1.0,
	1.0, 1.0,
}

const (
	quadComponents  = 2
	quadVertexCount = 4
	positionAttrib  = 0
)

// Quad owns the vertex array and buffer for the full screen strip. Immutable after upload.
type Quad struct {
	vao uint32
	vbo uint32
}

func newQuad() (*Quad, error) {
	q := &Quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(QuadVertices)*4, gl.Ptr(QuadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointer(positionAttrib, quadComponents, gl.FLOAT, false, quadComponents*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		q.destroy()
		return nil, fmt.Errorf("failed to upload quad: GL error 0x%x", code)
	}
	return q, nil
}

func (q *Quad) draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, quadVertexCount)
	gl.BindVertexArray(0)
}

func (q *Quad) destroy() {
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
}
