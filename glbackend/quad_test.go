package glbackend

import (
	"testing"

	"github.com/richinsley/shaderlive/shader"
	"github.com/stretchr/testify/assert"
)

func TestQuadVerticesFormTriangleStrip(t *testing.T) {
	assert.Len(t, QuadVertices, quadVertexCount*quadComponents)

	want := [][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for i, v := range want {
		assert.Equal(t, v[0], QuadVertices[i*2], "vertex %d x", i)
		assert.Equal(t, v[1], QuadVertices[i*2+1], "vertex %d y", i)
	}
}

func TestTrimLog(t *testing.T) {
	assert.Equal(t, "0:3(1): error: syntax error", trimLog("0:3(1): error: syntax error\n\x00\x00"))
	assert.Equal(t, "", trimLog("\x00"))
}

func TestLookupUniforms(t *testing.T) {
	// a program that kept iTime, iFrame and the channel time array; the driver
	// reports the array by its first element
	linked := map[string]int32{
		"iTime":           3,
		"iFrame":          0,
		"iChannelTime[0]": 7,
	}
	var asked []string
	l := lookupUniforms(func(name string) int32 {
		asked = append(asked, name)
		if loc, ok := linked[name]; ok {
			return loc
		}
		return -1
	})

	assert.Equal(t, uniformLocations{
		shader.UniformTime:        3,
		shader.UniformFrame:       0,
		shader.UniformChannelTime: 7,
	}, l)
	for _, name := range shader.UniformNames {
		assert.Contains(t, asked, name+"[0]")
	}
	assert.NotContains(t, asked, "iChannelTime", "found by element name, bare name not needed")
}
