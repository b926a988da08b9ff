package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/shaderlive/graphics/graphicstest"
	"github.com/richinsley/shaderlive/shader"
	"github.com/richinsley/shaderlive/telemetry"
	"github.com/richinsley/shaderlive/toy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	redSource      = "void main() { fragColor = vec4(1.0, 0.0, 0.0, 1.0); }\n"
	greenSource    = "void main() { fragColor = vec4(0.0, 1.0, 0.0, 1.0); }\n"
	fallbackSource = "void main() { fragColor = vec4(fract(fragCoord), 0.0, 1.0); }\n"
	brokenSource   = graphicstest.BrokenMarker + "\n"
)

type harness struct {
	primary string
	device  *graphicstest.Device
	context *graphicstest.Context
	toy     *toy.ShaderToy
	errs    []error
	r       *Renderer
}

func newHarness(t *testing.T, primary, fallback string) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		primary: filepath.Join(dir, "shader.frag"),
		device:  graphicstest.NewDevice(),
		context: &graphicstest.Context{Width: 800, Height: 600, Clock: 12.5, FrameStep: 1.0 / 60},
	}
	if primary != "" {
		require.NoError(t, os.WriteFile(h.primary, []byte(primary), 0o644))
	}
	fallbackPath := filepath.Join(dir, "shader_default.frag")
	require.NoError(t, os.WriteFile(fallbackPath, []byte(fallback), 0o644))

	st, err := toy.New(h.device, h.primary, fallbackPath, toy.WithErrorSink(func(err error) {
		h.errs = append(h.errs, err)
	}))
	require.NoError(t, err)
	h.toy = st
	h.r = NewRenderer(h.context, h.device, st, telemetry.NewRing(16, 1000))
	h.r.Packer().Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return h
}

func (h *harness) write(t *testing.T, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.primary, []byte(src), 0o644))
}

func TestHappyPath(t *testing.T) {
	h := newHarness(t, redSource, fallbackSource)
	h.context.CloseAfter = 3

	h.r.Run()
	h.r.Shutdown()

	assert.True(t, h.context.Current)
	assert.Equal(t, 3, h.context.Frames)
	assert.Empty(t, h.errs)
	require.Len(t, h.device.Draws, 3)
	require.Len(t, h.device.Clears, 3)
	for i, d := range h.device.Draws {
		assert.Equal(t, Background, h.device.Clears[i])
		assert.Equal(t, shader.Fragment(redSource), d.Fragment)
		assert.Equal(t, int32(i), d.Uniforms.Frame)
	}
	assert.Equal(t, 0, h.device.Live())
	assert.True(t, h.device.Destroyed)
}

func TestStartupFallback(t *testing.T) {
	h := newHarness(t, brokenSource, fallbackSource)
	h.context.CloseAfter = 1

	h.r.Run()
	h.r.Shutdown()

	require.Len(t, h.errs, 1)
	assert.Contains(t, h.errs[0].Error(), "shader.frag")
	require.Len(t, h.device.Draws, 1)
	assert.Equal(t, shader.Fragment(fallbackSource), h.device.Draws[0].Fragment)
}

func TestLiveEditRecovery(t *testing.T) {
	h := newHarness(t, redSource, fallbackSource)
	h.context.CloseAfter = 6
	h.context.OnEndFrame = func(frame int) {
		switch frame {
		case 2:
			h.write(t, brokenSource)
		case 4:
			h.write(t, greenSource)
		}
	}

	h.r.Run()
	h.r.Shutdown()

	require.Len(t, h.device.Draws, 6)
	want := []string{redSource, redSource, redSource, redSource, greenSource, greenSource}
	for i, src := range want {
		assert.Equal(t, shader.Fragment(src), h.device.Draws[i].Fragment, "frame %d", i)
	}
	assert.Len(t, h.errs, 1, "broken source reported once")
	assert.Equal(t, 0, h.device.Live())
	assert.Equal(t, 0, h.device.DoubleFrees)
}

func TestResizeReachesNextFrame(t *testing.T) {
	h := newHarness(t, redSource, fallbackSource)

	first := h.r.RenderFrame()
	assert.Equal(t, mgl32.Vec2{800, 600}, first.Resolution)

	h.context.Width, h.context.Height = 1024, 768
	next := h.r.RenderFrame()
	assert.Equal(t, mgl32.Vec2{1024, 768}, next.Resolution)
	assert.Equal(t, [2]int{1024, 768}, h.device.Viewports[len(h.device.Viewports)-1])
	assert.Equal(t, mgl32.Vec2{1024, 768}, h.device.Draws[len(h.device.Draws)-1].Uniforms.Resolution)
}

func TestTimeStartsAtZeroAndIncreases(t *testing.T) {
	h := newHarness(t, redSource, fallbackSource)
	h.context.CloseAfter = 10

	h.r.Run()

	var last float32
	for i, d := range h.device.Draws {
		if i == 0 {
			assert.Equal(t, float32(0), d.Uniforms.Time)
		}
		assert.GreaterOrEqual(t, d.Uniforms.Time, last)
		last = d.Uniforms.Time
	}
	assert.InDelta(t, 9.0/60, last, 1e-4)
}

func TestDrawErrorsAreSoft(t *testing.T) {
	h := newHarness(t, redSource, fallbackSource)
	h.device.DrawErr = errors.New("context lost")
	h.context.CloseAfter = 3

	h.r.Run()

	assert.Equal(t, 3, h.context.Frames)
	assert.Len(t, h.device.Clears, 3)
}
