package uniforms

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 9, 1, 2, 3, 0, time.UTC)
}

func TestSecondsKeepsMicroseconds(t *testing.T) {
	assert.Equal(t, float32(0), Seconds(0))
	assert.Equal(t, float32(2), Seconds(2*time.Second))
	assert.InDelta(t, 1.000001, Seconds(time.Second+time.Microsecond), 1e-6)
	// sub-microsecond remainders are dropped
	assert.Equal(t, Seconds(3*time.Second+250*time.Millisecond), Seconds(3*time.Second+250*time.Millisecond+999))
}

func TestNextFrameCounterAndDelta(t *testing.T) {
	p := NewPacker()
	p.Now = fixedNow

	first := p.Next(0, 800, 600)
	assert.Equal(t, int32(0), first.Frame)
	assert.Equal(t, float32(0), first.TimeDelta)

	second := p.Next(500*time.Millisecond, 800, 600)
	assert.Equal(t, int32(1), second.Frame)
	assert.InDelta(t, 0.5, second.Time, 1e-6)
	assert.InDelta(t, 0.5, second.TimeDelta, 1e-6)
	assert.Equal(t, int32(2), p.Frame())
}

func TestTimeNeverDecreases(t *testing.T) {
	p := NewPacker()
	p.Now = fixedNow

	steps := []time.Duration{0, 10 * time.Millisecond, 5 * time.Millisecond, 40 * time.Millisecond, 40 * time.Millisecond}
	var last float32
	for i, d := range steps {
		pack := p.Next(d, 1, 1)
		require.GreaterOrEqual(t, pack.Time, last, "frame %d", i)
		require.GreaterOrEqual(t, pack.TimeDelta, float32(0), "frame %d", i)
		last = pack.Time
	}
}

func TestResolutionFollowsFramebuffer(t *testing.T) {
	p := NewPacker()
	p.Now = fixedNow

	assert.Equal(t, mgl32.Vec2{800, 600}, p.Next(0, 800, 600).Resolution)
	assert.Equal(t, mgl32.Vec2{1024, 768}, p.Next(time.Millisecond, 1024, 768).Resolution)
}

func TestUnusedChannelsAreZero(t *testing.T) {
	p := NewPacker()
	p.Now = fixedNow
	pack := p.Next(time.Second, 640, 480)

	assert.Equal(t, [4]float32{}, pack.ChannelTime)
	assert.Equal(t, [4]mgl32.Vec3{}, pack.ChannelResolution)
	assert.Equal(t, mgl32.Vec4{}, pack.Mouse)
	assert.Equal(t, float32(DefaultSampleRate), pack.SampleRate)
}

func TestDate(t *testing.T) {
	d := Date(fixedNow())
	assert.Equal(t, mgl32.Vec4{2024, 2, 9, 3723}, d)
}
