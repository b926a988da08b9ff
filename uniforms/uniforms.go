package uniforms

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSampleRate is reported through iSampleRate; no audio is produced.
const DefaultSampleRate = 44100

// Pack holds the per-frame values for the Shadertoy uniform block.
// A Pack is built fresh for every redraw and never stored across frames.
type Pack struct {
	Resolution        mgl32.Vec2
	Time              float32
	TimeDelta         float32
	Frame             int32
	ChannelTime       [4]float32
	ChannelResolution [4]mgl32.Vec3
	Mouse             mgl32.Vec4
	Date              mgl32.Vec4
	SampleRate        float32
}

// Packer derives uniform packs from successive frames.
type Packer struct {
	// Now returns the wall clock used for iDate. Defaults to time.Now.
	Now func() time.Time

	frame    int32
	lastTime float32
	started  bool
}

// NewPacker returns a packer whose first frame is frame 0.
func NewPacker() *Packer {
	return &Packer{Now: time.Now}
}

// Seconds converts elapsed time to seconds keeping microsecond granularity.
func Seconds(elapsed time.Duration) float32 {
	secs := elapsed / time.Second
	micros := (elapsed % time.Second) / time.Microsecond
	return float32(secs) + float32(micros)/1_000_000
}

// Next returns the pack for a frame rendered at elapsed time since launch into a
// framebuffer of width x height pixels.
func (p *Packer) Next(elapsed time.Duration, width, height int) *Pack {
	t := Seconds(elapsed)
	// the clock is monotonic, but guard float rounding so iTime never steps back
	if p.started && t < p.lastTime {
		t = p.lastTime
	}

	var dt float32
	if p.started {
		dt = t - p.lastTime
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	pack := &Pack{
		Resolution: mgl32.Vec2{float32(width), float32(height)},
		Time:       t,
		TimeDelta:  dt,
		Frame:      p.frame,
		Date:       Date(now()),
		SampleRate: DefaultSampleRate,
	}

	p.lastTime = t
	p.started = true
	p.frame++
	return pack
}

// Frame returns the index the next pack will carry.
func (p *Packer) Frame() int32 {
	return p.frame
}

// Date packs t as Shadertoy does: year, zero-based month, day and seconds since
// local midnight.
func Date(t time.Time) mgl32.Vec4 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return mgl32.Vec4{
		float32(t.Year()),
		float32(t.Month() - 1),
		float32(t.Day()),
		float32(t.Sub(midnight).Seconds()),
	}
}
