package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// ────────────────────────────────── Desktop GL ──────────────────────────────────

// Version is the GLSL version every stage is compiled with.
const Version = "#version 140\n"

// VertexSource passes the quad straight through to clip space and hands the same
// [-1, 1] position to the fragment stage as fragCoord.
const VertexSource = Version + `
in vec2 i_position;
out vec2 fragCoord;

void main() {
    fragCoord = i_position;
    gl_Position = vec4(i_position, 0.0, 1.0);
}
`

// Uniforms is the Shadertoy uniform block declared for every fragment program.
const Uniforms = `
uniform vec2  iResolution;           // viewport resolution (in pixels)
uniform float iTime;                 // shader playback time (in seconds)
uniform float iTimeDelta;            // render time (in seconds)
uniform int   iFrame;                // shader playback frame
uniform float iChannelTime[4];       // channel playback time (in seconds)
uniform vec3  iChannelResolution[4]; // channel resolution (in pixels)
uniform vec4  iMouse;                // mouse pixel coords
uniform vec4  iDate;                 // (year, month, day, time in seconds)
uniform float iSampleRate;           // sound sample rate (i.e., 44100)
`

// Varyings are the fragment stage inputs and outputs.
const Varyings = `
in vec2 fragCoord;
out vec4 fragColor;
`

// Prelude is prepended to every user fragment before compilation. User sources must
// not repeat any of it.
const Prelude = Version + Uniforms + Varyings

// AttribPosition is the single vertex attribute name, bound to location 0.
const AttribPosition = "i_position"

// Names of the uniforms declared in Uniforms.
const (
	UniformResolution        = "iResolution"
	UniformTime              = "iTime"
	UniformTimeDelta         = "iTimeDelta"
	UniformFrame             = "iFrame"
	UniformChannelTime       = "iChannelTime"
	UniformChannelResolution = "iChannelResolution"
	UniformMouse             = "iMouse"
	UniformDate              = "iDate"
	UniformSampleRate        = "iSampleRate"
)

// UniformNames lists the uniforms the harness sets every frame. The backend looks
// up exactly these in each linked program.
var UniformNames = []string{
	UniformResolution,
	UniformTime,
	UniformTimeDelta,
	UniformFrame,
	UniformChannelTime,
	UniformChannelResolution,
	UniformMouse,
	UniformDate,
	UniformSampleRate,
}

var (
	mainImageRe = regexp.MustCompile(`\bvoid\s+mainImage\s*\(`)
	mainRe      = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

// GetMain returns the entry point used for sources that only define mainImage.
func GetMain() string {
	return `
void main(void)
{
    mainImage(fragColor, gl_FragCoord.xy);
}
`
}

// NeedsMainWrapper reports whether user declares mainImage without its own main.
func NeedsMainWrapper(user string) bool {
	return mainImageRe.MatchString(user) && !mainRe.MatchString(user)
}

// Fragment combines the prelude, the user code and, for Shadertoy style sources,
// the mainImage wrapper.
func Fragment(user string) string {
	var b strings.Builder
	b.Grow(len(Prelude) + len(user) + 128)
	b.WriteString(Prelude)
	// keep driver line numbers readable by starting user code on its own line
	b.WriteString("#line 1\n")
	b.WriteString(user)
	if !strings.HasSuffix(user, "\n") {
		b.WriteString("\n")
	}
	if NeedsMainWrapper(user) {
		b.WriteString(GetMain())
	}
	return b.String()
}

// Numbered prefixes every line of src with its 1-based line number.
func Numbered(src string) string {
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d | %s\n", width, i+1, line)
	}
	return b.String()
}
