package toy

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/richinsley/shaderlive/graphics"
	"github.com/richinsley/shaderlive/loader"
	"github.com/richinsley/shaderlive/shader"
	"github.com/richinsley/shaderlive/watcher"
)

// ErrNoValidProgram is returned by New when neither the primary nor the fallback
// shader produced a program.
var ErrNoValidProgram = errors.New("no valid shader program")

// missingGrace is how long the primary may be missing before it is reported. Editors
// that save by renaming leave the file absent for a moment.
const missingGrace = 250 * time.Millisecond

// Outcome is the result of a Refresh.
type Outcome int

const (
	// Unchanged means the current program was kept without compiling anything.
	Unchanged Outcome = iota
	// Reloaded means a new program replaced the previous one.
	Reloaded
	// FailedKeptPrevious means new source failed to compile and the previous
	// program is still current.
	FailedKeptPrevious
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Reloaded:
		return "reloaded"
	case FailedKeptPrevious:
		return "failed, kept previous"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// CompileError reports a shader file that failed to compile or link.
type CompileError struct {
	Path   string
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %s: %v", e.Path, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Entry is a compiled program and the user source that produced it.
type Entry struct {
	Source  string
	Program graphics.Program
}

// ShaderToy owns the current GPU program and reloads it from disk. It keeps the
// last program that compiled so the window never goes blank while the user edits.
// It is not safe for concurrent use; call it from the render thread only.
type ShaderToy struct {
	device       graphics.Device
	path         string
	fallbackPath string

	read     func(path string) (string, error)
	notifier watcher.Notifier
	sink     func(error)
	now      func() time.Time

	current  Entry
	lastSeen string
	seen     bool
	// pending keeps re-reading after a failed read, whether or not the notifier
	// reports another change.
	pending bool
	// lastLoadErr suppresses repeats of the same read failure.
	lastLoadErr  string
	missingSince time.Time
	closed       bool
}

// Option configures a ShaderToy.
type Option func(*ShaderToy)

// WithNotifier limits reads to frames where n reports a change.
// By default the file is read on every Refresh.
func WithNotifier(n watcher.Notifier) Option {
	return func(t *ShaderToy) { t.notifier = n }
}

// WithErrorSink replaces LogError as the receiver of load and compile errors.
func WithErrorSink(sink func(error)) Option {
	return func(t *ShaderToy) { t.sink = sink }
}

// WithReader replaces loader.Read.
func WithReader(read func(path string) (string, error)) Option {
	return func(t *ShaderToy) { t.read = read }
}

// New loads path, or fallbackPath when path cannot be read or compiled. It fails
// with an error wrapping ErrNoValidProgram when neither yields a program.
func New(device graphics.Device, path, fallbackPath string, opts ...Option) (*ShaderToy, error) {
	t := &ShaderToy{
		device:       device,
		path:         path,
		fallbackPath: fallbackPath,
		read:         loader.Read,
		notifier:     watcher.Always{},
		sink:         LogError,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	primaryErr := t.loadInitial()
	if primaryErr == nil {
		log.Printf("Loaded shader %s", t.path)
		return t, nil
	}
	t.sink(primaryErr)

	src, err := t.read(t.fallbackPath)
	if err == nil {
		var p graphics.Program
		p, err = t.compile(t.fallbackPath, src)
		if err == nil {
			t.current = Entry{Source: src, Program: p}
			log.Printf("Using fallback shader %s", t.fallbackPath)
			return t, nil
		}
	}
	t.notifier.Close()
	return nil, fmt.Errorf("%w: %w; fallback: %w", ErrNoValidProgram, primaryErr, err)
}

func (t *ShaderToy) loadInitial() error {
	src, err := t.read(t.path)
	if err != nil {
		t.lastLoadErr = err.Error()
		return err
	}
	// a broken primary is remembered so Refresh does not compile it again
	t.lastSeen, t.seen = src, true
	p, err := t.compile(t.path, src)
	if err != nil {
		return err
	}
	t.current = Entry{Source: src, Program: p}
	return nil
}

func (t *ShaderToy) compile(path, src string) (graphics.Program, error) {
	p, err := t.device.CompileProgram(shader.VertexSource, shader.Fragment(src))
	if err != nil {
		return 0, &CompileError{Path: path, Source: src, Err: err}
	}
	return p, nil
}

// Refresh re-reads the primary shader and swaps in a new program when its text
// changed and compiles. Read and compile failures are passed to the error sink and
// never disturb the current program.
func (t *ShaderToy) Refresh() Outcome {
	if t.closed {
		return Unchanged
	}
	// drain the notifier even while a retry is pending
	if changed := t.notifier.Changed(); !changed && !t.pending {
		return Unchanged
	}

	src, err := t.read(t.path)
	if err != nil {
		t.pending = true
		t.reportLoadError(err)
		return Unchanged
	}
	t.pending = false
	t.lastLoadErr = ""
	t.missingSince = time.Time{}

	if t.seen && src == t.lastSeen {
		return Unchanged
	}
	t.lastSeen, t.seen = src, true

	p, err := t.compile(t.path, src)
	if err != nil {
		t.sink(err)
		return FailedKeptPrevious
	}

	previous := t.current.Program
	t.current = Entry{Source: src, Program: p}
	t.device.DeleteProgram(previous)
	log.Printf("Reloaded shader %s", t.path)
	return Reloaded
}

// reportLoadError passes err to the sink unless it repeats the previous failure or
// the file has only just gone missing.
func (t *ShaderToy) reportLoadError(err error) {
	if errors.Is(err, fs.ErrNotExist) {
		now := t.now()
		if t.missingSince.IsZero() {
			t.missingSince = now
		}
		if now.Sub(t.missingSince) < missingGrace {
			return
		}
	} else {
		t.missingSince = time.Time{}
	}
	if msg := err.Error(); msg != t.lastLoadErr {
		t.lastLoadErr = msg
		t.sink(err)
	}
}

// Program returns the current program for a single draw. The handle is only valid
// until the next Refresh or Close.
func (t *ShaderToy) Program() graphics.Program {
	return t.current.Program
}

// Source returns the user source of the current program.
func (t *ShaderToy) Source() string {
	return t.current.Source
}

// Close releases the current program and stops watching. It is safe to call twice.
func (t *ShaderToy) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.device.DeleteProgram(t.current.Program)
	t.current = Entry{}
	return t.notifier.Close()
}

// LogError is the default error sink. Compile errors are logged together with the
// numbered source so driver line numbers can be matched up.
func LogError(err error) {
	var ce *CompileError
	if errors.As(err, &ce) {
		log.Printf("Shader compile error: %v\n%s", ce, shader.Numbered(ce.Source))
		return
	}
	log.Printf("Shader load error: %v", err)
}
