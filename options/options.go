package options

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// ShaderPath is the live-reload source, relative to the working directory.
	ShaderPath = "shader.frag"
	// FallbackShaderPath is used when ShaderPath is missing or broken at startup.
	FallbackShaderPath = "shader_default.frag"
	// ConfigPath is the optional settings file.
	ConfigPath = "shaderlive.toml"
)

// Watch modes.
const (
	WatchPoll   = "poll"
	WatchNotify = "notify"
)

// HarnessOptions holds the tunable settings. Shader paths are fixed and not part of it.
type HarnessOptions struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Title        string `toml:"title"`
	SwapInterval int    `toml:"swap_interval"`
	Watch        string `toml:"watch"`
	ReportEvery  int    `toml:"report_every"`
}

// Default returns the settings used when no config file exists.
func Default() *HarnessOptions {
	return &HarnessOptions{
		Width:        800,
		Height:       600,
		Title:        "shaderlive",
		SwapInterval: 0,
		Watch:        WatchPoll,
		ReportEvery:  60,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*HarnessOptions, error) {
	opts := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Validate checks the settings for values the harness cannot run with.
func (o *HarnessOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.SwapInterval < 0 {
		return fmt.Errorf("swap_interval must not be negative, got %d", o.SwapInterval)
	}
	switch o.Watch {
	case WatchPoll, WatchNotify:
	default:
		return fmt.Errorf("watch must be %q or %q, got %q", WatchPoll, WatchNotify, o.Watch)
	}
	if o.ReportEvery < 0 {
		return fmt.Errorf("report_every must not be negative, got %d", o.ReportEvery)
	}
	return nil
}
