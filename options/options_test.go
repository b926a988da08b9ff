package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), ConfigPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
	assert.NoError(t, opts.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
width = 1024
height = 768
watch = "notify"
report_every = 120
`)
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, opts.Width)
	assert.Equal(t, 768, opts.Height)
	assert.Equal(t, WatchNotify, opts.Watch)
	assert.Equal(t, 120, opts.ReportEvery)
	assert.Equal(t, "shaderlive", opts.Title)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	// shader paths are fixed and cannot be configured
	_, err := Load(writeConfig(t, `shader = "other.frag"`))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"syntax":        `width = `,
		"size":          `width = 0`,
		"watch":         `watch = "inotify"`,
		"swap interval": `swap_interval = -1`,
		"report":        `report_every = -5`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
