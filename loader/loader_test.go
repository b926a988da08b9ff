package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReturnsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shader.frag")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}\n"), 0o644))

	src, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", src)
}

func TestReadDoesNotCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shader.frag")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))
	first, err := Read(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	second, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "one", first)
	assert.Equal(t, "two", second)
}

func TestReadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.frag")
	_, err := Read(path)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.frag")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 'x'}, 0o644))

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrNotUTF8)
}

func TestReadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.frag")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFvoid main() {}"), 0o644))

	src, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src)
}
