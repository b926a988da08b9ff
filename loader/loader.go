package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNotUTF8 is wrapped by LoadError when a file is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("not valid UTF-8")

// LoadError reports a failure to read a shader source file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load shader %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Read returns the contents of the file at path as text. Nothing is cached.
func Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return "", &LoadError{Path: path, Err: ErrNotUTF8}
	}
	// editors on windows like to leave a byte order mark that the GLSL compiler rejects
	return strings.TrimPrefix(string(b), "\uFEFF"), nil
}
