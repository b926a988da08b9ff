package watcher

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Notifier tells the program cache whether a shader file may have changed since the
// last call.
type Notifier interface {
	Changed() bool
	Close() error
}

// Always reports a change on every call, which makes the cache re-read the file
// each frame.
type Always struct{}

func (Always) Changed() bool { return true }
func (Always) Close() error  { return nil }

// FSNotifier watches the directory of one file so editors that save by
// rename-and-replace are still seen. It never blocks; pending events are drained on
// the caller's goroutine.
type FSNotifier struct {
	watcher *fsnotify.Watcher
	name    string
	dirty   bool
}

// NewFSNotifier starts watching path. The first Changed call reports true so the
// file is read at least once.
func NewFSNotifier(path string) (*FSNotifier, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &FSNotifier{
		watcher: w,
		name:    abs,
		dirty:   true,
	}, nil
}

func (n *FSNotifier) Changed() bool {
	n.drain()
	changed := n.dirty
	n.dirty = false
	return changed
}

func (n *FSNotifier) drain() {
	for {
		select {
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if n.relevant(event) {
				n.dirty = true
			}
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Shader watcher error: %v", err)
			// events may have been dropped, read the file to be safe
			n.dirty = true
		default:
			return
		}
	}
}

func (n *FSNotifier) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != n.name {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (n *FSNotifier) Close() error {
	return n.watcher.Close()
}
