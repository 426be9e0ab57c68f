package server

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watcher triggers a callback when a single file changes. It watches the
// containing directory rather than the file itself, which survives editors
// that replace the file on save.
type watcher struct {
	fsw      *fsnotify.Watcher
	filename string
	onChange func()
	stopCh   chan struct{}
	log      zerolog.Logger
}

func newWatcher(path string, log zerolog.Logger, onChange func()) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	w := &watcher{
		fsw:      fsw,
		filename: filepath.Base(path),
		onChange: onChange,
		stopCh:   make(chan struct{}),
		log:      log,
	}

	go w.loop()
	return w, nil
}

func (w *watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("document changed")
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")

		case <-w.stopCh:
			return
		}
	}
}

func (w *watcher) stop() {
	close(w.stopCh)
	w.fsw.Close()
}
