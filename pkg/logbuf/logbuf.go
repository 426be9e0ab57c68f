// Package logbuf provides a writer that buffers log output for later
// replay, used to keep log lines off the screen while a TUI is running.
package logbuf

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter buffers everything written to it until Flush replays the
// buffer into another writer. Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *DeferredWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Flush writes the buffered output to out and resets the buffer.
func (w *DeferredWriter) Flush(out io.Writer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return nil
	}

	_, err := out.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// Len reports the number of buffered bytes.
func (w *DeferredWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Len()
}
