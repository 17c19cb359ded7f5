package fastxio

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// OutputWriter is the single shared output stream every worker writes
// classification lines to: lines are written atomically (one full write
// per line) under one mutex, and the stream is flushed before the
// pipeline returns.
type OutputWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
	gw *pgzip.Writer
	f  io.Closer
}

// NewOutputWriter opens path for writing, transparently gzip-compressing
// when path ends in ".gz". An empty path writes to stdout.
func NewOutputWriter(path string) (*OutputWriter, error) {
	if path == "" {
		return &OutputWriter{w: bufio.NewWriter(os.Stdout)}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}

	if !strings.HasSuffix(path, ".gz") {
		return &OutputWriter{w: bufio.NewWriter(f), f: f}, nil
	}

	gw := pgzip.NewWriter(f)
	return &OutputWriter{w: bufio.NewWriter(gw), gw: gw, f: f}, nil
}

// WriteLine writes line plus a trailing newline atomically with respect
// to every other WriteLine call on this writer.
func (o *OutputWriter) WriteLine(line string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := o.w.WriteString(line); err != nil {
		return err
	}
	return o.w.WriteByte('\n')
}

// Close flushes and closes the stream. Stdout is flushed but never
// closed.
func (o *OutputWriter) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		return err
	}
	if o.gw != nil {
		if err := o.gw.Close(); err != nil {
			return err
		}
	}
	if o.f != nil {
		return o.f.Close()
	}
	return nil
}
