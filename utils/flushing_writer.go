// SPDX-License-Identifier: MIT

package utils

import (
	"io"
	"sync"
)

// FlushingWriter is an unbuffered view of a stream: every Write reaches the
// underlying writer and is flushed before Write returns.
//
// Flush() error (bufio.Writer) and Flush() (http.Flusher) are both honored;
// writers without either are written through unchanged.
type FlushingWriter struct {
	mu    sync.Mutex
	dst   io.Writer
	flush func() error
}

// NewFlushingWriter wraps dst. A nil dst yields nil and a *FlushingWriter is
// not wrapped twice.
func NewFlushingWriter(dst io.Writer) io.Writer {
	switch w := dst.(type) {
	case nil:
		return nil
	case *FlushingWriter:
		return w
	case interface{ Flush() error }:
		return &FlushingWriter{dst: dst, flush: w.Flush}
	case interface{ Flush() }:
		return &FlushingWriter{dst: dst, flush: func() error { w.Flush(); return nil }}
	default:
		return &FlushingWriter{dst: dst}
	}
}

// Write writes p and flushes. Writes are serialized.
func (fw *FlushingWriter) Write(p []byte) (int, error) {
	if fw == nil || fw.dst == nil {
		return 0, nil
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()

	n, err := fw.dst.Write(p)
	if err != nil || fw.flush == nil {
		return n, err
	}

	return n, fw.flush()
}
