// Package mem provides an in-memory resource for exercising ownership
// handles: a segmented byte buffer whose Close deterministically
// releases its memory.
package mem

import (
	"errors"
	"io"
	"sync"
)

var errNegativeOffset = errors.New("mem: negative offset")

const segmentSize = 32 * 1024

// Buffer is a segmented, append-only in-memory byte buffer.
// It is safe for concurrent use by multiple goroutines.
//
// Buffer requires no initialization - just declare and use:
//
//	var b Buffer
//	b.Write([]byte("hello"))
//
// Close releases all segments; because that is observable and
// idempotent-unsafe by design (writing after Close starts a new
// buffer), Buffer works as a realistic finalizable resource.
type Buffer struct {
	rw   sync.RWMutex
	segs [][]byte
	size int64
}

var _ io.Closer = new(Buffer)
var _ io.Writer = new(Buffer)
var _ io.ReaderAt = new(Buffer)

// Write appends p to the buffer, growing it segment by segment.
// It never fails.
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.rw.Lock()
	defer b.rw.Unlock()

	n = len(p)
	for len(p) > 0 {
		if len(b.segs) == 0 || len(b.segs[len(b.segs)-1]) == segmentSize {
			b.segs = append(b.segs, make([]byte, 0, segmentSize))
		}
		last := len(b.segs) - 1
		room := segmentSize - len(b.segs[last])
		take := min(room, len(p))
		b.segs[last] = append(b.segs[last], p[:take]...)
		p = p[take:]
	}
	b.size += int64(n)
	return
}

// ReadAt reads len(p) bytes starting at offset off. It returns io.EOF
// when the read reaches past the end of the buffer.
func (b *Buffer) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, errNegativeOffset
	}

	b.rw.RLock()
	defer b.rw.RUnlock()

	for n < len(p) && off+int64(n) < b.size {
		pos := off + int64(n)
		seg := b.segs[pos/segmentSize]
		n += copy(p[n:], seg[pos%segmentSize:])
	}
	if n < len(p) {
		err = io.EOF
	}
	return
}

// Len returns the current size of the buffer in bytes.
func (b *Buffer) Len() int64 {
	b.rw.RLock()
	defer b.rw.RUnlock()
	return b.size
}

// Close releases all segments. After Close the buffer is empty; it is
// safe to write to it again, which starts fresh.
func (b *Buffer) Close() error {
	b.rw.Lock()
	b.segs = nil
	b.size = 0
	b.rw.Unlock()
	return nil
}
