package dprintf

import (
	"errors"
	"fmt"
)

var errOverflow = errors.New("write exceeds allocated buffer")

// counter discards output and counts it. It is the measure pass destination.
type counter struct {
	n int
}

func (c *counter) Write(p []byte) (int, error) {
	c.n += len(p)
	return len(p), nil
}

// fixedBuffer never grows past the capacity it was allocated with.
type fixedBuffer struct {
	buf []byte
}

func (b *fixedBuffer) Write(p []byte) (int, error) {
	free := cap(b.buf) - len(b.buf)
	if len(p) > free {
		b.buf = append(b.buf, p[:free]...)
		return free, errOverflow
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *fixedBuffer) Bytes() []byte { return b.buf }

// allocate reserves exactly n bytes. Allocation panics from the runtime are
// reported as errors.
func allocate(n int) (buf *fixedBuffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return &fixedBuffer{buf: make([]byte, 0, n)}, nil
}
