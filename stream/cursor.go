package stream

import (
	"bufio"
	"io"
)

// BufferedCursor is a Cursor over any io.Reader.
// It keeps its own offset so Tell never touches the underlying reader.
type BufferedCursor struct {
	src     io.Reader
	r       *bufio.Reader
	bufSize int
	pos     int64
	canUndo bool
}

// CursorOption configures a BufferedCursor or a File.
type CursorOption func(*cursorConfig)

type cursorConfig struct {
	bufSize int
	maxSize int64
}

// WithBufferSize sets the read buffer size (default: 4 KiB).
func WithBufferSize(n int) CursorOption {
	return func(c *cursorConfig) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

// WithMaxSize caps the inflated size of compressed sources (default: 64 MiB).
func WithMaxSize(n int64) CursorOption {
	return func(c *cursorConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

func newCursorConfig(opts []CursorOption) cursorConfig {
	cfg := cursorConfig{
		bufSize: DefaultBufferSize,
		maxSize: MaxSourceSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewCursor creates a cursor reading from r.
func NewCursor(r io.Reader, opts ...CursorOption) *BufferedCursor {
	cfg := newCursorConfig(opts)
	return &BufferedCursor{
		src:     r,
		r:       bufio.NewReaderSize(r, cfg.bufSize),
		bufSize: cfg.bufSize,
	}
}

// ReadByte reads one byte. It returns io.EOF once the source is exhausted,
// and keeps returning io.EOF on later calls.
func (c *BufferedCursor) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		c.canUndo = false
		return 0, err
	}
	c.pos++
	c.canUndo = true
	return b, nil
}

// UnreadByte pushes back the byte returned by the last successful ReadByte.
func (c *BufferedCursor) UnreadByte() error {
	if !c.canUndo {
		return bufio.ErrInvalidUnreadByte
	}
	if err := c.r.UnreadByte(); err != nil {
		return err
	}
	c.pos--
	c.canUndo = false
	return nil
}

// Tell returns the current offset.
func (c *BufferedCursor) Tell() int64 {
	return c.pos
}

// Seek repositions the cursor and discards buffered data and pushback.
func (c *BufferedCursor) Seek(offset int64, whence int) (int64, error) {
	seeker, ok := c.src.(io.Seeker)
	if !ok {
		return c.pos, ErrNotSeekable
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = c.pos + offset
	case io.SeekEnd:
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return c.pos, err
		}
		abs = end + offset
	default:
		return c.pos, &SeekError{Offset: offset, Whence: whence, Reason: "invalid whence"}
	}
	if abs < 0 {
		return c.pos, &SeekError{Offset: offset, Whence: whence, Reason: "negative position"}
	}

	// The underlying reader is ahead of c.pos by whatever bufio holds,
	// so always reposition it absolutely.
	if _, err := seeker.Seek(abs, io.SeekStart); err != nil {
		return c.pos, err
	}
	c.r.Reset(c.src)
	c.pos = abs
	c.canUndo = false
	return abs, nil
}

// Buffered returns the number of bytes read ahead of Tell.
func (c *BufferedCursor) Buffered() int {
	return c.r.Buffered()
}
