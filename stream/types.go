// Package stream implements the byte cursor the tokenizer reads from.
//
// A cursor is a forward byte source with:
//   - One byte of pushback (UnreadByte)
//   - Absolute offset reporting (Tell)
//   - Repositioning (Seek) when the backing store allows it
//
// Files are opened through Open, which transparently inflates gzip and
// zstd compressed sources so that every cursor stays seekable.
package stream

import (
	"errors"
	"fmt"
	"io"
)

// Cursor is the capability the tokenizer needs from a backing store.
type Cursor interface {
	io.ByteScanner

	// Tell returns the offset of the next byte ReadByte would return.
	Tell() int64

	// Seek repositions the cursor; whence follows io.Seeker.
	Seek(offset int64, whence int) (int64, error)
}

// DefaultBufferSize is the read buffer used when none is configured.
const DefaultBufferSize = 4096

// MaxSourceSize is the default limit for inflated compressed sources (64 MiB).
const MaxSourceSize = 64 * 1024 * 1024

var (
	// ErrNotSeekable is returned by Seek when the backing reader is not an io.Seeker.
	ErrNotSeekable = errors.New("stream: source is not seekable")

	// ErrTooLarge is returned when a compressed source inflates past the size limit.
	ErrTooLarge = errors.New("stream: source exceeds size limit")

	// ErrClosed is returned by reads on a closed file.
	ErrClosed = errors.New("stream: file already closed")
)

// Compression identifies how a source was stored on disk.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// SeekError reports a rejected reposition request.
type SeekError struct {
	Offset int64
	Whence int
	Reason string
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("stream: seek %d (whence %d): %s", e.Offset, e.Whence, e.Reason)
}
