package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// File is a cursor over a named source on disk.
type File struct {
	*BufferedCursor

	name        string
	f           *os.File
	compression Compression
	closed      bool
}

// Open opens name for tokenizing.
//
// Plain files are read in place. Gzip and zstd files are detected by their
// magic number and inflated into memory, bounded by WithMaxSize.
func Open(name string, opts ...CursorOption) (*File, error) {
	cfg := newCursorConfig(opts)

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	head, _ := br.Peek(len(zstdMagic))
	kind := detectCompression(head)

	if kind == CompressionNone {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("rewind %s: %w", name, err)
		}
		return &File{
			BufferedCursor: NewCursor(f, opts...),
			name:           name,
			f:              f,
		}, nil
	}

	data, err := inflate(br, kind, cfg.maxSize)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("inflate %s: %w", name, err)
	}

	return &File{
		BufferedCursor: NewCursor(bytes.NewReader(data), opts...),
		name:           name,
		compression:    kind,
	}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Compression reports how the source was stored.
func (f *File) Compression() Compression {
	return f.compression
}

// ReadByte reads one byte, failing with ErrClosed after Close.
func (f *File) ReadByte() (byte, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.BufferedCursor.ReadByte()
}

// Close releases the underlying file. Calling it twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

func detectCompression(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

func inflate(r io.Reader, kind Compression, maxSize int64) ([]byte, error) {
	var dec io.Reader
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		dec = zr
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		dec = zr
	default:
		return nil, fmt.Errorf("unsupported compression %s", kind)
	}

	data, err := io.ReadAll(io.LimitReader(dec, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
