package lt

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Converter rewrites finished token text into another byte encoding.
// Conversion is best effort: unmappable input is substituted or truncated
// and never reported as a failure.
type Converter interface {
	Convert(src []byte) []byte
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(src []byte) []byte

// Convert calls f(src).
func (f ConverterFunc) Convert(src []byte) []byte {
	return f(src)
}

// textConverter decodes from one IANA encoding to UTF-8 and encodes the
// result into another.
type textConverter struct {
	from encoding.Encoding
	to   encoding.Encoding
}

// NewConverter builds a converter between two IANA encoding names such as
// "UTF-8", "ISO-8859-1" or "windows-1252".
func NewConverter(from, to string) (Converter, error) {
	fromEnc, err := lookupEncoding(from)
	if err != nil {
		return nil, err
	}
	toEnc, err := lookupEncoding(to)
	if err != nil {
		return nil, err
	}
	return &textConverter{from: fromEnc, to: toEnc}, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

func (c *textConverter) Convert(src []byte) []byte {
	t := transform.Chain(
		c.from.NewDecoder(),
		encoding.ReplaceUnsupported(c.to.NewEncoder()),
	)
	out, _, _ := transform.Bytes(t, src)
	if out == nil {
		out = []byte{}
	}
	return out
}
