package lt

import (
	"fmt"
)

// BlockSize is the initial capacity of the text buffer and the amount it
// grows by each time it fills up.
const BlockSize = 512

// textBuffer accumulates token text. It grows by one block at a time.
type textBuffer struct {
	b []byte
}

func (t *textBuffer) reset() *textBuffer {
	if t.b == nil {
		t.b = make([]byte, 0, BlockSize)
	}
	t.b = t.b[:0]
	return t
}

func (t *textBuffer) push(c byte) {
	if len(t.b) == cap(t.b) {
		grown := make([]byte, len(t.b), cap(t.b)+BlockSize)
		copy(grown, t.b)
		t.b = grown
	}
	t.b = append(t.b, c)
}

func (t *textBuffer) len() int {
	return len(t.b)
}

// readLiteral reads up to the unescaped terminator term and returns the
// decoded text. A newline or end of stream before term records an
// assertion and yields empty text.
func (s *Session) readLiteral(term byte, kind Kind) []byte {
	buf := s.scratch.reset()
	for {
		c := s.read()
		if c == int(term) {
			break
		}
		if c == eof || c == '\n' {
			return s.unterminated(kind)
		}

		if c == '\\' && s.cfg.EscapeChars {
			c = s.read()
			if c == eof || c == '\n' {
				return s.unterminated(kind)
			}
			s.decodeEscape(byte(c), buf)
			continue
		}

		buf.push(byte(c))
	}
	return s.finish(buf)
}

func (s *Session) unterminated(kind Kind) []byte {
	what := "string"
	if kind == Character {
		what = "character"
	}
	s.fail(ErrUnterminated, "unterminated "+what+" literal")
	return s.own([]byte{})
}

// decodeEscape writes the byte for the escape introduced by esc, reading
// further digits for \x and octal escapes. Unknown escapes write nothing.
func (s *Session) decodeEscape(esc byte, buf *textBuffer) {
	switch esc {
	case '\\', '\'', '"':
		buf.push(esc)
	case 'a':
		buf.push('\a')
	case 'b':
		buf.push('\b')
	case 'f':
		buf.push('\f')
	case 'n':
		buf.push('\n')
	case 'r':
		buf.push('\r')
	case 't':
		buf.push('\t')
	case 'v':
		buf.push('\v')

	case 'x':
		// Any number of hex digits; the value wraps at one byte.
		var v byte
		for {
			c := s.read()
			d, ok := hexValue(c)
			if !ok {
				s.unread(c)
				break
			}
			v = v<<4 | d
		}
		buf.push(v)

	case '0', '1', '2', '3', '4', '5', '6', '7':
		// Up to three octal digits in total.
		v := esc - '0'
		for i := 0; i < 2; i++ {
			c := s.read()
			if c < '0' || c > '7' {
				s.unread(c)
				break
			}
			v = v<<3 | byte(c-'0')
		}
		buf.push(v)

	default:
		s.fail(ErrUnknownEscape, fmt.Sprintf("unknown escape character %q", esc))
	}
}

func hexValue(c int) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), true
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, true
	}
	return 0, false
}

// finish copies the buffered text out at its exact size, applies
// stripping or conversion, and hands it to its owner.
func (s *Session) finish(buf *textBuffer) []byte {
	out := make([]byte, buf.len())
	copy(out, buf.b)

	switch {
	case s.conv != nil:
		out = s.conv.Convert(out)
	case s.cfg.StripInvalid:
		for i, c := range out {
			if !isSpace(int(c)) && !isPrint(int(c)) {
				out[i] = ' '
			}
		}
	}
	return s.own(out)
}
