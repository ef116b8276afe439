package lt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// first returns the first token of input and the error raised with it.
func first(t *testing.T, input string, opts ...Option) (Token, error) {
	t.Helper()
	s := New(opts...)
	require.NoError(t, s.OpenReader(strings.NewReader(input)))
	return s.Next()
}

// ============================================================
// Escapes
// ============================================================

func TestLiteral_Escapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `"hello world"`, "hello world"},
		{"empty", `""`, ""},
		{"newline", `"a\nb"`, "a\nb"},
		{"quote", `"a\"b"`, `a"b`},
		{"apostrophe", `"it\'s"`, "it's"},
		{"backslash", `"a\\b"`, `a\b`},
		{"controls", `"\a\b\f\n\r\t\v"`, "\a\b\f\n\r\t\v"},
		{"hex", `"\x41\x4a"`, "AJ"},
		{"hex lower", `"\x6a"`, "j"},
		{"hex stops at non hex", `"\x41g"`, "Ag"},
		{"hex wraps", `"\x141"`, "A"},
		{"hex without digits", `"\xz"`, "\x00z"},
		{"octal", `"\101"`, "A"},
		{"octal three digits max", `"\1012"`, "A2"},
		{"octal short", `"\18"`, "\x018"},
		{"octal single zero", `"\0"`, "\x00"},
		{"octal wraps", `"\777"`, "\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := first(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, String, tok.Kind)
			assert.Equal(t, []byte(tt.want), tok.Text)
		})
	}
}

func TestLiteral_EscapesInCharacter(t *testing.T) {
	tok, err := first(t, `'\''`)
	require.NoError(t, err)
	assert.Equal(t, Character, tok.Kind)
	assert.Equal(t, "'", string(tok.Text))
}

func TestLiteral_EscapesDisabled(t *testing.T) {
	tok, err := first(t, `"a\nb"`, WithEscapes(false))
	require.NoError(t, err)
	assert.Equal(t, `a\nb`, string(tok.Text))

	// Without escapes a backslash cannot protect the terminator.
	toks := scan(t, `"a\"`, WithEscapes(false))
	require.Equal(t, []Kind{String, EndOfStream}, kindsOf(toks))
	assert.Equal(t, `a\`, string(toks[0].Text))
}

func TestLiteral_ZeroConfigHasNoEscapes(t *testing.T) {
	s := New()
	require.NoError(t, s.Configure(Config{}))
	require.NoError(t, s.OpenReader(strings.NewReader(`"\t"`)))

	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, `\t`, string(tok.Text))
}

func TestLiteral_UnknownEscape(t *testing.T) {
	tok, err := first(t, `"a\qb"`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEscape))
	assert.Equal(t, "lt: unknown escape character 'q' at offset 4", err.Error())

	// The token survives; the escape produces no byte.
	assert.Equal(t, String, tok.Kind)
	assert.Equal(t, "ab", string(tok.Text))
}

// ============================================================
// Unterminated literals
// ============================================================

func TestLiteral_Unterminated(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   Kind
		reason string
		offset int64
	}{
		{"eof", `"abc`, String, "unterminated string literal", 4},
		{"newline", "\"ab\ncd\"", String, "unterminated string literal", 4},
		{"escape at eof", `"ab\`, String, "unterminated string literal", 4},
		{"escaped newline", "\"ab\\\n\"", String, "unterminated string literal", 5},
		{"character", `'x`, Character, "unterminated character literal", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := first(t, tt.input)
			assert.Equal(t, tt.kind, tok.Kind)
			assert.NotNil(t, tok.Text)
			assert.Empty(t, tok.Text)

			var ae *AssertError
			require.ErrorAs(t, err, &ae)
			assert.ErrorIs(t, err, ErrUnterminated)
			assert.Equal(t, tt.reason, ae.Reason)
			assert.Equal(t, tt.offset, ae.Offset)
		})
	}
}

func TestLiteral_UnterminatedContinues(t *testing.T) {
	s := New()
	require.NoError(t, s.OpenReader(strings.NewReader("\"ab\ncd")))

	tok, err := s.Next()
	assert.Equal(t, String, tok.Kind)
	assert.ErrorIs(t, err, ErrUnterminated)

	// The newline was consumed by the literal.
	tok, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, Identifier, tok.Kind)
	assert.Equal(t, "cd", string(tok.Text))
}

func TestLiteral_LongString(t *testing.T) {
	body := strings.Repeat("0123456789", 2*BlockSize/10+3)
	tok, err := first(t, `"`+body+`"`)
	require.NoError(t, err)
	assert.Equal(t, body, string(tok.Text))
	assert.Equal(t, len(body), cap(tok.Text))
}

// ============================================================
// Delimiters
// ============================================================

func TestLiteral_CustomDelimiters(t *testing.T) {
	toks := scan(t, "`raw` \"q\" @p@", WithStringDelimiters("\"`@"))
	require.Equal(t, []Kind{String, String, String, EndOfStream}, kindsOf(toks))
	assert.Equal(t, []string{"raw", "q", "p"}, textsOf(toks))
}

func TestLiteral_MatchingTerminator(t *testing.T) {
	// Only the byte that opened the literal closes it.
	toks := scan(t, "`a\"b`", WithStringDelimiters("\"`"))
	require.Equal(t, []Kind{String, EndOfStream}, kindsOf(toks))
	assert.Equal(t, `a"b`, string(toks[0].Text))
}

func TestLiteral_DisabledCharacters(t *testing.T) {
	toks := scan(t, "'x'", WithCharDelimiters(""))
	assert.Equal(t, []Kind{CharacterSequence, Identifier, CharacterSequence, EndOfStream}, kindsOf(toks))
	assert.Equal(t, []string{"'", "x", "'"}, textsOf(toks))
}

func TestLiteral_DisabledStrings(t *testing.T) {
	toks := scan(t, `"x"`, WithStringDelimiters(""))
	assert.Equal(t, []Kind{CharacterSequence, Identifier, CharacterSequence, EndOfStream}, kindsOf(toks))
	assert.Equal(t, []string{`"`, "x", `"`}, textsOf(toks))

	// Character literals are unaffected.
	toks = scan(t, `'y'`, WithStringDelimiters(""))
	assert.Equal(t, []Kind{Character, EndOfStream}, kindsOf(toks))
}

func TestLiteral_StringBeatsCharacter(t *testing.T) {
	toks := scan(t, "'x'", WithStringDelimiters("'"))
	require.Equal(t, []Kind{String, EndOfStream}, kindsOf(toks))
	assert.Equal(t, "x", string(toks[0].Text))
}

func TestLiteral_OperatorBeatsDelimiter(t *testing.T) {
	toks := scan(t, "+a+", WithStringDelimiters("+"))
	assert.Equal(t, []Kind{Plus, Identifier, Plus, EndOfStream}, kindsOf(toks))
}

func TestLiteral_DelimiterSetLimits(t *testing.T) {
	s := New(WithStringDelimiters("aabcdefg"), WithCharDelimiters("''"))
	assert.Equal(t, []byte("abcde"), s.Config().StringDelimiters)
	assert.Equal(t, []byte("'"), s.Config().CharDelimiters)

	s = New()
	assert.Equal(t, DefaultStringDelimiters, s.Config().StringDelimiters)
	assert.Equal(t, DefaultCharDelimiters, s.Config().CharDelimiters)
}

// ============================================================
// Stripping
// ============================================================

func TestLiteral_StripInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"control", "\"a\x01b\"", "a b"},
		{"escaped control", `"a\001b"`, "a b"},
		{"hex escape takes following hex digits", `"a\x01b"`, "a "},
		{"high byte", "\"caf\xe9\"", "caf "},
		{"space kept", "\"a\tb\\n\"", "a\tb\n"},
		{"delete", "\"\x7f\"", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := first(t, tt.input, WithStripInvalid())
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(tok.Text))
		})
	}
}

func TestLiteral_NoStripByDefault(t *testing.T) {
	tok, err := first(t, "\"a\x01b\"")
	require.NoError(t, err)
	assert.Equal(t, "a\x01b", string(tok.Text))
}

// ============================================================
// Text buffer
// ============================================================

func TestTextBuffer_GrowsByBlock(t *testing.T) {
	var buf textBuffer
	buf.reset()
	assert.Equal(t, BlockSize, cap(buf.b))

	for i := 0; i < 2*BlockSize+1; i++ {
		buf.push(byte(i))
	}
	assert.Equal(t, 2*BlockSize+1, buf.len())
	assert.Equal(t, 3*BlockSize, cap(buf.b))
	assert.Equal(t, byte(5), buf.b[BlockSize+5])

	buf.reset()
	assert.Equal(t, 0, buf.len())
	assert.Equal(t, 3*BlockSize, cap(buf.b))
}
