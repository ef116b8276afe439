package lt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Latin1ToUTF8(t *testing.T) {
	tok, err := first(t, "\"caf\xe9\"", WithConversion("ISO-8859-1", "UTF-8"))
	require.NoError(t, err)
	assert.Equal(t, "café", string(tok.Text))
}

func TestConvert_UTF8ToLatin1(t *testing.T) {
	tok, err := first(t, `"café"`, WithConversion("UTF-8", "ISO-8859-1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), tok.Text)
}

func TestConvert_Unmappable(t *testing.T) {
	// Conversion is best effort and never raises an assertion.
	s := New(WithConversion("UTF-8", "ISO-8859-1"))
	require.NoError(t, s.OpenReader(strings.NewReader(`"a☃b"`)))
	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, String, tok.Kind)
	assert.NotContains(t, string(tok.Text), "☃")
	assert.NoError(t, s.Err())
}

func TestConvert_AppliesToIdentifiers(t *testing.T) {
	toks := scan(t, "abc 12", WithConverter(ConverterFunc(bytes.ToUpper)))
	assert.Equal(t, []string{"ABC", "12"}, textsOf(toks))
}

func TestConvert_UnknownEncoding(t *testing.T) {
	s := New(WithConversion("no-such-charset", "UTF-8"))

	failed, msg := s.Check()
	assert.True(t, failed)
	assert.Contains(t, msg, "no-such-charset")
	assert.ErrorIs(t, s.Err(), ErrConverter)
	assert.False(t, s.Config().DoConvert)

	// Tokenizing still works, text passes through unchanged.
	require.NoError(t, s.OpenReader(strings.NewReader("\"caf\xe9\"")))
	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), tok.Text)
}

func TestConvert_DisablesStrip(t *testing.T) {
	cfg := New(WithStripInvalid(), WithConversion("ISO-8859-1", "UTF-8")).Config()
	assert.True(t, cfg.DoConvert)
	assert.False(t, cfg.StripInvalid)

	cfg = New(WithStripInvalid(), WithConversion("", "UTF-8")).Config()
	assert.False(t, cfg.DoConvert)
	assert.True(t, cfg.StripInvalid)
}

func TestNewConverter(t *testing.T) {
	conv, err := NewConverter("windows-1252", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "€", string(conv.Convert([]byte{0x80})))
	assert.Equal(t, []byte{}, conv.Convert(nil))

	_, err = NewConverter("UTF-8", "bogus")
	assert.Error(t, err)
}
