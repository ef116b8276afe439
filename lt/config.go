package lt

import (
	"log/slog"
)

// MaxDelimiters is the largest number of distinct bytes in a delimiter set.
const MaxDelimiters = 5

// Default literal delimiters.
var (
	DefaultStringDelimiters = []byte{'"'}
	DefaultCharDelimiters   = []byte{'\''}
)

// Config controls how a session builds token text.
//
// A nil delimiter slice selects the default set; a non-nil empty slice
// disables that literal kind. The zero Config has escapes turned off, use
// DefaultConfig for the usual settings.
type Config struct {
	EscapeChars  bool // decode backslash escapes inside literals
	StripInvalid bool // replace bytes that are neither space nor printable with ' '

	// Conversion of finished text between two IANA named encodings, or
	// through Converter when set. Enabling it turns StripInvalid off.
	DoConvert    bool
	FromEncoding string
	ToEncoding   string
	Converter    Converter

	StringDelimiters []byte
	CharDelimiters   []byte

	// UseArena tracks token text in the session arena so Teardown
	// releases it. When false the caller owns every Text slice.
	UseArena bool

	// Logger receives debug records. nil discards them.
	Logger *slog.Logger
}

// Option configures a session.
type Option func(*Config)

// DefaultConfig returns escapes on, arena on and the default delimiters.
func DefaultConfig() Config {
	return Config{
		EscapeChars: true,
		UseArena:    true,
	}
}

// WithEscapes turns backslash escape decoding on or off (default: on).
func WithEscapes(on bool) Option {
	return func(c *Config) {
		c.EscapeChars = on
	}
}

// WithStripInvalid replaces non-printable bytes in token text with spaces.
func WithStripInvalid() Option {
	return func(c *Config) {
		c.StripInvalid = true
	}
}

// WithConversion converts token text from one encoding to another,
// for example "ISO-8859-1" to "UTF-8".
func WithConversion(from, to string) Option {
	return func(c *Config) {
		c.DoConvert = true
		c.FromEncoding = from
		c.ToEncoding = to
	}
}

// WithConverter converts token text with conv.
func WithConverter(conv Converter) Option {
	return func(c *Config) {
		c.DoConvert = true
		c.Converter = conv
	}
}

// WithStringDelimiters sets the bytes that open and close string literals.
// An empty set disables string literals.
func WithStringDelimiters(set string) Option {
	return func(c *Config) {
		c.StringDelimiters = append([]byte{}, set...)
	}
}

// WithCharDelimiters sets the bytes that open and close character literals.
// An empty set disables character literals.
func WithCharDelimiters(set string) Option {
	return func(c *Config) {
		c.CharDelimiters = append([]byte{}, set...)
	}
}

// WithoutArena hands ownership of token text to the caller.
func WithoutArena() Option {
	return func(c *Config) {
		c.UseArena = false
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// normalize resolves defaults and the option interactions.
func (c *Config) normalize() {
	if c.DoConvert && c.Converter == nil && (c.FromEncoding == "" || c.ToEncoding == "") {
		c.DoConvert = false
	}
	if c.DoConvert {
		c.StripInvalid = false
	}
	c.StringDelimiters = delimiterSet(c.StringDelimiters, DefaultStringDelimiters)
	c.CharDelimiters = delimiterSet(c.CharDelimiters, DefaultCharDelimiters)
}

// delimiterSet keeps the first MaxDelimiters distinct bytes of set.
func delimiterSet(set, def []byte) []byte {
	if set == nil {
		return def
	}
	out := make([]byte, 0, MaxDelimiters)
	for _, b := range set {
		if len(out) == MaxDelimiters {
			break
		}
		if indexByte(out, b) < 0 {
			out = append(out, b)
		}
	}
	return out
}

func indexByte(set []byte, b byte) int {
	for i, c := range set {
		if c == b {
			return i
		}
	}
	return -1
}

func isDefaultSet(set, def []byte) bool {
	return len(set) > 0 && len(def) > 0 && &set[0] == &def[0]
}
