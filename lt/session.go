package lt

import (
	"bytes"
	"errors"
	"io"
	"log/slog"

	"github.com/Neumenon/lovetoken/stream"
)

// Session tokenizes one source. All state (configuration, cursor, arena,
// assertion) lives here, so independent sessions never interfere.
type Session struct {
	cfg  Config
	conv Converter
	log  *slog.Logger

	cur    stream.Cursor
	closer io.Closer

	arena   *Arena
	scratch textBuffer

	failed *AssertError // sticky: first assertion of the session
	raised error        // first failure raised by the current call
	fatal  *FatalError
	torn   bool
}

// New creates a session configured with DefaultConfig and opts.
// A conversion that cannot be set up is recorded as an assertion.
func New(opts ...Option) *Session {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Session{arena: NewArena()}
	_ = s.Configure(cfg)
	return s
}

// Configure replaces the configuration wholesale.
func (s *Session) Configure(cfg Config) error {
	cfg.normalize()

	s.log = cfg.Logger
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.UseArena && !s.torn {
		if !isDefaultSet(cfg.StringDelimiters, DefaultStringDelimiters) {
			cfg.StringDelimiters = s.arena.Track(cfg.StringDelimiters)
		}
		if !isDefaultSet(cfg.CharDelimiters, DefaultCharDelimiters) {
			cfg.CharDelimiters = s.arena.Track(cfg.CharDelimiters)
		}
	}

	var err error
	s.conv = nil
	if cfg.DoConvert {
		s.conv = cfg.Converter
		if s.conv == nil {
			s.conv, err = NewConverter(cfg.FromEncoding, cfg.ToEncoding)
		}
		if err != nil {
			cfg.DoConvert = false
			err = s.fail(ErrConverter, err.Error())
		}
	}

	s.cfg = cfg
	s.log.Debug("lt: configure",
		"escapes", cfg.EscapeChars,
		"strip", cfg.StripInvalid,
		"convert", cfg.DoConvert,
		"strings", string(cfg.StringDelimiters),
		"chars", string(cfg.CharDelimiters),
		"arena", cfg.UseArena,
	)
	return err
}

// Config returns the effective configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Open opens a file as the source, closing any previous one.
// Gzip and zstd files are inflated transparently.
func (s *Session) Open(name string) error {
	s.Close()

	f, err := stream.Open(name)
	if err != nil {
		return s.fail(ErrOpen, err.Error())
	}
	s.log.Debug("lt: open", "name", name, "compression", f.Compression())
	s.cur, s.closer = f, f
	return nil
}

// OpenReader uses r as the source. Readers that are not io.Seeker still
// tokenize; only Seek on the cursor fails.
func (s *Session) OpenReader(r io.Reader) error {
	if r == nil {
		return s.fail(ErrOpen, "nil reader")
	}
	s.Close()
	s.cur = stream.NewCursor(r)
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return nil
}

// Attach uses c as the source. The session closes c on Close when it
// implements io.Closer.
func (s *Session) Attach(c stream.Cursor) {
	s.Close()
	s.cur = c
	if cl, ok := c.(io.Closer); ok {
		s.closer = cl
	}
}

// Cursor returns the current source, or nil.
func (s *Session) Cursor() stream.Cursor {
	return s.cur
}

// Close releases the source. Token text stays valid until Teardown.
func (s *Session) Close() error {
	var err error
	if s.closer != nil {
		err = s.closer.Close()
		s.log.Debug("lt: close")
	}
	s.cur, s.closer = nil, nil
	return err
}

// Next returns the next token. The error is the failure raised while
// producing it: an *AssertError (the token is still usable) or a
// *FatalError. After EndOfStream every call returns EndOfStream again.
func (s *Session) Next() (Token, error) {
	if s.cur == nil {
		return Token{Kind: EndOfStream}, &FatalError{Op: "next", Err: ErrNoSource}
	}
	s.raised, s.fatal = nil, nil

	tok := s.next()
	if s.fatal != nil {
		return tok, s.fatal
	}
	return tok, s.raised
}

// Tokenize reads every remaining token, EndOfStream included.
// It stops early on a fatal error and otherwise returns the sticky
// assertion, if any.
func (s *Session) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.Next()
		if IsFatal(err) {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EndOfStream {
			break
		}
	}
	return tokens, s.Err()
}

// Assert records reason as the session failure when failed is true and
// no earlier assertion exists. It returns failed unchanged.
func (s *Session) Assert(failed bool, reason string) bool {
	if failed {
		s.record(&AssertError{Reason: reason, Offset: s.tell()})
	}
	return failed
}

// Check returns the sticky failure state and its message.
func (s *Session) Check() (bool, string) {
	if s.failed == nil {
		return false, ""
	}
	return true, s.failed.Error()
}

// Err returns the sticky failure as an *AssertError, or nil.
func (s *Session) Err() error {
	if s.failed == nil {
		return nil
	}
	return s.failed
}

// Arena returns the arena that owns token text.
func (s *Session) Arena() *Arena {
	return s.arena
}

// Teardown releases the arena. Calling it again is a no-op.
func (s *Session) Teardown() {
	if s.torn {
		return
	}
	s.log.Debug("lt: teardown", "buffers", s.arena.Len(), "bytes", s.arena.Size())

	// Custom delimiter sets live in the arena; keep working copies.
	if !isDefaultSet(s.cfg.StringDelimiters, DefaultStringDelimiters) {
		s.cfg.StringDelimiters = bytes.Clone(s.cfg.StringDelimiters)
	}
	if !isDefaultSet(s.cfg.CharDelimiters, DefaultCharDelimiters) {
		s.cfg.CharDelimiters = bytes.Clone(s.cfg.CharDelimiters)
	}
	s.arena.Release()
	s.torn = true
}

// fail builds an assertion for cause at the current offset and records it.
func (s *Session) fail(cause error, reason string) error {
	err := &AssertError{Reason: reason, Offset: s.tell(), Err: cause}
	s.record(err)
	return err
}

func (s *Session) record(err *AssertError) {
	if s.raised == nil {
		s.raised = err
	}
	s.log.Debug("lt: assertion", "reason", err.Reason, "offset", err.Offset, "sticky", s.failed == nil)
	if s.failed == nil {
		s.failed = err
	}
}

func (s *Session) tell() int64 {
	if s.cur == nil {
		return 0
	}
	return s.cur.Tell()
}

const eof = -1

// read returns the next byte or eof. Errors other than io.EOF become the
// fatal error of the current call.
func (s *Session) read() int {
	b, err := s.cur.ReadByte()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.setFatal("read", err)
		}
		return eof
	}
	return int(b)
}

// unread pushes c back. Pushing back eof does nothing.
func (s *Session) unread(c int) {
	if c == eof {
		return
	}
	if err := s.cur.UnreadByte(); err != nil {
		s.setFatal("unread", err)
	}
}

func (s *Session) setFatal(op string, err error) {
	if s.fatal == nil {
		s.fatal = &FatalError{Op: op, Err: err}
		s.log.Debug("lt: fatal", "op", op, "err", err)
	}
}

// own hands finished text to the arena, or to the caller without one.
func (s *Session) own(b []byte) []byte {
	if s.cfg.UseArena && !s.torn {
		return s.arena.Track(b)
	}
	return b
}
