package lt

// punctuation maps bytes that always form a token on their own.
var punctuation = map[byte]Kind{
	'$':  Sigil,
	'#':  Hash,
	'.':  Period,
	':':  Colon,
	',':  Comma,
	';':  Semicolon,
	'%':  Mod,
	'?':  Query,
	'{':  BraceOpen,
	'}':  BraceClose,
	'[':  BracketOpen,
	']':  BracketClose,
	'(':  ParenOpen,
	')':  ParenClose,
	'\n': Newline,
}

// operator is a byte that may combine with the byte after it.
type operator struct {
	single  Kind
	follows []follow
}

type follow struct {
	next byte
	kind Kind
}

var operators = map[byte]operator{
	'&': {Amp, []follow{{'&', AmpAmp}}},
	'=': {Assign, []follow{{'=', Equal}}},
	'^': {Caret, []follow{{'^', CaretCaret}}},
	'|': {Pipe, []follow{{'|', PipePipe}}},
	'>': {GreaterThan, []follow{{'=', GreaterEqual}, {'>', ShiftRight}}},
	'<': {LessThan, []follow{{'=', LessEqual}, {'<', ShiftLeft}, {'>', NotEqual}}},
	'!': {Not, []follow{{'=', NotEqual}}},
	'/': {Div, []follow{{'/', Comment}, {'*', BlockCommentOpen}, {'+', NestedCommentOpen}}},
	'*': {Mul, []follow{{'/', BlockCommentClose}, {'*', Exponent}}},
	'-': {Minus, []follow{{'-', MinusMinus}, {'>', Arrow}}},
	'+': {Plus, []follow{{'/', NestedCommentClose}, {'+', PlusPlus}}},
}

// next reads exactly one token.
func (s *Session) next() Token {
	c := s.read()
	if c == eof {
		return Token{Kind: EndOfStream, Offset: s.tell()}
	}

	for isSpace(c) && c != '\n' {
		c = s.read()
		if c == eof {
			return Token{Kind: EndOfStream, Offset: s.tell()}
		}
	}

	// c has been consumed, the token starts one byte back.
	tok := Token{Offset: s.tell() - 1}
	b := byte(c)

	if kind, ok := punctuation[b]; ok {
		tok.Kind = kind
		return tok
	}

	if op, ok := operators[b]; ok {
		tok.Kind = s.readOperator(op)
		return tok
	}

	// ~= is an operator, a lone ~ falls back to a byte token.
	if b == '~' {
		if n := s.read(); n == '=' {
			tok.Kind = NotEqual
		} else {
			s.unread(n)
			tok.Kind = CharacterSequence
			tok.Text = s.own([]byte{b})
		}
		return tok
	}

	if indexByte(s.cfg.StringDelimiters, b) >= 0 {
		tok.Kind = String
		tok.Text = s.readLiteral(b, String)
		return tok
	}

	if indexByte(s.cfg.CharDelimiters, b) >= 0 {
		tok.Kind = Character
		tok.Text = s.readLiteral(b, Character)
		return tok
	}

	if isDigit(c) {
		s.unread(c)
		tok.Kind = Number
		tok.Text = s.readNumber()
		return tok
	}

	if isIdentStart(c) {
		tok.Kind = Identifier
		tok.Text = s.readIdentifier(b)
		return tok
	}

	tok.Kind = CharacterSequence
	tok.Text = s.own([]byte{b})
	return tok
}

// readOperator applies one byte of lookahead after an operator byte.
func (s *Session) readOperator(op operator) Kind {
	n := s.read()
	for _, f := range op.follows {
		if n == int(f.next) {
			return f.kind
		}
	}
	s.unread(n)
	return op.single
}

// readNumber consumes a run of alphanumerics. The run is not validated:
// 12ab is a Number and rejecting it is up to the parser.
func (s *Session) readNumber() []byte {
	buf := s.scratch.reset()
	for {
		c := s.read()
		if !isAlnum(c) {
			s.unread(c)
			break
		}
		buf.push(byte(c))
	}
	return s.finish(buf)
}

// readIdentifier consumes letters, digits and underscores after first.
func (s *Session) readIdentifier(first byte) []byte {
	buf := s.scratch.reset()
	buf.push(first)
	for {
		c := s.read()
		if !isIdentContinue(c) {
			s.unread(c)
			break
		}
		buf.push(byte(c))
	}
	return s.finish(buf)
}

// Character classification. c may be eof, which matches nothing.

func isSpace(c int) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isPrint(c int) bool {
	return c >= 0x20 && c < 0x7f
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c int) bool {
	return isAlpha(c) || isDigit(c)
}

func isIdentStart(c int) bool {
	return isAlpha(c) || c == '_'
}

func isIdentContinue(c int) bool {
	return isAlnum(c) || c == '_'
}
