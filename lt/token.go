package lt

import (
	"fmt"
)

// Kind classifies a token.
type Kind uint8

const (
	Colon              Kind = iota // :
	Comma                          // ,
	Div                            // /
	Mod                            // %
	Mul                            // *
	Query                          // ?
	BraceOpen                      // {
	BraceClose                     // }
	BracketOpen                    // [
	BracketClose                   // ]
	ParenOpen                      // (
	ParenClose                     // )
	Newline                        // \n
	PlusPlus                       // ++
	Plus                           // +
	AmpAmp                         // &&
	Amp                            // &
	GreaterEqual                   // >=
	ShiftRight                     // >>
	GreaterThan                    // >
	LessEqual                      // <=
	ShiftLeft                      // <<
	NotEqual                       // != <> ~=
	LessThan                       // <
	Equal                          // ==
	Assign                         // =
	Not                            // !
	PipePipe                       // ||
	Pipe                           // |
	CaretCaret                     // ^^
	Caret                          // ^
	MinusMinus                     // --
	Minus                          // -
	String                         // "text"
	Character                      // 'c'
	Number                         // 12, 0x1F, 12ab
	Identifier                     // name_1
	EndOfStream                    // end of input
	CharacterSequence              // any other single byte
	Comment                        // //
	Period                         // .
	Arrow                          // ->
	Sigil                          // $
	Hash                           // #
	BlockCommentOpen               // /*
	BlockCommentClose              // */
	Exponent                       // **
	NestedCommentOpen              // /+
	NestedCommentClose             // +/
	Semicolon                      // ;

	kindCount
)

var kindNames = [kindCount]string{
	Colon:              "Colon",
	Comma:              "Comma",
	Div:                "Div",
	Mod:                "Mod",
	Mul:                "Mul",
	Query:              "Query",
	BraceOpen:          "BraceOpen",
	BraceClose:         "BraceClose",
	BracketOpen:        "BracketOpen",
	BracketClose:       "BracketClose",
	ParenOpen:          "ParenOpen",
	ParenClose:         "ParenClose",
	Newline:            "Newline",
	PlusPlus:           "PlusPlus",
	Plus:               "Plus",
	AmpAmp:             "AmpAmp",
	Amp:                "Amp",
	GreaterEqual:       "GreaterEqual",
	ShiftRight:         "ShiftRight",
	GreaterThan:        "GreaterThan",
	LessEqual:          "LessEqual",
	ShiftLeft:          "ShiftLeft",
	NotEqual:           "NotEqual",
	LessThan:           "LessThan",
	Equal:              "Equal",
	Assign:             "Assign",
	Not:                "Not",
	PipePipe:           "PipePipe",
	Pipe:               "Pipe",
	CaretCaret:         "CaretCaret",
	Caret:              "Caret",
	MinusMinus:         "MinusMinus",
	Minus:              "Minus",
	String:             "String",
	Character:          "Character",
	Number:             "Number",
	Identifier:         "Identifier",
	EndOfStream:        "EndOfStream",
	CharacterSequence:  "CharacterSequence",
	Comment:            "Comment",
	Period:             "Period",
	Arrow:              "Arrow",
	Sigil:              "Sigil",
	Hash:               "Hash",
	BlockCommentOpen:   "BlockCommentOpen",
	BlockCommentClose:  "BlockCommentClose",
	Exponent:           "Exponent",
	NestedCommentOpen:  "NestedCommentOpen",
	NestedCommentClose: "NestedCommentClose",
	Semicolon:          "Semicolon",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// HasText reports whether tokens of this kind carry text.
func (k Kind) HasText() bool {
	switch k {
	case String, Character, Number, Identifier, CharacterSequence:
		return true
	}
	return false
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Token is one classified lexical unit.
type Token struct {
	Kind   Kind
	Text   []byte // nil unless Kind.HasText()
	Offset int64  // source offset of the first byte, after whitespace
}

// HasText reports whether the token carries text.
func (t Token) HasText() bool {
	return t.Text != nil
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Text == nil {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
