// Package lt implements lovetoken, a small general purpose tokenizer.
//
// A Session reads bytes from a single source and classifies them into
// tokens:
//   - Punctuation and operators (single byte, or two bytes with one byte
//     of lookahead)
//   - String and character literals with configurable delimiters
//   - Numbers (any run of alphanumerics starting with a digit)
//   - Identifiers
//   - Comment markers (// /* */ /+ +/)
//   - End of stream
//
// Anything else comes back as a one byte CharacterSequence token, so the
// tokenizer never rejects input on its own. Grammar decisions are left to
// the host parser.
//
// # Errors
//
// Recoverable problems (an unterminated literal, an unknown escape, a
// source that cannot be opened) are recorded in a sticky assertion: the
// first one is kept with its offset, later ones are ignored. Next also
// returns the failure raised during that call, so callers may either check
// every result or poll Check after each token.
//
// I/O failures of the backing store are returned as *FatalError. The
// session never exits the process.
//
// # Text ownership
//
// By default token text is tracked by the session Arena and zeroed by
// Teardown. Copy any text that must outlive the session, or build the
// session WithoutArena to hand ownership of every slice to the caller.
//
// # Example
//
//	s := lt.New(lt.WithStringDelimiters(`"`))
//	if err := s.Open("script.txt"); err != nil {
//		return err
//	}
//	defer s.Teardown()
//	defer s.Close()
//
//	for {
//		tok, err := s.Next()
//		if err != nil {
//			return err
//		}
//		if tok.Kind == lt.EndOfStream {
//			break
//		}
//		fmt.Println(tok)
//	}
//
// A Session is not safe for concurrent use. Tokenize independent streams
// with independent sessions.
package lt
