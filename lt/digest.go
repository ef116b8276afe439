package lt

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
)

// Digest is a SHA-256 fingerprint of a token sequence. Two runs that
// produce the same kinds, offsets and text have the same digest.
type Digest [32]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses a 64 character hex digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != 2*len(d) {
		return d, fmt.Errorf("lt: digest must be %d hex characters, got %d", 2*len(d), len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("lt: bad digest: %w", err)
	}
	return d, nil
}

// Digester accumulates tokens into a Digest.
type Digester struct {
	h     hash.Hash
	n     int
	frame []byte
}

// NewDigester returns an empty digester.
func NewDigester() *Digester {
	return &Digester{h: sha256.New()}
}

// Add feeds one token. Each token is framed as kind, offset and
// length-prefixed text, so adjacent texts cannot run together.
func (d *Digester) Add(tok Token) {
	d.frame = append(d.frame[:0], byte(tok.Kind))
	d.frame = binary.AppendVarint(d.frame, tok.Offset)
	if tok.Text == nil {
		d.frame = append(d.frame, 0)
	} else {
		d.frame = append(d.frame, 1)
		d.frame = binary.AppendUvarint(d.frame, uint64(len(tok.Text)))
		d.frame = append(d.frame, tok.Text...)
	}
	d.h.Write(d.frame)
	d.n++
}

// Count returns the number of tokens added.
func (d *Digester) Count() int {
	return d.n
}

// Sum returns the digest of the tokens added so far.
func (d *Digester) Sum() Digest {
	var out Digest
	d.h.Sum(out[:0])
	return out
}

// DigestTokens returns the digest of toks.
func DigestTokens(toks []Token) Digest {
	d := NewDigester()
	for _, tok := range toks {
		d.Add(tok)
	}
	return d.Sum()
}
