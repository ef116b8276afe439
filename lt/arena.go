package lt

// Arena owns the buffers a session hands out as token text.
//
// Buffers are kept in allocation order and released together. Release
// zeroes every tracked buffer, so text read after Teardown is garbage
// rather than stale data; copy out anything that must survive.
type Arena struct {
	bufs [][]byte
	size int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Track records b and returns it unchanged.
func (a *Arena) Track(b []byte) []byte {
	a.bufs = append(a.bufs, b)
	a.size += len(b)
	return b
}

// Len returns the number of tracked buffers.
func (a *Arena) Len() int {
	return len(a.bufs)
}

// Size returns the total length of tracked buffers in bytes.
func (a *Arena) Size() int {
	return a.size
}

// Release zeroes and forgets every tracked buffer. A second call is a no-op.
func (a *Arena) Release() {
	for i, b := range a.bufs {
		clear(b)
		a.bufs[i] = nil
	}
	a.bufs = nil
	a.size = 0
}
