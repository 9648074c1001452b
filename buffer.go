package ucsbuf

import "fmt"

// DefaultMinChunk is the smallest link capacity a Buffer allocates when no
// explicit size is configured. Allocations below this are rounded up so that
// many small encodes share one link.
const DefaultMinChunk = 1024

// Position marks a point in a Buffer that can later be passed to Truncate.
// Chain is the 1-based index of the link the position falls in (0 for an
// empty buffer) and Offset is the number of committed bytes within that
// link. Positions are cheap values: safe to copy, compare and store.
type Position struct {
	Chain  int
	Offset int
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("link %d, offset %d", p.Chain, p.Offset)
}

// Buffer is a chain of byte links that grows at the tail and never moves
// committed bytes. New output is appended by the Encode methods; Tell and
// Truncate give checkpoint/rollback over the committed region.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	links    [][]byte // committed chain; len is committed bytes, cap is link capacity
	spare    [][]byte // links detached by Truncate/Clear, retained for reuse
	gen      uint64   // bumped on every mutation; Views check it
	minChunk int
	freed    bool
}

// New returns an empty Buffer with the default minimum link size.
func New() *Buffer {
	return NewSize(DefaultMinChunk)
}

// NewSize returns an empty Buffer whose links are at least minChunk bytes.
// Values below 1 fall back to DefaultMinChunk.
func NewSize(minChunk int) *Buffer {
	if minChunk < 1 {
		minChunk = DefaultMinChunk
	}
	return &Buffer{minChunk: minChunk}
}

// Tell returns the current end of the committed region. The result stays
// valid as a Truncate target until a call truncates to a point before it;
// appends after Tell never invalidate it.
func (b *Buffer) Tell() Position {
	b.check()
	n := len(b.links)
	if n == 0 {
		return Position{}
	}
	return Position{Chain: n, Offset: len(b.links[n-1])}
}

// Truncate discards every byte committed after pos. Link capacity is
// retained for reuse rather than released. Truncating to the current end is
// a no-op for the committed bytes but still invalidates outstanding Views.
//
// pos must be the zero Position or one obtained from Tell and not truncated
// away since; anything else panics.
func (b *Buffer) Truncate(pos Position) {
	b.check()
	if !b.contains(pos) {
		panic("ucsbuf: Truncate position out of range")
	}
	b.gen++
	tail := b.links[pos.Chain:]
	for _, l := range tail {
		b.spare = append(b.spare, l[:0])
	}
	clear(tail)
	b.links = b.links[:pos.Chain]
	if pos.Chain > 0 {
		b.links[pos.Chain-1] = b.links[pos.Chain-1][:pos.Offset]
	}
}

// contains reports whether pos names a point inside the committed region.
func (b *Buffer) contains(pos Position) bool {
	if pos.Chain < 0 || pos.Offset < 0 || pos.Chain > len(b.links) {
		return false
	}
	if pos.Chain == 0 {
		return pos.Offset == 0
	}
	return pos.Offset <= len(b.links[pos.Chain-1])
}

// Clear discards all committed bytes but keeps the first link (and spares)
// allocated, so a cleared Buffer re-encodes without reallocating.
func (b *Buffer) Clear() {
	b.check()
	b.gen++
	if len(b.links) == 0 {
		return
	}
	tail := b.links[1:]
	for _, l := range tail {
		b.spare = append(b.spare, l[:0])
	}
	clear(tail)
	b.links = b.links[:1]
	b.links[0] = b.links[0][:0]
}

// Free releases the Buffer. Any later use of the Buffer or of Views taken
// from it panics.
func (b *Buffer) Free() {
	b.check()
	b.gen++
	b.links = nil
	b.spare = nil
	b.freed = true
}

// Len returns the total number of committed bytes across all links.
func (b *Buffer) Len() int {
	b.check()
	total := 0
	for _, l := range b.links {
		total += len(l)
	}
	return total
}

// Bytes returns a copy of all committed bytes in commit order. The copy is
// independent of the Buffer, so later mutations do not affect it. Taking the
// copy is not a mutation: outstanding Views remain valid.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.Len())
	for _, l := range b.links {
		out = append(out, l...)
	}
	return out
}

func (b *Buffer) check() {
	if b.freed {
		panic("ucsbuf: use of freed Buffer")
	}
}

// reserve guarantees n contiguous writable bytes at the tail and returns
// them. The bytes are not committed until commit is called. reserve(0) on an
// empty Buffer still allocates the first link.
func (b *Buffer) reserve(n int) []byte {
	b.ensure(n)
	last := len(b.links) - 1
	l := b.links[last]
	return l[len(l) : len(l)+n]
}

// commit extends the active link by the first n bytes of the region handed
// out by reserve and returns a View over exactly those bytes.
func (b *Buffer) commit(n int) View {
	last := len(b.links) - 1
	l := b.links[last]
	start := len(l)
	b.links[last] = l[:start+n]
	b.gen++
	return View{buf: b, gen: b.gen, data: b.links[last][start : start+n : start+n]}
}

// reserveAndWrite reserves n bytes, lets write fill them and commits the
// count write reports. write must not retain dst.
func (b *Buffer) reserveAndWrite(n int, write func(dst []byte) int) View {
	dst := b.reserve(n)
	return b.commit(write(dst))
}

// ensure makes room for n more contiguous bytes. If the active link is too
// full it first tries to reuse a spare link, then allocates a fresh one
// sized max(n, twice the active link, minChunk).
func (b *Buffer) ensure(n int) {
	var active int
	if last := len(b.links) - 1; last >= 0 {
		l := b.links[last]
		if cap(l)-len(l) >= n {
			return
		}
		active = cap(l)
	}
	for i, s := range b.spare {
		if cap(s) >= n {
			b.spare = append(b.spare[:i], b.spare[i+1:]...)
			b.links = append(b.links, s)
			return
		}
	}
	size := n
	if d := 2 * active; d > size {
		size = d
	}
	if size < b.minChunk {
		size = b.minChunk
	}
	b.links = append(b.links, make([]byte, 0, size))
}
