package ucsbuf

// View is a borrowed window over bytes committed to a Buffer. It stays
// readable until the next mutating call on that Buffer (any Encode,
// Truncate, Clear or Free); reading a stale View panics rather than
// returning bytes that may since have been overwritten.
//
// The zero View is invalid.
type View struct {
	buf  *Buffer
	data []byte
	gen  uint64
}

// Valid reports whether the View may still be read.
func (v View) Valid() bool {
	return v.buf != nil && !v.buf.freed && v.gen == v.buf.gen
}

// Len returns the number of bytes in the View. Len is safe on a stale View.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the viewed bytes without copying. The slice aliases Buffer
// memory: treat it as read-only and do not retain it past the next mutating
// call. Bytes panics if the View is stale.
func (v View) Bytes() []byte {
	if !v.Valid() {
		panic("ucsbuf: View used after Buffer mutation")
	}
	return v.data
}

// String returns a copy of the viewed bytes as a string. The copy is safe to
// retain indefinitely. String panics if the View is stale.
func (v View) String() string {
	if !v.Valid() {
		panic("ucsbuf: View used after Buffer mutation")
	}
	return string(v.data)
}
