package ucsbuf

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/ucsbuf/errors"
)

// Surrogate block boundaries.
const (
	surr1 = 0xd800 // high surrogates start
	surr2 = 0xdc00 // low surrogates start
	surr3 = 0xe000 // one past the low surrogates

	maxScalar = 0x10ffff
)

// EncodeUCS1 transcodes one-byte (Latin-1) code units to UTF-8 and commits
// the bytes at the Buffer tail. Every byte value is a valid Latin-1 code
// point, so EncodeUCS1 cannot fail. Values below 0x80 pass through as-is;
// the rest expand to two bytes.
//
// Encoding an empty slice commits nothing but still returns a valid, empty
// View (and primes the first link of a fresh Buffer).
func (b *Buffer) EncodeUCS1(units []byte) View {
	b.check()
	n := len(units)
	for _, u := range units {
		if u >= 0x80 {
			n++
		}
	}
	return b.reserveAndWrite(n, func(dst []byte) int {
		w := 0
		for _, u := range units {
			if u < 0x80 {
				dst[w] = u
				w++
			} else {
				w += utf8.EncodeRune(dst[w:], rune(u))
			}
		}
		return w
	})
}

// EncodeUCS2 transcodes two-byte (UTF-16) code units to UTF-8 and commits
// the bytes at the Buffer tail. A high surrogate followed by a low surrogate
// is combined into one supplementary code point; any other surrogate is
// rejected.
//
// On failure the error reports the offending code unit (widened to uint32)
// and its index in units, and the Buffer is left exactly as it was: nothing
// is committed, no link is added and earlier Views remain valid.
func (b *Buffer) EncodeUCS2(units []uint16) (View, error) {
	b.check()
	n := 0
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < 0x80:
			n++
		case u < 0x800:
			n += 2
		case u < surr1 || u >= surr3:
			n += 3
		case u < surr2:
			// High surrogate: the next unit must be a low surrogate.
			if i+1 == len(units) || units[i+1] < surr2 || units[i+1] >= surr3 {
				return View{}, errors.InvalidScalar(errors.PhaseEncode, "unpaired high surrogate", uint32(u), i)
			}
			n += 4
			i++
		default:
			return View{}, errors.InvalidScalar(errors.PhaseEncode, "lone low surrogate", uint32(u), i)
		}
	}
	view := b.reserveAndWrite(n, func(dst []byte) int {
		w := 0
		for i := 0; i < len(units); i++ {
			u := units[i]
			switch {
			case u < 0x80:
				dst[w] = byte(u)
				w++
			case surr1 <= u && u < surr3:
				w += utf8.EncodeRune(dst[w:], utf16.DecodeRune(rune(u), rune(units[i+1])))
				i++
			default:
				w += utf8.EncodeRune(dst[w:], rune(u))
			}
		}
		return w
	})
	return view, nil
}

// EncodeUCS4 transcodes four-byte code units to UTF-8 and commits the bytes
// at the Buffer tail. Units must already be Unicode scalar values: surrogate
// code points and values beyond U+10FFFF are rejected.
//
// On failure the error reports the offending code unit and its index in
// units, and the Buffer is left exactly as it was: nothing is committed, no
// link is added and earlier Views remain valid.
func (b *Buffer) EncodeUCS4(units []uint32) (View, error) {
	b.check()
	n := 0
	for i, u := range units {
		switch {
		case u < 0x80:
			n++
		case u < 0x800:
			n += 2
		case surr1 <= u && u < surr3:
			return View{}, errors.InvalidScalar(errors.PhaseEncode, "surrogate code point", u, i)
		case u < 0x10000:
			n += 3
		case u <= maxScalar:
			n += 4
		default:
			return View{}, errors.InvalidScalar(errors.PhaseEncode, "code point beyond U+10FFFF", u, i)
		}
	}
	view := b.reserveAndWrite(n, func(dst []byte) int {
		w := 0
		for _, u := range units {
			if u < 0x80 {
				dst[w] = byte(u)
				w++
			} else {
				w += utf8.EncodeRune(dst[w:], rune(u))
			}
		}
		return w
	})
	return view, nil
}
