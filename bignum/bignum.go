// Package bignum implements the fixed-width big integer box used to move
// values across the engine's boundary: a little-endian word array tagged
// with a compile-time-intended bit width, constructed from hex or
// big-endian bytes and serialized back the same way.
package bignum

import "secpcurves.dev/mp"

// Int is a fixed-width unsigned integer held as NW = ceil(nb/Bits[W])
// little-endian words. The zero value is not meaningful; use Zero, One or
// one of the From* constructors.
type Int[W mp.Word] struct {
	words []W
	nb    int
}

// Words reports the number of words required to hold nb bits of W.
func Words[W mp.Word](nb int) int {
	wb := int(mp.Bits[W]())
	return (nb + wb - 1) / wb
}

// Zero returns the additive identity at bit width nb.
func Zero[W mp.Word](nb int) Int[W] {
	return Int[W]{words: make([]W, Words[W](nb)), nb: nb}
}

// One returns the multiplicative identity at bit width nb.
func One[W mp.Word](nb int) Int[W] {
	x := Zero[W](nb)
	if len(x.words) > 0 {
		x.words[0] = 1
	}
	return x
}

// Ones returns the bitmask with exactly the low nb bits set (nb may be
// less than x's storage width, in which case the excess high bits of the
// top word stay zero). This is the mask used to clamp a scalar to a group
// order's bit length, not the all-words-maximum point-at-infinity
// sentinel (see the curve package for that).
func Ones[W mp.Word](storageNB, nb int) Int[W] {
	x := Zero[W](storageNB)
	wb := int(mp.Bits[W]())
	full := nb / wb
	rem := nb % wb
	for i := 0; i < full && i < len(x.words); i++ {
		x.words[i] = W(1<<uint(wb) - 1)
	}
	if rem > 0 && full < len(x.words) {
		x.words[full] = W(1<<uint(rem) - 1)
	}
	return x
}

// AllOnes returns the point-at-infinity sentinel: every storage word set to
// W(-1), regardless of nb. This is distinct from Ones, which masks to
// exactly nb significant bits; a curve coordinate's top word is set fully
// to all-ones here even when nb leaves that word only partially occupied.
func AllOnes[W mp.Word](nb int) Int[W] {
	x := Zero[W](nb)
	for i := range x.words {
		x.words[i] = ^W(0)
	}
	return x
}

// IsAllOnes reports whether x is exactly the AllOnes sentinel.
func (x Int[W]) IsAllOnes() bool {
	for _, w := range x.words {
		if w != ^W(0) {
			return false
		}
	}
	return true
}

// FromHex parses s as a hexadecimal integer, most-significant digit
// first. Any character outside [0-9a-fA-F] is treated as the digit 0.
// s may be of any length; once the storage width is exceeded, further
// digits simply shift the excess out of the top word (the value is
// implicitly reduced modulo 2^(NW*Bits[W])).
func FromHex[W mp.Word](nb int, s string) Int[W] {
	x := Zero[W](nb)
	for _, c := range s {
		d := hexDigit(c)
		mp.ShiftLeft(x.words, x.words, 4)
		mp.AddWord(x.words, x.words, W(d))
	}
	return x
}

func hexDigit(c rune) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return uint8(c - '0')
	case c >= 'a' && c <= 'f':
		return uint8(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return uint8(c-'A') + 10
	default:
		return 0
	}
}

// FromBytes parses b as a big-endian integer. A byte slice shorter than
// the storage capacity is treated as zero-padded on its most significant
// side; a byte slice longer than the storage capacity is truncated to its
// most significant capacity-many bytes, per the engine's wire convention.
func FromBytes[W mp.Word](nb int, b []byte) Int[W] {
	x := Zero[W](nb)
	wb := int(mp.Bits[W]())
	wordBytes := wb / 8
	capBytes := len(x.words) * wordBytes

	eff := b
	if len(eff) > capBytes {
		eff = eff[:capBytes]
	}

	pos := len(eff)
	for wi := 0; wi < len(x.words); wi++ {
		var v uint64
		for bi := 0; bi < wordBytes; bi++ {
			v <<= 8
			idx := pos - wordBytes + bi
			if idx >= 0 && idx < len(eff) {
				v |= uint64(eff[idx])
			}
		}
		x.words[wi] = W(v)
		pos -= wordBytes
	}
	return x
}

// Bytes serializes x as a big-endian byte array of exactly n bytes. If n
// exceeds the value's natural width, the output is left-padded with
// zeros; if n is smaller, the most significant excess bytes are dropped.
func (x Int[W]) Bytes(n int) []byte {
	wb := int(mp.Bits[W]())
	wordBytes := wb / 8
	full := make([]byte, len(x.words)*wordBytes)
	for wi := 0; wi < len(x.words); wi++ {
		v := uint64(x.words[wi])
		base := (len(x.words) - 1 - wi) * wordBytes
		for bi := 0; bi < wordBytes; bi++ {
			full[base+wordBytes-1-bi] = byte(v >> (8 * bi))
		}
	}
	out := make([]byte, n)
	if n >= len(full) {
		copy(out[n-len(full):], full)
	} else {
		copy(out, full[len(full)-n:])
	}
	return out
}

// Words returns the underlying little-endian word slice. Callers that
// mutate it are responsible for keeping it within NB bits.
func (x Int[W]) Words() []W { return x.words }

// BitLen reports the storage bit width x was constructed with.
func (x Int[W]) BitLen() int { return x.nb }

// Equal reports whether x and y represent the same value.
func (x Int[W]) Equal(y Int[W]) bool { return mp.Eq(x.words, y.words) }

// IsZero reports whether x is the zero value.
func (x Int[W]) IsZero() bool { return mp.IsZero(x.words) }

// FromWords wraps an existing little-endian word slice as an Int without
// copying. The caller must not mutate words afterward.
func FromWords[W mp.Word](nb int, words []W) Int[W] {
	return Int[W]{words: words, nb: nb}
}

// Clone returns a deep copy of x.
func (x Int[W]) Clone() Int[W] {
	w := make([]W, len(x.words))
	copy(w, x.words)
	return Int[W]{words: w, nb: x.nb}
}
