// Package mp implements fixed-width multi-precision unsigned integer
// arithmetic over slices of a machine word type. It is the leaf layer of
// the engine: every operation is a pure function of its caller-supplied
// input and output slices. BarrettGeneral, BarrettCompact and
// ConstantTimeEq allocate their own temporaries; the other operations
// allocate nothing.
//
// Word arrays are little-endian: index 0 holds the least significant word.
// Callers allocate every output slice; these functions never grow or
// reallocate them.
package mp

import (
	"crypto/subtle"
	"unsafe"
)

// Word is the machine word the multi-precision layer is built over. Both
// 16-bit and 32-bit words are supported; double-width products and carries
// are promoted through uint64 for either width.
type Word interface {
	~uint16 | ~uint32
}

// Bits reports the bit width of W: 16 or 32.
func Bits[W Word]() uint {
	var w W
	return uint(unsafe.Sizeof(w)) * 8
}

func mask[W Word]() uint64 {
	return 1<<Bits[W]() - 1
}

func wordAt[W Word](a []W, i int) uint64 {
	if i < 0 || i >= len(a) {
		return 0
	}
	return uint64(a[i])
}

// Add computes x = a + b, zero-extending the shorter of a, b, and returns
// the carry out of the top word of x.
func Add[W Word](x, a, b []W) W {
	var carry uint64
	for i := range x {
		s := wordAt(a, i) + wordAt(b, i) + carry
		x[i] = W(s & mask[W]())
		carry = s >> Bits[W]()
	}
	return W(carry)
}

// AddWord computes x = a + w, a single-word addend, and returns the carry.
func AddWord[W Word](x, a []W, w W) W {
	carry := uint64(w)
	for i := range x {
		s := wordAt(a, i) + carry
		x[i] = W(s & mask[W]())
		carry = s >> Bits[W]()
	}
	return W(carry)
}

// Sub computes x = a - b, zero-extending the shorter operand, and returns
// the signed borrow: -1 if the subtraction underflowed, 0 otherwise.
func Sub[W Word](x, a, b []W) int {
	var borrow uint64
	for i := range x {
		av, bv := wordAt(a, i), wordAt(b, i)
		d := av - bv - borrow
		x[i] = W(d & mask[W]())
		if av < bv+borrow {
			borrow = 1
		} else {
			borrow = 0
		}
	}
	if borrow != 0 {
		return -1
	}
	return 0
}

// Carry reports whether a+b would overflow len(x) words without writing a
// result; x is used only for its length.
func Carry[W Word](x, a, b []W) bool {
	var carry uint64
	for i := range x {
		s := wordAt(a, i) + wordAt(b, i) + carry
		carry = s >> Bits[W]()
	}
	return carry != 0
}

// Mul computes x = a*b. len(x) must equal len(a)+len(b).
func Mul[W Word](x, a, b []W) {
	for i := range x {
		x[i] = 0
	}
	bits := Bits[W]()
	m := mask[W]()
	for i := 0; i < len(a); i++ {
		if a[i] == 0 {
			continue
		}
		ai := uint64(a[i])
		var carry uint64
		for j := 0; j < len(b); j++ {
			p := ai*uint64(b[j]) + uint64(x[i+j]) + carry
			x[i+j] = W(p & m)
			carry = p >> bits
		}
		k := i + len(b)
		for carry != 0 {
			p := uint64(x[k]) + carry
			x[k] = W(p & m)
			carry = p >> bits
			k++
		}
	}
}

// Square computes x = a*a using the classic upper-triangle-double plus
// diagonal-squares optimization: the off-diagonal cross terms are
// accumulated once, doubled, then the diagonal a[i]*a[i] terms are added.
// len(x) must equal 2*len(a).
func Square[W Word](x, a []W) {
	n := len(a)
	bits := Bits[W]()
	m := mask[W]()
	for i := range x {
		x[i] = 0
	}
	for i := 0; i < n; i++ {
		if a[i] == 0 {
			continue
		}
		ai := uint64(a[i])
		var carry uint64
		for j := i + 1; j < n; j++ {
			p := ai*uint64(a[j]) + uint64(x[i+j]) + carry
			x[i+j] = W(p & m)
			carry = p >> bits
		}
		k := i + n
		for carry != 0 {
			p := uint64(x[k]) + carry
			x[k] = W(p & m)
			carry = p >> bits
			k++
		}
	}
	ShiftLeft(x, x, 1)
	var carry uint64
	for i := 0; i < n; i++ {
		ai := uint64(a[i])
		sq := ai * ai
		lo := sq & m
		hi := sq >> bits
		pos := 2 * i
		s1 := uint64(x[pos]) + lo + carry
		x[pos] = W(s1 & m)
		s2 := uint64(x[pos+1]) + hi + (s1 >> bits)
		x[pos+1] = W(s2 & m)
		carry = s2 >> bits
		k := pos + 2
		for carry != 0 && k < len(x) {
			s := uint64(x[k]) + carry
			x[k] = W(s & m)
			carry = s >> bits
			k++
		}
	}
}

// MultAdd computes x = a + b*mul, a single-word multiplier applied across
// the array b, and returns the carry out of the top word.
func MultAdd[W Word](x, a, b []W, mul W) W {
	bits := Bits[W]()
	msk := mask[W]()
	mm := uint64(mul)
	var carry uint64
	for i := range x {
		p := wordAt(b, i)*mm + wordAt(a, i) + carry
		x[i] = W(p & msk)
		carry = p >> bits
	}
	return W(carry)
}

// ShiftLeft computes x = a << n (n may exceed the word width). x and a may
// alias the same backing slice: the implementation walks high-to-low so an
// in-place shift is safe.
func ShiftLeft[W Word](x, a []W, n uint) {
	wb := Bits[W]()
	msk := mask[W]()
	wordShift := int(n / wb)
	bitShift := n % wb
	for i := len(x) - 1; i >= 0; i-- {
		srcIdx := i - wordShift
		lo := wordAt(a, srcIdx)
		var v uint64
		if bitShift == 0 {
			v = lo
		} else {
			hi := wordAt(a, srcIdx-1)
			v = ((lo << bitShift) | (hi >> (wb - bitShift))) & msk
		}
		x[i] = W(v)
	}
}

// ShiftRight computes x = a >> n. x and a may alias the same backing
// slice: the implementation walks low-to-high so an in-place shift is
// safe.
func ShiftRight[W Word](x, a []W, n uint) {
	wb := Bits[W]()
	msk := mask[W]()
	wordShift := int(n / wb)
	bitShift := n % wb
	for i := range x {
		srcIdx := i + wordShift
		lo := wordAt(a, srcIdx)
		var v uint64
		if bitShift == 0 {
			v = lo
		} else {
			hi := wordAt(a, srcIdx+1)
			v = ((lo >> bitShift) | (hi << (wb - bitShift))) & msk
		}
		x[i] = W(v)
	}
}

// And computes x = a & b, zero-extending the shorter operand.
func And[W Word](x, a, b []W) {
	for i := range x {
		x[i] = W(wordAt(a, i)) & W(wordAt(b, i))
	}
}

// Or computes x = a | b, zero-extending the shorter operand.
func Or[W Word](x, a, b []W) {
	for i := range x {
		x[i] = W(wordAt(a, i)) | W(wordAt(b, i))
	}
}

// Xor computes x = a ^ b, zero-extending the shorter operand.
func Xor[W Word](x, a, b []W) {
	for i := range x {
		x[i] = W(wordAt(a, i)) ^ W(wordAt(b, i))
	}
}

func cmp[W Word](a, b []W) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := n - 1; i >= 0; i-- {
		av, bv := wordAt(a, i), wordAt(b, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Eq reports whether a and b represent the same value, zero-extending the
// shorter operand.
func Eq[W Word](a, b []W) bool { return cmp(a, b) == 0 }

// Less reports whether a < b.
func Less[W Word](a, b []W) bool { return cmp(a, b) < 0 }

// Greater reports whether a > b.
func Greater[W Word](a, b []W) bool { return cmp(a, b) > 0 }

// LessEq reports whether a <= b.
func LessEq[W Word](a, b []W) bool { return cmp(a, b) <= 0 }

// GreaterEq reports whether a >= b.
func GreaterEq[W Word](a, b []W) bool { return cmp(a, b) >= 0 }

// ConstantTimeEq reports whether a and b represent the same value, zero-
// extending the shorter operand, using subtle.ConstantTimeCompare rather
// than cmp's early-exit comparison. Used for the one comparison in the
// engine that sits directly on the signature-verification decision.
func ConstantTimeEq[W Word](a, b []W) bool {
	wordBytes := int(Bits[W]()) / 8
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	ab := make([]byte, n*wordBytes)
	bb := make([]byte, n*wordBytes)
	for i := 0; i < n; i++ {
		av, bv := wordAt(a, i), wordAt(b, i)
		for j := 0; j < wordBytes; j++ {
			ab[i*wordBytes+j] = byte(av >> uint(8*j))
			bb[i*wordBytes+j] = byte(bv >> uint(8*j))
		}
	}
	return subtle.ConstantTimeCompare(ab, bb) == 1
}

// IsZero reports whether every word of a is zero.
func IsZero[W Word](a []W) bool {
	for _, w := range a {
		if w != 0 {
			return false
		}
	}
	return true
}

// InverseOdd computes the inverse of the odd word x modulo 2^Bits[W],
// via Newton-Hensel lifting (y_{k+1} = y_k*(2 - x*y_k) mod 2^2k).
// Behavior is undefined if x is even.
func InverseOdd[W Word](x W) W {
	bits := Bits[W]()
	msk := mask[W]()
	xu := uint64(x) & msk
	y := uint64(1)
	for k := uint(1); k < bits; k <<= 1 {
		t := (xu * y) & msk
		y = (y * ((2 - t) & msk)) & msk
	}
	return W(y)
}

// BarrettGeneral reduces the 2*n-word product prod modulo prime (an n-word
// value), writing the canonical n-word residue to x. r is the precomputed
// Barrett reciprocal floor(2^(2*nb)/prime) for the field's bit width nb,
// held as a word slice of its own natural length. This is the classical
// (general-regime) reduction: q = floor(prod*r / 2^(2*nb)), t = q*prime,
// x = prod - t, with a final subtraction loop to land in [0,prime).
func BarrettGeneral[W Word](x, prod, prime, r []W, nb int) {
	n := len(x)
	qp := make([]W, len(prod)+len(r))
	Mul(qp, prod, r)

	q := make([]W, len(qp))
	ShiftRight(q, qp, uint(2*nb))

	t := make([]W, len(q)+n)
	Mul(t, q, prime)

	width := len(prod)
	if len(t) > width {
		width = len(t)
	}
	acc := make([]W, width)
	tFull := make([]W, width)
	copy(acc, prod)
	copy(tFull, t)
	Sub(acc, acc, tFull)

	primeFull := make([]W, width)
	copy(primeFull, prime)
	for GreaterEq(acc, primeFull) {
		Sub(acc, acc, primeFull)
	}
	copy(x, acc[:n])
}

// BarrettCompact reduces prod (2*n words) modulo a compact-regime prime
// (prime = 2^nb - m, nb the exact bit width of the n-word array) using
// the m-based fast multiplier. The quotient estimate is
// q = floor(prod/2^nb) + floor(prod*rCompact/2^(2*nb)) with
// rCompact = floor(2^(2*nb)/prime) - 2^nb (= m + m^2/2^nb + ...); the
// estimate never exceeds the true quotient and falls short of it by at
// most 3. q*prime is then built the cheap way, as q<<nb minus the short
// product q*m, and subtracted from prod; a final conditional subtraction
// loop lands the result in [0,prime).
func BarrettCompact[W Word](x, prod, prime, m, rCompact []W, nb int) {
	n := len(x)
	wb := int(Bits[W]())
	wordShift := nb / wb // nb fills its word array exactly in this regime

	term1 := make([]W, len(prod))
	ShiftRight(term1, prod, uint(nb))

	qp := make([]W, len(prod)+len(rCompact))
	Mul(qp, prod, rCompact)
	term2 := make([]W, len(qp))
	ShiftRight(term2, qp, uint(2*nb))

	qWidth := len(term1)
	if len(term2) > qWidth {
		qWidth = len(term2)
	}
	qWidth++
	t1 := make([]W, qWidth)
	t2 := make([]W, qWidth)
	copy(t1, term1)
	copy(t2, term2)
	q := make([]W, qWidth)
	Add(q, t1, t2)

	qm := make([]W, qWidth+len(m))
	Mul(qm, q, m)

	// acc = prod - q<<nb + q*m = prod - q*prime. The intermediate
	// subtraction may wrap below zero; the wrap cancels when q*m is added
	// back, since the final value is non-negative.
	width := len(prod) + qWidth + 1
	acc := make([]W, width)
	copy(acc, prod)
	qShifted := make([]W, width)
	copy(qShifted[wordShift:], q)
	Sub(acc, acc, qShifted)
	qmFull := make([]W, width)
	copy(qmFull, qm)
	Add(acc, acc, qmFull)

	primeFull := make([]W, width)
	copy(primeFull, prime)
	for GreaterEq(acc, primeFull) {
		Sub(acc, acc, primeFull)
	}
	copy(x, acc[:n])
}

// InverseMod computes the inverse of x modulo the single-word prime m via
// the extended Euclidean algorithm. Behavior is undefined if gcd(x,m)!=1.
func InverseMod[W Word](x, m W) W {
	a, n := int64(x), int64(m)
	t, newt := int64(0), int64(1)
	r, newr := n, a
	for newr != 0 {
		q := r / newr
		t, newt = newt, t-q*newt
		r, newr = newr, r-q*newr
	}
	if t < 0 {
		t += n
	}
	return W(t)
}
