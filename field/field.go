// Package field implements prime-field arithmetic: modular add, sub,
// double, half, multiply, square and inverse around a fixed prime,
// reduced via Barrett's method. Two regimes are distinguished: compact,
// when the prime's bit length fills its word array exactly (prime =
// 2^NB - m), and general otherwise. The regime selects the Barrett
// routine of the multiply-reduce core: mp.BarrettCompact with its
// m-based multiplier in the compact regime, the classical
// mp.BarrettGeneral otherwise, each parameterized by a reciprocal
// computed once at construction time. Add and Twice fold a carry out of
// the top word back in by adding m; only the compact regime can produce
// such a carry.
package field

import (
	"fmt"
	"math/big"

	"secpcurves.dev/bignum"
	"secpcurves.dev/mp"
)

// Regime distinguishes the two Barrett tunings described by the engine.
type Regime int

const (
	// Compact applies when the prime's bit length is an exact multiple of
	// the word width: prime = 2^NB - m.
	Compact Regime = iota
	// General applies otherwise.
	General
)

// Fp is a prime field modulo a fixed prime, fixed at construction.
type Fp[W mp.Word] struct {
	nb        int
	nw        int
	wb        int
	regime    Regime
	prime     []W
	halfPrime []W
	m         []W // compact regime only: 2^nb - prime
	r         []W // general-regime Barrett reciprocal: floor(2^(2*nb)/prime)
	rCompact  []W // compact-regime reciprocal: floor(2^(2*nb)/prime) - 2^nb
}

// New builds the field modulo prime, a bit width nb integer. Behavior is
// undefined if prime is not an odd prime less than 2^nb.
func New[W mp.Word](nb int, prime bignum.Int[W]) *Fp[W] {
	wb := int(mp.Bits[W]())
	nw := bignum.Words[W](nb)

	f := &Fp[W]{nb: nb, nw: nw, wb: wb}
	f.prime = make([]W, nw)
	copy(f.prime, prime.Words())

	f.halfPrime = make([]W, nw)
	tmp := make([]W, nw)
	mp.AddWord(tmp, f.prime, 1)
	mp.ShiftRight(f.halfPrime, tmp, 1)

	pBig := wordsToBig[W](f.prime, wb)

	if nb == nw*wb {
		f.regime = Compact
		mBig := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(nb)), pBig)
		f.m = bigToWords[W](mBig, nw+1)
		// rCompact = floor(2^(2*nb)/prime) - 2^nb, i.e. m + m^2/2^nb plus
		// the higher-order terms m^3/2^(2*nb) + ...; keeping all of them
		// holds the quotient estimate within a few units of the true
		// quotient even when m is large.
		rcBig := new(big.Int).Div(new(big.Int).Lsh(big.NewInt(1), uint(2*nb)), pBig)
		rcBig.Sub(rcBig, new(big.Int).Lsh(big.NewInt(1), uint(nb)))
		f.rCompact = bigToWords[W](rcBig, nw+2)
	} else {
		f.regime = General
	}

	rBig := new(big.Int).Div(new(big.Int).Lsh(big.NewInt(1), uint(2*nb)), pBig)
	f.r = bigToWords[W](rBig, nw+2)

	return f
}

// Regime reports which Barrett tuning this field uses.
func (f *Fp[W]) Regime() Regime { return f.regime }

// NW reports the word count of values in this field.
func (f *Fp[W]) NW() int { return f.nw }

// Prime returns the field modulus' word slice (read-only by convention).
func (f *Fp[W]) Prime() []W { return f.prime }

func wordsToBig[W mp.Word](words []W, wb int) *big.Int {
	r := new(big.Int)
	word := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		r.Lsh(r, uint(wb))
		word.SetUint64(uint64(words[i]))
		r.Or(r, word)
	}
	return r
}

func bigToWords[W mp.Word](b *big.Int, nw int) []W {
	wb := 0
	{
		var w W
		wb = sizeOfBits(w)
	}
	words := make([]W, nw)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(wb)), big.NewInt(1))
	t := new(big.Int).Set(b)
	word := new(big.Int)
	for i := 0; i < nw; i++ {
		word.And(t, mask)
		words[i] = W(word.Uint64())
		t.Rsh(t, uint(wb))
	}
	return words
}

func sizeOfBits[W mp.Word](_ W) int { return int(mp.Bits[W]()) }

// Add sets x = (a+b) mod prime. a and b must already be reduced.
func (f *Fp[W]) Add(x, a, b []W) {
	carry := mp.Add(x, a, b)
	f.condReduceAfterAdd(x, carry)
}

// condReduceAfterAdd brings a just-computed sum back into [0,prime). A
// carry out of the top word can only happen in the compact regime (the
// general regime always leaves headroom above the prime in its top
// word), and represents the register having silently dropped exactly
// 2^nb, which is corrected by adding m (2^nb mod prime). Either way, any
// remaining excess over the prime is removed by plain subtraction.
func (f *Fp[W]) condReduceAfterAdd(x []W, carry W) {
	if carry != 0 {
		mp.Add(x, x, f.m)
	}
	for mp.GreaterEq(x, f.prime) {
		mp.Sub(x, x, f.prime)
	}
}

// Sub sets x = (a-b) mod prime.
func (f *Fp[W]) Sub(x, a, b []W) {
	borrow := mp.Sub(x, a, b)
	if borrow != 0 {
		mp.Add(x, x, f.prime)
	}
}

// Twice sets x = 2*u mod prime.
func (f *Fp[W]) Twice(x, u []W) {
	top := u[len(u)-1]
	overflow := (top >> (mp.Bits[W]() - 1)) != 0
	mp.ShiftLeft(x, u, 1)
	var carry W
	if overflow {
		carry = 1
	}
	f.condReduceAfterAdd(x, carry)
}

// Half sets x = u/2 mod prime.
func (f *Fp[W]) Half(x, u []W) {
	odd := u[0]&1 != 0
	mp.ShiftRight(x, u, 1)
	if odd {
		mp.Add(x, x, f.halfPrime)
	}
}

// reduce performs the Barrett reduction core: prod (2*nw words) is reduced
// modulo prime and the canonical nw-word residue is written to x, via
// whichever of the two tunings the field's regime calls for.
func (f *Fp[W]) reduce(x, prod []W) {
	if f.regime == Compact {
		mp.BarrettCompact(x, prod, f.prime, f.m, f.rCompact, f.nb)
		return
	}
	mp.BarrettGeneral(x, prod, f.prime, f.r, f.nb)
}

// Mul sets x = a*b mod prime.
func (f *Fp[W]) Mul(x, a, b []W) {
	prod := make([]W, 2*f.nw)
	mp.Mul(prod, a, b)
	f.reduce(x, prod)
}

// Square sets x = a*a mod prime.
func (f *Fp[W]) Square(x, a []W) {
	prod := make([]W, 2*f.nw)
	mp.Square(prod, a)
	f.reduce(x, prod)
}

// Modulo reduces a value a of up to 2*NW words into the field, writing
// the canonical residue into x. Words of a beyond the first 2*NW are
// ignored.
func (f *Fp[W]) Modulo(x, a []W) {
	if len(a) <= f.nw {
		copy(x, a)
		for i := len(a); i < len(x); i++ {
			x[i] = 0
		}
		primeFull := make([]W, len(x))
		copy(primeFull, f.prime)
		for mp.GreaterEq(x, primeFull) {
			mp.Sub(x, x, primeFull)
		}
		return
	}
	prod := make([]W, 2*f.nw)
	copy(prod, a[:min(len(a), len(prod))])
	f.reduce(x, prod)
}

// Inverse sets x = u^-1 mod prime via Fermat's little theorem
// (u^(prime-2) mod prime), computed by left-to-right square-and-multiply
// over the exponent bits. Returns an error if u is zero.
//
// A binary extended-Euclidean variant would take fewer multiplications;
// exponentiation needs no sign/swap bookkeeping to get right.
func (f *Fp[W]) Inverse(x, u []W) error {
	if mp.IsZero(u) {
		return fmt.Errorf("field: inverse of zero is undefined")
	}

	two := make([]W, f.nw)
	two[0] = 2
	exp := make([]W, f.nw)
	mp.Sub(exp, f.prime, two)

	result := make([]W, f.nw)
	result[0] = 1
	base := make([]W, f.nw)
	copy(base, u)
	tmp := make([]W, f.nw)

	totalBits := f.nw * f.wb
	for i := totalBits - 1; i >= 0; i-- {
		f.Square(tmp, result)
		copy(result, tmp)
		wordIdx := i / f.wb
		bitIdx := uint(i % f.wb)
		if (exp[wordIdx]>>bitIdx)&1 != 0 {
			f.Mul(tmp, result, base)
			copy(result, tmp)
		}
	}
	copy(x, result)
	return nil
}
