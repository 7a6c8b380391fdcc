// Package secpcurves is the closed curve registry and façade over the
// engine's lower layers (mp, bignum, field, curve). It binds one of the
// ten named SEC prime curves to a concrete word type and exposes the
// legacy-shaped boundary API, preserving the historical "prime" naming
// inversion: PrimeBitLength et al. report the group order n, while
// CoordBitLength et al. report the coordinate field prime p.
package secpcurves

import (
	"fmt"

	"secpcurves.dev/bignum"
	"secpcurves.dev/curve"
	"secpcurves.dev/field"
)

// word is the machine word every registered curve is instantiated over.
// mp, bignum, field and curve are all generic over 16- and 32-bit words;
// the registry fixes 32 bits, the width every production consumer of this
// kind of engine actually ships.
type word = uint32

// Curve is the façade every registered curve instance implements. It is a
// closed tagged union in spirit: the only way to obtain one is New, and
// New is total over exactly the ten registered names.
type Curve interface {
	// PrimeBitLength and PrimeByteLength report the group order n's bit
	// and byte length, the historical naming inversion.
	PrimeBitLength() int
	PrimeByteLength() int
	// GetPrime serializes the group order n, big-endian, into buf. A buf
	// larger than the natural byte length is left-padded with zeros; a
	// smaller buf receives only the least significant bytes.
	GetPrime(buf []byte) error

	// CoordBitLength and CoordByteLength report the coordinate field
	// prime p's bit and byte length.
	CoordBitLength() int
	CoordByteLength() int

	// PublicKey derives Q = sk*G and serializes Qx, Qy big-endian into qx, qy.
	PublicKey(qx, qy, sk []byte) error

	// Sign produces (r, s) for digest h under ephemeral scalar k and
	// secret scalar d, serialized big-endian into r, s. Returns
	// ErrSignFailed on a degenerate signature.
	Sign(r, s, h, k, d []byte) error

	// Verify reports whether (r, s) is a valid signature over h under
	// public key (qx, qy): -1 if valid, 0 if invalid. No range checks are
	// performed on any input.
	Verify(r, s, h, qx, qy []byte) int32

	// VerifyStrict additionally rejects r, s outside [1, n-1] and a
	// public key that is the identity or fails the curve equation,
	// before running any verification arithmetic.
	VerifyStrict(r, s, h, qx, qy []byte) int32
}

// New constructs the named curve's cipher. name must be one of the ten
// exact, case-sensitive SEC names; any other value returns ErrInvalidCurve.
func New(name string) (Curve, error) {
	p, ok := params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCurve, name)
	}

	a := bignum.FromHex[word](p.npb, p.a)
	b := bignum.FromHex[word](p.npb, p.b)
	gx := bignum.FromHex[word](p.npb, p.gx)
	gy := bignum.FromHex[word](p.npb, p.gy)
	prime := bignum.FromHex[word](p.npb, p.p)
	order := bignum.FromHex[word](p.nnb, p.n)

	fp := field.New[word](p.npb, prime)
	fn := field.New[word](p.nnb, order)

	cipher := curve.NewCipher[word](p.npb, p.nnb, a, b, gx, gy, fp, fn)
	return &genericCurve{name: name, npb: p.npb, nnb: p.nnb, cipher: cipher}, nil
}

type genericCurve struct {
	name     string
	npb, nnb int
	cipher   *curve.Cipher[word]
}

func (g *genericCurve) PrimeBitLength() int  { return g.nnb }
func (g *genericCurve) PrimeByteLength() int { return (g.nnb + 7) / 8 }

func (g *genericCurve) GetPrime(buf []byte) error {
	n := bignum.FromWords[word](g.nnb, g.cipher.Fn.Prime())
	copy(buf, n.Bytes(len(buf)))
	return nil
}

func (g *genericCurve) CoordBitLength() int  { return g.npb }
func (g *genericCurve) CoordByteLength() int { return (g.npb + 7) / 8 }

func (g *genericCurve) PublicKey(qx, qy, sk []byte) error {
	d := bignum.FromBytes[word](g.nnb, sk)
	q := g.cipher.PublicKey(d)
	copy(qx, q.X.Bytes(len(qx)))
	copy(qy, q.Y.Bytes(len(qy)))
	return nil
}

func (g *genericCurve) Sign(r, s, h, k, d []byte) error {
	kBox := bignum.FromBytes[word](g.nnb, k)
	dBox := bignum.FromBytes[word](g.nnb, d)

	rBox, sBox, err := g.cipher.Sign(h, kBox, dBox)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignFailed, err)
	}
	copy(r, rBox.Bytes(len(r)))
	copy(s, sBox.Bytes(len(s)))
	return nil
}

func (g *genericCurve) Verify(r, s, h, qx, qy []byte) int32 {
	rBox := bignum.FromBytes[word](g.nnb, r)
	sBox := bignum.FromBytes[word](g.nnb, s)
	qxBox := bignum.FromBytes[word](g.npb, qx)
	qyBox := bignum.FromBytes[word](g.npb, qy)
	q := curve.Point[word]{X: qxBox, Y: qyBox}

	if g.cipher.Verify(rBox, sBox, h, q) {
		return -1
	}
	return 0
}

func (g *genericCurve) VerifyStrict(r, s, h, qx, qy []byte) int32 {
	rBox := bignum.FromBytes[word](g.nnb, r)
	sBox := bignum.FromBytes[word](g.nnb, s)
	qxBox := bignum.FromBytes[word](g.npb, qx)
	qyBox := bignum.FromBytes[word](g.npb, qy)
	q := curve.Point[word]{X: qxBox, Y: qyBox}

	if g.cipher.VerifyStrict(rBox, sBox, h, q) {
		return -1
	}
	return 0
}
