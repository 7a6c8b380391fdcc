package secpcurves

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func mustHexDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}

func TestNewRejectsUnknownCurveName(t *testing.T) {
	_, err := New("secp123r1")
	if !errors.Is(err, ErrInvalidCurve) {
		t.Fatalf("expected ErrInvalidCurve, got %v", err)
	}
}

func TestNewAcceptsAllTenCurves(t *testing.T) {
	names := []string{
		"secp112r1", "secp112r2",
		"secp128r1", "secp128r2",
		"secp160k1", "secp160r1",
		"secp192k1", "secp192r1",
		"secp256k1", "secp256r1",
	}
	for _, name := range names {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
}

// TestSecp256k1GeneratorKAT checks the canonical d=1 -> Q=G known-answer
// vector, and cross-checks it against btcec/v2's own generator point.
func TestSecp256k1GeneratorKAT(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	sk := make([]byte, c.PrimeByteLength())
	sk[len(sk)-1] = 1

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, sk); err != nil {
		t.Fatalf("PublicKey: %v", err)
	}

	wantX := mustHexDecode(t, "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	wantY := mustHexDecode(t, "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")
	if !bytes.Equal(qx, wantX) {
		t.Errorf("Qx = %x, want %x", qx, wantX)
	}
	if !bytes.Equal(qy, wantY) {
		t.Errorf("Qy = %x, want %x", qy, wantY)
	}

	_, gBtc := btcec.PrivKeyFromBytes(sk)
	uncompressed := gBtc.SerializeUncompressed()
	if len(uncompressed) != 65 || uncompressed[0] != 0x04 {
		t.Fatalf("unexpected btcec uncompressed encoding: % x", uncompressed)
	}
	if !bytes.Equal(uncompressed[1:33], wantX) || !bytes.Equal(uncompressed[33:65], wantY) {
		t.Fatalf("btcec disagrees with the 1*G fixture: % x", uncompressed)
	}
}

// TestSecp256r1DoubleGeneratorKAT checks the d=2 -> Q=2G known-answer vector.
func TestSecp256r1DoubleGeneratorKAT(t *testing.T) {
	c, err := New("secp256r1")
	if err != nil {
		t.Fatal(err)
	}
	sk := make([]byte, c.PrimeByteLength())
	sk[len(sk)-1] = 2

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, sk); err != nil {
		t.Fatalf("PublicKey: %v", err)
	}

	// 2*G for secp256r1 (NIST P-256), the standard published vector.
	wantX := mustHexDecode(t, "7CF27B188D034F7E8A52380304B51AC3C08969E277F21B35A60B48FC47669978")
	wantY := mustHexDecode(t, "07775510DB8ED040293D9AC69F7430DBBA7DADE63CE982299E04B79D227873D1")
	if !bytes.Equal(qx, wantX) {
		t.Errorf("Qx = %x, want %x", qx, wantX)
	}
	if !bytes.Equal(qy, wantY) {
		t.Errorf("Qy = %x, want %x", qy, wantY)
	}
}

// TestSecp192r1SignVerifyRoundTrip exercises the full sign/verify path with
// small, explicit scalars and a zeroed digest, then checks that the same
// signature fails against a digest of 24 0xFF bytes.
func TestSecp192r1SignVerifyRoundTrip(t *testing.T) {
	c, err := New("secp192r1")
	if err != nil {
		t.Fatal(err)
	}

	d := make([]byte, c.PrimeByteLength())
	d[len(d)-1] = 0x01
	k := make([]byte, c.PrimeByteLength())
	k[len(k)-1] = 0x02
	h := make([]byte, 24)

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, d); err != nil {
		t.Fatalf("PublicKey: %v", err)
	}

	r := make([]byte, c.PrimeByteLength())
	s := make([]byte, c.PrimeByteLength())
	if err := c.Sign(r, s, h, k, d); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if status := c.Verify(r, s, h, qx, qy); status != -1 {
		t.Fatalf("Verify valid signature: status=%d, want -1", status)
	}

	hTampered := make([]byte, 24)
	for i := range hTampered {
		hTampered[i] = 0xFF
	}
	if status := c.Verify(r, s, hTampered, qx, qy); status != 0 {
		t.Fatalf("Verify tampered digest: status=%d, want 0", status)
	}
}

func TestPublicKeyDeterministic(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	sk := mustHexDecode(t, "B7E151628AED2A6ABF7158809CF4F3C762E7160F38B4DA56A784D9045190CFEF")

	qx1 := make([]byte, c.CoordByteLength())
	qy1 := make([]byte, c.CoordByteLength())
	qx2 := make([]byte, c.CoordByteLength())
	qy2 := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx1, qy1, sk); err != nil {
		t.Fatal(err)
	}
	if err := c.PublicKey(qx2, qy2, sk); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(qx1, qx2) || !bytes.Equal(qy1, qy2) {
		t.Fatal("PublicKey is not deterministic for the same secret scalar")
	}
}

func TestTamperedSignatureComponentsFailVerification(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	d := mustHexDecode(t, "0000000000000000000000000000000000000000000000000000000000002A")
	k := mustHexDecode(t, "0000000000000000000000000000000000000000000000000000000000CAFE")
	h := make([]byte, 32)
	h[0] = 0x42

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, d); err != nil {
		t.Fatal(err)
	}
	r := make([]byte, c.PrimeByteLength())
	s := make([]byte, c.PrimeByteLength())
	if err := c.Sign(r, s, h, k, d); err != nil {
		t.Fatal(err)
	}
	if status := c.Verify(r, s, h, qx, qy); status != -1 {
		t.Fatal("expected the untampered signature to verify")
	}

	cases := []struct {
		name   string
		mutate func(r, s, h, qx, qy []byte)
	}{
		{"flip r", func(r, s, h, qx, qy []byte) { r[len(r)-1] ^= 1 }},
		{"flip s", func(r, s, h, qx, qy []byte) { s[len(s)-1] ^= 1 }},
		{"flip h", func(r, s, h, qx, qy []byte) { h[0] ^= 1 }},
		{"flip qx", func(r, s, h, qx, qy []byte) { qx[len(qx)-1] ^= 1 }},
		{"flip qy", func(r, s, h, qx, qy []byte) { qy[len(qy)-1] ^= 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := append([]byte(nil), r...)
			ss := append([]byte(nil), s...)
			hh := append([]byte(nil), h...)
			qxx := append([]byte(nil), qx...)
			qyy := append([]byte(nil), qy...)
			tc.mutate(rr, ss, hh, qxx, qyy)
			if status := c.Verify(rr, ss, hh, qxx, qyy); status != 0 {
				t.Errorf("tampered signature unexpectedly verified")
			}
		})
	}
}

func TestLowSBoundSecp256k1(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	halfOrder := mustHexDecode(t, "7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF5D576E7357A4501DDFE92F46681B20A0")

	for sk := byte(1); sk < 8; sk++ {
		d := make([]byte, c.PrimeByteLength())
		d[len(d)-1] = sk
		k := make([]byte, c.PrimeByteLength())
		k[len(k)-1] = sk + 100
		h := make([]byte, 32)
		h[0] = sk

		r := make([]byte, c.PrimeByteLength())
		s := make([]byte, c.PrimeByteLength())
		if err := c.Sign(r, s, h, k, d); err != nil {
			continue
		}
		if bytes.Compare(s, halfOrder) > 0 {
			t.Errorf("sk=%d: s=%x exceeds n/2=%x", sk, s, halfOrder)
		}
	}
}

// TestVerifyStrictRejectsOutOfRangeR checks the defense-in-depth path added
// beyond the reference Verify: an r outside [1, n-1] is rejected before any
// verification arithmetic runs.
func TestVerifyStrictRejectsOutOfRangeR(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	d := mustHexDecode(t, "0000000000000000000000000000000000000000000000000000000000002A")
	k := mustHexDecode(t, "00000000000000000000000000000000000000000000000000000000001234")
	h := make([]byte, 32)

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, d); err != nil {
		t.Fatal(err)
	}
	r := make([]byte, c.PrimeByteLength())
	s := make([]byte, c.PrimeByteLength())
	if err := c.Sign(r, s, h, k, d); err != nil {
		t.Fatal(err)
	}

	if status := c.VerifyStrict(r, s, h, qx, qy); status != -1 {
		t.Fatal("expected the honest signature to verify under VerifyStrict")
	}

	rTooBig := make([]byte, len(r))
	for i := range rTooBig {
		rTooBig[i] = 0xFF
	}
	if status := c.VerifyStrict(rTooBig, s, h, qx, qy); status != 0 {
		t.Fatal("VerifyStrict should reject r >= n")
	}
	if status := c.Verify(rTooBig, s, h, qx, qy); status == 0 {
		// Coincidental agreement is fine; an oversized r reducing mod n to
		// match by chance is astronomically unlikely for a real signature.
		t.Log("plain Verify also rejected the oversized r (expected, not required)")
	}
}

// TestOversizedBuffersAreZeroPadded checks that signing and reading public
// keys into buffers wider than the curve's natural width behaves as
// documented: left-padded with zero, never silently truncated in a way that
// corrupts the value.
func TestOversizedBuffersAreZeroPadded(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	d := mustHexDecode(t, "0000000000000000000000000000000000000000000000000000000000002A")
	k := mustHexDecode(t, "00000000000000000000000000000000000000000000000000000000001234")
	h := make([]byte, 32)
	h[0] = 7

	rBuf := make([]byte, 64)
	sBuf := make([]byte, 64)
	if err := c.Sign(rBuf, sBuf, h, k, d); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	for i := 0; i < 32; i++ {
		if rBuf[i] != 0 {
			t.Fatalf("expected the high 32 bytes of an oversized r buffer to stay zero, got %x", rBuf[:32])
		}
	}

	qx := make([]byte, c.CoordByteLength())
	qy := make([]byte, c.CoordByteLength())
	if err := c.PublicKey(qx, qy, d); err != nil {
		t.Fatal(err)
	}
	if status := c.Verify(rBuf[32:], sBuf[32:], h, qx, qy); status != -1 {
		t.Fatal("expected signature read back from the low half of an oversized buffer to verify")
	}
}

func TestGetPrimeMatchesOrderForSecp256k1(t *testing.T) {
	c, err := New("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, c.PrimeByteLength())
	if err := c.GetPrime(buf); err != nil {
		t.Fatal(err)
	}
	want := mustHexDecode(t, "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	if !bytes.Equal(buf, want) {
		t.Fatalf("GetPrime = %x, want group order %x", buf, want)
	}
}

func TestBitAndByteLengthsMatchTheNamingInversion(t *testing.T) {
	// secp112r2 has distinct coordinate (112) and order (110) widths,
	// exercising the historical prime/coord naming inversion concretely.
	c, err := New("secp112r2")
	if err != nil {
		t.Fatal(err)
	}
	if c.PrimeBitLength() != 110 {
		t.Errorf("PrimeBitLength (order bits) = %d, want 110", c.PrimeBitLength())
	}
	if c.CoordBitLength() != 112 {
		t.Errorf("CoordBitLength (coordinate field bits) = %d, want 112", c.CoordBitLength())
	}
}
