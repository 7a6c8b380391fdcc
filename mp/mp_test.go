package mp

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	a := []uint32{0xFFFFFFFF, 0x00000001}
	b := []uint32{0x00000002, 0x00000000}
	sum := make([]uint32, 2)
	carry := Add(sum, a, b)
	if carry != 0 {
		t.Fatalf("unexpected carry %d", carry)
	}
	if sum[0] != 1 || sum[1] != 2 {
		t.Fatalf("got %v", sum)
	}

	back := make([]uint32, 2)
	borrow := Sub(back, sum, b)
	if borrow != 0 {
		t.Fatalf("unexpected borrow %d", borrow)
	}
	if !Eq(back, a) {
		t.Fatalf("round trip mismatch: got %v want %v", back, a)
	}
}

func TestMulSquareAgree(t *testing.T) {
	a := []uint16{0x1234, 0xABCD}
	prod := make([]uint16, 4)
	sq := make([]uint16, 4)
	Mul(prod, a, a)
	Square(sq, a)
	if !Eq(prod, sq) {
		t.Fatalf("mul(a,a) != square(a): %v vs %v", prod, sq)
	}
}

func TestShiftRoundTrip(t *testing.T) {
	a := []uint32{0x12345678, 0x9ABCDEF0}
	shifted := make([]uint32, 2)
	ShiftLeft(shifted, a, 8)
	back := make([]uint32, 2)
	ShiftRight(back, shifted, 8)
	// the top 8 bits of a are lost, mask them out before comparing.
	want := []uint32{a[0], a[1] & 0x00FFFFFF}
	if !Eq(back, want) {
		t.Fatalf("got %v want %v", back, want)
	}
}

func TestShiftInPlace(t *testing.T) {
	a := []uint32{0x00000001, 0x00000000}
	ShiftLeft(a, a, 1)
	if a[0] != 2 || a[1] != 0 {
		t.Fatalf("in-place shift left: got %v", a)
	}
	ShiftRight(a, a, 1)
	if a[0] != 1 || a[1] != 0 {
		t.Fatalf("in-place shift right: got %v", a)
	}
}

func TestCompare(t *testing.T) {
	small := []uint32{1, 0}
	big := []uint32{0, 1}
	if !Less(small, big) {
		t.Fatal("expected small < big")
	}
	if !Greater(big, small) {
		t.Fatal("expected big > small")
	}
	if !LessEq(small, small) || !GreaterEq(small, small) {
		t.Fatal("expected reflexive <= and >=")
	}
}

func TestCarry(t *testing.T) {
	a := []uint32{0xFFFFFFFF}
	b := []uint32{1}
	if !Carry(make([]uint32, 1), a, b) {
		t.Fatal("expected overflow to be reported")
	}
	if Carry(make([]uint32, 1), []uint32{1}, []uint32{1}) {
		t.Fatal("unexpected overflow")
	}
}

func TestBitwise(t *testing.T) {
	a := []uint16{0xF0F0}
	b := []uint16{0x0FF0}
	and := make([]uint16, 1)
	or := make([]uint16, 1)
	xor := make([]uint16, 1)
	And(and, a, b)
	Or(or, a, b)
	Xor(xor, a, b)
	if and[0] != 0x00F0 {
		t.Errorf("and: got %x", and[0])
	}
	if or[0] != 0xFFF0 {
		t.Errorf("or: got %x", or[0])
	}
	if xor[0] != 0xFF00 {
		t.Errorf("xor: got %x", xor[0])
	}
}

func TestInverseOdd(t *testing.T) {
	for _, x := range []uint32{1, 3, 5, 0xDEADBEEF | 1} {
		inv := InverseOdd(x)
		if x*inv != 1 {
			t.Errorf("InverseOdd(%#x)=%#x, product=%#x want 1", x, inv, x*inv)
		}
	}
}

func TestInverseMod(t *testing.T) {
	const m = 97 // prime
	for x := uint32(1); x < m; x++ {
		inv := InverseMod(x, uint32(m))
		if (x*inv)%m != 1 {
			t.Errorf("InverseMod(%d,%d)=%d, product mod m = %d", x, m, inv, (x*inv)%m)
		}
	}
}

func TestConstantTimeEq(t *testing.T) {
	a := []uint32{1, 2, 3}
	b := []uint32{1, 2, 3}
	c := []uint32{1, 2, 4}
	d := []uint32{1, 2}
	if !ConstantTimeEq(a, b) {
		t.Error("equal arrays reported unequal")
	}
	if ConstantTimeEq(a, c) {
		t.Error("unequal arrays reported equal")
	}
	if !ConstantTimeEq(append(append([]uint32{}, d...), 0), d) {
		t.Error("zero-extended short operand should compare equal")
	}
}

func TestBarrettCompactAgreesWithDirectMod(t *testing.T) {
	// prime = 2^16 - 15 = 65521 over a single uint16 word: the prime fills
	// its word array exactly, so the compact tuning applies. m = 15,
	// rCompact = floor(2^32/65521) - 2^16 = 65551 - 65536 = 15.
	prime := []uint16{0xFFF1}
	m := []uint16{15}
	rc := []uint16{15}
	nb := 16
	for _, av := range []uint32{1, 2, 15, 40000, 65519, 65520} {
		for _, bv := range []uint32{1, 3, 12345, 65520} {
			a := []uint16{uint16(av)}
			b := []uint16{uint16(bv)}
			prod := make([]uint16, 2)
			Mul(prod, a, b)
			x := make([]uint16, 1)
			BarrettCompact(x, prod, prime, m, rc, nb)
			want := uint16((av * bv) % 65521)
			if x[0] != want {
				t.Fatalf("BarrettCompact(%d*%d) = %d, want %d", av, bv, x[0], want)
			}
		}
	}
}

func TestBarrettGeneralAgreesWithDirectMod(t *testing.T) {
	// prime = 251 (general regime stand-in, a toy 8-bit field). r =
	// floor(2^(2*8)/251) = 261.
	prime := []uint32{251}
	r := []uint32{261}
	nb := 8
	a := []uint32{200}
	b := []uint32{200}
	prod := make([]uint32, 2)
	Mul(prod, a, b)
	x := make([]uint32, 1)
	BarrettGeneral(x, prod, prime, r, nb)
	want := uint32((200 * 200) % 251)
	if x[0] != want {
		t.Fatalf("BarrettGeneral got %d want %d", x[0], want)
	}
}
