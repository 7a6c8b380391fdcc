package secpcurves

// curveParams holds one named curve's SEC2 constants, hex literals at full
// natural width. npb is the coordinate field's bit length, nnb the group
// order's bit length; the two differ for several curves.
type curveParams struct {
	npb, nnb   int
	a, b       string
	gx, gy     string
	p, n       string
}

// params enumerates the ten supported curves by exact, case-sensitive
// name. This map is the closed tagged union's backing store: New looks up
// a name here and is total over exactly these ten entries.
var params = map[string]curveParams{
	"secp112r1": {
		npb: 112, nnb: 112,
		a: "DB7C2ABF62E35E668076BEAD2088",
		b: "659EF8BA043916EEDE8911702B22",
		gx: "09487239995A5EE76B55F9C2F098",
		gy: "A89CE5AF8724C0A23E0E0FF77500",
		p: "DB7C2ABF62E35E668076BEAD208B",
		n: "DB7C2ABF62E35E7628DFAC6561C5",
	},
	"secp112r2": {
		npb: 112, nnb: 110,
		a: "6127C24C05F38A0AAAF65C0EF02C",
		b: "51DEF1815DB5ED74FCC34C85D709",
		gx: "4BA30AB5E892B4E1649DD0928643",
		gy: "ADCD46F5882E3747DEF36E956E97",
		p: "DB7C2ABF62E35E668076BEAD208B",
		n: "36DF0AAFD8B8D7597CA10520D04B",
	},
	"secp128r1": {
		npb: 128, nnb: 128,
		a: "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFC",
		b: "E87579C11079F43DD824993C2CEE5ED3",
		gx: "161FF7528B899B2D0C28607CA52C5B86",
		gy: "CF5AC8395BAFEB13C02DA292DDED7A83",
		p: "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF",
		n: "FFFFFFFE0000000075A30D1B9038A115",
	},
	"secp128r2": {
		npb: 128, nnb: 126,
		a: "D6031998D1B3BBFEBF59CC9BBFF9AEE1",
		b: "5EEEFCA380D02919DC2C6558BB6D8A5D",
		gx: "7B6AA5D85E572983E6FB32A7CDEBC140",
		gy: "27B6916A894D3AEE7106FE805FC34B44",
		p: "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF",
		n: "3FFFFFFF7FFFFFFFBE0024720613B5A3",
	},
	"secp160k1": {
		npb: 160, nnb: 161,
		a: "0000000000000000000000000000000000000000",
		b: "0000000000000000000000000000000000000007",
		gx: "3B4C382CE37AA192A4019E763036F4F5DD4D7EBB",
		gy: "938CF935318FDCED6BC28286531733C3F03C4FEE",
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFAC73",
		n: "0100000000000000000001B8FA16DFAB9ACA16B6B3",
	},
	"secp160r1": {
		npb: 160, nnb: 161,
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7FFFFFFC",
		b: "1C97BEFC54BD7A8B65ACF89F81D4D4ADC565FA45",
		gx: "4A96B5688EF573284664698968C38BB913CBFC82",
		gy: "23A628553168947D59DCC912042351377AC5FB32",
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7FFFFFFF",
		n: "0100000000000000000001F4C8F927AED3CA752257",
	},
	"secp192k1": {
		npb: 192, nnb: 192,
		a: "000000000000000000000000000000000000000000000000",
		b: "000000000000000000000000000000000000000000000003",
		gx: "DB4FF10EC057E9AE26B07D0280B7F4341DA5D1B1EAE06C7D",
		gy: "9B2F2F6D9C5628A7844163D015BE86344082AA88D95E2F9D",
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFEE37",
		n: "FFFFFFFFFFFFFFFFFFFFFFFE26F2FC170F69466A74DEFD8D",
	},
	"secp192r1": {
		npb: 192, nnb: 192,
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFC",
		b: "64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1",
		gx: "188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012",
		gy: "07192B95FFC8DA78631011ED6B24CDD573F977A11E794811",
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF",
		n: "FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831",
	},
	"secp256k1": {
		npb: 256, nnb: 256,
		a: "0000000000000000000000000000000000000000000000000000000000000000",
		b: "0000000000000000000000000000000000000000000000000000000000000007",
		gx: "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798",
		gy: "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8",
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F",
		n: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141",
	},
	"secp256r1": {
		npb: 256, nnb: 256,
		a: "FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFC",
		b: "5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B",
		gx: "6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296",
		gy: "4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5",
		p: "FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF",
		n: "FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551",
	},
}
