// Package curve implements secp256k1 point arithmetic: scalar-multiply,
// point addition, compression/decompression. The Jacobian group law
// itself is not reimplemented from scratch; it is delegated to
// github.com/decred/dcrd/dcrec/secp256k1/v4, the curve implementation
// that btcec is a thin wrapper over. Importing it directly
// here gives direct access to the Jacobian-point and scalar
// types the higher-level btcec.PrivateKey/PublicKey API hides, which the
// add_pubkeys/multiply/divide/compress/decompress surface below needs.
package curve

import (
	"math/big"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
)

// P is the secp256k1 field prime.
var P, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

// N is the secp256k1 group order.
var N, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// Point is an affine secp256k1 point, or the identity when Infinity is true.
type Point struct {
	X, Y     *big.Int
	Infinity bool
}

// G is the secp256k1 base point.
var G = &Point{
	X: mustHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
	Y: mustHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return v
}

func scalarFromBig(k *big.Int) secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	kb := new(big.Int).Mod(k, N)
	var buf [32]byte
	kb.FillBytes(buf[:])
	s.SetByteSlice(buf[:])
	return s
}

func toJacobian(p *Point) secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	if p.Infinity {
		return j
	}
	var x, y secp256k1.FieldVal
	x.SetByteSlice(padTo32(p.X))
	y.SetByteSlice(padTo32(p.Y))
	j.X, j.Y = x, y
	j.Z.SetInt(1)
	return j
}

func fromJacobian(j *secp256k1.JacobianPoint) *Point {
	if (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero() {
		return &Point{Infinity: true}
	}
	jc := *j
	jc.ToAffine()
	return &Point{
		X: new(big.Int).SetBytes(fieldValBytes(&jc.X)),
		Y: new(big.Int).SetBytes(fieldValBytes(&jc.Y)),
	}
}

func fieldValBytes(f *secp256k1.FieldVal) []byte {
	b := f.Bytes()
	return b[:]
}

func padTo32(v *big.Int) []byte {
	var buf [32]byte
	v.FillBytes(buf[:])
	return buf[:]
}

// ScalarBaseMult computes k*G.
func ScalarBaseMult(k *big.Int) *Point {
	s := scalarFromBig(k)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s, &result)
	return fromJacobian(&result)
}

// Multiply computes k*P for an arbitrary point P.
func Multiply(p *Point, k *big.Int) *Point {
	if p.Infinity {
		return &Point{Infinity: true}
	}
	s := scalarFromBig(k)
	pj := toJacobian(p)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s, &pj, &result)
	return fromJacobian(&result)
}

// Divide computes multiply(P, k^-1 mod N).
func Divide(p *Point, k *big.Int) (*Point, error) {
	s := scalarFromBig(k)
	if s.IsZero() {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidKey, "curve.Divide", nil)
	}
	inv := new(secp256k1.ModNScalar).Set(&s).InverseValNonConst()
	return Multiply(p, scalarToBig(inv)), nil
}

func scalarToBig(s *secp256k1.ModNScalar) *big.Int {
	b := s.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// AddPubkeys computes the point addition a+b.
func AddPubkeys(a, b *Point) *Point {
	if a.Infinity {
		return b
	}
	if b.Infinity {
		return a
	}
	aj, bj := toJacobian(a), toJacobian(b)
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&aj, &bj, &result)
	return fromJacobian(&result)
}

// PrivToPub computes k*G for a private scalar k.
func PrivToPub(k *big.Int) *Point {
	return ScalarBaseMult(k)
}

// Compress encodes p as a 33-byte SEC1 compressed point.
func Compress(p *Point) []byte {
	prefix := byte(0x02)
	if p.Y.Bit(0) == 1 {
		prefix = 0x03
	}
	out := make([]byte, 33)
	out[0] = prefix
	copy(out[1:], padTo32(p.X))
	return out
}

// Uncompressed encodes p as a 65-byte SEC1 uncompressed point.
func Uncompressed(p *Point) []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	copy(out[1:33], padTo32(p.X))
	copy(out[33:], padTo32(p.Y))
	return out
}

// Decompress parses a 33-byte compressed or 65-byte uncompressed SEC1 point,
// recovering y from x via the decred library's point parser (which performs
// the y^2=x^3+7 modular-square-root check internally).
func Decompress(data []byte) (*Point, error) {
	pub, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidKey, "curve.Decompress", err)
	}
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	return fromJacobian(&j), nil
}

// ParseEither parses either a compressed (33-byte) or uncompressed
// (65-byte) point encoding.
func ParseEither(data []byte) (*Point, error) {
	return Decompress(data)
}
