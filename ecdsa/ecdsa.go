// Package ecdsa implements RFC 6979 deterministic nonce generation and raw
// ECDSA sign/verify/recover over secp256k1. The group law is delegated to
// curve (itself grounded on decred/dcrd/dcrec/secp256k1/v4, the library
// underlying btcec);
// RFC 6979 needs to expose the literal nonce k so callers can check it
// against known test vectors, which higher-level signing APIs (btcec's
// ecdsa.SignCompact) don't surface, so it is implemented directly against
// HMAC-SHA256 here rather than reused from a library.
package ecdsa

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"

	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
)

// Signature is a raw (r, s) pair plus recovery metadata.
type Signature struct {
	R, S *big.Int
	// RecID is 0..3: bit 0 is the parity of R.y, bit 1 set if r was
	// reduced by N during recovery (r+N used as the candidate x).
	RecID int
}

func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// DeterministicK derives the RFC 6979 nonce for private key x and message
// hash h (32 bytes), retrying per RFC 6979 §3.2(h) until a candidate in
// [1, N) is found.
func DeterministicK(x *big.Int, h []byte) *big.Int {
	priv := make([]byte, 32)
	x.FillBytes(priv)
	msg := make([]byte, 32)
	copy(msg, h)

	v := bytesOf(0x01, 32)
	k := bytesOf(0x00, 32)

	k = hmacSHA256(k, concat(v, []byte{0x00}, priv, msg))
	v = hmacSHA256(k, v)
	k = hmacSHA256(k, concat(v, []byte{0x01}, priv, msg))
	v = hmacSHA256(k, v)

	for {
		v = hmacSHA256(k, v)
		cand := new(big.Int).SetBytes(v)
		cand.Mod(cand, curve.N)
		if cand.Sign() != 0 {
			return cand
		}
		k = hmacSHA256(k, concat(v, []byte{0x00}))
		v = hmacSHA256(k, v)
	}
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// RawSign produces a low-S-normalized signature over h with private key x.
func RawSign(h []byte, x *big.Int) (*Signature, error) {
	if x.Sign() <= 0 || x.Cmp(curve.N) >= 0 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidKey, "ecdsa.RawSign", nil)
	}
	z := new(big.Int).SetBytes(h)

	for {
		k := DeterministicK(x, h)
		R := curve.ScalarBaseMult(k)
		r := new(big.Int).Mod(R.X, curve.N)
		if r.Sign() == 0 {
			h = hmacSHA256(h, []byte{0})
			continue
		}

		kInv := new(big.Int).ModInverse(k, curve.N)
		if kInv == nil {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, "ecdsa.RawSign", nil)
		}
		s := new(big.Int).Mul(r, x)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, curve.N)
		if s.Sign() == 0 {
			h = hmacSHA256(h, []byte{0})
			continue
		}

		recID := 0
		if R.Y.Bit(0) == 1 {
			recID |= 1
		}
		if R.X.Cmp(curve.N) >= 0 {
			recID |= 2
		}

		halfN := new(big.Int).Rsh(curve.N, 1)
		if s.Cmp(halfN) > 0 {
			s = new(big.Int).Sub(curve.N, s)
			recID ^= 1
		}

		return &Signature{R: r, S: s, RecID: recID}, nil
	}
}

// RawVerify checks sig against message hash h and public key Q.
func RawVerify(h []byte, sig *Signature, q *curve.Point) bool {
	if sig.R.Sign() <= 0 || sig.R.Cmp(curve.N) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(curve.N) >= 0 {
		return false
	}
	z := new(big.Int).SetBytes(h)

	sInv := new(big.Int).ModInverse(sig.S, curve.N)
	if sInv == nil {
		return false
	}
	u1 := new(big.Int).Mul(z, sInv)
	u1.Mod(u1, curve.N)
	u2 := new(big.Int).Mul(sig.R, sInv)
	u2.Mod(u2, curve.N)

	p1 := curve.ScalarBaseMult(u1)
	p2 := curve.Multiply(q, u2)
	sum := curve.AddPubkeys(p1, p2)
	if sum.Infinity {
		return false
	}
	x := new(big.Int).Mod(sum.X, curve.N)
	return x.Cmp(sig.R) == 0
}

// RawRecover reconstructs the public key that produced sig over h.
func RawRecover(h []byte, sig *Signature) (*curve.Point, error) {
	r := new(big.Int).Set(sig.R)
	if sig.RecID&2 != 0 {
		r.Add(r, curve.N)
	}
	if r.Cmp(curve.P) >= 0 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, "ecdsa.RawRecover", nil)
	}

	// Recover R from its x-coordinate and the parity bit in RecID.
	ySq := new(big.Int).Exp(r, big.NewInt(3), curve.P)
	ySq.Add(ySq, big.NewInt(7))
	ySq.Mod(ySq, curve.P)
	exp := new(big.Int).Rsh(new(big.Int).Add(curve.P, big.NewInt(1)), 2)
	y := new(big.Int).Exp(ySq, exp, curve.P)
	if y.Bit(0) != uint(sig.RecID&1) {
		y.Sub(curve.P, y)
	}
	Rpt := &curve.Point{X: r, Y: y}

	z := new(big.Int).SetBytes(h)
	rInv := new(big.Int).ModInverse(sig.R, curve.N)
	if rInv == nil {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, "ecdsa.RawRecover", nil)
	}

	sR := curve.Multiply(Rpt, sig.S)
	zG := curve.ScalarBaseMult(new(big.Int).Mod(z, curve.N))
	negZG := &curve.Point{X: zG.X, Y: new(big.Int).Sub(curve.P, zG.Y)}
	diff := curve.AddPubkeys(sR, negZG)
	q := curve.Multiply(diff, rInv)
	return q, nil
}

// EncodeDER serializes (r, s) in strict DER.
func EncodeDER(sig *Signature) []byte {
	rBytes := derInt(sig.R)
	sBytes := derInt(sig.S)
	body := append(append([]byte{0x02, byte(len(rBytes))}, rBytes...), append([]byte{0x02, byte(len(sBytes))}, sBytes...)...)
	return append([]byte{0x30, byte(len(body))}, body...)
}

func derInt(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return b
}

// DecodeDER parses a strict-DER (r, s) pair.
func DecodeDER(data []byte) (*Signature, error) {
	op := "ecdsa.DecodeDER"
	if len(data) < 8 || data[0] != 0x30 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	total := int(data[1])
	if total+2 > len(data) {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	i := 2
	if i >= len(data) || data[i] != 0x02 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	i++
	if i >= len(data) {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	rLen := int(data[i])
	i++
	if rLen < 0 || i+rLen > len(data) {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	r := new(big.Int).SetBytes(data[i : i+rLen])
	i += rLen
	if i >= len(data) || data[i] != 0x02 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	i++
	if i >= len(data) {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	sLen := int(data[i])
	i++
	if sLen < 0 || i+sLen > len(data) {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	s := new(big.Int).SetBytes(data[i : i+sLen])
	i += sLen
	if i != 2+total {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	return &Signature{R: r, S: s}, nil
}
