// Package bignum implements arbitrary-base conversion for 2, 10, 16, 58 and
// 256, with fixed-length, zero-padded encode/decode. This mirrors
// internal/config's preference for small, dependency-free leaf packages:
// plain stdlib, no abstractions beyond what's needed. Base conversion is
// pure arithmetic with no natural third-party home beyond
// btcutil/base58, which only covers base 58 and is used directly in addr
// instead.
package bignum

import (
	"math/big"

	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Index [256]int8

func init() {
	for i := range base58Index {
		base58Index[i] = -1
	}
	for i, c := range base58Alphabet {
		base58Index[byte(c)] = int8(i)
	}
}

// Encode renders n in the given base, left-padding to minlen in that base's
// native padding unit ('1' for 58, 0x00 for 256, '0' for 16, and '0' for 2/10).
// Encode returns a string for every base except 256, which returns the
// padding as leading zero bytes within the returned string's byte contents.
func Encode(n *big.Int, base int, minlen int) string {
	v := new(big.Int).Set(n)
	var out []byte
	b := big.NewInt(int64(base))
	mod := new(big.Int)

	switch base {
	case 256:
		for v.Sign() > 0 {
			v.DivMod(v, b, mod)
			out = append(out, byte(mod.Int64()))
		}
		reverseBytes(out)
		for len(out) < minlen {
			out = append([]byte{0x00}, out...)
		}
		return string(out)
	case 58:
		for v.Sign() > 0 {
			v.DivMod(v, b, mod)
			out = append(out, base58Alphabet[mod.Int64()])
		}
		reverseBytes(out)
		for len(out) < minlen {
			out = append([]byte{'1'}, out...)
		}
		return string(out)
	default:
		// base 2, 10, 16 (and any other big.Int-supported base): digit
		// string is empty for zero, matching the reference behavior that
		// encode(0, base) == "" rather than "0".
		var s string
		if v.Sign() > 0 {
			s = v.Text(base)
		}
		for len(s) < minlen {
			s = "0" + s
		}
		return s
	}
}

// Decode parses s, interpreted in the given base, into a big.Int.
func Decode(s string, base int) (*big.Int, error) {
	n := new(big.Int)

	switch base {
	case 256:
		for _, c := range []byte(s) {
			n.Mul(n, big.NewInt(256))
			n.Add(n, big.NewInt(int64(c)))
		}
		return n, nil
	case 58:
		for _, c := range []byte(s) {
			idx := base58Index[c]
			if idx < 0 {
				return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, "bignum.Decode", nil)
			}
			n.Mul(n, big.NewInt(58))
			n.Add(n, big.NewInt(int64(idx)))
		}
		return n, nil
	default:
		if s == "" {
			return big.NewInt(0), nil
		}
		v, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, "bignum.Decode", nil)
		}
		return v, nil
	}
}

// ChangeBase reinterprets value (encoded in base `from`) and re-encodes it
// in base `to`, zero-padding the result to minlen.
func ChangeBase(value string, from, to int, minlen int) (string, error) {
	n, err := Decode(value, from)
	if err != nil {
		return "", err
	}
	return Encode(n, to, minlen), nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

