// Bech32 / segwit v0 address encoding (BIP173). Delegates the
// checksum/charset codec to github.com/btcsuite/btcd/btcutil/bech32, the
// same package family (btcutil) already depended on for base58 — bech32
// lives alongside it in the same module.
package addr

import (
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
)

// EncodeSegwit builds a BIP173 bech32 address for witness version 0
// (P2WPKH/P2WSH). Only witness version 0 is produced; this module does not
// implement Taproot.
func EncodeSegwit(hrp string, program []byte) (string, error) {
	const op = "addr.EncodeSegwit"
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, err)
	}
	data := append([]byte{0x00}, converted...)
	s, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, err)
	}
	return s, nil
}

// DecodeSegwit parses a bech32 segwit address, returning the witness
// version and program. Rejects mixed case, bad checksum, invalid HRP
// (via bech32.Decode), out-of-range witness version and disallowed
// program lengths per BIP173's witness program validity rules.
func DecodeSegwit(expectHRP, s string) (version int, program []byte, err error) {
	const op = "addr.DecodeSegwit"
	hrp, data, decErr := bech32.Decode(s)
	if decErr != nil {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, decErr)
	}
	if hrp != expectHRP {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	if len(data) < 1 {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	ver := int(data[0])
	if ver > 16 {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	prog, convErr := bech32.ConvertBits(data[1:], 5, 8, false)
	if convErr != nil {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, convErr)
	}
	if len(prog) < 2 || len(prog) > 40 {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	if ver == 0 && len(prog) != 20 && len(prog) != 32 {
		return 0, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	return ver, prog, nil
}
