// Package addr implements Base58Check, Bech32/segwit, WIF, and the
// script<->address encodings for P2PKH, P2SH, P2WPKH, P2WPKH-in-P2SH and
// multisig. Base58's raw alphabet codec is
// github.com/btcsuite/btcd/btcutil/base58 (internal/wallet/btc.go reaches
// it through Base58CheckEncode below); Base58Check itself is
// reimplemented here (rather than using btcutil/base58.CheckEncode) because
// this module's version prefixes are multi-byte for some coins/BIP32
// variants, while btcutil's CheckEncode hardcodes a single version byte.
package addr

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
	"github.com/olehkaliuzhnyi/cryptos/hashes"
)

// Base58CheckEncode encodes version||payload with a 4-byte double-SHA256
// checksum appended, then Base58-encodes the result preserving leading
// zero bytes as leading '1' characters.
func Base58CheckEncode(version, payload []byte) string {
	data := append(append([]byte{}, version...), payload...)
	checksum := hashes.DoubleSHA256(data)
	data = append(data, checksum[:4]...)
	return base58.Encode(data)
}

// Base58CheckDecode reverses Base58CheckEncode, returning the payload with
// versionLen bytes of version prefix stripped off, after verifying the
// checksum.
func Base58CheckDecode(s string, versionLen int) (version, payload []byte, err error) {
	const op = "addr.Base58CheckDecode"
	data := base58.Decode(s)
	if len(data) < versionLen+4 {
		return nil, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	body := data[:len(data)-4]
	checksum := data[len(data)-4:]
	want := hashes.DoubleSHA256(body)
	if !bytes.Equal(checksum, want[:4]) {
		return nil, nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	return body[:versionLen], body[versionLen:], nil
}
