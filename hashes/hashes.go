// Package hashes implements the hash primitives this module needs:
// SHA-256, double-SHA-256, RIPEMD-160, HASH160, HMAC-SHA-512 and
// PBKDF2-HMAC-SHA-512. RIPEMD-160 and PBKDF2 come from
// golang.org/x/crypto, the same package internal/wallet/btc.go imports
// for Hash160 (there inlined; here promoted to a shared leaf package so
// addr, bip32 and electrum all depend on one place).
package hashes

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by the Bitcoin HASH160 construction
)

// SHA256 returns the single SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSHA256 returns SHA-256(SHA-256(data)), Bitcoin's standard double hash.
func DoubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// RIPEMD160 returns the 20-byte RIPEMD-160 digest of data.
func RIPEMD160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 returns RIPEMD160(SHA256(data)), used for P2PKH/P2SH/P2WPKH programs.
func Hash160(data []byte) [20]byte {
	sha := SHA256(data)
	return RIPEMD160(sha[:])
}

// HMACSHA512 returns HMAC-SHA512(key, msg).
func HMACSHA512(key, msg []byte) [64]byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(msg)
	var out [64]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// PBKDF2HMACSHA512 derives dklen bytes from password/salt using iters
// rounds of PBKDF2-HMAC-SHA512, as BIP39 requires (iters=2048, dklen=64).
func PBKDF2HMACSHA512(password, salt []byte, iters, dklen int) []byte {
	return pbkdf2.Key(password, salt, iters, dklen, sha512.New)
}
