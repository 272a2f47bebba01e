// Package bip39 derives a seed from a BIP39 mnemonic:
// PBKDF2-HMAC-SHA512(password=NFKD(words), salt="mnemonic"||NFKD(passphrase),
// iterations=2048, dklen=64). Wordlist checksum validation is out of
// scope; words are treated as an opaque passphrase-equivalent string,
// matching the historical test-vector behavior. Delegates to
// github.com/tyler-smith/go-bip39, the library internal/wallet/wallet_test.go
// already exercises via bip39.NewSeed.
package bip39

import "github.com/tyler-smith/go-bip39"

// MnemonicToSeed returns the 64-byte seed for words and passphrase.
func MnemonicToSeed(words, passphrase string) []byte {
	return bip39.NewSeed(words, passphrase)
}
