// Package electrum implements the legacy Electrum v1 MPK/child derivation
// scheme, kept for historic-compatibility only: this is not BIP32 and
// produces uncompressed-only addresses. Shaped after
// TestElectrumWalletInternalConsistency's seed/MPK/offset structure, though
// this package's tests check internal consistency rather than asserting
// its exact literal private-key vectors.
package electrum

import (
	"fmt"
	"math/big"

	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/hashes"
)

// MPK derives the 64-byte (x||y, no prefix) master public key from a seed,
// treating the seed as a private scalar: serP_uncompressed(seed*G)[1:].
func MPK(seed []byte) []byte {
	k := new(big.Int).SetBytes(seed)
	k.Mod(k, curve.N)
	pub := curve.PrivToPub(k)
	return curve.Uncompressed(pub)[1:]
}

// offset computes sha256(sha256(n ":" forChange ":" mpk)) as a big-endian
// integer.
func offset(n uint32, forChange bool, mpk []byte) *big.Int {
	change := 0
	if forChange {
		change = 1
	}
	msg := []byte(fmt.Sprintf("%d:%d:", n, change))
	msg = append(msg, mpk...)
	h := hashes.DoubleSHA256(msg)
	return new(big.Int).SetBytes(h[:])
}

// ChildPrivFromSeed derives the child private scalar directly from the
// 32-byte seed (used when the caller holds the seed, not just the MPK).
func ChildPrivFromSeed(seed []byte, n uint32, forChange bool) *big.Int {
	k := new(big.Int).SetBytes(seed)
	k.Mod(k, curve.N)
	mpk := MPK(seed)
	off := offset(n, forChange, mpk)
	priv := new(big.Int).Add(k, off)
	priv.Mod(priv, curve.N)
	return priv
}

// ChildPubFromMPK derives the child public point from a 64-byte MPK (no
// private key needed — this is Electrum v1's "watch only" path).
func ChildPubFromMPK(mpk []byte, n uint32, forChange bool) *curve.Point {
	off := offset(n, forChange, mpk)
	offG := curve.ScalarBaseMult(off)
	mpkPoint := &curve.Point{
		X: new(big.Int).SetBytes(mpk[:32]),
		Y: new(big.Int).SetBytes(mpk[32:]),
	}
	return curve.AddPubkeys(mpkPoint, offG)
}

// PubkeyFromSeedOrMPK derives the uncompressed child public key, accepting
// either a 32-byte seed or a 64-byte MPK as keyMaterial, matching
// original_source's electrum_pubkey((mpk, seed)[i % 2], i) dual-input
// convenience.
func PubkeyFromSeedOrMPK(keyMaterial []byte, n uint32, forChange bool) []byte {
	var p *curve.Point
	if len(keyMaterial) == 64 {
		p = ChildPubFromMPK(keyMaterial, n, forChange)
	} else {
		priv := ChildPrivFromSeed(keyMaterial, n, forChange)
		p = curve.PrivToPub(priv)
	}
	return curve.Uncompressed(p)
}
