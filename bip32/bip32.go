// Package bip32 implements hierarchical deterministic key derivation:
// master_from_seed, CKD (hardened and non-hardened),
// public-parent-to-public-child, and version-byte-aware serialization.
// The derivation math (HMAC-SHA512 expansion, scalar addition mod N,
// public-point addition) is grounded on github.com/tyler-smith/go-bip32,
// generalized from that library's single hardcoded mainnet version-byte
// pair to the per-coin coins.XKeyVersions table.
package bip32

import (
	"encoding/binary"
	"math/big"

	"github.com/olehkaliuzhnyi/cryptos/addr"
	"github.com/olehkaliuzhnyi/cryptos/coins"
	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
	"github.com/olehkaliuzhnyi/cryptos/hashes"
)

const hardenedOffset = uint32(1) << 31

// ExtKey is a BIP32 node. Exactly one of Priv/Pub is set.
type ExtKey struct {
	Depth             byte
	ParentFingerprint [4]byte
	ChildNumber       uint32
	ChainCode         [32]byte
	Priv              *big.Int    // nil for a public-only node
	Pub               *curve.Point // always set (derived from Priv if private)
}

// IsPrivate reports whether this node carries a private scalar.
func (k *ExtKey) IsPrivate() bool { return k.Priv != nil }

// MasterFromSeed derives the root node from a BIP32 seed:
// I = HMAC-SHA512("Bitcoin seed", seed); key = I[:32], chaincode = I[32:].
func MasterFromSeed(seed []byte) (*ExtKey, error) {
	const op = "bip32.MasterFromSeed"
	i := hashes.HMACSHA512([]byte("Bitcoin seed"), seed)
	il := new(big.Int).SetBytes(i[:32])
	if il.Sign() == 0 || il.Cmp(curve.N) >= 0 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidDerivation, op, nil)
	}
	k := &ExtKey{Priv: il, Pub: curve.PrivToPub(il)}
	copy(k.ChainCode[:], i[32:])
	return k, nil
}

// CKD derives child index from parent. Hardened indices (i >= 2^31)
// require a private parent.
func CKD(parent *ExtKey, index uint32) (*ExtKey, error) {
	const op = "bip32.CKD"
	hardened := index >= hardenedOffset

	var data []byte
	if hardened {
		if !parent.IsPrivate() {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidDerivation, op, nil)
		}
		data = append([]byte{0x00}, pad32(parent.Priv)...)
	} else {
		data = curve.Compress(parent.Pub)
	}
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], index)
	data = append(data, idxBytes[:]...)

	i := hashes.HMACSHA512(parent.ChainCode[:], data)
	il := new(big.Int).SetBytes(i[:32])
	if il.Cmp(curve.N) >= 0 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidDerivation, op, nil)
	}

	child := &ExtKey{
		Depth:       parent.Depth + 1,
		ChildNumber: index,
	}
	copy(child.ChainCode[:], i[32:])
	fp := fingerprint(parent.Pub)
	copy(child.ParentFingerprint[:], fp[:])

	if parent.IsPrivate() {
		childPriv := new(big.Int).Add(il, parent.Priv)
		childPriv.Mod(childPriv, curve.N)
		if childPriv.Sign() == 0 {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidDerivation, op, nil)
		}
		child.Priv = childPriv
		child.Pub = curve.PrivToPub(childPriv)
	} else {
		ilG := curve.ScalarBaseMult(il)
		childPub := curve.AddPubkeys(ilG, parent.Pub)
		if childPub.Infinity {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidDerivation, op, nil)
		}
		child.Pub = childPub
	}
	return child, nil
}

// Neuter strips the private scalar, returning a public-only node with the
// same chain code/depth/fingerprint/index.
func (k *ExtKey) Neuter() *ExtKey {
	c := *k
	c.Priv = nil
	return &c
}

func fingerprint(pub *curve.Point) [4]byte {
	h := hashes.Hash160(curve.Compress(pub))
	var out [4]byte
	copy(out[:], h[:4])
	return out
}

func pad32(v *big.Int) []byte {
	var buf [32]byte
	v.FillBytes(buf[:])
	return buf[:]
}

// Serialize encodes k using the xprv/xpub version bytes for script type
// st from coin params p.
func Serialize(k *ExtKey, p coins.Params, st coins.ScriptType) (string, error) {
	const op = "bip32.Serialize"
	versions, err := p.XVersions(st)
	if err != nil {
		return "", err
	}
	version := versions.Xpub
	if k.IsPrivate() {
		version = versions.Xprv
	}
	var versionBytes [4]byte
	binary.BigEndian.PutUint32(versionBytes[:], version)

	payload := make([]byte, 0, 74)
	payload = append(payload, k.Depth)
	payload = append(payload, k.ParentFingerprint[:]...)
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], k.ChildNumber)
	payload = append(payload, idx[:]...)
	payload = append(payload, k.ChainCode[:]...)
	if k.IsPrivate() {
		payload = append(payload, 0x00)
		payload = append(payload, pad32(k.Priv)...)
	} else {
		payload = append(payload, curve.Compress(k.Pub)...)
	}

	_ = op
	return addr.Base58CheckEncode(versionBytes[:], payload), nil
}

// Parse decodes a serialized extended key against the per-script-type
// version table in p, determining whether it is private/public and which
// script type it was issued for.
func Parse(s string, p coins.Params) (*ExtKey, coins.ScriptType, error) {
	const op = "bip32.Parse"
	version, payload, err := addr.Base58CheckDecode(s, 4)
	if err != nil {
		return nil, "", err
	}
	if len(payload) != 74 {
		return nil, "", cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
	versionVal := binary.BigEndian.Uint32(version)

	var st coins.ScriptType
	var isPriv bool
	found := false
	for candidate, v := range p.ScriptVersions {
		if v.Xprv == versionVal {
			st, isPriv, found = candidate, true, true
			break
		}
		if v.Xpub == versionVal {
			st, isPriv, found = candidate, false, true
			break
		}
	}
	if !found {
		return nil, "", cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}

	k := &ExtKey{Depth: payload[0]}
	copy(k.ParentFingerprint[:], payload[1:5])
	k.ChildNumber = binary.BigEndian.Uint32(payload[5:9])
	copy(k.ChainCode[:], payload[9:41])
	keyField := payload[41:74]

	if isPriv {
		if keyField[0] != 0x00 {
			return nil, "", cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
		}
		k.Priv = new(big.Int).SetBytes(keyField[1:])
		k.Pub = curve.PrivToPub(k.Priv)
	} else {
		pt, perr := curve.Decompress(keyField)
		if perr != nil {
			return nil, "", perr
		}
		k.Pub = pt
	}
	return k, st, nil
}
