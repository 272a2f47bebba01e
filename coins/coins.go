// Package coins holds the per-coin parameter table that adapts the
// mechanics in curve/ecdsa/script/addr/txn/bip32 to network-specific
// prefixes. Grounded on
// original_source/cryptos/coins_async/{bitcoin,dash}.py: Bitcoin carries a
// per-script-type xprv/xpub header map (it supports segwit), Dash carries a
// single flat xpriv/xpub prefix pair (it predates/does not support
// segwit) — both shapes are modeled by ScriptVersions, which a non-segwit
// coin simply leaves mostly zero-valued except P2PKH.
package coins

import (
	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
)

// ScriptType selects which BIP32 version-byte pair (and, historically,
// fee/HD defaults) apply for a given address/key scheme.
type ScriptType string

const (
	ScriptP2PKH      ScriptType = "p2pkh"
	ScriptP2WPKHP2SH ScriptType = "p2wpkh-p2sh"
	ScriptP2WPKH     ScriptType = "p2wpkh"
	ScriptP2WSHP2SH  ScriptType = "p2wsh-p2sh"
	ScriptP2WSH      ScriptType = "p2wsh"
)

// XKeyVersions holds the BIP32 extended-key version bytes for one script
// type, as a 4-byte big-endian value (e.g. 0x0488ADE4 for mainnet xprv).
type XKeyVersions struct {
	Xprv uint32
	Xpub uint32
}

// Overrides carries the subset of Params fields a testnet variant replaces.
// Nested maps (ScriptVersions) replace wholesale rather than merge,
// matching original_source's testnet_overrides dict shape.
type Overrides struct {
	DisplayName     *string
	Symbol          *string
	AddressVersion  []byte
	ScriptVersion   []byte
	WIFVersion      []byte
	Bech32HRP       *string
	HDCoinType      *uint32
	MinimumFee      *uint64
	ScriptVersions  map[ScriptType]XKeyVersions // replaces wholesale if non-nil
	ClientKwargsTag *string
}

// Params is the immutable per-coin record. All address and serialization
// operations consult this record; there are no globals.
type Params struct {
	Symbol            string
	DisplayName       string
	AddressVersion    []byte // Base58Check version for P2PKH addresses
	ScriptVersion      []byte // Base58Check version for P2SH addresses
	WIFVersion        []byte
	Bech32HRP         string // empty means segwit bech32 is unavailable
	SegwitSupported   bool
	ScriptVersions    map[ScriptType]XKeyVersions
	HDCoinType        uint32
	MinimumFee        uint64
	ClientKwargsTag   string // opaque filename; the core only carries it, never opens it
	TestnetOverrides  *Overrides
}

// WithTestnet returns the sibling record produced by applying
// TestnetOverrides, or p unchanged if testnet is false or there are no
// overrides.
func (p Params) WithTestnet(testnet bool) Params {
	if !testnet || p.TestnetOverrides == nil {
		return p
	}
	o := p.TestnetOverrides
	out := p
	if o.DisplayName != nil {
		out.DisplayName = *o.DisplayName
	}
	if o.Symbol != nil {
		out.Symbol = *o.Symbol
	}
	if o.AddressVersion != nil {
		out.AddressVersion = o.AddressVersion
	}
	if o.ScriptVersion != nil {
		out.ScriptVersion = o.ScriptVersion
	}
	if o.WIFVersion != nil {
		out.WIFVersion = o.WIFVersion
	}
	if o.Bech32HRP != nil {
		out.Bech32HRP = *o.Bech32HRP
	}
	if o.HDCoinType != nil {
		out.HDCoinType = *o.HDCoinType
	}
	if o.MinimumFee != nil {
		out.MinimumFee = *o.MinimumFee
	}
	if o.ScriptVersions != nil {
		out.ScriptVersions = o.ScriptVersions // replace, not merge
	}
	if o.ClientKwargsTag != nil {
		out.ClientKwargsTag = *o.ClientKwargsTag
	}
	return out
}

// XVersions returns the xprv/xpub version-byte pair for the given script
// type, falling back to the P2PKH entry when the coin doesn't carry a
// distinct entry for st (the Dash shape from original_source).
func (p Params) XVersions(st ScriptType) (XKeyVersions, error) {
	if v, ok := p.ScriptVersions[st]; ok {
		return v, nil
	}
	if v, ok := p.ScriptVersions[ScriptP2PKH]; ok {
		return v, nil
	}
	return XKeyVersions{}, cryptoserr.Wrap(cryptoserr.ErrUnsupportedFeature, "coins.Params.XVersions", nil)
}

var registry = map[string]Params{}

func register(p Params) { registry[p.Symbol] = p }

// ByeSymbol-like lookup: Lookup returns the registered Params for symbol,
// applying testnet overrides when testnet is true.
func Lookup(symbol string, testnet bool) (Params, error) {
	p, ok := registry[symbol]
	if !ok {
		return Params{}, cryptoserr.Wrap(cryptoserr.ErrUnknownCoin, "coins.Lookup", nil)
	}
	return p.WithTestnet(testnet), nil
}

func str(s string) *string { return &s }
func u32(v uint32) *uint32 { return &v }
func u64(v uint64) *uint64 { return &v }
