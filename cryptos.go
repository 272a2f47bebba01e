// Package cryptos is the top-level per-coin facade: address derivation,
// script<->address conversion, transaction assembly, and the
// signing/verification/multisig free functions, all parameterized by a
// coins.Params record rather than a per-coin subclass.
package cryptos

import (
	"encoding/hex"
	"math/big"

	"github.com/olehkaliuzhnyi/cryptos/addr"
	"github.com/olehkaliuzhnyi/cryptos/coins"
	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
	"github.com/olehkaliuzhnyi/cryptos/ecdsa"
	"github.com/olehkaliuzhnyi/cryptos/electrum"
	"github.com/olehkaliuzhnyi/cryptos/script"
	"github.com/olehkaliuzhnyi/cryptos/txn"
)

// Coin binds the stateless mechanics in addr/txn/script/ecdsa to one
// registered coin's parameters.
type Coin struct {
	Params coins.Params
}

// New looks up symbol in the coin registry, applying testnet overrides.
func New(symbol string, testnet bool) (*Coin, error) {
	p, err := coins.Lookup(symbol, testnet)
	if err != nil {
		return nil, err
	}
	return &Coin{Params: p}, nil
}

// PrivToAddr renders the legacy P2PKH address for priv.
func (c *Coin) PrivToAddr(priv *big.Int) string {
	pub := curve.Compress(curve.PrivToPub(priv))
	return addr.P2PKHAddress(c.Params.AddressVersion, pub)
}

// PrivToP2WPKHP2SH renders the P2SH-wrapped-segwit address for priv. Errors
// if the coin's parameters don't support segwit.
func (c *Coin) PrivToP2WPKHP2SH(priv *big.Int) (string, error) {
	const op = "cryptos.Coin.PrivToP2WPKHP2SH"
	if !c.Params.SegwitSupported {
		return "", cryptoserr.Wrap(cryptoserr.ErrUnsupportedFeature, op, nil)
	}
	pub := curve.Compress(curve.PrivToPub(priv))
	return addr.P2WPKHInP2SHAddress(c.Params.ScriptVersion, pub), nil
}

// PrivToP2WPKH renders the native-segwit bech32 address for priv. Errors if
// the coin's parameters don't support segwit.
func (c *Coin) PrivToP2WPKH(priv *big.Int) (string, error) {
	const op = "cryptos.Coin.PrivToP2WPKH"
	if !c.Params.SegwitSupported || c.Params.Bech32HRP == "" {
		return "", cryptoserr.Wrap(cryptoserr.ErrUnsupportedFeature, op, nil)
	}
	pub := curve.Compress(curve.PrivToPub(priv))
	return addr.P2WPKHAddress(c.Params.Bech32HRP, pub)
}

// AddrToScript renders a's scriptPubKey, trying the coin's P2PKH version
// byte, then its P2SH version byte, then (if segwit-capable) its bech32 HRP.
func (c *Coin) AddrToScript(a string) ([]byte, error) {
	const op = "cryptos.Coin.AddrToScript"
	if version, payload, err := addr.Base58CheckDecode(a, len(c.Params.AddressVersion)); err == nil && bytesEqual(version, c.Params.AddressVersion) {
		return addr.P2PKHScript(payload).Serialize(), nil
	}
	if version, payload, err := addr.Base58CheckDecode(a, len(c.Params.ScriptVersion)); err == nil && bytesEqual(version, c.Params.ScriptVersion) {
		return addr.P2SHScript(payload).Serialize(), nil
	}
	if c.Params.SegwitSupported && c.Params.Bech32HRP != "" {
		if _, program, err := addr.DecodeSegwit(c.Params.Bech32HRP, a); err == nil {
			return addr.P2WPKHProgram(program).Serialize(), nil
		}
	}
	return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
}

// ScriptToAddr renders the address form of a scriptPubKey, dispatching on
// its classified template.
func (c *Coin) ScriptToAddr(scriptBytes []byte) (string, error) {
	const op = "cryptos.Coin.ScriptToAddr"
	s, err := script.Parse(scriptBytes)
	if err != nil {
		return "", err
	}
	classified := addr.ClassifyScript(s)
	switch classified.Type {
	case addr.P2PKH:
		return addr.Base58CheckEncode(c.Params.AddressVersion, classified.Program), nil
	case addr.P2SH:
		return addr.Base58CheckEncode(c.Params.ScriptVersion, classified.Program), nil
	case addr.P2WPKH, addr.P2WSH:
		if !c.Params.SegwitSupported || c.Params.Bech32HRP == "" {
			return "", cryptoserr.Wrap(cryptoserr.ErrUnsupportedFeature, op, nil)
		}
		return addr.EncodeSegwit(c.Params.Bech32HRP, classified.Program)
	default:
		return "", cryptoserr.Wrap(cryptoserr.ErrUnsupportedScript, op, nil)
	}
}

// P2SHScriptAddr renders the P2SH address for an arbitrary redeem script,
// used for multisig and P2WPKH-in-P2SH.
func (c *Coin) P2SHScriptAddr(redeemScript []byte) string {
	return addr.P2SHAddress(c.Params.ScriptVersion, redeemScript)
}

// ElectrumAddress renders the legacy Electrum v1 P2PKH address for the
// derived child key. forChange and n are always passed in this fixed
// order; some historical callers swapped these positionally depending on
// context, a quirk this signature does not replicate.
func (c *Coin) ElectrumAddress(keyMaterial []byte, forChange bool, n uint32) (string, error) {
	pub := electrum.PubkeyFromSeedOrMPK(keyMaterial, n, forChange)
	return addr.P2PKHAddress(c.Params.AddressVersion, pub), nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TxInputSpec describes a transaction input to MkTx by outpoint.
type TxInputSpec struct {
	Txid  string // big-endian hex, display order
	Vout  uint32
	Value uint64
}

// TxOutputSpec describes a transaction output to MkTx: either an address
// (resolved via AddrToScript) or a raw hex-encoded script.
type TxOutputSpec struct {
	AddressOrScriptHex string
	Value              uint64
}

// MkTx assembles an unsigned transaction from outpoint/output specs,
// resolving each output's address or raw script.
func (c *Coin) MkTx(inputs []TxInputSpec, outputs []TxOutputSpec) (*txn.Transaction, error) {
	const op = "cryptos.Coin.MkTx"
	tx := &txn.Transaction{Version: 1}
	for _, in := range inputs {
		raw, err := hex.DecodeString(in.Txid)
		if err != nil || len(raw) != 32 {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
		}
		var txid [32]byte
		for i, b := range raw {
			txid[31-i] = b
		}
		tx.Inputs = append(tx.Inputs, txn.TxInput{PrevTxID: txid, PrevOut: in.Vout, Sequence: 0xffffffff})
	}
	for _, out := range outputs {
		scriptBytes, err := resolveOutputScript(c, out.AddressOrScriptHex)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, txn.TxOutput{Value: out.Value, Script: scriptBytes})
	}
	return tx, nil
}

func resolveOutputScript(c *Coin, s string) ([]byte, error) {
	if scriptBytes, err := c.AddrToScript(s); err == nil {
		return scriptBytes, nil
	}
	return hex.DecodeString(s)
}

// Sign signs input i of tx, inferring the script type from prevScript.
func (c *Coin) Sign(tx *txn.Transaction, i int, priv *big.Int, prevScript []byte, amount uint64) error {
	return txn.SignInput(tx, i, priv, prevScript, amount, nil, txn.SighashAll)
}

// SignAll signs every input of tx with the same key, given each input's
// prevout script and amount in parallel slices.
func (c *Coin) SignAll(tx *txn.Transaction, priv *big.Int, prevScripts [][]byte, amounts []uint64) error {
	const op = "cryptos.Coin.SignAll"
	if len(prevScripts) != len(tx.Inputs) || len(amounts) != len(tx.Inputs) {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, nil)
	}
	for i := range tx.Inputs {
		if err := txn.SignInput(tx, i, priv, prevScripts[i], amounts[i], nil, txn.SighashAll); err != nil {
			return err
		}
	}
	return nil
}

// --- Free functions ---

// MkMultisigScript builds an m-of-n bare multisig scriptPubKey.
func MkMultisigScript(pubkeys [][]byte, m int) (*script.Script, error) {
	return addr.MultisigScript(pubkeys, m)
}

// MultiSign returns a single signature over tx's input i using redeem as
// the legacy sighash subscript.
func MultiSign(tx *txn.Transaction, i int, redeem []byte, priv *big.Int) ([]byte, error) {
	return txn.MultiSign(tx, i, redeem, priv, txn.SighashAll)
}

// ApplyMultisignatures installs OP_0 <sig1>...<sigk> <redeem> as input i's
// scriptSig.
func ApplyMultisignatures(tx *txn.Transaction, i int, redeem []byte, sigs [][]byte) error {
	return txn.ApplyMultisignatures(tx, i, redeem, sigs)
}

// VerifyTxInput recomputes the legacy sighash for subscript and verifies
// sig against pub.
func VerifyTxInput(tx *txn.Transaction, i int, subscript []byte, sig []byte, pub []byte) (bool, error) {
	return txn.VerifyInput(tx, i, subscript, sig, pub)
}

// Serialize renders tx's wire form (legacy or BIP144 witness, as HasWitness
// dictates).
func Serialize(tx *txn.Transaction) []byte { return tx.Serialize() }

// Deserialize parses a transaction's wire form.
func Deserialize(data []byte) (*txn.Transaction, error) { return txn.Deserialize(data) }

// SerializeScript renders s's wire form (minimal pushdata).
func SerializeScript(s *script.Script) []byte { return s.Serialize() }

// DeserializeScript parses a scriptPubKey/scriptSig's wire form.
func DeserializeScript(data []byte) (*script.Script, error) { return script.Parse(data) }

// EcdsaRawSign, EcdsaRawVerify and EcdsaRawRecover expose the raw (r, s)
// signing primitive directly, beneath the DER/sighash layer Sign/SignAll
// use.
func EcdsaRawSign(h []byte, priv *big.Int) (*ecdsa.Signature, error) {
	return ecdsa.RawSign(h, priv)
}

func EcdsaRawVerify(h []byte, sig *ecdsa.Signature, pub *curve.Point) bool {
	return ecdsa.RawVerify(h, sig, pub)
}

func EcdsaRawRecover(h []byte, sig *ecdsa.Signature) (*curve.Point, error) {
	return ecdsa.RawRecover(h, sig)
}

// EcdsaTxSign signs tx's input i over its legacy sighash and returns the
// DER+sighash-type-byte signature without installing it.
func EcdsaTxSign(tx *txn.Transaction, i int, subscript []byte, priv *big.Int, sighashType byte) ([]byte, error) {
	return txn.MultiSign(tx, i, subscript, priv, sighashType)
}

// EcdsaTxVerify is an alias for VerifyTxInput.
func EcdsaTxVerify(tx *txn.Transaction, i int, subscript []byte, sig []byte, pub []byte) (bool, error) {
	return txn.VerifyInput(tx, i, subscript, sig, pub)
}

// EcdsaTxRecover recovers a public-key candidate for sig over tx's input i
// legacy sighash. sig must carry the trailing sighash-type byte as
// EcdsaTxSign produces. DER carries no recovery id, so the returned point is
// the candidate for recovery id 0 (R with even y); when the signer's R had
// odd y, the signer's key is the other candidate, which is not returned.
func EcdsaTxRecover(tx *txn.Transaction, i int, subscript []byte, sig []byte) (*curve.Point, error) {
	const op = "cryptos.EcdsaTxRecover"
	if len(sig) < 1 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	sighashType := sig[len(sig)-1]
	der, err := ecdsa.DecodeDER(sig[:len(sig)-1])
	if err != nil {
		return nil, err
	}
	hash := txn.LegacySigHash(tx, i, subscript, sighashType)
	return ecdsa.RawRecover(hash[:], der)
}
