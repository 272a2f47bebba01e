// Script templates and address<->script conversion. Coin parameters
// (version bytes, HRP) are passed in explicitly rather than imported from
// a coins package, keeping addr a pure leaf with no dependency on the
// per-coin table (addr and coins do not import each other; callers such as
// the cryptos facade and internal/wallet/btc.go pass the prefix bytes from
// a coins.Params record).
package addr

import (
	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
	"github.com/olehkaliuzhnyi/cryptos/hashes"
	"github.com/olehkaliuzhnyi/cryptos/script"
)

// ScriptType classifies a scriptPubKey template as a tagged union rather
// than a polymorphic hierarchy.
type ScriptType int

const (
	Unknown ScriptType = iota
	P2PKH
	P2SH
	P2WPKH
	P2WSH
	Multisig
)

// Classified holds a scriptPubKey's template kind and its payload (the
// 20/32-byte program, or the raw pubkeys for a bare multisig script).
type Classified struct {
	Type    ScriptType
	Program []byte // hash160/hash256 program for PKH/SH/WPKH/WSH
	M, N    int    // for bare Multisig
	Pubkeys [][]byte
}

// P2PKHScript builds OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG.
func P2PKHScript(pubkeyHash []byte) *script.Script {
	return script.New(
		script.Op(script.OP_DUP),
		script.Op(script.OP_HASH160),
		script.Push(pubkeyHash),
		script.Op(script.OP_EQUALVERIFY),
		script.Op(script.OP_CHECKSIG),
	)
}

// P2SHScript builds OP_HASH160 <20> OP_EQUAL.
func P2SHScript(redeemHash []byte) *script.Script {
	return script.New(
		script.Op(script.OP_HASH160),
		script.Push(redeemHash),
		script.Op(script.OP_EQUAL),
	)
}

// P2WPKHProgram builds the witness program 0x00 || HASH160(pub) used both
// as a native-segwit scriptPubKey and as a P2SH redeem script.
func P2WPKHProgram(pubkeyHash []byte) *script.Script {
	return script.New(script.Op(script.OP_0), script.Push(pubkeyHash))
}

// MultisigScript builds OP_m <pub1>...<pubn> OP_n OP_CHECKMULTISIG.
// 1 <= m <= n <= 16; pubkey order is preserved as given.
func MultisigScript(pubkeys [][]byte, m int) (*script.Script, error) {
	const op = "addr.MultisigScript"
	n := len(pubkeys)
	if m < 1 || n > 16 || m > n {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidScript, op, nil)
	}
	elements := make([]script.Element, 0, n+3)
	elements = append(elements, script.Op(script.OpN(m)))
	for _, pk := range pubkeys {
		elements = append(elements, script.Push(pk))
	}
	elements = append(elements, script.Op(script.OpN(n)), script.Op(script.OP_CHECKMULTISIG))
	return script.New(elements...), nil
}

// P2PKHAddress renders Base58Check(addressVersion || HASH160(pub)).
func P2PKHAddress(addressVersion []byte, pubkey []byte) string {
	h := hashes.Hash160(pubkey)
	return Base58CheckEncode(addressVersion, h[:])
}

// P2SHAddress renders Base58Check(scriptVersion || HASH160(redeemScript)).
func P2SHAddress(scriptVersion []byte, redeemScript []byte) string {
	h := hashes.Hash160(redeemScript)
	return Base58CheckEncode(scriptVersion, h[:])
}

// P2WPKHAddress renders the bech32 address bech32(hrp, 0, HASH160(pub)).
func P2WPKHAddress(hrp string, pubkey []byte) (string, error) {
	h := hashes.Hash160(pubkey)
	return EncodeSegwit(hrp, h[:])
}

// P2WPKHInP2SHAddress renders P2SH over the P2WPKH witness program, giving
// the "P2SH-wrapped segwit" address form.
func P2WPKHInP2SHAddress(scriptVersion []byte, pubkey []byte) string {
	h := hashes.Hash160(pubkey)
	redeem := P2WPKHProgram(h[:]).Serialize()
	return P2SHAddress(scriptVersion, redeem)
}

// WIF renders Base58Check(wifVersion || key[32] || 0x01 if compressed).
func WIF(wifVersion []byte, key32 []byte, compressed bool) string {
	payload := append([]byte{}, key32...)
	if compressed {
		payload = append(payload, 0x01)
	}
	return Base58CheckEncode(wifVersion, payload)
}

// DecodeWIF reverses WIF, returning the 32-byte key and compression flag.
func DecodeWIF(wifVersionLen int, s string) (key32 []byte, compressed bool, err error) {
	const op = "addr.DecodeWIF"
	_, payload, derr := Base58CheckDecode(s, wifVersionLen)
	if derr != nil {
		return nil, false, derr
	}
	switch len(payload) {
	case 32:
		return payload, false, nil
	case 33:
		if payload[32] != 0x01 {
			return nil, false, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
		}
		return payload[:32], true, nil
	default:
		return nil, false, cryptoserr.Wrap(cryptoserr.ErrInvalidEncoding, op, nil)
	}
}

// ClassifyScript inspects a scriptPubKey and classifies it against the
// supported template set. Returns Unknown (not an error) for
// anything else; callers that require a known template use
// cryptoserr.ErrUnsupportedScript themselves (e.g. ScriptToAddr).
func ClassifyScript(s *script.Script) Classified {
	e := s.Elements
	switch {
	case len(e) == 5 && e[0].Op == script.OP_DUP && e[1].Op == script.OP_HASH160 &&
		e[2].IsPush() && len(e[2].Data) == 20 &&
		e[3].Op == script.OP_EQUALVERIFY && e[4].Op == script.OP_CHECKSIG:
		return Classified{Type: P2PKH, Program: e[2].Data}

	case len(e) == 3 && e[0].Op == script.OP_HASH160 &&
		e[1].IsPush() && len(e[1].Data) == 20 && e[2].Op == script.OP_EQUAL:
		return Classified{Type: P2SH, Program: e[1].Data}

	case len(e) == 2 && e[0].Op == script.OP_0 && e[1].IsPush() && len(e[1].Data) == 20:
		return Classified{Type: P2WPKH, Program: e[1].Data}

	case len(e) == 2 && e[0].Op == script.OP_0 && e[1].IsPush() && len(e[1].Data) == 32:
		return Classified{Type: P2WSH, Program: e[1].Data}

	case len(e) >= 4 && isSmallNum(e[0].Op) && isSmallNum(e[len(e)-2].Op) &&
		e[len(e)-1].Op == script.OP_CHECKMULTISIG && allPush(e[1:len(e)-2]):
		m := smallNumVal(e[0].Op)
		n := smallNumVal(e[len(e)-2].Op)
		pubkeys := make([][]byte, 0, n)
		for _, el := range e[1 : len(e)-2] {
			pubkeys = append(pubkeys, el.Data)
		}
		if len(pubkeys) == n {
			return Classified{Type: Multisig, M: m, N: n, Pubkeys: pubkeys}
		}
	}
	return Classified{Type: Unknown}
}

func isSmallNum(op byte) bool {
	return op == script.OP_0 || (op >= script.OP_1 && op <= script.OP_16)
}

func smallNumVal(op byte) int {
	if op == script.OP_0 {
		return 0
	}
	return int(op-script.OP_1) + 1
}

func allPush(elements []script.Element) bool {
	for _, e := range elements {
		if !e.IsPush() {
			return false
		}
	}
	return true
}
