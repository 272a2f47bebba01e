// Signing, verification and multisig assembly. Script-type dispatch uses
// addr.ClassifyScript's tagged union instead of ad-hoc string checks,
// following the DimaJoyti/go-coffee Transaction.SignInput/VerifyInput
// shape, extended here to cover P2WPKH and P2WPKH-in-P2SH (the go-coffee
// version only handles P2PKH) and bare multisig assembly.
package txn

import (
	"math/big"

	"github.com/olehkaliuzhnyi/cryptos/addr"
	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
	"github.com/olehkaliuzhnyi/cryptos/ecdsa"
	"github.com/olehkaliuzhnyi/cryptos/script"
)

// SignInput signs input i, inferring the script type from prevScript (the
// previous output's scriptPubKey). redeemScript is required (and ignored
// otherwise) for P2SH inputs — supply the P2WPKH witness program to sign a
// P2WPKH-in-P2SH input. Bare/P2SH multisig inputs are not handled here; use
// MultiSign + ApplyMultisignatures instead.
func SignInput(tx *Transaction, i int, priv *big.Int, prevScript []byte, amount uint64, redeemScript []byte, sighashType byte) error {
	const op = "txn.SignInput"
	if i < 0 || i >= len(tx.Inputs) {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, nil)
	}

	parsed, err := script.Parse(prevScript)
	if err != nil {
		return err
	}
	classified := addr.ClassifyScript(parsed)

	pub := curve.PrivToPub(priv)
	pubComp := curve.Compress(pub)

	switch classified.Type {
	case addr.P2PKH:
		hash := LegacySigHash(tx, i, prevScript, sighashType)
		der, err := signDER(hash, priv)
		if err != nil {
			return err
		}
		sigWithType := append(der, sighashType)
		scriptSig := script.New(script.Push(sigWithType), script.Push(pubComp))
		tx.Inputs[i].Script = scriptSig.Serialize()
		return nil

	case addr.P2WPKH:
		scriptCode := addr.P2PKHScript(classified.Program).Serialize()
		hash := BIP143SigHash(tx, i, scriptCode, amount, sighashType)
		der, err := signDER(hash, priv)
		if err != nil {
			return err
		}
		sigWithType := append(der, sighashType)
		tx.Inputs[i].Script = nil
		tx.Inputs[i].Witness = [][]byte{sigWithType, pubComp}
		return nil

	case addr.P2SH:
		if redeemScript == nil || !isWitnessV0Program(redeemScript) {
			return cryptoserr.Wrap(cryptoserr.ErrUnsupportedScript, op, nil)
		}
		redeemParsed, err := script.Parse(redeemScript)
		if err != nil {
			return err
		}
		redeemClassified := addr.ClassifyScript(redeemParsed)
		scriptCode := addr.P2PKHScript(redeemClassified.Program).Serialize()
		hash := BIP143SigHash(tx, i, scriptCode, amount, sighashType)
		der, err := signDER(hash, priv)
		if err != nil {
			return err
		}
		sigWithType := append(der, sighashType)
		tx.Inputs[i].Script = script.New(script.Push(redeemScript)).Serialize()
		tx.Inputs[i].Witness = [][]byte{sigWithType, pubComp}
		return nil

	default:
		return cryptoserr.Wrap(cryptoserr.ErrUnsupportedScript, op, nil)
	}
}

func isWitnessV0Program(redeem []byte) bool {
	parsed, err := script.Parse(redeem)
	if err != nil || len(parsed.Elements) != 2 {
		return false
	}
	return parsed.Elements[0].Op == script.OP_0 && parsed.Elements[1].IsPush() && len(parsed.Elements[1].Data) == 20
}

func signDER(hash [32]byte, priv *big.Int) ([]byte, error) {
	sig, err := ecdsa.RawSign(hash[:], priv)
	if err != nil {
		return nil, err
	}
	return ecdsa.EncodeDER(sig), nil
}

// MultiSign returns a single DER signature (with the sighash-type byte
// appended) over the legacy sighash of input i using redeem as the
// subscript.
func MultiSign(tx *Transaction, i int, redeem []byte, priv *big.Int, sighashType byte) ([]byte, error) {
	hash := LegacySigHash(tx, i, redeem, sighashType)
	der, err := signDER(hash, priv)
	if err != nil {
		return nil, err
	}
	return append(der, sighashType), nil
}

// ApplyMultisignatures writes OP_0 <sig1>...<sigk> <redeem> as input i's
// scriptSig. The leading OP_0 is OP_CHECKMULTISIG's historical off-by-one
// quirk, preserved intentionally.
func ApplyMultisignatures(tx *Transaction, i int, redeem []byte, sigs [][]byte) error {
	const op = "txn.ApplyMultisignatures"
	if i < 0 || i >= len(tx.Inputs) {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, nil)
	}
	elements := make([]script.Element, 0, len(sigs)+2)
	elements = append(elements, script.Op(script.OP_0))
	for _, s := range sigs {
		elements = append(elements, script.Push(s))
	}
	elements = append(elements, script.Push(redeem))
	tx.Inputs[i].Script = script.New(elements...).Serialize()
	return nil
}

// VerifyInput recomputes the legacy sighash for subscript and verifies sig
// (DER + trailing sighash-type byte) against pub.
func VerifyInput(tx *Transaction, i int, subscript []byte, sig []byte, pub []byte) (bool, error) {
	const op = "txn.VerifyInput"
	if len(sig) < 1 {
		return false, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	sighashType := sig[len(sig)-1]
	der, err := ecdsa.DecodeDER(sig[:len(sig)-1])
	if err != nil {
		return false, err
	}
	hash := LegacySigHash(tx, i, subscript, sighashType)
	q, err := curve.Decompress(pub)
	if err != nil {
		return false, err
	}
	return ecdsa.RawVerify(hash[:], der, q), nil
}

// VerifyWitnessInput is VerifyInput's BIP143 counterpart for P2WPKH/
// P2WPKH-in-P2SH inputs.
func VerifyWitnessInput(tx *Transaction, i int, scriptCode []byte, amount uint64, sig []byte, pub []byte) (bool, error) {
	const op = "txn.VerifyWitnessInput"
	if len(sig) < 1 {
		return false, cryptoserr.Wrap(cryptoserr.ErrInvalidSignature, op, nil)
	}
	sighashType := sig[len(sig)-1]
	der, err := ecdsa.DecodeDER(sig[:len(sig)-1])
	if err != nil {
		return false, err
	}
	hash := BIP143SigHash(tx, i, scriptCode, amount, sighashType)
	q, err := curve.Decompress(pub)
	if err != nil {
		return false, err
	}
	return ecdsa.RawVerify(hash[:], der, q), nil
}
