// Legacy and BIP143 signature hashing. Grounded on DimaJoyti/go-coffee's
// Transaction.SignatureHash (pkg/bitcoin/transaction), extended with the
// BIP143 witness-v0 hash this module additionally needs, and with the
// legacy SIGHASH_SINGLE "hash=1" quirk preserved rather than fixed. Note
// the signature itself carries only a 1-byte sighash-type suffix even
// though the preimage hashed here appends the full 4-byte little-endian
// value.
package txn

import (
	"bytes"
	"encoding/binary"

	"github.com/olehkaliuzhnyi/cryptos/hashes"
)

// Sighash type flags.
const (
	SighashAll          = 0x01
	SighashNone         = 0x02
	SighashSingle       = 0x03
	SighashAnyoneCanPay = 0x80
)

func doubleSHA256(b []byte) [32]byte {
	return hashes.DoubleSHA256(b)
}

// LegacySigHash computes the pre-BIP141 signature hash for input i, with
// subscript substituted for input i's scriptSig. When sighashType is
// SIGHASH_SINGLE and i is out of range for the outputs, the historical
// "hash=1" quirk is preserved rather than treated as an error.
func LegacySigHash(tx *Transaction, i int, subscript []byte, sighashType byte) [32]byte {
	if sighashType&0x1f == SighashSingle && i >= len(tx.Outputs) {
		var one [32]byte
		one[0] = 0x01
		return one
	}

	work := tx.Clone()
	for idx := range work.Inputs {
		work.Inputs[idx].Script = nil
	}
	work.Inputs[i].Script = subscript

	switch sighashType & 0x1f {
	case SighashNone:
		work.Outputs = nil
		for idx := range work.Inputs {
			if idx != i {
				work.Inputs[idx].Sequence = 0
			}
		}
	case SighashSingle:
		work.Outputs = work.Outputs[:i+1]
		for idx := 0; idx < i; idx++ {
			work.Outputs[idx] = TxOutput{Value: ^uint64(0), Script: nil}
		}
		for idx := range work.Inputs {
			if idx != i {
				work.Inputs[idx].Sequence = 0
			}
		}
	}

	if sighashType&SighashAnyoneCanPay != 0 {
		work.Inputs = []TxInput{work.Inputs[i]}
	}

	var buf bytes.Buffer
	buf.Write(work.SerializeNoWitness())
	binary.Write(&buf, binary.LittleEndian, uint32(sighashType))
	return doubleSHA256(buf.Bytes())
}

var zero32 [32]byte

// BIP143SigHash computes the witness v0 signature hash for input i.
// scriptCode is the subscript being signed (for P2WPKH, the canonical
// P2PKH script over HASH160(pub)); amount is the spent output's value in
// satoshis.
func BIP143SigHash(tx *Transaction, i int, scriptCode []byte, amount uint64, sighashType byte) [32]byte {
	anyoneCanPay := sighashType&SighashAnyoneCanPay != 0
	base := sighashType & 0x1f

	hashPrevouts := zero32
	if !anyoneCanPay {
		var buf bytes.Buffer
		for _, in := range tx.Inputs {
			rev := reversed(in.PrevTxID)
			buf.Write(rev[:])
			binary.Write(&buf, binary.LittleEndian, in.PrevOut)
		}
		hashPrevouts = doubleSHA256(buf.Bytes())
	}

	hashSequence := zero32
	if !anyoneCanPay && base != SighashSingle && base != SighashNone {
		var buf bytes.Buffer
		for _, in := range tx.Inputs {
			binary.Write(&buf, binary.LittleEndian, in.Sequence)
		}
		hashSequence = doubleSHA256(buf.Bytes())
	}

	hashOutputs := zero32
	if base != SighashSingle && base != SighashNone {
		var buf bytes.Buffer
		for _, out := range tx.Outputs {
			serializeOutput(&buf, out)
		}
		hashOutputs = doubleSHA256(buf.Bytes())
	} else if base == SighashSingle && i < len(tx.Outputs) {
		var buf bytes.Buffer
		serializeOutput(&buf, tx.Outputs[i])
		hashOutputs = doubleSHA256(buf.Bytes())
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, tx.Version)
	buf.Write(hashPrevouts[:])
	buf.Write(hashSequence[:])
	rev := reversed(tx.Inputs[i].PrevTxID)
	buf.Write(rev[:])
	binary.Write(&buf, binary.LittleEndian, tx.Inputs[i].PrevOut)
	putVarint(&buf, uint64(len(scriptCode)))
	buf.Write(scriptCode)
	binary.Write(&buf, binary.LittleEndian, amount)
	binary.Write(&buf, binary.LittleEndian, tx.Inputs[i].Sequence)
	buf.Write(hashOutputs[:])
	binary.Write(&buf, binary.LittleEndian, tx.Locktime)
	binary.Write(&buf, binary.LittleEndian, uint32(sighashType))
	return doubleSHA256(buf.Bytes())
}
