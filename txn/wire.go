// Package txn implements Bitcoin transaction (de)serialization — legacy and
// BIP141/BIP144 witness form — plus the BIP143/legacy signature-hash and
// signing/verification/multisig pipeline. The wire layout (varint,
// little-endian fields, reversed txid-on-the-wire) is grounded on
// github.com/DimaJoyti/go-coffee's pkg/bitcoin/transaction package,
// extended here with BIP144 witness marker/flag handling that package
// didn't implement.
package txn

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/olehkaliuzhnyi/cryptos/cryptoserr"
)

// TxInput is a transaction input.
type TxInput struct {
	PrevTxID [32]byte // natural (internal) byte order; reversed only on the wire
	PrevOut  uint32
	Script   []byte
	Sequence uint32
	Witness  [][]byte
}

// TxOutput is a transaction output.
type TxOutput struct {
	Value  uint64
	Script []byte
}

// Transaction is a Bitcoin transaction.
type Transaction struct {
	Version  uint32
	Inputs   []TxInput
	Outputs  []TxOutput
	Locktime uint32
}

// HasWitness reports whether any input carries a non-empty witness stack.
func (tx *Transaction) HasWitness() bool {
	for _, in := range tx.Inputs {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

func putVarint(w *bytes.Buffer, v uint64) {
	switch {
	case v < 0xfd:
		w.WriteByte(byte(v))
	case v <= 0xffff:
		w.WriteByte(0xfd)
		binary.Write(w, binary.LittleEndian, uint16(v))
	case v <= 0xffffffff:
		w.WriteByte(0xfe)
		binary.Write(w, binary.LittleEndian, uint32(v))
	default:
		w.WriteByte(0xff)
		binary.Write(w, binary.LittleEndian, v)
	}
}

func readVarint(r *bytes.Reader) (uint64, error) {
	const op = "txn.readVarint"
	b, err := r.ReadByte()
	if err != nil {
		return 0, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	switch b {
	case 0xfd:
		var v uint16
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
		}
		return uint64(v), nil
	case 0xfe:
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
		}
		return uint64(v), nil
	case 0xff:
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
		}
		return v, nil
	default:
		return uint64(b), nil
	}
}

func reversed(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[i] = b[31-i]
	}
	return out
}

func serializeInput(w *bytes.Buffer, in TxInput) {
	rev := reversed(in.PrevTxID)
	w.Write(rev[:])
	binary.Write(w, binary.LittleEndian, in.PrevOut)
	putVarint(w, uint64(len(in.Script)))
	w.Write(in.Script)
	binary.Write(w, binary.LittleEndian, in.Sequence)
}

func serializeOutput(w *bytes.Buffer, out TxOutput) {
	binary.Write(w, binary.LittleEndian, out.Value)
	putVarint(w, uint64(len(out.Script)))
	w.Write(out.Script)
}

// SerializeNoWitness renders the legacy (non-witness) wire form used to
// compute the txid, regardless of whether the tx carries witness data.
func (tx *Transaction) SerializeNoWitness() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, tx.Version)
	putVarint(&buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		serializeInput(&buf, in)
	}
	putVarint(&buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		serializeOutput(&buf, out)
	}
	binary.Write(&buf, binary.LittleEndian, tx.Locktime)
	return buf.Bytes()
}

// Serialize renders the full wire form: BIP144 witness framing (marker
// 0x00, flag 0x01, and a witness stack per input after the outputs) when
// HasWitness, else identical to SerializeNoWitness.
func (tx *Transaction) Serialize() []byte {
	if !tx.HasWitness() {
		return tx.SerializeNoWitness()
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, tx.Version)
	buf.WriteByte(0x00) // marker
	buf.WriteByte(0x01) // flag
	putVarint(&buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		serializeInput(&buf, in)
	}
	putVarint(&buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		serializeOutput(&buf, out)
	}
	for _, in := range tx.Inputs {
		putVarint(&buf, uint64(len(in.Witness)))
		for _, item := range in.Witness {
			putVarint(&buf, uint64(len(item)))
			buf.Write(item)
		}
	}
	binary.Write(&buf, binary.LittleEndian, tx.Locktime)
	return buf.Bytes()
}

// Deserialize parses data, auto-detecting the BIP144 witness marker byte.
func Deserialize(data []byte) (*Transaction, error) {
	const op = "txn.Deserialize"
	r := bytes.NewReader(data)
	tx := &Transaction{}

	if err := binary.Read(r, binary.LittleEndian, &tx.Version); err != nil {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}

	witnessFlag := false
	firstByte, err := r.ReadByte()
	if err != nil {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	if firstByte == 0x00 {
		flagByte, err := r.ReadByte()
		if err != nil {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
		}
		if flagByte != 0x01 {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, nil)
		}
		witnessFlag = true
	} else {
		if err := r.UnreadByte(); err != nil {
			return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
		}
	}

	nIn, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	tx.Inputs = make([]TxInput, nIn)
	for i := range tx.Inputs {
		if err := deserializeInput(r, &tx.Inputs[i]); err != nil {
			return nil, err
		}
	}

	nOut, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	tx.Outputs = make([]TxOutput, nOut)
	for i := range tx.Outputs {
		if err := deserializeOutput(r, &tx.Outputs[i]); err != nil {
			return nil, err
		}
	}

	if witnessFlag {
		for i := range tx.Inputs {
			nItems, err := readVarint(r)
			if err != nil {
				return nil, err
			}
			items := make([][]byte, nItems)
			for j := range items {
				items[j], err = readVarBytes(r)
				if err != nil {
					return nil, err
				}
			}
			tx.Inputs[i].Witness = items
		}
	}

	if err := binary.Read(r, binary.LittleEndian, &tx.Locktime); err != nil {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	if r.Len() != 0 {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, nil)
	}
	return tx, nil
}

func deserializeInput(r *bytes.Reader, in *TxInput) error {
	const op = "txn.deserializeInput"
	var raw [32]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	in.PrevTxID = reversed(raw)
	if err := binary.Read(r, binary.LittleEndian, &in.PrevOut); err != nil {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	script, err := readVarBytes(r)
	if err != nil {
		return err
	}
	in.Script = script
	if err := binary.Read(r, binary.LittleEndian, &in.Sequence); err != nil {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	return nil
}

func deserializeOutput(r *bytes.Reader, out *TxOutput) error {
	const op = "txn.deserializeOutput"
	if err := binary.Read(r, binary.LittleEndian, &out.Value); err != nil {
		return cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	script, err := readVarBytes(r)
	if err != nil {
		return err
	}
	out.Script = script
	return nil
}

func readVarBytes(r *bytes.Reader) ([]byte, error) {
	const op = "txn.readVarBytes"
	n, err := readVarint(r)
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, nil)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, cryptoserr.Wrap(cryptoserr.ErrInvalidTransaction, op, err)
	}
	return buf, nil
}

// TxID returns the double-SHA256 of the non-witness serialization, in
// internal (natural) byte order.
func (tx *Transaction) TxID() [32]byte {
	return doubleSHA256(tx.SerializeNoWitness())
}

// WTxID returns the double-SHA256 of the full serialization.
func (tx *Transaction) WTxID() [32]byte {
	return doubleSHA256(tx.Serialize())
}

// Clone deep-copies tx so callers (e.g. the sighash builders) can mutate a
// copy without affecting the original.
func (tx *Transaction) Clone() *Transaction {
	out := &Transaction{
		Version:  tx.Version,
		Locktime: tx.Locktime,
		Inputs:   make([]TxInput, len(tx.Inputs)),
		Outputs:  make([]TxOutput, len(tx.Outputs)),
	}
	for i, in := range tx.Inputs {
		out.Inputs[i] = TxInput{
			PrevTxID: in.PrevTxID,
			PrevOut:  in.PrevOut,
			Script:   append([]byte{}, in.Script...),
			Sequence: in.Sequence,
		}
		for _, w := range in.Witness {
			out.Inputs[i].Witness = append(out.Inputs[i].Witness, append([]byte{}, w...))
		}
	}
	for i, o := range tx.Outputs {
		out.Outputs[i] = TxOutput{Value: o.Value, Script: append([]byte{}, o.Script...)}
	}
	return out
}
