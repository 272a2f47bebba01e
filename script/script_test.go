package script

import (
	"bytes"
	"testing"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	cases := [][]Element{
		{Op(OP_DUP), Op(OP_HASH160), Push(make([]byte, 20)), Op(OP_EQUALVERIFY), Op(OP_CHECKSIG)},
		{Op(OP_HASH160), Push(make([]byte, 20)), Op(OP_EQUAL)},
		{Op(OP_0), Push(make([]byte, 20))},
		{Op(OpN(2)), Push(make([]byte, 33)), Push(make([]byte, 33)), Op(OpN(2)), Op(OP_CHECKMULTISIG)},
	}
	for i, elements := range cases {
		s := New(elements...)
		data := s.Serialize()
		parsed, err := Parse(data)
		if err != nil {
			t.Fatalf("case %d: parse error: %v", i, err)
		}
		if !bytes.Equal(parsed.Serialize(), data) {
			t.Errorf("case %d: round trip mismatch", i)
		}
	}
}

func TestMinimalPushdataLengths(t *testing.T) {
	s := New(Push(make([]byte, 75)))
	data := s.Serialize()
	if data[0] != 75 {
		t.Errorf("75-byte push should use direct push opcode 75, got %d", data[0])
	}

	s2 := New(Push(make([]byte, 76)))
	data2 := s2.Serialize()
	if data2[0] != OP_PUSHDATA1 {
		t.Errorf("76-byte push should use OP_PUSHDATA1, got 0x%02x", data2[0])
	}

	s3 := New(Push(make([]byte, 256)))
	data3 := s3.Serialize()
	if data3[0] != OP_PUSHDATA2 {
		t.Errorf("256-byte push should use OP_PUSHDATA2, got 0x%02x", data3[0])
	}
}

func TestParseRejectsTruncatedPush(t *testing.T) {
	// direct-push opcode claiming 10 bytes but only 2 supplied
	data := []byte{10, 0x01, 0x02}
	if _, err := Parse(data); err == nil {
		t.Error("expected error parsing truncated pushdata")
	}
}

func TestOpN(t *testing.T) {
	if OpN(0) != OP_0 {
		t.Errorf("OpN(0) = 0x%02x, want OP_0", OpN(0))
	}
	if OpN(1) != OP_1 {
		t.Errorf("OpN(1) = 0x%02x, want OP_1", OpN(1))
	}
	if OpN(16) != OP_16 {
		t.Errorf("OpN(16) = 0x%02x, want OP_16", OpN(16))
	}
}
