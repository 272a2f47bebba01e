package hashes

import (
	"encoding/hex"
	"testing"
)

func TestSHA256(t *testing.T) {
	got := SHA256([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"[:64]
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("SHA256(abc) = %x, want %s", got, want)
	}
}

func TestDoubleSHA256(t *testing.T) {
	first := SHA256([]byte("hello"))
	want := SHA256(first[:])
	got := DoubleSHA256([]byte("hello"))
	if got != want {
		t.Errorf("DoubleSHA256 mismatch")
	}
}

func TestHash160(t *testing.T) {
	// RIPEMD160(SHA256("")) is a well-known constant.
	got := Hash160(nil)
	want := "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("Hash160(nil) = %x, want %s", got, want)
	}
}

func TestHMACSHA512Deterministic(t *testing.T) {
	a := HMACSHA512([]byte("Bitcoin seed"), []byte{0x01, 0x02})
	b := HMACSHA512([]byte("Bitcoin seed"), []byte{0x01, 0x02})
	if a != b {
		t.Error("HMACSHA512 not deterministic")
	}
	c := HMACSHA512([]byte("Bitcoin seed"), []byte{0x01, 0x03})
	if a == c {
		t.Error("HMACSHA512 collided on different input")
	}
}

func TestPBKDF2HMACSHA512Length(t *testing.T) {
	out := PBKDF2HMACSHA512([]byte("password"), []byte("mnemonicsalt"), 2048, 64)
	if len(out) != 64 {
		t.Fatalf("len = %d, want 64", len(out))
	}
}
