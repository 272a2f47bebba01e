package bignum

import (
	"math/big"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	bases := []int{2, 10, 16, 58, 256}
	values := []int64{0, 1, 58, 255, 256, 1000000, 123456789}
	for _, base := range bases {
		for _, v := range values {
			n := big.NewInt(v)
			enc := Encode(n, base, 0)
			dec, err := Decode(enc, base)
			if err != nil {
				t.Fatalf("base %d value %d: decode error: %v", base, v, err)
			}
			if dec.Cmp(n) != 0 {
				t.Errorf("base %d value %d: round trip got %s", base, v, dec.String())
			}
		}
	}
}

func TestBasesTable(t *testing.T) {
	cases := []struct {
		val     string
		fromB   int
		toB     int
		want    string
	}{
		{"0", 10, 16, ""},
		{"1", 10, 16, "1"},
		{"255", 10, 16, "ff"},
		{"1000", 10, 16, "3e8"},
	}
	for _, c := range cases {
		got, err := ChangeBase(c.val, c.fromB, c.toB, 0)
		if err != nil {
			t.Fatalf("ChangeBase(%s, %d, %d): %v", c.val, c.fromB, c.toB, err)
		}
		if got != c.want {
			t.Errorf("ChangeBase(%s, %d, %d) = %q, want %q", c.val, c.fromB, c.toB, got, c.want)
		}
	}
}

func TestEncodeZeroMinlen(t *testing.T) {
	if got := Encode(big.NewInt(0), 16, 0); got != "" {
		t.Errorf("Encode(0, 16, 0) = %q, want empty string", got)
	}
	if got := Encode(big.NewInt(0), 16, 4); got != "0000" {
		t.Errorf("Encode(0, 16, 4) = %q, want 0000", got)
	}
}

func TestEncode256PreservesLeadingZeroBytes(t *testing.T) {
	n := big.NewInt(1)
	got := Encode(n, 256, 4)
	want := string([]byte{0x00, 0x00, 0x00, 0x01})
	if got != want {
		t.Errorf("Encode(1, 256, 4) = %x, want %x", got, want)
	}
}

func TestEncode58PreservesLeadingOnes(t *testing.T) {
	got := Encode(big.NewInt(0), 58, 3)
	if got != "111" {
		t.Errorf("Encode(0, 58, 3) = %q, want 111", got)
	}
}

func TestDecodeInvalidDigit(t *testing.T) {
	if _, err := Decode("0OIl", 58); err == nil {
		t.Error("expected error decoding invalid base58 characters")
	}
}
