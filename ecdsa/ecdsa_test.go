package ecdsa

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/olehkaliuzhnyi/cryptos/curve"
)

// h = SHA256("0"), priv = 0x00...00, k must equal the RFC 6979 vector
// 32783320859482229023646250050688645858316445811207841524283044428614360139869.
func TestDeterministicKVector(t *testing.T) {
	h := sha256.Sum256([]byte("0"))
	x := big.NewInt(0)
	k := DeterministicK(x, h[:])
	want, ok := new(big.Int).SetString("32783320859482229023646250050688645858316445811207841524283044428614360139869", 10)
	if !ok {
		t.Fatal("bad want constant")
	}
	if k.Cmp(want) != 0 {
		t.Errorf("DeterministicK = %s, want %s", k.String(), want.String())
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := big.NewInt(12345)
	h := sha256.Sum256([]byte("message"))
	sig, err := RawSign(h[:], priv)
	if err != nil {
		t.Fatal(err)
	}
	pub := curve.PrivToPub(priv)
	if !RawVerify(h[:], sig, pub) {
		t.Error("verification failed for freshly produced signature")
	}
}

func TestSignLowS(t *testing.T) {
	priv := big.NewInt(998877)
	h := sha256.Sum256([]byte("low-s-check"))
	sig, err := RawSign(h[:], priv)
	if err != nil {
		t.Fatal(err)
	}
	halfN := new(big.Int).Rsh(curve.N, 1)
	if sig.S.Cmp(halfN) > 0 {
		t.Errorf("s = %s is not low-S normalized", sig.S.String())
	}
}

func TestVerifyRejectsTamperedHash(t *testing.T) {
	priv := big.NewInt(55)
	h := sha256.Sum256([]byte("real message"))
	sig, err := RawSign(h[:], priv)
	if err != nil {
		t.Fatal(err)
	}
	other := sha256.Sum256([]byte("different message"))
	pub := curve.PrivToPub(priv)
	if RawVerify(other[:], sig, pub) {
		t.Error("verification should fail against a different hash")
	}
}

func TestRawRecoverFindsPublicKey(t *testing.T) {
	priv := big.NewInt(424242)
	h := sha256.Sum256([]byte("recover me"))
	sig, err := RawSign(h[:], priv)
	if err != nil {
		t.Fatal(err)
	}
	pub := curve.PrivToPub(priv)
	recovered, err := RawRecover(h[:], sig)
	if err != nil {
		t.Fatal(err)
	}
	if recovered.X.Cmp(pub.X) != 0 || recovered.Y.Cmp(pub.Y) != 0 {
		t.Error("recovered point does not match original public key")
	}
}

func TestDEREncodeDecodeRoundTrip(t *testing.T) {
	priv := big.NewInt(7)
	h := sha256.Sum256([]byte("der roundtrip"))
	sig, err := RawSign(h[:], priv)
	if err != nil {
		t.Fatal(err)
	}
	der := EncodeDER(sig)
	if der[0] != 0x30 {
		t.Fatalf("DER should start with 0x30, got 0x%02x", der[0])
	}
	decoded, err := DecodeDER(der)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.R.Cmp(sig.R) != 0 || decoded.S.Cmp(sig.S) != 0 {
		t.Error("DecodeDER did not reproduce the original (r, s)")
	}
}

func TestDecodeDERRejectsTruncatedLengths(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"rLen overruns buffer", []byte{0x30, 0x04, 0x02, 0x7f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"sLen overruns buffer", []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x7f, 0x00, 0x00, 0x00}},
		{"total shorter than actual TLVs", []byte{0x30, 0x02, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}},
		{"s element missing", []byte{0x30, 0x03, 0x02, 0x01, 0x01}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeDER(tc.data); err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}

func TestRawSignRejectsOutOfRangeKey(t *testing.T) {
	h := sha256.Sum256([]byte("x"))
	if _, err := RawSign(h[:], big.NewInt(0)); err == nil {
		t.Error("expected error signing with zero key")
	}
	if _, err := RawSign(h[:], new(big.Int).Set(curve.N)); err == nil {
		t.Error("expected error signing with key == N")
	}
}
