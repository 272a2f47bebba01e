package curve

import (
	"math/big"
	"testing"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	for _, k := range []int64{1, 2, 3, 12345, 999999} {
		priv := big.NewInt(k)
		pub := PrivToPub(priv)
		compressed := Compress(pub)
		decompressed, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("k=%d: decompress error: %v", k, err)
		}
		if decompressed.X.Cmp(pub.X) != 0 || decompressed.Y.Cmp(pub.Y) != 0 {
			t.Errorf("k=%d: round trip mismatch", k)
		}
	}
}

func TestMultiplyCommutes(t *testing.T) {
	x := big.NewInt(12345)
	y := big.NewInt(6789)
	xG := ScalarBaseMult(x)
	yG := ScalarBaseMult(y)

	left := Multiply(xG, y)
	right := Multiply(yG, x)
	if left.X.Cmp(right.X) != 0 || left.Y.Cmp(right.Y) != 0 {
		t.Error("Multiply(Multiply(G,x),y) != Multiply(Multiply(G,y),x)")
	}
}

func TestAddPubkeysIsScalarAddition(t *testing.T) {
	x := big.NewInt(111)
	y := big.NewInt(222)
	xG := ScalarBaseMult(x)
	yG := ScalarBaseMult(y)
	sum := AddPubkeys(xG, yG)

	expected := ScalarBaseMult(new(big.Int).Add(x, y))
	if sum.X.Cmp(expected.X) != 0 || sum.Y.Cmp(expected.Y) != 0 {
		t.Error("add_pubkeys(xG, yG) != (x+y)G")
	}
}

func TestDivideInvertsMultiply(t *testing.T) {
	k := big.NewInt(999)
	p := ScalarBaseMult(big.NewInt(42))
	multiplied := Multiply(p, k)
	divided, err := Divide(multiplied, k)
	if err != nil {
		t.Fatal(err)
	}
	if divided.X.Cmp(p.X) != 0 || divided.Y.Cmp(p.Y) != 0 {
		t.Error("divide(multiply(P,k),k) != P")
	}
}

func TestUncompressedRoundTrip(t *testing.T) {
	priv := big.NewInt(31337)
	pub := PrivToPub(priv)
	uncompressed := Uncompressed(pub)
	if uncompressed[0] != 0x04 {
		t.Fatalf("uncompressed prefix = 0x%02x, want 0x04", uncompressed[0])
	}
	parsed, err := Decompress(uncompressed)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.X.Cmp(pub.X) != 0 || parsed.Y.Cmp(pub.Y) != 0 {
		t.Error("uncompressed round trip mismatch")
	}
}

func TestDivideByZeroErrors(t *testing.T) {
	p := ScalarBaseMult(big.NewInt(1))
	if _, err := Divide(p, big.NewInt(0)); err == nil {
		t.Error("expected error dividing by zero")
	}
}
