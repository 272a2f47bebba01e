package bip39

import "testing"

func TestMnemonicToSeedKnownVector(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed := MnemonicToSeed(mnemonic, "TREZOR")

	want := "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
	got := hexEncode(seed)
	if got != want {
		t.Errorf("seed = %s, want %s", got, want)
	}
}

func TestMnemonicToSeedIsSixtyFourBytes(t *testing.T) {
	seed := MnemonicToSeed("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", "")
	if len(seed) != 64 {
		t.Fatalf("len(seed) = %d, want 64", len(seed))
	}
}

func TestMnemonicToSeedVariesWithPassphrase(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	a := MnemonicToSeed(mnemonic, "")
	b := MnemonicToSeed(mnemonic, "TREZOR")
	if hexEncode(a) == hexEncode(b) {
		t.Error("different passphrases should derive different seeds")
	}
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = digits[v>>4]
		out[i*2+1] = digits[v&0x0f]
	}
	return string(out)
}
