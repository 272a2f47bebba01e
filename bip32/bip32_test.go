package bip32

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/cryptos/coins"
)

func seed1(t *testing.T) []byte {
	t.Helper()
	b, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestMasterFromSeedCanonicalVector(t *testing.T) {
	master, err := MasterFromSeed(seed1(t))
	require.NoError(t, err)
	btc, err := coins.Lookup("BTC", false)
	require.NoError(t, err)
	got, err := Serialize(master, btc, coins.ScriptP2PKH)
	require.NoError(t, err)
	require.Equal(t, "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi", got)
}

func TestDeriveCanonicalPathVector(t *testing.T) {
	master, err := MasterFromSeed(seed1(t))
	require.NoError(t, err)
	btc, err := coins.Lookup("BTC", false)
	require.NoError(t, err)

	indices := []uint32{
		hardenedOffset + 0,
		1,
		hardenedOffset + 2,
		2,
		1000000000,
	}
	node := master
	for _, idx := range indices {
		node, err = CKD(node, idx)
		require.NoError(t, err)
	}

	gotPub, err := Serialize(node.Neuter(), btc, coins.ScriptP2PKH)
	require.NoError(t, err)
	require.Equal(t, "xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy", gotPub)
}

func TestSerializeParseRoundTrip(t *testing.T) {
	master, err := MasterFromSeed(seed1(t))
	if err != nil {
		t.Fatal(err)
	}
	btc, err := coins.Lookup("BTC", false)
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := Serialize(master, btc, coins.ScriptP2PKH)
	if err != nil {
		t.Fatal(err)
	}
	parsed, st, err := Parse(encoded, btc)
	if err != nil {
		t.Fatal(err)
	}
	if st != coins.ScriptP2PKH {
		t.Errorf("script type = %v, want P2PKH", st)
	}
	if parsed.Priv.Cmp(master.Priv) != 0 {
		t.Error("parsed private scalar does not match original")
	}
}

func TestCKDHardenedRequiresPrivateParent(t *testing.T) {
	master, err := MasterFromSeed(seed1(t))
	if err != nil {
		t.Fatal(err)
	}
	pubOnly := master.Neuter()
	if _, err := CKD(pubOnly, hardenedOffset); err == nil {
		t.Error("expected error deriving a hardened child from a public-only parent")
	}
}

func TestNeuterStripsPrivateKey(t *testing.T) {
	master, err := MasterFromSeed(seed1(t))
	if err != nil {
		t.Fatal(err)
	}
	pubOnly := master.Neuter()
	if pubOnly.IsPrivate() {
		t.Error("Neuter should strip the private scalar")
	}
	if pubOnly.Pub.X.Cmp(master.Pub.X) != 0 {
		t.Error("Neuter should preserve the public key")
	}
}
