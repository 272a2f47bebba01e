package coins

import "testing"

func TestLookupBitcoinMainnet(t *testing.T) {
	p, err := Lookup("BTC", false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Symbol != "BTC" || p.Bech32HRP != "bc" || !p.SegwitSupported {
		t.Errorf("unexpected mainnet params: %+v", p)
	}
	if p.AddressVersion[0] != 0x00 {
		t.Errorf("AddressVersion = %x, want 00", p.AddressVersion)
	}
}

func TestLookupBitcoinTestnetAppliesOverrides(t *testing.T) {
	p, err := Lookup("BTC", true)
	if err != nil {
		t.Fatal(err)
	}
	if p.Symbol != "BTCTEST" || p.Bech32HRP != "tb" {
		t.Errorf("unexpected testnet params: %+v", p)
	}
	if p.AddressVersion[0] != 0x6f {
		t.Errorf("AddressVersion = %x, want 6f", p.AddressVersion)
	}
	if p.HDCoinType != 1 {
		t.Errorf("HDCoinType = %d, want 1", p.HDCoinType)
	}
}

func TestLookupUnknownCoin(t *testing.T) {
	if _, err := Lookup("NOPE", false); err == nil {
		t.Error("expected error for unregistered symbol")
	}
}

func TestWithTestnetReplacesScriptVersionsWholesale(t *testing.T) {
	p, err := Lookup("BTC", false)
	if err != nil {
		t.Fatal(err)
	}
	mainnetCount := len(p.ScriptVersions)

	testnet := p.WithTestnet(true)
	if len(testnet.ScriptVersions) != mainnetCount {
		t.Errorf("testnet ScriptVersions len = %d, want %d (overrides carry every script type)", len(testnet.ScriptVersions), mainnetCount)
	}
	if testnet.ScriptVersions[ScriptP2PKH].Xprv != 0x04358394 {
		t.Errorf("testnet P2PKH xprv = %x, want 04358394", testnet.ScriptVersions[ScriptP2PKH].Xprv)
	}
}

func TestXVersionsFallsBackToP2PKH(t *testing.T) {
	p, err := Lookup("DASH", false)
	if err != nil {
		t.Fatal(err)
	}
	v, err := p.XVersions(ScriptP2WPKH)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := p.XVersions(ScriptP2PKH)
	if v != want {
		t.Errorf("Dash XVersions(P2WPKH) = %+v, want fallback %+v", v, want)
	}
}

func TestWithTestnetNoOverridesIsNoop(t *testing.T) {
	p := Params{Symbol: "X"}
	if got := p.WithTestnet(true); got.Symbol != "X" {
		t.Errorf("expected unchanged params when TestnetOverrides is nil")
	}
}
