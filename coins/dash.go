package coins

// Dash mainnet/testnet parameters, grounded on
// original_source/cryptos/coins_async/dash.py. Dash predates segwit, so
// unlike Bitcoin it carries a single flat xprv/xpub pair rather than a
// map keyed by script type; XVersions falls back to the P2PKH entry for
// any script-type lookup, matching that shape.
func init() {
	register(Params{
		Symbol:          "DASH",
		DisplayName:     "Dash",
		AddressVersion:  []byte{0x4c},
		ScriptVersion:   []byte{0x10},
		WIFVersion:      []byte{0xcc},
		SegwitSupported: false,
		HDCoinType:      5,
		ClientKwargsTag: "dash.json",
		ScriptVersions: map[ScriptType]XKeyVersions{
			ScriptP2PKH: {Xprv: 0x0488ADE4, Xpub: 0x0488B21E},
		},
		TestnetOverrides: &Overrides{
			DisplayName:    str("Dash Testnet"),
			Symbol:         str("DASHTEST"),
			AddressVersion: []byte{0x8c},
			ScriptVersion:  []byte{0x13},
			WIFVersion:     []byte{0xef},
			HDCoinType:     u32(1),
			ScriptVersions: map[ScriptType]XKeyVersions{
				ScriptP2PKH: {Xprv: 0x04358394, Xpub: 0x043587CF},
			},
			ClientKwargsTag: str("dash_testnet.json"),
		},
	})
}
