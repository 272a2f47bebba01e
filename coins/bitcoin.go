package coins

// Bitcoin mainnet/testnet parameters, grounded on
// original_source/cryptos/coins_async/bitcoin.py.
func init() {
	register(Params{
		Symbol:          "BTC",
		DisplayName:     "Bitcoin",
		AddressVersion:  []byte{0x00},
		ScriptVersion:   []byte{0x05},
		WIFVersion:      []byte{0x80},
		Bech32HRP:       "bc",
		SegwitSupported: true,
		HDCoinType:      0,
		MinimumFee:      450,
		ClientKwargsTag: "bitcoin.json",
		ScriptVersions: map[ScriptType]XKeyVersions{
			ScriptP2PKH:      {Xprv: 0x0488ADE4, Xpub: 0x0488B21E},
			ScriptP2WPKHP2SH: {Xprv: 0x049D7878, Xpub: 0x049D7CB2},
			ScriptP2WSHP2SH:  {Xprv: 0x0295B005, Xpub: 0x0295B43F},
			ScriptP2WPKH:     {Xprv: 0x04B2430C, Xpub: 0x04B24746},
			ScriptP2WSH:      {Xprv: 0x02AA7A99, Xpub: 0x02AA7ED3},
		},
		TestnetOverrides: &Overrides{
			DisplayName:    str("Bitcoin Testnet"),
			Symbol:         str("BTCTEST"),
			AddressVersion: []byte{0x6f},
			ScriptVersion:  []byte{0xc4},
			Bech32HRP:      str("tb"),
			HDCoinType:     u32(1),
			WIFVersion:     []byte{0xef},
			MinimumFee:     u64(1000),
			// p2wsh-p2sh, p2wpkh and p2wsh below reuse the mainnet p2wsh-p2sh/
			// p2wsh prefixes and the p2pkh testnet prefix respectively, rather
			// than carrying their own vprv/vpub-style bytes. That's exactly
			// what the original coin table's own testnet_overrides does; it is
			// reproduced here as-is rather than "corrected".
			ScriptVersions: map[ScriptType]XKeyVersions{
				ScriptP2PKH:      {Xprv: 0x04358394, Xpub: 0x043587CF},
				ScriptP2WPKHP2SH: {Xprv: 0x044A4E28, Xpub: 0x044A5262},
				ScriptP2WSHP2SH:  {Xprv: 0x0295B005, Xpub: 0x0295B43F},
				ScriptP2WPKH:     {Xprv: 0x04358394, Xpub: 0x043587CF},
				ScriptP2WSH:      {Xprv: 0x02AA7A99, Xpub: 0x02AA7ED3},
			},
			ClientKwargsTag: str("bitcoin_testnet.json"),
		},
	})
}
