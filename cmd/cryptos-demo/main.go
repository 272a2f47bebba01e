// Command cryptos-demo exercises the facade end to end: derive a BIP32
// seed, print P2PKH/P2SH-P2WPKH/P2WPKH addresses for a coin, build a 2-of-2
// multisig redeem script and its P2SH address, and (with -sign) sign a
// synthetic transaction and print its wire hex. slog lives only in this
// orchestration layer; the crypto core packages never log.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/olehkaliuzhnyi/cryptos"
	"github.com/olehkaliuzhnyi/cryptos/bip32"
	"github.com/olehkaliuzhnyi/cryptos/bip39"
	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/internal/config"
	"github.com/olehkaliuzhnyi/cryptos/txn"
)

func main() {
	var (
		mnemonic = flag.String("mnemonic", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", "BIP39 mnemonic")
		coin     = flag.String("coin", "BTC", "coin symbol")
		testnet  = flag.Bool("testnet", false, "use the coin's testnet parameters")
		index    = flag.Uint("index", 0, "BIP44 address index")
		sign     = flag.Bool("sign", false, "sign a synthetic demo transaction and print its wire hex")
	)
	flag.Parse()

	logger := slog.Default().With("component", "cryptos-demo")
	cfg := config.FromEnv()
	logger.Info("loaded config", "context_timeout", cfg.ContextTimeout, "btc_default_fee", cfg.BTCDefaultFee)

	testnetSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "testnet" {
			testnetSet = true
		}
	})
	if !testnetSet {
		*testnet = !cfg.BTCMainnet
	}

	c, err := cryptos.New(*coin, *testnet)
	if err != nil {
		logger.Error("unknown coin", "coin", *coin, "error", err)
		os.Exit(1)
	}

	seed := bip39.MnemonicToSeed(*mnemonic, "")
	master, err := bip32.MasterFromSeed(seed)
	if err != nil {
		logger.Error("master key derivation failed", "error", err)
		os.Exit(1)
	}

	child, err := deriveAccountKey(master, c.Params.HDCoinType, uint32(*index))
	if err != nil {
		logger.Error("child key derivation failed", "error", err)
		os.Exit(1)
	}

	priv := child.Priv
	address := c.PrivToAddr(priv)
	logger.Info("derived address", "coin", c.Params.Symbol, "index", *index, "p2pkh", address)

	if c.Params.SegwitSupported {
		if p2sh, err := c.PrivToP2WPKHP2SH(priv); err == nil {
			fmt.Printf("p2wpkh-in-p2sh: %s\n", p2sh)
		}
		if bech32, err := c.PrivToP2WPKH(priv); err == nil {
			fmt.Printf("p2wpkh:         %s\n", bech32)
		}
	}
	fmt.Printf("p2pkh:          %s\n", address)

	secondPriv := new(big.Int).Add(priv, big.NewInt(1))
	secondPriv.Mod(secondPriv, curve.N)
	pubA := curve.Compress(curve.PrivToPub(priv))
	pubB := curve.Compress(curve.PrivToPub(secondPriv))
	multisigScript, err := cryptos.MkMultisigScript([][]byte{pubA, pubB}, 2)
	if err != nil {
		logger.Error("multisig script build failed", "error", err)
		os.Exit(1)
	}
	redeemBytes := cryptos.SerializeScript(multisigScript)
	fmt.Printf("2-of-2 P2SH:    %s\n", c.P2SHScriptAddr(redeemBytes))

	if *sign {
		tx, err := buildAndSign(c, priv)
		if err != nil {
			logger.Error("demo sign failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("signed tx hex:  %s\n", hex.EncodeToString(cryptos.Serialize(tx)))
	}
}

func deriveAccountKey(master *bip32.ExtKey, coinType, index uint32) (*bip32.ExtKey, error) {
	const hardened = uint32(1) << 31
	purpose, err := bip32.CKD(master, hardened+44)
	if err != nil {
		return nil, err
	}
	coin, err := bip32.CKD(purpose, hardened+coinType)
	if err != nil {
		return nil, err
	}
	account, err := bip32.CKD(coin, hardened+0)
	if err != nil {
		return nil, err
	}
	change, err := bip32.CKD(account, 0)
	if err != nil {
		return nil, err
	}
	return bip32.CKD(change, index)
}

func buildAndSign(c *cryptos.Coin, priv *big.Int) (*txn.Transaction, error) {
	prevScript, err := c.AddrToScript(c.PrivToAddr(priv))
	if err != nil {
		return nil, err
	}
	tx, err := c.MkTx(
		[]cryptos.TxInputSpec{{Txid: strings.Repeat("00", 32), Vout: 0, Value: 100_000}},
		[]cryptos.TxOutputSpec{{AddressOrScriptHex: c.PrivToAddr(priv), Value: 90_000}},
	)
	if err != nil {
		return nil, err
	}
	if err := c.Sign(tx, 0, priv, prevScript, 100_000); err != nil {
		return nil, err
	}
	return tx, nil
}
