package wallet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by the Bitcoin protocol (Hash160)

	"github.com/olehkaliuzhnyi/cryptos/addr"
	"github.com/olehkaliuzhnyi/cryptos/bip32"
	"github.com/olehkaliuzhnyi/cryptos/coins"
	"github.com/olehkaliuzhnyi/cryptos/curve"
	"github.com/olehkaliuzhnyi/cryptos/pkg/models"
	"github.com/olehkaliuzhnyi/cryptos/txn"
)

// BTCGenerator generates Bitcoin addresses using BIP-44/BIP-32 derivation
// against the coins.Params table. Derivation path: m/44'/0'/0'/0/{index}.
// P2SH-P2WPKH and native segwit addresses are exercised directly through
// the addr package (addr.P2WPKHInP2SHAddress, addr.P2WPKHAddress) rather
// than through this generator, which only produces legacy P2PKH addresses.
type BTCGenerator struct {
	params coins.Params
}

// NewBTCGenerator returns a new Bitcoin address generator for mainnet.
func NewBTCGenerator() *BTCGenerator {
	p, err := coins.Lookup("BTC", false)
	if err != nil {
		panic(err) // BTC is always registered by coins/bitcoin.go's init
	}
	return &BTCGenerator{params: p}
}

// Network returns the Bitcoin network identifier.
func (g *BTCGenerator) Network() models.Network {
	return models.NetworkBTC
}

// GenerateFromSeed derives a Bitcoin address from a BIP-39 seed via
// m/44'/0'/0'/0/{index}.
func (g *BTCGenerator) GenerateFromSeed(seed []byte, index uint32) (*models.DerivedAddress, error) {
	path := fmt.Sprintf("m/44'/0'/0'/0/%d", index)

	key, err := deriveBIP32Key(seed, g.params.HDCoinType, index)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	pub := curve.Compress(key.Pub)
	address := addr.P2PKHAddress(g.params.AddressVersion, pub)

	return &models.DerivedAddress{
		Network:        models.NetworkBTC,
		Address:        address,
		DerivationPath: path,
		PublicKey:      hex.EncodeToString(pub),
	}, nil
}

// BTCSigner builds and signs a single-input, single-output legacy P2PKH
// transaction using the RFC 6979/BIP62 signing pipeline in package txn.
// Real UTXO selection and fee estimation are out of scope here (see
// config.Config.BTCDefaultFee for where a real wallet would plug those
// in); this signer spends a synthetic input 0 to demonstrate the full
// sign -> serialize -> txid path end to end.
type BTCSigner struct {
	params coins.Params
}

// NewBTCSigner returns a new Bitcoin transaction signer for mainnet or
// testnet.
func NewBTCSigner(mainnet bool) *BTCSigner {
	p, err := coins.Lookup("BTC", !mainnet)
	if err != nil {
		panic(err)
	}
	return &BTCSigner{params: p}
}

// Sign builds a 1-input/1-output legacy transaction paying tx.Amount to
// tx.To from the P2PKH output controlled by privateKey, signs input 0, and
// records the resulting txid (big-endian, display order) on tx.
func (s *BTCSigner) Sign(ctx context.Context, t *models.Transaction, privateKey []byte) (*models.Transaction, error) {
	priv := new(big.Int).SetBytes(privateKey)
	pub := curve.Compress(curve.PrivToPub(priv))

	destScript, err := p2pkhScriptForAddress(t.To, len(s.params.AddressVersion))
	if err != nil {
		return nil, fmt.Errorf("resolve destination script: %w", err)
	}
	prevScript := addr.P2PKHScript(hash160(pub)).Serialize()

	tr := &txn.Transaction{
		Version: 1,
		Inputs: []txn.TxInput{{
			PrevOut:  0,
			Sequence: 0xffffffff,
		}},
		Outputs: []txn.TxOutput{{
			Value:  t.Amount.Uint64(),
			Script: destScript,
		}},
	}

	if err := txn.SignInput(tr, 0, priv, prevScript, 0, nil, txn.SighashAll); err != nil {
		return nil, fmt.Errorf("sign input: %w", err)
	}

	txid := tr.TxID()
	t.TxHash = hex.EncodeToString(reverseBytes(txid[:]))
	t.Signed = true
	t.RawSigned = tr.Serialize()
	return t, nil
}

func deriveBIP32Key(seed []byte, coinType uint32, index uint32) (*bip32.ExtKey, error) {
	const hardened = uint32(1) << 31

	master, err := bip32.MasterFromSeed(seed)
	if err != nil {
		return nil, err
	}
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

func p2pkhScriptForAddress(address string, versionLen int) ([]byte, error) {
	_, payload, err := addr.Base58CheckDecode(address, versionLen)
	if err != nil {
		return nil, err
	}
	return addr.P2PKHScript(payload).Serialize(), nil
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// --- Hash160 and Base58Check helpers ---

func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripe := ripemd160.New()
	ripe.Write(sha[:])
	return ripe.Sum(nil)
}

func base58CheckEncode(version byte, payload []byte) string {
	return addr.Base58CheckEncode([]byte{version}, payload)
}
