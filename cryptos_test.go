package cryptos

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/cryptos/curve"
)

func pointOf(priv *big.Int) *curve.Point { return curve.PrivToPub(priv) }

func pubOf(priv *big.Int) []byte { return curve.Compress(curve.PrivToPub(priv)) }

func TestNewUnknownCoin(t *testing.T) {
	_, err := New("NOPE", false)
	if err == nil {
		t.Fatal("expected an error for an unregistered symbol")
	}
}

func TestPrivToAddrStartsWithOne(t *testing.T) {
	c, err := New("BTC", false)
	require.NoError(t, err)
	a := c.PrivToAddr(big.NewInt(12345))
	if !strings.HasPrefix(a, "1") {
		t.Errorf("mainnet P2PKH address %q should start with '1'", a)
	}
}

func TestPrivToP2WPKHP2SHStartsWithThree(t *testing.T) {
	c, err := New("BTC", false)
	require.NoError(t, err)
	a, err := c.PrivToP2WPKHP2SH(big.NewInt(12345))
	require.NoError(t, err)
	if !strings.HasPrefix(a, "3") {
		t.Errorf("P2SH-wrapped segwit address %q should start with '3'", a)
	}
}

func TestPrivToP2WPKHHasBechPrefix(t *testing.T) {
	c, err := New("BTC", false)
	require.NoError(t, err)
	a, err := c.PrivToP2WPKH(big.NewInt(12345))
	require.NoError(t, err)
	if !strings.HasPrefix(a, "bc1") {
		t.Errorf("native segwit address %q should start with 'bc1'", a)
	}
}

func TestAddrToScriptScriptToAddrRoundTrip(t *testing.T) {
	c, err := New("BTC", false)
	require.NoError(t, err)
	addr := c.PrivToAddr(big.NewInt(98765))

	scriptBytes, err := c.AddrToScript(addr)
	require.NoError(t, err)

	back, err := c.ScriptToAddr(scriptBytes)
	require.NoError(t, err)
	require.Equal(t, addr, back)
}

func TestMkTxSignAndVerify(t *testing.T) {
	c, err := New("BTC", false)
	require.NoError(t, err)

	priv := big.NewInt(555555)
	srcAddr := c.PrivToAddr(priv)
	prevScript, err := c.AddrToScript(srcAddr)
	require.NoError(t, err)

	destAddr := c.PrivToAddr(big.NewInt(777777))

	tx, err := c.MkTx(
		[]TxInputSpec{{Txid: strings.Repeat("ab", 32), Vout: 0, Value: 100000}},
		[]TxOutputSpec{{AddressOrScriptHex: destAddr, Value: 90000}},
	)
	require.NoError(t, err)

	err = c.Sign(tx, 0, priv, prevScript, 0)
	require.NoError(t, err)
	require.NotEmpty(t, tx.Inputs[0].Script)

	scriptSig, err := DeserializeScript(tx.Inputs[0].Script)
	require.NoError(t, err)
	require.Len(t, scriptSig.Elements, 2)
	ok, err := VerifyTxInput(tx, 0, prevScript, scriptSig.Elements[0].Data, scriptSig.Elements[1].Data)
	require.NoError(t, err)
	require.True(t, ok)

	data := Serialize(tx)
	parsed, err := Deserialize(data)
	require.NoError(t, err)
	require.Equal(t, tx.TxID(), parsed.TxID())
}

func TestMkMultisigScriptRoundTripsThroughSerializeScript(t *testing.T) {
	priv1 := big.NewInt(1)
	priv2 := big.NewInt(2)
	pub1, pub2 := pubOf(priv1), pubOf(priv2)

	s, err := MkMultisigScript([][]byte{pub1, pub2}, 2)
	require.NoError(t, err)

	data := SerializeScript(s)
	parsed, err := DeserializeScript(data)
	require.NoError(t, err)
	require.Equal(t, s.Elements, parsed.Elements)
}

func TestEcdsaRawSignVerifyRecoverRoundTrip(t *testing.T) {
	priv := big.NewInt(4242)
	pub := pointOf(priv)
	var h [32]byte
	h[0] = 0x01
	h[31] = 0x02

	sig, err := EcdsaRawSign(h[:], priv)
	require.NoError(t, err)
	require.True(t, EcdsaRawVerify(h[:], sig, pub))

	recovered, err := EcdsaRawRecover(h[:], sig)
	require.NoError(t, err)
	require.Equal(t, pub.X, recovered.X)
	require.Equal(t, pub.Y, recovered.Y)
}
