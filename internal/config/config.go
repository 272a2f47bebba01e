package config

import (
	"math/big"
	"os"
	"strconv"
	"time"
)

// Config holds configurable parameters for the cryptos-demo command and
// the wallet/derivation layer.
type Config struct {
	// ContextTimeout bounds any operation that accepts a context.Context
	// (presently only BTCSigner.Sign, which ignores it directly but takes
	// one for parity with a real signer that would call out to an HSM).
	ContextTimeout time.Duration

	// BTCDefaultFee is the satoshi fee used when no on-chain estimation is
	// available. Fee estimation heuristics themselves are out of scope;
	// this is a fixed fallback a caller may consult.
	BTCDefaultFee *big.Int

	// BTCMainnet selects mainnet (true) or testnet (false) parameters when
	// a coin symbol is resolved without an explicit -testnet flag.
	BTCMainnet bool
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		ContextTimeout: 15 * time.Second,
		BTCDefaultFee:  big.NewInt(10_000), // 10000 satoshi
		BTCMainnet:     true,
	}
}

// FromEnv returns a Config populated from environment variables, falling
// back to defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("CONTEXT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ContextTimeout = d
		}
	}
	if v := os.Getenv("BTC_DEFAULT_FEE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.BTCDefaultFee = big.NewInt(n)
		}
	}
	if v := os.Getenv("BTC_MAINNET"); v == "false" {
		cfg.BTCMainnet = false
	}

	return cfg
}
