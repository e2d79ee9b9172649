package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

const etherDecimals = 18

// ParseWei reads an amount in wei ("10000000000000000") or in ether with an
// explicit suffix ("0.01ether", "0.01 ether"). Negative amounts are rejected.
func ParseWei(s string) (*big.Int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	if !strings.HasSuffix(s, "ether") {
		wei, ok := new(big.Int).SetString(s, 10)
		if !ok || wei.Sign() < 0 {
			return nil, fmt.Errorf("invalid wei amount %q", s)
		}
		return wei, nil
	}

	num := strings.TrimSpace(strings.TrimSuffix(s, "ether"))
	whole, frac, _ := strings.Cut(num, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, etherDecimals)
	}
	frac += strings.Repeat("0", etherDecimals-len(frac))

	w, ok := new(big.Int).SetString(whole, 10)
	if !ok || w.Sign() < 0 {
		return nil, fmt.Errorf("invalid ether amount %q", s)
	}
	f, ok := new(big.Int).SetString(frac, 10)
	if !ok || f.Sign() < 0 {
		return nil, fmt.Errorf("invalid ether amount %q", s)
	}
	return w.Mul(w, big.NewInt(params.Ether)).Add(w, f), nil
}

// FormatEther renders wei as a decimal ether amount without trailing zeros.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	neg := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)

	whole, frac := new(big.Int).QuoRem(abs, big.NewInt(params.Ether), new(big.Int))
	out := whole.String()
	if frac.Sign() != 0 {
		fs := frac.String()
		fs = strings.Repeat("0", etherDecimals-len(fs)) + fs
		out += "." + strings.TrimRight(fs, "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}
