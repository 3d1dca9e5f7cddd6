package display

import (
	"fmt"
	"math"
	"math/big"
)

// FormatSize returns the short decimal size used in per-file progress lines:
// one decimal of MB (10^6 bytes) from 1,000,000 bytes up, otherwise whole KB
// (10^3 bytes). Both round the exact binary value of the quotient with ties
// going up, so 1,150,000 bytes (1.1499... as a float64) prints as "1.1 MB".
func FormatSize(bytes int64) string {
	if bytes >= 1_000_000 {
		return oneDecimal(float64(bytes)/1e6) + " MB"
	}
	return fmt.Sprintf("%.0f KB", math.Round(float64(bytes)/1e3))
}

// SavedPercent returns how much smaller after is than before, in whole
// percent. Growth yields a negative value. A zero-byte before yields 0.
func SavedPercent(before, after int64) int {
	if before <= 0 {
		return 0
	}
	return int(math.Round(float64(before-after) / float64(before) * 100))
}

// FormatSizeWithSign prefixes FormatSize with + or - for delta display.
func FormatSizeWithSign(bytes int64) string {
	switch {
	case bytes > 0:
		return "+" + FormatSize(bytes)
	case bytes < 0:
		return "-" + FormatSize(-bytes)
	default:
		return FormatSize(0)
	}
}

// oneDecimal formats a non-negative v with one decimal. Scaling by ten in
// float64 can carry 1.1499... across the tie, so the arithmetic is exact.
func oneDecimal(v float64) string {
	tenths := new(big.Float).SetPrec(128).SetFloat64(v)
	tenths.Mul(tenths, big.NewFloat(10))

	n, _ := tenths.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(tenths, new(big.Float).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	whole, tenth := new(big.Int).QuoRem(n, big.NewInt(10), new(big.Int))
	return whole.String() + "." + tenth.String()
}
