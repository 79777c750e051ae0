package util

import (
	"fmt"
)

// FormatTokens renders a token count compactly: 1234 -> 1.2K, 5600000 -> 5.6M.
func FormatTokens(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatCost renders a dollar amount with precision scaled to its magnitude,
// so sub-cent costs stay distinguishable.
func FormatCost(c float64) string {
	if c >= 1 {
		return fmt.Sprintf("$%.2f", c)
	}
	if c >= 0.01 {
		return fmt.Sprintf("$%.3f", c)
	}
	return fmt.Sprintf("$%.4f", c)
}
