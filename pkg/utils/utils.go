package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatWei renders a wei amount as a decimal ether string with the given
// number of fractional digits shown. Trailing zeros are kept so columns line
// up in the dashboard.
func FormatWei(wei *big.Int, decimals int) string {
	if wei == nil {
		return "0"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, big.NewFloat(1e18))
	return AddCommas(f.Text('f', decimals))
}

// WeiToFloat converts a wei amount to a float64 ether value for graphing.
func WeiToFloat(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, big.NewFloat(1e18))
	val, _ := f.Float64()
	return val
}

// ShortenAddress collapses a long hex string to its ends, 0x1234...abcd.
func ShortenAddress(value string, size int) string {
	if value == "" {
		return ""
	}
	if len(value) <= size*2 {
		return value
	}
	return value[:size] + "..." + value[len(value)-4:]
}

// TruncateString cuts a string to num runes with an ellipsis.
func TruncateString(str string, num int) string {
	if len(str) <= num {
		return str
	}
	if num <= 3 {
		return str[:num]
	}
	return str[0:num-3] + "..."
}

// AddCommas inserts thousands separators into the integer part of a decimal
// string.
func AddCommas(s string) string {
	if len(s) == 0 {
		return s
	}
	parts := strings.Split(s, ".")
	integerPart := parts[0]
	sign := ""
	if strings.HasPrefix(integerPart, "-") {
		sign = "-"
		integerPart = integerPart[1:]
	}

	n := len(integerPart)
	if n <= 3 {
		return s
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := n % 3
	if remainder > 0 {
		result.WriteString(integerPart[:remainder])
		result.WriteString(",")
	}
	for i := remainder; i < n; i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(integerPart[i : i+3])
	}

	if len(parts) > 1 {
		result.WriteString(".")
		result.WriteString(parts[1])
	}
	return result.String()
}

// FormatFloat renders a float with separators, for graph axis labels.
func FormatFloat(f float64, decimals int) string {
	return AddCommas(fmt.Sprintf("%.*f", decimals, f))
}
