package multisig

import (
	"encoding/hex"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

// Input and precondition failures. Detected before any network call; the UI
// maps them to localized messages.
var (
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrInvalidData      = errors.New("data must be 0x-prefixed even-length hex")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNoSigner         = errors.New("no signing key loaded")
	ErrNoContract       = errors.New("no valid contract address configured")
)

// EtherDecimals is the base-unit scale of the native currency.
const EtherDecimals = 18

var addressRegex = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// ValidAddress reports whether s is a well-formed 20-byte hex address.
func ValidAddress(s string) bool {
	return addressRegex.MatchString(s)
}

// NormalizeCallData turns user-entered hex calldata into bytes. An empty
// input defaults to "0x" (no calldata); otherwise the input must be
// 0x-prefixed even-length hex.
func NormalizeCallData(s string) ([]byte, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		trimmed = "0x"
	}
	if !strings.HasPrefix(trimmed, "0x") {
		return nil, ErrInvalidData
	}
	payload := trimmed[2:]
	if payload == "" {
		return []byte{}, nil
	}
	data, err := hex.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidData
	}
	return data, nil
}

// ParseEther converts a human-entered decimal amount to wei. Rejects empty,
// negative, and non-numeric input; fractional digits beyond 18 places are
// truncated.
func ParseEther(amount string) (*big.Int, error) {
	return parseDecimal(amount, EtherDecimals)
}

func parseDecimal(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, ErrInvalidAmount
	}
	if strings.HasPrefix(amount, "-") {
		return nil, ErrInvalidAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return nil, ErrInvalidAmount
	}

	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, c := range intPart {
		if c < '0' || c > '9' {
			return nil, ErrInvalidAmount
		}
	}

	intVal, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, ErrInvalidAmount
	}
	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	result := new(big.Int).Mul(intVal, multiplier)

	if decPart != "" {
		for _, c := range decPart {
			if c < '0' || c > '9' {
				return nil, ErrInvalidAmount
			}
		}
		for len(decPart) < decimals {
			decPart += "0"
		}
		decPart = decPart[:decimals]

		decVal, ok := new(big.Int).SetString(decPart, 10)
		if !ok {
			return nil, ErrInvalidAmount
		}
		result.Add(result, decVal)
	}

	return result, nil
}
