package utils

import (
	"math/big"
	"testing"
)

func TestFormatWei(t *testing.T) {
	tests := []struct {
		wei      string
		decimals int
		expected string
	}{
		{"1000000000000000000", 2, "1.00"},
		{"1500000000000000000", 4, "1.5000"},
		{"0", 2, "0.00"},
		{"1234000000000000000000", 2, "1,234.00"},
	}

	for _, tt := range tests {
		wei, _ := new(big.Int).SetString(tt.wei, 10)
		result := FormatWei(wei, tt.decimals)
		if result != tt.expected {
			t.Errorf("FormatWei(%s, %d) = %q; want %q", tt.wei, tt.decimals, result, tt.expected)
		}
	}

	if FormatWei(nil, 2) != "0" {
		t.Error("FormatWei(nil) should be 0")
	}
}

func TestShortenAddress(t *testing.T) {
	tests := []struct {
		input    string
		size     int
		expected string
	}{
		{"0x1111111111111111111111111111111111111111", 6, "0x1111...1111"},
		{"0xabcd", 6, "0xabcd"},
		{"", 6, ""},
	}

	for _, tt := range tests {
		result := ShortenAddress(tt.input, tt.size)
		if result != tt.expected {
			t.Errorf("ShortenAddress(%q, %d) = %q; want %q", tt.input, tt.size, result, tt.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		length   int
		expected string
	}{
		{"hello world", 5, "he..."},
		{"short", 10, "short"},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		result := TruncateString(tt.input, tt.length)
		if result != tt.expected {
			t.Errorf("TruncateString(%q, %d) = %q; want %q", tt.input, tt.length, result, tt.expected)
		}
	}
}

func TestAddCommas(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123"},
		{"1234", "1,234"},
		{"1234567", "1,234,567"},
		{"1234.56", "1,234.56"},
		{"-1234", "-1,234"},
		{"", ""},
	}

	for _, tt := range tests {
		result := AddCommas(tt.input)
		if result != tt.expected {
			t.Errorf("AddCommas(%q) = %q; want %q", tt.input, result, tt.expected)
		}
	}
}

func TestWeiToFloat(t *testing.T) {
	wei, _ := new(big.Int).SetString("2500000000000000000", 10)
	if got := WeiToFloat(wei); got != 2.5 {
		t.Errorf("WeiToFloat = %v; want 2.5", got)
	}
	if WeiToFloat(nil) != 0 {
		t.Error("WeiToFloat(nil) should be 0")
	}
}
