// Package config holds boot-time environment defaults and the persisted user
// preferences file.
package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// PrefsFileName is the preferences file kept in the user's home directory.
const PrefsFileName = ".msigdash.json"

// DefaultChainID is used when CHAIN_ID is unset or not a positive integer.
const DefaultChainID = 11155111

// BootConfig carries the runtime defaults sourced from the environment. All
// of it remains user-editable in the dashboard afterwards.
type BootConfig struct {
	ChainID         int64
	ContractAddress string
	RPCURL          string
	PrivateKey      string
}

// FromEnv loads .env when present and reads the boot defaults. A missing or
// invalid CHAIN_ID falls back to the public test network default; contract
// address and RPC default to empty.
func FromEnv() BootConfig {
	_ = godotenv.Load(".env")

	cfg := BootConfig{
		ChainID:         DefaultChainID,
		ContractAddress: strings.TrimSpace(os.Getenv("CONTRACT_ADDRESS")),
		RPCURL:          strings.TrimSpace(os.Getenv("RPC_URL")),
		PrivateKey:      strings.TrimSpace(os.Getenv("PRIVATE_KEY")),
	}
	if raw := strings.TrimSpace(os.Getenv("CHAIN_ID")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			cfg.ChainID = id
		}
	}
	return cfg
}

// Preferences is the durable per-user state. Only the display language is
// persisted; everything else lives in the environment or in memory.
type Preferences struct {
	Language string `json:"language"`
}

// PrefsPath returns the preferences file location, honoring a custom path.
func PrefsPath(customPath string) (string, error) {
	if customPath != "" {
		return customPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, PrefsFileName), nil
}

// LoadPreferences reads the preferences file. Absence or corruption is not an
// error: the caller falls back to a locale heuristic.
func LoadPreferences(path string) Preferences {
	f, err := os.Open(path)
	if err != nil {
		return Preferences{}
	}
	defer func() { _ = f.Close() }()
	return decodePreferences(f)
}

func decodePreferences(r io.Reader) Preferences {
	var p Preferences
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Preferences{}
	}
	return p
}

// SavePreferences writes the preferences atomically (tmp + rename).
func SavePreferences(p Preferences, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
