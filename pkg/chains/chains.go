// Package chains maps chain identifiers to network definitions.
package chains

import "fmt"

// LocalRPC is the fallback endpoint used when an unknown chain id is
// configured without an RPC override.
const LocalRPC = "http://127.0.0.1:8545"

// Network describes an EVM network endpoint.
type Network struct {
	ChainID int64  `json:"chain_id"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	RPCURL  string `json:"rpc_url"`
}

// known holds canonical definitions for the public networks the panel
// recognizes out of the box.
var known = map[int64]Network{
	1:        {ChainID: 1, Name: "Ethereum", Symbol: "ETH", RPCURL: "https://eth.llamarpc.com"},
	10:       {ChainID: 10, Name: "OP Mainnet", Symbol: "ETH", RPCURL: "https://mainnet.optimism.io"},
	137:      {ChainID: 137, Name: "Polygon", Symbol: "POL", RPCURL: "https://polygon-rpc.com"},
	8453:     {ChainID: 8453, Name: "Base", Symbol: "ETH", RPCURL: "https://mainnet.base.org"},
	17000:    {ChainID: 17000, Name: "Holesky", Symbol: "ETH", RPCURL: "https://ethereum-holesky-rpc.publicnode.com"},
	31337:    {ChainID: 31337, Name: "Anvil", Symbol: "ETH", RPCURL: LocalRPC},
	42161:    {ChainID: 42161, Name: "Arbitrum One", Symbol: "ETH", RPCURL: "https://arb1.arbitrum.io/rpc"},
	11155111: {ChainID: 11155111, Name: "Sepolia", Symbol: "ETH", RPCURL: "https://ethereum-sepolia-rpc.publicnode.com"},
}

// Resolve returns the canonical definition for a known chain id, or
// synthesizes one named after the id. The synthetic network uses rpcOverride
// when non-empty, else the local loopback default. Pure function, always
// produces a value.
func Resolve(chainID int64, rpcOverride string) Network {
	if n, ok := known[chainID]; ok {
		return n
	}
	rpc := rpcOverride
	if rpc == "" {
		rpc = LocalRPC
	}
	return Network{
		ChainID: chainID,
		Name:    fmt.Sprintf("Chain %d", chainID),
		Symbol:  "ETH",
		RPCURL:  rpc,
	}
}

// Endpoint returns the RPC URL to dial: the user override when set, else the
// network default, else the local loopback default.
func (n Network) Endpoint(rpcOverride string) string {
	if rpcOverride != "" {
		return rpcOverride
	}
	if n.RPCURL != "" {
		return n.RPCURL
	}
	return LocalRPC
}

// Known reports whether the chain id belongs to the canonical set.
func Known(chainID int64) bool {
	_, ok := known[chainID]
	return ok
}
