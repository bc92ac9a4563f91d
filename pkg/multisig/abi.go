// Package multisig binds the custody contract's fixed function interface to
// typed read and write clients.
package multisig

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABIJSON is the custody contract's function schema. It must match
// the deployed contract exactly; the dashboard has no other knowledge of it.
const contractABIJSON = `[
  {"type":"function","name":"getOwnerCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getTransactionCount","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getTransaction","stateMutability":"view","inputs":[{"name":"_txId","type":"uint256"}],"outputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"executed","type":"bool"},{"name":"numConfirmations","type":"uint256"}]},
  {"type":"function","name":"owners","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"type":"address"}]},
  {"type":"function","name":"requiredSignatures","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"getBalance","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},
  {"type":"function","name":"createTransaction","stateMutability":"nonpayable","inputs":[{"name":"_to","type":"address"},{"name":"_value","type":"uint256"},{"name":"_data","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"confirmTransaction","stateMutability":"nonpayable","inputs":[{"name":"_txId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"revokeConfirmation","stateMutability":"nonpayable","inputs":[{"name":"_txId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"executeTransaction","stateMutability":"nonpayable","inputs":[{"name":"_txId","type":"uint256"}],"outputs":[]}
]`

var contractABI = mustParseABI()

func mustParseABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(contractABIJSON))
	if err != nil {
		panic("multisig: invalid contract ABI: " + err.Error())
	}
	return parsed
}

// ABI exposes the parsed contract interface, for callers that pack their own
// calldata (e.g. tests).
func ABI() abi.ABI {
	return contractABI
}
