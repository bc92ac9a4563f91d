package multisig

import (
	"errors"

	"github.com/ethereum/go-ethereum/rpc"
)

// HumanizeError extracts a short, displayable message from a remote failure.
// JSON-RPC errors carrying revert data get the data appended; anything else
// falls back to the error's own message. Returns "" for nil so callers can
// substitute a localized fallback.
func HumanizeError(err error) string {
	if err == nil {
		return ""
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok && data != "" {
			return dataErr.Error() + " (" + data + ")"
		}
	}
	return err.Error()
}
