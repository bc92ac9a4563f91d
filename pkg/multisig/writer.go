package multisig

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// receiptPollInterval is how often WaitConfirmed checks for a mined receipt.
var receiptPollInterval = 500 * time.Millisecond

// TxBackend covers the node operations needed to build, send, and confirm a
// transaction. *ethclient.Client satisfies it.
type TxBackend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Writer submits state-changing calls against the bound contract, signed
// with a locally held key.
type Writer struct {
	backend TxBackend
	key     *ecdsa.PrivateKey
	chainID *big.Int
	address common.Address
	bound   bool
}

// NewWriter binds a writer to (backend, signing key, chain id, contract
// address). Key may be nil; Submit then fails the signer precondition.
func NewWriter(backend TxBackend, key *ecdsa.PrivateKey, chainID *big.Int, address string) *Writer {
	w := &Writer{backend: backend, key: key, chainID: chainID}
	if backend != nil && ValidAddress(address) {
		w.address = common.HexToAddress(address)
		w.bound = true
	}
	return w
}

// HasSigner reports whether a signing key is loaded.
func (w *Writer) HasSigner() bool {
	return w.key != nil
}

// Account returns the signing key's address.
func (w *Writer) Account() common.Address {
	if w.key == nil {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(w.key.PublicKey)
}

// Submit packs, signs, and broadcasts one contract call, returning the
// transaction hash as soon as the node accepts it. An empty function name
// sends a plain value transfer to the contract (deposit). No retries; the
// caller decides whether to re-prompt the user.
func (w *Writer) Submit(ctx context.Context, function string, args []interface{}, value *big.Int) (common.Hash, error) {
	if w.key == nil {
		return common.Hash{}, ErrNoSigner
	}
	if !w.bound {
		return common.Hash{}, ErrNoContract
	}
	if value == nil {
		value = big.NewInt(0)
	}

	var data []byte
	if function != "" {
		packed, err := contractABI.Pack(function, args...)
		if err != nil {
			return common.Hash{}, fmt.Errorf("packing %s: %w", function, err)
		}
		data = packed
	}

	from := w.Account()
	nonce, err := w.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetching nonce: %w", err)
	}
	gasPrice, err := w.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetching gas price: %w", err)
	}
	gasLimit, err := w.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &w.address,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return common.Hash{}, err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &w.address,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.NewEIP155Signer(w.chainID), w.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing transaction: %w", err)
	}
	if err := w.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}

// WaitConfirmed polls until the transaction is mined. A receipt with failed
// status surfaces as an error. No client-side timeout; the caller's context
// governs.
func (w *Writer) WaitConfirmed(ctx context.Context, hash common.Hash) error {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := w.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return fmt.Errorf("transaction %s reverted", hash.Hex())
			}
			return nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
