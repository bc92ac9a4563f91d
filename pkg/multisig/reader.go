package multisig

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"msigdash/pkg/models"
)

// Caller issues read-only contract calls. *ethclient.Client satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Reader is a stateless accessor bound to (endpoint, contract address). Safe
// for concurrent use; each Sync is independent.
type Reader struct {
	caller  Caller
	address common.Address
	bound   bool
}

// NewReader binds a reader to a contract address. A malformed or empty
// address leaves the reader unbound: Sync then returns an empty snapshot
// without touching the network.
func NewReader(caller Caller, address string) *Reader {
	r := &Reader{caller: caller}
	if caller != nil && ValidAddress(address) {
		r.address = common.HexToAddress(address)
		r.bound = true
	}
	return r
}

// Bound reports whether the reader has a valid contract binding.
func (r *Reader) Bound() bool {
	return r.bound
}

// Sync fetches the complete contract state: four scalar reads in parallel,
// then one read per owner index and per transaction index, also in parallel.
// Assembly is positional regardless of completion order. Any sub-read
// failure aborts the whole sync; no partial snapshot is returned.
func (r *Reader) Sync(ctx context.Context) (models.Snapshot, error) {
	if !r.bound {
		return models.Snapshot{}, nil
	}

	var (
		ownerCount *big.Int
		txCount    *big.Int
		required   *big.Int
		balance    *big.Int
	)
	scalarErrs := make([]error, 4)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); ownerCount, scalarErrs[0] = r.callUint(ctx, "getOwnerCount") }()
	go func() { defer wg.Done(); txCount, scalarErrs[1] = r.callUint(ctx, "getTransactionCount") }()
	go func() { defer wg.Done(); required, scalarErrs[2] = r.callUint(ctx, "requiredSignatures") }()
	go func() { defer wg.Done(); balance, scalarErrs[3] = r.callUint(ctx, "getBalance") }()
	wg.Wait()

	for _, err := range scalarErrs {
		if err != nil {
			return models.Snapshot{}, err
		}
	}

	ownerTotal := int(ownerCount.Uint64())
	txTotal := int(txCount.Uint64())

	owners := make([]common.Address, ownerTotal)
	ownerErrs := make([]error, ownerTotal)
	txs := make([]models.Transaction, txTotal)
	txErrs := make([]error, txTotal)

	wg.Add(ownerTotal + txTotal)
	for i := 0; i < ownerTotal; i++ {
		go func(idx int) {
			defer wg.Done()
			owners[idx], ownerErrs[idx] = r.callOwner(ctx, idx)
		}(i)
	}
	for i := 0; i < txTotal; i++ {
		go func(idx int) {
			defer wg.Done()
			txs[idx], txErrs[idx] = r.callTransaction(ctx, idx)
		}(i)
	}
	wg.Wait()

	for _, err := range ownerErrs {
		if err != nil {
			return models.Snapshot{}, err
		}
	}
	for _, err := range txErrs {
		if err != nil {
			return models.Snapshot{}, err
		}
	}

	return models.Snapshot{
		Owners:             owners,
		Transactions:       txs,
		Balance:            balance,
		RequiredSignatures: required,
	}, nil
}

func (r *Reader) call(ctx context.Context, function string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(function, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", function, err)
	}
	raw, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &r.address, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	out, err := contractABI.Unpack(function, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", function, err)
	}
	return out, nil
}

func (r *Reader) callUint(ctx context.Context, function string) (*big.Int, error) {
	out, err := r.call(ctx, function)
	if err != nil {
		return nil, err
	}
	val, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", function, out[0])
	}
	return val, nil
}

func (r *Reader) callOwner(ctx context.Context, index int) (common.Address, error) {
	out, err := r.call(ctx, "owners", big.NewInt(int64(index)))
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("owners(%d): unexpected result type %T", index, out[0])
	}
	return addr, nil
}

func (r *Reader) callTransaction(ctx context.Context, index int) (models.Transaction, error) {
	out, err := r.call(ctx, "getTransaction", big.NewInt(int64(index)))
	if err != nil {
		return models.Transaction{}, err
	}
	if len(out) != 5 {
		return models.Transaction{}, fmt.Errorf("getTransaction(%d): expected 5 fields, got %d", index, len(out))
	}
	to, okTo := out[0].(common.Address)
	value, okValue := out[1].(*big.Int)
	data, okData := out[2].([]byte)
	executed, okExecuted := out[3].(bool)
	confirmations, okConf := out[4].(*big.Int)
	if !okTo || !okValue || !okData || !okExecuted || !okConf {
		return models.Transaction{}, fmt.Errorf("getTransaction(%d): malformed response", index)
	}
	return models.Transaction{
		ID:            uint64(index),
		To:            to,
		Value:         value,
		Data:          data,
		Executed:      executed,
		Confirmations: confirmations,
	}, nil
}
