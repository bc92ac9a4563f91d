package multisig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

type ledgerTx struct {
	to            common.Address
	value         *big.Int
	data          []byte
	executed      bool
	confirmations *big.Int
}

// fakeLedger answers eth_call requests by decoding the packed selector and
// arguments against the contract ABI, the same way a node would.
type fakeLedger struct {
	owners   []common.Address
	txs      []ledgerTx
	required *big.Int
	balance  *big.Int

	failOn  string
	stagger bool
	calls   int32
}

func (f *fakeLedger) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	atomic.AddInt32(&f.calls, 1)

	var method abi.Method
	found := false
	for _, m := range contractABI.Methods {
		if len(msg.Data) >= 4 && bytes.Equal(m.ID, msg.Data[:4]) {
			method = m
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown selector %x", msg.Data)
	}
	if method.Name == f.failOn {
		return nil, errors.New("call reverted")
	}

	switch method.Name {
	case "getOwnerCount":
		return method.Outputs.Pack(big.NewInt(int64(len(f.owners))))
	case "getTransactionCount":
		return method.Outputs.Pack(big.NewInt(int64(len(f.txs))))
	case "requiredSignatures":
		return method.Outputs.Pack(f.required)
	case "getBalance":
		return method.Outputs.Pack(f.balance)
	case "owners":
		in, err := method.Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		idx := in[0].(*big.Int).Int64()
		if f.stagger {
			// Later indexes answer first to surface ordering bugs.
			time.Sleep(time.Duration(len(f.owners)-int(idx)) * 3 * time.Millisecond)
		}
		return method.Outputs.Pack(f.owners[idx])
	case "getTransaction":
		in, err := method.Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		idx := in[0].(*big.Int).Int64()
		if f.stagger {
			time.Sleep(time.Duration(len(f.txs)-int(idx)) * 3 * time.Millisecond)
		}
		tx := f.txs[idx]
		return method.Outputs.Pack(tx.to, tx.value, tx.data, tx.executed, tx.confirmations)
	}
	return nil, fmt.Errorf("unhandled method %s", method.Name)
}

func ownerAddr(i byte) common.Address {
	var a common.Address
	for j := range a {
		a[j] = i
	}
	return a
}

func TestReader_Unbound(t *testing.T) {
	ledger := &fakeLedger{}

	for _, addr := range []string{"", "0x", "not-an-address"} {
		r := NewReader(ledger, addr)
		assert.False(t, r.Bound(), addr)

		snap, err := r.Sync(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, snap.Owners)
		assert.Empty(t, snap.Transactions)
	}
	assert.Zero(t, atomic.LoadInt32(&ledger.calls), "unbound reader must not touch the network")
}

func TestReader_Sync(t *testing.T) {
	ledger := &fakeLedger{
		owners: []common.Address{ownerAddr(1), ownerAddr(2)},
		txs: []ledgerTx{
			{
				to:            ownerAddr(9),
				value:         big.NewInt(1500000000000000000),
				data:          []byte{0xde, 0xad},
				executed:      false,
				confirmations: big.NewInt(1),
			},
		},
		required: big.NewInt(2),
		balance:  big.NewInt(42),
	}

	r := NewReader(ledger, testContract)
	require.True(t, r.Bound())

	snap, err := r.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []common.Address{ownerAddr(1), ownerAddr(2)}, snap.Owners)
	assert.Zero(t, snap.Balance.Cmp(big.NewInt(42)))
	assert.Zero(t, snap.RequiredSignatures.Cmp(big.NewInt(2)))

	require.Len(t, snap.Transactions, 1)
	tx := snap.Transactions[0]
	assert.Equal(t, uint64(0), tx.ID)
	assert.Equal(t, ownerAddr(9), tx.To)
	assert.Equal(t, "1500000000000000000", tx.Value.String())
	assert.Equal(t, []byte{0xde, 0xad}, tx.Data)
	assert.False(t, tx.Executed)
	assert.Zero(t, tx.Confirmations.Cmp(big.NewInt(1)))

	// 4 scalars + 2 owners + 1 transaction.
	assert.Equal(t, int32(7), atomic.LoadInt32(&ledger.calls))
}

func TestReader_Sync_PositionalAssembly(t *testing.T) {
	owners := []common.Address{ownerAddr(1), ownerAddr(2), ownerAddr(3), ownerAddr(4)}
	txs := make([]ledgerTx, 3)
	for i := range txs {
		txs[i] = ledgerTx{
			to:            ownerAddr(byte(10 + i)),
			value:         big.NewInt(int64(i)),
			data:          []byte{},
			confirmations: big.NewInt(0),
		}
	}
	ledger := &fakeLedger{
		owners:   owners,
		txs:      txs,
		required: big.NewInt(3),
		balance:  big.NewInt(0),
		stagger:  true,
	}

	snap, err := NewReader(ledger, testContract).Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, owners, snap.Owners)
	for i, tx := range snap.Transactions {
		assert.Equal(t, uint64(i), tx.ID)
		assert.Equal(t, ownerAddr(byte(10+i)), tx.To)
	}
}

func TestReader_Sync_FailureAbortsWhole(t *testing.T) {
	base := fakeLedger{
		owners:   []common.Address{ownerAddr(1), ownerAddr(2)},
		txs:      []ledgerTx{{to: ownerAddr(9), value: big.NewInt(1), data: []byte{}, confirmations: big.NewInt(0)}},
		required: big.NewInt(2),
		balance:  big.NewInt(10),
	}

	for _, failOn := range []string{"getBalance", "owners", "getTransaction"} {
		ledger := base
		ledger.failOn = failOn

		snap, err := NewReader(&ledger, testContract).Sync(context.Background())
		assert.Error(t, err, failOn)
		assert.Empty(t, snap.Owners, failOn)
		assert.Empty(t, snap.Transactions, failOn)
		assert.Nil(t, snap.Balance, failOn)
	}
}
