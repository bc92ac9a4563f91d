package multisig

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type receiptStep struct {
	receipt *types.Receipt
	err     error
}

type fakeBackend struct {
	nonce    uint64
	gasPrice *big.Int
	gasLimit uint64

	sent    *types.Transaction
	sendErr error

	receiptSteps []receiptStep
	receiptCalls int
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return f.gasPrice, nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return f.gasLimit, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = tx
	return nil
}

func (f *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	step := f.receiptSteps[0]
	if len(f.receiptSteps) > 1 {
		f.receiptSteps = f.receiptSteps[1:]
	}
	f.receiptCalls++
	return step.receipt, step.err
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nonce: 7, gasPrice: big.NewInt(2_000_000_000), gasLimit: 120_000}
}

func TestWriter_Submit_PacksContractCall(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := newFakeBackend()
	chainID := big.NewInt(31337)

	w := NewWriter(backend, key, chainID, testContract)
	require.True(t, w.HasSigner())

	hash, err := w.Submit(context.Background(), "confirmTransaction", []interface{}{big.NewInt(2)}, nil)
	require.NoError(t, err)
	require.NotNil(t, backend.sent)

	sent := backend.sent
	assert.Equal(t, hash, sent.Hash())
	assert.Equal(t, common.HexToAddress(testContract), *sent.To())
	assert.Zero(t, sent.Value().Sign())
	assert.Equal(t, uint64(7), sent.Nonce())
	assert.Equal(t, uint64(120_000), sent.Gas())

	expected, err := contractABI.Pack("confirmTransaction", big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, expected, sent.Data())

	from, err := types.Sender(types.NewEIP155Signer(chainID), sent)
	require.NoError(t, err)
	assert.Equal(t, w.Account(), from)
}

func TestWriter_Submit_Deposit(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	backend := newFakeBackend()

	w := NewWriter(backend, key, big.NewInt(1), testContract)

	amount, err := ParseEther("1.5")
	require.NoError(t, err)

	_, err = w.Submit(context.Background(), "", nil, amount)
	require.NoError(t, err)
	require.NotNil(t, backend.sent)

	assert.Empty(t, backend.sent.Data())
	assert.Equal(t, "1500000000000000000", backend.sent.Value().String())
	assert.Equal(t, common.HexToAddress(testContract), *backend.sent.To())
}

func TestWriter_Submit_Preconditions(t *testing.T) {
	backend := newFakeBackend()

	w := NewWriter(backend, nil, big.NewInt(1), testContract)
	assert.False(t, w.HasSigner())
	_, err := w.Submit(context.Background(), "executeTransaction", []interface{}{big.NewInt(0)}, nil)
	assert.ErrorIs(t, err, ErrNoSigner)

	key, genErr := crypto.GenerateKey()
	require.NoError(t, genErr)
	w = NewWriter(backend, key, big.NewInt(1), "")
	_, err = w.Submit(context.Background(), "executeTransaction", []interface{}{big.NewInt(0)}, nil)
	assert.ErrorIs(t, err, ErrNoContract)

	assert.Nil(t, backend.sent)
}

func TestWriter_WaitConfirmed(t *testing.T) {
	old := receiptPollInterval
	receiptPollInterval = time.Millisecond
	defer func() { receiptPollInterval = old }()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hash := common.HexToHash("0xabc123")

	backend := newFakeBackend()
	backend.receiptSteps = []receiptStep{
		{err: ethereum.NotFound},
		{err: ethereum.NotFound},
		{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}},
	}
	w := NewWriter(backend, key, big.NewInt(1), testContract)

	err = w.WaitConfirmed(context.Background(), hash)
	assert.NoError(t, err)
	assert.Equal(t, 3, backend.receiptCalls)
}

func TestWriter_WaitConfirmed_Reverted(t *testing.T) {
	old := receiptPollInterval
	receiptPollInterval = time.Millisecond
	defer func() { receiptPollInterval = old }()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	backend := newFakeBackend()
	backend.receiptSteps = []receiptStep{
		{receipt: &types.Receipt{Status: types.ReceiptStatusFailed}},
	}
	w := NewWriter(backend, key, big.NewInt(1), testContract)

	err = w.WaitConfirmed(context.Background(), common.HexToHash("0x01"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
}

func TestWriter_WaitConfirmed_ContextCancel(t *testing.T) {
	old := receiptPollInterval
	receiptPollInterval = 10 * time.Millisecond
	defer func() { receiptPollInterval = old }()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	backend := newFakeBackend()
	backend.receiptSteps = []receiptStep{{err: ethereum.NotFound}}
	w := NewWriter(backend, key, big.NewInt(1), testContract)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = w.WaitConfirmed(ctx, common.HexToHash("0x02"))
	assert.ErrorIs(t, err, context.Canceled)
}
