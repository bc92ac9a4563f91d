// Package session owns the client-side contract state and mediates the
// read/refresh/submit cycle between the UI and the chain.
package session

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"msigdash/pkg/chains"
	"msigdash/pkg/models"
	"msigdash/pkg/multisig"
)

// ErrBusy is returned when an action is dispatched while another one is
// still in flight. A single working flag gates all actions in this client.
var ErrBusy = errors.New("another action is in flight")

// Backend is the node connection the session reads from and writes through.
// *ethclient.Client satisfies it.
type Backend interface {
	multisig.Caller
	multisig.TxBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// ReadClient syncs the full contract snapshot. Implemented by
// *multisig.Reader.
type ReadClient interface {
	Sync(ctx context.Context) (models.Snapshot, error)
	Bound() bool
}

// WriteClient submits and confirms contract calls. Implemented by
// *multisig.Writer.
type WriteClient interface {
	Submit(ctx context.Context, function string, args []interface{}, value *big.Int) (common.Hash, error)
	WaitConfirmed(ctx context.Context, hash common.Hash) error
	HasSigner() bool
	Account() common.Address
}

// Session holds the last good snapshot plus the current binding, and
// broadcasts state changes to subscribers. Mutations happen through named
// transitions only: sync success, sync failure, action progress.
type Session struct {
	mu          sync.RWMutex
	snapshot    models.Snapshot
	subscribers []Subscriber

	network  chains.Network
	rpcURL   string
	contract string
	backend  Backend
	reader   ReadClient
	writer   WriteClient
	key      *ecdsa.PrivateKey

	working bool

	dial func(rawurl string) (Backend, error)
}

// New creates a session with the given signing key (may be nil; writes are
// then disabled until one is loaded).
func New(key *ecdsa.PrivateKey) *Session {
	return &Session{
		key: key,
		dial: func(rawurl string) (Backend, error) {
			return ethclient.Dial(rawurl)
		},
	}
}

// SetDial overrides how the session connects to an endpoint. Used in tests.
func (s *Session) SetDial(dial func(rawurl string) (Backend, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dial = dial
}

// SetClients overrides the read and write clients directly. Used in tests.
func (s *Session) SetClients(reader ReadClient, writer WriteClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reader = reader
	s.writer = writer
}

// Subscribe adds a subscriber and returns its event channel.
func (s *Session) Subscribe() Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(Subscriber, 100)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *Session) Unsubscribe(ch Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

func (s *Session) notify(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subscribers {
		select {
		case sub <- event:
		default:
			// Slow subscriber, drop the event rather than block.
		}
	}
}

// Configure rebinds the session to (network, rpc override, contract
// address). An invalid address leaves the session unbound and resets the
// snapshot to empty. On a valid binding it kicks off a refresh and a
// background check that the endpoint really serves the configured chain.
func (s *Session) Configure(network chains.Network, rpcOverride, contractAddress string) error {
	endpoint := network.Endpoint(rpcOverride)

	s.mu.Lock()
	if s.backend != nil {
		s.backend.Close()
		s.backend = nil
	}
	backend, err := s.dial(endpoint)
	if err != nil {
		s.reader = nil
		s.writer = nil
		s.snapshot = models.Snapshot{}
		s.mu.Unlock()
		return err
	}
	s.backend = backend
	s.network = network
	s.rpcURL = endpoint
	s.contract = strings.TrimSpace(contractAddress)
	s.reader = multisig.NewReader(backend, s.contract)
	s.writer = multisig.NewWriter(backend, s.key, big.NewInt(network.ChainID), s.contract)
	reader := s.reader
	s.mu.Unlock()

	if !reader.Bound() {
		s.mu.Lock()
		s.snapshot = models.Snapshot{}
		s.mu.Unlock()
		s.notify(Event{Type: EventSnapshotUpdated, Data: models.Snapshot{}})
		return nil
	}

	go s.checkChain(backend, network.ChainID)
	s.Refresh()
	return nil
}

func (s *Session) checkChain(backend Backend, configured int64) {
	reported, err := backend.ChainID(context.Background())
	if err != nil || reported == nil {
		return
	}
	if reported.Int64() != configured {
		s.notify(Event{Type: EventChainMismatch, Data: ChainMismatch{
			Configured: configured,
			Reported:   reported.Int64(),
		}})
	}
}

// Refresh runs one independent sync. On success the stored snapshot is
// replaced atomically; on failure it is left untouched and the error is
// published. Concurrent refreshes are not coalesced: whichever completes
// last wins.
func (s *Session) Refresh() {
	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()
	if reader == nil {
		return
	}

	s.notify(Event{Type: EventSyncStarted})
	go func() {
		snap, err := reader.Sync(context.Background())
		if err != nil {
			s.notify(Event{Type: EventSyncFailed, Data: SyncFailure{
				Err:     err,
				Message: multisig.HumanizeError(err),
			}})
			return
		}
		s.mu.Lock()
		s.snapshot = snap
		s.mu.Unlock()
		s.notify(Event{Type: EventSnapshotUpdated, Data: snap})
	}()
}

// Dispatch validates a governance action and, when it passes, submits it in
// the background: publish the hash on acceptance, wait for the chain to
// confirm, then refresh. Validation and precondition failures are returned
// synchronously; no network call has happened at that point.
func (s *Session) Dispatch(action models.Action) error {
	s.mu.Lock()
	if s.working {
		s.mu.Unlock()
		return ErrBusy
	}
	writer := s.writer
	reader := s.reader
	s.mu.Unlock()

	if writer == nil || !writer.HasSigner() {
		return multisig.ErrNoSigner
	}
	if reader == nil || !reader.Bound() {
		return multisig.ErrNoContract
	}

	function, args, value, err := buildCall(action)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.working {
		s.mu.Unlock()
		return ErrBusy
	}
	s.working = true
	s.mu.Unlock()

	go s.run(writer, action.Kind, function, args, value)
	return nil
}

func (s *Session) run(writer WriteClient, kind models.ActionKind, function string, args []interface{}, value *big.Int) {
	ctx := context.Background()

	hash, err := writer.Submit(ctx, function, args, value)
	if err != nil {
		s.finish(kind, EventActionFailed, common.Hash{}, err)
		return
	}
	s.notify(Event{Type: EventActionSubmitted, Data: ActionUpdate{Kind: kind, Hash: hash.Hex()}})

	if err := writer.WaitConfirmed(ctx, hash); err != nil {
		s.finish(kind, EventActionFailed, hash, err)
		return
	}
	s.finish(kind, EventActionConfirmed, hash, nil)
	s.Refresh()
}

func (s *Session) finish(kind models.ActionKind, event EventType, hash common.Hash, err error) {
	s.mu.Lock()
	s.working = false
	s.mu.Unlock()

	update := ActionUpdate{Kind: kind}
	if hash != (common.Hash{}) {
		update.Hash = hash.Hex()
	}
	if err != nil {
		update.Err = err
		update.Message = multisig.HumanizeError(err)
	}
	s.notify(Event{Type: event, Data: update})
}

// buildCall converts validated user input into a concrete contract call.
func buildCall(action models.Action) (string, []interface{}, *big.Int, error) {
	switch action.Kind {
	case models.ActionCreate:
		if !multisig.ValidAddress(strings.TrimSpace(action.To)) {
			return "", nil, nil, multisig.ErrInvalidRecipient
		}
		data, err := multisig.NormalizeCallData(action.Data)
		if err != nil {
			return "", nil, nil, err
		}
		wei, err := multisig.ParseEther(orZero(action.Value))
		if err != nil {
			return "", nil, nil, err
		}
		to := common.HexToAddress(strings.TrimSpace(action.To))
		return "createTransaction", []interface{}{to, wei, data}, nil, nil

	case models.ActionConfirm:
		return "confirmTransaction", []interface{}{new(big.Int).SetUint64(action.TxID)}, nil, nil
	case models.ActionRevoke:
		return "revokeConfirmation", []interface{}{new(big.Int).SetUint64(action.TxID)}, nil, nil
	case models.ActionExecute:
		return "executeTransaction", []interface{}{new(big.Int).SetUint64(action.TxID)}, nil, nil

	case models.ActionDeposit:
		wei, err := multisig.ParseEther(orZero(action.Value))
		if err != nil {
			return "", nil, nil, err
		}
		return "", nil, wei, nil
	}
	return "", nil, nil, errors.New("unknown action")
}

func orZero(value string) string {
	if strings.TrimSpace(value) == "" {
		return "0"
	}
	return strings.TrimSpace(value)
}

// Snapshot returns the last successfully synced snapshot.
func (s *Session) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Working reports whether an action is between submission and confirmation.
func (s *Session) Working() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.working
}

// Network returns the currently configured network.
func (s *Session) Network() chains.Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network
}

// Endpoint returns the RPC URL currently in use.
func (s *Session) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rpcURL
}

// Contract returns the configured contract address string ("" when unset).
func (s *Session) Contract() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contract
}

// Bound reports whether a valid contract binding exists.
func (s *Session) Bound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reader != nil && s.reader.Bound()
}

// HasSigner reports whether a signing key is loaded.
func (s *Session) HasSigner() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writer != nil && s.writer.HasSigner()
}

// Account returns the signing account, zero when no key is loaded.
func (s *Session) Account() common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.writer == nil {
		return common.Address{}
	}
	return s.writer.Account()
}
