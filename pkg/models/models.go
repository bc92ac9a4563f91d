package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction is one pending or executed transfer held by the custody
// contract. Identity is the contract-assigned sequential index; the client
// never mutates a Transaction, it is replaced wholesale on the next sync.
type Transaction struct {
	ID            uint64         `json:"id"`
	To            common.Address `json:"to"`
	Value         *big.Int       `json:"value"`
	Data          []byte         `json:"data"`
	Executed      bool           `json:"executed"`
	Confirmations *big.Int       `json:"confirmations"`
}

// Snapshot is the full view of contract state at one point in time. All
// fields are replaced together; the UI never mixes owners from one sync with
// transactions from another.
type Snapshot struct {
	Owners             []common.Address `json:"owners"`
	Transactions       []Transaction    `json:"transactions"`
	Balance            *big.Int         `json:"balance"`
	RequiredSignatures *big.Int         `json:"required_signatures"`
}

// Empty reports whether the snapshot has never been populated.
func (s Snapshot) Empty() bool {
	return len(s.Owners) == 0 && len(s.Transactions) == 0 && s.Balance == nil && s.RequiredSignatures == nil
}

// StatusTone classifies a transient status message.
type StatusTone string

const (
	ToneNeutral StatusTone = "neutral"
	ToneOK      StatusTone = "ok"
	ToneError   StatusTone = "error"
)

// Status is a transient, auto-dismissing notification. A zero Duration means
// the tone's default applies.
type Status struct {
	Tone     StatusTone    `json:"tone"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration,omitempty"`
}

// DismissAfter returns how long the status stays on screen.
func (s Status) DismissAfter() time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	switch s.Tone {
	case ToneError:
		return 5200 * time.Millisecond
	case ToneOK:
		return 3600 * time.Millisecond
	default:
		return 4200 * time.Millisecond
	}
}

// ActionKind names the governance actions a user can dispatch.
type ActionKind string

const (
	ActionCreate  ActionKind = "create_transaction"
	ActionConfirm ActionKind = "confirm_transaction"
	ActionRevoke  ActionKind = "revoke_confirmation"
	ActionExecute ActionKind = "execute_transaction"
	ActionDeposit ActionKind = "deposit"
)

// Action is a user request as entered. TxID is used by confirm, revoke and
// execute; To, Value and Data by create; Value alone by deposit. Value and
// Data hold the raw input, conversion happens at dispatch time.
type Action struct {
	Kind  ActionKind
	TxID  uint64
	To    string
	Value string
	Data  string
}
