package session

import "msigdash/pkg/models"

// EventType defines the type of event being broadcast.
type EventType string

const (
	EventSyncStarted     EventType = "sync_started"
	EventSnapshotUpdated EventType = "snapshot_updated"
	EventSyncFailed      EventType = "sync_failed"
	EventActionSubmitted EventType = "action_submitted"
	EventActionConfirmed EventType = "action_confirmed"
	EventActionFailed    EventType = "action_failed"
	EventChainMismatch   EventType = "chain_mismatch"
)

// Event represents a session event.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Subscriber is a channel that receives events.
type Subscriber chan Event

// SyncFailure reports a failed sync. The previous snapshot stays in place.
type SyncFailure struct {
	Err     error  `json:"-"`
	Message string `json:"message"`
}

// ActionUpdate reports progress of an in-flight governance action.
type ActionUpdate struct {
	Kind    models.ActionKind `json:"kind"`
	Hash    string            `json:"hash,omitempty"`
	Err     error             `json:"-"`
	Message string            `json:"message,omitempty"`
}

// ChainMismatch is published when the endpoint reports a different chain id
// than the one configured.
type ChainMismatch struct {
	Configured int64 `json:"configured"`
	Reported   int64 `json:"reported"`
}
