package models

import (
	"testing"
	"time"
)

func TestStatusDismissAfter(t *testing.T) {
	tests := []struct {
		status   Status
		expected time.Duration
	}{
		{Status{Tone: ToneError}, 5200 * time.Millisecond},
		{Status{Tone: ToneOK}, 3600 * time.Millisecond},
		{Status{Tone: ToneNeutral}, 4200 * time.Millisecond},
		{Status{}, 4200 * time.Millisecond},
		{Status{Tone: ToneError, Duration: time.Second}, time.Second},
	}

	for _, tt := range tests {
		if got := tt.status.DismissAfter(); got != tt.expected {
			t.Errorf("DismissAfter(%q) = %v; want %v", tt.status.Tone, got, tt.expected)
		}
	}
}

func TestSnapshotEmpty(t *testing.T) {
	if !(Snapshot{}).Empty() {
		t.Error("zero snapshot should be empty")
	}
	s := Snapshot{Transactions: []Transaction{{ID: 0}}}
	if s.Empty() {
		t.Error("snapshot with transactions should not be empty")
	}
}
