package tui

import (
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"msigdash/pkg/config"
	"msigdash/pkg/i18n"
	"msigdash/pkg/models"
	"msigdash/pkg/multisig"
	"msigdash/pkg/session"
)

func TestLocalizeActionErr(t *testing.T) {
	en := i18n.T("en")

	tests := []struct {
		err  error
		want string
	}{
		{multisig.ErrInvalidRecipient, en.StatusInvalidRecipient},
		{multisig.ErrInvalidData, en.StatusDataMustBeHex},
		{multisig.ErrInvalidAmount, en.StatusInvalidAmount},
		{multisig.ErrNoSigner, en.StatusSignerMissing},
		{multisig.ErrNoContract, en.StatusSetContractFirst},
		{session.ErrBusy, en.StatusBusy},
		{errors.New("execution reverted"), "execution reverted"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localizeActionErr(en, tt.err))
	}

	ru := i18n.T("ru")
	assert.Equal(t, ru.StatusBusy, localizeActionErr(ru, session.ErrBusy))
	assert.NotEqual(t, en.StatusBusy, ru.StatusBusy)
}

func TestUpdate_SnapshotEvent(t *testing.T) {
	m := model{txListIdx: 5}
	snap := models.Snapshot{
		Balance:      big.NewInt(2500000000000000000),
		Transactions: []models.Transaction{{ID: 0}},
	}

	nm, _ := m.Update(session.Event{Type: session.EventSnapshotUpdated, Data: snap})
	m = nm.(model)

	assert.Equal(t, snap.Transactions, m.snapshot.Transactions)
	assert.False(t, m.refreshing)
	assert.Equal(t, 0, m.txListIdx, "selection clamps when the list shrinks")
	assert.Equal(t, []float64{2.5}, m.balanceHistory)
	assert.False(t, m.lastUpdate.IsZero())
}

func TestUpdate_SyncLifecycle(t *testing.T) {
	m := model{}

	nm, _ := m.Update(session.Event{Type: session.EventSyncStarted})
	m = nm.(model)
	assert.True(t, m.refreshing)

	nm, _ = m.Update(session.Event{Type: session.EventSyncFailed, Data: session.SyncFailure{Message: "rpc down"}})
	m = nm.(model)
	assert.False(t, m.refreshing)
	assert.NotNil(t, m.status)
	assert.Equal(t, models.ToneError, m.status.Tone)
	assert.Equal(t, "rpc down", m.status.Message)
}

func TestUpdate_ActionEvents(t *testing.T) {
	m := model{working: true, language: "en"}
	en := i18n.T("en")

	nm, _ := m.Update(session.Event{Type: session.EventActionSubmitted, Data: session.ActionUpdate{
		Kind: models.ActionConfirm,
		Hash: "0xabc",
	}})
	m = nm.(model)
	assert.NotNil(t, m.status)
	assert.Equal(t, models.ToneOK, m.status.Tone)
	assert.Contains(t, m.status.Message, "0xabc")
	assert.Contains(t, m.status.Message, en.ActionConfirm)
	assert.True(t, m.working, "submission alone does not release the gate")

	nm, _ = m.Update(session.Event{Type: session.EventActionConfirmed, Data: session.ActionUpdate{
		Kind: models.ActionConfirm,
	}})
	m = nm.(model)
	assert.False(t, m.working)
	assert.Equal(t, models.ToneOK, m.status.Tone)
}

func TestUpdate_ChainMismatch(t *testing.T) {
	m := model{}
	nm, _ := m.Update(session.Event{Type: session.EventChainMismatch, Data: session.ChainMismatch{
		Configured: 11155111,
		Reported:   1,
	}})
	m = nm.(model)
	assert.True(t, m.chainWarning)
	assert.Equal(t, int64(1), m.reportedChainID)
}

func TestStatusDismissal(t *testing.T) {
	m := model{}
	m.setStatus(models.ToneNeutral, "hello")
	assert.NotNil(t, m.status)

	// A stale timer must not clear a newer status.
	staleSeq := m.statusSeq
	m.setStatus(models.ToneOK, "newer")

	nm, _ := m.Update(clearStatusMsg{seq: staleSeq})
	m = nm.(model)
	assert.NotNil(t, m.status)
	assert.Equal(t, "newer", m.status.Message)

	nm, _ = m.Update(clearStatusMsg{seq: m.statusSeq})
	m = nm.(model)
	assert.Nil(t, m.status)
}

func TestDispatchOnSelected_SkipsExecuted(t *testing.T) {
	m := model{
		snapshot: models.Snapshot{
			Transactions: []models.Transaction{{ID: 0, Executed: true}},
		},
	}
	cmd := m.dispatchOnSelected(models.ActionExecute)
	assert.Nil(t, cmd)
	assert.Nil(t, m.status)
}

func TestDispatchOnSelected_BusyGate(t *testing.T) {
	m := model{
		working:  true,
		language: "en",
		snapshot: models.Snapshot{
			Transactions: []models.Transaction{{ID: 0}},
		},
	}
	cmd := m.dispatchOnSelected(models.ActionConfirm)
	assert.NotNil(t, cmd)
	assert.Equal(t, i18n.T("en").StatusBusy, m.status.Message)
	assert.Equal(t, models.ToneError, m.status.Tone)
}

func TestToggleLanguage(t *testing.T) {
	prefs := filepath.Join(t.TempDir(), "prefs.json")
	m := model{language: "en", prefsPath: prefs}

	m.toggleLanguage()
	assert.Equal(t, "ru", m.language)

	m.toggleLanguage()
	assert.Equal(t, "en", m.language)

	saved := config.LoadPreferences(prefs)
	assert.Equal(t, "en", saved.Language)
}

func TestActionLabel(t *testing.T) {
	en := i18n.T("en")
	assert.Equal(t, en.ActionCreate, actionLabel(en, models.ActionCreate))
	assert.Equal(t, en.ActionDeposit, actionLabel(en, models.ActionDeposit))
	assert.Equal(t, "bogus", actionLabel(en, models.ActionKind("bogus")))
}
