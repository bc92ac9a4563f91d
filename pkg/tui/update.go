package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"msigdash/pkg/chains"
	"msigdash/pkg/config"
	"msigdash/pkg/i18n"
	"msigdash/pkg/models"
	"msigdash/pkg/multisig"
	"msigdash/pkg/session"
	"msigdash/pkg/utils"
)

const balanceHistoryLimit = 120

func (m *model) setStatus(tone models.StatusTone, message string) tea.Cmd {
	m.statusSeq++
	st := models.Status{Tone: tone, Message: message}
	m.status = &st
	seq := m.statusSeq
	return tea.Tick(st.DismissAfter(), func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// localizeActionErr maps validation and precondition failures to the active
// language. Remote errors fall through to their humanized message.
func localizeActionErr(t i18n.Copy, err error) string {
	switch {
	case errors.Is(err, multisig.ErrInvalidRecipient):
		return t.StatusInvalidRecipient
	case errors.Is(err, multisig.ErrInvalidData):
		return t.StatusDataMustBeHex
	case errors.Is(err, multisig.ErrInvalidAmount):
		return t.StatusInvalidAmount
	case errors.Is(err, multisig.ErrNoSigner):
		return t.StatusSignerMissing
	case errors.Is(err, multisig.ErrNoContract):
		return t.StatusSetContractFirst
	case errors.Is(err, session.ErrBusy):
		return t.StatusBusy
	}
	if msg := multisig.HumanizeError(err); msg != "" {
		return msg
	}
	return t.StatusUnknownError
}

func (m *model) dispatch(action models.Action) tea.Cmd {
	t := m.copy()
	if err := m.sess.Dispatch(action); err != nil {
		return m.setStatus(models.ToneError, localizeActionErr(t, err))
	}
	m.working = true
	return nil
}

func (m *model) applyConfig() tea.Cmd {
	address := strings.TrimSpace(m.configInputs[0].Value())
	if raw := strings.TrimSpace(m.configInputs[1].Value()); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			m.chainID = id
		}
	}
	m.rpcOverride = strings.TrimSpace(m.configInputs[2].Value())
	m.contractAddress = address
	m.network = chains.Resolve(m.chainID, m.rpcOverride)
	m.chainWarning = false
	m.balanceHistory = nil

	sess := m.sess
	network := m.network
	rpc := m.rpcOverride
	return func() tea.Msg {
		return configureMsg{err: sess.Configure(network, rpc, address)}
	}
}

func (m *model) toggleLanguage() {
	langs := i18n.Languages()
	for i, code := range langs {
		if code == m.language {
			m.language = langs[(i+1)%len(langs)]
			break
		}
	}
	if m.prefsPath != "" {
		// Best effort; an unwritable preferences file is not fatal.
		_ = config.SavePreferences(config.Preferences{Language: m.language}, m.prefsPath)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	t := m.copy()

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case session.Event:
		cmds = append(cmds, listenForSession(m.sub))

		switch msg.Type {
		case session.EventSyncStarted:
			m.refreshing = true

		case session.EventSnapshotUpdated:
			if snap, ok := msg.Data.(models.Snapshot); ok {
				m.snapshot = snap
				m.refreshing = false
				m.lastUpdate = time.Now()
				if m.txListIdx >= len(snap.Transactions) {
					m.txListIdx = 0
				}
				if snap.Balance != nil {
					m.balanceHistory = append(m.balanceHistory, utils.WeiToFloat(snap.Balance))
					if len(m.balanceHistory) > balanceHistoryLimit {
						m.balanceHistory = m.balanceHistory[len(m.balanceHistory)-balanceHistoryLimit:]
					}
				}
			}

		case session.EventSyncFailed:
			m.refreshing = false
			if failure, ok := msg.Data.(session.SyncFailure); ok {
				message := failure.Message
				if message == "" {
					message = t.StatusUnknownError
				}
				cmds = append(cmds, m.setStatus(models.ToneError, message))
			}

		case session.EventActionSubmitted:
			if update, ok := msg.Data.(session.ActionUpdate); ok {
				label := actionLabel(t, update.Kind)
				cmds = append(cmds, m.setStatus(models.ToneOK,
					fmt.Sprintf(t.StatusActionSent, label, update.Hash)))
			}

		case session.EventActionConfirmed:
			m.working = false
			if update, ok := msg.Data.(session.ActionUpdate); ok {
				label := actionLabel(t, update.Kind)
				cmds = append(cmds, m.setStatus(models.ToneOK,
					fmt.Sprintf(t.StatusActionConfirmed, label)))
			}

		case session.EventActionFailed:
			m.working = false
			if update, ok := msg.Data.(session.ActionUpdate); ok {
				message := update.Message
				if message == "" {
					message = t.StatusUnexpectedError
				}
				cmds = append(cmds, m.setStatus(models.ToneError, message))
			}

		case session.EventChainMismatch:
			if mismatch, ok := msg.Data.(session.ChainMismatch); ok {
				m.chainWarning = true
				m.reportedChainID = mismatch.Reported
			}
		}

	case configureMsg:
		if msg.err != nil {
			message := multisig.HumanizeError(msg.err)
			if message == "" {
				message = t.StatusUnexpectedError
			}
			cmds = append(cmds, m.setStatus(models.ToneError, message))
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = nil
		}

	case uiTickMsg:
		cmds = append(cmds, tea.Tick(time.Second, func(ts time.Time) tea.Msg { return uiTickMsg(ts) }))

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "q", "esc", "?":
				m.showHelp = false
			}
			return m, tea.Batch(cmds...)
		}
		if m.showGraph {
			switch msg.String() {
			case "q", "esc", "g":
				m.showGraph = false
			}
			return m, tea.Batch(cmds...)
		}

		switch m.focus {
		case focusCreate:
			cmds = append(cmds, m.updateCreateForm(msg))
		case focusDeposit:
			cmds = append(cmds, m.updateDepositForm(msg))
		case focusConfig:
			cmds = append(cmds, m.updateConfigForm(msg))
		default:
			cmd, quit := m.updateList(msg)
			if quit {
				return m, tea.Quit
			}
			cmds = append(cmds, cmd)
		}
	}

	if m.refreshing || m.working {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Cmd, bool) {
	t := m.copy()

	switch msg.String() {
	case "q", "ctrl+c":
		return nil, true

	case "?":
		m.showHelp = true

	case "g":
		m.showGraph = true

	case "L":
		m.toggleLanguage()

	case "r":
		m.sess.Refresh()

	case "S":
		m.status = nil

	case "c":
		if m.contractAddress != "" {
			if err := clipboard.WriteAll(m.contractAddress); err != nil {
				return m.setStatus(models.ToneError, t.StatusCopyFailed), false
			}
			return m.setStatus(models.ToneOK, t.StatusCopied), false
		}

	case "n":
		m.focus = focusCreate
		m.focusIdx = 0
		m.createInputs[0].Focus()

	case "d":
		m.focus = focusDeposit
		m.depositInput.Focus()

	case "o":
		m.focus = focusConfig
		m.focusIdx = 0
		m.configInputs[0].Focus()

	case "up", "k":
		if m.txListIdx > 0 {
			m.txListIdx--
		}

	case "down", "j":
		if m.txListIdx < len(m.snapshot.Transactions)-1 {
			m.txListIdx++
		}

	case "s":
		return m.dispatchOnSelected(models.ActionConfirm), false
	case "x":
		return m.dispatchOnSelected(models.ActionRevoke), false
	case "e":
		return m.dispatchOnSelected(models.ActionExecute), false
	}

	return nil, false
}

// dispatchOnSelected targets the highlighted transaction. Executed
// transactions take no further actions; in-flight work gates everything.
func (m *model) dispatchOnSelected(kind models.ActionKind) tea.Cmd {
	t := m.copy()
	if m.working {
		return m.setStatus(models.ToneError, t.StatusBusy)
	}
	if m.txListIdx >= len(m.snapshot.Transactions) {
		return nil
	}
	tx := m.snapshot.Transactions[m.txListIdx]
	if tx.Executed {
		return nil
	}
	return m.dispatch(models.Action{Kind: kind, TxID: tx.ID})
}

func (m *model) updateCreateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		for i := range m.createInputs {
			m.createInputs[i].Blur()
		}
		return nil

	case "tab", "down":
		return m.cycleFocus(m.createInputs, 1)
	case "shift+tab", "up":
		return m.cycleFocus(m.createInputs, -1)

	case "enter":
		t := m.copy()
		if m.working {
			return m.setStatus(models.ToneError, t.StatusBusy)
		}
		return m.dispatch(models.Action{
			Kind:  models.ActionCreate,
			To:    m.createInputs[0].Value(),
			Value: m.createInputs[1].Value(),
			Data:  m.createInputs[2].Value(),
		})
	}

	var cmd tea.Cmd
	m.createInputs[m.focusIdx], cmd = m.createInputs[m.focusIdx].Update(msg)
	return cmd
}

func (m *model) updateDepositForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.depositInput.Blur()
		return nil

	case "enter":
		t := m.copy()
		if m.working {
			return m.setStatus(models.ToneError, t.StatusBusy)
		}
		return m.dispatch(models.Action{
			Kind:  models.ActionDeposit,
			Value: m.depositInput.Value(),
		})
	}

	var cmd tea.Cmd
	m.depositInput, cmd = m.depositInput.Update(msg)
	return cmd
}

func (m *model) updateConfigForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		for i := range m.configInputs {
			m.configInputs[i].Blur()
		}
		return nil

	case "tab", "down":
		return m.cycleConfigFocus(1)
	case "shift+tab", "up":
		return m.cycleConfigFocus(-1)

	case "enter":
		m.focus = focusList
		for i := range m.configInputs {
			m.configInputs[i].Blur()
		}
		return m.applyConfig()
	}

	var cmd tea.Cmd
	m.configInputs[m.focusIdx], cmd = m.configInputs[m.focusIdx].Update(msg)
	return cmd
}

func (m *model) cycleFocus(inputs []textinput.Model, dir int) tea.Cmd {
	inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + dir + len(inputs)) % len(inputs)
	return inputs[m.focusIdx].Focus()
}

func (m *model) cycleConfigFocus(dir int) tea.Cmd {
	return m.cycleFocus(m.configInputs, dir)
}
