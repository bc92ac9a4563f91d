package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"msigdash/pkg/chains"
	"msigdash/pkg/config"
	"msigdash/pkg/i18n"
	"msigdash/pkg/models"
	"msigdash/pkg/session"
)

// --- Messages ---

type clearStatusMsg struct{ seq int }
type configureMsg struct{ err error }
type uiTickMsg time.Time

// focusArea marks which panel owns keyboard input.
type focusArea int

const (
	focusList focusArea = iota
	focusCreate
	focusDeposit
	focusConfig
)

// --- Model ---

type model struct {
	sess *session.Session
	sub  session.Subscriber

	// Applied binding.
	chainID         int64
	rpcOverride     string
	contractAddress string
	network         chains.Network

	snapshot        models.Snapshot
	refreshing      bool
	working         bool
	chainWarning    bool
	reportedChainID int64

	status    *models.Status
	statusSeq int

	language  string
	prefsPath string

	focus        focusArea
	focusIdx     int
	createInputs []textinput.Model
	depositInput textinput.Model
	configInputs []textinput.Model

	txListIdx      int
	balanceHistory []float64
	showGraph      bool
	showHelp       bool
	lastUpdate     time.Time

	spinner spinner.Model
	width   int
	height  int
}

func initialModel(s *session.Session, boot config.BootConfig, language, prefsPath string) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	cis := make([]textinput.Model, 3)
	for i := range cis {
		cis[i] = textinput.New()
		cis[i].Width = 50
	}
	cis[0].Placeholder = "0x..."
	cis[1].Placeholder = "0.1"
	cis[2].Placeholder = "0x"

	di := textinput.New()
	di.Placeholder = "1.0"
	di.Width = 30

	cfis := make([]textinput.Model, 3)
	for i := range cfis {
		cfis[i] = textinput.New()
		cfis[i].Width = 50
	}
	cfis[0].Placeholder = "0x..."
	cfis[0].SetValue(boot.ContractAddress)
	cfis[1].Placeholder = "11155111"
	cfis[2].Placeholder = "https://..."
	cfis[2].SetValue(boot.RPCURL)

	return model{
		sess:            s,
		sub:             s.Subscribe(),
		chainID:         boot.ChainID,
		rpcOverride:     boot.RPCURL,
		contractAddress: boot.ContractAddress,
		network:         chains.Resolve(boot.ChainID, boot.RPCURL),
		language:        language,
		prefsPath:       prefsPath,
		createInputs:    cis,
		depositInput:    di,
		configInputs:    cfis,
		spinner:         sp,
	}
}

func (m model) copy() i18n.Copy {
	return i18n.T(m.language)
}

func (m model) Init() tea.Cmd {
	sess := m.sess
	network := m.network
	rpc := m.rpcOverride
	contract := m.contractAddress
	return tea.Batch(
		m.spinner.Tick,
		listenForSession(m.sub),
		func() tea.Msg {
			return configureMsg{err: sess.Configure(network, rpc, contract)}
		},
		tea.Tick(time.Second, func(t time.Time) tea.Msg { return uiTickMsg(t) }),
	)
}

func listenForSession(sub session.Subscriber) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// actionLabel maps an action kind to its localized display label.
func actionLabel(t i18n.Copy, kind models.ActionKind) string {
	switch kind {
	case models.ActionCreate:
		return t.ActionCreate
	case models.ActionConfirm:
		return t.ActionConfirm
	case models.ActionRevoke:
		return t.ActionRevoke
	case models.ActionExecute:
		return t.ActionExecute
	case models.ActionDeposit:
		return t.ActionDeposit
	}
	return string(kind)
}
