package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"msigdash/pkg/i18n"
	"msigdash/pkg/utils"
)

func (m model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showGraph {
		return m.renderGraph()
	}

	t := m.copy()

	sections := []string{
		m.renderHeader(),
		m.renderToast(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderStats(), m.renderSigner()),
	}

	switch m.focus {
	case focusCreate:
		sections = append(sections, m.renderCreateForm())
	case focusDeposit:
		sections = append(sections, m.renderDepositForm())
	case focusConfig:
		sections = append(sections, m.renderConfigForm())
	default:
		sections = append(sections,
			lipgloss.JoinHorizontal(lipgloss.Top, m.renderOwners(), m.renderTransactions()),
		)
	}

	sections = append(sections, m.renderFooter(t))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderHeader() string {
	t := m.copy()

	title := titleStyle.Render(fmt.Sprintf("%s %s", t.Eyebrow, Version))

	contract := t.ChipNotSet
	if m.sess.Bound() {
		contract = utils.ShortenAddress(m.contractAddress, 6)
	}
	chips := lipgloss.JoinHorizontal(lipgloss.Top,
		chipStyle.Render(fmt.Sprintf("%s: %s (%d)", t.ChipChain, m.network.Name, m.network.ChainID)),
		" ",
		chipStyle.Render(fmt.Sprintf("%s: %s", t.ChipContract, contract)),
		" ",
		chipStyle.Render(fmt.Sprintf("%s: %s", t.ChipRPC, utils.TruncateString(m.sess.Endpoint(), 40))),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, chips)
}

func (m model) renderToast() string {
	if m.status == nil {
		return ""
	}
	switch m.status.Tone {
	case "ok":
		return okStyle.Render(m.status.Message)
	case "error":
		return errStyle.Render(m.status.Message)
	default:
		return neutralStyle.Render(m.status.Message)
	}
}

func (m model) renderStats() string {
	t := m.copy()

	required := "0"
	if m.snapshot.RequiredSignatures != nil {
		required = m.snapshot.RequiredSignatures.String()
	}

	rows := []string{
		fmt.Sprintf("%-22s %s ETH", t.Balance, utils.FormatWei(m.snapshot.Balance, 4)),
		fmt.Sprintf("%-22s %s", t.RequiredSignatures, required),
		fmt.Sprintf("%-22s %d", t.Owners, len(m.snapshot.Owners)),
		fmt.Sprintf("%-22s %d", t.Transactions, len(m.snapshot.Transactions)),
	}

	refresh := ""
	if m.refreshing {
		refresh = m.spinner.View() + " " + t.Refreshing
	} else if !m.lastUpdate.IsZero() {
		refresh = subtleStyle.Render(m.lastUpdate.Format("15:04:05"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.StatsTitle),
		strings.Join(rows, "\n"),
		refresh,
	)
	return boxStyle.Render(body)
}

func (m model) renderSigner() string {
	t := m.copy()

	var rows []string
	if m.sess.HasSigner() {
		rows = append(rows, fmt.Sprintf("%s: %s", t.SignerAccount, utils.ShortenAddress(m.sess.Account().Hex(), 6)))
	} else {
		rows = append(rows, subtleStyle.Render(t.NoSigner))
	}
	if m.working {
		rows = append(rows, m.spinner.View()+" "+subtleStyle.Render("..."))
	}
	if m.chainWarning {
		rows = append(rows, warnStyle.Render(t.ChainWarning),
			warnStyle.Render(fmt.Sprintf("%s: %d", t.SignerChain, m.reportedChainID)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.SignerTitle),
		strings.Join(rows, "\n"),
	)
	return boxStyle.Render(body)
}

func (m model) renderOwners() string {
	t := m.copy()

	var rows []string
	if len(m.snapshot.Owners) == 0 {
		rows = append(rows, subtleStyle.Render(t.OwnersEmpty))
	} else {
		for _, owner := range m.snapshot.Owners {
			rows = append(rows, owner.Hex())
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.OwnersTitle),
		strings.Join(rows, "\n"),
	)
	return boxStyle.Render(body)
}

func (m model) renderTransactions() string {
	t := m.copy()

	var rows []string
	if len(m.snapshot.Transactions) == 0 {
		rows = append(rows, subtleStyle.Render(t.TxEmpty))
	} else {
		required := "?"
		if m.snapshot.RequiredSignatures != nil {
			required = m.snapshot.RequiredSignatures.String()
		}
		for i, tx := range m.snapshot.Transactions {
			executed := t.No
			if tx.Executed {
				executed = t.Yes
			}
			confirmations := "0"
			if tx.Confirmations != nil {
				confirmations = tx.Confirmations.String()
			}
			data := "0x"
			if len(tx.Data) > 0 {
				data = utils.ShortenAddress(fmt.Sprintf("0x%x", tx.Data), 10)
			}
			row := fmt.Sprintf("%s #%d  %s %s  %s %s ETH  %s %s/%s  %s %s  %s %s",
				t.TxLabel, tx.ID,
				t.TxTo, utils.ShortenAddress(tx.To.Hex(), 6),
				t.TxValue, utils.FormatWei(tx.Value, 4),
				t.TxConfirmations, confirmations, required,
				t.TxExecuted, executed,
				t.TxData, data,
			)
			if i == m.txListIdx {
				row = selectedRowStyle.Render("> " + row)
			} else {
				row = "  " + row
			}
			rows = append(rows, row)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.TxTitle),
		strings.Join(rows, "\n"),
	)
	return boxStyle.Render(body)
}

func (m model) renderCreateForm() string {
	t := m.copy()
	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.CreateTitle),
		t.CreateTo,
		m.createInputs[0].View(),
		t.CreateValue,
		m.createInputs[1].View(),
		t.CreateData,
		m.createInputs[2].View(),
	)
	return boxStyle.Render(body)
}

func (m model) renderDepositForm() string {
	t := m.copy()
	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.DepositTitle),
		t.DepositValue,
		m.depositInput.View(),
		subtleStyle.Render(t.DepositHint),
	)
	return boxStyle.Render(body)
}

func (m model) renderConfigForm() string {
	t := m.copy()
	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(t.ConfigTitle),
		t.ContractAddress,
		m.configInputs[0].View(),
		t.ChainIDLabel,
		m.configInputs[1].View(),
		t.RPCURLLabel,
		m.configInputs[2].View(),
		subtleStyle.Render(t.ConfigHint),
	)
	return boxStyle.Render(body)
}

func (m model) renderFooter(t i18n.Copy) string {
	var hints []string
	switch m.focus {
	case focusCreate:
		hints = []string{"enter: " + t.Create, "tab", "esc"}
	case focusDeposit:
		hints = []string{"enter: " + t.SendDeposit, "esc"}
	case focusConfig:
		hints = []string{"enter: " + t.ConfigTitle, "tab", "esc"}
	default:
		hints = []string{
			"r: " + t.Refresh,
			"s: " + t.Confirm,
			"x: " + t.Revoke,
			"e: " + t.Execute,
			"n: " + t.Create,
			"d: " + t.SendDeposit,
			"o: " + t.ConfigTitle,
			"L: " + t.LanguageLabel,
			"?",
			"q",
		}
	}
	return subtleStyle.Render(strings.Join(hints, " | "))
}

func (m model) renderGraph() string {
	t := m.copy()
	if len(m.balanceHistory) < 2 {
		return boxStyle.Render(subtleStyle.Render(t.Balance + ": -"))
	}
	graph := asciigraph.Plot(m.balanceHistory,
		asciigraph.Height(12),
		asciigraph.Caption(t.Balance+" (ETH)"),
	)
	return boxStyle.Render(graph) + "\n" + subtleStyle.Render("q/esc/g")
}

func (m model) renderHelp() string {
	lines := []string{
		titleStyle.Render("Keys"),
		"r        refresh",
		"n        create transaction",
		"d        deposit",
		"o        configuration",
		"s        confirm selected transaction",
		"x        revoke confirmation",
		"e        execute selected transaction",
		"j/k      select transaction",
		"c        copy contract address",
		"g        balance graph",
		"L        toggle language",
		"S        clear status",
		"?        toggle help",
		"q        quit",
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
