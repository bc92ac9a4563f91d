package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"msigdash/pkg/config"
	"msigdash/pkg/session"
)

// Version is set by Start().
var Version = "dev"

func Start(s *session.Session, boot config.BootConfig, language, prefsPath, version string) {
	Version = version
	p := tea.NewProgram(
		initialModel(s, boot, language, prefsPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
