package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status message stays in the status bar
const statusTTL = 4 * time.Second

// clearStatusMsg clears the status message it was scheduled for. A newer
// message has a higher seq and survives.
type clearStatusMsg struct {
	seq int
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
