// Package tui provides the Bubble Tea host for breakout.
// It handles the terminal UI loop, input mapping, the variant menu and the
// round history screen, locally or over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
// Owner ties the tick to the Model that scheduled it, so a tick still in
// flight when a session swaps games is dropped.
type TickMsg struct {
	Time  time.Time
	Owner int64
}

var lastModelID atomic.Int64

func nextModelID() int64 {
	return lastModelID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, owner int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Owner: owner}
	})
}
