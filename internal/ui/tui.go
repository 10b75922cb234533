// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the voice studio
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run creates the program. The caller runs it and may Send RosterMsg
// values from other goroutines.
func Run(d Deps) (*tea.Program, error) {
	m, err := NewModel(d)
	if err != nil {
		return nil, err
	}
	return tea.NewProgram(m, tea.WithAltScreen()), nil
}
