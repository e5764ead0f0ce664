package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	keyword = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")).
		Render

	paragraph = lipgloss.NewStyle().
			Width(78).
			Padding(0, 0, 0, 2).
			Render

	accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	heading = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// setupColor picks the colour profile for w. NO_COLOR and non-terminal
// outputs get plain text.
func setupColor(w io.Writer) {
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
}
