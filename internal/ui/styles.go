package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	TagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	SelectedItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	WarnText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	DimText = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
)
