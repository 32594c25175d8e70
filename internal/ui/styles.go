package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 1)

	enabledButton  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	disabledButton = lipgloss.NewStyle().Faint(true)

	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	doneStyle        = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	placeholderStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	footerStyle      = lipgloss.NewStyle().Faint(true)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle        = lipgloss.NewStyle().Faint(true)
	spinnerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

func buttonStyle(disabled bool) lipgloss.Style {
	if disabled {
		return disabledButton
	}
	return enabledButton
}
