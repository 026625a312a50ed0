package ui

import "github.com/charmbracelet/lipgloss"

// Some predefined colors

var (
	ColorRed         = lipgloss.Color("1")
	ColorWhite       = lipgloss.Color("7")
	ColorBrightBlue  = lipgloss.Color("33")
	ColorLightGray   = lipgloss.Color("243")
	ColorGray        = lipgloss.Color("238")
	ColorMutedPurple = lipgloss.Color("92")
	ColorOrange      = lipgloss.Color("214")
)

type Theme struct {
	TitleTextStyle   lipgloss.Style
	MutedTextStyle   lipgloss.Style
	PrimaryTextStyle lipgloss.Style
	ActiveTextStyle  lipgloss.Style

	BorderContainerStyle lipgloss.Style

	BreadcrumbBarStyle lipgloss.Style
	HelpBarStyle       lipgloss.Style
}

var DarkTheme = Theme{
	TitleTextStyle: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorMutedPurple),
	MutedTextStyle: lipgloss.NewStyle().
		Foreground(ColorLightGray),
	PrimaryTextStyle: lipgloss.NewStyle().
		Foreground(ColorBrightBlue),
	ActiveTextStyle: lipgloss.NewStyle().
		Foreground(ColorOrange).
		Bold(true),

	BorderContainerStyle: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray),

	BreadcrumbBarStyle: lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorBrightBlue).
		Foreground(ColorWhite),
	HelpBarStyle: lipgloss.NewStyle().
		Padding(0, 1),
}
