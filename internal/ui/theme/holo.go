package theme

import "github.com/charmbracelet/lipgloss"

var (
	Void   = lipgloss.Color("#050505")
	Panel  = lipgloss.Color("#0b1116")
	Grid   = lipgloss.Color("#16323a")
	Edge   = lipgloss.Color("#1f5560")
	Text   = lipgloss.Color("#e6fbff")
	Dim    = lipgloss.Color("#6b8a91")
	Cyan   = lipgloss.Color("#22d3ee")
	Glow   = lipgloss.Color("#a5f3fc")
	Violet = lipgloss.Color("#a855f7")
	Alert  = lipgloss.Color("#f43f5e")
	Ok     = lipgloss.Color("#34d399")

	App = lipgloss.NewStyle().
		Background(Void).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Edge).
		Background(Panel).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Cyan)
	PaneAlert  = Pane.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(Alert)

	Title = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	Label = lipgloss.NewStyle().Foreground(Dim).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Dim)
	Hot   = lipgloss.NewStyle().Foreground(Glow).Bold(true)
	Warn  = lipgloss.NewStyle().Foreground(Alert).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Ok)
)
