package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary  = lipgloss.AdaptiveColor{Light: "#1D70B8", Dark: "#57A6FF"}
	colorText     = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim      = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent   = lipgloss.AdaptiveColor{Light: "#D4351C", Dark: "#FF6B5B"}
	colorGreen    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorBorder   = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorTabBg    = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A3E"}
	colorStatusBg = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemSourceStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	itemTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	itemBodyStyle = lipgloss.NewStyle().
			Foreground(colorText)

	keywordStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorTabBg).
			Padding(0, 1)

	markerStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorTabBg).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorText).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	formTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorTabBg).
			Padding(0, 1)
)
