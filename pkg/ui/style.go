package ui

import "github.com/charmbracelet/lipgloss"

// theme collects every color this shell renders with in one place, since
// the module only ever renders one theme.
type theme struct {
	primary, secondary, accent, err       lipgloss.Color
	bgDark, bgMedium, bgLight             lipgloss.Color
	textPrimary, textSecondary, textMuted lipgloss.Color
}

var dark = theme{
	primary:   lipgloss.Color("#7C3AED"),
	secondary: lipgloss.Color("#06B6D4"),
	accent:    lipgloss.Color("#10B981"),
	err:       lipgloss.Color("#EF4444"),

	bgDark:   lipgloss.Color("#0F172A"),
	bgMedium: lipgloss.Color("#1E293B"),
	bgLight:  lipgloss.Color("#334155"),

	textPrimary:   lipgloss.Color("#F8FAFC"),
	textSecondary: lipgloss.Color("#CBD5E1"),
	textMuted:     lipgloss.Color("#94A3B8"),
}

// model.go builds several ad-hoc styles inline alongside these using the
// raw colors, so the theme's fields are also exposed as package vars.
var (
	primaryColor   = dark.primary
	secondaryColor = dark.secondary
	accentColor    = dark.accent
	errorColor     = dark.err
	bgDark         = dark.bgDark
	bgMedium       = dark.bgMedium
	bgLight        = dark.bgLight
	textPrimary    = dark.textPrimary
	textSecondary  = dark.textSecondary
	textMuted      = dark.textMuted
)

// filled builds the padded block style shared by the badge/status/
// success/error styles below.
func filled(bg, fg lipgloss.Color, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(0, 1)
	if bold {
		s = s.Bold(true)
	}
	return s
}

// bordered builds the box style shared by the editor/result/explain
// panels.
func bordered(border lipgloss.Border, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(border).BorderForeground(fg)
}

var (
	appStyle = lipgloss.NewStyle().
			Background(dark.bgDark).
			Foreground(dark.textPrimary).
			Padding(1, 2)

	titleStyle = filled(lipgloss.Color("#8B5CF6"), lipgloss.Color("#FFFFFF"), true).
			Padding(0, 2).
			MarginBottom(1)

	dbBadgeStyle = filled(dark.secondary, dark.bgDark, true).MarginRight(2)

	statusBarStyle = filled(dark.bgMedium, dark.textSecondary, false)

	successStyle = filled(dark.accent, dark.bgDark, true)

	errorStyle = filled(dark.err, dark.textPrimary, true)

	editorStyle = bordered(lipgloss.RoundedBorder(), dark.primary).Padding(0, 1)

	resultStyle = bordered(lipgloss.NormalBorder(), dark.bgLight).Padding(1)

	explainStyle = bordered(lipgloss.RoundedBorder(), dark.secondary).
			Foreground(dark.textSecondary).
			Padding(0, 1)
)
