package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Common semantic colors used across the TUI.
var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Field errors and failed-request notices.
	colorError lipgloss.TerminalColor = ac("160", "203")

	// Selection highlight; high contrast against the surface in both themes.
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	// Slightly elevated surface for controls/inputs so they remain visible on
	// light terminals.
	colorControlBg lipgloss.TerminalColor = ac("252", "235")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	colorModalHeaderBg lipgloss.TerminalColor = ac("252", "235")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleFieldLabel(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorSurfaceFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. For the TUI, we only honor NO_COLOR and otherwise follow the
// terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
