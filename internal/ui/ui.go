// Package ui provides terminal styling for CLI output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorEnabled reports whether the terminal supports color output.
var ColorEnabled = termenv.EnvColorProfile() != termenv.Ascii

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// RenderPass styles a success marker.
func RenderPass(s string) string {
	if !ColorEnabled {
		return s
	}
	return passStyle.Render(s)
}

// RenderWarn styles a warning marker.
func RenderWarn(s string) string {
	if !ColorEnabled {
		return s
	}
	return warnStyle.Render(s)
}

// RenderErr styles an error marker.
func RenderErr(s string) string {
	if !ColorEnabled {
		return s
	}
	return errStyle.Render(s)
}

// RenderAccent styles a heading or emphasized fragment.
func RenderAccent(s string) string {
	if !ColorEnabled {
		return s
	}
	return accentStyle.Render(s)
}

// RenderDim styles secondary detail text.
func RenderDim(s string) string {
	if !ColorEnabled {
		return s
	}
	return dimStyle.Render(s)
}
