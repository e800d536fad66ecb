package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NewRenderer returns a renderer bound to w. lipgloss v1.x detects TrueColor
// but does not always apply it, so the profile is set explicitly; NO_COLOR
// switches colors off.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.TrueColor)
	}
	return r
}

// plainRenderer returns a renderer that never emits escape sequences.
func plainRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// Styles used for CLI output.
type Styles struct {
	Label      lipgloss.Style
	Desc       lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
	Dim        lipgloss.Style
	Enumerator lipgloss.Style
}

// NewStyles builds the styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Label:      r.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Desc:       r.NewStyle().Foreground(lipgloss.Color("14")),
		Good:       r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Bad:        r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:        r.NewStyle().Foreground(lipgloss.Color("245")),
		Enumerator: r.NewStyle().Foreground(lipgloss.Color("245")).PaddingRight(1),
	}
}
