package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/dossier/internal/summary"
)

var (
	colorMuted    = lipgloss.Color("#64748b")
	colorText     = lipgloss.Color("#cbd5e1")
	colorBright   = lipgloss.Color("#f8fafc")
	colorBorder   = lipgloss.Color("#334155")
	colorPositive = lipgloss.Color("#4ade80")
	colorCritical = lipgloss.Color("#f87171")
	colorReview   = lipgloss.Color("#facc15")
	colorInsight  = lipgloss.Color("#a78bfa")
	colorLocation = lipgloss.Color("#60a5fa")
)

type styles struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	box    lipgloss.Style
	header lipgloss.Style
	tone   map[summary.Tone]lipgloss.Color
}

// newStyles binds styles to w so color output follows w's terminal
// capabilities.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		title:  r.NewStyle().Bold(true).Foreground(colorBright),
		muted:  r.NewStyle().Foreground(colorMuted),
		label:  r.NewStyle().Foreground(colorMuted),
		value:  r.NewStyle().Bold(true).Foreground(colorBright),
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		header: r.NewStyle().Bold(true).Foreground(colorText).Underline(true),
		tone: map[summary.Tone]lipgloss.Color{
			summary.ToneNeutral:  colorBright,
			summary.TonePositive: colorPositive,
			summary.ToneCritical: colorCritical,
			summary.ToneInsight:  colorInsight,
			summary.ToneLocation: colorLocation,
		},
	}
}

func (s styles) toned(style lipgloss.Style, t summary.Tone) lipgloss.Style {
	if c, ok := s.tone[t]; ok {
		return style.Foreground(c)
	}
	return style
}

// stepColor renders review steps in the review color rather than the insight one.
func (s styles) stepColor(t summary.Tone) lipgloss.Color {
	if t == summary.ToneInsight {
		return colorReview
	}
	return s.tone[t]
}
