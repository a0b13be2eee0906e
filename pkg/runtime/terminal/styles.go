package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
)

var colorMuted = lipgloss.Color("242")

// Styles holds the Lip Gloss styles used by the summary reporter.
type Styles struct {
	Title       lipgloss.Style
	Muted       lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Metric      lipgloss.Style
	Warning     lipgloss.Style
	Categories  map[domain.Category]lipgloss.Style
	Cards       map[domain.Category]lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{
		Title:       lipgloss.NewStyle().Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(colorMuted),
		MetricLabel: lipgloss.NewStyle().Foreground(colorMuted),
		MetricValue: lipgloss.NewStyle().Bold(true),
		Metric: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(26),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ed8936")),
		Categories: make(map[domain.Category]lipgloss.Style, len(domain.Categories)),
		Cards:      make(map[domain.Category]lipgloss.Style, len(domain.Categories)),
	}

	for _, category := range domain.Categories {
		color := lipgloss.Color(adapters.CategoryColors[category])
		s.Categories[category] = lipgloss.NewStyle().Foreground(color).Bold(true)
		s.Cards[category] = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(color).
			PaddingLeft(1)
	}
	return s
}
