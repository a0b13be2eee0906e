package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
)

const barWidth = 30

// Reporter renders a SWOT summary to the console
type Reporter struct {
	writer io.Writer
	styles Styles
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		styles: DefaultStyles(),
	}
}

type distributionRow struct {
	Label   string
	Bar     string
	Count   int
	Percent float64
}

type categoryCard struct {
	Title    string
	Count    int
	Bullets  []string
	Themes   string
	Insights string
}

type summaryView struct {
	Title        string
	Filed        string
	Accession    string
	Overview     string
	Warning      string
	Distribution []distributionRow
	Cards        []string
}

func (c *Reporter) Handle(summary domain.SwotSummary) error {
	view := summaryView{
		Title:     c.styles.Title.Render(fmt.Sprintf("SWOT Analysis: %s", summary.Meta.Ticker)),
		Filed:     adapters.FilingDateOrNA(summary.Meta.FilingDate),
		Accession: summary.Meta.Accession,
		Overview:  c.overview(summary.ExecutiveOverview),
	}

	if !summary.OverviewConsistent() {
		view.Warning = c.styles.Warning.Render(fmt.Sprintf(
			"total indicators (%d) differ from the category counts (%d)",
			summary.ExecutiveOverview.TotalIndicators, summary.CountTotal))
	}

	for _, cc := range summary.Distribution {
		row := distributionRow{
			Label: c.styles.Categories[cc.Category].Render(fmt.Sprintf("%-12s", cc.Category)),
			Count: cc.Count,
		}
		if summary.CountTotal > 0 {
			row.Percent = 100 * float64(cc.Count) / float64(summary.CountTotal)
			filled := cc.Count * barWidth / summary.CountTotal
			row.Bar = c.styles.Categories[cc.Category].Render(strings.Repeat("█", filled)) +
				c.styles.Muted.Render(strings.Repeat("░", barWidth-filled))
		} else {
			row.Bar = c.styles.Muted.Render(strings.Repeat("░", barWidth))
		}
		view.Distribution = append(view.Distribution, row)
	}

	for _, category := range domain.Categories {
		card, err := c.card(category, summary)
		if err != nil {
			return err
		}
		view.Cards = append(view.Cards, card)
	}

	tmpl := `
{{.Title}}
Filed: {{.Filed}}   Accession: {{.Accession}}

{{.Overview}}
{{if .Warning}}{{.Warning}}
{{end}}
=== Distribution ===
{{range .Distribution}}{{.Label}} {{.Bar}} {{.Count}} ({{printf "%.1f" .Percent}}%)
{{end}}
{{range .Cards}}{{.}}

{{end}}`

	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}

func (c *Reporter) overview(eo *domain.ExecutiveOverview) string {
	total, dominant, summary := adapters.OverviewDisplayFields(eo)

	metric := func(label, value string) string {
		return c.styles.Metric.Render(lipgloss.JoinVertical(lipgloss.Left,
			c.styles.MetricValue.Render(value),
			c.styles.MetricLabel.Render(label),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Total Indicators", total),
		metric("Dominant Category", dominant),
		metric("Analysis Summary", summary),
	)
}

func (c *Reporter) card(category domain.Category, summary domain.SwotSummary) (string, error) {
	data := categoryCard{
		Title:    c.styles.Categories[category].Render(string(category)),
		Count:    summary.Counts[category],
		Bullets:  summary.TopBullets[category],
		Themes:   strings.Join(summary.KeyThemes[category], ", "),
		Insights: strings.Join(summary.KeyInsights[category], "; "),
	}

	tmpl := `{{.Title}} ({{.Count}})
{{if .Themes}}Themes: {{.Themes}}
{{end}}{{if .Insights}}Insights: {{.Insights}}
{{end}}{{range .Bullets}}- {{.}}
{{else}}No highlights.
{{end}}`

	t, err := template.New("card").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return c.styles.Cards[category].Render(strings.TrimRight(b.String(), "\n")), nil
}
