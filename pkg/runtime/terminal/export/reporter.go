package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
)

type TableConfig struct {
	TickerWidth    int
	DateWidth      int
	AccessionWidth int
	StatusWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		TickerWidth:    8,
		DateWidth:      12,
		AccessionWidth: 24,
		StatusWidth:    10,
	}
}

// Reporter prints report indexes and run history as fixed-width tables.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type indexRow struct {
	Ticker    string
	Date      string
	Accession string
}

type runRow struct {
	ID       string
	Ticker   string
	Window   string
	Status   string
	Progress string
	Error    string
}

func (c *Reporter) HandleIndex(index domain.Index) error {
	if len(index) == 0 {
		_, err := fmt.Fprintln(c.writer, "No analysis results found. Run an analysis first.")
		return err
	}

	rows := make([]indexRow, 0, len(index))
	for _, entry := range index {
		date := adapters.UnknownDate
		if entry.FilingDate != nil {
			date = adapters.FormatFilingDate(entry.FilingDate)
		}
		rows = append(rows, indexRow{Ticker: entry.Ticker, Date: date, Accession: entry.Accession})
	}

	tmpl := `{{separator}}
{{formatRow "Ticker" "Filed" "Accession"}}
{{separator}}
{{range .}}{{formatRow .Ticker .Date .Accession}}
{{end}}{{separator}}
`
	widths := []int{c.config.TickerWidth, c.config.DateWidth, c.config.AccessionWidth}
	return c.render("index", tmpl, widths, rows)
}

func (c *Reporter) HandleRuns(runs []*domain.AnalysisRun) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(c.writer, "No analysis runs recorded.")
		return err
	}

	rows := make([]runRow, 0, len(runs))
	for _, run := range runs {
		row := runRow{
			ID:       run.ID,
			Ticker:   run.Ticker,
			Window:   run.StartDate.Format(adapters.DateLayout) + ".." + run.EndDate.Format(adapters.DateLayout),
			Status:   string(run.Status),
			Progress: fmt.Sprintf("%d%%", run.Progress),
		}
		if run.Error != nil {
			row.Error = adapters.Truncate(*run.Error, adapters.SummaryDisplayLen)
		}
		rows = append(rows, row)
	}

	tmpl := `{{separator}}
{{formatRow "Run" "Ticker" "Window" "Status" "Progress"}}
{{separator}}
{{range .}}{{formatRow .ID .Ticker .Window .Status .Progress}}
{{if .Error}}  error: {{.Error}}
{{end}}{{end}}{{separator}}
`
	widths := []int{36, c.config.TickerWidth, 2*c.config.DateWidth - 2, c.config.StatusWidth, 8}
	return c.render("runs", tmpl, widths, rows)
}

func (c *Reporter) render(name, tmpl string, widths []int, data any) error {
	funcMap := template.FuncMap{
		"formatRow": func(cells ...string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, cell := range cells {
				fmt.Fprintf(&b, " %-*s |", widths[i], cell)
			}
			return b.String()
		},
		"separator": func() string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
	}

	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}
