package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLoader_LoadReport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", reportAAPL)
	loader := NewLoader(artifacts.NewFSSource())

	report, err := loader.LoadReport(testContext(t), path)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", report.Meta.Ticker)
	assert.Equal(t, "0001234567-24-000001", report.Meta.Accession)
	require.NotNil(t, report.Meta.FilingDate)
	assert.Equal(t, "2024-02-01", report.Meta.FilingDate.Format("2006-01-02"))

	assert.Equal(t, 5, report.Categories[domain.CategoryStrength].Count)
	assert.Equal(t, 2, report.Categories[domain.CategoryWeakness].Count)
	assert.Equal(t, 3, report.Categories[domain.CategoryOpportunity].Count)
	assert.Equal(t, 1, report.Categories[domain.CategoryThreat].Count)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, report.Categories[domain.CategoryStrength].TopBullets)

	// optional lists default to empty
	weakness := report.Categories[domain.CategoryWeakness]
	assert.NotNil(t, weakness.KeyThemes)
	assert.Empty(t, weakness.KeyThemes)
	assert.Empty(t, weakness.KeyInsights)
	assert.Empty(t, weakness.TopBullets)
	assert.Nil(t, report.ExecutiveOverview)
}

func TestReportLoader_LoadReport_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "not json",
			content:     `not json`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "missing meta",
			content:     `{"report": {"Strength": {"count": 1}, "Weakness": {"count": 1}, "Opportunity": {"count": 1}, "Threat": {"count": 1}}}`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "missing report",
			content:     `{"meta": {"ticker": "AAPL", "accession": "acc-1"}}`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "missing category",
			content:     `{"meta": {"ticker": "AAPL", "accession": "acc-1"}, "report": {"Strength": {"count": 1}, "Weakness": {"count": 1}, "Opportunity": {"count": 1}}}`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "null category",
			content:     `{"meta": {"ticker": "AAPL", "accession": "acc-1"}, "report": {"Strength": null, "Weakness": {"count": 1}, "Opportunity": {"count": 1}, "Threat": {"count": 1}}}`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "category without count",
			content:     `{"meta": {"ticker": "AAPL", "accession": "acc-1"}, "report": {"Strength": {"key_themes": []}, "Weakness": {"count": 1}, "Opportunity": {"count": 1}, "Threat": {"count": 1}}}`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "negative count",
			content:     `{"meta": {"ticker": "AAPL", "accession": "acc-1"}, "report": {"Strength": {"count": -1}, "Weakness": {"count": 1}, "Opportunity": {"count": 1}, "Threat": {"count": 1}}}`,
			expectedErr: domain.ErrReportMalformed,
		},
		{
			name:        "meta without accession",
			content:     `{"meta": {"ticker": "AAPL"}, "report": {"Strength": {"count": 1}, "Weakness": {"count": 1}, "Opportunity": {"count": 1}, "Threat": {"count": 1}}}`,
			expectedErr: domain.ErrReportMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "r.json", tt.content)
			_, err := NewLoader(artifacts.NewFSSource()).LoadReport(testContext(t), path)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(artifacts.NewFSSource()).LoadReport(testContext(t), filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})
}

func TestReportLoader_ExecutiveOverviewPassthrough(t *testing.T) {
	content := strings.Replace(reportAAPL, `"Weakness":    {"count": 2}`,
		`"Weakness":    {"count": 2},
    "executive_overview": {"total_indicators": 10, "dominant_category": "strength", "analysis_summary": "Solid year"}`, 1)
	path := writeFile(t, t.TempDir(), "a.json", content)

	report, err := NewLoader(artifacts.NewFSSource()).LoadReport(testContext(t), path)
	require.NoError(t, err)
	require.NotNil(t, report.ExecutiveOverview)
	assert.Equal(t, domain.ExecutiveOverview{
		TotalIndicators:  10,
		DominantCategory: "strength",
		AnalysisSummary:  "Solid year",
	}, *report.ExecutiveOverview)
}

func TestReportLoader_LoadEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", reportAAPL)
	loader := NewLoader(artifacts.NewFSSource())
	ctx := testContext(t)

	report, err := loader.LoadEntry(ctx, domain.AnalysisIndexEntry{
		Ticker:    "aapl",
		Accession: "0001234567-24-000001",
		JSONPath:  path,
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", report.Meta.Ticker)

	_, err = loader.LoadEntry(ctx, domain.AnalysisIndexEntry{
		Ticker:    "AAPL",
		Accession: "0009999999-24-000009",
		JSONPath:  path,
	})
	assert.ErrorIs(t, err, domain.ErrReportMalformed)
}

func TestReportLoader_RoundTrip(t *testing.T) {
	withTimestamp := strings.Replace(reportAAPL,
		`"filing_date": "2024-02-01", "accession": "0001234567-24-000001"}`,
		`"filing_date": "2024-02-01T22:30:00-05:00", "accession": "0001234567-24-000001", "form": "10-K", "cik": "0000320193"}`, 1)
	require.NotEqual(t, reportAAPL, withTimestamp)

	tests := []struct {
		name    string
		content string
	}{
		{name: "calendar date", content: reportAAPL},
		{name: "timestamp with offset and extra keys", content: withTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "a.json", tt.content)
			loader := NewLoader(artifacts.NewFSSource())
			ctx := testContext(t)

			original, err := loader.LoadReport(ctx, path)
			require.NoError(t, err)

			data, err := IndentReport([]byte(tt.content))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "{\n  \"meta\": {\n    \"ticker\""))
			copyPath := writeFile(t, dir, "copy.json", string(data))

			reloaded, err := loader.LoadReport(ctx, copyPath)
			require.NoError(t, err)
			assert.Equal(t, original, reloaded)
			require.NotNil(t, reloaded.Meta.FilingDate)
			assert.True(t, original.Meta.FilingDate.Equal(*reloaded.Meta.FilingDate))

			var want, got map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.content), &want))
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestReportLoader_UnreadableFilingDate(t *testing.T) {
	content := strings.Replace(reportAAPL, `"filing_date": "2024-02-01"`, `"filing_date": "early February"`, 1)
	path := writeFile(t, t.TempDir(), "a.json", content)

	report, err := NewLoader(artifacts.NewFSSource()).LoadReport(testContext(t), path)
	require.NoError(t, err)
	assert.Nil(t, report.Meta.FilingDate)
	assert.Equal(t, "AAPL", report.Meta.Ticker)
}

func TestIndentReport_Malformed(t *testing.T) {
	_, err := IndentReport([]byte(`{"meta": `))
	assert.ErrorIs(t, err, domain.ErrReportMalformed)
}

func TestReportLoader_CacheFollowsModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", reportAAPL)
	loader := NewLoader(artifacts.NewFSSource())
	ctx := testContext(t)

	first, err := loader.LoadReport(ctx, path)
	require.NoError(t, err)

	// mutating a returned report must not leak into later loads
	first.Categories[domain.CategoryStrength] = domain.CategoryResult{Count: 99}
	second, err := loader.LoadReport(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Categories[domain.CategoryStrength].Count)

	writeFile(t, dir, "a.json", strings.Replace(reportAAPL, `"count": 5`, `"count": 7`, 1))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := loader.LoadReport(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 7, third.Categories[domain.CategoryStrength].Count)

	require.NoError(t, os.Remove(path))
	_, err = loader.LoadReport(ctx, path)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
