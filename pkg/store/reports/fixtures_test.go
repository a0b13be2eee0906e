package reports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const reportAAPL = `{
  "meta": {"ticker": "AAPL", "filing_date": "2024-02-01", "accession": "0001234567-24-000001"},
  "report": {
    "Threat":      {"count": 1, "key_themes": ["competition"], "key_insights": [], "top_bullets": ["t1"]},
    "Strength":    {"count": 5, "key_themes": ["brand", "services"], "key_insights": ["margin expansion"], "top_bullets": ["s1", "s2", "s3", "s4"]},
    "Opportunity": {"count": 3, "key_themes": ["ai"], "top_bullets": []},
    "Weakness":    {"count": 2}
  }
}`

const manifestAAPL = `[
  {"ticker": "AAPL", "accession": "0001234567-24-000001", "filing_date": "2024-02-01", "json": "a.json", "csv": "a.csv"}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
