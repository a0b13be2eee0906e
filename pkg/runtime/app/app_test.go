package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/de-tools/swot-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.OutputDir = dir
	cfg.DBPath = filepath.Join(dir, "runs.db")

	a, err := New(context.Background(), cfg, zerolog.New(zerolog.NewTestWriter(t)))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	index, err := a.Store.ListReports(context.Background(), cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, index)

	list, err := a.Controller.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn"}
	assert.Equal(t, zerolog.WarnLevel, NewLogger(cfg, nil).GetLevel())
}
