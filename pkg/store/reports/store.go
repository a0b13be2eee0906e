package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/models/store"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/rs/zerolog"
)

const ManifestName = "index.json"

type Store interface {
	ListReports(ctx context.Context, outputDir string) (domain.Index, error)
}

// ManifestStore lists completed analyses from <outputDir>/index.json
type ManifestStore struct {
	source artifacts.Source
	cache  *cache[domain.Index]
}

func NewStore(source artifacts.Source) *ManifestStore {
	return &ManifestStore{
		source: source,
		cache:  newCache[domain.Index](),
	}
}

func ManifestPath(outputDir string) string {
	return filepath.Join(outputDir, ManifestName)
}

// ListReports returns the manifest entries in manifest order. A missing manifest
// yields an empty index.
func (s *ManifestStore) ListReports(ctx context.Context, outputDir string) (domain.Index, error) {
	logger := zerolog.Ctx(ctx)
	path := ManifestPath(outputDir)

	info, err := s.source.Stat(ctx, path)
	if errors.Is(err, artifacts.ErrNotExist) {
		s.cache.invalidate(path)
		logger.Debug().Str("manifest", path).Msg("no manifest found")
		return domain.Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat manifest: %w", err)
	}

	if index, ok := s.cache.get(path, info); ok {
		return cloneIndex(index), nil
	}

	data, err := s.source.ReadFile(ctx, path)
	if errors.Is(err, artifacts.ErrNotExist) {
		return domain.Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	index, err := s.parseManifest(ctx, outputDir, data)
	if err != nil {
		logger.Error().Err(err).Str("manifest", path).Msg("manifest rejected")
		return nil, err
	}

	s.cache.put(path, info, index)
	logger.Debug().Str("manifest", path).Int("entries", len(index)).Msg("manifest loaded")
	return cloneIndex(index), nil
}

func (s *ManifestStore) parseManifest(ctx context.Context, outputDir string, data []byte) (domain.Index, error) {
	var entries []store.ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportIndexCorrupt, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: manifest is not a JSON array", domain.ErrReportIndexCorrupt)
	}

	index := make(domain.Index, 0, len(entries))
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrReportIndexCorrupt, i, err)
		}
		if first, dup := seen[entry.Accession]; dup {
			return nil, fmt.Errorf("%w: accession %s repeated at entries %d and %d",
				domain.ErrReportIndexCorrupt, entry.Accession, first, i)
		}
		seen[entry.Accession] = i

		if _, err := adapters.ParseFilingDate(entry.FilingDate); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("accession", entry.Accession).Msg("filing date treated as unknown")
		}

		indexEntry := adapters.MapStoreManifestEntryToDomain(entry)
		indexEntry.JSONPath = s.resolve(ctx, outputDir, indexEntry.JSONPath)
		indexEntry.CSVPath = s.resolve(ctx, outputDir, indexEntry.CSVPath)
		index = append(index, indexEntry)
	}

	return index, nil
}

// resolve keeps a relative artifact path that exists as written, otherwise it
// is taken relative to the output directory.
func (s *ManifestStore) resolve(ctx context.Context, outputDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := s.source.Stat(ctx, path); err == nil {
		return path
	}
	joined := filepath.Join(outputDir, path)
	if _, err := s.source.Stat(ctx, joined); err == nil {
		return joined
	}
	return path
}

func (s *ManifestStore) Invalidate(outputDir string) {
	s.cache.invalidate(ManifestPath(outputDir))
}

func (s *ManifestStore) Purge() {
	s.cache.purge()
}

func cloneIndex(index domain.Index) domain.Index {
	out := make(domain.Index, len(index))
	copy(out, index)
	return out
}
