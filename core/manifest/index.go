package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// MaxSearchResults caps every search.
const MaxSearchResults = 20

// SearchDisplay is the subset of display properties returned by search.
type SearchDisplay struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SearchResult is the projection of an item returned by search.
type SearchResult struct {
	Hash                uint32        `json:"hash"`
	DisplayProperties   SearchDisplay `json:"displayProperties"`
	ItemTypeDisplayName string        `json:"itemTypeDisplayName"`
}

// Search returns items whose display name contains term, in ascending key
// order. Matching is case-sensitive and unanchored. A blank term yields no
// results. limit is clamped to (0, MaxSearchResults].
func (s *Snapshot) Search(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	results := []SearchResult{}
	if strings.TrimSpace(term) == "" {
		return results, nil
	}
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	index, err := s.searchIndex(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range index {
		if strings.Contains(entry.DisplayProperties.Name, term) {
			results = append(results, entry)
			if len(results) == limit {
				break
			}
		}
	}
	return results, nil
}

// searchIndex returns the name index, building it on first use. The build is
// shared between concurrent callers and survives cancellation of any one of them.
func (s *Snapshot) searchIndex(ctx context.Context) ([]SearchResult, error) {
	s.indexMu.RLock()
	index := s.index
	s.indexMu.RUnlock()
	if index != nil {
		return index, nil
	}

	v, err, _ := s.sf.Do("search-index", func() (any, error) {
		s.indexMu.RLock()
		index := s.index
		s.indexMu.RUnlock()
		if index != nil {
			return index, nil
		}

		built, err := s.buildIndex(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.indexMu.Lock()
		s.index = built
		s.indexMu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.([]SearchResult), nil
}

type indexDocument struct {
	Hash              uint32 `json:"hash"`
	DisplayProperties struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	} `json:"displayProperties"`
	ItemTypeDisplayName string `json:"itemTypeDisplayName"`
}

func (s *Snapshot) buildIndex(ctx context.Context) ([]SearchResult, error) {
	rows, err := s.db.WithContext(ctx).
		Table(string(TableInventoryItem)).
		Select("id", "json").
		Order("id").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", TableInventoryItem, err)
	}
	defer rows.Close()

	index := make([]SearchResult, 0, 1024)
	corrupt := 0
	for rows.Next() {
		var row rawRow
		if err := rows.Scan(&row.ID, &row.JSON); err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", TableInventoryItem, err)
		}

		var doc indexDocument
		if err := json.Unmarshal(row.JSON, &doc); err != nil {
			corrupt++
			continue
		}
		if doc.Hash == 0 {
			doc.Hash = uint32(row.ID)
		}
		index = append(index, SearchResult{
			Hash: doc.Hash,
			DisplayProperties: SearchDisplay{
				Name: doc.DisplayProperties.Name,
				Icon: doc.DisplayProperties.Icon,
			},
			ItemTypeDisplayName: doc.ItemTypeDisplayName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", TableInventoryItem, err)
	}

	if corrupt > 0 {
		s.logger.Warn("Skipped corrupt items while building search index", zap.Int("corrupt", corrupt))
	}
	s.logger.Info("Search index built", zap.Int("items", len(index)))
	return index, nil
}
