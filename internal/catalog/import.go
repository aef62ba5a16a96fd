package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/errors"
)

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Slugs    []string `json:"slugs"`
}

// Import reads a JSON array of case studies from r and upserts each into the
// catalog. Records without an ID get a fresh ULID; records without a cover
// get the deterministic placeholder.
func (s *Store) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import data: %w", err))
	}

	var entries []casestudy.CaseStudyRef
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("import data must be a JSON array of case studies: %v", err))
	}
	if len(entries) == 0 {
		return nil, errors.NewInvalidRequest("import data contains no case studies")
	}

	result := &ImportResult{Slugs: make([]string, 0, len(entries))}
	for i, entry := range entries {
		stored, err := s.Put(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, entry.Slug, err)
		}
		result.Imported++
		result.Slugs = append(result.Slugs, stored.Slug)
	}
	return result, nil
}
