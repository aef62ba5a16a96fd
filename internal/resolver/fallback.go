package resolver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hpungsan/shareline/internal/casestudy"
)

// DefaultFallbackCatalog is the small catalog bundled with the application,
// consulted only when every other tier came up empty. It is the floor that
// guarantees a share page never renders a hard error, only possibly a
// partial or empty result.
func DefaultFallbackCatalog() []casestudy.CaseStudyRef {
	entries := []casestudy.CaseStudyRef{
		{
			ID:      "01J00000000000000000000001",
			Title:   "Learn XYZ",
			Slug:    "learn-xyz",
			Summary: "Adaptive learning platform rebuilt around spaced repetition, shipped to 40k students.",
			Tags:    []string{"education", "product"},
		},
		{
			ID:      "01J00000000000000000000002",
			Title:   "Atlas Analytics",
			Slug:    "atlas-analytics",
			Summary: "Realtime freight dashboards replacing a nightly batch pipeline.",
			Tags:    []string{"data", "logistics"},
		},
		{
			ID:      "01J00000000000000000000003",
			Title:   "Fernwood Studio",
			Slug:    "fernwood-studio",
			Summary: "Brand and commerce site for a furniture studio, headless storefront.",
			Tags:    []string{"commerce", "design"},
		},
		{
			ID:      "01J00000000000000000000004",
			Title:   "Helio Health",
			Slug:    "helio-health",
			Summary: "Patient intake flows cut from forty minutes to six.",
			Tags:    []string{"health", "ux"},
		},
	}
	for i := range entries {
		entries[i].CoverURL = casestudy.PlaceholderCover(entries[i].Slug)
	}
	return entries
}

// LoadFallbackCatalog reads a JSON array of case studies from path, for
// deployments that ship their own floor catalog. Records without a cover get
// the deterministic placeholder.
func LoadFallbackCatalog(path string) ([]casestudy.CaseStudyRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback catalog: %w", err)
	}
	var entries []casestudy.CaseStudyRef
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse fallback catalog: %w", err)
	}
	for i := range entries {
		if entries[i].CoverURL == "" {
			entries[i].CoverURL = casestudy.PlaceholderCover(entries[i].Slug)
		}
	}
	return entries, nil
}
