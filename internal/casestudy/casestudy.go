package casestudy

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/oklog/ulid/v2"
)

// CaseStudyRef is one published case study as seen by the share pipeline.
// Identity is ID; Slug is the human-facing lookup key and is not guaranteed
// unique across sources without normalization.
type CaseStudyRef struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Summary  string   `json:"summary"`
	CoverURL string   `json:"cover_url"`
	Tags     []string `json:"tags"`
}

// NewID mints a ULID for a case study record.
func NewID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

// PlaceholderCover returns a deterministic cover image for a slug as an
// inline SVG data URI. Rehydrated inline-payload items carry no live cover
// field, so the placeholder must be computable without a network call. The
// fill color is derived from an FNV hash of the slug so the same slug always
// gets the same cover.
func PlaceholderCover(slug string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(slug))
	hue := h.Sum32() % 360
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="630"><rect width="100%%" height="100%%" fill="hsl(%d,45%%,35%%)"/></svg>`,
		hue,
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
