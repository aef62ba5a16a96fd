package packet

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/hpungsan/shareline/internal/casestudy"
)

// MaxItems caps how many items an inline payload may carry. Anything larger
// is treated as malformed.
const MaxItems = 50

// Item is the abbreviated wire shape embedded in the "d" query parameter,
// one per selected record, ordered as selected.
type Item struct {
	Title   string   `json:"t"`
	Slug    string   `json:"s"`
	Summary string   `json:"d"`
	Tags    []string `json:"k"`
}

// Encode projects each record to an Item, serializes the sequence as JSON
// and encodes it as unpadded URL-safe base64, safe to embed verbatim in a
// query-string value.
func Encode(items []casestudy.CaseStudyRef) string {
	wire := make([]Item, len(items))
	for i, cs := range items {
		wire[i] = Item{
			Title:   cs.Title,
			Slug:    cs.Slug,
			Summary: cs.Summary,
			Tags:    cs.Tags,
		}
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses an inline payload blob. It returns nil when the blob is
// absent, not valid base64, not a well-formed JSON array, empty, or larger
// than MaxItems. Decode failures are silent: the inline payload is a
// best-effort fallback, so "no usable inline data" is a result, not an error.
func Decode(blob string) []Item {
	if blob == "" {
		return nil
	}
	raw, err := decodeBase64(blob)
	if err != nil {
		return nil
	}
	var wire []Item
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil
	}
	if len(wire) == 0 || len(wire) > MaxItems {
		return nil
	}
	return wire
}

// decodeBase64 accepts URL-safe and standard alphabets, padded or not.
// Inbound blobs may have survived a URL re-encoding pass somewhere between
// link minting and link opening.
func decodeBase64(blob string) ([]byte, error) {
	trimmed := strings.TrimRight(blob, "=")
	if raw, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(trimmed)
}

// Rehydrate converts decoded items back into full case-study records using
// each item's own abbreviated fields. IDs and covers are regenerated
// locally, not preserved: the payload never carried them.
func Rehydrate(items []Item) []casestudy.CaseStudyRef {
	refs := make([]casestudy.CaseStudyRef, len(items))
	for i, it := range items {
		id, err := casestudy.NewID()
		if err != nil {
			id = "" // best effort; identity is irrelevant for display-only fallbacks
		}
		refs[i] = casestudy.CaseStudyRef{
			ID:       id,
			Title:    it.Title,
			Slug:     it.Slug,
			Summary:  it.Summary,
			CoverURL: casestudy.PlaceholderCover(it.Slug),
			Tags:     it.Tags,
		}
	}
	return refs
}
