package packet

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/shareline/internal/casestudy"
)

func sampleRefs() []casestudy.CaseStudyRef {
	return []casestudy.CaseStudyRef{
		{
			ID:       "01HZXK3V9T0000000000000001",
			Title:    "Learn XYZ",
			Slug:     "learn-xyz",
			Summary:  "Shipped an adaptive learning platform.",
			CoverURL: "https://cdn.example.com/learn-xyz.jpg",
			Tags:     []string{"education", "react"},
		},
		{
			ID:      "01HZXK3V9T0000000000000002",
			Title:   "Atlas Analytics",
			Slug:    "atlas-analytics",
			Summary: "Realtime dashboards for logistics.",
			Tags:    []string{"data"},
		},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	refs := sampleRefs()
	blob := Encode(refs)
	require.NotEmpty(t, blob)

	items := Decode(blob)
	require.Len(t, items, len(refs))
	for i, it := range items {
		require.Equal(t, refs[i].Title, it.Title)
		require.Equal(t, refs[i].Slug, it.Slug)
		require.Equal(t, refs[i].Summary, it.Summary)
		require.Equal(t, refs[i].Tags, it.Tags)
	}
}

func TestEncode_URLSafe(t *testing.T) {
	blob := Encode(sampleRefs())
	if strings.ContainsAny(blob, "+/=") {
		t.Errorf("blob must be safe to embed verbatim in a query value, got %q", blob)
	}
}

func TestDecode_Silent(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "absent", blob: ""},
		{name: "not base64", blob: "not-base64!!!"},
		{name: "base64 but not json", blob: base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{name: "json but not array", blob: base64.RawURLEncoding.EncodeToString([]byte(`{"t":"x"}`))},
		{name: "json null", blob: base64.RawURLEncoding.EncodeToString([]byte(`null`))},
		{name: "empty array", blob: Encode(nil)},
		{name: "array of scalars", blob: base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.blob); got != nil {
				t.Errorf("Decode(%q) = %v, want nil", tt.blob, got)
			}
		})
	}
}

func TestDecode_ForgivingAlphabets(t *testing.T) {
	payload := `[{"t":"Learn XYZ","s":"learn-xyz","d":"s","k":["a"]}]`

	variants := []string{
		base64.RawURLEncoding.EncodeToString([]byte(payload)),
		base64.URLEncoding.EncodeToString([]byte(payload)),
		base64.StdEncoding.EncodeToString([]byte(payload)),
	}
	for _, blob := range variants {
		items := Decode(blob)
		require.Len(t, items, 1, "blob %q", blob)
		require.Equal(t, "learn-xyz", items[0].Slug)
	}
}

func TestDecode_TooManyItems(t *testing.T) {
	refs := make([]casestudy.CaseStudyRef, MaxItems+1)
	for i := range refs {
		refs[i] = casestudy.CaseStudyRef{Slug: "s", Title: "t"}
	}
	if got := Decode(Encode(refs)); got != nil {
		t.Errorf("oversized payload should decode to nil, got %d items", len(got))
	}
}

func TestRehydrate(t *testing.T) {
	items := Decode(Encode(sampleRefs()))
	refs := Rehydrate(items)
	require.Len(t, refs, 2)

	// Title/slug/summary/tags come from the payload; id and cover are
	// regenerated, not preserved.
	require.Equal(t, "Learn XYZ", refs[0].Title)
	require.Equal(t, "learn-xyz", refs[0].Slug)
	require.NotEqual(t, "01HZXK3V9T0000000000000001", refs[0].ID)
	require.Equal(t, casestudy.PlaceholderCover("learn-xyz"), refs[0].CoverURL)
	require.NotEqual(t, "https://cdn.example.com/learn-xyz.jpg", refs[0].CoverURL)
}
