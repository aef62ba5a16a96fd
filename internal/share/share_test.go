package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/packet"
)

func TestParse_SlugSplitting(t *testing.T) {
	tests := []struct {
		name     string
		slugPath string
		want     []string
	}{
		{
			name:     "single slug",
			slugPath: "learn-xyz",
			want:     []string{"learn-xyz"},
		},
		{
			name:     "multiple slugs",
			slugPath: "learn-xyz,atlas-analytics",
			want:     []string{"learn-xyz", "atlas-analytics"},
		},
		{
			name:     "empty segments discarded",
			slugPath: ",learn-xyz,,atlas,",
			want:     []string{"learn-xyz", "atlas"},
		},
		{
			name:     "whitespace segments discarded",
			slugPath: " , learn-xyz ",
			want:     []string{"learn-xyz"},
		},
		{
			name:     "empty path",
			slugPath: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Parse(tt.slugPath, url.Values{})
			require.Equal(t, tt.want, req.Slugs)
		})
	}
}

func TestParse_QueryParams(t *testing.T) {
	blob := packet.Encode([]casestudy.CaseStudyRef{
		{Title: "Learn XYZ", Slug: "learn-xyz", Summary: "s", Tags: []string{"a"}},
	})
	query := url.Values{}
	query.Set("for", "Acme Corp")
	query.Set("note", "hand-picked for your team")
	query.Set("d", blob)

	req := Parse("learn-xyz", query)

	require.Equal(t, "Acme Corp", req.CompanyName)
	require.Equal(t, "hand-picked for your team", req.Note)
	require.Equal(t, blob, req.RawInline)
	require.Len(t, req.InlineData, 1)
	require.Equal(t, "learn-xyz", req.InlineData[0].Slug)
}

func TestParse_MalformedInlineIsAbsent(t *testing.T) {
	query := url.Values{}
	query.Set("d", "%%%not-a-payload")

	req := Parse("learn-xyz", query)

	require.Nil(t, req.InlineData)
	require.Equal(t, "%%%not-a-payload", req.RawInline)
}

func TestBuildURL_RoundTripsThroughParse(t *testing.T) {
	items := []casestudy.CaseStudyRef{
		{Title: "Learn XYZ", Slug: "learn-xyz", Summary: "s", Tags: []string{"a"}},
		{Title: "Atlas", Slug: "atlas-analytics", Summary: "s2", Tags: nil},
	}

	link := BuildURL("https://studio.example.com/", items, "Acme Corp", "enjoy")

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(u.Path, "/share/"))

	req := Parse(strings.TrimPrefix(u.Path, "/share/"), u.Query())
	require.Equal(t, []string{"learn-xyz", "atlas-analytics"}, req.Slugs)
	require.Equal(t, "Acme Corp", req.CompanyName)
	require.Equal(t, "enjoy", req.Note)
	require.Len(t, req.InlineData, 2)
	require.Equal(t, "Learn XYZ", req.InlineData[0].Title)
}

func TestBuildURL_OmitsEmptyParams(t *testing.T) {
	link := BuildURL("https://studio.example.com", []casestudy.CaseStudyRef{{Slug: "a", Title: "A"}}, "", "")
	u, err := url.Parse(link)
	require.NoError(t, err)
	require.False(t, u.Query().Has("for"))
	require.False(t, u.Query().Has("note"))
	require.True(t, u.Query().Has("d"))
}
