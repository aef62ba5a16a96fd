package share

import (
	"net/url"
	"strings"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/packet"
)

// BuildURL composes a complete share link for the given records. The inline
// payload is always embedded so the link keeps working even if the catalog
// is unreachable when the recipient opens it.
func BuildURL(baseURL string, items []casestudy.CaseStudyRef, companyName, note string) string {
	segs := make([]string, len(items))
	for i, it := range items {
		segs[i] = url.PathEscape(it.Slug)
	}

	query := url.Values{}
	if companyName != "" {
		query.Set("for", companyName)
	}
	if note != "" {
		query.Set("note", note)
	}
	query.Set("d", packet.Encode(items))

	u := strings.TrimRight(baseURL, "/") + "/share/" + strings.Join(segs, ",")
	return u + "?" + query.Encode()
}
