// Package share parses and builds share-link URLs of the form
// /share/<comma-separated-slugs>?for=<name>&note=<text>&d=<payload>.
package share

import (
	"net/url"
	"strings"

	"github.com/hpungsan/shareline/internal/packet"
	"github.com/hpungsan/shareline/internal/resolver"
)

// Request carries one parsed share URL. Built once per inbound request and
// immutable afterwards. The Raw fields preserve the wire values for use as
// the request-cache composite key.
type Request struct {
	RawSlugPath string
	RawInline   string

	Slugs       []string
	InlineData  []packet.Item
	CompanyName string
	Note        string
}

// Parse builds a Request from the percent-decoded slug path segment and the
// URL query. Slugs are split on ","; empty segments are discarded. A
// malformed "d" payload simply yields no inline data.
func Parse(slugPath string, query url.Values) Request {
	var slugs []string
	for _, seg := range strings.Split(slugPath, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			slugs = append(slugs, seg)
		}
	}

	rawInline := query.Get("d")
	return Request{
		RawSlugPath: slugPath,
		RawInline:   rawInline,
		Slugs:       slugs,
		InlineData:  packet.Decode(rawInline),
		CompanyName: query.Get("for"),
		Note:        query.Get("note"),
	}
}

// ResolverRequest projects the parsed request into the resolver's input.
func (r Request) ResolverRequest() resolver.Request {
	return resolver.Request{
		Slugs:       r.Slugs,
		InlineData:  r.InlineData,
		CompanyName: r.CompanyName,
		Note:        r.Note,
	}
}
