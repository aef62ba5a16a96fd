package resolver

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// RequestCache deduplicates resolution work inside one inbound request, so
// that the two independent render phases needing the packet (page metadata
// and page body) trigger exactly one resolution. The cache is scoped to a
// single request: create one per inbound request and let it go out of scope
// with the request.
//
// The composite key is (raw slug path, raw inline-payload blob) as received
// on the wire, before any parsing or normalization. Concurrent callers with
// the same key coalesce onto a single resolution pass.
type RequestCache struct {
	resolver *Resolver
	group    singleflight.Group

	mu      sync.Mutex
	results map[string]Packet
}

// NewRequestCache creates a cache over r.
func NewRequestCache(r *Resolver) *RequestCache {
	return &RequestCache{
		resolver: r,
		results:  make(map[string]Packet),
	}
}

// Resolve returns the packet for req, resolving at most once per composite
// key for the cache's lifetime.
func (c *RequestCache) Resolve(ctx context.Context, rawSlugPath, rawInline string, req Request) Packet {
	key := rawSlugPath + "\x00" + rawInline

	c.mu.Lock()
	if pkt, ok := c.results[key]; ok {
		c.mu.Unlock()
		return pkt
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(key, func() (any, error) {
		pkt := c.resolver.Resolve(ctx, req)
		c.mu.Lock()
		c.results[key] = pkt
		c.mu.Unlock()
		return pkt, nil
	})
	return v.(Packet)
}
