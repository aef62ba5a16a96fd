// Package resolver reconstructs the set of case studies a share link was
// minted for, through four increasingly degraded data sources. Slug drift
// between the live catalog and previously distributed links is the primary
// failure mode it defends against.
package resolver

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/packet"
	"github.com/hpungsan/shareline/internal/slug"
)

// Request is one share-link resolution request, built once per inbound
// request and immutable afterwards.
type Request struct {
	Slugs       []string
	InlineData  []packet.Item
	CompanyName string
	Note        string
}

// Packet is the resolved record set for one share link. Projects may be
// shorter than Slugs when some slugs matched nowhere; it is never nil. An
// empty Projects list is a valid outcome ("no matching case studies found"),
// not a failure.
type Packet struct {
	Slugs    []string                 `json:"slugs"`
	Projects []casestudy.CaseStudyRef `json:"projects"`
}

// Resolver runs the tiered search. Zero tiers matching yields an empty
// packet; Resolve never returns an error.
type Resolver struct {
	source   Source
	fallback []casestudy.CaseStudyRef
	log      *zap.Logger
	verbose  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// WithFallback sets the static floor catalog consulted when every live and
// inline tier comes up empty.
func WithFallback(catalog []casestudy.CaseStudyRef) Option {
	return func(r *Resolver) { r.fallback = catalog }
}

// WithVerboseDiagnostics enables logging the live source's full slug list on
// a tier-1 miss. Off by default: it enumerates the whole catalog into logs.
func WithVerboseDiagnostics(on bool) Option {
	return func(r *Resolver) { r.verbose = on }
}

// New creates a Resolver over the given live source. A nil source is
// allowed; both live tiers then produce nothing.
func New(source Source, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("resolver")
	return r
}

// Resolve produces the final ordered record list for req. Tiers run in
// strict order and the first tier yielding at least one match wins:
//
//  1. bulk live listing, matched by normalized slug
//  2. per-slug live fetches, concurrent, failures isolated
//  3. the request's decoded inline payload, verbatim
//  4. the static fallback catalog
//
// Every internal failure is caught and treated as "this tier produced
// nothing"; Resolve itself never fails.
func (r *Resolver) Resolve(ctx context.Context, req Request) Packet {
	slugs := req.Slugs
	if slugs == nil {
		slugs = []string{}
	}
	pkt := Packet{Slugs: slugs, Projects: []casestudy.CaseStudyRef{}}
	if len(slugs) == 0 {
		return pkt
	}

	if projects := r.resolveBulk(ctx, slugs); len(projects) > 0 {
		r.log.Info("resolved via bulk listing",
			zap.Int("requested", len(slugs)),
			zap.Int("matches", len(projects)))
		pkt.Projects = projects
		return pkt
	}

	if projects := r.resolvePerSlug(ctx, slugs); len(projects) > 0 {
		r.log.Info("resolved via per-slug fetches",
			zap.Int("requested", len(slugs)),
			zap.Int("matches", len(projects)))
		pkt.Projects = projects
		return pkt
	}

	if len(req.InlineData) > 0 {
		r.log.Info("resolved via inline payload",
			zap.Int("requested", len(slugs)),
			zap.Int("matches", len(req.InlineData)))
		pkt.Projects = packet.Rehydrate(req.InlineData)
		return pkt
	}

	projects := matchBySlug(r.fallback, slugs)
	r.log.Info("resolved via static fallback catalog",
		zap.Int("requested", len(slugs)),
		zap.Int("matches", len(projects)))
	pkt.Projects = projects
	return pkt
}

// resolveBulk is tier 1: one "list all records" call, matched against the
// requested slugs by normalized form. Preferred because it carries live
// fields such as cover images.
func (r *Resolver) resolveBulk(ctx context.Context, slugs []string) []casestudy.CaseStudyRef {
	all, err := r.safeListAll(ctx)
	if err != nil {
		r.log.Warn("bulk listing unavailable", zap.Error(err))
		return nil
	}

	matched := matchBySlug(all, slugs)
	if len(matched) == 0 {
		r.log.Info("bulk listing had no matches",
			zap.Int("requested", len(slugs)),
			zap.Int("available", len(all)))
		if r.verbose {
			r.log.Debug("live source slugs", zap.Strings("available_slugs", slugsOf(all)))
		}
	}
	return matched
}

// resolvePerSlug is tier 2: each requested slug is fetched individually and
// concurrently, retrying once with the normalized form if the raw slug
// misses. One slug's failure never affects the others; the join policy is
// "wait for all, keep whatever succeeded".
func (r *Resolver) resolvePerSlug(ctx context.Context, slugs []string) []casestudy.CaseStudyRef {
	results := make([]*casestudy.CaseStudyRef, len(slugs))

	var wg sync.WaitGroup
	for i, s := range slugs {
		wg.Add(1)
		go func(i int, s string) {
			defer wg.Done()
			results[i] = r.fetchOne(ctx, s)
		}(i, s)
	}
	wg.Wait()

	var matched []casestudy.CaseStudyRef
	for _, ref := range results {
		if ref != nil {
			matched = append(matched, *ref)
		}
	}
	return matched
}

// fetchOne looks up a single slug, raw form first, normalized form second.
func (r *Resolver) fetchOne(ctx context.Context, s string) *casestudy.CaseStudyRef {
	ref, err := r.safeGetBySlug(ctx, s)
	if err != nil {
		r.log.Debug("slug fetch failed", zap.String("slug", s), zap.Error(err))
		ref = nil
	}
	if ref != nil {
		return ref
	}

	norm := slug.Normalize(s)
	if norm == s || norm == "" {
		return nil
	}
	ref, err = r.safeGetBySlug(ctx, norm)
	if err != nil {
		r.log.Debug("normalized slug fetch failed",
			zap.String("slug", s), zap.String("normalized", norm), zap.Error(err))
		return nil
	}
	return ref
}

// safeListAll calls the source's bulk listing, converting panics to errors.
func (r *Resolver) safeListAll(ctx context.Context) (refs []casestudy.CaseStudyRef, err error) {
	if r.source == nil {
		return nil, fmt.Errorf("no live source configured")
	}
	defer func() {
		if p := recover(); p != nil {
			refs = nil
			err = fmt.Errorf("list all projects panicked: %v", p)
		}
	}()
	return r.source.ListAllProjects(ctx)
}

// safeGetBySlug calls the source's per-slug lookup, converting panics to errors.
func (r *Resolver) safeGetBySlug(ctx context.Context, s string) (ref *casestudy.CaseStudyRef, err error) {
	if r.source == nil {
		return nil, fmt.Errorf("no live source configured")
	}
	defer func() {
		if p := recover(); p != nil {
			ref = nil
			err = fmt.Errorf("get project by slug panicked: %v", p)
		}
	}()
	return r.source.GetProjectBySlug(ctx, s)
}

// matchBySlug returns, in requested order, the first record in catalog whose
// normalized slug equals each requested slug's normalized form. Unmatched
// slugs are simply absent.
func matchBySlug(catalog []casestudy.CaseStudyRef, slugs []string) []casestudy.CaseStudyRef {
	var matched []casestudy.CaseStudyRef
	for _, s := range slugs {
		want := slug.Normalize(s)
		if want == "" {
			continue
		}
		for _, ref := range catalog {
			if slug.Normalize(ref.Slug) == want {
				matched = append(matched, ref)
				break
			}
		}
	}
	return matched
}

func slugsOf(refs []casestudy.CaseStudyRef) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.Slug
	}
	return out
}
