package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/resolver"
	"github.com/hpungsan/shareline/internal/share"
)

// Handlers contains HTTP route handlers for share links.
type Handlers struct {
	resolver *resolver.Resolver
	source   resolver.Source
	renderer *Renderer
	log      *zap.Logger
}

// PageMeta is what the metadata render phase produces for the document head.
type PageMeta struct {
	Title       string
	Description string
}

// SharePageData is the template data for the share page.
type SharePageData struct {
	Meta        PageMeta
	Version     string
	CompanyName string
	NoteHTML    template.HTML
	Slugs       []string
	Projects    []casestudy.CaseStudyRef
}

// IndexPageData is the template data for the catalog index page.
type IndexPageData struct {
	Meta     PageMeta
	Version  string
	Projects []casestudy.CaseStudyRef
}

// HandleShare handles GET /share/{slugs}, the share landing page.
//
// Metadata generation and body rendering are two independent phases that
// both need the resolved packet; a request-scoped cache guarantees they
// trigger exactly one resolution. An empty packet renders the explicit
// "nothing found" state, never an error page.
func (h *Handlers) HandleShare(w http.ResponseWriter, r *http.Request) {
	req := share.Parse(r.PathValue("slugs"), r.URL.Query())
	cache := resolver.NewRequestCache(h.resolver)

	meta := h.buildMeta(r.Context(), cache, req)
	pkt := h.resolvePacket(r.Context(), cache, req)

	h.renderer.renderPage(w, http.StatusOK, "share.html", SharePageData{
		Meta:        meta,
		Version:     h.renderer.version,
		CompanyName: req.CompanyName,
		NoteHTML:    renderMarkdown(req.Note),
		Slugs:       pkt.Slugs,
		Projects:    pkt.Projects,
	})
}

// HandleShareAPI handles GET /api/share/{slugs}, the share packet as JSON.
func (h *Handlers) HandleShareAPI(w http.ResponseWriter, r *http.Request) {
	req := share.Parse(r.PathValue("slugs"), r.URL.Query())
	cache := resolver.NewRequestCache(h.resolver)

	pkt := h.resolvePacket(r.Context(), cache, req)

	renderJSON(w, http.StatusOK, map[string]any{
		"slugs":        pkt.Slugs,
		"projects":     pkt.Projects,
		"company_name": req.CompanyName,
		"note":         req.Note,
	})
}

// HandleIndex handles GET /, the published catalog.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	var projects []casestudy.CaseStudyRef
	if h.source != nil {
		refs, err := h.source.ListAllProjects(r.Context())
		if err != nil {
			h.log.Warn("catalog listing failed", zap.Error(err))
		} else {
			projects = refs
		}
	}

	h.renderer.renderPage(w, http.StatusOK, "index.html", IndexPageData{
		Meta:     PageMeta{Title: "Case studies"},
		Version:  h.renderer.version,
		Projects: projects,
	})
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.renderer.version})
}

func (h *Handlers) resolvePacket(ctx context.Context, cache *resolver.RequestCache, req share.Request) resolver.Packet {
	return cache.Resolve(ctx, req.RawSlugPath, req.RawInline, req.ResolverRequest())
}

// buildMeta is the metadata phase: it needs the same packet as the body and
// must not trigger a second resolution.
func (h *Handlers) buildMeta(ctx context.Context, cache *resolver.RequestCache, req share.Request) PageMeta {
	pkt := h.resolvePacket(ctx, cache, req)

	title := "Selected case studies"
	switch {
	case req.CompanyName != "" && len(pkt.Projects) > 0:
		title = fmt.Sprintf("%d case studies for %s", len(pkt.Projects), req.CompanyName)
	case req.CompanyName != "":
		title = "Case studies for " + req.CompanyName
	case len(pkt.Projects) > 0:
		title = fmt.Sprintf("%d selected case studies", len(pkt.Projects))
	}

	titles := make([]string, 0, len(pkt.Projects))
	for _, p := range pkt.Projects {
		titles = append(titles, p.Title)
	}
	description := "No matching case studies found."
	if len(titles) > 0 {
		description = strings.Join(titles, " · ")
	}

	return PageMeta{Title: title, Description: description}
}
