package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/errors"
	"github.com/hpungsan/shareline/internal/packet"
	"github.com/hpungsan/shareline/internal/share"
)

// CurateSelectRequest represents the arguments for curate_select and
// curate_deselect.
type CurateSelectRequest struct {
	Slug string `json:"slug"`
}

// CurateLinkRequest represents the arguments for curate_link.
type CurateLinkRequest struct {
	For  string `json:"for,omitempty"`
	Note string `json:"note,omitempty"`
}

// HandleCurateStart handles the curate_start tool call.
func (h *Handlers) HandleCurateStart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.bus.StartCuration()
	return successResult(map[string]any{"curating": true, "selected": []string{}})
}

// HandleCurateSelect handles the curate_select tool call. The slug must
// name a catalog record; the bus itself does no validation, so callers that
// publish directly can still select anything.
func (h *Handlers) HandleCurateSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CurateSelectRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !h.mirror.Curating() {
		return errorResult(errors.NewInvalidRequest("no curation session in progress")), nil
	}

	ref, err := h.store.GetProjectBySlug(ctx, input.Slug)
	if err != nil {
		return errorResult(err), nil
	}
	if ref == nil {
		return errorResult(errors.NewNotFound(input.Slug)), nil
	}

	h.bus.SelectItem(ref.Slug)
	return successResult(map[string]any{"curating": true, "selected": h.mirror.Selected()})
}

// HandleCurateDeselect handles the curate_deselect tool call.
func (h *Handlers) HandleCurateDeselect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CurateSelectRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !h.mirror.Curating() {
		return errorResult(errors.NewInvalidRequest("no curation session in progress")), nil
	}

	h.bus.DeselectItem(input.Slug)
	return successResult(map[string]any{"curating": true, "selected": h.mirror.Selected()})
}

// HandleCurateCancel handles the curate_cancel tool call.
func (h *Handlers) HandleCurateCancel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.mirror.Curating() {
		return errorResult(errors.NewInvalidRequest("no curation session in progress")), nil
	}
	h.bus.CancelCuration()
	return successResult(map[string]any{"curating": false, "selected": []string{}})
}

// HandleCurateLink handles the curate_link tool call. It resolves the
// selected slugs against the catalog, mints a share URL with the payload
// embedded, and ends the session.
func (h *Handlers) HandleCurateLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CurateLinkRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if !h.mirror.Curating() {
		return errorResult(errors.NewInvalidRequest("no curation session in progress")), nil
	}

	selected := h.mirror.Selected()
	if len(selected) == 0 {
		return errorResult(errors.NewInvalidRequest("selection is empty")), nil
	}

	refs := make([]casestudy.CaseStudyRef, 0, len(selected))
	for _, s := range selected {
		ref, err := h.store.GetProjectBySlug(ctx, s)
		if err != nil {
			return errorResult(err), nil
		}
		if ref == nil {
			// Selected earlier but deleted since; drop it rather than fail
			// the whole link.
			h.log.Warn("selected slug vanished from catalog", zap.String("slug", s))
			continue
		}
		refs = append(refs, *ref)
	}
	if len(refs) == 0 {
		return errorResult(errors.NewInvalidRequest("no selected case study exists in the catalog")), nil
	}

	url := share.BuildURL(h.cfg.PublicBaseURL, refs, input.For, input.Note)
	h.bus.EndCuration()

	slugs := make([]string, len(refs))
	for i, ref := range refs {
		slugs[i] = ref.Slug
	}
	return successResult(map[string]any{
		"url":   url,
		"d":     packet.Encode(refs),
		"slugs": slugs,
	})
}
