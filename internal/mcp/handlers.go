// Package mcp exposes the share-link operations as MCP tools over stdio.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/casestudy"
	"github.com/hpungsan/shareline/internal/catalog"
	"github.com/hpungsan/shareline/internal/config"
	"github.com/hpungsan/shareline/internal/errors"
	"github.com/hpungsan/shareline/internal/packet"
	"github.com/hpungsan/shareline/internal/resolver"
	"github.com/hpungsan/shareline/internal/selection"
	"github.com/hpungsan/shareline/internal/share"
)

// Handlers holds dependencies for MCP tool handlers. The selection bus and
// its mirror live for the whole server session, so a curation started in one
// tool call is visible to the next.
type Handlers struct {
	store    *catalog.Store
	cfg      *config.Config
	resolver *resolver.Resolver
	bus      *selection.Bus
	mirror   *selection.Mirror
	log      *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *catalog.Store, cfg *config.Config, log *zap.Logger) *Handlers {
	fallback := resolver.DefaultFallbackCatalog()
	if cfg.FallbackCatalogPath != "" {
		loaded, err := resolver.LoadFallbackCatalog(cfg.FallbackCatalogPath)
		if err != nil {
			log.Warn("fallback catalog unusable, using built-in",
				zap.String("path", cfg.FallbackCatalogPath), zap.Error(err))
		} else {
			fallback = loaded
		}
	}

	res := resolver.New(store,
		resolver.WithLogger(log),
		resolver.WithFallback(fallback),
		resolver.WithVerboseDiagnostics(cfg.VerboseResolveDiagnostics),
	)

	bus := selection.NewBus()
	return &Handlers{
		store:    store,
		cfg:      cfg,
		resolver: res,
		bus:      bus,
		mirror:   selection.Attach(bus),
		log:      log,
	}
}

// Close tears down the session-scoped selection bus.
func (h *Handlers) Close() {
	h.mirror.Detach()
	h.bus.Close()
}

// Request types for each tool

// ResolveRequest represents the arguments for share_resolve.
type ResolveRequest struct {
	Slugs  []string `json:"slugs"`
	Inline string   `json:"d,omitempty"`
}

// EncodeRequest represents the arguments for share_encode.
type EncodeRequest struct {
	Items []packet.Item `json:"items"`
	For   string        `json:"for,omitempty"`
	Note  string        `json:"note,omitempty"`
}

// DecodeRequest represents the arguments for share_decode.
type DecodeRequest struct {
	Inline string `json:"d"`
}

// CatalogImportRequest represents the arguments for catalog_import.
type CatalogImportRequest struct {
	Items []casestudy.CaseStudyRef `json:"items"`
}

// Handler implementations

// HandleResolve handles the share_resolve tool call.
func (h *Handlers) HandleResolve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ResolveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	pkt := h.resolver.Resolve(ctx, resolver.Request{
		Slugs:      input.Slugs,
		InlineData: packet.Decode(input.Inline),
	})
	return successResult(pkt)
}

// HandleEncode handles the share_encode tool call.
func (h *Handlers) HandleEncode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EncodeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if len(input.Items) == 0 {
		return errorResult(errors.NewInvalidRequest("items must not be empty")), nil
	}
	if len(input.Items) > packet.MaxItems {
		return errorResult(errors.NewPayloadTooLarge(packet.MaxItems, len(input.Items))), nil
	}

	refs := packet.Rehydrate(input.Items)
	return successResult(map[string]any{
		"d":   packet.Encode(refs),
		"url": share.BuildURL(h.cfg.PublicBaseURL, refs, input.For, input.Note),
	})
}

// HandleDecode handles the share_decode tool call.
func (h *Handlers) HandleDecode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DecodeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	items := packet.Decode(input.Inline)
	if items == nil {
		return successResult(map[string]any{"ok": false, "projects": []casestudy.CaseStudyRef{}})
	}
	return successResult(map[string]any{"ok": true, "projects": packet.Rehydrate(items)})
}

// HandleCatalogList handles the catalog_list tool call.
func (h *Handlers) HandleCatalogList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refs, err := h.store.ListAllProjects(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"count": len(refs), "items": refs})
}

// HandleCatalogImport handles the catalog_import tool call.
func (h *Handlers) HandleCatalogImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CatalogImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	raw, err := json.Marshal(input.Items)
	if err != nil {
		return errorResult(errors.NewInternal(err)), nil
	}
	result, err := h.store.Import(ctx, bytes.NewReader(raw))
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an error result from a Go error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if shareErr, ok := err.(*errors.ShareError); ok {
		errorObj := map[string]any{
			"code":    shareErr.Code,
			"message": shareErr.Message,
			"status":  shareErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if shareErr.Code != errors.ErrInternal && shareErr.Details != nil {
			errorObj["details"] = shareErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates a success result with JSON content.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
