package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hpungsan/shareline/internal/catalog"
	"github.com/hpungsan/shareline/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"share_resolve": {
		def:     shareResolveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleResolve },
	},
	"share_encode": {
		def:     shareEncodeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEncode },
	},
	"share_decode": {
		def:     shareDecodeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDecode },
	},
	"catalog_list": {
		def:     catalogListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCatalogList },
	},
	"catalog_import": {
		def:     catalogImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCatalogImport },
	},
	"curate_start": {
		def:     curateStartToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCurateStart },
	},
	"curate_select": {
		def:     curateSelectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCurateSelect },
	},
	"curate_deselect": {
		def:     curateDeselectToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCurateDeselect },
	},
	"curate_cancel": {
		def:     curateCancelToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCurateCancel },
	},
	"curate_link": {
		def:     curateLinkToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCurateLink },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Shareline tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(store *catalog.Store, cfg *config.Config, log *zap.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"shareline",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, cfg, log)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Warn("unknown tool in disabled_tools", zap.String("tool", name))
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(store *catalog.Store, cfg *config.Config, log *zap.Logger, version string) error {
	s := NewServer(store, cfg, log, version)
	return server.ServeStdio(s)
}
