package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var shareResolveToolDef = mcp.NewTool("share_resolve",
	mcp.WithDescription("Resolve a share link's slugs into the intended case studies through the tiered pipeline (live catalog, inline payload, static fallback). Never fails; an empty result means no tier matched."),
	mcp.WithArray("slugs",
		mcp.Required(),
		mcp.Description("Requested case study slugs, in link order"),
		mcp.WithStringItems(),
	),
	mcp.WithString("d",
		mcp.Description("Optional inline payload blob from the link's d query parameter"),
	),
)

var shareEncodeToolDef = mcp.NewTool("share_encode",
	mcp.WithDescription("Encode a list of case studies into an inline payload blob and a complete share URL."),
	mcp.WithArray("items",
		mcp.Required(),
		mcp.Description("Case studies to embed, each {title, slug, summary, tags}"),
		mcp.Items(map[string]any{"type": "object"}),
	),
	mcp.WithString("for",
		mcp.Description("Optional recipient display name"),
	),
	mcp.WithString("note",
		mcp.Description("Optional note rendered to the recipient"),
	),
)

var shareDecodeToolDef = mcp.NewTool("share_decode",
	mcp.WithDescription("Decode an inline payload blob back into case studies. Reports whether the blob carried usable data."),
	mcp.WithString("d",
		mcp.Required(),
		mcp.Description("The inline payload blob"),
	),
)

var catalogListToolDef = mcp.NewTool("catalog_list",
	mcp.WithDescription("List every case study in the local catalog."),
)

var catalogImportToolDef = mcp.NewTool("catalog_import",
	mcp.WithDescription("Import case studies into the local catalog. Records sharing a normalized slug are replaced."),
	mcp.WithArray("items",
		mcp.Required(),
		mcp.Description("Case studies to import, each {title, slug, summary, cover_url, tags}"),
		mcp.Items(map[string]any{"type": "object"}),
	),
)

var curateStartToolDef = mcp.NewTool("curate_start",
	mcp.WithDescription("Begin a curation session. Any previous selection is discarded."),
)

var curateSelectToolDef = mcp.NewTool("curate_select",
	mcp.WithDescription("Add a case study to the current curation selection. The slug must exist in the catalog."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Slug of the case study to select"),
	),
)

var curateDeselectToolDef = mcp.NewTool("curate_deselect",
	mcp.WithDescription("Remove a case study from the current curation selection."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Slug of the case study to deselect"),
	),
)

var curateCancelToolDef = mcp.NewTool("curate_cancel",
	mcp.WithDescription("Abandon the current curation session and discard the selection."),
)

var curateLinkToolDef = mcp.NewTool("curate_link",
	mcp.WithDescription("Complete the curation session: mint a share URL for the current selection and clear it."),
	mcp.WithString("for",
		mcp.Description("Optional recipient display name"),
	),
	mcp.WithString("note",
		mcp.Description("Optional note rendered to the recipient"),
	),
)
