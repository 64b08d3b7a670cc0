package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the documentation by case-insensitive substring. Title matches rank first, then by number of occurrences."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for in document titles and content"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// getDocumentTool defines the get_document MCP tool.
var getDocumentTool = mcp.NewTool("get_document",
	mcp.WithDescription("Get the full markdown of a document by its id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Document id, the path under the docs directory without .md"),
	),
)

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List every document grouped by section, in reading order."),
)

// getChecklistTool defines the get_checklist MCP tool.
var getChecklistTool = mcp.NewTool("get_checklist",
	mcp.WithDescription("Get the task-list items of a document with their saved checked state."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Document id"),
	),
)
