package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docreader/internal/checklist"
	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/search"
)

// handleSearchDocs runs the substring search over the store.
func (s *Server) handleSearchDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	if s.engine.TooShort(query) {
		return mcp.NewToolResultError(fmt.Sprintf("query %q is too short to search", query)), nil
	}
	results := s.engine.Search(s.store.All(), query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No documents match %q.", query)), nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetDocument returns the markdown of one document.
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	doc, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No document with id %q. Use list_documents to see the available ids.", id,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\nSection: %s\n", doc.Title, doc.Section)
	prev, next := s.store.Neighbors(doc.ID)
	if prev != nil {
		fmt.Fprintf(&sb, "Previous: %s\n", prev.ID)
	}
	if next != nil {
		fmt.Fprintf(&sb, "Next: %s\n", next.ID)
	}
	sb.WriteString("\n")
	sb.WriteString(doc.Content)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListDocuments returns the table of contents of the store.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sections := s.store.Sections()
	if len(sections) == 0 {
		return mcp.NewToolResultText("No documents loaded."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d document(s):\n", s.store.Len())
	for _, sec := range sections {
		fmt.Fprintf(&sb, "\n## %s\n", sec.Name)
		for _, d := range sec.Documents {
			fmt.Fprintf(&sb, "- %s (id: %s)\n", d.Title, d.ID)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetChecklist reports the task items of a document.
func (s *Server) handleGetChecklist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	doc, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("No document with id %q.", id)), nil
	}

	m := checklist.NewManager(s.state, s.logger)
	if err := m.Load(ctx, doc.Content); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load checklist: %v", err)), nil
	}
	items := m.Items()
	if len(items) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no task items.", doc.Title)), nil
	}

	done, total := m.Progress()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d of %d done\n", doc.Title, done, total)
	for _, it := range items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		fmt.Fprintf(&sb, "%s%s %s (id: %s)\n", strings.Repeat("  ", it.Level), box, it.Text, it.ID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts search results into a text format suited to
// agent consumption.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Document: %s (id: %s)\n", r.Document.Title, r.Document.ID))
		sb.WriteString(fmt.Sprintf("Section: %s\n", r.Document.Section))
		sb.WriteString(fmt.Sprintf("Match: %s, %d occurrence(s)\n", r.MatchType, r.MatchCount))
		sb.WriteString(fmt.Sprintf("Route: %s\n", r.Route()))
		if r.Snippet != "" {
			sb.WriteString("\n")
			sb.WriteString(r.Snippet)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
