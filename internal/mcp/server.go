// Package mcp exposes the document store to agents over the Model Context
// Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/docreader/internal/docstore"
	"github.com/ziadkadry99/docreader/internal/kvstore"
	"github.com/ziadkadry99/docreader/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes documentation tools.
type Server struct {
	store  *docstore.Store
	state  kvstore.Store
	engine search.Engine
	logger *slog.Logger
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over store. state may be nil, in
// which case checklists report every item unchecked.
func NewServer(store *docstore.Store, state kvstore.Store, engine search.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if state == nil {
		state = kvstore.NewMemoryStore()
	}
	s := &Server{
		store:  store,
		state:  state,
		engine: engine,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		"docreader",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(getDocumentTool, s.handleGetDocument)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(getChecklistTool, s.handleGetChecklist)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
