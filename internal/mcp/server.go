// Package mcp exposes the docs site to MCP clients: the page list, page
// outlines and the repository star count.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/walker"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Site is the part of the site generator the tools read from.
type Site interface {
	Discover() ([]walker.Page, error)
	Outline(relPath string) ([]outline.Heading, error)
}

// StarSource resolves the current star count.
type StarSource interface {
	Load(ctx context.Context) (int, bool)
}

// Server wraps an MCP server that exposes docs site tools.
type Server struct {
	site  Site
	stars StarSource
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server. stars may be nil when no repository
// is configured.
func NewServer(site Site, stars StarSource) *Server {
	s := &Server{
		site:  site,
		stars: stars,
	}

	s.mcp = server.NewMCPServer(
		"docsite",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(getPageOutlineTool, s.handleGetPageOutline)
	s.mcp.AddTool(getStarCountTool, s.handleGetStarCount)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
