package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nishanthcgit/haystack-website/internal/outline"
)

func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := s.site.Discover()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing pages: %v", err)), nil
	}

	kind := request.GetString("kind", "")
	var b strings.Builder
	n := 0
	for _, p := range pages {
		if kind != "" && p.Kind.String() != kind {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s)\n", p.RelPath, p.Kind)
		n++
	}
	if n == 0 {
		return mcp.NewToolResultText("No pages found."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d pages:\n%s", n, b.String())), nil
}

func (s *Server) handleGetPageOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}

	headings, err := s.site.Outline(page)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mcp.NewToolResultError(fmt.Sprintf("page %q not found", page)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("reading outline: %v", err)), nil
	}

	forest := outline.Group(headings)
	if request.GetString("format", "tree") == "json" {
		if forest == nil {
			forest = []*outline.Node{}
		}
		raw, err := json.MarshalIndent(forest, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding outline: %v", err)), nil
		}
		return mcp.NewToolResultText(string(raw)), nil
	}

	if len(forest) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no headings.", page)), nil
	}
	return mcp.NewToolResultText(formatOutline(page, forest)), nil
}

func (s *Server) handleGetStarCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.stars == nil {
		return mcp.NewToolResultError("no repository configured"), nil
	}
	n, ok := s.stars.Load(ctx)
	if !ok {
		return mcp.NewToolResultError("star count unavailable"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d", n)), nil
}

// formatOutline renders the forest as an indented markdown list with anchors.
func formatOutline(page string, forest []*outline.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%d headings)\n\n", page, outline.Count(forest))
	writeNodes(&b, forest, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []*outline.Node, level int) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%s- %s (#%s)\n", strings.Repeat("  ", level), n.Value, outline.AnchorID(n.Value))
		writeNodes(b, n.Children, level+1)
	}
}
