// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes vault link completion to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/vaultlink/internal/apperr"
	"github.com/starford/vaultlink/internal/linkservice"
)

// Server wraps the MCP server with the completion tools.
type Server struct {
	mcp *server.MCPServer
	svc *linkservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *linkservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"vaultlink",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("complete_link",
		mcp.WithDescription("Rank the vault's files, headings and indexed blocks that a partially typed "+
			"wikilink may refer to. Use 'file' for a file, 'file#Heading' for a heading and "+
			"'file#^id' for a block. Returns JSON items, best match first."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text typed inside [[...]] so far, e.g. notes#Intro")),
	), s.completeLink)

	s.mcp.AddTool(mcp.NewTool("list_referenceables",
		mcp.WithDescription("List every referenceable node (file, heading, block, tag, footnote) of the vault or of one note."),
		mcp.WithString("path", mcp.Description("Optional note path (e.g. folder/note.md); empty for the whole vault")),
	), s.listReferenceables)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) completeLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := s.svc.Complete(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(c, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listReferenceables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := ""
	if p, err := req.RequireString("path"); err == nil {
		path = p
	}
	nodes, err := s.svc.Referenceables(ctx, path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(nodes, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
