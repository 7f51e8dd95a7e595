package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/vaultlink/internal/linkservice"
	"github.com/starford/vaultlink/internal/models"
	"github.com/starford/vaultlink/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db := testutil.SeedVault(t, map[string]string{
		"a.md": "# Introduction\n\nHello #greeting\n",
		"b.md": "Quoted line ^1\n",
	})
	svc := linkservice.NewService(db, linkservice.Options{Logger: testutil.Logger()})
	return New(svc, "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handlers are
	// invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "complete_link":
		result, err = srv.completeLink(ctx, req)
	case "list_referenceables":
		result, err = srv.listReferenceables(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCompleteLink(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "complete_link", map[string]interface{}{"query": "a#Intro"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var c linkservice.Completion
	if err := json.Unmarshal([]byte(resultText(r)), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.Items) == 0 || c.Items[0].InsertText != "a#Introduction" {
		t.Errorf("items = %+v", c.Items)
	}
}

func TestCompleteLink_MissingQuery(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "complete_link", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing query")
	}
}

func TestListReferenceables(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_referenceables", map[string]interface{}{})
	var nodes []models.Referenceable
	if err := json.Unmarshal([]byte(resultText(r)), &nodes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// a.md: file, heading, tag. b.md: file, block.
	if len(nodes) != 5 {
		t.Errorf("nodes = %+v, want 5", nodes)
	}
}

func TestListReferenceables_Missing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "list_referenceables", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}
