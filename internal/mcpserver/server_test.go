package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/obi/internal/models"
	"github.com/starford/obi/internal/noteservice"
	"github.com/starford/obi/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	_, store := testutil.TestVault(t, map[string]string{
		"a.md":       "---\ntitle: A\ntype: topic\ntags: [x]\n---\n# A\n\n## Part\n\nlinks to [[b]]\n",
		"notes/b.md": "---\nread: false\n---\nB body",
	})
	return New(noteservice.NewService("test", store, nil), "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no in-process "call tool" helper, so dispatch to the
	// handlers directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "note_toc":
		result, err = srv.noteTOC(ctx, req)
	case "note_links":
		result, err = srv.noteLinks(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "query_notes":
		result, err = srv.queryNotes(ctx, req)
	case "recent_notes":
		result, err = srv.recentNotes(ctx, req)
	case "unread_notes":
		result, err = srv.unreadNotes(ctx, req)
	case "vault_map":
		result, err = srv.vaultMap(ctx, req)
	case "vault_schema":
		result, err = srv.vaultSchema(ctx, req)
	case "vault_context":
		result, err = srv.vaultContext(ctx, req)
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

func TestReadNote(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "read_note", map[string]any{"path": "a", "section": "Part"})
	if r.IsError {
		t.Fatalf("read_note error: %s", resultText(r))
	}
	var res models.ReadResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.Body != "## Part\n\nlinks to [[b]]" {
		t.Errorf("body = %q", res.Body)
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "read_note", map[string]any{"path": "nope.md"})
	if !r.IsError {
		t.Fatal("expected error for missing note")
	}
	if !strings.Contains(resultText(r), "NOTE_NOT_FOUND") {
		t.Errorf("error text = %q", resultText(r))
	}
}

func TestReadNoteRequiresPath(t *testing.T) {
	srv := testServer(t)
	if r := callTool(t, srv, "read_note", map[string]any{}); !r.IsError {
		t.Error("expected error without path")
	}
}

func TestNoteLinks(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "note_links", map[string]any{"path": "notes/b.md"})
	var res models.LinksResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Incoming) != 1 || res.Incoming[0] != "a.md" {
		t.Errorf("incoming = %v", res.Incoming)
	}
}

func TestListAndQuery(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_notes", map[string]any{"folder": "notes"})
	if !strings.Contains(resultText(r), "notes/b.md") || strings.Contains(resultText(r), `"a.md"`) {
		t.Errorf("list = %s", resultText(r))
	}

	r = callTool(t, srv, "query_notes", map[string]any{"type": "topic", "tag": "x"})
	var res models.QueryResult
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 1 || res.Results[0].Path != "a.md" {
		t.Errorf("query = %+v", res.Results)
	}
}

func TestSearchAndUnread(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_notes", map[string]any{"query": "b body"})
	if !strings.Contains(resultText(r), `"line": 4`) {
		t.Errorf("search = %s", resultText(r))
	}

	r = callTool(t, srv, "unread_notes", map[string]any{})
	if !strings.Contains(resultText(r), "notes/b.md") {
		t.Errorf("unread = %s", resultText(r))
	}
}

func TestTOCRecentAndMap(t *testing.T) {
	srv := testServer(t)
	for _, name := range []string{"note_toc", "recent_notes", "vault_map"} {
		r := callTool(t, srv, name, map[string]any{"path": "a.md", "limit": 5})
		if r.IsError {
			t.Errorf("%s error: %s", name, resultText(r))
		}
	}
}

func TestSchemaAndContext(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "vault_schema", map[string]any{})
	var schema models.SchemaResult
	if err := json.Unmarshal([]byte(resultText(r)), &schema); err != nil {
		t.Fatal(err)
	}
	if len(schema.TypesInUse) != 1 || schema.TypesInUse[0] != "topic" || len(schema.TagsInUse) != 1 {
		t.Errorf("schema = %+v", schema)
	}

	r = callTool(t, srv, "vault_context", map[string]any{})
	var wsCtx models.ContextResult
	if err := json.Unmarshal([]byte(resultText(r)), &wsCtx); err != nil {
		t.Fatal(err)
	}
	if wsCtx.ActiveFile != nil || len(wsCtx.OpenTabs) != 0 {
		t.Errorf("context without workspace.json = %+v", wsCtx)
	}
}
