// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only vault tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/obi/internal/noteservice"
	"github.com/starford/obi/internal/output"
)

const mapResourceURI = "obi://map"

// Server wraps the MCP server with obi tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all obi tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"obi",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note: frontmatter, body, outgoing wiki-links and incoming links."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path to the note (.md optional)")),
		mcp.WithString("section", mcp.Description("Return only the section under this heading")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("note_toc",
		mcp.WithDescription("Heading outline of a note with levels and line numbers."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path to the note")),
	), s.noteTOC)

	s.mcp.AddTool(mcp.NewTool("note_links",
		mcp.WithDescription("Outgoing links, incoming links (backlinks) and two-hop connections of a note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path to the note")),
	), s.noteLinks)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in a folder with title, type and tags."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Case-insensitive search through note contents, one match per line."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search term")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("query_notes",
		mcp.WithDescription("Filter notes by frontmatter values. All given filters must match."),
		mcp.WithString("type", mcp.Description("Match the type field")),
		mcp.WithString("tag", mcp.Description("Match an entry of the tags array")),
		mcp.WithString("status", mcp.Description("Match the status field")),
	), s.queryNotes)

	s.mcp.AddTool(mcp.NewTool("recent_notes",
		mcp.WithDescription("Notes ordered by frontmatter updated_at, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 10)")),
	), s.recentNotes)

	s.mcp.AddTool(mcp.NewTool("unread_notes",
		mcp.WithDescription("Notes whose frontmatter has read: false."),
	), s.unreadNotes)

	s.mcp.AddTool(mcp.NewTool("vault_map",
		mcp.WithDescription("Vault structure: folders with note counts and every note's title, type and size."),
	), s.vaultMap)

	s.mcp.AddTool(mcp.NewTool("vault_schema",
		mcp.WithDescription("Declared property types plus the note types and tags in use."),
	), s.vaultSchema)

	s.mcp.AddTool(mcp.NewTool("vault_context",
		mcp.WithDescription("Obsidian workspace state: active file, open tabs, recent files and last search."),
	), s.vaultContext)

	s.mcp.AddResource(
		mcp.NewResource(mapResourceURI, "Vault Map",
			mcp.WithResourceDescription("Folders and notes of the vault with frontmatter metadata."),
			mcp.WithMIMEType("application/json"),
		),
		s.readMapResource,
	)

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

// toolResult renders v as indented JSON, or err as a tool error carrying the
// same object the CLI prints.
func toolResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		body, _ := json.Marshal(output.ErrorBody(err))
		return mcp.NewToolResultError(string(body)), nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(s.svc.Read(ctx, path, req.GetString("section", "")))
}

func (s *Server) noteTOC(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(s.svc.TOC(ctx, path))
}

func (s *Server) noteLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(s.svc.Links(ctx, path))
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.svc.List(ctx, req.GetString("folder", "")))
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(s.svc.Search(ctx, query))
}

func (s *Server) queryNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := make(map[string]string)
	for _, key := range []string{"type", "tag", "status"} {
		if v := req.GetString(key, ""); v != "" {
			filters[key] = v
		}
	}
	return toolResult(s.svc.Query(ctx, filters))
}

func (s *Server) recentNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.svc.Recent(ctx, req.GetInt("limit", 0)))
}

func (s *Server) unreadNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.svc.Unread(ctx))
}

func (s *Server) vaultMap(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.svc.Map(ctx))
}

func (s *Server) vaultSchema(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.svc.Schema(ctx))
}

func (s *Server) vaultContext(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.svc.Context(ctx))
}

func (s *Server) readMapResource(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	res, err := s.svc.Map(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      mapResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
