package dictionary

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "dicofr-test", Version: "0.1.0"}

func mcpSession(t *testing.T) (*mcp.ClientSession, *fakeFetcher) {
	t.Helper()
	svc, f := newTestService(t)
	srv := mcp.NewServer(testMCPImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session, f
}

func mcpCall(t *testing.T, session *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return result
}

func mcpText(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result := mcpCall(t, session, name, args)
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_Lookup(t *testing.T) {
	session, _ := mcpSession(t)

	text := mcpText(t, session, "dicofr_lookup", map[string]any{"word": "chat", "senses": 1})
	var e Entry
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Parsed.Header.Title != "chat" || len(e.Parsed.Senses) != 1 {
		t.Errorf("entry: %+v", e.Parsed)
	}
}

func TestMCP_LookupBlankWordIsToolError(t *testing.T) {
	session, _ := mcpSession(t)
	result := mcpCall(t, session, "dicofr_lookup", map[string]any{"word": " "})
	if !result.IsError {
		t.Error("expected tool error for blank word")
	}
}

func TestMCP_Parse(t *testing.T) {
	session, _ := mcpSession(t)

	text := mcpText(t, session, "dicofr_parse", map[string]any{"html": chatFragment, "max_senses": 2})
	var resp struct {
		Header struct {
			GrammaticalCategory string `json:"grammatical_category"`
		} `json:"header"`
		Senses []json.RawMessage `json:"senses"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Header.GrammaticalCategory != "nom masculin" || len(resp.Senses) != 2 {
		t.Errorf("parse: %+v", resp)
	}
}

func TestMCP_Suggest(t *testing.T) {
	session, _ := mcpSession(t)

	text := mcpText(t, session, "dicofr_suggest", map[string]any{"term": "che"})
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0] != "cheval" {
		t.Errorf("suggestions: %v", resp.Suggestions)
	}
}

func TestMCP_HistoryAndDelete(t *testing.T) {
	session, _ := mcpSession(t)

	mcpText(t, session, "dicofr_lookup", map[string]any{"word": "chat"})

	text := mcpText(t, session, "dicofr_history", map[string]any{})
	var hist struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal([]byte(text), &hist); err != nil {
		t.Fatal(err)
	}
	if len(hist.Words) != 1 || hist.Words[0] != "chat" {
		t.Errorf("history: %v", hist.Words)
	}

	text = mcpText(t, session, "dicofr_history_delete", map[string]any{"word": "chat"})
	var del struct {
		Deleted bool `json:"deleted"`
	}
	json.Unmarshal([]byte(text), &del)
	if !del.Deleted {
		t.Errorf("delete: %s", text)
	}
}

func TestMCP_ParseZeroSenses(t *testing.T) {
	session, _ := mcpSession(t)

	text := mcpText(t, session, "dicofr_parse", map[string]any{"html": chatFragment, "max_senses": 0})
	var resp struct {
		Header struct {
			Title string `json:"title"`
		} `json:"header"`
		Senses []json.RawMessage `json:"senses"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Header.Title != "chat" || len(resp.Senses) != 0 {
		t.Errorf("parse: %s", text)
	}
}
