package dictionary

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/dicofr/kit"
)

// RegisterMCP registers the dicofr tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerLookupTool(srv)
	s.registerParseTool(srv)
	s.registerSuggestTool(srv)
	s.registerHistoryTool(srv)
	s.registerHistoryDeleteTool(srv)
}

func (s *Service) endpoint(name string, e kit.Endpoint) kit.Endpoint {
	return kit.Logging(s.logger, name)(e)
}

// --- lookup ---

type lookupReq struct {
	Word   string `json:"word"`
	Senses *int   `json:"senses"`
}

func (s *Service) registerLookupTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "dicofr_lookup",
		Description: "Look up a French word: header, numbered senses with examples, synonyms and antonyms, plus the definition as Markdown.",
		InputSchema: kit.ObjectSchema(map[string]any{
			"word":   map[string]any{"type": "string", "description": "Word to define"},
			"senses": map[string]any{"type": "integer", "description": "Maximum number of senses; omit for the configured default, 0 for the header only"},
		}, []string{"word"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*lookupReq)
		return s.Lookup(ctx, r.Word, sensesOrDefault(r.Senses))
	}
	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeJSON[lookupReq]())
}

// --- parse ---

func (s *Service) registerParseTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "dicofr_parse",
		Description: "Parse a dictionary HTML fragment into header and senses.",
		InputSchema: kit.ObjectSchema(map[string]any{
			"html":       map[string]any{"type": "string", "description": "Definition fragment"},
			"max_senses": map[string]any{"type": "integer", "description": "Maximum number of senses; omit for the configured default, 0 for the header only"},
		}, []string{"html"}),
	}
	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*ParseRequest)
		return s.Parse(r.HTML, sensesOrDefault(r.MaxSenses)), nil
	}
	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeJSON[ParseRequest]())
}

// --- suggest ---

type suggestReq struct {
	Term string `json:"term"`
}

func (s *Service) registerSuggestTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "dicofr_suggest",
		Description: "Suggest dictionary words starting with a prefix (at least 2 characters).",
		InputSchema: kit.ObjectSchema(map[string]any{
			"term": map[string]any{"type": "string", "description": "Prefix"},
		}, []string{"term"}),
	}
	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*suggestReq)
		return map[string]any{"suggestions": s.Suggest(r.Term)}, nil
	}
	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeJSON[suggestReq]())
}

// --- history ---

type historyReq struct{}

func (s *Service) registerHistoryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "dicofr_history",
		Description: "List previously looked-up words, newest first.",
		InputSchema: kit.ObjectSchema(map[string]any{}, nil),
	}
	endpoint := func(ctx context.Context, _ any) (any, error) {
		items, err := s.History(ctx)
		if err != nil {
			return nil, err
		}
		words := make([]string, 0, len(items))
		for _, e := range items {
			words = append(words, e.Word)
		}
		return map[string]any{"words": words}, nil
	}
	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeJSON[historyReq]())
}

// --- history delete ---

type historyDeleteReq struct {
	Word string `json:"word"`
}

func (s *Service) registerHistoryDeleteTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "dicofr_history_delete",
		Description: "Remove a word from the lookup history.",
		InputSchema: kit.ObjectSchema(map[string]any{
			"word": map[string]any{"type": "string", "description": "Word to remove"},
		}, []string{"word"}),
	}
	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*historyDeleteReq)
		ok, err := s.DeleteHistory(ctx, r.Word)
		if err != nil {
			return nil, err
		}
		return map[string]any{"word": normalizeWord(r.Word), "deleted": ok}, nil
	}
	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeJSON[historyDeleteReq]())
}
