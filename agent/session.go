package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const systemPrompt = `You are MusicBox, a friendly and enthusiastic guitar learning assistant!

Your goal is to help a dad and his son find, learn, and print guitar chord sheets.
You're encouraging, practical, and love sharing the joy of music.

YOUR ABILITIES:
1. Brainstorming: Suggest beginner-friendly songs (G, D, C, Em are great starters).
2. Finding Chords: Use fetch_chords to find a song and generate a printable sheet.
3. Simplifying: If they find a song too hard, suggest "Kid Mode" (simplification).
4. Research: Use web_search to find info about artists or guitar tips.

PERSONALITY:
- Use music emojis.
- Keep responses relatively concise but warm.
- If a user asks for chords, ALWAYS trigger fetch_chords.
- After generating a sheet, mention that it's ready in their library.

Example Beginner Songs to suggest:
- "Knockin' on Heaven's Door" (G, D, Am, C)
- "Three Little Birds" (A, D, E)
- "Horse With No Name" (Em, D6/9)`

// maxToolRounds bounds the tool-calling loop so a confused model
// cannot spin forever.
const maxToolRounds = 6

// Response is one assistant turn. SheetPath is set when a tool call
// produced a new sheet during the turn.
type Response struct {
	Content   string `json:"content"`
	SheetPath string `json:"sheet_path,omitempty"`
}

// Session is a single chat conversation with history. Safe for
// concurrent use, though turns are serialized.
type Session struct {
	ID string

	client   *genai.Client
	model    string
	pipeline Pipeline
	log      *zap.Logger

	mu      sync.Mutex
	history []*genai.Content
}

func NewSession(ctx context.Context, apiKey, model string, pipeline Pipeline, log *zap.Logger) (*Session, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		ID:       uuid.NewString(),
		client:   client,
		model:    model,
		pipeline: pipeline,
		log:      log,
	}, nil
}

func tools() []*genai.Tool {
	return []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "web_search",
				Description: "Search the web for song suggestions, music tips, or artist info.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString},
					},
					Required: []string{"query"},
				},
			},
			{
				Name:        "fetch_chords",
				Description: "Fetch chords for a specific song and generate a printable sheet. Set simplify=true for 'Kid Mode' (avoiding hard barre chords).",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"song":     {Type: genai.TypeString},
						"artist":   {Type: genai.TypeString},
						"simplify": {Type: genai.TypeBoolean},
					},
					Required: []string{"song", "artist"},
				},
			},
		},
	}}
}

// Chat processes one user message, running tool calls until the model
// produces a plain text reply.
func (s *Session) Chat(ctx context.Context, userMsg string) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, genai.NewContentFromText(userMsg, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools:             tools(),
	}

	var sheetPath string
	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.client.Models.GenerateContent(ctx, s.model, s.history, cfg)
		if err != nil {
			return Response{}, fmt.Errorf("generate: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return Response{}, fmt.Errorf("model returned no candidates")
		}
		s.history = append(s.history, resp.Candidates[0].Content)

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return Response{Content: resp.Text(), SheetPath: sheetPath}, nil
		}

		var parts []*genai.Part
		for _, call := range calls {
			result := s.dispatch(ctx, call.Name, call.Args)
			if p, ok := result["sheet_path"].(string); ok && p != "" {
				sheetPath = p
			}
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, result))
		}
		s.history = append(s.history, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return Response{}, fmt.Errorf("model exceeded %v tool rounds without answering", maxToolRounds)
}

func (s *Session) dispatch(ctx context.Context, name string, args map[string]any) map[string]any {
	s.log.Info("tool call", zap.String("session", s.ID), zap.String("tool", name))
	switch name {
	case "web_search":
		query, _ := args["query"].(string)
		return s.webSearch(ctx, query)
	case "fetch_chords":
		song, _ := args["song"].(string)
		artist, _ := args["artist"].(string)
		simplify, _ := args["simplify"].(bool)
		return s.pipeline.FetchChords(ctx, song, artist, simplify)
	default:
		return map[string]any{"error": fmt.Sprintf("unknown tool %q", name)}
	}
}

func (s *Session) webSearch(ctx context.Context, query string) map[string]any {
	results, err := s.pipeline.Search(ctx, query, 5)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	// round-trip through json keeps the tool payload to plain maps
	raw, err := json.Marshal(results)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	var plain []map[string]any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return map[string]any{"error": err.Error()}
	}
	anyResults := make([]any, len(plain))
	for i, r := range plain {
		anyResults[i] = r
	}
	return map[string]any{"results": anyResults}
}
