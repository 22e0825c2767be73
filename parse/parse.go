// Package parse turns raw scraped tab text into a structured song via
// Gemini. The model does the messy work (aligning chords to lyrics,
// finding sections); this package owns the schema and the validation of
// whatever comes back.
package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jsphweid/musicbox/model"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const systemPrompt = `You are an expert music editor and transcriber.

Your task is to take RAW, MESSY text from a guitar tab website and convert
it into a clean, structured song object.

RULES:
1. ChordPro format: the content of each section MUST be in ChordPro format.
   - RAW:
     G       C
     Hello World
   - CONVERT TO: [G]Hello [C]World
2. Merge lines: accurately align chords with the lyrics they belong to.
3. Sections: identify verses, choruses, bridges. If no explicit headers
   exist, infer them or just use "Main".
4. Clean up: move "Strumming: DDU...", "Difficulty: Novice" and similar
   metadata out of the content and into the matching fields.
5. Validation: ensure all chords are valid chord names.`

// Parser is anything that can structure raw tab text. The Gemini
// implementation is the real one; tests plug in fakes.
type Parser interface {
	Parse(ctx context.Context, rawText, artistHint, titleHint string) (*model.Song, error)
}

type GeminiParser struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func NewGeminiParser(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*GeminiParser, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiParser{client: client, model: modelName, log: log}, nil
}

func (p *GeminiParser) Parse(ctx context.Context, rawText, artistHint, titleHint string) (*model.Song, error) {
	prompt := fmt.Sprintf(`Here is the raw text to parse:

---BEGIN RAW TEXT---
%v
---END RAW TEXT---

Hints (use if missing in text):
Artist: %v
Title: %v`, rawText, artistHint, titleHint)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    songSchema,
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini parse failed: %w", err)
	}

	text := resp.Text()
	p.log.Debug("parser response", zap.Int("bytes", len(text)))

	song, err := DecodeSong([]byte(text))
	if err != nil {
		return nil, err
	}
	applyHints(song, artistHint, titleHint)
	return song, nil
}

// songWire is what the schema asks the model for. Chords come back as an
// array because response schemas can't express arbitrary map keys.
type songWire struct {
	model.Song
	Chords []model.ChordDefinition `json:"chords,omitempty"`
}

// DecodeSong decodes and validates the model's JSON output. Voicings
// that fail validation are dropped, not fatal: the sheet still renders
// from the common library.
func DecodeSong(data []byte) (*model.Song, error) {
	var wire songWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("could not decode song JSON: %w", err)
	}

	song := wire.Song
	song.Chords = nil
	for _, c := range wire.Chords {
		if err := c.Validate(); err != nil {
			continue
		}
		if song.Chords == nil {
			song.Chords = make(map[string]model.ChordDefinition)
		}
		song.Chords[c.Name] = c
	}

	if strings.TrimSpace(song.Title) == "" && strings.TrimSpace(song.Artist) == "" && len(song.Sections) == 0 {
		return nil, fmt.Errorf("model returned an empty song")
	}
	return &song, nil
}

func applyHints(song *model.Song, artistHint, titleHint string) {
	if strings.TrimSpace(song.Artist) == "" && artistHint != "" {
		song.Artist = artistHint
	}
	if strings.TrimSpace(song.Title) == "" && titleHint != "" {
		song.Title = titleHint
	}
}

var songSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":          {Type: genai.TypeString},
		"artist":         {Type: genai.TypeString},
		"key":            {Type: genai.TypeString},
		"capo":           {Type: genai.TypeInteger},
		"tempo":          {Type: genai.TypeInteger, Description: "BPM"},
		"time_signature": {Type: genai.TypeString},
		"tuning":         {Type: genai.TypeString},
		"difficulty":     {Type: genai.TypeString, Description: "Beginner, Intermediate or Advanced"},
		"structure": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"sections": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type":            {Type: genai.TypeString, Description: "Verse, Chorus, Bridge, Intro, Outro, Solo"},
					"label":           {Type: genai.TypeString},
					"content":         {Type: genai.TypeString, Description: "ChordPro formatted lyrics"},
					"bar_progression": {Type: genai.TypeString, Description: "bar notation like |G|G|C|C|"},
					"repeat":          {Type: genai.TypeInteger},
				},
				Required: []string{"type", "content"},
			},
		},
		"chords": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString},
					"frets": {
						Type:        genai.TypeArray,
						Description: "6 values low E to high e; -1 muted, 0 open",
						Items:       &genai.Schema{Type: genai.TypeInteger},
					},
					"fingers": {
						Type:  genai.TypeArray,
						Items: &genai.Schema{Type: genai.TypeInteger},
					},
					"barre":     {Type: genai.TypeInteger},
					"base_fret": {Type: genai.TypeInteger},
				},
				Required: []string{"name", "frets"},
			},
		},
		"notes": {Type: genai.TypeString},
	},
	Required: []string{"title", "artist", "sections"},
}
