package agent

import (
	"context"
	"fmt"

	"github.com/jsphweid/musicbox/db"
	"github.com/jsphweid/musicbox/library"
	"github.com/jsphweid/musicbox/model"
	"github.com/jsphweid/musicbox/parse"
	"github.com/jsphweid/musicbox/scrape"
	"github.com/jsphweid/musicbox/theory"
	"go.uber.org/zap"
)

type SearchFunc func(ctx context.Context, query string, limit int) ([]scrape.Result, error)

type FetchFunc func(ctx context.Context, url string) (*scrape.RawTab, error)

// Pipeline is the fetch-chords workflow: search, fetch, structure,
// optionally simplify, render, save. Pieces are function/interface
// values so tests can run it without a network or an LLM.
type Pipeline struct {
	Search SearchFunc
	Fetch  FetchFunc
	Parser parse.Parser
	Lib    *library.Library
	Log    *zap.Logger
}

func (p Pipeline) logger() *zap.Logger {
	if p.Log != nil {
		return p.Log
	}
	return zap.NewNop()
}

// FetchChords runs the whole pipeline for one song request. The result
// map is shaped for an LLM tool response: either success with sheet info
// or an error with a suggestion the model can relay.
func (p Pipeline) FetchChords(ctx context.Context, song, artist string, simplify bool) map[string]any {
	info, err := p.fetchChords(ctx, song, artist, simplify)
	if err != nil {
		p.logger().Warn("fetch chords failed",
			zap.String("song", song), zap.String("artist", artist), zap.Error(err))
		return map[string]any{
			"success":    false,
			"error":      err.Error(),
			"suggestion": "I ran into a problem fetching those chords. Try pasting the text manually instead!",
		}
	}
	return map[string]any{
		"success":    true,
		"sheet_path": info.SheetPath,
		"name":       info.Name,
	}
}

func (p Pipeline) fetchChords(ctx context.Context, song, artist string, simplify bool) (model.SheetInfo, error) {
	query := fmt.Sprintf("%v %v chords", song, artist)
	results, err := p.Search(ctx, query, 3)
	if err != nil {
		return model.SheetInfo{}, fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		return model.SheetInfo{}, fmt.Errorf("could not find any chords for this song")
	}

	// first result is usually the best match
	target := results[0].URL
	raw, err := p.Fetch(ctx, target)
	if err != nil {
		return model.SheetInfo{}, fmt.Errorf("failed to extract content from %v: %w", target, err)
	}

	artistHint := artist
	if artistHint == "" {
		artistHint = raw.Artist
	}
	titleHint := song
	if titleHint == "" {
		titleHint = raw.Title
	}

	parsed, err := p.Parser.Parse(ctx, raw.Content, artistHint, titleHint)
	if err != nil {
		return model.SheetInfo{}, fmt.Errorf("parse: %w", err)
	}
	parsed.SourceURL = target
	enrich(parsed, p.logger())

	if simplify {
		*parsed = theory.Simplify(*parsed)
	}

	info, err := p.Lib.Save(*parsed)
	if err != nil {
		return model.SheetInfo{}, fmt.Errorf("save: %w", err)
	}

	p.logger().Info("sheet saved",
		zap.String("name", info.Name), zap.String("source", target))
	return info, nil
}

// enrich fills song metadata from the curated records when one exists.
// Lookup failures are logged and ignored.
func enrich(song *model.Song, log *zap.Logger) {
	key := library.SheetName(*song)
	metas, err := db.GetSongMetadatas([]string{key})
	if err != nil {
		log.Warn("metadata lookup failed", zap.Error(err))
		return
	}
	meta, ok := metas[key]
	if !ok {
		return
	}
	if meta.Title != "" {
		song.Title = meta.Title
	}
	if meta.Artist != "" {
		song.Artist = meta.Artist
	}
}
