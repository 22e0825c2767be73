// Package render composes a full printable sheet from a song: a
// monospace text body and an SVG strip of chord diagrams. Page breaks
// and pagination are the printing side's problem, not ours.
package render

import (
	"fmt"
	"strings"

	"github.com/jsphweid/musicbox/chord"
	"github.com/jsphweid/musicbox/chordpro"
	"github.com/jsphweid/musicbox/diagram"
	"github.com/jsphweid/musicbox/model"
)

// SheetWidth is the character width the text body is centered within.
const SheetWidth = 72

const stripSpacing = 10

var structureAbbrev = map[string]string{
	"intro": "Intro", "verse": "V", "verse1": "V1", "verse2": "V2",
	"verse3": "V3", "verse4": "V4", "chorus": "C", "chorus1": "C1",
	"chorus2": "C2", "bridge": "Br", "outro": "Outro", "solo": "Solo",
	"prechorus": "Pre", "interlude": "Int",
}

var difficultyStars = map[string]string{
	"Beginner":     "* Easy",
	"Intermediate": "** Intermediate",
	"Advanced":     "*** Advanced",
}

// Sheet renders the whole song as monospace text.
func Sheet(s model.Song) string {
	var out []string

	out = append(out, center(s.Title))
	out = append(out, center(attribution(s)))
	if meta := metaLine(s); meta != "" {
		out = append(out, center(meta))
	}
	if len(s.Structure) > 0 {
		out = append(out, center("Structure: "+structureMap(s.Structure)))
	}
	out = append(out, "")

	for _, p := range s.Patterns {
		out = append(out, fmt.Sprintf("%v:  %v", p.Name, p.Notation))
		for _, tab := range p.Tab {
			out = append(out, tab.ToASCII())
		}
	}
	if len(s.Patterns) > 0 {
		out = append(out, "")
	}

	for _, section := range s.Sections {
		out = append(out, renderSection(section)...)
		out = append(out, "")
	}

	if s.Notes != "" {
		out = append(out, "Notes: "+s.Notes)
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n") + "\n"
}

func attribution(s model.Song) string {
	if len(s.Writers) > 0 {
		return "Words & Music by " + strings.Join(s.Writers, " & ")
	}
	return s.Artist
}

func metaLine(s model.Song) string {
	var parts []string
	if s.Key != "" {
		parts = append(parts, "Key: "+s.Key)
	}
	if s.Capo > 0 {
		parts = append(parts, fmt.Sprintf("Capo: Fret %v", s.Capo))
	}
	if s.Tempo > 0 {
		parts = append(parts, fmt.Sprintf("Tempo: %v BPM", s.Tempo))
	}
	if s.TimeSignature != "" && s.TimeSignature != "4/4" {
		parts = append(parts, "Time: "+s.TimeSignature)
	}
	if s.Tuning != "" && s.Tuning != "Standard" {
		parts = append(parts, "Tuning: "+s.Tuning)
	}
	if s.Difficulty != "" {
		if stars, ok := difficultyStars[s.Difficulty]; ok {
			parts = append(parts, stars)
		} else {
			parts = append(parts, s.Difficulty)
		}
	}
	return strings.Join(parts, "  |  ")
}

func structureMap(structure []string) string {
	parts := make([]string, len(structure))
	for i, s := range structure {
		if short, ok := structureAbbrev[strings.ToLower(s)]; ok {
			parts[i] = short
		} else {
			parts[i] = s
		}
	}
	return strings.Join(parts, " -> ")
}

func renderSection(section model.SongSection) []string {
	label := section.DisplayLabel()
	if section.Repeat > 1 {
		label += fmt.Sprintf(" (x%v)", section.Repeat)
	}
	out := []string{"[" + label + "]"}

	if section.BarProgression != "" {
		out = append(out, section.BarProgression)
	}
	for _, tab := range section.Tab {
		out = append(out, tab.ToASCII())
	}

	for _, line := range strings.Split(section.Content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		chordRow, lyricRow := chordpro.Align(line)
		if chordRow != "" {
			out = append(out, chordRow)
		}
		out = append(out, lyricRow)
	}
	return out
}

func center(s string) string {
	if n := (SheetWidth - len(s)) / 2; n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// ChordStripSVG renders the diagram strip for every chord the song uses.
// Song-local voicings win over the common library; names known to
// neither are left out rather than guessed at.
func ChordStripSVG(s model.Song) string {
	var defs []model.ChordDefinition
	for _, name := range s.AllChordNames() {
		if c, ok := s.Chords[name]; ok {
			if c.Validate() == nil {
				defs = append(defs, c)
			}
			continue
		}
		if c, ok := chord.Lookup(name); ok {
			defs = append(defs, c)
		}
	}
	if len(defs) == 0 {
		return ""
	}
	return diagram.WriteSVG(diagram.Strip(defs, stripSpacing))
}
