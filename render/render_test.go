package render

import (
	"strings"
	"testing"

	"github.com/jsphweid/musicbox/model"
	"github.com/stretchr/testify/assert"
)

func rippleSong() model.Song {
	return model.Song{
		Title:      "Ripple",
		Artist:     "Grateful Dead",
		Key:        "G",
		Tempo:      76,
		Difficulty: "Beginner",
		Structure:  []string{"intro", "verse1", "chorus", "outro"},
		Patterns: []model.PickingPattern{
			{Name: "Verse Picking", Notation: "T 1 2 3 T 1 2 3"},
		},
		Sections: []model.SongSection{
			{Type: "Intro", BarProgression: "|G|G|C|C|"},
			{Type: "Verse", Label: "Verse 1", Content: "[G]If my words did glow\n[C]with the gold of [G]sunshine"},
			{Type: "Chorus", Repeat: 2, Content: "[Am]Ripple in still [D]water"},
		},
		Notes: "Let the chords ring.",
	}
}

func TestSheetLayoutZones(t *testing.T) {
	sheet := Sheet(rippleSong())

	assert := assert.New(t)
	assert.Contains(sheet, "Ripple")
	assert.Contains(sheet, "Grateful Dead")
	assert.Contains(sheet, "Key: G  |  Tempo: 76 BPM  |  * Easy")
	assert.Contains(sheet, "Structure: Intro -> V1 -> C -> Outro")
	assert.Contains(sheet, "Verse Picking:  T 1 2 3 T 1 2 3")
	assert.Contains(sheet, "[Verse 1]")
	assert.Contains(sheet, "[Chorus (x2)]")
	assert.Contains(sheet, "|G|G|C|C|")
	assert.Contains(sheet, "Notes: Let the chords ring.")
}

func TestSheetAlignsChordRows(t *testing.T) {
	sheet := Sheet(rippleSong())
	lines := strings.Split(sheet, "\n")

	// the chord row must directly precede its lyric row
	for i, line := range lines {
		if strings.HasPrefix(line, "If my words") {
			assert.True(t, strings.HasPrefix(lines[i-1], "G"), "chord row above lyric, got %q", lines[i-1])
		}
	}
	assert.Contains(t, sheet, "If my words did glow")
}

func TestSheetSkipsBlankChordRow(t *testing.T) {
	s := model.Song{
		Title: "T", Artist: "A",
		Sections: []model.SongSection{{Type: "Verse", Content: "no chords here"}},
	}
	sheet := Sheet(s)

	lines := strings.Split(sheet, "\n")
	for i, line := range lines {
		if line == "no chords here" {
			assert.NotEqual(t, strings.TrimSpace(lines[i-1]), "", "no stray blank chord row wanted")
		}
	}
	assert.Contains(t, sheet, "no chords here")
}

func TestSheetWritersAttribution(t *testing.T) {
	s := rippleSong()
	s.Writers = []string{"Jerry Garcia", "Robert Hunter"}

	sheet := Sheet(s)
	assert.Contains(t, sheet, "Words & Music by Jerry Garcia & Robert Hunter")
}

func TestSheetRendersSectionTab(t *testing.T) {
	s := model.Song{
		Title: "T", Artist: "A",
		Sections: []model.SongSection{{
			Type: "Intro",
			Tab: []model.TabLine{{
				HighE: "--0--", B: "-1---", G: "0----",
				D: "-----", A: "-----", LowE: "-----",
			}},
		}},
	}

	sheet := Sheet(s)
	assert.Contains(t, sheet, "e|--0--|")
	assert.Contains(t, sheet, "B|-1---|")
}

func TestChordStripSVGUsesCommonLibrary(t *testing.T) {
	svg := ChordStripSVG(rippleSong())

	assert := assert.New(t)
	assert.Contains(svg, ">Am</text>")
	assert.Contains(svg, ">C</text>")
	assert.Contains(svg, ">D</text>")
	assert.Contains(svg, ">G</text>")
}

func TestChordStripSVGPrefersSongVoicings(t *testing.T) {
	s := rippleSong()
	// song ships its own G: a bar chord at the 3rd fret
	s.Chords = map[string]model.ChordDefinition{
		"G": {Name: "G", Frets: []int{3, 5, 5, 4, 3, 3}, Barre: 3, BaseFret: 1},
	}

	svg := ChordStripSVG(s)
	// the moveable-shape voicing has a barre bar (rounded rect)
	assert.Contains(t, svg, `rx="3"`)
}

func TestChordStripSVGUnknownChordsSkipped(t *testing.T) {
	s := model.Song{Sections: []model.SongSection{
		{Type: "Verse", Content: "[G]la [F#m11]la"},
	}}

	svg := ChordStripSVG(s)
	assert := assert.New(t)
	assert.Contains(svg, ">G</text>")
	assert.NotContains(svg, "F#m11")
}

func TestChordStripSVGEmptySong(t *testing.T) {
	assert.Equal(t, "", ChordStripSVG(model.Song{Title: "T"}))
}
