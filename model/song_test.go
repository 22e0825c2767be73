package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllChordNamesFromContent(t *testing.T) {
	s := Song{Sections: []SongSection{
		{Type: "Verse", Content: "[G]Hello [C]World [G]again"},
		{Type: "Chorus", Content: "[Am]La [C]la"},
	}}

	assert.Equal(t, []string{"Am", "C", "G"}, s.AllChordNames())
}

func TestAllChordNamesFromBarProgression(t *testing.T) {
	s := Song{Sections: []SongSection{
		{Type: "Intro", BarProgression: "|: G | G | C | C :| x2"},
	}}

	assert.Equal(t, []string{"C", "G"}, s.AllChordNames())
}

func TestAllChordNamesEmptySong(t *testing.T) {
	assert.Empty(t, Song{}.AllChordNames())
}

func TestToChordProHasDirectivesAndSections(t *testing.T) {
	s := Song{
		Title:  "Ripple",
		Artist: "Grateful Dead",
		Key:    "G",
		Capo:   2,
		Tempo:  76,
		Sections: []SongSection{
			{Type: "Verse", Label: "Verse 1", Content: "[G]If my words did glow"},
			{Type: "Intro", BarProgression: "|G|G|C|C|"},
		},
	}

	out := s.ToChordPro()

	assert := assert.New(t)
	assert.Contains(out, "{title: Ripple}")
	assert.Contains(out, "{artist: Grateful Dead}")
	assert.Contains(out, "{key: G}")
	assert.Contains(out, "{capo: 2}")
	assert.Contains(out, "{tempo: 76}")
	assert.Contains(out, "{comment: Verse 1}")
	assert.Contains(out, "[G]If my words did glow")
	assert.Contains(out, "|G|G|C|C|")
}

func TestDisplayLabelFallsBackToType(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Chorus", SongSection{Type: "Chorus"}.DisplayLabel())
	assert.Equal("Verse 2", SongSection{Type: "Verse", Label: "Verse 2"}.DisplayLabel())
}

func TestTabLineToASCII(t *testing.T) {
	tab := TabLine{
		HighE: "---0---", B: "-----1-", G: "---0---",
		D: "-2-----", A: "3------", LowE: "-------",
	}

	out := tab.ToASCII()
	assert.Contains(t, out, "e|---0---|")
	assert.Contains(t, out, "A|3------|")
}
