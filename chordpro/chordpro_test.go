package chordpro

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeBasicLine(t *testing.T) {
	tokens := Tokenize("[G]Hello [C]World")

	assert.Equal(t, []Token{
		{Chord: "G", Lyric: "Hello "},
		{Chord: "C", Lyric: "World"},
	}, tokens)
}

func TestTokenizeLeadingAndTrailingRuns(t *testing.T) {
	tokens := Tokenize("Oh [G]my [C]")

	assert.Equal(t, []Token{
		{Chord: "", Lyric: "Oh "},
		{Chord: "G", Lyric: "my "},
		{Chord: "C", Lyric: ""},
	}, tokens)
}

func TestTokenizeNoChords(t *testing.T) {
	tokens := Tokenize("Plain text no chords")

	assert.Equal(t, []Token{{Chord: "", Lyric: "Plain text no chords"}}, tokens)
}

func TestTokenizeUnmatchedBracketIsLyric(t *testing.T) {
	tokens := Tokenize("Hello [Gworld")

	var got string
	for _, tok := range tokens {
		got += tok.Lyric
	}
	assert.Equal(t, "Hello [Gworld", got)
}

func TestTokenizeRoundTrip(t *testing.T) {
	lines := []string{
		"[G]Hello [C]World",
		"  leading [Am7]and [D/F#]trailing  ",
		"[Em]",
		"",
		"no brackets at all",
		"[G]Ünïcödé [C]lyrics",
	}
	for _, line := range lines {
		var got string
		for _, tok := range Tokenize(line) {
			got += tok.Lyric
		}
		want := line
		for _, tok := range Tokenize(line) {
			if tok.Chord != "" {
				want = strings.Replace(want, "["+tok.Chord+"]", "", 1)
			}
		}
		assert.Equal(t, want, got, "line %q", line)
	}
}

func TestAlignChordsOverLyricStarts(t *testing.T) {
	chordRow, lyricRow := Align("[G]Hello [C]World")

	assert := assert.New(t)
	assert.Equal("G     C    ", chordRow)
	assert.Equal("Hello World", lyricRow)
	// G sits above the H column, C above the W column
	assert.Equal(strings.Index(lyricRow, "Hello"), strings.Index(chordRow, "G"))
	assert.Equal(strings.Index(lyricRow, "World"), strings.Index(chordRow, "C"))
}

func TestAlignChordLongerThanLyric(t *testing.T) {
	// "Am7" over the single letter "I" pushes the next token right
	chordRow, lyricRow := Align("[Am7]I [G]sing")

	assert := assert.New(t)
	assert.Equal("Am7 G   ", chordRow)
	assert.Equal("I   sing", lyricRow)
	assert.Equal(utf8.RuneCountInString(chordRow), utf8.RuneCountInString(lyricRow))
}

func TestAlignPlainLine(t *testing.T) {
	chordRow, lyricRow := Align("Plain text no chords")

	assert := assert.New(t)
	assert.Equal("", chordRow)
	assert.Equal("Plain text no chords", lyricRow)
}

func TestAlignChordOnlyLine(t *testing.T) {
	chordRow, lyricRow := Align("[G][C][D]")

	assert := assert.New(t)
	assert.Equal("GCD", chordRow)
	assert.Equal("   ", lyricRow)
}

func TestAlignEmptyLine(t *testing.T) {
	chordRow, lyricRow := Align("")

	assert := assert.New(t)
	assert.Equal("", chordRow)
	assert.Equal("", lyricRow)
}

func TestAlignRowsEqualWidth(t *testing.T) {
	lines := []string{
		"[G]Hello [C]World",
		"[Am7]I [G]sing",
		"lead in [D]then [A]chords [E]",
		"[Cadd9]x",
	}
	for _, line := range lines {
		chordRow, lyricRow := Align(line)
		if chordRow == "" {
			continue
		}
		assert.Equal(t,
			utf8.RuneCountInString(chordRow),
			utf8.RuneCountInString(lyricRow),
			"line %q", line)
	}
}

func TestAlignUnicodeWidths(t *testing.T) {
	// rune count, not byte count, decides the cell width
	chordRow, lyricRow := Align("[G]Füße [C]kalt")

	assert := assert.New(t)
	assert.Equal(utf8.RuneCountInString(chordRow), utf8.RuneCountInString(lyricRow))
	// C starts at rune column 5, right above the k of kalt
	assert.Equal(utf8.RuneCountInString("Füße "),
		utf8.RuneCountInString(chordRow[:strings.IndexByte(chordRow, 'C')]))
}
