// Package chordpro parses single lines of "[Chord]lyric" markup and lays
// them out as two column-aligned monospace rows.
package chordpro

import (
	"strings"
	"unicode/utf8"
)

// Token pairs an optional chord label with the lyric run that follows it.
// Concatenating every Lyric in order reconstructs the line minus brackets.
type Token struct {
	Chord string
	Lyric string
}

// Tokenize splits one line into chord/lyric tokens. A lyric run before
// the first bracket (or after the last) becomes a chordless token. It is
// total: an unmatched '[' is treated as lyric text rather than an error.
func Tokenize(line string) []Token {
	var tokens []Token

	i := 0
	for i < len(line) {
		var chord string
		if line[i] == '[' {
			if j := strings.IndexByte(line[i:], ']'); j >= 0 {
				chord = line[i+1 : i+j]
				i += j + 1
			} else {
				tokens = append(tokens, Token{Lyric: line[i:]})
				break
			}
		}

		start := i
		for i < len(line) && line[i] != '[' {
			i++
		}
		tokens = append(tokens, Token{Chord: chord, Lyric: line[start:i]})
	}
	return tokens
}

// Align renders a line as a chord row over a lyric row. Each token becomes
// a cell as wide as the longer of its chord and lyric; both are right
// padded to the cell width, so every chord starts at the column where its
// lyric run starts. The chord row comes back empty for a chordless line
// so callers can suppress it.
func Align(line string) (chordRow, lyricRow string) {
	var chords, lyrics strings.Builder

	for _, tok := range Tokenize(line) {
		if tok.Chord == "" && tok.Lyric == "" {
			continue
		}
		w := utf8.RuneCountInString(tok.Chord)
		if l := utf8.RuneCountInString(tok.Lyric); l > w {
			w = l
		}
		chords.WriteString(pad(tok.Chord, w))
		lyrics.WriteString(pad(tok.Lyric, w))
	}

	chordRow = chords.String()
	if strings.TrimSpace(chordRow) == "" {
		chordRow = ""
	}
	return chordRow, lyrics.String()
}

func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
