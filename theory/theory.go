// Package theory implements semitone transposition over chord labels,
// ChordPro text, and whole songs, plus the "Kid Mode" simplifier.
package theory

import (
	"regexp"
	"strings"

	"github.com/jsphweid/musicbox/chord"
	"github.com/jsphweid/musicbox/model"
)

// Fixed chromatic ordering; output spelling prefers sharps.
var chromatic = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Accepted root spellings, enharmonics included.
var noteIndex = map[string]int{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D": 2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"F": 5, "E#": 5,
	"F#": 6, "Gb": 6,
	"G": 7,
	"G#": 8, "Ab": 8,
	"A": 9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

// Characters that can appear in a chord quality/extension suffix.
// Anything else (say "at" in "Cat") means the label is not a chord.
const suffixChars = "majdinsugo0123456789#b+-()/°øΔM"

// splitRoot peels the root pitch class off a label: a letter A-G plus an
// optional single accidental. Two-char roots win over one-char (C# vs C).
func splitRoot(label string) (root, rest string, ok bool) {
	if label == "" || label[0] < 'A' || label[0] > 'G' {
		return "", "", false
	}
	if len(label) >= 2 && (label[1] == '#' || label[1] == 'b') {
		return label[:2], label[2:], true
	}
	return label[:1], label[1:], true
}

func validSuffix(suffix string) bool {
	for _, r := range suffix {
		if !strings.ContainsRune(suffixChars, r) {
			return false
		}
	}
	return true
}

func shift(root string, semitones int) (string, bool) {
	idx, ok := noteIndex[root]
	if !ok {
		return "", false
	}
	return chromatic[((idx+semitones)%12+12)%12], true
}

// Transpose shifts a chord label by n semitones. Labels that do not parse
// as chords pass through unchanged; bracket content is never a hard error.
// Slash basses transpose too when the right side is a note ("G/B" -> "A/C#"),
// and stay put when it is part of the quality ("C6/9" -> "D6/9").
func Transpose(label string, semitones int) string {
	root, rest, ok := splitRoot(label)
	if !ok {
		return label
	}

	suffix := rest
	bass := ""
	if i := strings.LastIndexByte(rest, '/'); i >= 0 {
		if r, after, ok := splitRoot(rest[i+1:]); ok && after == "" {
			suffix = rest[:i]
			bass = r
		}
	}
	if !validSuffix(suffix) {
		return label
	}

	newRoot, ok := shift(root, semitones)
	if !ok {
		return label
	}
	out := newRoot + suffix
	if bass != "" {
		newBass, ok := shift(bass, semitones)
		if !ok {
			return label
		}
		out += "/" + newBass
	}
	return out
}

var bracketGroup = regexp.MustCompile(`\[([^\]]+)\]`)

// TransposeText rewrites every bracketed chord in a ChordPro string.
func TransposeText(text string, semitones int) string {
	return bracketGroup.ReplaceAllStringFunc(text, func(m string) string {
		return "[" + Transpose(m[1:len(m)-1], semitones) + "]"
	})
}

func transposeBarProgression(progression string, semitones int) string {
	if progression == "" {
		return ""
	}
	var b strings.Builder
	token := func(t string) string {
		if t != "" && t[0] >= 'A' && t[0] <= 'G' {
			return Transpose(t, semitones)
		}
		return t
	}
	start := -1
	for i := 0; i <= len(progression); i++ {
		atEnd := i == len(progression)
		var c byte
		if !atEnd {
			c = progression[i]
		}
		if atEnd || c == '|' || c == ' ' || c == ':' {
			if start >= 0 {
				b.WriteString(token(progression[start:i]))
				start = -1
			}
			if !atEnd {
				b.WriteByte(c)
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return b.String()
}

// TransposeSong returns a new song shifted by n semitones. The song-local
// voicing map is dropped: those shapes belong to the old pitches.
func TransposeSong(s model.Song, semitones int) model.Song {
	out := s
	out.Key = Transpose(s.Key, semitones)
	out.Chords = nil

	out.Sections = make([]model.SongSection, len(s.Sections))
	for i, section := range s.Sections {
		sec := section
		sec.Content = TransposeText(section.Content, semitones)
		sec.BarProgression = transposeBarProgression(section.BarProgression, semitones)
		out.Sections[i] = sec
	}
	return out
}

// Simplify picks the transposition whose chords are easiest to play and
// returns the shifted song ("Kid Mode"). Easy means the name resolves to
// a barre-free first-position voicing in the common library. Ties go to
// the smallest absolute shift, so an already easy song stays put.
func Simplify(s model.Song) model.Song {
	names := s.AllChordNames()
	if len(names) == 0 {
		return s
	}

	best, bestScore := 0, -1
	for step := 0; step < 12; step++ {
		// prefer downshifts at most a tritone away
		signed := step
		if signed > 6 {
			signed -= 12
		}

		score := 0
		for _, name := range names {
			if isOpenChord(Transpose(name, signed)) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && abs(signed) < abs(best)) {
			best, bestScore = signed, score
		}
	}

	if best == 0 {
		return s
	}
	return TransposeSong(s, best)
}

func isOpenChord(name string) bool {
	c, ok := chord.Lookup(name)
	return ok && c.Barre == 0 && c.Base() == 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
