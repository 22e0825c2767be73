package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// TabLine is one measure of ASCII tablature, one string per guitar string.
// JSON keys follow the usual tab convention: lowercase e is the high string.
type TabLine struct {
	HighE string `json:"e"`
	B     string `json:"B"`
	G     string `json:"G"`
	D     string `json:"D"`
	A     string `json:"A"`
	LowE  string `json:"E"`
}

func (t TabLine) ToASCII() string {
	return fmt.Sprintf("e|%v|\nB|%v|\nG|%v|\nD|%v|\nA|%v|\nE|%v|",
		t.HighE, t.B, t.G, t.D, t.A, t.LowE)
}

// PickingPattern is a strumming or fingerpicking pattern, e.g. "D DU UDU".
type PickingPattern struct {
	Name        string    `json:"name"`
	Notation    string    `json:"notation"`
	BeatsPerBar int       `json:"beats_per_bar,omitempty"`
	Tab         []TabLine `json:"tab,omitempty"`
}

// SongSection is one logical block: verse, chorus, bridge, intro...
// Content is ChordPro text. Instrumental sections may have only a bar
// progression like |G|G|C|C| or tab lines.
type SongSection struct {
	Type           string    `json:"type"`
	Label          string    `json:"label,omitempty"`
	Content        string    `json:"content"`
	Tab            []TabLine `json:"tab,omitempty"`
	BarProgression string    `json:"bar_progression,omitempty"`
	PatternRef     string    `json:"pattern_ref,omitempty"`
	Repeat         int       `json:"repeat,omitempty"`
}

// DisplayLabel falls back to the section type when no custom label is set.
func (s SongSection) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Type
}

// Song is the source of truth for one chord sheet.
type Song struct {
	Title   string   `json:"title"`
	Artist  string   `json:"artist"`
	Writers []string `json:"writers,omitempty"`

	Key           string `json:"key,omitempty"`
	Capo          int    `json:"capo,omitempty"`
	Tempo         int    `json:"tempo,omitempty"`
	TimeSignature string `json:"time_signature,omitempty"`
	Tuning        string `json:"tuning,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`

	Structure []string      `json:"structure,omitempty"`
	Sections  []SongSection `json:"sections"`

	// Voicings specific to this song, overriding the common library.
	Chords map[string]ChordDefinition `json:"chords,omitempty"`

	Patterns []PickingPattern `json:"patterns,omitempty"`
	Notes    string           `json:"notes,omitempty"`

	SourceURL string `json:"source_url,omitempty"`
	AudioURL  string `json:"audio_url,omitempty"`
}

var bracketChord = regexp.MustCompile(`\[([^\]]+)\]`)

// AllChordNames extracts every unique chord name referenced by the song,
// from bracket markup and bar progressions, sorted.
func (s Song) AllChordNames() []string {
	seen := make(map[string]bool)
	for _, section := range s.Sections {
		for _, m := range bracketChord.FindAllStringSubmatch(section.Content, -1) {
			seen[m[1]] = true
		}
		if section.BarProgression != "" {
			cleaned := strings.NewReplacer("|", " ", ":", "").Replace(section.BarProgression)
			for _, bar := range strings.Fields(cleaned) {
				// repeat counts like x2 and rests are not chords
				if bar[0] >= 'A' && bar[0] <= 'G' {
					seen[bar] = true
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToChordPro exports the song as a standard ChordPro string.
func (s Song) ToChordPro() string {
	var out []string
	out = append(out, fmt.Sprintf("{title: %v}", s.Title))
	out = append(out, fmt.Sprintf("{artist: %v}", s.Artist))
	if s.Key != "" {
		out = append(out, fmt.Sprintf("{key: %v}", s.Key))
	}
	if s.Capo > 0 {
		out = append(out, fmt.Sprintf("{capo: %v}", s.Capo))
	}
	if s.Tempo > 0 {
		out = append(out, fmt.Sprintf("{tempo: %v}", s.Tempo))
	}
	out = append(out, "")

	for _, section := range s.Sections {
		out = append(out, fmt.Sprintf("{comment: %v}", section.DisplayLabel()))
		if section.BarProgression != "" {
			out = append(out, section.BarProgression)
		}
		if section.Content != "" {
			out = append(out, section.Content)
		}
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
