// Package chord holds the static library of common guitar voicings used
// when a song does not ship its own shapes.
package chord

import (
	"sort"

	"github.com/jsphweid/musicbox/model"
	"github.com/jsphweid/musicbox/util"
)

// Common maps chord names to first-position voicings. Loaded once,
// never mutated; callers copy before changing anything.
var Common = map[string]model.ChordDefinition{
	"G":     {Name: "G", Frets: []int{3, 2, 0, 0, 0, 3}, Fingers: []int{2, 1, 0, 0, 0, 3}},
	"C":     {Name: "C", Frets: []int{-1, 3, 2, 0, 1, 0}, Fingers: []int{0, 3, 2, 0, 1, 0}},
	"D":     {Name: "D", Frets: []int{-1, -1, 0, 2, 3, 2}, Fingers: []int{0, 0, 0, 1, 3, 2}},
	"Am":    {Name: "Am", Frets: []int{-1, 0, 2, 2, 1, 0}, Fingers: []int{0, 0, 2, 3, 1, 0}},
	"A":     {Name: "A", Frets: []int{-1, 0, 2, 2, 2, 0}, Fingers: []int{0, 0, 1, 2, 3, 0}},
	"E":     {Name: "E", Frets: []int{0, 2, 2, 1, 0, 0}, Fingers: []int{0, 2, 3, 1, 0, 0}},
	"Em":    {Name: "Em", Frets: []int{0, 2, 2, 0, 0, 0}, Fingers: []int{0, 2, 3, 0, 0, 0}},
	"F":     {Name: "F", Frets: []int{1, 3, 3, 2, 1, 1}, Fingers: []int{1, 3, 4, 2, 1, 1}, Barre: 1},
	"Dm":    {Name: "Dm", Frets: []int{-1, -1, 0, 2, 3, 1}, Fingers: []int{0, 0, 0, 2, 3, 1}},
	"B7":    {Name: "B7", Frets: []int{-1, 2, 1, 2, 0, 2}, Fingers: []int{0, 2, 1, 3, 0, 4}},
	"Cadd9": {Name: "Cadd9", Frets: []int{-1, 3, 2, 0, 3, 0}, Fingers: []int{0, 2, 1, 0, 3, 0}},
	"Dsus4": {Name: "Dsus4", Frets: []int{-1, -1, 0, 2, 3, 3}, Fingers: []int{0, 0, 0, 1, 2, 3}},
	"G/B":   {Name: "G/B", Frets: []int{-1, 2, 0, 0, 0, 3}, Fingers: []int{0, 1, 0, 0, 0, 2}},
}

// Lookup finds a common voicing by name.
func Lookup(name string) (model.ChordDefinition, bool) {
	c, ok := Common[name]
	return c, ok
}

// Names lists the library's chord names sorted.
func Names() []string {
	names := util.GetKeys(Common)
	sort.Strings(names)
	return names
}
