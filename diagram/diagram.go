package diagram

import (
	"fmt"

	"github.com/jsphweid/musicbox/model"
)

// Canvas geometry. PaddingTop leaves room for the chord name and the
// open/mute markers above the nut.
const (
	Width         = 60.0
	Height        = 80.0
	PaddingTop    = 18.0
	PaddingBottom = 8.0
	PaddingSide   = 8.0

	NumStrings = 6
	NumFrets   = 5
)

const (
	colorLine  = "#333333"
	colorDot   = "#111111"
	colorText  = "#111111"
	colorMuted = "#666666"
	colorBarre = "#222222"
)

const (
	stringSpacing = (Width - 2*PaddingSide) / (NumStrings - 1)
	fretSpacing   = (Height - PaddingTop - PaddingBottom) / NumFrets
)

// stringX gives the X coordinate of a string. 0 is low E (leftmost),
// 5 is high e; this ordering is load-bearing and never flipped.
func stringX(s int) float64 {
	return PaddingSide + float64(s)*stringSpacing
}

// fretY gives the Y coordinate of a fret line. 0 is the nut.
func fretY(f int) float64 {
	return PaddingTop + float64(f)*fretSpacing
}

// Render lays out one chord as a scene of primitives. Pure and total for
// validated definitions; fret positions whose display row falls outside
// the 5-row window are silently omitted rather than treated as errors.
func Render(c model.ChordDefinition) Scene {
	s := Scene{Width: Width, Height: Height}
	s.Elems = append(s.Elems, chordName(c))
	s.Elems = append(s.Elems, grid(c)...)
	s.Elems = append(s.Elems, stringMarkers(c)...)
	s.Elems = append(s.Elems, barre(c)...)
	s.Elems = append(s.Elems, fingerDots(c)...)
	return s
}

func chordName(c model.ChordDefinition) Element {
	return Label{
		X: Width / 2, Y: 12,
		Text: c.Name, Size: 12, Color: colorText,
		Anchor: "middle", Bold: true,
	}
}

func grid(c model.ChordDefinition) []Element {
	var elems []Element

	if c.Base() == 1 {
		// thick nut bar
		elems = append(elems, Rect{
			X: PaddingSide - 1, Y: PaddingTop - 3,
			W: Width - 2*PaddingSide + 2, H: 4,
			Color: colorLine,
		})
	} else {
		// moveable shape: print the base fret next to row 1
		elems = append(elems, Label{
			X: PaddingSide - 6, Y: fretY(1),
			Text: fmt.Sprintf("%vfr", c.Base()), Size: 8, Color: colorText,
			Anchor: "end", Middle: true,
		})
	}

	for f := 0; f <= NumFrets; f++ {
		y := fretY(f)
		elems = append(elems, Line{
			X1: PaddingSide, Y1: y, X2: Width - PaddingSide, Y2: y,
			Width: 1, Color: colorLine,
		})
	}
	for s := 0; s < NumStrings; s++ {
		x := stringX(s)
		elems = append(elems, Line{
			X1: x, Y1: PaddingTop, X2: x, Y2: fretY(NumFrets),
			Width: 1, Color: colorLine,
		})
	}
	return elems
}

func stringMarkers(c model.ChordDefinition) []Element {
	var elems []Element
	markerY := PaddingTop - 8.0

	for s, fret := range c.Frets {
		x := stringX(s)
		switch {
		case fret == -1:
			const size = 3
			elems = append(elems,
				Line{X1: x - size, Y1: markerY - size, X2: x + size, Y2: markerY + size, Width: 1.5, Color: colorMuted},
				Line{X1: x - size, Y1: markerY + size, X2: x + size, Y2: markerY - size, Width: 1.5, Color: colorMuted},
			)
		case fret == 0:
			elems = append(elems, Circle{CX: x, CY: markerY, R: 3, Stroke: colorLine, StrokeWidth: 1})
		}
	}
	return elems
}

func barre(c model.ChordDefinition) []Element {
	if c.Barre == 0 {
		return nil
	}

	displayRow := c.Barre - c.Base() + 1
	if displayRow < 1 || displayRow > NumFrets {
		return nil
	}

	// Only strings fretted at exactly the barre fret join the span.
	first, last := -1, -1
	count := 0
	for s, fret := range c.Frets {
		if fret == c.Barre {
			if first == -1 {
				first = s
			}
			last = s
			count++
		}
	}
	if count < 2 {
		return nil
	}

	x1 := stringX(first)
	x2 := stringX(last)
	y := fretY(displayRow) - fretSpacing/2
	return []Element{Rect{
		X: x1 - 4, Y: y - 3,
		W: x2 - x1 + 8, H: 6, RX: 3,
		Color: colorBarre,
	}}
}

func fingerDots(c model.ChordDefinition) []Element {
	var elems []Element
	const dotRadius = 4

	for s, fret := range c.Frets {
		if fret <= 0 {
			continue
		}
		displayRow := fret - c.Base() + 1
		if displayRow < 1 || displayRow > NumFrets {
			continue
		}

		x := stringX(s)
		y := fretY(displayRow) - fretSpacing/2
		elems = append(elems, Circle{CX: x, CY: y, R: dotRadius, Fill: colorDot})

		if len(c.Fingers) > s && c.Fingers[s] > 0 {
			elems = append(elems, Label{
				X: x, Y: y + 1,
				Text: fmt.Sprintf("%v", c.Fingers[s]), Size: 6, Color: "white",
				Anchor: "middle", Middle: true,
			})
		}
	}
	return elems
}

// Strip composes N diagrams left to right with fixed spacing. Each
// sub-scene is translated by i*(Width+spacing), nothing else.
func Strip(chords []model.ChordDefinition, spacing float64) Scene {
	if len(chords) == 0 {
		return Scene{}
	}

	total := float64(len(chords))*Width + float64(len(chords)-1)*spacing
	s := Scene{Width: total, Height: Height}
	for i, c := range chords {
		dx := float64(i) * (Width + spacing)
		for _, e := range Render(c).Elems {
			s.Elems = append(s.Elems, e.translated(dx, 0))
		}
	}
	return s
}
