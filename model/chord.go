package model

import "fmt"

// ChordDefinition is a complete voicing: one fret value per string,
// low E first. -1 means muted, 0 open, 1-24 fretted.
type ChordDefinition struct {
	Name     string `json:"name"`
	Frets    []int  `json:"frets"`
	Fingers  []int  `json:"fingers,omitempty"`
	Barre    int    `json:"barre,omitempty"`
	BaseFret int    `json:"base_fret,omitempty"`
}

// NumStrings is fixed; alternate tunings still have six strings.
const NumStrings = 6

// NewChordDefinition validates at construction so renderers never have to.
func NewChordDefinition(name string, frets []int) (ChordDefinition, error) {
	c := ChordDefinition{Name: name, Frets: frets, BaseFret: 1}
	if err := c.Validate(); err != nil {
		return ChordDefinition{}, err
	}
	return c, nil
}

// Validate checks a definition that arrived from outside (JSON from the
// LLM, a stored file). A zero BaseFret is tolerated and read as 1.
func (c ChordDefinition) Validate() error {
	if len(c.Frets) != NumStrings {
		return fmt.Errorf("chord %q: need exactly %v fret positions, got %v", c.Name, NumStrings, len(c.Frets))
	}
	for i, f := range c.Frets {
		if f < -1 || f > 24 {
			return fmt.Errorf("chord %q: string %v fret %v out of range (-1..24)", c.Name, i, f)
		}
	}
	if c.Fingers != nil {
		if len(c.Fingers) != NumStrings {
			return fmt.Errorf("chord %q: fingers must have %v entries, got %v", c.Name, NumStrings, len(c.Fingers))
		}
		for i, f := range c.Fingers {
			if f < 0 || f > 4 {
				return fmt.Errorf("chord %q: string %v finger %v out of range (0..4)", c.Name, i, f)
			}
		}
	}
	if c.BaseFret < 0 || c.BaseFret > 24 {
		return fmt.Errorf("chord %q: base fret %v out of range", c.Name, c.BaseFret)
	}
	if c.Barre < 0 || c.Barre > 24 {
		return fmt.Errorf("chord %q: barre fret %v out of range", c.Name, c.Barre)
	}
	return nil
}

// Base returns the display base fret, defaulting the zero value to 1.
func (c ChordDefinition) Base() int {
	if c.BaseFret < 1 {
		return 1
	}
	return c.BaseFret
}
