// Package stats turns raw character attributes plus accumulated effect modifiers
// into the bonuses used by rolls and damage formulas.
package stats

// Stat names a character attribute
type Stat string

// Gorean attributes
const (
	StatStrength  Stat = "Strength"
	StatAgility   Stat = "Agility"
	StatIntellect Stat = "Intellect"
	StatCharisma  Stat = "Charisma"
)

// Arkana attributes
const (
	StatPhysical  Stat = "Physical"
	StatDexterity Stat = "Dexterity"
	StatMental    Stat = "Mental"
)

// StatPerception is shared by both systems
const StatPerception Stat = "Perception"

// TierTable maps an attribute value to its modifier through a fixed non-linear table
type TierTable struct {
	Min       int   `json:"min" yaml:"min"`
	Modifiers []int `json:"modifiers" yaml:"modifiers"`
}

// DefaultTierTable is the 1-5 table both rule systems ship with
func DefaultTierTable() TierTable {
	return TierTable{Min: 1, Modifiers: []int{-2, 0, 2, 4, 6}}
}

// Max is the highest attribute value the table distinguishes
func (t TierTable) Max() int {
	return t.Min + len(t.Modifiers) - 1
}

// Lookup returns the tier modifier, clamping values outside the table to its ends
func (t TierTable) Lookup(value int) int {
	if len(t.Modifiers) == 0 {
		return 0
	}
	if value <= t.Min {
		return t.Modifiers[0]
	}
	if value >= t.Max() {
		return t.Modifiers[len(t.Modifiers)-1]
	}
	return t.Modifiers[value-t.Min]
}
