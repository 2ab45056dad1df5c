// Package character is the persisted form of a combatant: base profile, active
// effects and the live stats derived from them.
package character

import (
	"time"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
)

// Character is a combatant as stored between calls
type Character struct {
	ID      string
	Name    string
	System  string
	Profile stats.Profile

	// Effects is the active effect list; Live is rebuilt from it on every change
	Effects []effects.ActiveEffect
	Live    stats.LiveStats

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Combatant returns the snapshot the resolver works from
func (c *Character) Combatant() combat.Combatant {
	clone := c.Clone()
	return combat.Combatant{
		ID:      clone.ID,
		Name:    clone.Name,
		Profile: clone.Profile,
		Effects: clone.Effects,
	}
}

// Source attributes effects this character applies
func (c *Character) Source(kind effects.SourceKind) *effects.SourceInfo {
	return &effects.SourceInfo{ID: c.ID, Name: c.Name, Kind: kind}
}

// Clone returns a deep copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Profile = cloneProfile(c.Profile)
	clone.Live = cloneLive(c.Live)

	if c.Effects != nil {
		clone.Effects = make([]effects.ActiveEffect, len(c.Effects))
		for i, effect := range c.Effects {
			if effect.Source != nil {
				src := *effect.Source
				effect.Source = &src
			}
			clone.Effects[i] = effect
		}
	}

	return &clone
}

func cloneProfile(p stats.Profile) stats.Profile {
	if p.Attributes != nil {
		attrs := make(map[stats.Stat]int, len(p.Attributes))
		for k, v := range p.Attributes {
			attrs[k] = v
		}
		p.Attributes = attrs
	}
	if p.Skills != nil {
		p.Skills = append([]stats.Skill(nil), p.Skills...)
	}
	if p.Permanent != nil {
		p.Permanent = append([]string(nil), p.Permanent...)
	}
	return p
}

func cloneLive(l stats.LiveStats) stats.LiveStats {
	out := stats.LiveStats{}
	if l.Values != nil {
		out.Values = make(map[stats.Key]int, len(l.Values))
		for k, v := range l.Values {
			out.Values[k] = v
		}
	}
	if l.Flags != nil {
		out.Flags = make(map[stats.Flag]string, len(l.Flags))
		for k, v := range l.Flags {
			out.Flags[k] = v
		}
	}
	if l.Sources != nil {
		out.Sources = make(map[stats.Key][]stats.Contribution, len(l.Sources))
		for k, v := range l.Sources {
			out.Sources[k] = append([]stats.Contribution(nil), v...)
		}
	}
	return out
}
