package effects

import (
	"time"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
)

// SceneTurns is the turnsLeft sentinel stored for scene-long effects. Turn
// processing never decrements it; only a scene clear ends the effect.
const SceneTurns = 999

// SourceKind represents where an effect comes from
type SourceKind string

const (
	SourceAbility SourceKind = "ability"
	SourceAttack  SourceKind = "attack"
	SourceItem    SourceKind = "item"
	SourceOther   SourceKind = "other"
)

// SourceInfo attributes an effect to whoever applied it, for combat log readability
type SourceInfo struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Kind SourceKind `json:"kind"`
}

// ActiveEffect is a live, timed instance of a catalogue effect on one character.
// A character holds at most one instance per effect id.
type ActiveEffect struct {
	EffectID  string             `json:"effect_id"`
	Duration  catalogue.Duration `json:"duration"`
	TurnsLeft int                `json:"turns_left"`
	AppliedAt time.Time          `json:"applied_at"`
	Source    *SourceInfo        `json:"source,omitempty"`
}

// IsScene reports whether the instance lasts until the scene is cleared
func (e ActiveEffect) IsScene() bool {
	return e.Duration.Kind == catalogue.DurationScene
}

// clone copies the instance so callers never share SourceInfo pointers
func (e ActiveEffect) clone() ActiveEffect {
	if e.Source != nil {
		src := *e.Source
		e.Source = &src
	}
	return e
}

// EffectResult is the outcome of executing one catalogue effect
type EffectResult struct {
	Definition catalogue.Definition `json:"definition"`
	Success    bool                 `json:"success"`

	// Amount is the damage dealt or hit points healed by an immediate effect
	Amount int `json:"amount,omitempty"`

	// OnSelf is set when the effect lands on whoever produced it
	OnSelf bool `json:"on_self,omitempty"`
}

// TurnResult is the outcome of one turn of effect decay
type TurnResult struct {
	Effects         []ActiveEffect
	Live            stats.LiveStats
	HealingApplied  int
	HealEffectNames []string

	// DamageApplied is the damage-over-time dealt this turn, before any reduction
	DamageApplied     int
	DamageEffectNames []string
}

// SceneResult is the outcome of clearing a scene
type SceneResult struct {
	Effects []ActiveEffect
	Live    stats.LiveStats
}
