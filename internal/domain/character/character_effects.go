package character

import (
	"time"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
)

// Recalculate rebuilds live stats from the profile and active effects
func (c *Character) Recalculate(lookup catalogue.Lookup) {
	c.Live = effects.Recalculate(c.Profile, c.Effects, lookup)
}

// ApplyEffectResult lands one effect result on this character. Immediate damage
// and healing change hit points; lasting effects join the active list. Returns
// the hit point change (negative for damage).
func (c *Character) ApplyEffectResult(result effects.EffectResult, source *effects.SourceInfo, now time.Time, lookup catalogue.Lookup) int {
	if !result.Success {
		return 0
	}

	before := c.Profile.HitPoints
	def := result.Definition
	if !def.Duration.IsStored() {
		switch def.Category {
		case catalogue.CategoryDamage:
			c.Profile = c.Profile.TakeDamage(result.Amount)
		case catalogue.CategoryHeal:
			c.Profile = c.Profile.Heal(result.Amount)
		}
	}

	c.Effects = effects.Apply(c.Effects, result, source, now)
	c.Recalculate(lookup)
	return c.Profile.HitPoints - before
}

// TakeDamage subtracts damage from hit points, never below zero
func (c *Character) TakeDamage(amount int) int {
	before := c.Profile.HitPoints
	c.Profile = c.Profile.TakeDamage(amount)
	return before - c.Profile.HitPoints
}

// AdvanceTurn runs one turn of effect decay. Damage over time lands first, then
// healing, clamped to maximum hit points. Returns the turn result and the hit
// points actually restored and lost.
func (c *Character) AdvanceTurn(lookup catalogue.Lookup) (result effects.TurnResult, healed, damaged int) {
	result = effects.ProcessTurn(c.Effects, c.Profile, lookup)

	damaged = c.TakeDamage(result.DamageApplied)

	before := c.Profile.HitPoints
	c.Profile = c.Profile.Heal(result.HealingApplied)
	healed = c.Profile.HitPoints - before

	c.Effects = result.Effects
	c.Live = result.Live
	return result, healed, damaged
}

// ClearScene ends every non-permanent effect
func (c *Character) ClearScene(lookup catalogue.Lookup) effects.SceneResult {
	result := effects.ClearScene(c.Effects, c.Profile, lookup)
	c.Effects = result.Effects
	c.Live = result.Live
	return result
}
