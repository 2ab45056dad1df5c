package effects

import (
	"time"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
)

// The functions in this file never modify the slices they are given; each one
// returns a fresh collection for the caller to persist.

// TurnsFor converts a catalogue duration into the stored turnsLeft value
func TurnsFor(d catalogue.Duration) int {
	switch d.Kind {
	case catalogue.DurationTurns:
		return d.Turns
	case catalogue.DurationScene:
		return SceneTurns
	default:
		return 0
	}
}

// Apply adds the effect a successful result produced. Immediate and permanent
// effects are never stored. Re-applying an effect the character already has only
// replaces it when the new instance lasts strictly longer; it never stacks.
func Apply(current []ActiveEffect, result EffectResult, source *SourceInfo, now time.Time) []ActiveEffect {
	out := cloneAll(current)
	if !result.Success {
		return out
	}

	def := result.Definition
	if !def.Duration.IsStored() {
		return out
	}

	applied := ActiveEffect{
		EffectID:  def.ID,
		Duration:  def.Duration,
		TurnsLeft: TurnsFor(def.Duration),
		AppliedAt: now,
	}
	if source != nil {
		src := *source
		applied.Source = &src
	}

	for i := range out {
		if out[i].EffectID != def.ID {
			continue
		}
		if applied.TurnsLeft > out[i].TurnsLeft {
			out[i] = applied
		}
		return out
	}

	return append(out, applied)
}

// Recalculate rebuilds live stats from scratch: the profile's permanent effects
// first, then every active effect in order. Ids missing from the catalogue are
// skipped, and an active instance of an effect the profile already carries
// counts once.
func Recalculate(profile stats.Profile, active []ActiveEffect, lookup catalogue.Lookup) stats.LiveStats {
	var live stats.LiveStats

	baked := make(map[string]bool, len(profile.Permanent))
	for _, id := range profile.Permanent {
		if baked[id] {
			continue
		}
		baked[id] = true
		if def, ok := definition(lookup, id); ok {
			accumulate(&live, def)
		}
	}

	for _, effect := range active {
		if baked[effect.EffectID] {
			continue
		}
		if def, ok := definition(lookup, effect.EffectID); ok {
			accumulate(&live, def)
		}
	}

	live.Normalize()
	return live
}

func accumulate(live *stats.LiveStats, def catalogue.Definition) {
	switch def.Category {
	case catalogue.CategoryStatModifier:
		if def.Stat == "" {
			return
		}
		stat := stats.Stat(def.Stat)
		key := stats.StatValueKey(stat)
		if def.Channel() == catalogue.ModifierRollBonus {
			key = stats.RollBonusKey(stat)
		}
		live.Add(key, def.DisplayName(), def.Modifier)
	case catalogue.CategoryDefense:
		if def.DamageReduction != 0 {
			live.Add(stats.KeyDamageReduction, def.DisplayName(), def.DamageReduction)
		}
	case catalogue.CategoryControl, catalogue.CategorySpecial:
		live.SetFlag(stats.Flag(def.FlagName()), def.DisplayName())
	}
}

// HealPerTurn sums the per-turn healing of stored heal effects and names them in order
func HealPerTurn(active []ActiveEffect, lookup catalogue.Lookup) (int, []string) {
	return perTurn(active, lookup, catalogue.CategoryHeal, func(def catalogue.Definition) string {
		return def.HealFormula
	})
}

// DamagePerTurn sums the per-turn damage of stored damage effects and names them in order
func DamagePerTurn(active []ActiveEffect, lookup catalogue.Lookup) (int, []string) {
	return perTurn(active, lookup, catalogue.CategoryDamage, func(def catalogue.Definition) string {
		return def.DamageFormula
	})
}

// perTurn reads only the leading integer of a formula; the stat that scaled the
// effect when it landed is not known at turn time.
func perTurn(active []ActiveEffect, lookup catalogue.Lookup, category catalogue.Category, formula func(catalogue.Definition) string) (int, []string) {
	total := 0
	var names []string

	for _, effect := range active {
		def, ok := definition(lookup, effect.EffectID)
		if !ok || def.Category != category {
			continue
		}
		if effect.Duration.Kind == catalogue.DurationImmediate {
			continue
		}

		amount := catalogue.ParseFormula(formula(def)).Base
		if amount <= 0 {
			continue
		}
		total += amount
		names = append(names, def.DisplayName())
	}

	return total, names
}

// ProcessTurn runs one turn of decay. Healing and damage are measured before
// anything decrements; scene effects keep their sentinel; effects reaching zero
// are dropped. Applying the reported amounts to hit points is the caller's job.
func ProcessTurn(active []ActiveEffect, profile stats.Profile, lookup catalogue.Lookup) TurnResult {
	healing, names := HealPerTurn(active, lookup)
	damage, damageNames := DamagePerTurn(active, lookup)

	survivors := make([]ActiveEffect, 0, len(active))
	for _, effect := range active {
		effect = effect.clone()
		if !effect.IsScene() {
			effect.TurnsLeft--
		}
		if effect.TurnsLeft <= 0 {
			continue
		}
		survivors = append(survivors, effect)
	}

	return TurnResult{
		Effects:           survivors,
		Live:              Recalculate(profile, survivors, lookup),
		HealingApplied:    healing,
		HealEffectNames:   names,
		DamageApplied:     damage,
		DamageEffectNames: damageNames,
	}
}

// ClearScene ends every effect that is not permanent and flushes live stats back
// to the profile's permanent entries.
func ClearScene(active []ActiveEffect, profile stats.Profile, lookup catalogue.Lookup) SceneResult {
	survivors := make([]ActiveEffect, 0)
	for _, effect := range active {
		kind := effect.Duration.Kind
		if def, ok := definition(lookup, effect.EffectID); ok {
			kind = def.Duration.Kind
		}
		if kind == catalogue.DurationPermanent {
			survivors = append(survivors, effect.clone())
		}
	}

	return SceneResult{
		Effects: survivors,
		Live:    Recalculate(profile, survivors, lookup),
	}
}

// Find returns the active instance of an effect id
func Find(active []ActiveEffect, effectID string) (ActiveEffect, bool) {
	for _, effect := range active {
		if effect.EffectID == effectID {
			return effect.clone(), true
		}
	}
	return ActiveEffect{}, false
}

func definition(lookup catalogue.Lookup, id string) (catalogue.Definition, bool) {
	if lookup == nil {
		return catalogue.Definition{}, false
	}
	return lookup.Definition(id)
}

func cloneAll(active []ActiveEffect) []ActiveEffect {
	out := make([]ActiveEffect, 0, len(active)+1)
	for _, effect := range active {
		out = append(out, effect.clone())
	}
	return out
}
