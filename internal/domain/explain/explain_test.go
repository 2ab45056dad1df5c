package explain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/explain"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
)

func testCatalogue() *catalogue.Catalogue {
	return catalogue.New(
		catalogue.NewBuilder("bless", "Bless").WithDuration(catalogue.Turns(3)).
			StatModifier("Strength", 1, catalogue.ModifierStatValue).Build(),
		catalogue.NewBuilder("focus", "Focus").WithDuration(catalogue.Turns(2)).
			StatModifier("Agility", 2, catalogue.ModifierRollBonus).Build(),
		catalogue.NewBuilder("stun", "Stunning Blow").WithDuration(catalogue.Turns(1)).
			Control("stun").Build(),
		catalogue.NewBuilder("light", "Light").WithDuration(catalogue.Scene()).
			Utility().Build(),
		catalogue.NewBuilder("veil", "Veil").WithDuration(catalogue.Scene()).
			Special("invisible").Build(),
		catalogue.NewBuilder("stone_skin", "Stone Skin").WithDuration(catalogue.Scene()).
			Defense(2).Build(),
		catalogue.NewBuilder("regen", "Regeneration").WithDuration(catalogue.Turns(2)).
			Heal("3").Build(),
		catalogue.NewBuilder("bleed", "Bleed").WithDuration(catalogue.Turns(2)).
			Damage("2").Build(),
		catalogue.NewBuilder("oath", "Oath").WithDuration(catalogue.Scene()).
			Check("Mental", "", 12).Build(),
	)
}

func active(ids ...string) []effects.ActiveEffect {
	cat := testCatalogue()
	out := make([]effects.ActiveEffect, 0, len(ids))
	for _, id := range ids {
		def, _ := cat.Definition(id)
		out = append(out, effects.ActiveEffect{
			EffectID:  id,
			Duration:  def.Duration,
			TurnsLeft: effects.TurnsFor(def.Duration),
		})
	}
	return out
}

func TestRender_Empty(t *testing.T) {
	cat := testCatalogue()

	assert.Equal(t, "", explain.Render(stats.LiveStats{}, nil, cat))
	assert.Equal(t, "", explain.Render(stats.LiveStats{}, active("unknown"), cat))
}

func TestRender_SectionsInFixedOrder(t *testing.T) {
	cat := testCatalogue()
	list := active("oath", "bleed", "regen", "stone_skin", "veil", "light", "stun", "focus", "bless")
	list[6].Source = &effects.SourceInfo{ID: "char-kamras", Name: "Kamras", Kind: effects.SourceAttack}
	live := effects.Recalculate(stats.Profile{}, list, cat)

	got := explain.Render(live, list, cat)

	want := "Stat Modifiers:\n" +
		"• Focus: Agility roll bonus +2 (2 turns left)\n" +
		"• Bless: Strength +1 (3 turns left)\n" +
		"\n" +
		"Control:\n" +
		"• Stunning Blow: stun (1 turn left) from Kamras\n" +
		"\n" +
		"Utility:\n" +
		"• Light (until end of scene)\n" +
		"\n" +
		"Special:\n" +
		"• Veil: invisible (until end of scene)\n" +
		"\n" +
		"Defense:\n" +
		"• Stone Skin: -2 damage (until end of scene)\n" +
		"Total damage reduction: 2\n" +
		"\n" +
		"Heal Over Time:\n" +
		"• Regeneration: 3 per turn (2 turns left)\n" +
		"Total healing per turn: 3\n" +
		"\n" +
		"Damage Over Time:\n" +
		"• Bleed: 2 per turn (2 turns left)\n" +
		"Total damage per turn: 2\n" +
		"\n" +
		"Checks:\n" +
		"• Oath (until end of scene)"

	assert.Equal(t, want, got)
}

func TestRender_EachEffectAppearsOnce(t *testing.T) {
	cat := testCatalogue()
	list := active("bless", "stone_skin")
	live := effects.Recalculate(stats.Profile{}, list, cat)

	got := explain.Render(live, list, cat)

	assert.Equal(t, 1, strings.Count(got, "Bless"))
	assert.Equal(t, 1, strings.Count(got, "Stone Skin"))
	assert.NotContains(t, got, "Heal Over Time")
}

func TestRender_Deterministic(t *testing.T) {
	cat := testCatalogue()
	list := active("veil", "bless", "regen")
	live := effects.Recalculate(stats.Profile{}, list, cat)

	assert.Equal(t, explain.Render(live, list, cat), explain.Render(live, list, cat))
}
