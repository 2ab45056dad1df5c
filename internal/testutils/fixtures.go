package testutils

import (
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
)

// CreateTestCharacter creates a character with every attribute of the rule
// system set to the given value and full hit points
func CreateTestCharacter(id, name, system string, attribute, hitPoints int) *character.Character {
	ruleset, err := combat.RulesetFor(system)
	if err != nil {
		ruleset = combat.ArkanaRuleset()
	}

	attributes := make(map[stats.Stat]int, len(ruleset.Stats))
	for _, stat := range ruleset.Stats {
		attributes[stat] = attribute
	}

	return &character.Character{
		ID:     id,
		Name:   name,
		System: ruleset.Name,
		Profile: stats.Profile{
			Attributes:   attributes,
			HitPoints:    hitPoints,
			MaxHitPoints: hitPoints,
		},
	}
}

// WithSkill adds a trained skill to a test character
func WithSkill(char *character.Character, skillID string, level int) *character.Character {
	char.Profile.Skills = append(char.Profile.Skills, stats.Skill{ID: skillID, Level: level})
	return char
}

// CreateTestCatalogue creates a small catalogue covering every effect category
func CreateTestCatalogue() *catalogue.Catalogue {
	return catalogue.New(
		catalogue.NewBuilder("bless", "Bless").
			WithTarget(catalogue.TargetSelf).
			WithDuration(catalogue.Turns(3)).
			StatModifier("Physical", 1, catalogue.ModifierStatValue).
			Build(),
		catalogue.NewBuilder("focus", "Focus").
			WithTarget(catalogue.TargetSelf).
			WithDuration(catalogue.Scene()).
			StatModifier("Dexterity", 2, catalogue.ModifierRollBonus).
			Build(),
		catalogue.NewBuilder("stone_skin", "Stone Skin").
			WithTarget(catalogue.TargetSelf).
			WithDuration(catalogue.Turns(2)).
			Defense(2).
			Build(),
		catalogue.NewBuilder("stun", "Stun").
			WithDuration(catalogue.Turns(1)).
			Control("stun").
			Build(),
		catalogue.NewBuilder("bleed", "Bleed").
			WithDuration(catalogue.Turns(2)).
			Damage("1").
			Build(),
		catalogue.NewBuilder("regen", "Regeneration").
			WithTarget(catalogue.TargetSelf).
			WithDuration(catalogue.Turns(3)).
			Heal("2").
			Build(),
		catalogue.NewBuilder("firebolt", "Firebolt").
			Damage("2+Mental").
			Build(),
		catalogue.NewBuilder("mend", "Mend").
			WithTarget(catalogue.TargetSelf).
			Heal("1+Mental").
			Build(),
		catalogue.NewBuilder("will_save", "Will Save").
			Check("Mental", "Mental", 0).
			Build(),
	)
}
