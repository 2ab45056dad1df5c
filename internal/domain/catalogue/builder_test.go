package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	def := NewBuilder("bless", "Bless").
		WithDescription("A minor blessing").
		WithTarget(TargetAlly).
		WithDuration(Turns(3)).
		StatModifier("Strength", 1, ModifierRollBonus).
		Build()

	assert.Equal(t, Definition{
		ID:           "bless",
		Name:         "Bless",
		Category:     CategoryStatModifier,
		Target:       TargetAlly,
		Duration:     Turns(3),
		Description:  "A minor blessing",
		Stat:         "Strength",
		Modifier:     1,
		ModifierType: ModifierRollBonus,
	}, def)
}

func TestBuilder_Defaults(t *testing.T) {
	def := NewBuilder("bolt", "Bolt").Damage("2+Mental").Build()

	assert.Equal(t, TargetEnemy, def.Target)
	assert.Equal(t, Immediate, def.Duration)
	assert.Equal(t, CategoryDamage, def.Category)
}
