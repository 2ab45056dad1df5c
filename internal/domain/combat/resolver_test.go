package combat_test

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/rp-combat-engine/internal/dice/mock"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/combat"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

func testCatalogue() *catalogue.Catalogue {
	return catalogue.New(
		catalogue.NewBuilder("bless", "Bless").WithTarget(catalogue.TargetAlly).WithDuration(catalogue.Turns(3)).
			StatModifier("Strength", 1, catalogue.ModifierStatValue).Build(),
		catalogue.NewBuilder("untouchable", "Untouchable").WithTarget(catalogue.TargetSelf).WithDuration(catalogue.Scene()).
			StatModifier("Agility", 20, catalogue.ModifierRollBonus).Build(),
		catalogue.NewBuilder("stone_skin", "Stone Skin").WithTarget(catalogue.TargetSelf).WithDuration(catalogue.Scene()).
			Defense(50).Build(),
		catalogue.NewBuilder("stun", "Stunning Blow").WithDuration(catalogue.Turns(1)).
			Control("stun").Build(),
		catalogue.NewBuilder("second_wind", "Second Wind").WithTarget(catalogue.TargetSelf).
			Heal("2").Build(),
		catalogue.NewBuilder("focus_check", "Focus").Check("Mental", "", 12).Build(),
		catalogue.NewBuilder("will_check", "Will Contest").Check("Mental", "Mental", 0).Build(),
		catalogue.NewBuilder("mind_spike", "Mind Spike").Damage("2+Mental").Build(),
		catalogue.NewBuilder("daze", "Daze").WithDuration(catalogue.Turns(2)).Control("daze").Build(),
		catalogue.NewBuilder("mend", "Mend").WithTarget(catalogue.TargetAlly).Heal("3+Mental").Build(),
	)
}

func tarl() combat.Combatant {
	return combat.Combatant{
		ID:   "char-tarl",
		Name: "Tarl",
		Profile: stats.Profile{
			Attributes:   map[stats.Stat]int{stats.StatStrength: 3, stats.StatAgility: 2},
			Skills:       []stats.Skill{{ID: "melee_weapons", Level: 1}},
			HitPoints:    10,
			MaxHitPoints: 10,
		},
	}
}

func kamras() combat.Combatant {
	return combat.Combatant{
		ID:   "char-kamras",
		Name: "Kamras",
		Profile: stats.Profile{
			Attributes:   map[stats.Stat]int{stats.StatStrength: 2, stats.StatAgility: 2},
			HitPoints:    10,
			MaxHitPoints: 10,
		},
	}
}

func newResolver(t *testing.T, policy combat.ResolutionPolicy, rolls ...int) (*combat.Resolver, *mockdice.ManualMockRoller) {
	t.Helper()
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls(rolls)

	resolver, err := combat.NewResolver(&combat.ResolverConfig{
		Ruleset:   combat.GoreanRuleset(),
		Catalogue: testCatalogue(),
		Roller:    roller,
		Policy:    policy,
	})
	require.NoError(t, err)
	return resolver, roller
}

var melee = combat.AttackConfig{Type: combat.AttackMelee, Weapon: combat.WeaponMedium}

func TestAttack_FixedTargetHit(t *testing.T) {
	resolver, roller := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 15)

	result, err := resolver.Attack(tarl(), kamras(), melee)
	require.NoError(t, err)

	assert.True(t, result.Hit)
	assert.False(t, result.CriticalHit)
	assert.Equal(t, 15, result.Roll)
	assert.Equal(t, 3, result.AttackModifier)
	assert.Equal(t, 18, result.AttackTotal)
	assert.Equal(t, combat.Defense{Modifier: 0, Total: 10, Fixed: true}, result.Defense)
	assert.Equal(t, combat.Damage{Base: 3, Stat: 2, Skill: 1, Multiplier: 1, Total: 6}, result.Damage)
	assert.Equal(t,
		"Tarl attacks Kamras (melee, Medium Weapon): d20(15) + Strength[3](+2) + skill 1 = 18 "+
			"vs TN 10 (10 + Agility[2](+0)): HIT! Damage: 3 (Medium Weapon) + Strength[3](+2) + 1 (skill) = 6.",
		result.Message)
	assert.Equal(t, 0, roller.Remaining(), "fixed target rolls only for the attacker")
}

func TestAttack_NaturalOneAlwaysMisses(t *testing.T) {
	attacker := tarl()
	attacker.Profile.Attributes[stats.StatStrength] = 5
	attacker.Profile.Skills = []stats.Skill{{ID: "melee_weapons", Level: 5}}

	resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 1)

	result, err := resolver.Attack(attacker, kamras(), melee)
	require.NoError(t, err)

	assert.Equal(t, 12, result.AttackTotal, "total would beat TN 10")
	assert.False(t, result.Hit)
	assert.True(t, result.CriticalMiss)
	assert.Equal(t, 0, result.Damage.Total)
	assert.Nil(t, result.DamageBreakdown)
	assert.Contains(t, result.Message, "NATURAL 1, MISS.")
	assert.NotContains(t, result.Message, "Damage")
}

func TestAttack_NaturalOneMissesScenario(t *testing.T) {
	resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 1)

	result, err := resolver.Attack(tarl(), kamras(), melee)
	require.NoError(t, err)

	assert.False(t, result.Hit)
	assert.Equal(t, 0, result.Damage.Total)
	assert.Equal(t,
		"Tarl attacks Kamras (melee, Medium Weapon): d20(1) + Strength[3](+2) + skill 1 = 4 "+
			"vs TN 10 (10 + Agility[2](+0)): NATURAL 1, MISS.",
		result.Message)
}

func TestAttack_NaturalTwentyHitsAndDoubles(t *testing.T) {
	defender := kamras()
	defender.Effects = []effects.ActiveEffect{
		{EffectID: "untouchable", Duration: catalogue.Scene(), TurnsLeft: effects.SceneTurns},
	}

	resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 20)

	result, err := resolver.Attack(tarl(), defender, melee)
	require.NoError(t, err)

	assert.Equal(t, 23, result.AttackTotal)
	assert.Equal(t, 30, result.Defense.Total)
	assert.True(t, result.Hit, "natural 20 ignores the target number")
	assert.True(t, result.CriticalHit)
	assert.Equal(t, 2, result.Damage.Multiplier)
	assert.Equal(t, 12, result.Damage.Total)
	assert.Contains(t, result.Message, "NATURAL 20, HIT!")
	assert.Contains(t, result.Message, "= 6 x2 = 12.")
	assert.Contains(t, result.Message, "Agility[2](+0) +20(Untouchable)")
}

func TestAttack_DamageNeverBelowOne(t *testing.T) {
	defender := kamras()
	defender.Effects = []effects.ActiveEffect{
		{EffectID: "stone_skin", Duration: catalogue.Scene(), TurnsLeft: effects.SceneTurns},
	}

	for _, roll := range []int{15, 20} {
		resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, roll)

		result, err := resolver.Attack(tarl(), defender, melee)
		require.NoError(t, err)
		require.True(t, result.Hit)

		assert.Equal(t, 50, result.Damage.Reduction)
		assert.True(t, result.Damage.Floored)
		assert.GreaterOrEqual(t, result.Damage.Total, 1)
		assert.Contains(t, result.Message, "- 50 (reduction) = 1 (minimum 1)")
	}
}

func TestAttack_ContestedTiesFavorDefender(t *testing.T) {
	tests := []struct {
		name        string
		defenseRoll int
		wantHit     bool
	}{
		{name: "tie misses", defenseRoll: 13, wantHit: false},
		{name: "one under hits", defenseRoll: 12, wantHit: true},
		{name: "defender ahead misses", defenseRoll: 17, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, roller := newResolver(t, combat.ContestedPolicy{}, 10, tt.defenseRoll)

			result, err := resolver.Attack(tarl(), kamras(), melee)
			require.NoError(t, err)

			assert.Equal(t, combat.PolicyContested, result.Policy)
			assert.Equal(t, 13, result.AttackTotal)
			assert.Equal(t, tt.defenseRoll, result.Defense.Roll)
			assert.False(t, result.Defense.Fixed)
			assert.Equal(t, tt.wantHit, result.Hit)
			assert.Equal(t, 0, roller.Remaining())
			assert.Contains(t, result.Message, "vs d20(")
		})
	}
}

func TestAttack_UsesActiveEffects(t *testing.T) {
	attacker := tarl()
	attacker.Effects = []effects.ActiveEffect{
		{EffectID: "bless", Duration: catalogue.Turns(3), TurnsLeft: 2},
		{EffectID: "removed_from_catalogue", Duration: catalogue.Turns(3), TurnsLeft: 2},
	}

	resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 10)

	result, err := resolver.Attack(attacker, kamras(), melee)
	require.NoError(t, err)

	// Strength 3 + 1 = 4 -> +4
	assert.Equal(t, 4, result.AttackBreakdown.Total)
	assert.Equal(t, 15, result.AttackTotal)
	assert.Equal(t, 8, result.Damage.Total)
	assert.Equal(t, "Strength[3 +1(Bless) =4](+4)", result.AttackBreakdown.Expression())
}

func TestAttack_OnHitEffects(t *testing.T) {
	cfg := melee
	cfg.OnHit = []string{"stun", "not_a_real_effect", "second_wind"}

	t.Run("hit delivers effects", func(t *testing.T) {
		resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 15)

		result, err := resolver.Attack(tarl(), kamras(), cfg)
		require.NoError(t, err)

		require.Len(t, result.Effects, 2)
		assert.Equal(t, "stun", result.Effects[0].Definition.ID)
		assert.True(t, result.Effects[0].Success)
		assert.False(t, result.Effects[0].OnSelf)
		assert.Equal(t, "second_wind", result.Effects[1].Definition.ID)
		assert.True(t, result.Effects[1].OnSelf)
		assert.Equal(t, 2, result.Effects[1].Amount)
		assert.Contains(t, result.Message, "Effects: Stunning Blow (turns:1), Second Wind heals 2 on self.")
	})

	t.Run("miss delivers nothing", func(t *testing.T) {
		resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 2)

		result, err := resolver.Attack(tarl(), kamras(), cfg)
		require.NoError(t, err)

		assert.False(t, result.Hit)
		assert.Empty(t, result.Effects)
	})
}

func TestAttack_Validation(t *testing.T) {
	tests := []struct {
		name     string
		defender combat.Combatant
		cfg      combat.AttackConfig
	}{
		{name: "unknown attack type", defender: kamras(), cfg: combat.AttackConfig{Type: "magic"}},
		{name: "unknown weapon", defender: kamras(), cfg: combat.AttackConfig{Type: combat.AttackMelee, Weapon: "spoon"}},
		{name: "unarmed with weapon", defender: kamras(), cfg: combat.AttackConfig{Type: combat.AttackUnarmed, Weapon: combat.WeaponLight}},
		{name: "melee without weapon", defender: kamras(), cfg: combat.AttackConfig{Type: combat.AttackMelee}},
		{name: "melee with bow", defender: kamras(), cfg: combat.AttackConfig{Type: combat.AttackMelee, Weapon: combat.WeaponBow}},
		{name: "ranged with sword", defender: kamras(), cfg: combat.AttackConfig{Type: combat.AttackRanged, Weapon: combat.WeaponHeavy}},
		{name: "attacking yourself", defender: tarl(), cfg: melee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, roller := newResolver(t, nil, 15, 15)

			result, err := resolver.Attack(tarl(), tt.defender, tt.cfg)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, engerr.IsValidation(err), "got %v", err)
			assert.Equal(t, 2, roller.Remaining(), "no dice are rolled for invalid attacks")
		})
	}
}

func TestAttack_ValidPairings(t *testing.T) {
	tests := []combat.AttackConfig{
		{Type: combat.AttackUnarmed},
		{Type: combat.AttackUnarmed, Weapon: combat.WeaponNone},
		{Type: combat.AttackMelee, Weapon: combat.WeaponLight},
		{Type: combat.AttackRanged, Weapon: combat.WeaponBow},
		{Type: combat.AttackRanged, Weapon: combat.WeaponCrossbow},
	}

	for _, cfg := range tests {
		t.Run(string(cfg.Type)+"/"+cfg.Weapon, func(t *testing.T) {
			resolver, _ := newResolver(t, combat.FixedTargetPolicy{Base: 10}, 12)

			_, err := resolver.Attack(tarl(), kamras(), cfg)
			assert.NoError(t, err)
		})
	}
}

func TestAttack_RollerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	roller.EXPECT().Roll(1, 20, 0).Return(nil, stderrors.New("entropy exhausted"))

	resolver, err := combat.NewResolver(&combat.ResolverConfig{
		Ruleset:   combat.ArkanaRuleset(),
		Catalogue: testCatalogue(),
		Roller:    roller,
	})
	require.NoError(t, err)

	_, err = resolver.Attack(tarl(), kamras(), melee)
	require.Error(t, err)
	assert.True(t, engerr.IsInternal(err))
}

func TestAttack_MessageReproducibleFromResult(t *testing.T) {
	defender := kamras()
	defender.Effects = []effects.ActiveEffect{
		{EffectID: "stone_skin", Duration: catalogue.Scene(), TurnsLeft: effects.SceneTurns},
	}
	cfg := melee
	cfg.OnHit = []string{"stun"}

	resolver, _ := newResolver(t, combat.ContestedPolicy{}, 20, 4)
	result, err := resolver.Attack(tarl(), defender, cfg)
	require.NoError(t, err)

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var stored combat.AttackResult
	require.NoError(t, json.Unmarshal(data, &stored))

	assert.Equal(t, result.Message, combat.FormatAttack(&stored))
}

func TestUseAbility_FixedCheckGatesChain(t *testing.T) {
	caster := combat.Combatant{
		ID:      "char-seren",
		Name:    "Seren",
		Profile: stats.Profile{Attributes: map[stats.Stat]int{stats.StatMental: 3}},
	}
	ability := combat.AbilityConfig{
		Name:    "Mind Spike",
		Effects: []string{"focus_check", "mind_spike", "missing", "daze"},
	}

	t.Run("success runs every effect", func(t *testing.T) {
		resolver, _ := newResolver(t, nil, 10)

		result, err := resolver.UseAbility(caster, kamras(), ability)
		require.NoError(t, err)

		assert.True(t, result.Success)
		require.Len(t, result.Checks, 1)
		assert.Equal(t, 12, result.Checks[0].Total)
		assert.Equal(t, 12, result.Checks[0].Defense.Total)
		assert.True(t, result.Checks[0].Success, "meeting the target number succeeds")

		require.Len(t, result.Effects, 3)
		assert.Equal(t, "mind_spike", result.Effects[1].Definition.ID)
		assert.Equal(t, 4, result.Effects[1].Amount, "2 + Mental tier +2")
		assert.Equal(t, "daze", result.Effects[2].Definition.ID)
		assert.True(t, result.Effects[2].Success)
		assert.Equal(t,
			"Seren uses Mind Spike on Kamras: Focus d20(10) + Mental[3](+2) = 12 vs TN 12: success; "+
				"Mind Spike deals 4 damage; Daze (turns:2).",
			result.Message)
	})

	t.Run("failure stops the chain", func(t *testing.T) {
		resolver, _ := newResolver(t, nil, 9)

		result, err := resolver.UseAbility(caster, kamras(), ability)
		require.NoError(t, err)

		assert.False(t, result.Success)
		require.Len(t, result.Effects, 1)
		assert.False(t, result.Effects[0].Success)
		assert.Equal(t, "Seren uses Mind Spike on Kamras: Focus d20(9) + Mental[3](+2) = 11 vs TN 12: failure.", result.Message)
	})

	t.Run("natural rolls override the target number", func(t *testing.T) {
		weak := caster
		weak.Profile = stats.Profile{Attributes: map[stats.Stat]int{stats.StatMental: 1}}
		resolver, _ := newResolver(t, nil, 20)

		result, err := resolver.UseAbility(weak, kamras(), combat.AbilityConfig{Name: "Focus", Effects: []string{"focus_check"}})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Contains(t, result.Message, "Focus d20(20) + Mental[1](-2) = 18 vs TN 12: natural 20, success")

		strong := caster
		strong.Profile = stats.Profile{Attributes: map[stats.Stat]int{stats.StatMental: 20}}
		resolver, _ = newResolver(t, nil, 1)

		result, err = resolver.UseAbility(strong, kamras(), combat.AbilityConfig{Name: "Focus", Effects: []string{"focus_check"}})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "natural 1, failure")
	})
}

func TestUseAbility_ContestedCheck(t *testing.T) {
	caster := combat.Combatant{
		ID:      "char-seren",
		Name:    "Seren",
		Profile: stats.Profile{Attributes: map[stats.Stat]int{stats.StatMental: 3}},
	}
	target := kamras()
	target.Profile.Attributes[stats.StatMental] = 3

	resolver, roller := newResolver(t, combat.ContestedPolicy{}, 11, 11)

	result, err := resolver.UseAbility(caster, target, combat.AbilityConfig{
		Name:    "Dominate",
		Effects: []string{"will_check", "daze"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, roller.Remaining())
	require.Len(t, result.Checks, 1)
	assert.False(t, result.Checks[0].Success, "contested ties go to the target")
	assert.False(t, result.Success)
}

func TestUseAbility_SelfHeal(t *testing.T) {
	healer := combat.Combatant{
		ID:      "char-mira",
		Name:    "Mira",
		Profile: stats.Profile{Attributes: map[stats.Stat]int{stats.StatMental: 1}},
	}

	resolver, roller := newResolver(t, nil)

	result, err := resolver.UseAbility(healer, healer, combat.AbilityConfig{
		Name:    "Mend",
		Effects: []string{"mend"},
	})
	require.NoError(t, err)

	require.Len(t, result.Effects, 1)
	assert.True(t, result.Effects[0].OnSelf)
	assert.Equal(t, 1, result.Effects[0].Amount, "3 + Mental tier -2")
	assert.Equal(t, "Mira uses Mend: Mend heals 1.", result.Message)
	assert.Equal(t, 0, roller.Remaining())
}

func TestUseAbility_NothingKnown(t *testing.T) {
	resolver, _ := newResolver(t, nil)

	result, err := resolver.UseAbility(tarl(), kamras(), combat.AbilityConfig{Name: "Lost Art", Effects: []string{"gone"}})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Effects)
	assert.Equal(t, "Tarl uses Lost Art on Kamras: nothing happens.", result.Message)
}
