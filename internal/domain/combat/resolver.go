package combat

import (
	"github.com/KirkDiggler/rp-combat-engine/internal/dice"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
	"github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

// Resolver runs attacks and ability chains for one ruleset
type Resolver struct {
	ruleset Ruleset
	policy  ResolutionPolicy
	lookup  catalogue.Lookup
	roller  dice.Roller
}

// ResolverConfig holds the resolver's collaborators
type ResolverConfig struct {
	Ruleset   Ruleset
	Catalogue catalogue.Lookup
	Roller    dice.Roller

	// Policy overrides the ruleset's configured resolution policy
	Policy ResolutionPolicy
}

// NewResolver creates a resolver; a nil roller falls back to a random one
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("resolver config cannot be nil")
	}

	policy := cfg.Policy
	if policy == nil {
		var err error
		policy, err = cfg.Ruleset.Policy()
		if err != nil {
			return nil, err
		}
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	return &Resolver{
		ruleset: cfg.Ruleset,
		policy:  policy,
		lookup:  cfg.Catalogue,
		roller:  roller,
	}, nil
}

// Ruleset returns the ruleset the resolver plays by
func (r *Resolver) Ruleset() Ruleset {
	return r.ruleset
}

// Policy returns the active resolution policy
func (r *Resolver) Policy() ResolutionPolicy {
	return r.policy
}

// Attack resolves one attack: setup, roll, outcome, damage, report.
// Validation problems come back as validation errors before any die is rolled.
func (r *Resolver) Attack(attacker, defender Combatant, cfg AttackConfig) (*AttackResult, error) {
	if attacker.ID == "" || defender.ID == "" {
		return nil, errors.InvalidArgument("attacker and defender ids are required")
	}
	if attacker.ID == defender.ID {
		return nil, errors.Validation("a character cannot attack themselves").
			WithMeta("character_id", attacker.ID)
	}

	profile, weapon, err := r.ruleset.Setup(cfg)
	if err != nil {
		return nil, err
	}

	weaponID := cfg.Weapon
	if weaponID == "" {
		weaponID = WeaponNone
	}

	attackerLive := effects.Recalculate(attacker.Profile, attacker.Effects, r.lookup)
	defenderLive := effects.Recalculate(defender.Profile, defender.Effects, r.lookup)

	result := &AttackResult{
		Ruleset:      r.ruleset.Name,
		Policy:       r.policy.Kind(),
		AttackerID:   attacker.ID,
		AttackerName: attacker.DisplayName(),
		DefenderID:   defender.ID,
		DefenderName: defender.DisplayName(),
		AttackType:   cfg.Type,
		WeaponID:     weaponID,
		WeaponName:   weapon.Name,
		Skill:        profile.Skill,
		SkillLevel:   attacker.Profile.SkillLevel(profile.Skill),
	}

	// Roll
	result.AttackBreakdown = r.detail(attacker.Profile, attackerLive, profile.Attack)
	result.AttackModifier = result.AttackBreakdown.Total + result.SkillLevel

	result.Roll, err = dice.D20(r.roller)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll attack")
	}
	result.AttackTotal = result.Roll + result.AttackModifier

	result.DefenseBreakdown = r.detail(defender.Profile, defenderLive, profile.Defense)
	result.Defense, err = r.policy.Target(r.roller, result.DefenseBreakdown.Total)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll defense")
	}

	// Outcome
	result.CriticalHit = result.Roll == dice.D20Sides
	result.CriticalMiss = result.Roll == naturalFailure
	result.Hit = decide(r.policy, result.Roll, result.AttackTotal, result.Defense)

	// Damage
	if result.Hit {
		damageBreakdown := r.detail(attacker.Profile, attackerLive, profile.Damage)
		result.DamageBreakdown = &damageBreakdown
		result.Damage = computeDamage(weapon.BaseDamage, damageBreakdown.Total, result.SkillLevel,
			defenderLive.DamageReduction(), result.CriticalHit)

		for _, id := range cfg.OnHit {
			def, ok := r.definition(id)
			if !ok {
				continue
			}
			result.Effects = append(result.Effects, effects.EffectResult{
				Definition: def,
				Success:    true,
				Amount:     r.amount(def, attacker.Profile, attackerLive),
				OnSelf:     def.Target == catalogue.TargetSelf,
			})
		}
	}

	// Report
	result.Message = FormatAttack(result)
	return result, nil
}

func computeDamage(base, stat, skill, reduction int, critical bool) Damage {
	d := Damage{
		Base:       base,
		Stat:       stat,
		Skill:      skill,
		Reduction:  reduction,
		Multiplier: 1,
	}

	total := base + stat + skill - reduction
	if total < 1 {
		total = 1
		d.Floored = true
	}
	if critical {
		d.Multiplier = 2
		total *= 2
	}
	d.Total = total
	return d
}

// AbilityConfig names an ability and the catalogue effects it runs in order
type AbilityConfig struct {
	Name    string   `json:"name"`
	Effects []string `json:"effects"`
}

// UseAbility runs an ability's effects in order. A check gates everything after
// it; a failed check stops the chain. Effect ids missing from the catalogue are
// skipped.
func (r *Resolver) UseAbility(caster, target Combatant, cfg AbilityConfig) (*AbilityResult, error) {
	if caster.ID == "" || target.ID == "" {
		return nil, errors.InvalidArgument("caster and target ids are required")
	}

	casterLive := effects.Recalculate(caster.Profile, caster.Effects, r.lookup)
	targetLive := effects.Recalculate(target.Profile, target.Effects, r.lookup)

	result := &AbilityResult{
		AbilityName: cfg.Name,
		CasterID:    caster.ID,
		CasterName:  caster.DisplayName(),
		TargetID:    target.ID,
		TargetName:  target.DisplayName(),
		Success:     true,
	}

	for _, id := range cfg.Effects {
		def, ok := r.definition(id)
		if !ok {
			continue
		}

		if def.Category == catalogue.CategoryCheck {
			check, err := r.check(def, caster.Profile, casterLive, target.Profile, targetLive)
			if err != nil {
				return nil, err
			}
			result.Checks = append(result.Checks, check)
			result.Effects = append(result.Effects, effects.EffectResult{
				Definition: def,
				Success:    check.Success,
				OnSelf:     def.Target == catalogue.TargetSelf,
			})
			if !check.Success {
				result.Success = false
				break
			}
			continue
		}

		result.Effects = append(result.Effects, effects.EffectResult{
			Definition: def,
			Success:    true,
			Amount:     r.amount(def, caster.Profile, casterLive),
			OnSelf:     def.Target == catalogue.TargetSelf || caster.ID == target.ID,
		})
	}

	result.Message = FormatAbility(result)
	return result, nil
}

func (r *Resolver) check(def catalogue.Definition, caster stats.Profile, casterLive stats.LiveStats,
	target stats.Profile, targetLive stats.LiveStats,
) (CheckResult, error) {
	check := CheckResult{EffectID: def.ID, Name: def.DisplayName()}

	modifier := 0
	if def.CheckStat != "" {
		breakdown := r.detail(caster, casterLive, stats.Stat(def.CheckStat))
		check.Breakdown = &breakdown
		modifier = breakdown.Total
	}

	roll, err := dice.D20(r.roller)
	if err != nil {
		return CheckResult{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll check")
	}
	check.Roll = roll
	check.Total = roll + modifier

	policy := r.policy
	if def.CheckVs != "" {
		breakdown := r.detail(target, targetLive, stats.Stat(def.CheckVs))
		check.DefenseBreakdown = &breakdown
		check.Defense, err = policy.Target(r.roller, breakdown.Total)
		if err != nil {
			return CheckResult{}, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll check defense")
		}
	} else {
		tn := def.CheckTarget
		if tn == 0 {
			tn = r.targetBase()
		}
		policy = FixedTargetPolicy{Base: tn}
		check.Defense, _ = policy.Target(r.roller, 0)
	}

	check.Success = decide(policy, roll, check.Total, check.Defense)
	return check, nil
}

// amount computes the immediate damage or healing of an effect: the formula's
// base plus the caster's modifier in the named stat, never negative
func (r *Resolver) amount(def catalogue.Definition, caster stats.Profile, live stats.LiveStats) int {
	var formula catalogue.Formula
	switch def.Category {
	case catalogue.CategoryDamage:
		formula = catalogue.ParseFormula(def.DamageFormula)
	case catalogue.CategoryHeal:
		formula = catalogue.ParseFormula(def.HealFormula)
	default:
		return 0
	}

	amount := formula.Base
	if formula.Stat != "" {
		stat := stats.Stat(formula.Stat)
		amount += stats.Modifier(r.ruleset.Tiers, caster.Attribute(stat), live, stat)
	}
	if amount < 0 {
		return 0
	}
	return amount
}

func (r *Resolver) detail(profile stats.Profile, live stats.LiveStats, stat stats.Stat) stats.Breakdown {
	return stats.Detail(r.ruleset.Tiers, profile.Attribute(stat), live, stat)
}

func (r *Resolver) definition(id string) (catalogue.Definition, bool) {
	if r.lookup == nil {
		return catalogue.Definition{}, false
	}
	return r.lookup.Definition(id)
}

func (r *Resolver) targetBase() int {
	if r.ruleset.TargetBase != 0 {
		return r.ruleset.TargetBase
	}
	return DefaultTargetBase
}
