// Package combat resolves attacks and ability chains between two combatants.
//
// Everything here works on snapshots handed in by the caller. Randomness comes
// from the injected dice.Roller, so a seeded or scripted roller makes every
// outcome reproducible.
package combat

import (
	"strings"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

// AttackType is the category of an attack
type AttackType string

const (
	AttackUnarmed AttackType = "unarmed"
	AttackMelee   AttackType = "melee"
	AttackRanged  AttackType = "ranged"
)

// WeaponKind classifies a weapon class for attack-type compatibility
type WeaponKind string

const (
	WeaponKindUnarmed WeaponKind = "unarmed"
	WeaponKindMelee   WeaponKind = "melee"
	WeaponKindRanged  WeaponKind = "ranged"
)

// Weapon class ids shared by the built-in rulesets
const (
	WeaponNone     = "none"
	WeaponLight    = "light"
	WeaponMedium   = "medium"
	WeaponHeavy    = "heavy"
	WeaponBow      = "bow"
	WeaponCrossbow = "crossbow"
)

// System names
const (
	SystemGorean = "gorean"
	SystemArkana = "arkana"
)

// AttackProfile maps an attack type to the stats and skill it uses
type AttackProfile struct {
	Attack  stats.Stat `json:"attack" yaml:"attack"`
	Defense stats.Stat `json:"defense" yaml:"defense"`
	Damage  stats.Stat `json:"damage" yaml:"damage"`
	Skill   string     `json:"skill" yaml:"skill"`
}

// Weapon is a weapon class and its base damage
type Weapon struct {
	Name       string     `json:"name" yaml:"name"`
	Kind       WeaponKind `json:"kind" yaml:"kind"`
	BaseDamage int        `json:"base_damage" yaml:"base_damage"`
}

// Ruleset is everything system-specific the resolver needs
type Ruleset struct {
	Name       string                       `json:"name" yaml:"name"`
	Stats      []stats.Stat                 `json:"stats" yaml:"stats"`
	Tiers      stats.TierTable              `json:"tiers" yaml:"tiers"`
	Attacks    map[AttackType]AttackProfile `json:"attacks" yaml:"attacks"`
	Weapons    map[string]Weapon            `json:"weapons" yaml:"weapons"`
	Resolution PolicyKind                   `json:"resolution" yaml:"resolution"`
	TargetBase int                          `json:"target_base" yaml:"target_base"`
}

func defaultWeapons() map[string]Weapon {
	return map[string]Weapon{
		WeaponNone:     {Name: "Unarmed", Kind: WeaponKindUnarmed, BaseDamage: 1},
		WeaponLight:    {Name: "Light Weapon", Kind: WeaponKindMelee, BaseDamage: 2},
		WeaponMedium:   {Name: "Medium Weapon", Kind: WeaponKindMelee, BaseDamage: 3},
		WeaponHeavy:    {Name: "Heavy Weapon", Kind: WeaponKindMelee, BaseDamage: 4},
		WeaponBow:      {Name: "Bow", Kind: WeaponKindRanged, BaseDamage: 3},
		WeaponCrossbow: {Name: "Crossbow", Kind: WeaponKindRanged, BaseDamage: 4},
	}
}

// GoreanRuleset returns the built-in Gorean rules
func GoreanRuleset() Ruleset {
	return Ruleset{
		Name: SystemGorean,
		Stats: []stats.Stat{
			stats.StatStrength, stats.StatAgility, stats.StatIntellect,
			stats.StatCharisma, stats.StatPerception,
		},
		Tiers: stats.DefaultTierTable(),
		Attacks: map[AttackType]AttackProfile{
			AttackUnarmed: {Attack: stats.StatStrength, Defense: stats.StatAgility, Damage: stats.StatStrength, Skill: "unarmed_combat"},
			AttackMelee:   {Attack: stats.StatStrength, Defense: stats.StatAgility, Damage: stats.StatStrength, Skill: "melee_weapons"},
			AttackRanged:  {Attack: stats.StatPerception, Defense: stats.StatAgility, Damage: stats.StatPerception, Skill: "archery"},
		},
		Weapons:    defaultWeapons(),
		Resolution: PolicyContested,
		TargetBase: DefaultTargetBase,
	}
}

// ArkanaRuleset returns the built-in Arkana rules
func ArkanaRuleset() Ruleset {
	return Ruleset{
		Name: SystemArkana,
		Stats: []stats.Stat{
			stats.StatPhysical, stats.StatDexterity, stats.StatMental, stats.StatPerception,
		},
		Tiers: stats.DefaultTierTable(),
		Attacks: map[AttackType]AttackProfile{
			AttackUnarmed: {Attack: stats.StatPhysical, Defense: stats.StatDexterity, Damage: stats.StatPhysical, Skill: "unarmed_combat"},
			AttackMelee:   {Attack: stats.StatPhysical, Defense: stats.StatDexterity, Damage: stats.StatPhysical, Skill: "melee_weapons"},
			AttackRanged:  {Attack: stats.StatDexterity, Defense: stats.StatDexterity, Damage: stats.StatDexterity, Skill: "ranged_weapons"},
		},
		Weapons:    defaultWeapons(),
		Resolution: PolicyFixedTarget,
		TargetBase: DefaultTargetBase,
	}
}

// RulesetFor returns the built-in ruleset for a system name
func RulesetFor(system string) (Ruleset, error) {
	switch strings.ToLower(strings.TrimSpace(system)) {
	case SystemGorean:
		return GoreanRuleset(), nil
	case SystemArkana:
		return ArkanaRuleset(), nil
	default:
		return Ruleset{}, errors.InvalidArgumentf("unknown rule system %q", system)
	}
}

// WithResolution returns a copy of the ruleset using another resolution policy
func (r Ruleset) WithResolution(kind PolicyKind) Ruleset {
	r.Resolution = kind
	return r
}

// Policy builds the configured resolution policy
func (r Ruleset) Policy() (ResolutionPolicy, error) {
	switch r.Resolution {
	case PolicyContested:
		return ContestedPolicy{}, nil
	case PolicyFixedTarget, "":
		base := r.TargetBase
		if base == 0 {
			base = DefaultTargetBase
		}
		return FixedTargetPolicy{Base: base}, nil
	default:
		return nil, errors.InvalidArgumentf("unknown resolution policy %q", r.Resolution)
	}
}

// Validate checks a ruleset loaded from outside the binary
func (r Ruleset) Validate() error {
	if r.Name == "" {
		return errors.InvalidArgument("ruleset name is required")
	}
	if len(r.Tiers.Modifiers) == 0 {
		return errors.InvalidArgumentf("ruleset %s has an empty tier table", r.Name)
	}
	for _, attackType := range []AttackType{AttackUnarmed, AttackMelee, AttackRanged} {
		if _, ok := r.Attacks[attackType]; !ok {
			return errors.InvalidArgumentf("ruleset %s has no %s attack profile", r.Name, attackType)
		}
	}
	for id, weapon := range r.Weapons {
		switch weapon.Kind {
		case WeaponKindUnarmed, WeaponKindMelee, WeaponKindRanged:
		default:
			return errors.InvalidArgumentf("weapon %s has unknown kind %q", id, weapon.Kind)
		}
	}
	if _, err := r.Policy(); err != nil {
		return err
	}
	return nil
}

// Setup maps an attack configuration onto the ruleset's attack table and checks
// the weapon can make that kind of attack. It has no side effects.
func (r Ruleset) Setup(cfg AttackConfig) (AttackProfile, Weapon, error) {
	profile, ok := r.Attacks[cfg.Type]
	if !ok {
		return AttackProfile{}, Weapon{}, errors.Validationf("unknown attack type %q", cfg.Type).
			WithMeta("attack_type", string(cfg.Type))
	}

	weaponID := cfg.Weapon
	if weaponID == "" {
		weaponID = WeaponNone
	}
	weapon, ok := r.Weapons[weaponID]
	if !ok {
		return AttackProfile{}, Weapon{}, errors.Validationf("unknown weapon class %q", weaponID).
			WithMeta("weapon", weaponID)
	}

	var err *errors.Error
	switch cfg.Type {
	case AttackUnarmed:
		if weapon.Kind != WeaponKindUnarmed {
			err = errors.Validationf("unarmed attacks cannot be made with a %s", weapon.Name)
		}
	case AttackMelee:
		if weapon.Kind != WeaponKindMelee {
			err = errors.Validationf("melee attacks need a melee weapon, not %s", weapon.Name)
		}
	case AttackRanged:
		if weapon.Kind != WeaponKindRanged {
			err = errors.Validationf("ranged attacks need a bow-class weapon, not %s", weapon.Name)
		}
	}
	if err != nil {
		return AttackProfile{}, Weapon{}, err.
			WithMeta("attack_type", string(cfg.Type)).
			WithMeta("weapon", weaponID)
	}

	return profile, weapon, nil
}
