package combat

import (
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
)

// Combatant is the snapshot of one character the resolver works from
type Combatant struct {
	ID      string
	Name    string
	Profile stats.Profile
	Effects []effects.ActiveEffect
}

// DisplayName falls back to the id for unnamed combatants
func (c Combatant) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// AttackConfig describes the attack being made
type AttackConfig struct {
	Type   AttackType `json:"type"`
	Weapon string     `json:"weapon,omitempty"`

	// OnHit lists catalogue effects delivered when the attack lands
	OnHit []string `json:"on_hit,omitempty"`
}

// Damage is the arithmetic behind a landed blow
type Damage struct {
	Base       int  `json:"base"`
	Stat       int  `json:"stat"`
	Skill      int  `json:"skill"`
	Reduction  int  `json:"reduction"`
	Floored    bool `json:"floored"`
	Multiplier int  `json:"multiplier"`
	Total      int  `json:"total"`
}

// AttackResult is the structured outcome of one attack
type AttackResult struct {
	Ruleset      string     `json:"ruleset"`
	Policy       PolicyKind `json:"policy"`
	AttackerID   string     `json:"attacker_id"`
	AttackerName string     `json:"attacker_name"`
	DefenderID   string     `json:"defender_id"`
	DefenderName string     `json:"defender_name"`
	AttackType   AttackType `json:"attack_type"`
	WeaponID     string     `json:"weapon_id"`
	WeaponName   string     `json:"weapon_name"`
	Skill        string     `json:"skill"`
	SkillLevel   int        `json:"skill_level"`

	Roll            int             `json:"roll"`
	AttackBreakdown stats.Breakdown `json:"attack_breakdown"`
	AttackModifier  int             `json:"attack_modifier"`
	AttackTotal     int             `json:"attack_total"`

	Defense          Defense         `json:"defense"`
	DefenseBreakdown stats.Breakdown `json:"defense_breakdown"`

	Hit          bool `json:"hit"`
	CriticalHit  bool `json:"critical_hit"`
	CriticalMiss bool `json:"critical_miss"`

	DamageBreakdown *stats.Breakdown `json:"damage_breakdown,omitempty"`
	Damage          Damage           `json:"damage"`

	// Effects are the on-hit effects the attack produced
	Effects []effects.EffectResult `json:"effects,omitempty"`

	Message string `json:"message"`
}

// CheckResult is one check inside an ability chain
type CheckResult struct {
	EffectID         string           `json:"effect_id"`
	Name             string           `json:"name"`
	Roll             int              `json:"roll"`
	Breakdown        *stats.Breakdown `json:"breakdown,omitempty"`
	Total            int              `json:"total"`
	Defense          Defense          `json:"defense"`
	DefenseBreakdown *stats.Breakdown `json:"defense_breakdown,omitempty"`
	Success          bool             `json:"success"`
}

// AbilityResult is the outcome of running an ability's effect chain
type AbilityResult struct {
	AbilityName string `json:"ability_name"`
	CasterID    string `json:"caster_id"`
	CasterName  string `json:"caster_name"`
	TargetID    string `json:"target_id"`
	TargetName  string `json:"target_name"`

	Checks  []CheckResult          `json:"checks,omitempty"`
	Effects []effects.EffectResult `json:"effects,omitempty"`

	// Success is false when a check stopped the chain
	Success bool `json:"success"`

	Message string `json:"message"`
}
