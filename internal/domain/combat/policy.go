package combat

import (
	"github.com/KirkDiggler/rp-combat-engine/internal/dice"
)

// PolicyKind names a resolution policy
type PolicyKind string

const (
	// PolicyContested has the defender roll too; ties go to the defender
	PolicyContested PolicyKind = "contested"
	// PolicyFixedTarget compares against base + defender modifier; meeting it hits
	PolicyFixedTarget PolicyKind = "fixed_target"
)

// DefaultTargetBase is the fixed target number before the defender's modifier
const DefaultTargetBase = 10

// Defense is the number an attack or check has to beat
type Defense struct {
	Roll     int  `json:"roll,omitempty"`
	Modifier int  `json:"modifier"`
	Total    int  `json:"total"`
	Fixed    bool `json:"fixed"`
}

// ResolutionPolicy decides how the defending side's number is produced and
// what counts as a hit against it
type ResolutionPolicy interface {
	Kind() PolicyKind
	Target(roller dice.Roller, modifier int) (Defense, error)
	Hits(total int, target Defense) bool
}

// ContestedPolicy rolls a d20 for the defender
type ContestedPolicy struct{}

// Kind implements ResolutionPolicy
func (ContestedPolicy) Kind() PolicyKind {
	return PolicyContested
}

// Target rolls the defender's d20 and adds their modifier
func (ContestedPolicy) Target(roller dice.Roller, modifier int) (Defense, error) {
	roll, err := dice.D20(roller)
	if err != nil {
		return Defense{}, err
	}
	return Defense{Roll: roll, Modifier: modifier, Total: roll + modifier}, nil
}

// Hits requires the attacker to strictly exceed the defender
func (ContestedPolicy) Hits(total int, target Defense) bool {
	return total > target.Total
}

// FixedTargetPolicy compares against Base + defender modifier without a roll
type FixedTargetPolicy struct {
	Base int
}

// Kind implements ResolutionPolicy
func (FixedTargetPolicy) Kind() PolicyKind {
	return PolicyFixedTarget
}

// Target returns the fixed target number
func (p FixedTargetPolicy) Target(_ dice.Roller, modifier int) (Defense, error) {
	return Defense{Modifier: modifier, Total: p.Base + modifier, Fixed: true}, nil
}

// Hits succeeds when the attacker meets or exceeds the target number
func (FixedTargetPolicy) Hits(total int, target Defense) bool {
	return total >= target.Total
}

// naturalFailure is the d20 face that always misses
const naturalFailure = 1

// decide applies the natural 20 and natural 1 overrides before the policy comparison
func decide(policy ResolutionPolicy, natural, total int, target Defense) bool {
	switch natural {
	case dice.D20Sides:
		return true
	case naturalFailure:
		return false
	default:
		return policy.Hits(total, target)
	}
}
