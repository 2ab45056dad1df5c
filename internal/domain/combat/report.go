package combat

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rp-combat-engine/internal/dice"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
)

// FormatAttack renders the combat log line for an attack. It reads nothing but
// the result, so a stored result always reproduces the same line.
func FormatAttack(r *AttackResult) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s attacks %s (%s, %s): ", r.AttackerName, r.DefenderName, r.AttackType, r.WeaponName)

	fmt.Fprintf(&sb, "d20(%d) + %s", r.Roll, r.AttackBreakdown.Expression())
	if r.SkillLevel != 0 {
		fmt.Fprintf(&sb, " + skill %d", r.SkillLevel)
	}
	fmt.Fprintf(&sb, " = %d vs %s: ", r.AttackTotal, defenseText(r.Defense, &r.DefenseBreakdown))

	switch {
	case r.CriticalHit:
		sb.WriteString("NATURAL 20, HIT!")
	case r.CriticalMiss:
		sb.WriteString("NATURAL 1, MISS.")
	case r.Hit:
		sb.WriteString("HIT!")
	default:
		sb.WriteString("MISS.")
	}

	if !r.Hit {
		return sb.String()
	}

	d := r.Damage
	fmt.Fprintf(&sb, " Damage: %d (%s)", d.Base, r.WeaponName)
	if r.DamageBreakdown != nil {
		fmt.Fprintf(&sb, " + %s", r.DamageBreakdown.Expression())
	} else {
		fmt.Fprintf(&sb, " %+d", d.Stat)
	}
	if d.Skill != 0 {
		fmt.Fprintf(&sb, " + %d (skill)", d.Skill)
	}
	if d.Reduction != 0 {
		fmt.Fprintf(&sb, " - %d (reduction)", d.Reduction)
	}

	beforeCrit := d.Total
	if d.Multiplier > 1 {
		beforeCrit = d.Total / d.Multiplier
	}
	fmt.Fprintf(&sb, " = %d", beforeCrit)
	if d.Floored {
		sb.WriteString(" (minimum 1)")
	}
	if d.Multiplier > 1 {
		fmt.Fprintf(&sb, " x%d = %d", d.Multiplier, d.Total)
	}
	sb.WriteString(".")

	if len(r.Effects) > 0 {
		sb.WriteString(" Effects: ")
		sb.WriteString(effectList(r.Effects))
		sb.WriteString(".")
	}

	return sb.String()
}

// FormatAbility renders the combat log line for an ability chain
func FormatAbility(r *AbilityResult) string {
	if r == nil {
		return ""
	}

	name := r.AbilityName
	if name == "" {
		name = "an ability"
	}

	var sb strings.Builder
	if r.TargetID == "" || r.TargetID == r.CasterID {
		fmt.Fprintf(&sb, "%s uses %s", r.CasterName, name)
	} else {
		fmt.Fprintf(&sb, "%s uses %s on %s", r.CasterName, name, r.TargetName)
	}

	parts := make([]string, 0, len(r.Effects))
	checks := 0
	for _, result := range r.Effects {
		if result.Definition.Category == catalogue.CategoryCheck {
			if checks < len(r.Checks) {
				parts = append(parts, checkText(r.Checks[checks]))
			}
			checks++
			continue
		}
		parts = append(parts, effectText(result))
	}

	if len(parts) == 0 {
		sb.WriteString(": nothing happens.")
		return sb.String()
	}

	sb.WriteString(": ")
	sb.WriteString(strings.Join(parts, "; "))
	sb.WriteString(".")
	return sb.String()
}

func checkText(c CheckResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s d20(%d)", c.Name, c.Roll)
	if c.Breakdown != nil {
		fmt.Fprintf(&sb, " + %s", c.Breakdown.Expression())
	}
	fmt.Fprintf(&sb, " = %d vs %s: ", c.Total, defenseText(c.Defense, c.DefenseBreakdown))

	switch {
	case c.Roll == dice.D20Sides:
		sb.WriteString("natural 20, success")
	case c.Roll == naturalFailure:
		sb.WriteString("natural 1, failure")
	case c.Success:
		sb.WriteString("success")
	default:
		sb.WriteString("failure")
	}
	return sb.String()
}

func effectText(result effects.EffectResult) string {
	name := result.Definition.DisplayName()
	switch result.Definition.Category {
	case catalogue.CategoryDamage:
		return fmt.Sprintf("%s deals %d damage", name, result.Amount)
	case catalogue.CategoryHeal:
		if result.Definition.Duration.IsStored() {
			return fmt.Sprintf("%s (%s)", name, result.Definition.Duration)
		}
		return fmt.Sprintf("%s heals %d", name, result.Amount)
	default:
		if result.Definition.Duration.IsStored() {
			return fmt.Sprintf("%s (%s)", name, result.Definition.Duration)
		}
		return name
	}
}

func effectList(results []effects.EffectResult) string {
	names := make([]string, 0, len(results))
	for _, result := range results {
		text := effectText(result)
		if result.OnSelf {
			text += " on self"
		}
		names = append(names, text)
	}
	return strings.Join(names, ", ")
}

func defenseText(d Defense, breakdown *stats.Breakdown) string {
	if d.Fixed {
		if breakdown == nil {
			return fmt.Sprintf("TN %d", d.Total)
		}
		return fmt.Sprintf("TN %d (%d + %s)", d.Total, d.Total-d.Modifier, breakdown.Expression())
	}
	if breakdown == nil {
		return fmt.Sprintf("d20(%d) %+d = %d", d.Roll, d.Modifier, d.Total)
	}
	return fmt.Sprintf("d20(%d) + %s = %d", d.Roll, breakdown.Expression(), d.Total)
}
