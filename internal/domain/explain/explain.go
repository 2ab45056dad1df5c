// Package explain renders a character's active effects as grouped, readable text
package explain

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/catalogue"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
)

type section int

const (
	sectionStatModifiers section = iota
	sectionControl
	sectionUtility
	sectionSpecial
	sectionDefense
	sectionHealOverTime
	sectionDamageOverTime
	sectionChecks
	sectionCount
)

var sectionTitles = [sectionCount]string{
	sectionStatModifiers:  "Stat Modifiers",
	sectionControl:        "Control",
	sectionUtility:        "Utility",
	sectionSpecial:        "Special",
	sectionDefense:        "Defense",
	sectionHealOverTime:   "Heal Over Time",
	sectionDamageOverTime: "Damage Over Time",
	sectionChecks:         "Checks",
}

func sectionFor(category catalogue.Category) (section, bool) {
	switch category {
	case catalogue.CategoryStatModifier:
		return sectionStatModifiers, true
	case catalogue.CategoryControl:
		return sectionControl, true
	case catalogue.CategoryUtility:
		return sectionUtility, true
	case catalogue.CategorySpecial:
		return sectionSpecial, true
	case catalogue.CategoryDefense:
		return sectionDefense, true
	case catalogue.CategoryHeal:
		return sectionHealOverTime, true
	case catalogue.CategoryDamage:
		return sectionDamageOverTime, true
	case catalogue.CategoryCheck:
		return sectionChecks, true
	default:
		return 0, false
	}
}

// Render groups active effects by category in a fixed section order. Inside a
// section effects keep the order of the active list. Effects missing from the
// catalogue are left out, and a character with nothing to show renders as "".
func Render(live stats.LiveStats, active []effects.ActiveEffect, lookup catalogue.Lookup) string {
	var lines [sectionCount][]string

	for _, effect := range active {
		if lookup == nil {
			break
		}
		def, ok := lookup.Definition(effect.EffectID)
		if !ok {
			continue
		}
		s, ok := sectionFor(def.Category)
		if !ok {
			continue
		}
		lines[s] = append(lines[s], line(def, effect))
	}

	if len(lines[sectionDefense]) > 0 {
		lines[sectionDefense] = append(lines[sectionDefense],
			fmt.Sprintf("Total damage reduction: %d", live.DamageReduction()))
	}
	if len(lines[sectionHealOverTime]) > 0 {
		total, _ := effects.HealPerTurn(active, lookup)
		lines[sectionHealOverTime] = append(lines[sectionHealOverTime],
			fmt.Sprintf("Total healing per turn: %d", total))
	}
	if len(lines[sectionDamageOverTime]) > 0 {
		total, _ := effects.DamagePerTurn(active, lookup)
		lines[sectionDamageOverTime] = append(lines[sectionDamageOverTime],
			fmt.Sprintf("Total damage per turn: %d", total))
	}

	blocks := make([]string, 0, sectionCount)
	for s := section(0); s < sectionCount; s++ {
		if len(lines[s]) == 0 {
			continue
		}
		blocks = append(blocks, sectionTitles[s]+":\n"+strings.Join(lines[s], "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

func line(def catalogue.Definition, effect effects.ActiveEffect) string {
	var sb strings.Builder
	sb.WriteString("• ")
	sb.WriteString(def.DisplayName())

	if detail := detailFor(def); detail != "" {
		sb.WriteString(": ")
		sb.WriteString(detail)
	}

	fmt.Fprintf(&sb, " (%s)", remaining(effect))

	if effect.Source != nil && effect.Source.Name != "" {
		fmt.Fprintf(&sb, " from %s", effect.Source.Name)
	}
	return sb.String()
}

func detailFor(def catalogue.Definition) string {
	switch def.Category {
	case catalogue.CategoryStatModifier:
		if def.Channel() == catalogue.ModifierRollBonus {
			return fmt.Sprintf("%s roll bonus %+d", def.Stat, def.Modifier)
		}
		return fmt.Sprintf("%s %+d", def.Stat, def.Modifier)
	case catalogue.CategoryControl, catalogue.CategorySpecial:
		return def.FlagName()
	case catalogue.CategoryDefense:
		return fmt.Sprintf("-%d damage", def.DamageReduction)
	case catalogue.CategoryHeal:
		return fmt.Sprintf("%d per turn", catalogue.ParseFormula(def.HealFormula).Base)
	case catalogue.CategoryDamage:
		return fmt.Sprintf("%d per turn", catalogue.ParseFormula(def.DamageFormula).Base)
	default:
		return ""
	}
}

func remaining(effect effects.ActiveEffect) string {
	if effect.IsScene() {
		return "until end of scene"
	}
	if effect.TurnsLeft == 1 {
		return "1 turn left"
	}
	return fmt.Sprintf("%d turns left", effect.TurnsLeft)
}
