package combat

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
)

// FormatTurn renders the combat log line for the end of a character's turn, e.g.
// "Tarl's turn ends: takes 1 damage (Bleed); recovers 2 hit points (Regeneration); Bless wore off."
func FormatTurn(name string, turn *TurnOutput) string {
	var parts []string
	if turn.Damaged > 0 {
		parts = append(parts, fmt.Sprintf("takes %d damage", turn.Damaged)+sources(turn.Damagers))
	}
	if turn.Healed > 0 {
		parts = append(parts, fmt.Sprintf("recovers %d hit point%s", turn.Healed, plural(turn.Healed))+sources(turn.Healers))
	}
	if len(turn.Expired) > 0 {
		parts = append(parts, strings.Join(turn.Expired, ", ")+" wore off")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s's turn ends.", name)
	}
	return fmt.Sprintf("%s's turn ends: %s.", name, strings.Join(parts, "; "))
}

func sources(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " (" + strings.Join(names, ", ") + ")"
}

// FormatSceneClear renders the combat log line for a scene clear
func FormatSceneClear(name string, ended []string) string {
	if len(ended) == 0 {
		return fmt.Sprintf("Scene cleared for %s: no effects ended.", name)
	}
	return fmt.Sprintf("Scene cleared for %s: %s ended.", name, strings.Join(ended, ", "))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func nameOf(char *character.Character) string {
	if char.Name != "" {
		return char.Name
	}
	return char.ID
}
