package stats

import (
	"fmt"
	"strings"
)

// Modifier returns the bonus a stat contributes to a roll or damage formula:
// tier(raw + stat_value channel) + roll_bonus channel.
func Modifier(table TierTable, raw int, live LiveStats, stat Stat) int {
	effective := raw + live.Value(StatValueKey(stat))
	return table.Lookup(effective) + live.Value(RollBonusKey(stat))
}

// Breakdown is the audited form of Modifier
type Breakdown struct {
	Stat             Stat           `json:"stat"`
	Base             int            `json:"base"`
	StatValue        int            `json:"stat_value"`
	Effective        int            `json:"effective"`
	Tier             int            `json:"tier"`
	RollBonus        int            `json:"roll_bonus"`
	Total            int            `json:"total"`
	StatValueSources []Contribution `json:"stat_value_sources,omitempty"`
	RollBonusSources []Contribution `json:"roll_bonus_sources,omitempty"`
}

// Detail computes the same value as Modifier together with its contributors
func Detail(table TierTable, raw int, live LiveStats, stat Stat) Breakdown {
	b := Breakdown{
		Stat:             stat,
		Base:             raw,
		StatValue:        live.Value(StatValueKey(stat)),
		RollBonus:        live.Value(RollBonusKey(stat)),
		StatValueSources: live.ContributionsFor(StatValueKey(stat)),
		RollBonusSources: live.ContributionsFor(RollBonusKey(stat)),
	}
	b.Effective = b.Base + b.StatValue
	b.Tier = table.Lookup(b.Effective)
	b.Total = b.Tier + b.RollBonus
	return b
}

// Expression renders the breakdown as Stat[base +X(name) =eff](+tier) +Y(name)
func (b Breakdown) Expression() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%d", b.Stat, b.Base)
	for _, c := range b.StatValueSources {
		fmt.Fprintf(&sb, " %+d(%s)", c.Amount, c.Name)
	}
	if len(b.StatValueSources) > 0 {
		fmt.Fprintf(&sb, " =%d", b.Effective)
	}
	fmt.Fprintf(&sb, "](%+d)", b.Tier)
	for _, c := range b.RollBonusSources {
		fmt.Fprintf(&sb, " %+d(%s)", c.Amount, c.Name)
	}
	return sb.String()
}
