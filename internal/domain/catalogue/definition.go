// Package catalogue holds the read-only effect definitions a rule system ships with.
//
// Definitions are immutable values. The engine only ever looks them up by id; it
// never lists, creates or edits catalogue content.
package catalogue

// Category is the kind of thing an effect does
type Category string

const (
	CategoryCheck        Category = "check"
	CategoryDamage       Category = "damage"
	CategoryHeal         Category = "heal"
	CategoryStatModifier Category = "stat_modifier"
	CategoryControl      Category = "control"
	CategoryUtility      Category = "utility"
	CategoryDefense      Category = "defense"
	CategorySpecial      Category = "special"
)

// Target describes who an effect lands on
type Target string

const (
	TargetSelf       Target = "self"
	TargetEnemy      Target = "enemy"
	TargetAlly       Target = "ally"
	TargetArea       Target = "area"
	TargetAllEnemies Target = "all_enemies"
	TargetAllAllies  Target = "all_allies"
	TargetSingle     Target = "single"
)

// ModifierType selects which stat channel a stat_modifier feeds
type ModifierType string

const (
	// ModifierStatValue is added to the raw attribute before the tier lookup
	ModifierStatValue ModifierType = "stat_value"
	// ModifierRollBonus is added to the tier modifier after the lookup
	ModifierRollBonus ModifierType = "roll_bonus"
)

// Definition describes one catalogue effect
type Definition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Target      Target   `json:"target" yaml:"target"`
	Duration    Duration `json:"duration" yaml:"duration"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// stat_modifier
	Stat         string       `json:"stat,omitempty" yaml:"stat,omitempty"`
	Modifier     int          `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	ModifierType ModifierType `json:"modifierType,omitempty" yaml:"modifierType,omitempty"`

	// damage / heal
	DamageFormula string `json:"damageFormula,omitempty" yaml:"damageFormula,omitempty"`
	HealFormula   string `json:"healFormula,omitempty" yaml:"healFormula,omitempty"`

	// defense
	DamageReduction int `json:"damageReduction,omitempty" yaml:"damageReduction,omitempty"`

	// control / special
	ControlType string `json:"controlType,omitempty" yaml:"controlType,omitempty"`
	SpecialType string `json:"type,omitempty" yaml:"type,omitempty"`

	// check
	CheckStat   string `json:"checkStat,omitempty" yaml:"checkStat,omitempty"`
	CheckVs     string `json:"checkVs,omitempty" yaml:"checkVs,omitempty"`
	CheckTarget int    `json:"checkTarget,omitempty" yaml:"checkTarget,omitempty"`
}

// DisplayName returns the name shown to players, falling back to the id
func (d Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Channel returns the stat channel a stat_modifier feeds. Older catalogue entries
// omit modifierType and are treated as stat_value.
func (d Definition) Channel() ModifierType {
	if d.ModifierType == ModifierRollBonus {
		return ModifierRollBonus
	}
	return ModifierStatValue
}

// FlagName is the live-stats flag a control or special effect raises
func (d Definition) FlagName() string {
	switch d.Category {
	case CategoryControl:
		if d.ControlType != "" {
			return d.ControlType
		}
	case CategorySpecial:
		if d.SpecialType != "" {
			return d.SpecialType
		}
	default:
		return ""
	}
	return d.ID
}
