package catalogue

// Builder helps create definitions
type Builder struct {
	def Definition
}

// NewBuilder creates a new definition builder; the target defaults to enemy and
// the duration to immediate
func NewBuilder(id, name string) *Builder {
	return &Builder{
		def: Definition{
			ID:       id,
			Name:     name,
			Target:   TargetEnemy,
			Duration: Immediate,
		},
	}
}

// WithDescription adds a description
func (b *Builder) WithDescription(desc string) *Builder {
	b.def.Description = desc
	return b
}

// WithTarget sets who the effect lands on
func (b *Builder) WithTarget(target Target) *Builder {
	b.def.Target = target
	return b
}

// WithDuration sets the duration
func (b *Builder) WithDuration(d Duration) *Builder {
	b.def.Duration = d
	return b
}

// StatModifier makes this a stat_modifier on the given channel
func (b *Builder) StatModifier(stat string, modifier int, channel ModifierType) *Builder {
	b.def.Category = CategoryStatModifier
	b.def.Stat = stat
	b.def.Modifier = modifier
	b.def.ModifierType = channel
	return b
}

// Damage makes this a damage effect
func (b *Builder) Damage(formula string) *Builder {
	b.def.Category = CategoryDamage
	b.def.DamageFormula = formula
	return b
}

// Heal makes this a heal effect
func (b *Builder) Heal(formula string) *Builder {
	b.def.Category = CategoryHeal
	b.def.HealFormula = formula
	return b
}

// Defense makes this a damage-reduction effect
func (b *Builder) Defense(reduction int) *Builder {
	b.def.Category = CategoryDefense
	b.def.DamageReduction = reduction
	return b
}

// Control makes this a control effect raising the given flag
func (b *Builder) Control(controlType string) *Builder {
	b.def.Category = CategoryControl
	b.def.ControlType = controlType
	return b
}

// Special makes this a special effect raising the given flag
func (b *Builder) Special(specialType string) *Builder {
	b.def.Category = CategorySpecial
	b.def.SpecialType = specialType
	return b
}

// Utility makes this a utility effect
func (b *Builder) Utility() *Builder {
	b.def.Category = CategoryUtility
	return b
}

// Check makes this a check gating the effects after it. vs names the target's
// opposing stat; when empty the check is made against a fixed target number.
func (b *Builder) Check(stat, vs string, targetNumber int) *Builder {
	b.def.Category = CategoryCheck
	b.def.CheckStat = stat
	b.def.CheckVs = vs
	b.def.CheckTarget = targetNumber
	return b
}

// Build returns the constructed definition
func (b *Builder) Build() Definition {
	return b.def
}
