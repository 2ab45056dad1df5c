package stats

// Skill is a trained skill and its level
type Skill struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// Profile is a character's base combat profile
type Profile struct {
	Attributes   map[Stat]int `json:"attributes"`
	Skills       []Skill      `json:"skills,omitempty"`
	HitPoints    int          `json:"hit_points"`
	MaxHitPoints int          `json:"max_hit_points"`

	// Permanent lists catalogue effects baked into the profile (species traits,
	// lasting boons). They feed live stats but never become active effects.
	Permanent []string `json:"permanent,omitempty"`
}

// Attribute returns the raw attribute value, 0 when the character lacks it
func (p Profile) Attribute(stat Stat) int {
	return p.Attributes[stat]
}

// SkillLevel returns the level of a skill, 0 when untrained
func (p Profile) SkillLevel(id string) int {
	for _, skill := range p.Skills {
		if skill.ID == id {
			return skill.Level
		}
	}
	return 0
}

// IsDown reports whether the character has no hit points left
func (p Profile) IsDown() bool {
	return p.HitPoints <= 0
}

// TakeDamage returns the profile with damage subtracted, never below zero
func (p Profile) TakeDamage(amount int) Profile {
	if amount <= 0 {
		return p
	}
	p.HitPoints -= amount
	if p.HitPoints < 0 {
		p.HitPoints = 0
	}
	return p
}

// Heal returns the profile with healing added, never above the maximum
func (p Profile) Heal(amount int) Profile {
	if amount <= 0 {
		return p
	}
	p.HitPoints += amount
	if p.HitPoints > p.MaxHitPoints {
		p.HitPoints = p.MaxHitPoints
	}
	return p
}
