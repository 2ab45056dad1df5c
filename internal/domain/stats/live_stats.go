package stats

// Key addresses a numeric live-stats entry
type Key string

const rollBonusSuffix = "_rollbonus"

// KeyDamageReduction accumulates defense-category damage reduction
const KeyDamageReduction Key = "damage_reduction"

// StatValueKey is the channel added to the raw attribute before the tier lookup
func StatValueKey(stat Stat) Key {
	return Key(stat)
}

// RollBonusKey is the channel added after the tier lookup
func RollBonusKey(stat Stat) Key {
	return Key(string(stat) + rollBonusSuffix)
}

// Flag names a string-valued status flag raised by control or special effects
type Flag string

// Contribution is one effect's share of a live-stats entry
type Contribution struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// LiveStats is the derived cache of modifier totals and status flags. It is
// rebuilt from the full set of active effects and kept sparse: entries at their
// reset value (0 or "") are removed by Normalize. Sources is the audit trail and
// outlives a total that cancels to 0.
type LiveStats struct {
	Values  map[Key]int            `json:"values,omitempty"`
	Flags   map[Flag]string        `json:"flags,omitempty"`
	Sources map[Key][]Contribution `json:"sources,omitempty"`
}

// Add accumulates an amount into key and records who contributed it
func (l *LiveStats) Add(key Key, name string, amount int) {
	if l.Values == nil {
		l.Values = make(map[Key]int)
	}
	if l.Sources == nil {
		l.Sources = make(map[Key][]Contribution)
	}
	l.Values[key] += amount
	l.Sources[key] = append(l.Sources[key], Contribution{Name: name, Amount: amount})
}

// SetFlag raises a flag; a later effect with the same flag overwrites the value
func (l *LiveStats) SetFlag(flag Flag, value string) {
	if l.Flags == nil {
		l.Flags = make(map[Flag]string)
	}
	l.Flags[flag] = value
}

// Value returns the accumulated amount for key, 0 when absent
func (l LiveStats) Value(key Key) int {
	return l.Values[key]
}

// FlagValue returns the value of a flag and whether it is raised
func (l LiveStats) FlagValue(flag Flag) (string, bool) {
	v, ok := l.Flags[flag]
	return v, ok
}

// ContributionsFor returns the ordered contributions to key
func (l LiveStats) ContributionsFor(key Key) []Contribution {
	return l.Sources[key]
}

// DamageReduction returns the accumulated defense reduction
func (l LiveStats) DamageReduction() int {
	return l.Values[KeyDamageReduction]
}

// IsEmpty reports whether nothing is modified or flagged
func (l LiveStats) IsEmpty() bool {
	return len(l.Values) == 0 && len(l.Flags) == 0
}

// Normalize strips entries sitting at their reset value so absent and zero look
// the same. Contributions are kept while any of them moves the stat, even when
// they sum to 0; zero-amount contributions are dropped.
func (l *LiveStats) Normalize() {
	for key, v := range l.Values {
		if v == 0 {
			delete(l.Values, key)
		}
	}
	for key, contributions := range l.Sources {
		kept := contributions[:0]
		for _, c := range contributions {
			if c.Amount != 0 {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			delete(l.Sources, key)
			continue
		}
		l.Sources[key] = kept
	}
	for flag, v := range l.Flags {
		if v == "" {
			delete(l.Flags, flag)
		}
	}
	if len(l.Values) == 0 {
		l.Values = nil
	}
	if len(l.Sources) == 0 {
		l.Sources = nil
	}
	if len(l.Flags) == 0 {
		l.Flags = nil
	}
}
