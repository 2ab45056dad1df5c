package catalogue

import (
	"strconv"
	"strings"
)

// Formula is a parsed "<int>[+<Stat>]" amount expression
type Formula struct {
	Base int
	Stat string
}

// ParseFormula parses damage and heal formulas. Anything it cannot read yields a
// zero base so a broken formula deals or heals nothing instead of failing.
func ParseFormula(s string) Formula {
	s = strings.TrimSpace(s)
	if s == "" {
		return Formula{}
	}

	base, stat, _ := strings.Cut(s, "+")
	n, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		return Formula{}
	}

	return Formula{Base: n, Stat: strings.TrimSpace(stat)}
}

// String renders the formula back in catalogue syntax
func (f Formula) String() string {
	if f.Stat == "" {
		return strconv.Itoa(f.Base)
	}
	return strconv.Itoa(f.Base) + "+" + f.Stat
}
