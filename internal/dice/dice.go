package dice

import (
	"fmt"
	"strings"
)

// D20Sides is the die every attack and check is resolved with
const D20Sides = 20

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int   // Bonus applied
	Count    int   // Number of dice rolled
	Sides    int   // Number of sides on each die
	RawTotal int   // Sum of the dice without the bonus
	IsCrit   bool  // Natural max on a single d20
	IsFumble bool  // Natural 1 on a single d20
}

// Natural returns the face of the first die, the value crit rules look at
func (r *RollResult) Natural() int {
	if r == nil || len(r.Rolls) == 0 {
		return 0
	}
	return r.Rolls[0]
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	if r.Bonus == 0 {
		return fmt.Sprintf("%dd%d%s = %d", r.Count, r.Sides, compact, r.Total)
	}
	return fmt.Sprintf("%dd%d%s%+d = %d", r.Count, r.Sides, compact, r.Bonus, r.Total)
}

// newResult builds a RollResult from raw faces and flags d20 crits/fumbles
func newResult(rolls []int, sides, bonus int) *RollResult {
	raw := 0
	for _, roll := range rolls {
		raw += roll
	}

	result := &RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    len(rolls),
		Sides:    sides,
		RawTotal: raw,
	}

	if len(rolls) == 1 && sides == D20Sides {
		result.IsCrit = rolls[0] == D20Sides
		result.IsFumble = rolls[0] == 1
	}

	return result
}

// D20 rolls a single unmodified d20 and returns its face
func D20(r Roller) (int, error) {
	result, err := r.Roll(1, D20Sides, 0)
	if err != nil {
		return 0, err
	}
	return result.Natural(), nil
}
