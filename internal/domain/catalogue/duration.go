package catalogue

import (
	"fmt"
	"strconv"
	"strings"
)

// DurationKind is the lifetime class of an effect
type DurationKind string

const (
	DurationImmediate DurationKind = "immediate"
	DurationPermanent DurationKind = "permanent"
	DurationScene     DurationKind = "scene"
	DurationTurns     DurationKind = "turns"
)

const turnsPrefix = "turns:"

// Duration is a parsed catalogue duration ("immediate", "permanent", "scene", "turns:N")
type Duration struct {
	Kind  DurationKind
	Turns int
}

// Immediate is the zero-risk default for unknown durations
var Immediate = Duration{Kind: DurationImmediate}

// Turns builds a turns:N duration
func Turns(n int) Duration {
	return Duration{Kind: DurationTurns, Turns: n}
}

// Scene builds a scene duration
func Scene() Duration {
	return Duration{Kind: DurationScene}
}

// Permanent builds a permanent duration
func Permanent() Duration {
	return Duration{Kind: DurationPermanent}
}

// ParseDuration parses the catalogue duration syntax
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	switch DurationKind(s) {
	case DurationImmediate, "":
		return Immediate, nil
	case DurationPermanent:
		return Permanent(), nil
	case DurationScene:
		return Scene(), nil
	}

	if !strings.HasPrefix(s, turnsPrefix) {
		return Immediate, fmt.Errorf("unknown duration %q", s)
	}

	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, turnsPrefix)))
	if err != nil {
		return Immediate, fmt.Errorf("invalid turn count in duration %q: %w", s, err)
	}
	if n < 1 {
		return Immediate, fmt.Errorf("duration %q must last at least one turn", s)
	}

	return Turns(n), nil
}

// IsStored reports whether an effect with this duration lives on as an active effect.
// Immediate effects resolve once; permanent ones belong to the base profile.
func (d Duration) IsStored() bool {
	return d.Kind == DurationTurns || d.Kind == DurationScene
}

// String renders the catalogue syntax
func (d Duration) String() string {
	switch d.Kind {
	case DurationTurns:
		return fmt.Sprintf("%s%d", turnsPrefix, d.Turns)
	case "":
		return string(DurationImmediate)
	default:
		return string(d.Kind)
	}
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Malformed durations decode as
// immediate so bad content can never create a lingering instance.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		*d = Immediate
		return nil
	}
	*d = parsed
	return nil
}
