// Package combatlog persists the combat log: one entry per resolved attack,
// ability, turn or scene change.
package combatlog

//go:generate mockgen -destination=mock/mock.go -package=mockcombatlog -source=interface.go

import (
	"context"
	"encoding/json"
	"time"
)

// Kind is the type of event an entry records
type Kind string

const (
	KindAttack     Kind = "attack"
	KindAbility    Kind = "ability"
	KindTurn       Kind = "turn"
	KindClearScene Kind = "clear_scene"
)

// DefaultLimit is used when a listing asks for no limit
const DefaultLimit = 20

// Entry is one combat log line with the structured result it was rendered from
type Entry struct {
	ID          string          `json:"id"`
	CharacterID string          `json:"character_id"`
	TargetID    string          `json:"target_id,omitempty"`
	Kind        Kind            `json:"kind"`
	Message     string          `json:"message"`
	Result      json.RawMessage `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Repository defines the interface for combat log persistence
type Repository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *Entry) error

	// ListByCharacter returns the newest entries in which the character acted
	// or was targeted, newest first
	ListByCharacter(ctx context.Context, characterID string, limit int) ([]*Entry, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
