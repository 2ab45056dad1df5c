package combatlog

import (
	"context"
	"sort"
	"sync"

	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

// InMemoryRepository keeps the combat log in process memory
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries []*Entry
	ids     map[string]struct{}
}

// NewInMemoryRepository creates an empty in-memory combat log
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		ids: make(map[string]struct{}),
	}
}

// Append stores a new entry
func (r *InMemoryRepository) Append(ctx context.Context, entry *Entry) error {
	if err := validate(entry); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ids[entry.ID]; exists {
		return engerr.AlreadyExistsf("combat log entry '%s' already exists", entry.ID).
			WithMeta("entry_id", entry.ID)
	}

	r.ids[entry.ID] = struct{}{}
	r.entries = append(r.entries, cloneEntry(entry))
	return nil
}

// ListByCharacter returns the newest entries involving the character, newest
// first. Entries with equal timestamps come back in reverse append order.
func (r *InMemoryRepository) ListByCharacter(ctx context.Context, characterID string, limit int) ([]*Entry, error) {
	if characterID == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}
	limit = normalizeLimit(limit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*Entry, 0, limit)
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if entry.CharacterID == characterID || entry.TargetID == characterID {
			matched = append(matched, entry)
		}
	}

	// appends are not guaranteed to arrive in timestamp order
	sortNewestFirst(matched)

	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*Entry, len(matched))
	for i, entry := range matched {
		result[i] = cloneEntry(entry)
	}
	return result, nil
}

func validate(entry *Entry) error {
	if entry == nil {
		return engerr.InvalidArgument("entry cannot be nil")
	}
	if entry.ID == "" {
		return engerr.InvalidArgument("entry ID is required")
	}
	if entry.CharacterID == "" {
		return engerr.InvalidArgument("entry character ID is required")
	}
	if entry.Kind == "" {
		return engerr.InvalidArgument("entry kind is required")
	}
	return nil
}

func cloneEntry(entry *Entry) *Entry {
	clone := *entry
	if entry.Result != nil {
		clone.Result = append([]byte(nil), entry.Result...)
	}
	return &clone
}

// sortNewestFirst orders by CreatedAt descending, keeping the incoming order for ties
func sortNewestFirst(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
