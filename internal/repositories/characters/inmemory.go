package characters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rp-combat-engine/internal/clock"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*character.Character
	clock      clock.Clock
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters: make(map[string]*character.Character),
		clock:      clock.Real{},
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, char *character.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return engerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	now := r.clock.Now()
	char.CreatedAt = now
	char.UpdatedAt = now

	// Store a copy to avoid external modifications
	r.characters[char.ID] = char.Clone()
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, notFound(id)
	}

	return char.Clone(), nil
}

// ListBySystem retrieves every character of a rule system, ordered by ID
func (r *InMemoryRepository) ListBySystem(ctx context.Context, system string) ([]*character.Character, error) {
	if system == "" {
		return nil, engerr.InvalidArgument("system is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*character.Character
	for _, char := range r.characters {
		if char.System == system {
			result = append(result, char.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces an existing character's state
func (r *InMemoryRepository) Update(ctx context.Context, char *character.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; !exists {
		return notFound(char.ID)
	}

	char.UpdatedAt = r.clock.Now()
	r.characters[char.ID] = char.Clone()
	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return engerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return notFound(id)
	}

	delete(r.characters, id)
	return nil
}

func validate(char *character.Character) error {
	if char == nil {
		return engerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return engerr.InvalidArgument("character ID is required")
	}
	if char.System == "" {
		return engerr.InvalidArgument("character system is required")
	}
	return nil
}

func notFound(id string) error {
	return engerr.NotFoundf("character with ID '%s' not found", id).
		WithMeta("character_id", id)
}
