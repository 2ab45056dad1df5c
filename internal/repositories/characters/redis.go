package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rp-combat-engine/internal/clock"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/rp-combat-engine/internal/domain/stats"
	"github.com/KirkDiggler/rp-combat-engine/internal/effects"
	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
)

// Data represents the serialized form of a character in Redis
type Data struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	System    string                 `json:"system"`
	Profile   stats.Profile          `json:"profile"`
	Effects   []effects.ActiveEffect `json:"effects"`
	Live      stats.LiveStats        `json:"live"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
	clock  clock.Clock
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	Clock  clock.Clock
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.Real{}
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  c,
	}
}

// NewRedis creates a new Redis-backed character repository with the system clock
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// systemCharactersKey generates the Redis key for a rule system's character set
func (r *redisRepo) systemCharactersKey(system string) string {
	return fmt.Sprintf("system:%s:characters", system)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return engerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	now := r.clock.Now()
	char.CreatedAt = now
	char.UpdatedAt = now

	if err := r.set(ctx, char); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data Data
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
	}

	return fromData(&data), nil
}

// ListBySystem retrieves every character of a rule system, ordered by ID.
// Index entries whose character is gone are skipped.
func (r *redisRepo) ListBySystem(ctx context.Context, system string) ([]*character.Character, error) {
	if system == "" {
		return nil, engerr.InvalidArgument("system is required")
	}

	ids, err := r.client.SMembers(ctx, r.systemCharactersKey(system)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	loaded := make([]*character.Character, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			char, getErr := r.Get(gctx, id)
			if engerr.IsNotFound(getErr) {
				return nil
			}
			if getErr != nil {
				return fmt.Errorf("failed to get character %s: %w", id, getErr)
			}
			loaded[i] = char
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*character.Character, 0, len(loaded))
	for _, char := range loaded {
		if char != nil {
			result = append(result, char)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Update replaces an existing character's state
func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists == 0 {
		return notFound(char.ID)
	}

	char.UpdatedAt = r.clock.Now()

	if err := r.set(ctx, char); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.systemCharactersKey(char.System), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	return nil
}

func (r *redisRepo) set(ctx context.Context, char *character.Character) error {
	jsonData, err := json.Marshal(toData(char))
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	// Store in Redis using pipeline for atomicity
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.systemCharactersKey(char.System), char.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func toData(char *character.Character) *Data {
	return &Data{
		ID:        char.ID,
		Name:      char.Name,
		System:    char.System,
		Profile:   char.Profile,
		Effects:   char.Effects,
		Live:      char.Live,
		CreatedAt: char.CreatedAt,
		UpdatedAt: char.UpdatedAt,
	}
}

func fromData(data *Data) *character.Character {
	return &character.Character{
		ID:        data.ID,
		Name:      data.Name,
		System:    data.System,
		Profile:   data.Profile,
		Effects:   data.Effects,
		Live:      data.Live,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
